package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secretariat/internal/domain"
	apperrors "secretariat/internal/errors"
	"secretariat/internal/mocks"
)

func newRecordingFactory(t *testing.T, bound *[]string) domain.RepositoryClientFactory {
	return func(token string) domain.RepositoryCreator {
		*bound = append(*bound, token)
		return mocks.NewMockRepositoryCreator(t)
	}
}

func TestSession_ClientBeforeAuth(t *testing.T) {
	var bound []string
	session := NewSession(newRecordingFactory(t, &bound))

	client, err := session.Client()

	require.Error(t, err)
	assert.Nil(t, client)
	assert.Equal(t, apperrors.KindAuthorization, apperrors.KindOf(err))
	assert.Empty(t, session.Token())
	assert.Empty(t, bound)
}

func TestSession_FirstAuthWins(t *testing.T) {
	var bound []string
	session := NewSession(newRecordingFactory(t, &bound))

	session.Auth("tokenA")
	first, err := session.Client()
	require.NoError(t, err)

	session.Auth("tokenB")
	second, err := session.Client()
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, "tokenA", session.Token())
	assert.Equal(t, []string{"tokenA"}, bound)
}
