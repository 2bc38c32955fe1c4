package migrations

import (
	"gopkg.in/yaml.v3"
)

const (
	// CurrentVersion is the version written by the credential store.
	CurrentVersion = "1"

	legacyVersion = "0"
)

// fromConfigstore flattens a configstore document such as
// {"github": {"token": "..."}} into dotted keys. Non-string leaves are dropped.
func fromConfigstore(data []byte) (map[string]string, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	entries := map[string]string{}
	flatten("", doc, entries)
	return entries, nil
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for key, value := range node {
		switch v := value.(type) {
		case string:
			if v != "" {
				out[joinKey(prefix, key)] = v
			}
		case map[string]any:
			flatten(joinKey(prefix, key), v, out)
		}
	}
}
