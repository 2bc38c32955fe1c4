// Package ui renders user-facing output: banners, status lines and the
// progress spinner.
package ui

import (
	"fmt"
	"io"
	"os"

	"secretariat/internal/domain"
)

const (
	successSymbol = "✔"
	errorSymbol   = "✖"
	warnSymbol    = "⚠"
	infoSymbol    = "ℹ"
)

// Console writes styled status lines. Errors and warnings go to errOut.
type Console struct {
	out    io.Writer
	errOut io.Writer
	exit   func(code int)
}

// NewConsole creates a console that exits the process on Fatal.
func NewConsole(out, errOut io.Writer) *Console {
	return &Console{
		out:    out,
		errOut: errOut,
		exit:   os.Exit,
	}
}

// WithExit replaces the function called by Fatal.
func (c *Console) WithExit(exit func(code int)) *Console {
	c.exit = exit
	return c
}

func (c *Console) Banner(title string) {
	fmt.Fprintln(c.out, BannerStyle.Render(title))
}

func (c *Console) Success(msg string) {
	fmt.Fprintln(c.out, SuccessStyle.Render(successSymbol+" "+msg))
}

func (c *Console) Info(msg string) {
	fmt.Fprintln(c.out, InfoStyle.Render(infoSymbol+" "+msg))
}

func (c *Console) Log(msg string) {
	fmt.Fprintln(c.out, msg)
}

func (c *Console) Warn(msg string) {
	fmt.Fprintln(c.errOut, WarnStyle.Render(warnSymbol+" "+msg))
}

func (c *Console) Error(msg string) {
	fmt.Fprintln(c.errOut, ErrorStyle.Render(errorSymbol+" "+msg))
}

// Fatal prints msg as an error and exits with status 1.
func (c *Console) Fatal(msg string) {
	c.Error(msg)
	c.exit(1)
}

var _ domain.Reporter = (*Console)(nil)
