// Package source provides the text a ticker displays.
package source

import (
	"context"
	"strings"
)

// Source produces ticker content. Run blocks, calling emit whenever the
// content changes, until ctx is cancelled or the source is exhausted.
type Source interface {
	Load() (string, error)
	Run(ctx context.Context, emit func(string)) error
	Close() error
}

// Static is fixed text.
type Static string

func (s Static) Load() (string, error) { return string(s), nil }

func (s Static) Run(context.Context, func(string)) error { return nil }

func (s Static) Close() error { return nil }

// clean drops carriage returns and trailing newlines.
func clean(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "")
	return strings.TrimRight(s, "\n")
}
