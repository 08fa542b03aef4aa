package messages

import (
	"errors"
	"testing"
)

func TestSourceErrorFormatting(t *testing.T) {
	err := SourceError{Err: errors.New("boom"), Source: "file"}
	if err.Error() != "file: boom" {
		t.Fatalf("unexpected formatted error: %q", err.Error())
	}

	err = SourceError{Err: errors.New("boom")}
	if err.Error() != "boom" {
		t.Fatalf("unexpected formatted error without source: %q", err.Error())
	}
}
