package common

import (
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/x/ansi"
)

// CopyToClipboard writes text to the system clipboard with a macOS pbcopy
// fallback. Styling escapes are removed first.
func CopyToClipboard(text string) error {
	text = ansi.Strip(text)

	// pbcopy is more reliable than the library on macOS.
	if runtime.GOOS == "darwin" {
		cmd := exec.Command("pbcopy")
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err == nil {
			return nil
		}
	}

	return clipboard.WriteAll(text)
}
