//go:build windows

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "marquee is not supported on Windows. Its command source needs a Unix pty.")
	os.Exit(1)
}
