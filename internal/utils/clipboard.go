package utils

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrClipboardUnsupported is returned when no clipboard tool is available
var ErrClipboardUnsupported = errors.New("no clipboard utility available (install xclip, xsel or wl-clipboard)")

// CopyToClipboard places content on the system clipboard
func CopyToClipboard(content string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnsupported
	}
	return clipboard.WriteAll(content)
}
