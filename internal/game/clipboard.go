package game

import (
	"strings"

	"github.com/atotto/clipboard"

	"github.com/Garsondee/Spawn-Sense/internal/overlay"
)

// setClipboardText is swapped out in tests.
var setClipboardText = clipboard.WriteAll

// labelsText joins the plain text of every visible label, one blank line
// between boxes.
func labelsText(cmds []overlay.DrawCommand) string {
	parts := make([]string, 0, len(cmds))
	for _, c := range cmds {
		parts = append(parts, overlay.PlainText(c.Lines))
	}
	return strings.Join(parts, "\n\n")
}
