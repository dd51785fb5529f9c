// Package clipboard is a thin shim over the system clipboard used to
// copy commit hashes and file paths out of the status and log views.
package clipboard

import (
	"github.com/atotto/clipboard"

	"github.com/chmouel/gogitui/internal/log"
)

// Copy writes text to the system clipboard. Failures are logged but not
// surfaced; a missing clipboard helper on a headless box should never
// interrupt the UI.
func Copy(text string) bool {
	if err := clipboard.WriteAll(text); err != nil {
		log.Printf("clipboard: %v", err)
		return false
	}
	return true
}
