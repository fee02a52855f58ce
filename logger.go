package scratchoff

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// NewLogger returns the logger components use unless SetLogger replaces it:
// warnings and above to w, prefixed "scratchoff".
func NewLogger(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "scratchoff",
		Level:  log.WarnLevel,
	})
}

var defaultLogger = NewLogger(os.Stderr)
