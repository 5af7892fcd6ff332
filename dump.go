package recipefinder

import (
	"io"

	"github.com/davecgh/go-spew/spew"
)

// Fdump writes a spew dump of v to w.
func Fdump(w io.Writer, v ...any) {
	spew.Fdump(w, v...)
}
