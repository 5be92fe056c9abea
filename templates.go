package dynform

import (
	"io/fs"

	"github.com/goliatone/go-dynform/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in vanilla templates so callers can copy
// or override them (see vanilla.WithTemplatesFS).
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}
