package filepattern

import (
	"path/filepath"
	"regexp"
	"strings"
)

// The %d token optionally carries a Go time layout, like %d{2006-01}.
var dateTokenRegexp = regexp.MustCompile(`%d(\{[^}]*\})?`)

type DateTimeProvider interface {
	Date() string
	Format(layout string) string
}

// Renderer turns a compressed-file-name pattern like app.%d.log.gz into a
// concrete name for the current rollover.
type Renderer struct {
	dtProvider DateTimeProvider
	pattern    string
}

func New(dtProvider DateTimeProvider, pattern string) *Renderer {
	return &Renderer{
		dtProvider: dtProvider,
		pattern:    pattern,
	}
}

func (r *Renderer) FileName() string {
	return dateTokenRegexp.ReplaceAllStringFunc(r.pattern, func(token string) string {
		if strings.HasPrefix(token, "%d{") {
			layout := token[len("%d{") : len(token)-1]
			return r.dtProvider.Format(layout)
		}
		return r.dtProvider.Date()
	})
}

// InnerEntryName is the name the raw file gets inside a zip archive: the
// rendered base name without the compression extension.
func (r *Renderer) InnerEntryName() string {
	base := filepath.Base(r.FileName())
	base = strings.TrimSuffix(base, ".gz")
	base = strings.TrimSuffix(base, ".zip")
	return base
}
