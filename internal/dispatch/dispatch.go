// Package dispatch resolves a file path to the Extractor that should handle
// it. Extractor selection is a pure function of the path and a table
// mutation is the only way to add language support. Rules apply in a fixed
// order: basename, then extension (with alias resolution), then
// documentation extension, then generic fallback.
package dispatch

import (
	"path/filepath"
	"strings"

	"github.com/bivav/code-cognitio/internal/extract"
)

// Table is the ordered set of registration rules the dispatcher consults.
type Table struct {
	byBasename       map[string]extract.Extractor
	extensionAliases map[string]string
	byExtension      map[string]extract.Extractor
	docExtensions    map[string]struct{}
	genericExtractor extract.Extractor
}

// New returns an empty Table. Callers register extractors with
// RegisterBasename/RegisterExtension/RegisterDocExtension, then set a
// fallback with SetGenericExtractor.
func New() *Table {
	return &Table{
		byBasename:       make(map[string]extract.Extractor),
		extensionAliases: make(map[string]string),
		byExtension:      make(map[string]extract.Extractor),
		docExtensions:    make(map[string]struct{}),
	}
}

// RegisterBasename binds an exact basename (e.g. "Dockerfile") to an
// extractor. Matching is case-sensitive.
func (t *Table) RegisterBasename(basename string, e extract.Extractor) {
	t.byBasename[basename] = e
}

// RegisterExtensionAlias maps an extension to the canonical extension it
// should be treated as (e.g. ".pyw" -> ".py").
func (t *Table) RegisterExtensionAlias(from, to string) {
	t.extensionAliases[strings.ToLower(from)] = strings.ToLower(to)
}

// RegisterExtension binds a canonical, case-insensitive extension to an
// extractor.
func (t *Table) RegisterExtension(ext string, e extract.Extractor) {
	t.byExtension[strings.ToLower(ext)] = e
}

// RegisterDocExtension marks an extension as a documentation extension for
// rule 3, independent of whether an extractor is registered for it under
// RegisterExtension (most documentation extensions have both).
func (t *Table) RegisterDocExtension(ext string) {
	t.docExtensions[strings.ToLower(ext)] = struct{}{}
}

// SetGenericExtractor sets the rule-4 fallback extractor.
func (t *Table) SetGenericExtractor(e extract.Extractor) {
	t.genericExtractor = e
}

// Resolve returns the extractor that should handle path: basename first,
// then extension (after alias resolution), then documentation extension,
// then the generic fallback.
func (t *Table) Resolve(path string) extract.Extractor {
	base := filepath.Base(path)
	if e, ok := t.byBasename[base]; ok {
		return e
	}

	ext := strings.ToLower(filepath.Ext(path))
	if canonical, ok := t.extensionAliases[ext]; ok {
		ext = canonical
	}

	if e, ok := t.byExtension[ext]; ok {
		return e
	}

	if _, ok := t.docExtensions[ext]; ok {
		if e, ok := t.byExtension[ext]; ok {
			return e
		}
	}

	return t.genericExtractor
}
