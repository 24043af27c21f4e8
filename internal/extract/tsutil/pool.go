package tsutil

import (
	"sync"

	"github.com/maypok86/otter"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// ParserPool is a bounded, per-language cache of reusable tree-sitter
// parsers. Each language key maps to a sync.Pool of *sitter.Parser so
// concurrent worker goroutines never share a single parser instance, while
// the otter cache bounds how many per-language pools stay resident,
// evicting entries once more than capacity languages are cached.
type ParserPool struct {
	cache otter.Cache[string, *sync.Pool]
	ok    bool
}

// NewParserPool returns a pool that retains up to capacity per-language
// entries (capacity is a count of languages, not parser instances — each
// extended-language extractor registers exactly one key).
func NewParserPool(capacity int) *ParserPool {
	if capacity <= 0 {
		capacity = 16
	}
	cache, err := otter.MustBuilder[string, *sync.Pool](capacity).Build()
	if err != nil {
		// otter only errors on invalid builder options (e.g. non-positive
		// capacity, already guarded above); a pool-less fallback still
		// parses correctly, just without reuse.
		return &ParserPool{}
	}
	return &ParserPool{cache: cache, ok: true}
}

// Parse checks out a pooled parser for langKey (creating its pool on first
// use), parses source, and returns the parser to the pool before returning.
// The caller owns the returned tree and must Close it.
func (p *ParserPool) Parse(langKey string, lang *sitter.Language, source []byte) *sitter.Tree {
	parser := p.checkout(langKey, lang)
	defer p.checkin(langKey, parser)
	return parser.Parse(source, nil)
}

func (p *ParserPool) checkout(langKey string, lang *sitter.Language) *sitter.Parser {
	sp := p.poolFor(langKey, lang)
	if sp == nil {
		parser := sitter.NewParser()
		parser.SetLanguage(lang)
		return parser
	}
	parser := sp.Get().(*sitter.Parser)
	return parser
}

func (p *ParserPool) checkin(langKey string, parser *sitter.Parser) {
	sp := p.poolFor(langKey, nil)
	if sp == nil {
		parser.Close()
		return
	}
	sp.Put(parser)
}

func (p *ParserPool) poolFor(langKey string, lang *sitter.Language) *sync.Pool {
	if !p.ok {
		return nil
	}
	if sp, ok := p.cache.Get(langKey); ok {
		return sp
	}
	if lang == nil {
		return nil
	}
	sp := &sync.Pool{
		New: func() any {
			parser := sitter.NewParser()
			parser.SetLanguage(lang)
			return parser
		},
	}
	p.cache.Set(langKey, sp)
	return sp
}

// Default is the process-wide parser pool shared by every tree-sitter-based
// extractor (Python plus the extended-language C/Java/PHP/Ruby/Rust ones).
var Default = NewParserPool(16)
