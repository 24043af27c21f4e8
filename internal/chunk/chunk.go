// Package chunk defines the universal extraction unit shared by every
// extractor, the normalizer, the chunker, and the vector index.
package chunk

import "github.com/google/uuid"

// Kind discriminates the closed set of Chunk variants. Every extractor in the
// repository emits one of these and nothing else.
type Kind string

const (
	KindModule        Kind = "module"
	KindFunction      Kind = "function"
	KindMethod        Kind = "method"
	KindClass         Kind = "class"
	KindSection       Kind = "section"
	KindCodeBlock     Kind = "code_block"
	KindFileDirective Kind = "file_directive"
	KindGenericFile   Kind = "generic_file"
	KindComponent     Kind = "component"
)

// ContentType is deterministic from Kind: section and code_block are
// documentation, everything else is code.
type ContentType string

const (
	ContentCode          ContentType = "code"
	ContentDocumentation ContentType = "documentation"
)

// ContentTypeFor derives a Chunk's content type from its kind.
func ContentTypeFor(k Kind) ContentType {
	switch k {
	case KindSection, KindCodeBlock:
		return ContentDocumentation
	default:
		return ContentCode
	}
}

// Param is one entry of a function/method parameter list, in source order.
type Param struct {
	Name    string `json:"name"`
	Type    string `json:"type,omitempty"`
	Default string `json:"default,omitempty"`
}

// Import is one module-level import statement.
type Import struct {
	Kind   string `json:"kind"` // "import" | "import_from"
	Module string `json:"module,omitempty"`
	Name   string `json:"name"`
	Alias  string `json:"alias,omitempty"`
}

// Relationship is one edge discovered by the relationship pass: a call to a
// symbol defined in the same file, or inheritance from a same-file class.
type Relationship struct {
	Type        string `json:"type"` // "calls" | "inherits_from"
	Target      string `json:"target"`
	DisplayName string `json:"display_name"`
}

// ArgPattern classifies one call site's argument shape.
type ArgPattern struct {
	PositionalCount int      `json:"positional_count"`
	KeywordCount    int      `json:"keyword_count"`
	KeywordArgs     []string `json:"keyword_args,omitempty"`
	Pattern         string   `json:"pattern"` // no_args | positional_only | keyword_only | mixed
}

// Usage is the per-function call-site analysis: how often and from where a
// function is called, with what argument shapes, and in what syntactic
// positions (loops, exception handlers, assignments).
type Usage struct {
	CallCount       int          `json:"call_count"`
	Callers         []string     `json:"callers"`
	ArgPatterns     []ArgPattern `json:"arg_patterns"`
	ContextKeywords []string     `json:"context_keywords,omitempty"`
	CommonUsage     []string     `json:"common_usage,omitempty"`
}

// Context is the surrounding-code summary attached to functions, methods,
// and classes: imports, module variables, and neighboring symbols.
type Context struct {
	Imports              []string `json:"imports,omitempty"`
	ModuleVariables      []string `json:"module_variables,omitempty"`
	NeighboringFunctions []string `json:"neighboring_functions,omitempty"`
	InstanceAttributes   []string `json:"instance_attributes,omitempty"`
	OtherMethods         []string `json:"other_methods,omitempty"`
	BaseClasses          []string `json:"base_classes,omitempty"`
	Subclasses           []string `json:"subclasses,omitempty"`
	Module               string   `json:"module,omitempty"`
}

// BaseImage is one FROM instruction's parsed image/tag/alias.
type BaseImage struct {
	Image string `json:"image"`
	Tag   string `json:"tag,omitempty"`
	Alias string `json:"alias,omitempty"`
}

// Instruction is one container-build directive line.
type Instruction struct {
	Verb   string `json:"verb"`
	Value  string `json:"value"`
	Lineno int    `json:"lineno"`
}

// Chunk is the tagged-variant universal extraction unit. The common header
// fields are always populated; everything variant-specific lives in the open
// Attributes bag, so the type stays a closed sum over Kind while still
// tolerating cross-cutting extensions.
type Chunk struct {
	ID            string      `json:"id"`
	Kind          Kind        `json:"kind"`
	Name          string      `json:"name"`
	FilePath      string      `json:"file_path"`
	Lineno        int         `json:"lineno"`
	ContentType   ContentType `json:"content_type"`
	Language      string      `json:"language"`
	RawText       string      `json:"raw_text"`
	ProcessedText string      `json:"processed_text"`
	Attributes    Attributes  `json:"attributes,omitempty"`

	// ChunkIndex and Partial are set by the section chunker and the regex
	// salvage path respectively; zero value means "whole".
	ChunkIndex int  `json:"chunk_index,omitempty"`
	Partial    bool `json:"partial,omitempty"`
}

// Attributes is the untyped per-kind attribute bag. Accessor helpers below
// keep call sites readable without requiring a type switch on every field
// access.
type Attributes map[string]any

// New returns a Chunk with ID, ContentType, and Attributes initialized.
func New(kind Kind, name, filePath string, lineno int, language string) *Chunk {
	return &Chunk{
		ID:          uuid.NewString(),
		Kind:        kind,
		Name:        name,
		FilePath:    filePath,
		Lineno:      lineno,
		ContentType: ContentTypeFor(kind),
		Language:    language,
		Attributes:  Attributes{},
	}
}

// Typed attribute accessors. Extractors write through these so the bag's
// keys stay consistent across languages.

func (c *Chunk) SetDocstring(s string)       { c.Attributes["docstring"] = s }
func (c *Chunk) Docstring() string           { s, _ := c.Attributes["docstring"].(string); return s }
func (c *Chunk) SetParams(p []Param)         { c.Attributes["params"] = p }
func (c *Chunk) Params() []Param             { p, _ := c.Attributes["params"].([]Param); return p }
func (c *Chunk) SetReturnType(s string)      { c.Attributes["return_type"] = s }
func (c *Chunk) ReturnType() string          { s, _ := c.Attributes["return_type"].(string); return s }
func (c *Chunk) SetClassName(s string)       { c.Attributes["class_name"] = s }
func (c *Chunk) ClassName() string           { s, _ := c.Attributes["class_name"].(string); return s }
func (c *Chunk) SetFullName(s string)        { c.Attributes["full_name"] = s }
func (c *Chunk) FullName() string            { s, _ := c.Attributes["full_name"].(string); return s }
func (c *Chunk) SetBodyDigest(s string)      { c.Attributes["body_digest"] = s }
func (c *Chunk) SetKeyOperations(s []string) { c.Attributes["key_operations"] = s }
func (c *Chunk) SetPatterns(s []string)      { c.Attributes["patterns"] = s }
func (c *Chunk) Patterns() []string          { s, _ := c.Attributes["patterns"].([]string); return s }
func (c *Chunk) AddPattern(p string) {
	existing := c.Patterns()
	for _, e := range existing {
		if e == p {
			return
		}
	}
	c.Attributes["patterns"] = append(existing, p)
}
func (c *Chunk) SetReadableName(s string) { c.Attributes["readable_name"] = s }
func (c *Chunk) ReadableName() string     { s, _ := c.Attributes["readable_name"].(string); return s }
func (c *Chunk) SetRelationships(r []Relationship) { c.Attributes["relationships"] = r }
func (c *Chunk) Relationships() []Relationship {
	r, _ := c.Attributes["relationships"].([]Relationship)
	return r
}
func (c *Chunk) SetUsage(u *Usage)             { c.Attributes["usage"] = u }
func (c *Chunk) Usage() *Usage                 { u, _ := c.Attributes["usage"].(*Usage); return u }
func (c *Chunk) SetContext(ctx *Context)       { c.Attributes["context"] = ctx }
func (c *Chunk) Context() *Context             { ctx, _ := c.Attributes["context"].(*Context); return ctx }
func (c *Chunk) SetSignature(s string)         { c.Attributes["signature"] = s }
func (c *Chunk) Signature() string             { s, _ := c.Attributes["signature"].(string); return s }
func (c *Chunk) SetSectionType(s string)       { c.Attributes["section_type"] = s }
func (c *Chunk) SetBases(b []string)           { c.Attributes["bases"] = b }
func (c *Chunk) Bases() []string               { b, _ := c.Attributes["bases"].([]string); return b }
func (c *Chunk) SetMethods(m []string)         { c.Attributes["methods"] = m }
func (c *Chunk) Methods() []string             { m, _ := c.Attributes["methods"].([]string); return m }
func (c *Chunk) SetClassAttributes(a []string) { c.Attributes["class_attributes"] = a }
func (c *Chunk) SetImports(imp []Import)       { c.Attributes["imports"] = imp }
func (c *Chunk) SetTitle(s string)             { c.Attributes["title"] = s }
func (c *Chunk) Title() string                 { s, _ := c.Attributes["title"].(string); return s }
func (c *Chunk) SetLevel(l int)                { c.Attributes["level"] = l }
func (c *Chunk) Level() int                    { l, _ := c.Attributes["level"].(int); return l }
func (c *Chunk) SetPosition(p int)             { c.Attributes["position"] = p }
func (c *Chunk) SetDocumentTitle(s string)     { c.Attributes["document_title"] = s }
func (c *Chunk) DocumentTitle() string         { s, _ := c.Attributes["document_title"].(string); return s }

func (c *Chunk) SetBaseImages(b []BaseImage)     { c.Attributes["base_images"] = b }
func (c *Chunk) SetInstructions(i []Instruction) { c.Attributes["instructions"] = i }
func (c *Chunk) SetEnvVars(e map[string]string)  { c.Attributes["env_vars"] = e }
func (c *Chunk) SetExposedPorts(p []string)      { c.Attributes["exposed_ports"] = p }
func (c *Chunk) SetVolumes(v []string)           { c.Attributes["volumes"] = v }
func (c *Chunk) SetComments(v []string)          { c.Attributes["comments"] = v }
func (c *Chunk) SetDescription(s string)         { c.Attributes["description"] = s }

func (c *Chunk) SetProps(p []string)       { c.Attributes["props"] = p }
func (c *Chunk) SetJSXElements(e []string) { c.Attributes["jsx_elements"] = e }
