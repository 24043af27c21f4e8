package python

import (
	"regexp"
	"strings"

	"github.com/bivav/code-cognitio/internal/chunk"
	"github.com/bivav/code-cognitio/internal/extract/tsutil"
)

var (
	largeFileDefRe   = regexp.MustCompile(`^def \w+\s*\(`)
	largeFileClassRe = regexp.MustCompile(`^class \w+\s*[(:]`)
)

// extractLargeFile handles files over the size threshold: a line-by-line
// scan for top-level function/class blocks delimited by indentation, each
// parsed independently
// through the normal full-tree path with line offsets added back. The
// module docstring is recovered from the first 10 KiB parsed standalone.
func (e *Extractor) extractLargeFile(path string, source []byte) ([]*chunk.Chunk, error) {
	var chunks []*chunk.Chunk

	const headSize = 10 * 1024
	head := source
	if len(head) > headSize {
		head = head[:headSize]
	}
	if tree := tsutil.Parse(e.lang, head); tree != nil {
		defer tree.Close()
		if modDoc, ok := moduleDocstring(tree.RootNode(), head); ok {
			mc := chunk.New(chunk.KindModule, moduleName(path), path, 1, "python")
			mc.SetDocstring(modDoc)
			mc.SetImports(moduleImports(tree.RootNode(), head))
			mc.RawText = modDoc
			chunks = append(chunks, mc)
		}
	}

	lines := strings.Split(string(source), "\n")
	i := 0
	for i < len(lines) {
		line := lines[i]
		trimmed := strings.TrimLeft(line, " \t")
		indent := len(line) - len(trimmed)

		isDef := largeFileDefRe.MatchString(trimmed)
		isClass := largeFileClassRe.MatchString(trimmed)
		if !isDef && !isClass {
			i++
			continue
		}

		start := i
		end := i + 1
		for end < len(lines) {
			l := lines[end]
			t := strings.TrimSpace(l)
			if t == "" || strings.HasPrefix(t, "#") {
				end++
				continue
			}
			curIndent := len(l) - len(strings.TrimLeft(l, " \t"))
			if curIndent <= indent {
				break
			}
			end++
		}

		block := strings.Join(lines[start:end], "\n")
		blockChunks, err := e.parseBlock(path, block, start)
		if err == nil {
			chunks = append(chunks, blockChunks...)
		}

		i = end
	}

	return chunks, nil
}

// parseBlock parses one buffered top-level block and shifts every Chunk's
// Lineno by the block's absolute offset in the source file.
func (e *Extractor) parseBlock(path, block string, lineOffset int) ([]*chunk.Chunk, error) {
	tree := tsutil.Parse(e.lang, []byte(block))
	if tree == nil {
		return e.regexSalvage(path, []byte(block))
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return e.regexSalvage(path, []byte(block))
	}

	chunks, err := e.extractFullTree(path, []byte(block), root)
	if err != nil {
		return nil, err
	}
	for _, c := range chunks {
		c.Lineno += lineOffset
	}
	return chunks, nil
}
