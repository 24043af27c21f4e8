package jsts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bivav/code-cognitio/internal/chunk"
)

func findChunk(t *testing.T, chunks []*chunk.Chunk, kind chunk.Kind, name string) *chunk.Chunk {
	t.Helper()
	for _, c := range chunks {
		if c.Kind == kind && c.Name == name {
			return c
		}
	}
	t.Fatalf("no %s chunk named %q among %d chunks", kind, name, len(chunks))
	return nil
}

func TestExtractFunctionWithJSDoc(t *testing.T) {
	source := []byte(`/**
 * Adds two numbers.
 * @param {number} a first operand
 * @param {number} b second operand
 */
function add(a, b = 0) { return a + b; }
`)
	e := New()
	chunks, err := e.Extract(context.Background(), "src/math.js", source)
	require.NoError(t, err)

	fn := findChunk(t, chunks, chunk.KindFunction, "add")
	assert.Equal(t, "javascript", fn.Language)
	assert.Equal(t, "Adds two numbers.", fn.Docstring())
	assert.Equal(t, []chunk.Param{
		{Name: "a"},
		{Name: "b", Default: "0"},
	}, fn.Params())
}

func TestExtractArrowFunction(t *testing.T) {
	source := []byte("const multiply = (x, y) => { return x * y; };\n")
	e := New()
	chunks, err := e.Extract(context.Background(), "src/math.js", source)
	require.NoError(t, err)

	fn := findChunk(t, chunks, chunk.KindFunction, "multiply")
	assert.Contains(t, fn.Patterns(), "arrow_function")
	assert.Equal(t, []chunk.Param{{Name: "x"}, {Name: "y"}}, fn.Params())
}

func TestExtractClassWithMethods(t *testing.T) {
	source := []byte(`class Calculator extends BaseCalculator {
  compute(n) { return n * 2; }
}
`)
	e := New()
	chunks, err := e.Extract(context.Background(), "src/calc.js", source)
	require.NoError(t, err)

	cls := findChunk(t, chunks, chunk.KindClass, "Calculator")
	assert.Equal(t, []string{"BaseCalculator"}, cls.Bases())
	assert.Contains(t, cls.Methods(), "compute")

	method := findChunk(t, chunks, chunk.KindMethod, "compute")
	assert.Equal(t, "Calculator", method.ClassName())
	assert.Equal(t, "Calculator.compute", method.FullName())
}

func TestTypeScriptAnnotationsAndRest(t *testing.T) {
	source := []byte("function join(sep: string, ...parts: string[]) { return parts.join(sep); }\n")
	e := New()
	chunks, err := e.Extract(context.Background(), "src/join.ts", source)
	require.NoError(t, err)

	fn := findChunk(t, chunks, chunk.KindFunction, "join")
	assert.Equal(t, "typescript", fn.Language)

	params := fn.Params()
	require.Len(t, params, 2)
	assert.Equal(t, "sep", params[0].Name)
	assert.Equal(t, "string", params[0].Type)
	assert.Equal(t, "parts", params[1].Name)
}

func TestDestructuredParameterStaysOpaque(t *testing.T) {
	source := []byte("function render({title, body}, options) { return title; }\n")
	e := New()
	chunks, err := e.Extract(context.Background(), "src/render.js", source)
	require.NoError(t, err)

	fn := findChunk(t, chunks, chunk.KindFunction, "render")
	params := fn.Params()
	require.Len(t, params, 2)
	assert.Equal(t, "{title, body}", params[0].Name)
	assert.Equal(t, "options", params[1].Name)
}

func TestExtractReactComponent(t *testing.T) {
	source := []byte(`import React from 'react';

function UserCard(props) { return <Avatar src={props.src} />; }
`)
	e := New()
	chunks, err := e.Extract(context.Background(), "src/UserCard.jsx", source)
	require.NoError(t, err)

	comp := findChunk(t, chunks, chunk.KindComponent, "UserCard")
	elements, _ := comp.Attributes["jsx_elements"].([]string)
	assert.Equal(t, []string{"Avatar"}, elements)

	props, _ := comp.Attributes["props"].([]string)
	assert.Equal(t, []string{"props"}, props)
}

func TestBodyTruncatedForDigest(t *testing.T) {
	long := make([]byte, 0, 600)
	long = append(long, []byte("function big() { const s = \"")...)
	for i := 0; i < 400; i++ {
		long = append(long, 'x')
	}
	long = append(long, []byte("\"; return s; }\n")...)

	e := New()
	chunks, err := e.Extract(context.Background(), "src/big.js", long)
	require.NoError(t, err)

	fn := findChunk(t, chunks, chunk.KindFunction, "big")
	assert.LessOrEqual(t, len(fn.RawText), 203, "body digest is truncated to 200 chars plus ellipsis")
}

func TestExtractImports(t *testing.T) {
	source := []byte(`import fs from 'fs';
import { join } from 'path';

function load(p) { return fs.readFileSync(join(p)); }
`)
	e := New()
	chunks, err := e.Extract(context.Background(), "src/load.js", source)
	require.NoError(t, err)

	fn := findChunk(t, chunks, chunk.KindFunction, "load")
	imports, _ := fn.Attributes["imports"].([]chunk.Import)
	var sources []string
	for _, imp := range imports {
		sources = append(sources, imp.Module)
	}
	assert.ElementsMatch(t, []string{"fs", "path"}, sources)
}
