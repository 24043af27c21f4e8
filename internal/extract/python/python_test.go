package python

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bivav/code-cognitio/internal/chunk"
	"github.com/bivav/code-cognitio/internal/normalize"
)

func TestExtractFunctionWithParamsAndReturn(t *testing.T) {
	source := []byte(`def add(a: int, b: int = 0) -> int:
    """Sum."""
    return a + b
`)
	e := New(0)
	chunks, err := e.Extract(context.Background(), "math.py", source)
	require.NoError(t, err)
	require.Len(t, chunks, 1, "no module docstring, so only the function chunk")

	fn := chunks[0]
	assert.Equal(t, chunk.KindFunction, fn.Kind)
	assert.Equal(t, "add", fn.Name)
	assert.Equal(t, "add", fn.FullName())
	assert.Equal(t, 1, fn.Lineno)
	assert.Equal(t, "Sum.", fn.Docstring())
	assert.Equal(t, "int", fn.ReturnType())
	assert.Equal(t, []chunk.Param{
		{Name: "a", Type: "int"},
		{Name: "b", Type: "int", Default: "0"},
	}, fn.Params())

	normalize.New(true).Normalize(fn)
	assert.Equal(t, "add(a: int, b: int) -> int", fn.Signature())
	assert.Contains(t, fn.ProcessedText, "sum")
}

func TestExtractModuleChunkWithImports(t *testing.T) {
	source := []byte(`"""Utilities for user storage."""

import os
from typing import List


def noop():
    pass
`)
	e := New(0)
	chunks, err := e.Extract(context.Background(), "users/store.py", source)
	require.NoError(t, err)

	mod := findChunk(t, chunks, chunk.KindModule, "store")
	assert.Equal(t, "Utilities for user storage.", mod.Docstring())
	assert.Equal(t, 1, mod.Lineno)

	imports, _ := mod.Attributes["imports"].([]chunk.Import)
	assert.Contains(t, imports, chunk.Import{Kind: "import", Name: "os"})
	assert.Contains(t, imports, chunk.Import{Kind: "import_from", Module: "typing", Name: "List"})
}

func TestExtractClassWithMethodsAndPatterns(t *testing.T) {
	source := []byte(`class BaseRepository:
    pass


class UserRepository(BaseRepository):
    """Stores users."""

    def __init__(self, db):
        self.db = db

    def create_user(self, username):
        pass

    def find_by_username(self, username):
        pass

    def delete_user(self, username):
        pass
`)
	e := New(0)
	chunks, err := e.Extract(context.Background(), "repo.py", source)
	require.NoError(t, err)

	cls := findChunk(t, chunks, chunk.KindClass, "UserRepository")
	assert.Equal(t, "Stores users.", cls.Docstring())
	assert.Equal(t, []string{"BaseRepository"}, cls.Bases())
	assert.Equal(t, []string{"__init__", "create_user", "find_by_username", "delete_user"}, cls.Methods())
	assert.Contains(t, cls.Patterns(), "data access object")

	var inherits bool
	for _, rel := range cls.Relationships() {
		if rel.Type == "inherits_from" && rel.DisplayName == "BaseRepository" {
			inherits = true
		}
	}
	assert.True(t, inherits)

	ctor := findChunk(t, chunks, chunk.KindMethod, "__init__")
	assert.Equal(t, "UserRepository", ctor.ClassName())
	assert.Equal(t, "UserRepository.__init__", ctor.FullName())
	assert.Contains(t, ctor.Patterns(), "constructor")

	create := findChunk(t, chunks, chunk.KindMethod, "create_user")
	assert.Contains(t, create.Patterns(), "CRUD create operation")
	find := findChunk(t, chunks, chunk.KindMethod, "find_by_username")
	assert.Contains(t, find.Patterns(), "CRUD read operation")
	del := findChunk(t, chunks, chunk.KindMethod, "delete_user")
	assert.Contains(t, del.Patterns(), "CRUD delete operation")

	require.NotNil(t, create.Context())
	assert.Contains(t, create.Context().OtherMethods, "find_by_username")
	assert.Equal(t, []string{"db"}, create.Context().InstanceAttributes)
}

func TestFunctionPatternDetectors(t *testing.T) {
	source := []byte(`def get_user(user_id):
    return user_id


def is_valid_email(email):
    return "@" in email


def load_config(path):
    try:
        return open(path)
    except OSError:
        return None
`)
	e := New(0)
	chunks, err := e.Extract(context.Background(), "helpers.py", source)
	require.NoError(t, err)

	get := findChunk(t, chunks, chunk.KindFunction, "get_user")
	assert.Contains(t, get.Patterns(), "accessor")
	assert.Contains(t, get.Patterns(), "CRUD read operation")

	valid := findChunk(t, chunks, chunk.KindFunction, "is_valid_email")
	assert.Contains(t, valid.Patterns(), "validation")

	load := findChunk(t, chunks, chunk.KindFunction, "load_config")
	assert.Contains(t, load.Patterns(), "error handling")
}

func TestDecoratorPatterns(t *testing.T) {
	source := []byte(`@app.route("/users")
def list_users():
    return []


class Settings:
    @property
    def debug(self):
        return self._debug
`)
	e := New(0)
	chunks, err := e.Extract(context.Background(), "views.py", source)
	require.NoError(t, err)

	endpoint := findChunk(t, chunks, chunk.KindFunction, "list_users")
	assert.Contains(t, endpoint.Patterns(), "Flask endpoint")

	prop := findChunk(t, chunks, chunk.KindMethod, "debug")
	assert.Contains(t, prop.Patterns(), "property getter")
}

func TestUsageAnalysis(t *testing.T) {
	source := []byte(`def helper(x, y=1):
    pass


def first(items):
    for item in items:
        helper(1, y=2)


def second():
    result = helper(1)
    return result
`)
	e := New(0)
	chunks, err := e.Extract(context.Background(), "mod.py", source)
	require.NoError(t, err)

	helper := findChunk(t, chunks, chunk.KindFunction, "helper")
	u := helper.Usage()
	require.NotNil(t, u)

	assert.Equal(t, 2, u.CallCount)
	assert.ElementsMatch(t, []string{"first", "second"}, u.Callers)
	require.Len(t, u.ArgPatterns, 2)

	patterns := []string{u.ArgPatterns[0].Pattern, u.ArgPatterns[1].Pattern}
	assert.ElementsMatch(t, []string{"mixed", "positional_only"}, patterns)

	// y appears at 50% of sites, above the 30% keyword threshold.
	assert.Contains(t, u.CommonUsage, "commonly used with keywords: y")

	// Each syntactic position appears at 50% of sites, above the 30%
	// context threshold; order follows first occurrence in source.
	assert.Equal(t, []string{"in_loop", "assigned_to_result"}, u.ContextKeywords)
	assert.Contains(t, u.CommonUsage, "commonly called in_loop, assigned_to_result")
}

func TestRegexSalvageOnSyntaxError(t *testing.T) {
	source := []byte(`def good(a):
    """Doc."""
    return a


class Thing:
    def method(self):
        pass


def broken(
`)
	e := New(0)
	chunks, err := e.Extract(context.Background(), "broken.py", source)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	for _, c := range chunks {
		assert.True(t, c.Partial, "salvaged chunks carry the partial tag")
	}

	good := findChunk(t, chunks, chunk.KindFunction, "good")
	assert.Equal(t, "Doc.", good.Docstring())
	assert.Equal(t, 1, good.Lineno)

	findChunk(t, chunks, chunk.KindClass, "Thing")
	method := findChunk(t, chunks, chunk.KindMethod, "method")
	assert.Equal(t, "Thing", method.ClassName())
}

func TestLargeFileFallback(t *testing.T) {
	source := []byte(`"""Module doc."""

def alpha():
    """First."""
    pass

class Beta:
    def method(self):
        pass
`)
	e := New(10) // force every realistic file over the threshold
	chunks, err := e.Extract(context.Background(), "big.py", source)
	require.NoError(t, err)

	mod := findChunk(t, chunks, chunk.KindModule, "big")
	assert.Equal(t, "Module doc.", mod.Docstring())

	alpha := findChunk(t, chunks, chunk.KindFunction, "alpha")
	assert.Equal(t, "First.", alpha.Docstring())
	assert.Equal(t, 3, alpha.Lineno)

	findChunk(t, chunks, chunk.KindClass, "Beta")
	findChunk(t, chunks, chunk.KindMethod, "method")
}
