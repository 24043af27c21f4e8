package chunk

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, ContentDocumentation, ContentTypeFor(KindSection))
	assert.Equal(t, ContentDocumentation, ContentTypeFor(KindCodeBlock))
	for _, k := range []Kind{KindModule, KindFunction, KindMethod, KindClass, KindFileDirective, KindGenericFile, KindComponent} {
		assert.Equal(t, ContentCode, ContentTypeFor(k), string(k))
	}
}

func TestNewInitializesHeader(t *testing.T) {
	c := New(KindFunction, "add", "pkg/math.py", 3, "python")
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, ContentCode, c.ContentType)
	assert.NotNil(t, c.Attributes)
}

func TestAddPatternDeduplicates(t *testing.T) {
	c := New(KindFunction, "get_user", "a.py", 1, "python")
	c.AddPattern("accessor")
	c.AddPattern("accessor")
	c.AddPattern("validation")
	assert.Equal(t, []string{"accessor", "validation"}, c.Patterns())
}

func TestAttributesJSONRoundTrip(t *testing.T) {
	c := New(KindMethod, "create_user", "repo.py", 42, "python")
	c.SetClassName("UserRepository")
	c.SetFullName("UserRepository.create_user")
	c.SetParams([]Param{{Name: "username", Type: "str"}, {Name: "active", Type: "bool", Default: "True"}})
	c.SetReturnType("User")
	c.SetPatterns([]string{"CRUD create operation"})
	c.SetRelationships([]Relationship{{Type: "inherits_from", Target: "class:BaseRepository", DisplayName: "BaseRepository"}})
	c.SetUsage(&Usage{CallCount: 3, Callers: []string{"register"}})
	c.SetContext(&Context{Imports: []string{"import os"}, InstanceAttributes: []string{"db"}})
	c.SetLevel(2)
	c.SetPosition(7)

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var loaded Chunk
	require.NoError(t, json.Unmarshal(data, &loaded))

	assert.Equal(t, c.ID, loaded.ID)
	assert.Equal(t, "UserRepository", loaded.ClassName())
	assert.Equal(t, []Param{{Name: "username", Type: "str"}, {Name: "active", Type: "bool", Default: "True"}}, loaded.Params())
	assert.Equal(t, "User", loaded.ReturnType())
	assert.Equal(t, []string{"CRUD create operation"}, loaded.Patterns())
	assert.Equal(t, []Relationship{{Type: "inherits_from", Target: "class:BaseRepository", DisplayName: "BaseRepository"}}, loaded.Relationships())

	require.NotNil(t, loaded.Usage())
	assert.Equal(t, 3, loaded.Usage().CallCount)
	require.NotNil(t, loaded.Context())
	assert.Equal(t, []string{"db"}, loaded.Context().InstanceAttributes)

	assert.Equal(t, 2, loaded.Level())
	assert.Equal(t, 7, loaded.Attributes["position"])
}

func TestAttributesJSONRoundTripDirective(t *testing.T) {
	c := New(KindGenericFile, "Dockerfile", "Dockerfile", 1, "dockerfile")
	c.SetBaseImages([]BaseImage{{Image: "python", Tag: "3.9-slim"}})
	c.SetInstructions([]Instruction{{Verb: "EXPOSE", Value: "8080", Lineno: 2}})
	c.SetEnvVars(map[string]string{"PORT": "8080"})
	c.SetExposedPorts([]string{"8080"})

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var loaded Chunk
	require.NoError(t, json.Unmarshal(data, &loaded))

	assert.Equal(t, []BaseImage{{Image: "python", Tag: "3.9-slim"}}, loaded.Attributes["base_images"])
	assert.Equal(t, []Instruction{{Verb: "EXPOSE", Value: "8080", Lineno: 2}}, loaded.Attributes["instructions"])
	assert.Equal(t, map[string]string{"PORT": "8080"}, loaded.Attributes["env_vars"])
	assert.Equal(t, []string{"8080"}, loaded.Attributes["exposed_ports"])
}
