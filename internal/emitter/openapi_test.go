package emitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestOpenAPIEmitter(t *testing.T) {
	data, err := OpenAPI(sampleRoutes())
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "openapi: 3.0.3")
	assert.Contains(t, text, "/api/users/{user_id}")
	assert.Contains(t, text, "operationId: GetUsersByUserId")
	assert.Contains(t, text, "operationId: PostUsers")
	assert.Contains(t, text, "Handled by list_users")

	// The document must be well-formed YAML.
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Contains(t, doc, "paths")
}

func TestOpenAPIEmitterSharesPathItems(t *testing.T) {
	// GET and POST /api/users land on one path item with two operations.
	data, err := OpenAPI(sampleRoutes())
	require.NoError(t, err)

	var doc struct {
		Paths map[string]map[string]any `yaml:"paths"`
	}
	require.NoError(t, yaml.Unmarshal(data, &doc))

	users, ok := doc.Paths["/api/users"]
	require.True(t, ok)
	assert.Contains(t, users, "get")
	assert.Contains(t, users, "post")
}

func TestOpenAPIEmitterDeterminism(t *testing.T) {
	first, err := OpenAPI(sampleRoutes())
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := OpenAPI(sampleRoutes())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
