package linkgen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/elcoosp/linkgen/internal/assembler"
	"github.com/elcoosp/linkgen/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeController(t *testing.T, projectPath, name, src string) {
	t.Helper()
	dir := filepath.Join(projectPath, "src", "controllers")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644))
}

const usersController = `
use crate::handlers::users::*;

pub fn routes() -> Routes {
    Routes::new()
        .prefix("/api")
        .add("/users", get(list_users))
        .add("/users/{user_id}", get(get_user))
        .add("/users", post(create_user))
        .add("/users/{user_id}", delete(delete_user))
}
`

const healthController = `
pub fn routes() -> Routes {
    Routes::new().add("/health", get(health))
}
`

func TestGenerateWritesAllArtifacts(t *testing.T) {
	project := t.TempDir()
	writeController(t, project, "users.rs", usersController)

	cfg := DefaultConfig()
	cfg.TypeScript.GenerateClient = true
	cfg.OpenAPIOutput = "openapi.yaml"

	result, err := Generate(project, cfg)
	require.NoError(t, err)
	require.Len(t, result.Routes, 4)
	require.Len(t, result.WrittenFiles, 3)

	rust, err := os.ReadFile(filepath.Join(project, "links.rs"))
	require.NoError(t, err)
	assert.Contains(t, string(rust), "pub enum Link {")
	assert.Contains(t, string(rust), "GetApiUsers,")
	assert.Contains(t, string(rust), `format!("/api/users/{}", user_id)`)

	ts, err := os.ReadFile(filepath.Join(project, "client.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(ts), "export const client = {")
	assert.Contains(t, string(ts), "useQuery")

	openapi, err := os.ReadFile(filepath.Join(project, "openapi.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(openapi), "openapi: 3.0.3")

	// Every written artifact gets a generated diagnostic.
	var generated int
	for _, d := range result.Diagnostics {
		if d.Category == model.CategoryGenerated {
			generated++
		}
	}
	assert.Equal(t, 3, generated)
}

func TestGenerateRustOnlyByDefault(t *testing.T) {
	project := t.TempDir()
	writeController(t, project, "health.rs", healthController)

	result, err := Generate(project, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, result.WrittenFiles, 1)

	assert.FileExists(t, filepath.Join(project, "links.rs"))
	assert.NoFileExists(t, filepath.Join(project, "client.ts"))
}

func TestGenerateDuplicateRouteKeepsEarliestFile(t *testing.T) {
	project := t.TempDir()
	// Files scan in sorted order, so a.rs wins the duplicate.
	writeController(t, project, "a.rs", `
pub fn routes() -> Routes {
    Routes::new().add("/health", get(health_a))
}
`)
	writeController(t, project, "b.rs", `
pub fn routes() -> Routes {
    Routes::new().add("/health", get(health_b))
}
`)

	result, err := Generate(project, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, result.Routes, 1)
	assert.Equal(t, "health_a", result.Routes[0].Handler)

	var dupes []Diagnostic
	for _, d := range result.Diagnostics {
		if d.Category == model.CategoryDuplicateRoute {
			dupes = append(dupes, d)
		}
	}
	require.Len(t, dupes, 1)
	assert.Contains(t, dupes[0].String(), "duplicate-route: skipped GET /health")
}

func TestGenerateNameCollisionWritesNothing(t *testing.T) {
	project := t.TempDir()
	writeController(t, project, "users.rs", usersController)

	cfg := DefaultConfig()
	off := false
	cfg.Naming.IncludeMethodInNames = &off
	cfg.Naming.PathPrefixToRemove = "/api"
	cfg.TypeScript.GenerateClient = true

	result, err := Generate(project, cfg)

	var collision *assembler.NameCollisionError
	require.ErrorAs(t, err, &collision)
	assert.Equal(t, "Users", collision.Name)

	// A fatal assembly error must leave the project untouched.
	assert.Empty(t, result.WrittenFiles)
	assert.NoFileExists(t, filepath.Join(project, "links.rs"))
	assert.NoFileExists(t, filepath.Join(project, "client.ts"))
}

func TestGenerateRecoversFromUnscannableFile(t *testing.T) {
	project := t.TempDir()
	writeController(t, project, "bad.rs", `
pub fn routes() -> Routes {
    Routes::new().add("/broken", fetch(handler))
}
`)
	writeController(t, project, "good.rs", healthController)

	result, err := Generate(project, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, result.Routes, 1)
	assert.Equal(t, "/health", result.Routes[0].FinalPath)

	var scanDiags []Diagnostic
	for _, d := range result.Diagnostics {
		if d.Category == model.CategoryScanError {
			scanDiags = append(scanDiags, d)
		}
	}
	require.Len(t, scanDiags, 1)
	assert.Contains(t, scanDiags[0].Message, "bad.rs")
}

func TestGenerateSkipsModAndNonRustFiles(t *testing.T) {
	project := t.TempDir()
	writeController(t, project, "health.rs", healthController)
	writeController(t, project, "mod.rs", `pub mod health;`)
	writeController(t, project, "notes.md", `not rust`)

	result, err := Generate(project, DefaultConfig())
	require.NoError(t, err)
	assert.Len(t, result.Routes, 1)
}

func TestGenerateMissingControllersDir(t *testing.T) {
	project := t.TempDir()

	result, err := Generate(project, DefaultConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "controllers")
	assert.Empty(t, result.WrittenFiles)
}

func TestGenerateInvalidConfig(t *testing.T) {
	project := t.TempDir()
	writeController(t, project, "health.rs", healthController)

	cfg := DefaultConfig()
	cfg.Naming.VariantCase = "nope"

	_, err := Generate(project, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "naming.variantCase")
	assert.NoFileExists(t, filepath.Join(project, "links.rs"))
}

func TestGenerateIsByteStableAcrossRuns(t *testing.T) {
	project := t.TempDir()
	writeController(t, project, "users.rs", usersController)
	writeController(t, project, "health.rs", healthController)

	cfg := DefaultConfig()
	cfg.TypeScript.GenerateClient = true

	_, err := Generate(project, cfg)
	require.NoError(t, err)
	firstRust, err := os.ReadFile(filepath.Join(project, "links.rs"))
	require.NoError(t, err)
	firstTS, err := os.ReadFile(filepath.Join(project, "client.ts"))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := Generate(project, cfg)
		require.NoError(t, err)

		rust, err := os.ReadFile(filepath.Join(project, "links.rs"))
		require.NoError(t, err)
		ts, err := os.ReadFile(filepath.Join(project, "client.ts"))
		require.NoError(t, err)
		assert.Equal(t, firstRust, rust)
		assert.Equal(t, firstTS, ts)
	}
}

func TestGenerateLeavesNoTempFiles(t *testing.T) {
	project := t.TempDir()
	writeController(t, project, "health.rs", healthController)

	_, err := Generate(project, DefaultConfig())
	require.NoError(t, err)

	entries, err := os.ReadDir(project)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.NotContains(t, entry.Name(), ".linkgen-")
	}
}

func TestGenerateRustRendersWithoutWriting(t *testing.T) {
	project := t.TempDir()
	writeController(t, project, "health.rs", healthController)

	code, err := GenerateRust(project, DefaultConfig())
	require.NoError(t, err)
	assert.Contains(t, code, "GetHealth,")
	assert.NoFileExists(t, filepath.Join(project, "links.rs"))
}

func TestGenerateTypeScriptRendersWithoutWriting(t *testing.T) {
	project := t.TempDir()
	writeController(t, project, "health.rs", healthController)

	code, err := GenerateTypeScript(project, DefaultConfig())
	require.NoError(t, err)
	assert.Contains(t, code, "useGetHealth")
	assert.NoFileExists(t, filepath.Join(project, "client.ts"))
}

func TestLoadConfigFromProjectFile(t *testing.T) {
	project := t.TempDir()
	content := `
outputFile: generated/links.rs
typescript:
  generateClient: true
`
	require.NoError(t, os.WriteFile(filepath.Join(project, ".linkgen.yaml"), []byte(content), 0o644))
	writeController(t, project, "health.rs", healthController)

	cfg, err := LoadConfig(project)
	require.NoError(t, err)
	assert.Equal(t, "generated/links.rs", cfg.OutputFile)

	result, err := Generate(project, cfg)
	require.NoError(t, err)
	require.Len(t, result.WrittenFiles, 2)
	assert.FileExists(t, filepath.Join(project, "generated", "links.rs"))
	assert.FileExists(t, filepath.Join(project, "client.ts"))
}
