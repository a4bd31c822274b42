// Package linkgen derives a strongly-typed Rust route registry and an
// optional TypeScript client from a directory of controller source files.
// Both artifacts are rendered from the same canonical route list, so paths,
// methods and parameters can never drift apart between backend and frontend.
package linkgen

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/elcoosp/linkgen/internal/assembler"
	"github.com/elcoosp/linkgen/internal/config"
	"github.com/elcoosp/linkgen/internal/emitter"
	"github.com/elcoosp/linkgen/internal/model"
	"github.com/elcoosp/linkgen/internal/scanner"
)

// Re-exported so callers embed linkgen without importing internal packages.
type (
	Config     = config.Config
	Diagnostic = model.Diagnostic
	RouteInfo  = model.RouteInfo
)

// LoadConfig reads .linkgen.yaml from the project root on top of defaults.
func LoadConfig(projectPath string) (*Config, error) {
	return config.Load(projectPath)
}

// DefaultConfig returns the built-in option defaults.
func DefaultConfig() *Config {
	return config.Default()
}

// Result describes one completed generation run.
type Result struct {
	// Routes is the accepted canonical route list in emission order.
	Routes []*RouteInfo
	// Diagnostics are the non-fatal "<category>: <message>" lines.
	Diagnostics []Diagnostic
	// WrittenFiles are the artifact paths written by this run.
	WrittenFiles []string
}

// Generate runs the whole pipeline and writes every enabled artifact. All
// artifacts are rendered before the first write and each file lands via a
// temp-file-and-rename, so a fatal error never leaves a half-written or
// partially-updated artifact on disk.
func Generate(projectPath string, cfg *Config) (*Result, error) {
	routes, diags, err := buildRoutes(projectPath, cfg)
	result := &Result{Routes: routes, Diagnostics: diags}
	if err != nil {
		// Diagnostics collected before the failure still reach the caller;
		// no artifact has been written at this point.
		return result, err
	}

	type artifact struct {
		path string
		data []byte
	}
	artifacts := []artifact{
		{path: resolvePath(projectPath, cfg.OutputFile), data: []byte(emitter.Rust(routes))},
	}
	if cfg.TypeScript.GenerateClient {
		artifacts = append(artifacts, artifact{
			path: resolvePath(projectPath, cfg.TypeScript.OutputPath),
			data: []byte(emitter.TypeScript(routes)),
		})
	}
	if cfg.OpenAPIOutput != "" {
		data, err := emitter.OpenAPI(routes)
		if err != nil {
			return result, fmt.Errorf("rendering OpenAPI artifact: %w", err)
		}
		artifacts = append(artifacts, artifact{
			path: resolvePath(projectPath, cfg.OpenAPIOutput),
			data: data,
		})
	}

	for _, a := range artifacts {
		if err := writeFileAtomic(a.path, a.data); err != nil {
			return result, err
		}
		result.WrittenFiles = append(result.WrittenFiles, a.path)
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Category: model.CategoryGenerated,
			Message:  a.path,
		})
	}
	return result, nil
}

// GenerateRust renders the Rust registry without writing anything.
func GenerateRust(projectPath string, cfg *Config) (string, error) {
	routes, _, err := buildRoutes(projectPath, cfg)
	if err != nil {
		return "", err
	}
	return emitter.Rust(routes), nil
}

// GenerateTypeScript renders the TypeScript client without writing anything.
func GenerateTypeScript(projectPath string, cfg *Config) (string, error) {
	routes, _, err := buildRoutes(projectPath, cfg)
	if err != nil {
		return "", err
	}
	return emitter.TypeScript(routes), nil
}

// GenerateOpenAPI renders the OpenAPI document without writing anything.
func GenerateOpenAPI(projectPath string, cfg *Config) ([]byte, error) {
	routes, _, err := buildRoutes(projectPath, cfg)
	if err != nil {
		return nil, err
	}
	return emitter.OpenAPI(routes)
}

// buildRoutes is the shared front half of the pipeline: validate the config,
// scan the controllers directory in sorted file order, and assemble the
// canonical route list.
func buildRoutes(projectPath string, cfg *Config) ([]*RouteInfo, []Diagnostic, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	controllersDir := resolvePath(projectPath, cfg.ControllersPath)
	entries, err := os.ReadDir(controllersDir)
	if err != nil {
		return nil, nil, fmt.Errorf("reading controllers directory %s: %w", controllersDir, err)
	}

	var trees []*model.RouteNode
	var diags []Diagnostic
	for _, entry := range entries {
		if entry.IsDir() || !scanner.ShouldScan(entry.Name()) {
			continue
		}
		path := filepath.Join(controllersDir, entry.Name())
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, diags, fmt.Errorf("reading controller file %s: %w", path, err)
		}

		tree, err := scanner.ScanFile(path, src)
		var scanErr *scanner.ScanError
		if errors.As(err, &scanErr) {
			diags = append(diags, Diagnostic{
				Category: model.CategoryScanError,
				Message:  scanErr.Error(),
			})
			continue
		}
		if err != nil {
			return nil, diags, err
		}
		if tree != nil {
			trees = append(trees, tree)
		}
	}

	routes, assembleDiags, err := assembler.Assemble(trees, cfg)
	diags = append(diags, assembleDiags...)
	if err != nil {
		return nil, diags, err
	}
	return routes, diags, nil
}

// resolvePath anchors relative configured paths at the project root.
func resolvePath(projectPath, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(projectPath, p)
}

// writeFileAtomic writes the complete content to a temporary file in the
// target directory and renames it into place, so readers never observe a
// half-written artifact.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".linkgen-*")
	if err != nil {
		return fmt.Errorf("creating temporary output file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
