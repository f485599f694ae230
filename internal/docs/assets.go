package docs

import (
	"embed"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

//go:embed static
var staticFiles embed.FS

// Site-relative locations of the toggle assets.
const (
	StylesheetPath = "stylesheets/sql-toggle.css"
	ScriptPath     = "javascripts/sql-toggle.js"
)

// AssetPaths lists the site-relative paths WriteAssets produces.
// Hosts link them into every page (extra_css / extra_javascript).
func AssetPaths() []string {
	return []string{StylesheetPath, ScriptPath}
}

// WriteAssets writes the query toggle stylesheet and script under siteDir.
// With minify set, both are passed through esbuild first.
func WriteAssets(siteDir string, minify bool) ([]string, error) {
	written := make([]string, 0, 2)
	for _, rel := range AssetPaths() {
		content, err := staticFiles.ReadFile(path.Join("static", rel))
		if err != nil {
			return written, fmt.Errorf("failed to read embedded %s: %w", rel, err)
		}

		if minify {
			content, err = minifyAsset(rel, content)
			if err != nil {
				return written, err
			}
		}

		outPath := filepath.Join(siteDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(outPath), 0750); err != nil {
			return written, fmt.Errorf("failed to create directory for %s: %w", rel, err)
		}
		if err := os.WriteFile(outPath, content, 0600); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", rel, err)
		}
		written = append(written, outPath)
	}
	return written, nil
}

func minifyAsset(name string, src []byte) ([]byte, error) {
	loader := api.LoaderJS
	if path.Ext(name) == ".css" {
		loader = api.LoaderCSS
	}

	result := api.Transform(string(src), api.TransformOptions{
		Loader:            loader,
		Sourcefile:        name,
		MinifyWhitespace:  true,
		MinifyIdentifiers: true,
		MinifySyntax:      true,
		Target:            api.ES2020,
		LogLevel:          api.LogLevelSilent,
	})

	if len(result.Errors) > 0 {
		var errMsg strings.Builder
		for _, msg := range result.Errors {
			loc := msg.Location
			if loc == nil {
				fmt.Fprintf(&errMsg, "%s: %s\n", name, msg.Text)
				continue
			}
			fmt.Fprintf(&errMsg, "%s:%d:%d: %s\n", loc.File, loc.Line, loc.Column, msg.Text)
		}
		return nil, fmt.Errorf("esbuild errors:\n%s", errMsg.String())
	}
	return result.Code, nil
}
