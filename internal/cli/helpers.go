// Shared helpers for shelf CLI commands.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/dukaforge/shelfdb/pkg/store"
	"github.com/dukaforge/shelfdb/pkg/types"
)

// attachStore builds the effective config and attaches the selected backend.
// The caller must defer s.Detach(), which also persists mutations.
func attachStore() (types.Store, error) {
	cfg, err := buildConfig()
	if err != nil {
		return nil, err
	}
	s, err := store.NewWithLogger(cfg.Backend, newLogger())
	if err != nil {
		return nil, err
	}
	if err := s.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach store: %w", err)
	}
	return s, nil
}

// newLogger returns a development logger when --verbose is set, a no-op
// logger otherwise.
func newLogger() *zap.Logger {
	if !flags.verbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// parseColumns converts "name:Type" definitions into schema columns.
func parseColumns(defs []string) ([]types.Column, error) {
	cols := make([]types.Column, 0, len(defs))
	for _, def := range defs {
		name, typeName, ok := strings.Cut(def, ":")
		if !ok || name == "" || typeName == "" {
			return nil, fmt.Errorf("invalid column %q, want name:Type", def)
		}
		ct := types.ColumnType(typeName)
		if !types.IsValidType(ct) {
			return nil, fmt.Errorf("column %q: unknown type %q (supported: %s)",
				name, typeName, supportedTypes())
		}
		cols = append(cols, types.Column{Name: name, Type: ct})
	}
	return cols, nil
}

func supportedTypes() string {
	names := make([]string, 0, len(types.ColumnTypes()))
	for _, t := range types.ColumnTypes() {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}

// parseRowValues converts "col=token" pairs into the raw map Table.Insert
// accepts. Tokens use each type's canonical text; StringInterval columns take
// the JSON object form, e.g. range={"low":"a","high":"b"}. Entries from
// --html-file ("col=path") load the named .html/.htm file's content.
func parseRowValues(pairs, htmlFiles []string) (map[string]any, error) {
	raw := make(map[string]any, len(pairs)+len(htmlFiles))
	for _, pair := range pairs {
		col, token, ok := strings.Cut(pair, "=")
		if !ok || col == "" {
			return nil, fmt.Errorf("invalid value %q, want col=token", pair)
		}
		raw[col] = token
	}
	for _, pair := range htmlFiles {
		col, path, ok := strings.Cut(pair, "=")
		if !ok || col == "" {
			return nil, fmt.Errorf("invalid --html-file %q, want col=path", pair)
		}
		content, err := readHTMLFile(path)
		if err != nil {
			return nil, err
		}
		raw[col] = content
	}
	return raw, nil
}

// readHTMLFile loads the content of an .html or .htm file.
func readHTMLFile(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".html" && ext != ".htm" {
		return "", fmt.Errorf("%s: not an .html or .htm file", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read HTML file: %w", err)
	}
	return string(data), nil
}

// recordOut renders a record for output: canonical text per column, the
// {"low","high"} object for intervals.
func recordOut(schema *types.Schema, rec types.Record) (map[string]any, error) {
	out := make(map[string]any, schema.Len())
	for _, col := range schema.Columns() {
		v, err := rec.Get(col.Name)
		if err != nil {
			return nil, err
		}
		if col.Type == types.TypeStringInterval {
			iv := v.Interval()
			out[col.Name] = map[string]string{"low": iv.Low, "high": iv.High}
			continue
		}
		out[col.Name] = v.CanonicalText()
	}
	return out, nil
}

// renderRecord formats a record as "col=text" pairs in schema order for
// plain-text output.
func renderRecord(schema *types.Schema, rec types.Record) string {
	parts := make([]string, 0, schema.Len())
	for _, col := range schema.Columns() {
		v, err := rec.Get(col.Name)
		if err != nil {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%s", col.Name, v.CanonicalText()))
	}
	return strings.Join(parts, " ")
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
