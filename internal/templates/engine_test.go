package templates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"text/template"

	"github.com/stretchr/testify/require"
)

var funcs = template.FuncMap{"upper": strings.ToUpper}

func baseFS() fstest.MapFS {
	return fstest.MapFS{
		"ts/module.tmpl": {Data: []byte(`{{define "greet"}}hello{{end}}{{template "greet"}} {{upper .}}`)},
		"ts/other.tmpl":  {Data: []byte(`other {{.}}`)},
		"README.md":      {Data: []byte(`ignored`)},
	}
}

func TestEngineExecute(t *testing.T) {
	engine, err := NewEngine(baseFS(), "", funcs)
	require.NoError(t, err)

	out, err := engine.Execute("ts/module.tmpl", "world")
	require.NoError(t, err)
	require.Equal(t, "hello WORLD", out)

	out, err = engine.Execute("ts/other.tmpl", 1)
	require.NoError(t, err)
	require.Equal(t, "other 1", out)

	_, err = engine.Execute("README.md", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "template not found")
}

func TestEngineCustomDirOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "ts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ts", "other.tmpl"), []byte(`custom {{upper .}}`), 0o644))

	engine, err := NewEngine(baseFS(), dir, funcs)
	require.NoError(t, err)

	out, err := engine.Execute("ts/other.tmpl", "x")
	require.NoError(t, err)
	require.Equal(t, "custom X", out)

	out, err = engine.Execute("ts/module.tmpl", "y")
	require.NoError(t, err)
	require.Equal(t, "hello Y", out)
}

func TestEngineMissingCustomDir(t *testing.T) {
	_, err := NewEngine(baseFS(), filepath.Join(t.TempDir(), "missing"), funcs)
	require.NoError(t, err)
}

func TestEngineParseError(t *testing.T) {
	fsys := fstest.MapFS{"ts/bad.tmpl": {Data: []byte(`{{if}}`)}}

	_, err := NewEngine(fsys, "", funcs)
	require.Error(t, err)
	require.Contains(t, err.Error(), "parsing template ts/bad.tmpl")
}
