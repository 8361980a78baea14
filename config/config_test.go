package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dhamidi/oxiparse/oxiby/parser"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, "fail-fast", cfg.Policy)
	require.Equal(t, parser.DefaultMaxDepth, cfg.MaxDepth)
	require.True(t, cfg.IsSource("src/main.oxi"))
	require.False(t, cfg.IsSource("README.md"))
}

func TestLoadFromStringTOML(t *testing.T) {
	cfg, err := LoadFromString(`
policy = "tolerant"
max_depth = 64
comments = true
extensions = [".oxi", ".ox"]
exclude = ["vendor", "*_gen.oxi"]
workers = 2
`, FormatTOML)
	require.NoError(t, err)
	require.Equal(t, "tolerant", cfg.Policy)
	require.Equal(t, 64, cfg.MaxDepth)
	require.True(t, cfg.Comments)
	require.Equal(t, []string{".oxi", ".ox"}, cfg.Extensions)
	require.Equal(t, 2, cfg.Workers)

	require.True(t, cfg.Excluded("vendor/lib/a.oxi"))
	require.True(t, cfg.Excluded("src/types_gen.oxi"))
	require.False(t, cfg.Excluded("src/types.oxi"))
}

func TestLoadFromStringYAML(t *testing.T) {
	cfg, err := LoadFromString("policy: tolerant\nmax_depth: 32\n", FormatYAML)
	require.NoError(t, err)
	require.Equal(t, "tolerant", cfg.Policy)
	require.Equal(t, 32, cfg.MaxDepth)
	require.Equal(t, []string{".oxi"}, cfg.Extensions)
}

func TestLoadFromStringRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		format  Format
	}{
		{"policy", `policy = "lenient"`, FormatTOML},
		{"depth", `max_depth = 0`, FormatTOML},
		{"workers", "workers: -1", FormatYAML},
		{"syntax", `policy = `, FormatTOML},
		{"pattern", `exclude = ["["]`, FormatTOML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromString(tt.content, tt.format)
			require.Error(t, err)
		})
	}
}

func TestParserOptions(t *testing.T) {
	cfg := Default()
	cfg.Policy = "tolerant"
	cfg.MaxDepth = 4

	p := parser.ParseExpression(nil, cfg.ParserOptions()...)
	require.Equal(t, parser.PolicyTolerant, p.Policy())

	_, err := parser.ParseExpression(stringsReader("((((1))))"), cfg.ParserOptions()...).Finish()
	require.ErrorIs(t, err, parser.ErrStructural)
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "pkg")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, err := Discover(nested)
	require.NoError(t, err)
	require.Empty(t, cfg.Path)

	path := filepath.Join(root, "oxiparse.yaml")
	require.NoError(t, os.WriteFile(path, []byte("policy: tolerant\n"), 0o644))

	cfg, err = Discover(nested)
	require.NoError(t, err)
	require.Equal(t, path, cfg.Path)
	require.Equal(t, "tolerant", cfg.Policy)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
