package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowdraw/internal/shape"
)

func TestParseOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `
save_directory: ` + dir + `
start_menu: false
cell_width: 8
history_limit: 50
log_file: ` + filepath.Join(dir, "flowdraw.log") + `
default_fill: "#3498db"
`
	cfg, err := Parse(strings.NewReader(content))
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.SaveDirectory)
	assert.False(t, cfg.StartMenu)
	assert.True(t, cfg.Confirmations)
	assert.Equal(t, 8.0, cfg.CellWidth)
	assert.Equal(t, 20.0, cfg.CellHeight)
	assert.Equal(t, 50, cfg.HistoryLimit)
	assert.Equal(t, filepath.Join(dir, "flowdraw.log"), cfg.LogFile)
	assert.Equal(t, shape.Palette[6], cfg.Fill())
	assert.Equal(t, shape.Black, cfg.Stroke())
}

func TestParseRejectsBadValues(t *testing.T) {
	for name, content := range map[string]string{
		"colour":  `default_stroke: "black"`,
		"cell":    `cell_height: 0`,
		"scale":   `png_scale: -1`,
		"garbage": `start_menu: [1, 2`,
	} {
		t.Run(name, func(t *testing.T) {
			cfg, err := Parse(strings.NewReader(content))
			assert.Error(t, err)
			assert.Equal(t, Default(), cfg)
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFromHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	require.NoError(t, os.WriteFile(filepath.Join(home, FileName), []byte("confirmations: false\n"), 0644))
	cfg, err = Load()
	require.NoError(t, err)
	assert.False(t, cfg.Confirmations)
}

func TestGetSavePath(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "a.flow", cfg.GetSavePath("a.flow"))

	cfg.SaveDirectory = filepath.Join(t.TempDir(), "charts")
	got := cfg.GetSavePath("a.flow")
	assert.Equal(t, filepath.Join(cfg.SaveDirectory, "a.flow"), got)
	info, err := os.Stat(cfg.SaveDirectory)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	assert.Equal(t, "/tmp/x.flow", cfg.GetSavePath("/tmp/x.flow"))
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	assert.Equal(t, filepath.Join(home, "diagrams"), expandPath("~/diagrams"))
	assert.Equal(t, "", expandPath(""))
}
