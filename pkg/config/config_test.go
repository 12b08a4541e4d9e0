package config_test

import (
	"os"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-reconciler/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "utf-8", cfg.Input.Encoding)
	assert.Equal(t, rune(0), cfg.Input.DelimiterRune())
	assert.Equal(t, "output/reconciliation_report.json", cfg.Output.Path)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.False(t, cfg.JWT.Enabled())
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("INPUT_ENCODING", "Latin1")
	t.Setenv("INPUT_DELIMITER", `\t`)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cr3t")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "latin1", cfg.Input.Encoding)
	assert.Equal(t, '\t', cfg.Input.DelimiterRune())
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.JWT.Enabled())
}

func TestLoadWithFlags_FlagGanaSobreEntorno(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("OUTPUT_PATH", "from-env.json")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.StringP("output", "o", "output/reconciliation_report.json", "")
	fs.String("delimiter", "", "")
	require.NoError(t, fs.Parse([]string{"-o", "from-flag.json", "--delimiter", ";"}))

	cfg, err := config.LoadWithFlags(fs)
	require.NoError(t, err)
	assert.Equal(t, "from-flag.json", cfg.Output.Path)
	assert.Equal(t, ';', cfg.Input.DelimiterRune())
}

func TestLoadWithFlags_FlagSinCambiarNoPisaEntorno(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("OUTPUT_PATH", "from-env.json")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.StringP("output", "o", "default.json", "")
	require.NoError(t, fs.Parse(nil))

	cfg, err := config.LoadWithFlags(fs)
	require.NoError(t, err)
	assert.Equal(t, "from-env.json", cfg.Output.Path)
}

func TestLoad_ValidacionFalla(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("INPUT_ENCODING", "ebcdic")
	t.Setenv("OUTPUT_FORMAT", "yaml")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Config.Input.Encoding")
	assert.Contains(t, err.Error(), "Config.Output.Format")
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
