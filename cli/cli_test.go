package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corpix/proquint/config"
	"github.com/corpix/proquint/crypto"
)

func newTestCli(stdin string) (*Cli, *config.BaseConfig, *bytes.Buffer) {
	var (
		cfg = &config.BaseConfig{}
		out = bytes.NewBuffer(nil)
	)
	c := New(
		WithName("proquint"),
		WithConfigTools(cfg, config.YamlUnmarshaler, config.YamlMarshaler),
		WithLogTools(cfg.LogConfig),
		WithCodecTools(cfg.CodecConfig),
	)
	c.Writer = out
	c.Reader = strings.NewReader(stdin)
	return c, cfg, out
}

func run(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	c, _, out := newTestCli(stdin)
	require.NoError(t, c.Run(append([]string{"proquint"}, args...)))
	return out.String()
}

func TestEncode(t *testing.T) {
	assert.Equal(t,
		"lusab-babad\ngutih-tugad\n",
		run(t, "", "encode", "--from", "ip", "127.0.0.1", "63.84.220.193"),
	)
	assert.Equal(t, "damuh-jinum\n", run(t, "", "encode", "12345678"))
}

func TestEncodeStdin(t *testing.T) {
	assert.Equal(t,
		"mudof-sakat\ntibup-zujah\n",
		run(t, "140.98.193.141\n\n212.58.253.68\n", "encode", "-f", "ip"),
	)
}

func TestDecode(t *testing.T) {
	assert.Equal(t, "127.0.0.1\n", run(t, "", "decode", "--to", "ip", "lusab-babad"))
	assert.Equal(t, "12345678\n", run(t, "", "decode", "damuh-jinum"))
}

func TestConvert(t *testing.T) {
	assert.Equal(t, "2130706433\n", run(t, "", "convert", "-f", "ip", "-t", "uint32", "127.0.0.1"))
}

func TestDecodeInvalid(t *testing.T) {
	c, _, _ := newTestCli("")
	err := c.Run([]string{"proquint", "decode", "lusab-babed"})
	assert.Error(t, err)

	err = c.Run([]string{"proquint", "encode", "--from", "morse", "sos"})
	assert.Error(t, err)
}

func TestRandom(t *testing.T) {
	lines := strings.Fields(run(t, "", "random", "--size", "8", "--count", "3"))
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.Len(t, line, 23)
	}

	c, _, _ := newTestCli("")
	assert.Error(t, c.Run([]string{"proquint", "random", "--size", "3"}))
}

func TestUuid(t *testing.T) {
	fields := strings.Fields(run(t, "", "uuid"))
	require.Len(t, fields, 2)
	assert.Len(t, fields[0], 36)
	assert.Len(t, fields[1], 47)
}

func TestSeed(t *testing.T) {
	secret := "babad-bamag-bibaj-bimal.boban-bomar-bubat-bumaz"
	first := run(t, "", "seed", "--secret", secret)
	second := run(t, "", "seed", "--secret", secret)
	assert.Equal(t, first, second)
	assert.Contains(t, first, secret)

	generated := run(t, "", "seed")
	line := strings.SplitN(generated, "\n", 2)[0]
	_, err := crypto.ParseSeed(strings.TrimSpace(strings.TrimPrefix(line, "seed:")))
	assert.NoError(t, err)
}

func TestQr(t *testing.T) {
	out := run(t, "", "qr", "lusab-babad")
	assert.True(t, strings.HasPrefix(out, "\x89PNG"))

	path := filepath.Join(t.TempDir(), "qr.png")
	assert.Empty(t, run(t, "", "qr", "--output", path, "lusab-babad"))
	buf, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf, []byte("\x89PNG")))
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("codec:\n  input: ip\n  output: ip\n"), 0o600))

	assert.Equal(t, "lusab-babad\n", run(t, "", "--config", path, "encode", "127.0.0.1"))
	assert.Equal(t, "127.0.0.1\n", run(t, "", "--config", path, "decode", "lusab-babad"))
	assert.Equal(t, "configuration is valid\n", run(t, "", "--config", path, "config", "validate"))
}

func TestConfigFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("codec:\n  input: morse\n"), 0o600))

	c, _, _ := newTestCli("")
	assert.Error(t, c.Run([]string{"proquint", "--config", path, "encode", "x"}))
}

func TestConfigShow(t *testing.T) {
	out := run(t, "", "config", "show")
	assert.Contains(t, out, "codec:")
	assert.Contains(t, out, "input: hex")
}
