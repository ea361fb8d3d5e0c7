package config

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseConfigDefault(t *testing.T) {
	c := &BaseConfig{}
	c.Default()

	require.NotNil(t, c.LogConfig())
	require.NotNil(t, c.CodecConfig())
	require.NotNil(t, c.HttpConfig())
	assert.Equal(t, "hex", c.Codec.Input)
	assert.Equal(t, "hex", c.Codec.Output)
	assert.NoError(t, c.Validate())
}

func TestCodecConfigValidate(t *testing.T) {
	samples := []struct {
		input  string
		output string
		err    bool
	}{
		{"hex", "ip", false},
		{"IP", "uint32", false},
		{"morse", "hex", true},
		{"hex", "", true},
	}
	for _, sample := range samples {
		c := &CodecConfig{Input: sample.input, Output: sample.output}
		err := c.Validate()
		if sample.err {
			assert.Error(t, err, "%s -> %s", sample.input, sample.output)
		} else {
			assert.NoError(t, err, "%s -> %s", sample.input, sample.output)
		}
	}
}

func TestLoadFromBytes(t *testing.T) {
	c := &BaseConfig{}
	_, err := Load(c, FromBytes([]byte("codec:\n  input: ip\n"), YamlUnmarshaler))
	require.NoError(t, err)
	require.NoError(t, Postprocess(c, WithDefaults(), WithValidation()))

	assert.Equal(t, "ip", c.Codec.Input)
	assert.Equal(t, "hex", c.Codec.Output)

	buf := bytes.NewBuffer(nil)
	require.NoError(t, ToWriter(buf, YamlMarshaler)(c))
	assert.Contains(t, buf.String(), "input: ip")
}

func TestExists(t *testing.T) {
	assert.False(t, Exists(filepath.Join(t.TempDir(), "config.yml")))
	assert.True(t, Exists(t.TempDir()))
}
