package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	l, err := New("warn", WithWriter(buf))
	require.NoError(t, err)

	l.Info().Msg("hidden")
	l.Warn().Str("proquint", "lusab-babad").Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"proquint":"lusab-babad"`)
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New("loud")
	assert.Error(t, err)
}

func TestConfig(t *testing.T) {
	c := &Config{}
	c.Default()
	assert.Equal(t, "info", c.Level)
	assert.NoError(t, c.Validate())

	c.Level = "loud"
	assert.Error(t, c.Validate())
}
