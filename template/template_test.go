package template

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corpix/proquint/di"
)

func TestFuncs(t *testing.T) {
	tpl, err := Parse("test", `{{ proquint "ip" .ip }} {{ unproquint "hex" "damuh-jinum" }} {{ isProquint "babab" }} {{ upper "ok" }}`)
	require.NoError(t, err)

	buf := bytes.NewBuffer(nil)
	err = tpl.Execute(buf, map[string]string{"ip": "127.0.0.1"})
	require.NoError(t, err)
	assert.Equal(t, "lusab-babad 12345678 true OK", buf.String())
}

func TestFuncsError(t *testing.T) {
	tpl, err := Parse("test", `{{ proquint "ip" "nope" }}`)
	require.NoError(t, err)

	err = tpl.Execute(bytes.NewBuffer(nil), nil)
	assert.Error(t, err)
}

func TestWithProvide(t *testing.T) {
	cont := di.New()
	tpl := New("provided", WithProvide(cont))

	var resolved *Template
	di.MustInvoke(cont, func(t *Template) { resolved = t })
	assert.Same(t, tpl, resolved)
}

func TestContext(t *testing.T) {
	ctx := NewContext().With("a", 1).With("b", "two")
	assert.Equal(t, Context{"a": 1, "b": "two"}, ctx)
}

func TestWithInvoke(t *testing.T) {
	cont := di.New()
	di.MustProvide(cont, func() string { return "lusab-babad" })

	var name string
	New("invoked", WithInvoke(cont, func(id string) { name = id }))
	assert.Equal(t, "lusab-babad", name)
}
