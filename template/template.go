package template

import (
	"html/template"

	sprig "github.com/Masterminds/sprig/v3"

	"github.com/corpix/proquint/di"
	"github.com/corpix/proquint/encoding"
)

type (
	FuncMap  = template.FuncMap
	Template = template.Template

	Option func(*Template)

	ContextKey string
	Context    map[string]interface{}
)

var Must = template.Must

func NewContext() Context { return Context{} }

func (c Context) With(key ContextKey, value interface{}) Context {
	c[string(key)] = value
	return c
}

//

// Funcs returns sprig functions extended with conversion helpers:
//
//	{{ proquint "ip" "127.0.0.1" }}     -> lusab-babad
//	{{ unproquint "ip" "lusab-babad" }} -> 127.0.0.1
//	{{ isProquint "lusab-babad" }}      -> true
func Funcs() FuncMap {
	funcs := FuncMap(sprig.FuncMap())
	funcs["proquint"] = func(format string, value string) (string, error) {
		buf, err := encoding.ConvertNamed(format, string(encoding.EncodeDecoderTypeProquint), []byte(value))
		return string(buf), err
	}
	funcs["unproquint"] = func(format string, value string) (string, error) {
		buf, err := encoding.ConvertNamed(string(encoding.EncodeDecoderTypeProquint), format, []byte(value))
		return string(buf), err
	}
	funcs["isProquint"] = encoding.IsProquint
	funcs["formats"] = encoding.Names
	return funcs
}

func WithProvide(cont *di.Container) Option {
	return func(t *Template) {
		di.MustProvide(cont, func() *Template { return t })
	}
}

func WithInvoke(cont *di.Container, f di.Function) Option {
	return func(t *Template) {
		di.MustInvoke(cont, f)
	}
}

func Parse(name string, data string) (*Template, error) {
	return New(name).Parse(data)
}

func New(name string, options ...Option) *Template {
	t := template.New(name).Funcs(Funcs())
	for _, option := range options {
		option(t)
	}
	return t
}
