package di

import (
	"go.uber.org/dig"
)

type (
	Container     = dig.Container
	Function      = interface{}
	ProvideOption = dig.ProvideOption
	InvokeOption  = dig.InvokeOption
)

var Default = New()

func New() *Container { return dig.New() }

func Provide(c *Container, f Function, options ...ProvideOption) error {
	return c.Provide(f, options...)
}

func MustProvide(c *Container, f Function, options ...ProvideOption) {
	err := Provide(c, f, options...)
	if err != nil {
		panic(err)
	}
}

func Invoke(c *Container, f Function, options ...InvokeOption) error {
	return c.Invoke(f, options...)
}

func MustInvoke(c *Container, f Function, options ...InvokeOption) {
	err := Invoke(c, f, options...)
	if err != nil {
		panic(err)
	}
}
