package translate

import "github.com/goliatone/go-formbridge/pkg/formio"

// Decorator enriches a translated schema before it is handed to the caller.
type Decorator interface {
	Decorate(*formio.Schema) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*formio.Schema) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(schema *formio.Schema) error {
	return fn(schema)
}
