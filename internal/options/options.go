// Package options implements the generic functional-option plumbing used by
// the configurable types in this module.
package options

// Option configures a target of type T and may reject invalid settings.
type Option[T any] interface {
	apply(T) error
}

// fn adapts a plain function into an Option.
type fn[T any] struct {
	f func(T) error
}

func (o fn[T]) apply(target T) error {
	return o.f(target)
}

// New wraps a fallible configuration function into an Option.
func New[T any](f func(T) error) Option[T] {
	return fn[T]{f: f}
}

// NoError wraps an infallible configuration function into an Option.
func NoError[T any](f func(T)) Option[T] {
	return fn[T]{f: func(target T) error {
		f(target)
		return nil
	}}
}

// Apply runs every option against target in order, stopping at the first
// error.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}
