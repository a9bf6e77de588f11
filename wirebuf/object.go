package wirebuf

import (
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// Object is the capability a value type implements to become persistable.
// EncodeTo writes the value's fields through the buffer primitives in a
// fixed, type-specific order; DecodeFrom reads them back in the same order.
// The store and the collection framing never look inside a value: they only
// ever encode, decode, and construct blank instances.
type Object interface {
	EncodeTo(b *Buffer)
	DecodeFrom(b *Buffer) error
}

// factories maps reflect.Type to func() Object.
var factories sync.Map

// Register binds a factory for T, letting decode construct blank instances
// of types that are not plain pointers to structs (interface-typed fields,
// types needing non-zero defaults). Pointer-to-struct types work without
// registration. A factory must have no side effects beyond field defaults;
// it may return nil to report that a blank instance cannot be built.
func Register[T Object](factory func() T) {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	factories.Store(typ, func() Object { return factory() })
}

// newValue constructs a blank instance of T: registered factory first, then
// a zero pointer-to-struct allocation. When neither applies, or the factory
// yields nil, the failure is logged and decode degrades to an empty result.
func newValue[T Object]() (T, bool) {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if f, ok := factories.Load(typ); ok {
		obj := f.(func() Object)()
		if isNilObject(obj) {
			reportConstructionFailure(typ)
			var zero T
			return zero, false
		}
		return obj.(T), true
	}
	if typ.Kind() == reflect.Pointer && typ.Elem().Kind() == reflect.Struct {
		return reflect.New(typ.Elem()).Interface().(T), true
	}
	reportConstructionFailure(typ)
	var zero T
	return zero, false
}

func reportConstructionFailure(typ reflect.Type) {
	cerr := &ConstructionError{Type: typ}
	zap.L().Error("cannot construct object during decode", zap.String("type", typ.String()), zap.Error(cerr))
}

// New constructs a blank instance of T for a top-level decode. The second
// result is false when construction degraded (already logged); callers treat
// the payload as yielding nothing.
func New[T Object]() (T, bool) {
	return newValue[T]()
}

func isNilObject(obj Object) bool {
	if obj == nil {
		return true
	}
	v := reflect.ValueOf(obj)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}
