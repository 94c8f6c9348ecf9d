package replay

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/aretw0/errfix/pkg/domain"
)

// VerifyPrefix is prepended to a state label to name its verification member.
const VerifyPrefix = "test_"

// VerifyName returns the name of the member that verifies state.
func VerifyName(state domain.StateID) string {
	return VerifyPrefix + state
}

// Driver executes named actions and verifications against a system under test.
type Driver interface {
	Invoke(ctx context.Context, name string) error
}

// Capabilities is implemented by drivers that know up front which names they handle.
type Capabilities interface {
	Has(name string) bool
}

// AsDriver adapts v into a Driver.
// Text, lists, numbers and other values without callable members fail with domain.ErrInvalidDriver.
func AsDriver(v any) (Driver, error) {
	switch d := v.(type) {
	case nil:
		return nil, fmt.Errorf("nil driver: %w", domain.ErrInvalidDriver)
	case *Registry:
		if d == nil {
			return nil, fmt.Errorf("nil registry: %w", domain.ErrInvalidDriver)
		}
		if err := d.Err(); err != nil {
			return nil, err
		}
		return d, nil
	case map[string]func() error:
		r := NewRegistry()
		for name, fn := range d {
			if fn == nil {
				r.Register(name, nil)
				continue
			}
			r.Register(name, func(context.Context) error { return fn() })
		}
		return registryOrErr(r)
	case map[string]func(context.Context) error:
		r := NewRegistry()
		for name, fn := range d {
			r.Register(name, fn)
		}
		return registryOrErr(r)
	case Driver:
		return d, nil
	}

	rv := reflect.ValueOf(v)
	if rv.NumMethod() == 0 {
		return nil, fmt.Errorf("%T exposes no methods: %w", v, domain.ErrInvalidDriver)
	}
	return &methodDriver{target: rv}, nil
}

func registryOrErr(r *Registry) (Driver, error) {
	if err := r.Err(); err != nil {
		return nil, err
	}
	return r, nil
}

// methodDriver dispatches names to exported methods of a value.
type methodDriver struct {
	target reflect.Value
}

var (
	errorType   = reflect.TypeFor[error]()
	contextType = reflect.TypeFor[context.Context]()
)

func (d *methodDriver) method(name string) (reflect.Value, bool) {
	for _, candidate := range []string{name, MethodName(name)} {
		m := d.target.MethodByName(candidate)
		if m.IsValid() && callable(m.Type()) {
			return m, true
		}
	}
	return reflect.Value{}, false
}

// callable accepts func(), func() error, func(context.Context) and func(context.Context) error.
func callable(t reflect.Type) bool {
	switch t.NumIn() {
	case 0:
	case 1:
		if t.In(0) != contextType {
			return false
		}
	default:
		return false
	}
	switch t.NumOut() {
	case 0:
		return true
	case 1:
		return t.Out(0) == errorType
	}
	return false
}

func (d *methodDriver) Has(name string) bool {
	_, ok := d.method(name)
	return ok
}

func (d *methodDriver) Invoke(ctx context.Context, name string) error {
	m, ok := d.method(name)
	if !ok {
		return fmt.Errorf("%s has no member %q: %w", d.target.Type(), name, domain.ErrInvalidDriver)
	}
	var in []reflect.Value
	if m.Type().NumIn() == 1 {
		in = []reflect.Value{reflect.ValueOf(&ctx).Elem()}
	}
	out := m.Call(in)
	if len(out) == 1 && !out[0].IsNil() {
		return out[0].Interface().(error)
	}
	return nil
}

// MethodName converts a label into an exported Go method name:
// separators ('_', '-', ' ', '.') are dropped and each word is capitalised.
func MethodName(label string) string {
	words := strings.FieldsFunc(label, func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '.'
	})
	var sb strings.Builder
	for _, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		sb.WriteString(string(runes))
	}
	return sb.String()
}
