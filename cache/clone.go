package cache

import (
	"fmt"
	"reflect"

	"github.com/huandu/go-clone"
)

// isPrimitive reports whether v is nil or a scalar. Scalars are copied by
// assignment, so cloning them is skipped.
func isPrimitive(v any) bool {
	if v == nil {
		return true
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.String:
		return true
	}
	return false
}

// deepCopier inspects v and returns a func producing deep copies of values
// shaped like it. Copies keep dynamic types and unexported fields. Values
// reaching a channel or a func are rejected with ErrUncloneable.
func deepCopier[V any](v V) (func(V) V, error) {
	w := cloneWalker{seen: make(map[visit]struct{})}
	if err := w.walk(reflect.ValueOf(any(v))); err != nil {
		return nil, err
	}

	copyFn := clone.Clone
	if w.shared {
		// Slowly tracks visited pointers, so aliasing and cycles survive.
		copyFn = clone.Slowly
	}
	return func(v V) V {
		return copyFn(v).(V)
	}, nil
}

type visit struct {
	ptr uintptr
	typ reflect.Type
}

// cloneWalker scans a value graph before it is copied.
type cloneWalker struct {
	seen   map[visit]struct{}
	shared bool
}

// enter records a reference and reports whether it was new.
func (w *cloneWalker) enter(v reflect.Value) bool {
	k := visit{ptr: v.Pointer(), typ: v.Type()}
	if _, ok := w.seen[k]; ok {
		w.shared = true
		return false
	}
	w.seen[k] = struct{}{}
	return true
}

func (w *cloneWalker) walk(v reflect.Value) error {
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return fmt.Errorf("%w: %s cannot be copied", ErrUncloneable, v.Type())
	case reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return w.walk(v.Elem())
	case reflect.Pointer:
		if v.IsNil() || !w.enter(v) {
			return nil
		}
		return w.walk(v.Elem())
	case reflect.Map:
		if v.IsNil() || !w.enter(v) {
			return nil
		}
		iter := v.MapRange()
		for iter.Next() {
			if err := w.walk(iter.Key()); err != nil {
				return err
			}
			if err := w.walk(iter.Value()); err != nil {
				return err
			}
		}
	case reflect.Slice:
		if v.IsNil() || v.Len() == 0 || !w.enter(v) {
			return nil
		}
		for i := 0; i < v.Len(); i++ {
			if err := w.walk(v.Index(i)); err != nil {
				return err
			}
		}
	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := w.walk(v.Index(i)); err != nil {
				return err
			}
		}
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if err := w.walk(v.Field(i)); err != nil {
				return err
			}
		}
	}
	return nil
}
