package schema

import (
	"fmt"
	"reflect"
	"sync"

	"golang.org/x/sync/singleflight"
)

var (
	cache sync.Map // reflect.Type -> *Descriptor
	group singleflight.Group
)

// Of returns the cached descriptor for T, deriving it on first use.
func Of[T any]() (*Descriptor, error) {
	return For(reflect.TypeFor[T]())
}

// For returns the cached descriptor for t, deriving it on first use.
// Concurrent first lookups of the same type share one derivation.
func For(t reflect.Type) (*Descriptor, error) {
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if d, ok := cache.Load(t); ok {
		return d.(*Descriptor), nil
	}
	if t == nil {
		return derive(t)
	}

	v, err, _ := group.Do(typeKey(t), func() (any, error) {
		if d, ok := cache.Load(t); ok {
			return d, nil
		}
		d, err := derive(t)
		if err != nil {
			return nil, err
		}
		actual, _ := cache.LoadOrStore(t, d)
		return actual, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Descriptor), nil
}

// Register derives and caches the descriptor for T. It panics when T cannot
// be mapped, so a bad record type fails at process start.
func Register[T any]() *Descriptor {
	d, err := Of[T]()
	if err != nil {
		panic(err)
	}
	return d
}

// typeKey identifies t for singleflight. Names are not unique (two local
// types in one package share PkgPath and String), so the key is the
// runtime type pointer.
func typeKey(t reflect.Type) string {
	return fmt.Sprintf("%p", t)
}
