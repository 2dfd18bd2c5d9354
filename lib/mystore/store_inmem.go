package mystore

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"
)

type InMemoryStore[T any] struct {
	sync.Mutex
	Items map[string]T
}

func NewInMemoryStore[T any](c context.Context) (*InMemoryStore[T], func(), error) {
	return &InMemoryStore[T]{
		Items: make(map[string]T),
	}, func() {}, nil
}

func (s *InMemoryStore[T]) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	// Start transaction
	s.Lock()
	defer s.Unlock()

	return f(context.WithValue(c, ctxTransactionKey{}, true))
}

func (s *InMemoryStore[T]) lock(c context.Context) func() {
	if c.Value(ctxTransactionKey{}) != nil {
		return func() {}
	}
	s.Lock()
	return s.Unlock
}

func (s *InMemoryStore[T]) Put(c context.Context, uid string, value T) error {
	unlock := s.lock(c)
	defer unlock()

	s.Items[uid] = value

	return nil
}

func (s *InMemoryStore[T]) Get(c context.Context, uid string) (T, bool, error) {
	unlock := s.lock(c)
	defer unlock()

	result, exists := s.Items[uid]

	return result, exists, nil
}

func (s *InMemoryStore[T]) Delete(c context.Context, uid string) error {
	unlock := s.lock(c)
	defer unlock()

	delete(s.Items, uid)

	return nil
}

func (s *InMemoryStore[T]) List(c context.Context) ([]T, error) {
	unlock := s.lock(c)
	defer unlock()

	result := make([]T, 0, len(s.Items))
	for _, v := range s.Items {
		result = append(result, v)
	}

	return result, nil
}

// Query supports equality filters only.
func (s *InMemoryStore[T]) Query(c context.Context, filters []Filter, orderByField string) ([]T, error) {
	for _, f := range filters {
		if f.Compare != "=" {
			return nil, fmt.Errorf("unsupported comparison %q on field %s", f.Compare, f.Field)
		}
	}

	all, err := s.List(c)
	if err != nil {
		return nil, err
	}

	result := []T{}
	for _, item := range all {
		matches, err := matchesAll(item, filters)
		if err != nil {
			return nil, err
		}
		if matches {
			result = append(result, item)
		}
	}

	if orderByField != "" {
		err = orderBy(result, orderByField)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

func matchesAll[T any](item T, filters []Filter) (bool, error) {
	v := reflect.Indirect(reflect.ValueOf(item))
	for _, f := range filters {
		field := v.FieldByName(f.Field)
		if !field.IsValid() {
			return false, fmt.Errorf("unknown field %s on %T", f.Field, item)
		}
		if !reflect.DeepEqual(field.Interface(), f.Value) {
			return false, nil
		}
	}
	return true, nil
}

func orderBy[T any](items []T, fieldName string) error {
	var sortErr error
	sort.SliceStable(items, func(i, j int) bool {
		left := reflect.Indirect(reflect.ValueOf(items[i])).FieldByName(fieldName)
		right := reflect.Indirect(reflect.ValueOf(items[j])).FieldByName(fieldName)
		if !left.IsValid() || !right.IsValid() {
			sortErr = fmt.Errorf("unknown order field %s", fieldName)
			return false
		}
		switch left.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return left.Int() < right.Int()
		case reflect.String:
			return left.String() < right.String()
		default:
			sortErr = fmt.Errorf("cannot order on field %s of kind %s", fieldName, left.Kind())
			return false
		}
	})
	return sortErr
}
