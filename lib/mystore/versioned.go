package mystore

import (
	"context"
	"fmt"
)

// Versioned is implemented by entities that carry an optimistic-concurrency version.
type Versioned[T any] interface {
	GetUID() string
	GetVersion() int
	WithVersion(version int) T
}

// VersionedStore adds create-once and compare-version-on-update semantics on top of a Store.
type VersionedStore[T Versioned[T]] struct {
	store Store[T]
}

func NewVersionedStore[T Versioned[T]](store Store[T]) *VersionedStore[T] {
	return &VersionedStore[T]{
		store: store,
	}
}

// Create stores value with version 0, or fails with ErrDuplicateKey when its uid is taken.
func (s *VersionedStore[T]) Create(c context.Context, value T) (T, error) {
	created := value.WithVersion(0)

	err := s.store.RunInTransaction(c, func(c context.Context) error {
		_, exists, err := s.store.Get(c, value.GetUID())
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%s: %w", value.GetUID(), ErrDuplicateKey)
		}
		return s.store.Put(c, value.GetUID(), created)
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return created, nil
}

// Update stores value when its version equals the stored one and returns it with the version incremented.
func (s *VersionedStore[T]) Update(c context.Context, value T) (T, error) {
	var updated T

	err := s.store.RunInTransaction(c, func(c context.Context) error {
		current, exists, err := s.store.Get(c, value.GetUID())
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%s: %w", value.GetUID(), ErrNotFound)
		}
		if current.GetVersion() != value.GetVersion() {
			return fmt.Errorf("%s has version %d, got %d: %w",
				value.GetUID(), current.GetVersion(), value.GetVersion(), ErrOptimisticLock)
		}
		updated = value.WithVersion(value.GetVersion() + 1)
		return s.store.Put(c, value.GetUID(), updated)
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return updated, nil
}

func (s *VersionedStore[T]) Get(c context.Context, uid string) (T, bool, error) {
	return s.store.Get(c, uid)
}

func (s *VersionedStore[T]) Query(c context.Context, filters []Filter, orderByField string) ([]T, error) {
	return s.store.Query(c, filters, orderByField)
}

// DeleteWhere removes every matching entity. Nothing matching is not an error.
func (s *VersionedStore[T]) DeleteWhere(c context.Context, filters []Filter) (int, error) {
	matches, err := s.store.Query(c, filters, "")
	if err != nil {
		return 0, err
	}

	for _, m := range matches {
		err = s.store.Delete(c, m.GetUID())
		if err != nil {
			return 0, err
		}
	}

	return len(matches), nil
}
