package db_models

import "github.com/google/uuid"

// Ref is a reference to another row that may or may not have been loaded.
// The zero value is an unresolved reference to uuid.Nil.
type Ref[T any] struct {
	id    uuid.UUID
	value *T
}

func Unresolved[T any](id uuid.UUID) Ref[T] {
	return Ref[T]{id: id}
}

func Resolved[T any](id uuid.UUID, value *T) Ref[T] {
	if value == nil {
		return Ref[T]{id: id}
	}
	return Ref[T]{id: id, value: value}
}

// Lookup resolves id against rows loaded in one batch. Ids that were not
// loaded stay unresolved.
func Lookup[T any](id uuid.UUID, loaded map[uuid.UUID]*T) Ref[T] {
	if v, ok := loaded[id]; ok && v != nil {
		return Resolved(id, v)
	}
	return Unresolved[T](id)
}

func (r Ref[T]) ID() uuid.UUID { return r.id }

// Resolved returns the loaded row, or false when only the id is known
// (not joined, or the referenced row no longer exists).
func (r Ref[T]) Resolved() (*T, bool) {
	return r.value, r.value != nil
}
