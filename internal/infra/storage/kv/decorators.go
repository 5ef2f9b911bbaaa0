package kv

import (
	"context"
	"errors"
	"time"
)

// PrefixedStore добавляет префикс ко всем ключам (общий Redis на несколько окружений)
type PrefixedStore struct {
	next   Store
	prefix string
}

// WithPrefix оборачивает store; пустой префикс возвращает store как есть
func WithPrefix(store Store, prefix string) Store {
	if prefix == "" {
		return store
	}
	return &PrefixedStore{next: store, prefix: prefix}
}

func (s *PrefixedStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.next.Get(ctx, s.prefix+key)
}

func (s *PrefixedStore) Set(ctx context.Context, key string, value []byte) error {
	return s.next.Set(ctx, s.prefix+key, value)
}

// InstrumentedStore пишет латентность операций в Observer
type InstrumentedStore struct {
	next     Store
	backend  string
	observer Observer
}

func NewInstrumentedStore(store Store, backend string, observer Observer) *InstrumentedStore {
	return &InstrumentedStore{next: store, backend: backend, observer: observer}
}

func (s *InstrumentedStore) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	value, err := s.next.Get(ctx, key)

	observed := err
	if errors.Is(err, ErrKeyNotFound) {
		observed = nil
	}
	s.observer.ObserveKVOperation(s.backend, "get", observed, time.Since(start))
	return value, err
}

func (s *InstrumentedStore) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := s.next.Set(ctx, key, value)
	s.observer.ObserveKVOperation(s.backend, "set", err, time.Since(start))
	return err
}
