package kv

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_GetSet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Get(ctx, "bookings:online")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	value := []byte(`[{"id":"1"}]`)
	require.NoError(t, store.Set(ctx, "bookings:online", value))

	// мутация исходного среза не должна влиять на сохраненное значение
	value[0] = 'X'

	got, err := store.Get(ctx, "bookings:online")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, string(got))
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewMemoryStore()
	assert.ErrorIs(t, store.Set(ctx, "k", []byte("v")), context.Canceled)
	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}

type recordingObserver struct {
	calls []string
}

func (o *recordingObserver) ObserveKVOperation(backend, operation string, err error, _ time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	o.calls = append(o.calls, backend+":"+operation+":"+status)
}

func TestInstrumentedStore(t *testing.T) {
	ctx := context.Background()
	observer := &recordingObserver{}
	store := NewInstrumentedStore(NewMemoryStore(), "memory", observer)

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	require.NoError(t, store.Set(ctx, "k", []byte("v")))

	assert.Equal(t, []string{"memory:get:ok", "memory:set:ok"}, observer.calls)
}

func TestWithPrefix(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()

	assert.Same(t, inner, WithPrefix(inner, "").(*MemoryStore))

	store := WithPrefix(inner, "staging:")
	require.NoError(t, store.Set(ctx, "schedule:anna", []byte("{}")))

	got, err := inner.Get(ctx, "staging:schedule:anna")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(got))

	got, err = store.Get(ctx, "schedule:anna")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(got))
}
