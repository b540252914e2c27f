package suggest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionStoreEvictIdle(t *testing.T) {
	store := NewSessionStore()
	store.Put("stale", &Session{Step: StepName})
	store.Put("fresh", &Session{Step: StepPhoto})

	if stale, ok := store.Get("stale"); assert.True(t, ok) {
		stale.UpdatedAt = time.Now().Add(-2 * time.Hour)
	}

	evicted := store.EvictIdle(time.Hour)
	assert.Equal(t, 1, evicted)

	_, ok := store.Get("stale")
	assert.False(t, ok)
	_, ok = store.Get("fresh")
	assert.True(t, ok)
}

func TestSessionStoreDelete(t *testing.T) {
	store := NewSessionStore()
	store.Put("u1", &Session{Step: StepPrice})
	store.Delete("u1")
	_, ok := store.Get("u1")
	assert.False(t, ok)

	// Deleting a missing session is a no-op.
	store.Delete("u1")
}
