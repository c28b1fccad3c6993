package sessions

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-agent/mocks"
)

func newTestRegistry(gen *mocks.MockGenerator) *Registry {
	return NewRegistry(func() *Session { return New(gen) })
}

func TestRegistryCreateDoDelete(t *testing.T) {
	r := newTestRegistry(new(mocks.MockGenerator))

	id := r.Create()
	require.NotEmpty(t, id)
	assert.Equal(t, 1, r.Len())

	var state State
	require.NoError(t, r.Do(id, func(s *Session) error {
		state = s.State()
		return nil
	}))
	assert.Equal(t, StateEmpty, state)

	var disposed *Session
	_ = r.Do(id, func(s *Session) error {
		disposed = s
		return nil
	})
	require.NoError(t, r.Delete(id))
	assert.Equal(t, StateClosed, disposed.State())
	assert.Equal(t, 0, r.Len())

	assert.ErrorIs(t, r.Do(id, func(*Session) error { return nil }), ErrNotFound)
	assert.ErrorIs(t, r.Delete(id), ErrNotFound)
}

func TestRegistryCreateWithRunsBeforePublish(t *testing.T) {
	r := newTestRegistry(new(mocks.MockGenerator))

	var (
		seenID    string
		seenState State
		lenInside int
	)
	id := r.CreateWith(func(id string, s *Session) {
		seenID = id
		seenState = s.State()
		lenInside = r.Len()
	})

	assert.Equal(t, id, seenID)
	assert.Equal(t, StateEmpty, seenState)
	assert.Equal(t, 0, lenInside)
	assert.Equal(t, 1, r.Len())
}

func TestRegistryDoReturnsCallbackError(t *testing.T) {
	r := newTestRegistry(new(mocks.MockGenerator))
	id := r.Create()
	boom := errors.New("boom")
	assert.Equal(t, boom, r.Do(id, func(*Session) error { return boom }))
}

func TestRegistrySessionsAreIndependent(t *testing.T) {
	r := newTestRegistry(new(mocks.MockGenerator))
	a, b := r.Create(), r.Create()
	assert.NotEqual(t, a, b)

	var sa, sb *Session
	_ = r.Do(a, func(s *Session) error { sa = s; return nil })
	_ = r.Do(b, func(s *Session) error { sb = s; return nil })
	assert.NotSame(t, sa, sb)
}

func TestRegistrySerializesPerSession(t *testing.T) {
	r := newTestRegistry(new(mocks.MockGenerator))
	id := r.Create()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		active  int
		overlap bool
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = r.Do(id, func(*Session) error {
				mu.Lock()
				active++
				if active > 1 {
					overlap = true
				}
				mu.Unlock()

				mu.Lock()
				active--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()
	assert.False(t, overlap)
}

func TestRegistryClose(t *testing.T) {
	r := newTestRegistry(new(mocks.MockGenerator))
	id := r.Create()
	var s *Session
	_ = r.Do(id, func(sess *Session) error { s = sess; return nil })

	r.Close()
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, StateClosed, s.State())
}
