package undo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type mockQueue struct {
	enabled bool
	calls   []string
}

func (m *mockQueue) UndoEnabled() bool { return m.enabled }

func (m *mockQueue) OpenUndoChunk(name string) { m.calls = append(m.calls, "open:"+name) }

func (m *mockQueue) CloseUndoChunk() { m.calls = append(m.calls, "close") }

// --- Tests ---

func TestChunk_WrapsWorkWhenUndoEnabled(t *testing.T) {
	queue := &mockQueue{enabled: true}

	ran := false
	require.NoError(t, Chunk(queue, "Cut the mesh", func() error {
		ran = true
		assert.Equal(t, []string{"open:Cut the mesh"}, queue.calls)
		return nil
	}))

	assert.True(t, ran)
	assert.Equal(t, []string{"open:Cut the mesh", "close"}, queue.calls)
}

func TestChunk_SkipsChunkWhenUndoDisabled(t *testing.T) {
	queue := &mockQueue{enabled: false}

	ran := false
	require.NoError(t, Chunk(queue, "Cut the mesh", func() error {
		ran = true
		return nil
	}))

	assert.True(t, ran)
	assert.Empty(t, queue.calls)
}

func TestChunk_ClosesChunkOnError(t *testing.T) {
	queue := &mockQueue{enabled: true}

	wantErr := errors.New("projection failed")
	err := Chunk(queue, "Project the mesh", func() error { return wantErr })

	require.ErrorIs(t, err, wantErr)
	assert.Equal(t, []string{"open:Project the mesh", "close"}, queue.calls)
}
