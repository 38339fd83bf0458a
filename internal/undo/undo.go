// Package undo wraps work in scoped undo chunks on the host undo system, so
// a multi-call operation reverts as a single unit.
package undo

import "github.com/meepzh/cgtools/internal/domain"

// Chunk opens a named undo chunk around fn and closes it when fn returns.
// When the host undo queue is disabled the chunk is skipped and fn runs
// directly.
func Chunk(queue domain.UndoQueue, name string, fn func() error) error {
	if !queue.UndoEnabled() {
		return fn()
	}

	queue.OpenUndoChunk(name)
	defer queue.CloseUndoChunk()
	return fn()
}
