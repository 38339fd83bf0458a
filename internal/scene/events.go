package scene

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/meepzh/cgtools/internal/domain"
)

type uiJob struct {
	id    domain.JobID
	event domain.UIEvent
	fn    func()
}

type sceneCallback struct {
	id    domain.CallbackID
	event domain.SceneEvent
	fn    func()
}

// --- domain.Events ---

func (s *Scene) AddUIJob(event domain.UIEvent, fn func()) (domain.JobID, error) {
	id := domain.JobID(s.nextJobNumber)
	s.nextJobNumber++
	s.jobs = append(s.jobs, uiJob{id: id, event: event, fn: fn})
	return id, nil
}

func (s *Scene) KillUIJob(id domain.JobID) error {
	for i, job := range s.jobs {
		if job.id == id {
			s.jobs = append(s.jobs[:i], s.jobs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("no UI job numbered %d", id)
}

func (s *Scene) AddSceneCallback(event domain.SceneEvent, fn func()) (domain.CallbackID, error) {
	id := domain.CallbackID(uuid.NewString())
	s.sceneCallbacks = append(s.sceneCallbacks, sceneCallback{id: id, event: event, fn: fn})
	return id, nil
}

func (s *Scene) RemoveSceneCallback(id domain.CallbackID) error {
	for i, callback := range s.sceneCallbacks {
		if callback.id == id {
			s.sceneCallbacks = append(s.sceneCallbacks[:i], s.sceneCallbacks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("no scene callback with ID %s", id)
}

// --- domain.Deferrer ---

func (s *Scene) Defer(fn func()) {
	s.deferred.Add(fn)
}

// drainDeferred runs every queued task once, in order. Tasks queued while
// draining run in the same pass, matching the host's idle behavior.
func (s *Scene) drainDeferred() {
	for s.deferred.Length() > 0 {
		fn := s.deferred.Remove().(func())
		fn()
	}
}

func (s *Scene) dispatchUI(event domain.UIEvent) {
	// Handlers can unsubscribe during dispatch, so snapshot first
	var fns []func()
	for _, job := range s.jobs {
		if job.event == event {
			fns = append(fns, job.fn)
		}
	}
	for _, fn := range fns {
		fn()
	}
	s.drainDeferred()
}

func (s *Scene) dispatchScene(event domain.SceneEvent) {
	var fns []func()
	for _, callback := range s.sceneCallbacks {
		if callback.event == event {
			fns = append(fns, callback.fn)
		}
	}
	for _, fn := range fns {
		fn()
	}
	s.drainDeferred()
}

// --- User-side triggers ---

// UserSelect replaces the selection as a user interaction would, notifying
// subscribers.
func (s *Scene) UserSelect(items ...string) {
	s.selection = items
	s.dispatchUI(domain.EventSelectionChanged)
}

// ChangeTool simulates the user switching to another tool.
func (s *Scene) ChangeTool() {
	s.dispatchUI(domain.EventToolChanged)
}

// ChangeSelectMode simulates the user switching between object and component
// selection modes.
func (s *Scene) ChangeSelectMode(object bool) {
	s.objectMode = object
	s.dispatchUI(domain.EventSelectModeChanged)
}

// ChangeSelectType simulates the user switching component selection types.
func (s *Scene) ChangeSelectType() {
	s.dispatchUI(domain.EventSelectTypeChanged)
}

// SaveFile simulates a scene save: subscribers observe the scene before the
// write and again after it completes.
func (s *Scene) SaveFile() {
	s.dispatchScene(domain.EventBeforeSave)
	s.dispatchScene(domain.EventAfterSave)
}

// NewFile discards the scene contents and notifies subscribers, as opening a
// new scene does. Option vars persist, as they do in the host.
func (s *Scene) NewFile() {
	s.meshes = make(map[string]*mesh)
	s.meshOrder = nil
	s.transforms = make(map[string][]string)
	s.selection = nil
	s.highlighted = nil
	s.nodeOwner = make(map[string]*mesh)
	s.nodeUndo = make(map[string]func())
	s.dispatchScene(domain.EventAfterNew)
}

// Idle drains the deferred queue outside of any event dispatch, as the host
// loop does between callbacks.
func (s *Scene) Idle() {
	s.drainDeferred()
}

// JobCount returns the number of live UI event subscriptions.
func (s *Scene) JobCount() int {
	return len(s.jobs)
}

// CallbackCount returns the number of live scene event subscriptions.
func (s *Scene) CallbackCount() int {
	return len(s.sceneCallbacks)
}
