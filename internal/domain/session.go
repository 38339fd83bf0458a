package domain

import (
	"errors"
	"fmt"
	"log/slog"
)

// ShapeEdges is an ordered mapping from shape to the boundary edges that will
// cut that shape's UVs. Iteration order is insertion order; the key order
// defines the set of shapes under an active session and the alignment of the
// session's index-mapped collections.
type ShapeEdges struct {
	order []string
	edges map[string][]string
}

func NewShapeEdges() *ShapeEdges {
	return &ShapeEdges{edges: make(map[string][]string)}
}

// Add appends edges to the shape's collection, registering the shape on
// first use.
func (s *ShapeEdges) Add(shape string, edges ...string) {
	if _, ok := s.edges[shape]; !ok {
		s.order = append(s.order, shape)
	}
	s.edges[shape] = append(s.edges[shape], edges...)
}

// Shapes returns the shapes in insertion order.
func (s *ShapeEdges) Shapes() []string {
	shapes := make([]string, len(s.order))
	copy(shapes, s.order)
	return shapes
}

// Edges returns the shape's edges in encounter order.
func (s *ShapeEdges) Edges(shape string) []string {
	return s.edges[shape]
}

// Len returns the number of shapes.
func (s *ShapeEdges) Len() int {
	return len(s.order)
}

// SubscriptionSet records the opaque handles of every live event
// subscription so they can be released exactly once.
type SubscriptionSet struct {
	CallbackIDs []CallbackID
	JobNumbers  []JobID
}

func (s *SubscriptionSet) AddCallback(id CallbackID) {
	s.CallbackIDs = append(s.CallbackIDs, id)
}

func (s *SubscriptionSet) AddJob(id JobID) {
	s.JobNumbers = append(s.JobNumbers, id)
}

// Empty reports whether no subscriptions are held.
func (s *SubscriptionSet) Empty() bool {
	return len(s.CallbackIDs) == 0 && len(s.JobNumbers) == 0
}

// ReleaseAll unsubscribes every held handle and empties the set. Handles are
// dropped even when the host reports a release failure, so a second call
// never double-releases.
func (s *SubscriptionSet) ReleaseAll(events Events) error {
	var errs []error

	for _, id := range s.CallbackIDs {
		if err := events.RemoveSceneCallback(id); err != nil {
			errs = append(errs, fmt.Errorf("remove scene callback %s: %w", id, err))
		}
	}
	for _, id := range s.JobNumbers {
		if err := events.KillUIJob(id); err != nil {
			errs = append(errs, fmt.Errorf("kill UI job %d: %w", id, err))
		}
	}

	s.CallbackIDs = nil
	s.JobNumbers = nil
	return errors.Join(errs...)
}

// SessionData stores information about the active session, i.e. data held
// while the tool is awaiting user input before finalizing. There is exactly
// one instance per process; History, PreviousUVSets, and Shapes are
// index-aligned with ShapeToEdges key order and must only be mutated as a
// whole unit per state transition.
type SessionData struct {
	// Subscriptions holds the host event subscription handles.
	Subscriptions SubscriptionSet

	// ShapeToEdges stores the edge mapping used to cut the given shapes.
	ShapeToEdges *ShapeEdges

	// History stores index-mapped collections of each shape's pre-session
	// construction-history nodes.
	History [][]string

	// PreviousUVSets stores the index-mapped names of the UV sets that were
	// marked "current" before the session began.
	PreviousUVSets []string

	// Shapes provides index mapping to the shapes affected by this session.
	Shapes []string

	// Selection stores any selection information to be preserved across a
	// save-triggered cleanup/restore cycle.
	Selection []string
}

func NewSessionData() *SessionData {
	return &SessionData{ShapeToEdges: NewShapeEdges()}
}

// Active reports whether a session is active. This is derived: a session is
// active iff any field holds data.
func (s *SessionData) Active() bool {
	return !s.Subscriptions.Empty() ||
		s.ShapeToEdges.Len() > 0 ||
		len(s.History) > 0 ||
		len(s.PreviousUVSets) > 0 ||
		len(s.Shapes) > 0 ||
		len(s.Selection) > 0
}

// Clear releases every event subscription and empties the stored session
// data.
func (s *SessionData) Clear(events Events) error {
	slog.Debug("Clearing session data")

	err := s.Subscriptions.ReleaseAll(events)

	s.ShapeToEdges = NewShapeEdges()
	s.History = nil
	s.PreviousUVSets = nil
	s.Shapes = nil
	s.Selection = nil
	return err
}
