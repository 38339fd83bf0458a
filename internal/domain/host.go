package domain

// ConvertOption adjusts how the host converts components between types,
// mirroring the host's native conversion flags.
type ConvertOption struct {
	// Internal keeps only converted components completely contained within
	// the original components.
	Internal bool

	// Border keeps only converted components on the border of the original
	// components.
	Border bool

	// VertexFaceAllEdges converts a vertex face to every edge connected to
	// its vertex rather than just the edges of its face.
	VertexFaceAllEdges bool
}

// Selections queries and mutates the host's active selection.
type Selections interface {
	// Selection returns the current selection in encounter order.
	Selection() []string

	// SetSelection replaces the current selection.
	SetSelection(items []string) error

	// SelectedObjects returns the current selection collapsed to objects,
	// which may be transforms or shapes.
	SelectedObjects() []string

	// SelectedComponents returns the selected components of the given kind.
	SelectedComponents(kind ComponentKind) []string
}

// Nodes exposes scene-graph queries.
type Nodes interface {
	IsMesh(node string) bool
	IsTransform(node string) bool

	// MeshShapes returns the non-intermediate mesh shapes under a transform.
	MeshShapes(transform string) []string

	// ParentTransforms returns the parent transforms of the given shapes.
	ParentTransforms(shapes []string) []string
}

// Converter converts component references between component types with the
// host's native semantics.
type Converter interface {
	ToEdges(components []string, opt ConvertOption) ([]string, error)
	ToFaces(components []string) ([]string, error)
	ToVertices(components []string) ([]string, error)
}

// UVSets manages per-shape UV coordinate sets and the topological cuts that
// produce UV shells.
type UVSets interface {
	// CurrentUVSets returns the name of each shape's current UV set, aligned
	// to the input order.
	CurrentUVSets(shapes []string) ([]string, error)

	// CreateUVSet creates a UV set on the shape, uniquifying the requested
	// name if needed, and returns the actual name.
	CreateUVSet(shape, name string) (string, error)

	SetCurrentUVSet(shape, name string) error

	// CopyUVSet copies the source UV set into the target, preserving any
	// seam topology.
	CopyUVSet(shape, source, target string) error

	// PlanarProject applies a seam-free planar projection to the shape's
	// current UV set.
	PlanarProject(shape string) error

	// CutUVs topologically splits the current UV set along the given edges.
	// All edges must belong to a single shape.
	CutUVs(edges []string) error
}

// ConstructionHistory lists and deletes the history nodes attached to shapes.
type ConstructionHistory interface {
	// History returns the shape's construction history node names, pruned of
	// DAG objects.
	History(shape string) ([]string, error)

	Delete(nodes []string) error
}

// SelectUI switches the host's selection modes and types.
type SelectUI interface {
	// ObjectSelectMode reports whether the host is in object selection mode.
	ObjectSelectMode() bool

	// ResetObjectComponentTypes disables every object-component selection
	// type.
	ResetObjectComponentTypes()

	EnableObjectComponentType(t SelectType)
	EnableComponentType(t SelectType)

	// Highlight puts the transforms into component-highlight state.
	Highlight(transforms []string)
}

// Events registers and releases host event subscriptions. UI events use
// job-number handles, scene events use callback-id handles; both are consumed
// exactly once on unsubscribe.
type Events interface {
	AddUIJob(event UIEvent, fn func()) (JobID, error)
	KillUIJob(id JobID) error
	AddSceneCallback(event SceneEvent, fn func()) (CallbackID, error)
	RemoveSceneCallback(id CallbackID) error
}

// Deferrer schedules work to run once, after the current callback returns and
// the host reaches its next idle. It is the system's only scheduling
// primitive; there is no concurrent execution, only deferred sequencing.
type Deferrer interface {
	Defer(fn func())
}

// UndoQueue exposes scoped undo-chunk acquisition on the host undo system.
type UndoQueue interface {
	UndoEnabled() bool
	OpenUndoChunk(name string)
	CloseUndoChunk()
}

// OptionVars is the host's typed key/value persistence for tool settings.
// Values are stored in serialized string form.
type OptionVars interface {
	OptionVar(name string) (string, bool)
	SetOptionVar(name, value string)
}

// Warner surfaces user-visible warnings through the host.
type Warner interface {
	Warn(message string)
}

// Host is the full scripting surface the fill-selection tool consumes.
type Host interface {
	Selections
	Nodes
	Converter
	UVSets
	ConstructionHistory
	SelectUI
	Events
	Deferrer
	UndoQueue
	OptionVars
	Warner
}
