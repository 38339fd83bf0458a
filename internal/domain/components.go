package domain

// ComponentType represents the polygon component types that the tool can
// produce when a fill selection is converted back to ordinary components.
type ComponentType string

const (
	ComponentEdge   ComponentType = "edge"
	ComponentFace   ComponentType = "face"
	ComponentVertex ComponentType = "vertex"
)

// ComponentTypes lists the valid output component types.
func ComponentTypes() []ComponentType {
	return []ComponentType{ComponentEdge, ComponentFace, ComponentVertex}
}

// ComponentKind identifies a kind of component reference in a selection, as
// the host filters them. Unlike ComponentType it includes vertex faces, which
// can be selected but never produced.
type ComponentKind string

const (
	KindEdge       ComponentKind = "edge"
	KindFace       ComponentKind = "face"
	KindVertex     ComponentKind = "vertex"
	KindVertexFace ComponentKind = "vertexFace"
)

// EdgesFrom determines how non-edge selections are converted to the edges
// that delineate fill boundaries.
type EdgesFrom string

const (
	// EdgesFromAll uses every edge touching any selected component.
	EdgesFromAll EdgesFrom = "all"

	// EdgesFromContained uses only edges whose incident elements are all
	// selected (both faces for face selections, both end points for vertex
	// selections, all four vertex faces for vertex-face selections).
	EdgesFromContained EdgesFrom = "contained"

	// EdgesFromPerimeter uses only edges on the border between selected and
	// unselected regions, projected through faces.
	EdgesFromPerimeter EdgesFrom = "perimeter"
)

// EdgesFromModes lists the valid conversion modes.
func EdgesFromModes() []EdgesFrom {
	return []EdgesFrom{EdgesFromAll, EdgesFromContained, EdgesFromPerimeter}
}

// ExitOn determines when the temporary fill selection is converted back to
// ordinary polygon components.
type ExitOn string

const (
	// ExitOnEnterKey exits when the enter key is pressed inside a viewport.
	// Not implemented; selecting it fails fast.
	ExitOnEnterKey ExitOn = "enter_key"

	// ExitOnReinvocation exits when the tool is invoked again.
	ExitOnReinvocation ExitOn = "reinvocation"

	// ExitOnSelection exits immediately after a selection is made.
	ExitOnSelection ExitOn = "selection"
)

// ExitConditions lists the valid exit conditions.
func ExitConditions() []ExitOn {
	return []ExitOn{ExitOnEnterKey, ExitOnReinvocation, ExitOnSelection}
}

// SelectType names a host component-selection type, mirroring the host's own
// identifiers.
type SelectType string

const (
	SelectUVShell    SelectType = "meshUVShell"
	SelectEdge       SelectType = "polymeshEdge"
	SelectFace       SelectType = "polymeshFace"
	SelectVertexFace SelectType = "polymeshVtxFace"
)

// UIEvent names a short-lived user-interaction event fired synchronously
// within a user action.
type UIEvent string

const (
	EventSelectionChanged  UIEvent = "SelectionChanged"
	EventSelectModeChanged UIEvent = "SelectModeChanged"
	EventSelectTypeChanged UIEvent = "SelectTypeChanged"
	EventToolChanged       UIEvent = "ToolChanged"
)

// SceneEvent names a scene-lifecycle event fired around file I/O.
type SceneEvent string

const (
	EventBeforeSave SceneEvent = "BeforeSave"
	EventAfterSave  SceneEvent = "AfterSave"
	EventAfterNew   SceneEvent = "AfterNew"
)

// JobID is the opaque handle returned when subscribing to a UI event.
type JobID int

// CallbackID is the opaque handle returned when subscribing to a scene event.
type CallbackID string
