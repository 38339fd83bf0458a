package scene

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"

	"github.com/eapache/queue"

	"github.com/meepzh/cgtools/internal/domain"
)

// Scene holds the full in-memory host state. It is not safe for concurrent
// use: like the host application, it assumes one cooperative event loop.
type Scene struct {
	meshes     map[string]*mesh
	meshOrder  []string
	transforms map[string][]string

	selection []string

	objectMode           bool
	componentTypes       map[domain.SelectType]struct{}
	objectComponentTypes map[domain.SelectType]struct{}
	highlighted          []string

	jobs           []uiJob
	nextJobNumber  int
	sceneCallbacks []sceneCallback
	deferred       *queue.Queue

	undoEnabled bool
	undoDepth   int
	undoOpens   []string

	optionVars map[string]string
	warnings   []string

	nodeCounter int
	nodeOwner   map[string]*mesh
	nodeUndo    map[string]func()
}

func New() *Scene {
	return &Scene{
		meshes:               make(map[string]*mesh),
		transforms:           make(map[string][]string),
		objectMode:           true,
		componentTypes:       make(map[domain.SelectType]struct{}),
		objectComponentTypes: make(map[domain.SelectType]struct{}),
		nextJobNumber:        1,
		deferred:             queue.New(),
		undoEnabled:          true,
		optionVars:           make(map[string]string),
		nodeOwner:            make(map[string]*mesh),
		nodeUndo:             make(map[string]func()),
	}
}

// AddGridMesh creates a cols x rows quad grid under a new transform named
// name, with the shape named name + "Shape". Returns the transform and shape
// names.
func (s *Scene) AddGridMesh(name string, cols, rows int) (transform, shape string) {
	transform = name
	shape = name + "Shape"

	faces := make([][]int, 0, cols*rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := r*(cols+1) + c
			faces = append(faces, []int{v, v + 1, v + cols + 2, v + cols + 1})
		}
	}

	m := newMesh(transform, shape, faces)
	m.history = []string{s.nextNode("polyPlane")}
	s.nodeOwner[m.history[0]] = m
	s.nodeUndo[m.history[0]] = func() {}

	s.meshes[shape] = m
	s.meshOrder = append(s.meshOrder, shape)
	s.transforms[transform] = append(s.transforms[transform], shape)
	return transform, shape
}

func (s *Scene) nextNode(prefix string) string {
	s.nodeCounter++
	return prefix + strconv.Itoa(s.nodeCounter)
}

// --- Component reference parsing ---

type refKind string

const (
	refEdge       refKind = "e"
	refFace       refKind = "f"
	refVertex     refKind = "vtx"
	refVertexFace refKind = "vtxFace"
	refUVShell    refKind = "uvShell"
)

var componentPattern = regexp.MustCompile(`^(e|f|vtx|vtxFace|uvShell)\[(\d+)\](?:\[(\d+)\])?$`)

type componentRef struct {
	mesh *mesh
	kind refKind
	// index is the component index; face holds the face index of a vertex
	// face.
	index int
	face  int
}

// splitComponent splits "node.comp" on the last dot. Plain object names
// return ok == false.
func splitComponent(item string) (node, comp string, ok bool) {
	for i := len(item) - 1; i >= 0; i-- {
		if item[i] == '.' {
			return item[:i], item[i+1:], true
		}
	}
	return item, "", false
}

// meshForNode resolves a shape or transform name to its mesh.
func (s *Scene) meshForNode(node string) *mesh {
	if m, ok := s.meshes[node]; ok {
		return m
	}
	if shapes := s.transforms[node]; len(shapes) > 0 {
		return s.meshes[shapes[0]]
	}
	return nil
}

func (s *Scene) parseComponent(item string) (componentRef, error) {
	node, comp, ok := splitComponent(item)
	if !ok {
		return componentRef{}, fmt.Errorf("%q is not a component", item)
	}

	m := s.meshForNode(node)
	if m == nil {
		return componentRef{}, fmt.Errorf("no mesh found for %q", item)
	}

	match := componentPattern.FindStringSubmatch(comp)
	if match == nil {
		return componentRef{}, fmt.Errorf("unrecognized component %q", item)
	}

	index, _ := strconv.Atoi(match[2])
	ref := componentRef{mesh: m, kind: refKind(match[1]), index: index}
	if ref.kind == refVertexFace {
		if match[3] == "" {
			return componentRef{}, fmt.Errorf("vertex face %q is missing its face index", item)
		}
		ref.face, _ = strconv.Atoi(match[3])
	}
	return ref, nil
}

var kindToRef = map[domain.ComponentKind]refKind{
	domain.KindEdge:       refEdge,
	domain.KindFace:       refFace,
	domain.KindVertex:     refVertex,
	domain.KindVertexFace: refVertexFace,
}

// --- domain.Selections ---

func (s *Scene) Selection() []string {
	items := make([]string, len(s.selection))
	copy(items, s.selection)
	return items
}

func (s *Scene) SetSelection(items []string) error {
	s.selection = make([]string, len(items))
	copy(s.selection, items)
	return nil
}

func (s *Scene) SelectedObjects() []string {
	var objects []string
	seen := make(map[string]struct{})
	for _, item := range s.selection {
		node, _, _ := splitComponent(item)
		if _, ok := seen[node]; ok {
			continue
		}
		seen[node] = struct{}{}
		objects = append(objects, node)
	}
	return objects
}

func (s *Scene) SelectedComponents(kind domain.ComponentKind) []string {
	want := kindToRef[kind]
	var components []string
	for _, item := range s.selection {
		ref, err := s.parseComponent(item)
		if err != nil {
			continue
		}
		if ref.kind == want {
			components = append(components, item)
		}
	}
	return components
}

// --- domain.Nodes ---

func (s *Scene) IsMesh(node string) bool {
	_, ok := s.meshes[node]
	return ok
}

func (s *Scene) IsTransform(node string) bool {
	_, ok := s.transforms[node]
	return ok
}

func (s *Scene) MeshShapes(transform string) []string {
	shapes := make([]string, len(s.transforms[transform]))
	copy(shapes, s.transforms[transform])
	return shapes
}

func (s *Scene) ParentTransforms(shapes []string) []string {
	var transforms []string
	seen := make(map[string]struct{})
	for _, shape := range shapes {
		m, ok := s.meshes[shape]
		if !ok {
			continue
		}
		if _, dup := seen[m.transform]; dup {
			continue
		}
		seen[m.transform] = struct{}{}
		transforms = append(transforms, m.transform)
	}
	return transforms
}

// --- domain.UVSets ---

func (s *Scene) CurrentUVSets(shapes []string) ([]string, error) {
	current := make([]string, 0, len(shapes))
	for _, shape := range shapes {
		m, ok := s.meshes[shape]
		if !ok {
			return nil, fmt.Errorf("no mesh shape named %q", shape)
		}
		current = append(current, m.current)
	}
	return current, nil
}

func (s *Scene) CreateUVSet(shape, name string) (string, error) {
	m, ok := s.meshes[shape]
	if !ok {
		return "", fmt.Errorf("no mesh shape named %q", shape)
	}

	actual := name
	for n := 1; ; n++ {
		if _, taken := m.uvSets[actual]; !taken {
			break
		}
		actual = name + strconv.Itoa(n)
	}
	m.uvSets[actual] = newUVSet()

	node := s.nextNode("polyUVSet")
	m.history = append(m.history, node)
	s.nodeOwner[node] = m
	created := actual
	s.nodeUndo[node] = func() {
		delete(m.uvSets, created)
		if m.current == created {
			m.current = defaultUVSetName
		}
	}

	return actual, nil
}

func (s *Scene) SetCurrentUVSet(shape, name string) error {
	m, ok := s.meshes[shape]
	if !ok {
		return fmt.Errorf("no mesh shape named %q", shape)
	}
	if _, ok := m.uvSets[name]; !ok {
		return fmt.Errorf("mesh %q has no UV set named %q", shape, name)
	}
	m.current = name
	return nil
}

func (s *Scene) CopyUVSet(shape, source, target string) error {
	m, ok := s.meshes[shape]
	if !ok {
		return fmt.Errorf("no mesh shape named %q", shape)
	}
	src, ok := m.uvSets[source]
	if !ok {
		return fmt.Errorf("mesh %q has no UV set named %q", shape, source)
	}
	dst, ok := m.uvSets[target]
	if !ok {
		return fmt.Errorf("mesh %q has no UV set named %q", shape, target)
	}

	previous := dst.cuts
	dst.cuts = src.cloneCuts()

	node := s.nextNode("polyCopyUV")
	m.history = append(m.history, node)
	s.nodeOwner[node] = m
	s.nodeUndo[node] = func() {
		if set, ok := m.uvSets[target]; ok {
			set.cuts = previous
		}
	}
	return nil
}

func (s *Scene) PlanarProject(shape string) error {
	m, ok := s.meshes[shape]
	if !ok {
		return fmt.Errorf("no mesh shape named %q", shape)
	}

	set := m.uvSets[m.current]
	previous := set.cuts
	set.cuts = make(map[int]struct{})

	node := s.nextNode("polyPlanarProj")
	m.history = append(m.history, node)
	s.nodeOwner[node] = m
	s.nodeUndo[node] = func() {
		set.cuts = previous
	}
	return nil
}

func (s *Scene) CutUVs(edges []string) error {
	if len(edges) == 0 {
		return nil
	}

	var m *mesh
	indices := make([]int, 0, len(edges))
	for _, edge := range edges {
		ref, err := s.parseComponent(edge)
		if err != nil {
			return err
		}
		if ref.kind != refEdge {
			return fmt.Errorf("%q is not an edge", edge)
		}
		if m != nil && ref.mesh != m {
			return fmt.Errorf("cut edges span multiple shapes: %q and %q", m.shape, ref.mesh.shape)
		}
		m = ref.mesh
		indices = append(indices, ref.index)
	}

	set := m.uvSets[m.current]
	added := make([]int, 0, len(indices))
	for _, e := range indices {
		if _, ok := set.cuts[e]; ok {
			continue
		}
		set.cuts[e] = struct{}{}
		added = append(added, e)
	}

	node := s.nextNode("polyMapCut")
	m.history = append(m.history, node)
	s.nodeOwner[node] = m
	s.nodeUndo[node] = func() {
		for _, e := range added {
			delete(set.cuts, e)
		}
	}
	return nil
}

// --- domain.ConstructionHistory ---

func (s *Scene) History(shape string) ([]string, error) {
	m, ok := s.meshes[shape]
	if !ok {
		return nil, fmt.Errorf("no mesh shape named %q", shape)
	}
	history := make([]string, len(m.history))
	copy(history, m.history)
	return history, nil
}

func (s *Scene) Delete(nodes []string) error {
	for _, node := range nodes {
		m, ok := s.nodeOwner[node]
		if !ok {
			return fmt.Errorf("node %q does not exist", node)
		}

		// Deleting a history node reverts its effect on the shape
		s.nodeUndo[node]()

		for i, existing := range m.history {
			if existing == node {
				m.history = append(m.history[:i], m.history[i+1:]...)
				break
			}
		}
		delete(s.nodeOwner, node)
		delete(s.nodeUndo, node)
	}
	return nil
}

// --- domain.SelectUI ---

func (s *Scene) ObjectSelectMode() bool {
	return s.objectMode
}

func (s *Scene) ResetObjectComponentTypes() {
	s.objectComponentTypes = make(map[domain.SelectType]struct{})
}

func (s *Scene) EnableObjectComponentType(t domain.SelectType) {
	s.objectComponentTypes[t] = struct{}{}
}

func (s *Scene) EnableComponentType(t domain.SelectType) {
	s.componentTypes[t] = struct{}{}
}

func (s *Scene) Highlight(transforms []string) {
	for _, transform := range transforms {
		dup := false
		for _, existing := range s.highlighted {
			if existing == transform {
				dup = true
				break
			}
		}
		if !dup {
			s.highlighted = append(s.highlighted, transform)
		}
	}
}

// ComponentTypeEnabled reports whether the selection type was enabled, for
// assertions.
func (s *Scene) ComponentTypeEnabled(t domain.SelectType) bool {
	_, ok := s.componentTypes[t]
	return ok
}

// Highlighted returns the transforms in component-highlight state.
func (s *Scene) Highlighted() []string {
	highlighted := make([]string, len(s.highlighted))
	copy(highlighted, s.highlighted)
	return highlighted
}

// --- domain.UndoQueue ---

func (s *Scene) UndoEnabled() bool {
	return s.undoEnabled
}

// SetUndoEnabled toggles the undo queue, as a user can in the host.
func (s *Scene) SetUndoEnabled(enabled bool) {
	s.undoEnabled = enabled
}

func (s *Scene) OpenUndoChunk(name string) {
	s.undoDepth++
	s.undoOpens = append(s.undoOpens, name)
}

func (s *Scene) CloseUndoChunk() {
	s.undoDepth--
}

// UndoChunkNames returns every chunk name opened so far.
func (s *Scene) UndoChunkNames() []string {
	names := make([]string, len(s.undoOpens))
	copy(names, s.undoOpens)
	return names
}

// UndoBalanced reports whether every opened chunk has been closed.
func (s *Scene) UndoBalanced() bool {
	return s.undoDepth == 0
}

// --- domain.OptionVars ---

func (s *Scene) OptionVar(name string) (string, bool) {
	value, ok := s.optionVars[name]
	return value, ok
}

func (s *Scene) SetOptionVar(name, value string) {
	s.optionVars[name] = value
}

// --- domain.Warner ---

func (s *Scene) Warn(message string) {
	slog.Warn(message)
	s.warnings = append(s.warnings, message)
}

// Warnings returns every warning surfaced so far.
func (s *Scene) Warnings() []string {
	warnings := make([]string, len(s.warnings))
	copy(warnings, s.warnings)
	return warnings
}

// --- Shell helpers for drivers and tests ---

// UVShells returns the shell component IDs of the shape's current UV set.
func (s *Scene) UVShells(shape string) ([]string, error) {
	m, ok := s.meshes[shape]
	if !ok {
		return nil, fmt.Errorf("no mesh shape named %q", shape)
	}
	shells := m.shells()
	ids := make([]string, len(shells))
	for i := range shells {
		ids[i] = m.shellID(i)
	}
	return ids, nil
}

// ShellForFace returns the shell component ID containing the face under the
// shape's current UV set.
func (s *Scene) ShellForFace(shape string, face int) (string, error) {
	m, ok := s.meshes[shape]
	if !ok {
		return "", fmt.Errorf("no mesh shape named %q", shape)
	}
	for i, shell := range m.shells() {
		for _, f := range shell {
			if f == face {
				return m.shellID(i), nil
			}
		}
	}
	return "", fmt.Errorf("mesh %q has no face %d", shape, face)
}
