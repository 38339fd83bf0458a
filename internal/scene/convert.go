package scene

import (
	"fmt"

	"github.com/meepzh/cgtools/internal/domain"
)

// selectionSets holds per-mesh membership indexes for an input component
// collection, used by the contained/border tests.
type selectionSets struct {
	faces       map[*mesh]map[int]struct{}
	vertices    map[*mesh]map[int]struct{}
	vertexFaces map[*mesh]map[[2]int]struct{}
}

func (s *Scene) buildSelectionSets(refs []componentRef) selectionSets {
	sets := selectionSets{
		faces:       make(map[*mesh]map[int]struct{}),
		vertices:    make(map[*mesh]map[int]struct{}),
		vertexFaces: make(map[*mesh]map[[2]int]struct{}),
	}

	addFace := func(m *mesh, f int) {
		if sets.faces[m] == nil {
			sets.faces[m] = make(map[int]struct{})
		}
		sets.faces[m][f] = struct{}{}
	}

	for _, ref := range refs {
		switch ref.kind {
		case refFace:
			addFace(ref.mesh, ref.index)
		case refUVShell:
			for _, f := range shellFaces(ref.mesh, ref.index) {
				addFace(ref.mesh, f)
			}
		case refVertex:
			if sets.vertices[ref.mesh] == nil {
				sets.vertices[ref.mesh] = make(map[int]struct{})
			}
			sets.vertices[ref.mesh][ref.index] = struct{}{}
		case refVertexFace:
			if sets.vertexFaces[ref.mesh] == nil {
				sets.vertexFaces[ref.mesh] = make(map[[2]int]struct{})
			}
			sets.vertexFaces[ref.mesh][[2]int{ref.index, ref.face}] = struct{}{}
		}
	}

	return sets
}

func shellFaces(m *mesh, shell int) []int {
	shells := m.shells()
	if shell < 0 || shell >= len(shells) {
		return nil
	}
	return shells[shell]
}

func (s *Scene) parseComponents(components []string) ([]componentRef, error) {
	refs := make([]componentRef, 0, len(components))
	for _, component := range components {
		ref, err := s.parseComponent(component)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// collector accumulates component IDs in encounter order without duplicates.
type collector struct {
	seen map[string]struct{}
	out  []string
}

func newCollector() *collector {
	return &collector{seen: make(map[string]struct{})}
}

func (c *collector) add(id string) {
	if _, ok := c.seen[id]; ok {
		return
	}
	c.seen[id] = struct{}{}
	c.out = append(c.out, id)
}

// ToEdges converts the components to edges. Faces honor Internal (edges
// bordering two selected faces) and Border (edges bordering exactly one
// selected face); vertices honor Internal (both end points selected);
// vertex faces honor Internal (all four vertex faces selected) and
// VertexFaceAllEdges (every edge connected to the vertex).
func (s *Scene) ToEdges(components []string, opt domain.ConvertOption) ([]string, error) {
	refs, err := s.parseComponents(components)
	if err != nil {
		return nil, err
	}
	sets := s.buildSelectionSets(refs)
	edges := newCollector()

	for _, ref := range refs {
		m := ref.mesh
		switch ref.kind {
		case refEdge:
			edges.add(m.edgeID(ref.index))

		case refFace:
			s.faceEdges(m, ref.index, sets.faces[m], opt, edges)

		case refUVShell:
			for _, f := range shellFaces(m, ref.index) {
				s.faceEdges(m, f, sets.faces[m], opt, edges)
			}

		case refVertex:
			for _, e := range m.vertexEdges[ref.index] {
				if opt.Internal {
					vertices := m.edgeVertices[e]
					_, a := sets.vertices[m][vertices[0]]
					_, b := sets.vertices[m][vertices[1]]
					if !a || !b {
						continue
					}
				}
				edges.add(m.edgeID(e))
			}

		case refVertexFace:
			s.vertexFaceEdges(m, ref, sets.vertexFaces[m], opt, edges)

		default:
			return nil, fmt.Errorf("cannot convert %q to edges", ref.kind)
		}
	}

	return edges.out, nil
}

func (s *Scene) faceEdges(m *mesh, face int, selected map[int]struct{}, opt domain.ConvertOption, edges *collector) {
	for _, e := range m.faceEdges[face] {
		adjacent := m.edgeFaces[e]

		switch {
		case opt.Internal:
			// Contained edges border two selected faces
			if len(adjacent) != 2 {
				continue
			}
			_, a := selected[adjacent[0]]
			_, b := selected[adjacent[1]]
			if !a || !b {
				continue
			}

		case opt.Border:
			// Border edges border exactly one selected face
			count := 0
			for _, f := range adjacent {
				if _, ok := selected[f]; ok {
					count++
				}
			}
			if count != 1 {
				continue
			}
		}

		edges.add(m.edgeID(e))
	}
}

func (s *Scene) vertexFaceEdges(m *mesh, ref componentRef, selected map[[2]int]struct{}, opt domain.ConvertOption, edges *collector) {
	if opt.VertexFaceAllEdges {
		for _, e := range m.vertexEdges[ref.index] {
			edges.add(m.edgeID(e))
		}
		return
	}

	for _, e := range m.vertexEdges[ref.index] {
		if opt.Internal {
			// Contained edges have all four of their vertex faces selected
			adjacent := m.edgeFaces[e]
			if len(adjacent) != 2 {
				continue
			}
			vertices := m.edgeVertices[e]
			ok := true
			for _, v := range vertices {
				for _, f := range adjacent {
					if _, sel := selected[[2]int{v, f}]; !sel {
						ok = false
						break
					}
				}
			}
			if !ok {
				continue
			}
			edges.add(m.edgeID(e))
			continue
		}

		// Default: the edges of the vertex face's own face at the vertex
		if edgeOnFace(m, e, ref.face) {
			edges.add(m.edgeID(e))
		}
	}
}

func edgeOnFace(m *mesh, edge, face int) bool {
	for _, f := range m.edgeFaces[edge] {
		if f == face {
			return true
		}
	}
	return false
}

// ToFaces converts the components to the faces they touch or belong to.
func (s *Scene) ToFaces(components []string) ([]string, error) {
	refs, err := s.parseComponents(components)
	if err != nil {
		return nil, err
	}
	faces := newCollector()

	for _, ref := range refs {
		m := ref.mesh
		switch ref.kind {
		case refFace:
			faces.add(m.faceID(ref.index))
		case refEdge:
			for _, f := range m.edgeFaces[ref.index] {
				faces.add(m.faceID(f))
			}
		case refVertex:
			for _, f := range m.vertexFaces[ref.index] {
				faces.add(m.faceID(f))
			}
		case refVertexFace:
			faces.add(m.faceID(ref.face))
		case refUVShell:
			for _, f := range shellFaces(m, ref.index) {
				faces.add(m.faceID(f))
			}
		default:
			return nil, fmt.Errorf("cannot convert %q to faces", ref.kind)
		}
	}

	return faces.out, nil
}

// ToVertices converts the components to their vertices.
func (s *Scene) ToVertices(components []string) ([]string, error) {
	refs, err := s.parseComponents(components)
	if err != nil {
		return nil, err
	}
	vertices := newCollector()

	for _, ref := range refs {
		m := ref.mesh
		switch ref.kind {
		case refVertex:
			vertices.add(m.vertexID(ref.index))
		case refVertexFace:
			vertices.add(m.vertexID(ref.index))
		case refEdge:
			for _, v := range m.edgeVertices[ref.index] {
				vertices.add(m.vertexID(v))
			}
		case refFace:
			for _, v := range m.faceVertices[ref.index] {
				vertices.add(m.vertexID(v))
			}
		case refUVShell:
			for _, f := range shellFaces(m, ref.index) {
				for _, v := range m.faceVertices[f] {
					vertices.add(m.vertexID(v))
				}
			}
		default:
			return nil, fmt.Errorf("cannot convert %q to vertices", ref.kind)
		}
	}

	return vertices.out, nil
}
