package scene

import (
	"fmt"
	"sort"
)

// uvSet tracks the only UV property the tools care about: which edges the
// set's topology is cut along.
type uvSet struct {
	cuts map[int]struct{}
}

func newUVSet() *uvSet {
	return &uvSet{cuts: make(map[int]struct{})}
}

func (u *uvSet) cloneCuts() map[int]struct{} {
	cuts := make(map[int]struct{}, len(u.cuts))
	for e := range u.cuts {
		cuts[e] = struct{}{}
	}
	return cuts
}

// mesh is a polygonal shape with full component adjacency.
type mesh struct {
	shape     string
	transform string

	faceVertices [][]int
	faceEdges    [][]int
	edgeVertices [][2]int
	edgeFaces    [][]int
	vertexEdges  map[int][]int
	vertexFaces  map[int][]int

	uvSets  map[string]*uvSet
	current string

	history []string
}

// defaultUVSetName is the set every fresh mesh carries, marked current.
const defaultUVSetName = "map1"

func newMesh(transform, shape string, faces [][]int) *mesh {
	m := &mesh{
		shape:        shape,
		transform:    transform,
		faceVertices: faces,
		vertexEdges:  make(map[int][]int),
		vertexFaces:  make(map[int][]int),
		uvSets:       map[string]*uvSet{defaultUVSetName: newUVSet()},
		current:      defaultUVSetName,
	}

	edgeIndex := make(map[[2]int]int)
	for f, vertices := range faces {
		edges := make([]int, 0, len(vertices))
		for i, v := range vertices {
			next := vertices[(i+1)%len(vertices)]
			key := [2]int{v, next}
			if key[0] > key[1] {
				key[0], key[1] = key[1], key[0]
			}

			e, ok := edgeIndex[key]
			if !ok {
				e = len(m.edgeVertices)
				edgeIndex[key] = e
				m.edgeVertices = append(m.edgeVertices, key)
				m.edgeFaces = append(m.edgeFaces, nil)
				m.vertexEdges[key[0]] = append(m.vertexEdges[key[0]], e)
				m.vertexEdges[key[1]] = append(m.vertexEdges[key[1]], e)
			}
			edges = append(edges, e)
			m.edgeFaces[e] = append(m.edgeFaces[e], f)
			m.vertexFaces[v] = append(m.vertexFaces[v], f)
		}
		m.faceEdges = append(m.faceEdges, edges)
	}

	return m
}

func (m *mesh) edgeID(e int) string {
	return fmt.Sprintf("%s.e[%d]", m.shape, e)
}

func (m *mesh) faceID(f int) string {
	return fmt.Sprintf("%s.f[%d]", m.shape, f)
}

func (m *mesh) vertexID(v int) string {
	return fmt.Sprintf("%s.vtx[%d]", m.shape, v)
}

func (m *mesh) shellID(i int) string {
	return fmt.Sprintf("%s.uvShell[%d]", m.shape, i)
}

// shells partitions the faces into maximal regions connected across edges
// that the current UV set does not cut. Shells are ordered by their smallest
// face index.
func (m *mesh) shells() [][]int {
	set := m.uvSets[m.current]

	parent := make([]int, len(m.faceVertices))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(f int) int {
		if parent[f] != f {
			parent[f] = find(parent[f])
		}
		return parent[f]
	}

	for e, faces := range m.edgeFaces {
		if _, cut := set.cuts[e]; cut || len(faces) < 2 {
			continue
		}
		for _, f := range faces[1:] {
			parent[find(faces[0])] = find(f)
		}
	}

	groups := make(map[int][]int)
	for f := range parent {
		root := find(f)
		groups[root] = append(groups[root], f)
	}

	roots := make([]int, 0, len(groups))
	for root := range groups {
		roots = append(roots, root)
	}
	sort.Slice(roots, func(i, j int) bool {
		return groups[roots[i]][0] < groups[roots[j]][0]
	})

	shells := make([][]int, 0, len(roots))
	for _, root := range roots {
		shells = append(shells, groups[root])
	}
	return shells
}
