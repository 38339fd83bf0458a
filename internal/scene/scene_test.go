package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meepzh/cgtools/internal/domain"
)

// newGridScene builds a 2x2 quad grid. Its interior edges are e[1] (between
// f[0] and f[1]), e[2] (f[0]/f[2]), e[6] (f[1]/f[3]), and e[7] (f[2]/f[3]);
// the center vertex is vtx[4].
func newGridScene(t *testing.T) (*Scene, string, string) {
	t.Helper()
	s := New()
	transform, shape := s.AddGridMesh("plane", 2, 2)
	require.Equal(t, "plane", transform)
	require.Equal(t, "planeShape", shape)
	return s, transform, shape
}

func TestAddGridMesh_RegistersShapeUnderTransform(t *testing.T) {
	s, transform, shape := newGridScene(t)

	assert.True(t, s.IsMesh(shape))
	assert.False(t, s.IsMesh(transform))
	assert.True(t, s.IsTransform(transform))
	assert.Equal(t, []string{shape}, s.MeshShapes(transform))
	assert.Equal(t, []string{transform}, s.ParentTransforms([]string{shape}))

	history, err := s.History(shape)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Contains(t, history[0], "polyPlane")
}

func TestSelection_ComponentFiltering(t *testing.T) {
	s, transform, shape := newGridScene(t)

	require.NoError(t, s.SetSelection([]string{
		shape + ".f[0]",
		shape + ".e[1]",
		shape + ".vtx[4]",
		shape + ".vtxFace[4][0]",
		transform,
	}))

	assert.Equal(t, []string{shape + ".f[0]"}, s.SelectedComponents(domain.KindFace))
	assert.Equal(t, []string{shape + ".e[1]"}, s.SelectedComponents(domain.KindEdge))
	assert.Equal(t, []string{shape + ".vtx[4]"}, s.SelectedComponents(domain.KindVertex))
	assert.Equal(t, []string{shape + ".vtxFace[4][0]"}, s.SelectedComponents(domain.KindVertexFace))
	assert.Equal(t, []string{shape, transform}, s.SelectedObjects())
}

func TestToEdges_FaceConversionModes(t *testing.T) {
	s, _, shape := newGridScene(t)
	faces := []string{shape + ".f[0]", shape + ".f[1]"}

	all, err := s.ToEdges(faces, domain.ConvertOption{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		shape + ".e[0]", shape + ".e[1]", shape + ".e[2]", shape + ".e[3]",
		shape + ".e[4]", shape + ".e[5]", shape + ".e[6]",
	}, all)

	contained, err := s.ToEdges(faces, domain.ConvertOption{Internal: true})
	require.NoError(t, err)
	assert.Equal(t, []string{shape + ".e[1]"}, contained)

	border, err := s.ToEdges(faces, domain.ConvertOption{Border: true})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		shape + ".e[0]", shape + ".e[2]", shape + ".e[3]",
		shape + ".e[4]", shape + ".e[5]", shape + ".e[6]",
	}, border)

	// The modes partition the full edge set
	assert.Len(t, all, len(contained)+len(border))
	for _, e := range contained {
		assert.NotContains(t, border, e)
	}
}

func TestToEdges_VertexConversionModes(t *testing.T) {
	s, _, shape := newGridScene(t)

	all, err := s.ToEdges([]string{shape + ".vtx[4]"}, domain.ConvertOption{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		shape + ".e[1]", shape + ".e[2]", shape + ".e[6]", shape + ".e[7]",
	}, all)

	// Contained keeps only edges with both end points selected
	contained, err := s.ToEdges(
		[]string{shape + ".vtx[4]", shape + ".vtx[1]"},
		domain.ConvertOption{Internal: true})
	require.NoError(t, err)
	assert.Equal(t, []string{shape + ".e[1]"}, contained)
}

func TestToEdges_VertexFaceConversionModes(t *testing.T) {
	s, _, shape := newGridScene(t)

	// Default keeps the edges of the vertex face's own face at the vertex
	own, err := s.ToEdges([]string{shape + ".vtxFace[4][0]"}, domain.ConvertOption{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{shape + ".e[1]", shape + ".e[2]"}, own)

	// AllEdges keeps every edge at the vertex regardless of face
	all, err := s.ToEdges(
		[]string{shape + ".vtxFace[4][0]"},
		domain.ConvertOption{VertexFaceAllEdges: true})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		shape + ".e[1]", shape + ".e[2]", shape + ".e[6]", shape + ".e[7]",
	}, all)

	// Contained keeps edges whose four vertex faces are all selected
	contained, err := s.ToEdges([]string{
		shape + ".vtxFace[1][0]", shape + ".vtxFace[1][1]",
		shape + ".vtxFace[4][0]", shape + ".vtxFace[4][1]",
	}, domain.ConvertOption{Internal: true})
	require.NoError(t, err)
	assert.Equal(t, []string{shape + ".e[1]"}, contained)
}

func TestToFacesAndToVertices(t *testing.T) {
	s, _, shape := newGridScene(t)

	faces, err := s.ToFaces([]string{shape + ".e[1]"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{shape + ".f[0]", shape + ".f[1]"}, faces)

	faces, err = s.ToFaces([]string{shape + ".vtxFace[4][3]"})
	require.NoError(t, err)
	assert.Equal(t, []string{shape + ".f[3]"}, faces)

	vertices, err := s.ToVertices([]string{shape + ".f[0]"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		shape + ".vtx[0]", shape + ".vtx[1]", shape + ".vtx[4]", shape + ".vtx[3]",
	}, vertices)
}

func TestUVShells_CutsPartitionTheMesh(t *testing.T) {
	s, _, shape := newGridScene(t)

	shells, err := s.UVShells(shape)
	require.NoError(t, err)
	assert.Equal(t, []string{shape + ".uvShell[0]"}, shells)

	// Cutting f[0]'s interior edges splits it into its own shell
	require.NoError(t, s.CutUVs([]string{shape + ".e[1]", shape + ".e[2]"}))

	shells, err = s.UVShells(shape)
	require.NoError(t, err)
	assert.Len(t, shells, 2)

	first, err := s.ShellForFace(shape, 0)
	require.NoError(t, err)
	assert.Equal(t, shape+".uvShell[0]", first)

	rest, err := s.ShellForFace(shape, 3)
	require.NoError(t, err)
	assert.Equal(t, shape+".uvShell[1]", rest)

	// A shell is selectable and converts back to its faces
	faces, err := s.ToFaces([]string{rest})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		shape + ".f[1]", shape + ".f[2]", shape + ".f[3]",
	}, faces)
}

func TestCutUVs_RejectsEdgesAcrossShapes(t *testing.T) {
	s, _, shape := newGridScene(t)
	_, other := s.AddGridMesh("other", 2, 2)

	err := s.CutUVs([]string{shape + ".e[0]", other + ".e[0]"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "span multiple shapes")
}

func TestUVSets_CreateUniquifiesAndCopyTransfersCuts(t *testing.T) {
	s, _, shape := newGridScene(t)

	created, err := s.CreateUVSet(shape, "fillSelectionMap")
	require.NoError(t, err)
	assert.Equal(t, "fillSelectionMap", created)

	again, err := s.CreateUVSet(shape, "fillSelectionMap")
	require.NoError(t, err)
	assert.Equal(t, "fillSelectionMap1", again)

	// Cut on the default set, then copy those seams into the new set
	require.NoError(t, s.CutUVs([]string{shape + ".e[1]", shape + ".e[2]"}))
	require.NoError(t, s.CopyUVSet(shape, "map1", created))
	require.NoError(t, s.SetCurrentUVSet(shape, created))

	shells, err := s.UVShells(shape)
	require.NoError(t, err)
	assert.Len(t, shells, 2)

	current, err := s.CurrentUVSets([]string{shape})
	require.NoError(t, err)
	assert.Equal(t, []string{created}, current)
}

func TestDelete_RevertsHistoryNodeEffects(t *testing.T) {
	s, _, shape := newGridScene(t)

	before, err := s.History(shape)
	require.NoError(t, err)

	require.NoError(t, s.CutUVs([]string{shape + ".e[1]", shape + ".e[2]"}))
	shells, err := s.UVShells(shape)
	require.NoError(t, err)
	require.Len(t, shells, 2)

	after, err := s.History(shape)
	require.NoError(t, err)
	require.Len(t, after, len(before)+1)

	// Deleting the cut node restores the uncut topology
	require.NoError(t, s.Delete(after[len(before):]))

	shells, err = s.UVShells(shape)
	require.NoError(t, err)
	assert.Len(t, shells, 1)

	restored, err := s.History(shape)
	require.NoError(t, err)
	assert.Equal(t, before, restored)
}

func TestDelete_RevertsUVSetCreation(t *testing.T) {
	s, _, shape := newGridScene(t)

	before, err := s.History(shape)
	require.NoError(t, err)

	created, err := s.CreateUVSet(shape, "fillSelectionMap")
	require.NoError(t, err)
	require.NoError(t, s.SetCurrentUVSet(shape, created))

	after, err := s.History(shape)
	require.NoError(t, err)
	require.NoError(t, s.Delete(after[len(before):]))

	// The deleted set no longer exists and the default is current again
	assert.Error(t, s.SetCurrentUVSet(shape, created))
	current, err := s.CurrentUVSets([]string{shape})
	require.NoError(t, err)
	assert.Equal(t, []string{"map1"}, current)
}

func TestEvents_UIJobsFireAndUnsubscribe(t *testing.T) {
	s, _, shape := newGridScene(t)

	var fired []string
	first, err := s.AddUIJob(domain.EventSelectionChanged, func() { fired = append(fired, "first") })
	require.NoError(t, err)
	assert.Equal(t, domain.JobID(1), first)

	second, err := s.AddUIJob(domain.EventSelectionChanged, func() { fired = append(fired, "second") })
	require.NoError(t, err)
	assert.Equal(t, domain.JobID(2), second)

	s.UserSelect(shape + ".f[0]")
	assert.Equal(t, []string{"first", "second"}, fired)
	assert.Equal(t, []string{shape + ".f[0]"}, s.Selection())

	require.NoError(t, s.KillUIJob(first))
	assert.Error(t, s.KillUIJob(first))

	s.UserSelect(shape + ".f[1]")
	assert.Equal(t, []string{"first", "second", "second"}, fired)
}

func TestEvents_HandlerCanUnsubscribeDuringDispatch(t *testing.T) {
	s, _, _ := newGridScene(t)

	var fired []string
	var id domain.JobID
	id, err := s.AddUIJob(domain.EventToolChanged, func() {
		fired = append(fired, "self")
		require.NoError(t, s.KillUIJob(id))
	})
	require.NoError(t, err)
	_, err = s.AddUIJob(domain.EventToolChanged, func() { fired = append(fired, "other") })
	require.NoError(t, err)

	s.ChangeTool()
	assert.Equal(t, []string{"self", "other"}, fired)
	assert.Equal(t, 1, s.JobCount())
}

func TestEvents_DeferredTasksRunOnceInOrder(t *testing.T) {
	s, _, _ := newGridScene(t)

	var ran []string
	s.Defer(func() {
		ran = append(ran, "first")
		// Tasks queued while draining run in the same pass
		s.Defer(func() { ran = append(ran, "nested") })
	})
	s.Defer(func() { ran = append(ran, "second") })

	s.Idle()
	assert.Equal(t, []string{"first", "second", "nested"}, ran)

	s.Idle()
	assert.Equal(t, []string{"first", "second", "nested"}, ran)
}

func TestEvents_SaveFileDispatchOrder(t *testing.T) {
	s, _, _ := newGridScene(t)

	var order []string
	_, err := s.AddSceneCallback(domain.EventBeforeSave, func() { order = append(order, "before") })
	require.NoError(t, err)
	_, err = s.AddSceneCallback(domain.EventAfterSave, func() { order = append(order, "after") })
	require.NoError(t, err)

	s.SaveFile()
	assert.Equal(t, []string{"before", "after"}, order)
}

func TestEvents_NewFileDiscardsSceneButKeepsOptionVars(t *testing.T) {
	s, _, shape := newGridScene(t)
	s.SetOptionVar("cgtools_demo", "1")

	notified := false
	_, err := s.AddSceneCallback(domain.EventAfterNew, func() { notified = true })
	require.NoError(t, err)

	s.NewFile()
	assert.True(t, notified)
	assert.False(t, s.IsMesh(shape))
	assert.Empty(t, s.Selection())

	value, ok := s.OptionVar("cgtools_demo")
	assert.True(t, ok)
	assert.Equal(t, "1", value)
}

func TestUndoQueue_TracksChunkBalance(t *testing.T) {
	s, _, _ := newGridScene(t)
	assert.True(t, s.UndoEnabled())
	assert.True(t, s.UndoBalanced())

	s.OpenUndoChunk("Cut the mesh")
	assert.False(t, s.UndoBalanced())
	s.CloseUndoChunk()
	assert.True(t, s.UndoBalanced())
	assert.Equal(t, []string{"Cut the mesh"}, s.UndoChunkNames())
}
