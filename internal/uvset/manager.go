// Package uvset manages the scratch UV coordinate sets whose cut topology
// encodes the fill boundaries. The system never maintains its own adjacency
// structure: the cut is the only genuine topology mutation, and contiguous
// region detection is delegated to the host's UV-shell selection afterwards.
package uvset

import (
	"fmt"
	"log/slog"

	"github.com/meepzh/cgtools/internal/config"
	"github.com/meepzh/cgtools/internal/domain"
)

// WorkingUVSetName is the reserved name of the scratch UV set created on
// every affected shape.
const WorkingUVSetName = "fillSelectionMap"

// Host is the scripting surface the manager consumes.
type Host interface {
	domain.UVSets
	domain.OptionVars
	domain.Warner
}

// Manager prepares, cuts, and restores UV sets on the session's shapes.
type Manager struct {
	host Host
}

func NewManager(host Host) *Manager {
	return &Manager{host: host}
}

// Prepare sets up a scratch UV set on each shape and marks it current. The
// scratch set either copies the previously current set, preserving its seam
// topology, or receives a seam-free planar projection, depending on the
// UseExistingSeams setting. Returns the previously current set names and the
// scratch set names, both aligned to the input shape order.
func (m *Manager) Prepare(shapes []string) (previous, working []string, err error) {
	// Store the current UV set(s), as which sets are "current" will change
	previous, err = m.host.CurrentUVSets(shapes)
	if err != nil {
		return nil, nil, err
	}

	useExistingSeams := config.UseExistingSeams.Get(m.host)

	working = make([]string, 0, len(shapes))
	for i, shape := range shapes {
		name, err := m.host.CreateUVSet(shape, WorkingUVSetName)
		if err != nil {
			return nil, nil, err
		}
		if err := m.host.SetCurrentUVSet(shape, name); err != nil {
			return nil, nil, err
		}

		if useExistingSeams {
			// Carry the previous set's seams over as extra fill boundaries
			if err := m.host.CopyUVSet(shape, previous[i], name); err != nil {
				return nil, nil, err
			}
		} else {
			// Planar projections are simple and have no seams
			if err := m.host.PlanarProject(shape); err != nil {
				return nil, nil, err
			}
		}

		working = append(working, name)
	}

	return previous, working, nil
}

// Cut topologically splits each shape's current UV set along its boundary
// edges. The host cuts one shape at a time.
func (m *Manager) Cut(shapeToEdges *domain.ShapeEdges) error {
	for _, shape := range shapeToEdges.Shapes() {
		edges := shapeToEdges.Edges(shape)
		slog.Debug("Cutting UVs", "shape", shape, "edges", len(edges))
		if err := m.host.CutUVs(edges); err != nil {
			return err
		}
	}
	return nil
}

// RestoreCurrent re-marks each shape's original UV set as current, aligned
// by position with the shape order of shapeToEdges.
func (m *Manager) RestoreCurrent(shapeToEdges *domain.ShapeEdges, previousUVSets []string) error {
	shapes := shapeToEdges.Shapes()
	if len(shapes) != len(previousUVSets) {
		return fmt.Errorf("%d shapes but %d previous UV sets", len(shapes), len(previousUVSets))
	}

	for i, shape := range shapes {
		if err := m.host.SetCurrentUVSet(shape, previousUVSets[i]); err != nil {
			return err
		}
	}
	return nil
}
