package app

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/meepzh/cgtools/internal/config"
	"github.com/meepzh/cgtools/internal/domain"
	"github.com/meepzh/cgtools/internal/platform/logging"
	"github.com/meepzh/cgtools/internal/selection"
	"github.com/meepzh/cgtools/internal/undo"
	"github.com/meepzh/cgtools/internal/uvset"
)

// Controller orchestrates fill-selection sessions. It owns the single
// SessionData instance for the process; there is no support for multiple
// concurrent sessions.
type Controller struct {
	host     domain.Host
	selector *selection.Selector
	uvSets   *uvset.Manager
	session  *domain.SessionData
	log      *slog.Logger
}

func NewController(host domain.Host) *Controller {
	return &Controller{
		host:     host,
		selector: selection.NewSelector(host),
		uvSets:   uvset.NewManager(host),
		session:  domain.NewSessionData(),
		log:      slog.Default(),
	}
}

// Session exposes the session data for inspection. Callers must not mutate
// it; transitions only ever update it as a whole unit.
func (c *Controller) Session() *domain.SessionData {
	return c.session
}

// FillSelection interactively separates the selected meshes into contiguous
// sections delineated by the user's component selection, so one section can
// be selected as a whole. The session stays live until an exit-condition
// event finalizes it.
//
// Invoking it again while a session is active finalizes that session when
// the exit condition is set to reinvocation.
func (c *Controller) FillSelection() error {
	if c.session.Active() {
		if config.ExitCondition.Get(c.host) == domain.ExitOnReinvocation {
			c.log.Debug("Reinvoked with an active session, finalizing")
			return c.Finalize()
		}
		c.host.Warn("A fill selection session is already active.")
		return nil
	}

	if config.ExitCondition.Get(c.host) == domain.ExitOnEnterKey {
		return fmt.Errorf(
			"support for finalizing the fill selection using the enter key has not been added yet: %w",
			domain.ErrNotImplemented)
	}

	shapes := c.selector.SelectedShapes()
	if len(shapes) == 0 {
		c.host.Warn("Please select a polygon mesh or its components.")
		return nil
	}

	// Determine what edges will be used to cut each shape's UVs
	shapeToEdges, err := c.selector.EdgesFromSelection()
	if err != nil {
		return err
	}

	// The construction history should end the same as how it started, so
	// snapshot it per shape, aligned with the shapeToEdges key order, for
	// diffing away any nodes created here
	sessionShapes := shapeToEdges.Shapes()
	history := make([][]string, 0, len(sessionShapes))
	for _, shape := range sessionShapes {
		nodes, err := c.host.History(shape)
		if err != nil {
			return err
		}
		history = append(history, nodes)
	}

	c.log = logging.WithSession(uuid.NewString())
	c.session.ShapeToEdges = shapeToEdges
	c.session.History = history
	c.session.Shapes = sessionShapes

	// "Restore" the changes from the session data, then start the callbacks
	// for interactivity. Failures must not leave a half-populated session.
	if err := c.restoreSession(); err != nil {
		return c.abortStart(err)
	}
	if err := c.startSession(); err != nil {
		return c.abortStart(err)
	}
	return nil
}

func (c *Controller) abortStart(err error) error {
	if clearErr := c.session.Clear(c.host); clearErr != nil {
		c.log.Error("Failed to clear the session while aborting", "error", clearErr)
	}
	return err
}

// Finalize converts the fill selection to the configured output component
// type, restores the selection type, and defers the node cleanup and session
// clearing to the host's next idle, so the host's own bookkeeping for the
// selection change is not disrupted. The conversion and selection run
// synchronously before any deferred step. Scoped as one undoable unit.
//
// A selection that no longer matches any partitioned shape legitimately
// yields an empty component set; that is a valid way for a session to end.
func (c *Controller) Finalize() error {
	return undo.Chunk(c.host, "Convert the fill selection", func() error {
		selected := c.host.Selection()
		c.log.Debug("Finalizing", "selection", selected)

		var err error
		switch outputType := config.OutputType.Get(c.host); outputType {
		case domain.ComponentEdge:
			selected, err = c.host.ToEdges(selected, domain.ConvertOption{})
			if err != nil {
				return err
			}
			c.changeSelectType(nil, domain.SelectEdge)
		case domain.ComponentFace:
			selected, err = c.host.ToFaces(selected)
			if err != nil {
				return err
			}
			c.changeSelectType(nil, domain.SelectFace)
		case domain.ComponentVertex:
			selected, err = c.host.ToVertices(selected)
			if err != nil {
				return err
			}
			c.changeSelectType(nil, domain.SelectVertexFace)
		default:
			return fmt.Errorf("unknown output component type %q", outputType)
		}

		c.host.Defer(func() {
			if err := c.cleanup(); err != nil {
				c.log.Error("Failed to clean up the fill selection changes", "error", err)
			}
		})

		if err := c.host.SetSelection(selected); err != nil {
			return err
		}

		// Release the subscriptions outside of their own event dispatch
		c.host.Defer(func() {
			if err := c.session.Clear(c.host); err != nil {
				c.log.Error("Failed to clear the session data", "error", err)
			}
		})
		return nil
	})
}

// Clear force-resets the controller to idle from any state, releasing every
// event subscription and emptying the session data unconditionally,
// including anything a pending deferred cleanup assumed.
func (c *Controller) Clear() error {
	return c.session.Clear(c.host)
}

// InstallOnDrop installs the tool into the host when its package is dropped
// into a viewport, without requiring the full package to be built.
func (c *Controller) InstallOnDrop() error {
	return fmt.Errorf("drag and drop installation has not been implemented yet: %w",
		domain.ErrNotImplemented)
}

// cleanup removes the nodes this session created on the affected shapes and
// restores their original current UV sets. It does not clear session data: a
// save can be followed by restoreSession without losing session identity.
func (c *Controller) cleanup() error {
	return undo.Chunk(c.host, "Clean up changes from fill selection", func() error {
		c.session.Selection = c.host.Selection()
		c.log.Debug("Cleaning up", "selection", c.session.Selection)

		shapes := c.session.ShapeToEdges.Shapes()
		for i, shape := range shapes {
			current, err := c.host.History(shape)
			if err != nil {
				return err
			}

			// Only nodes absent from the pre-session snapshot were created
			// by this tool
			created := subtract(current, c.session.History[i])
			if len(created) == 0 {
				continue
			}
			c.log.Debug("Cleaning up nodes", "shape", shape, "nodes", created)
			if err := c.host.Delete(created); err != nil {
				return err
			}
		}

		return c.uvSets.RestoreCurrent(c.session.ShapeToEdges, c.session.PreviousUVSets)
	})
}

// restoreSession reapplies the session data to a clean scene: scratch UV
// sets, cuts along the already-computed boundary edges, the UV-shell
// selection type, and any preserved selection. The edge partition is never
// recomputed here.
func (c *Controller) restoreSession() error {
	return undo.Chunk(c.host, "Prepare the scene for fill selection", func() error {
		c.log.Debug("Restoring session")

		previous, _, err := c.uvSets.Prepare(c.session.ShapeToEdges.Shapes())
		if err != nil {
			return err
		}
		c.session.PreviousUVSets = previous

		if err := c.uvSets.Cut(c.session.ShapeToEdges); err != nil {
			return err
		}

		c.changeSelectType(c.session.ShapeToEdges.Shapes(), domain.SelectUVShell)

		if len(c.session.Selection) > 0 {
			return c.host.SetSelection(c.session.Selection)
		}
		return nil
	})
}

// changeSelectType switches to the given component selection type. This
// derives from the host's own component-selection menu handling, which
// preserves the user's selection mode.
func (c *Controller) changeSelectType(shapes []string, selectType domain.SelectType) {
	if c.host.ObjectSelectMode() {
		c.host.ResetObjectComponentTypes()
		c.host.EnableObjectComponentType(selectType)
	}
	c.host.EnableComponentType(selectType)

	if len(shapes) > 0 {
		c.host.Highlight(c.host.ParentTransforms(shapes))
	}
}

// subtract returns the items in current that are absent from before,
// preserving order.
func subtract(current, before []string) []string {
	seen := make(map[string]struct{}, len(before))
	for _, node := range before {
		seen[node] = struct{}{}
	}

	var result []string
	for _, node := range current {
		if _, ok := seen[node]; !ok {
			result = append(result, node)
		}
	}
	return result
}
