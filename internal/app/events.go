package app

import (
	"fmt"

	"github.com/meepzh/cgtools/internal/config"
	"github.com/meepzh/cgtools/internal/domain"
)

// startSession subscribes to the host events that drive session-exit
// decisions and records every handle in the session. If any subscription
// fails, the ones already made are released so no handle leaks.
func (c *Controller) startSession() error {
	var subs domain.SubscriptionSet

	release := func(err error) error {
		if releaseErr := subs.ReleaseAll(c.host); releaseErr != nil {
			c.log.Error("Failed to release subscriptions while aborting", "error", releaseErr)
		}
		return err
	}

	finalizeOn := func(event domain.UIEvent, reason string) error {
		id, err := c.host.AddUIJob(event, func() {
			c.log.Debug("Finalize triggered", "reason", reason)
			if err := c.Finalize(); err != nil {
				c.log.Error("Failed to finalize the fill selection", "reason", reason, "error", err)
			}
		})
		if err != nil {
			return fmt.Errorf("subscribe to %s: %w", event, err)
		}
		subs.AddJob(id)
		return nil
	}

	// Set up exit conditions
	switch exitCondition := config.ExitCondition.Get(c.host); exitCondition {
	case domain.ExitOnSelection:
		if err := finalizeOn(domain.EventSelectionChanged, "selection change"); err != nil {
			return release(err)
		}

	case domain.ExitOnReinvocation:
		// The next FillSelection call finalizes instead

	case domain.ExitOnEnterKey:
		// Guarded at FillSelection entry; kept exhaustive
		return release(fmt.Errorf(
			"support for finalizing the fill selection using the enter key has not been added yet: %w",
			domain.ErrNotImplemented))

	default:
		return release(fmt.Errorf("unknown exit condition %q", exitCondition))
	}

	// The user may not realize the tool relies on the UV-shell selection
	// type, so optionally exit when they leave it
	if config.ExitOnSelectModeTypeChange.Get(c.host) {
		if err := finalizeOn(domain.EventSelectModeChanged, "select mode change"); err != nil {
			return release(err)
		}
		if err := finalizeOn(domain.EventSelectTypeChanged, "select type change"); err != nil {
			return release(err)
		}
	}

	// Tool changes can affect construction history, so be sure to exit there
	if err := finalizeOn(domain.EventToolChanged, "tool change"); err != nil {
		return release(err)
	}

	// Account for scene changes
	sceneActions := []struct {
		event  domain.SceneEvent
		action func()
	}{
		{domain.EventBeforeSave, func() {
			c.log.Debug("Cleaning up before save")
			if err := c.cleanup(); err != nil {
				c.log.Error("Failed to clean up before save", "error", err)
			}
		}},
		{domain.EventAfterSave, func() {
			c.log.Debug("Restoring session after save")
			if err := c.restoreSession(); err != nil {
				c.log.Error("Failed to restore the session after save", "error", err)
			}
		}},
		{domain.EventAfterNew, func() {
			c.log.Debug("Clearing session after new scene")
			if err := c.session.Clear(c.host); err != nil {
				c.log.Error("Failed to clear the session after new scene", "error", err)
			}
		}},
	}
	for _, sub := range sceneActions {
		id, err := c.host.AddSceneCallback(sub.event, sub.action)
		if err != nil {
			return release(fmt.Errorf("subscribe to %s: %w", sub.event, err))
		}
		subs.AddCallback(id)
	}

	// Store the handles for finalizing the selection
	c.session.Subscriptions = subs
	return nil
}
