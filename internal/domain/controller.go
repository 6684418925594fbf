package domain

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Controller wires a default value set to bound controls and info modals.
type Controller struct {
	defaults Defaults
	bindings Bindings
	modals   *Modals
	log      *zap.Logger
}

// NewController validates the bindings and returns a controller. A nil
// modals or logger is replaced with an empty registry or a no-op logger.
func NewController(d Defaults, b Bindings, modals *Modals, log *zap.Logger) (*Controller, error) {
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("bind controls: %w", err)
	}
	if modals == nil {
		modals = NewModals()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		defaults: d,
		bindings: b,
		modals:   modals,
		log:      log,
	}, nil
}

// Defaults returns the default value set the controller applies.
func (c *Controller) Defaults() Defaults { return c.defaults }

// Bindings returns the bound controls.
func (c *Controller) Bindings() Bindings { return c.bindings }

// Modals returns the modal registry.
func (c *Controller) Modals() *Modals { return c.modals }

// Reset applies the defaults to every bound control.
func (c *Controller) Reset() (ApplyResult, error) {
	result, err := Apply(c.defaults, c.bindings)
	if err != nil {
		c.log.Error("apply defaults", zap.Error(err))
		return result, err
	}
	for _, field := range result.Unmatched {
		c.log.Debug("default matches no option, selection unchanged",
			zap.String("field", string(field)))
	}
	c.log.Info("defaults applied",
		zap.Strings("rules", result.Rules),
		zap.Stringer("dependents", result.Dependents))
	return result, nil
}

// Press handles a button press the way the form's single click handler
// does: the reset button applies defaults, an "i" button opens its modal and
// a close element hides its modal. It returns false for buttons it ignores.
func (c *Controller) Press(label, id string) (bool, error) {
	switch {
	case label == ResetDefaultLabel:
		_, err := c.Reset()
		return true, err
	case label == InfoLabel:
		if !c.modals.Open(id) {
			c.log.Debug("no modal for info button", zap.String("id", id))
			return false, nil
		}
		c.log.Debug("modal opened", zap.String("modal", ModalID(id)))
		return true, nil
	case strings.HasPrefix(id, ModalClosePrefix):
		closed := c.modals.Click(id)
		if closed {
			c.log.Debug("modal closed", zap.String("by", id))
		}
		return closed, nil
	}
	return false, nil
}

// ClickBackdrop handles a click on the backdrop of the modal for info id.
func (c *Controller) ClickBackdrop(id string) bool {
	closed := c.modals.Click(ModalID(id))
	if closed {
		c.log.Debug("modal closed", zap.String("by", "backdrop"), zap.String("modal", ModalID(id)))
	}
	return closed
}

// Snapshot captures the current state of the bound controls.
func (c *Controller) Snapshot() (Snapshot, error) {
	return CaptureSnapshot(c.bindings)
}
