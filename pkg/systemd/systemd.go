// Package systemd talks to the process supervisor over D-Bus. Depending on
// the install scope it addresses either the system manager or the target
// user's own manager instance.
package systemd

import (
	"context"
	"fmt"

	"github.com/coreos/go-systemd/v22/dbus"

	pkgerrors "github.com/obstack/obstack/pkg/errors"
	"github.com/obstack/obstack/pkg/model"
)

// Client wraps a systemd D-Bus connection for one scope.
type Client struct {
	conn *dbus.Conn
}

// New connects to the supervisor for the given scope.
func New(ctx context.Context, scope model.Scope) (*Client, error) {
	var conn *dbus.Conn
	var err error
	if scope == model.ScopeSystem {
		conn, err = dbus.NewSystemConnectionContext(ctx)
	} else {
		conn, err = dbus.NewUserConnectionContext(ctx)
	}
	if err != nil {
		return nil, pkgerrors.Wrapf(pkgerrors.ErrMissingDependency, "connecting to systemd (%s scope): %v", scope, err)
	}
	return &Client{conn: conn}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() {
	if c.conn != nil {
		c.conn.Close()
	}
}

// DaemonReload asks the supervisor to reread unit definitions.
func (c *Client) DaemonReload(ctx context.Context) error {
	if err := c.conn.ReloadContext(ctx); err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrSupervisorReload, err.Error())
	}
	return nil
}

// Enable marks the unit to start on boot (or user session start).
func (c *Client) Enable(ctx context.Context, unit string) error {
	if _, _, err := c.conn.EnableUnitFilesContext(ctx, []string{unit}, false, true); err != nil {
		return pkgerrors.Wrapf(pkgerrors.ErrServiceStart, "enabling %s: %v", unit, err)
	}
	return nil
}

// Disable removes the unit from the boot target.
func (c *Client) Disable(ctx context.Context, unit string) error {
	if _, err := c.conn.DisableUnitFilesContext(ctx, []string{unit}, false); err != nil {
		return fmt.Errorf("disabling %s: %w", unit, err)
	}
	return nil
}

// Start starts the unit and waits for the job to finish.
func (c *Client) Start(ctx context.Context, unit string) error {
	return c.runJob(ctx, unit, c.conn.StartUnitContext)
}

// Stop stops the unit and waits for the job to finish.
func (c *Client) Stop(ctx context.Context, unit string) error {
	return c.runJob(ctx, unit, c.conn.StopUnitContext)
}

func (c *Client) runJob(ctx context.Context, unit string, op func(context.Context, string, string, chan<- string) (int, error)) error {
	ch := make(chan string, 1)
	if _, err := op(ctx, unit, "replace", ch); err != nil {
		return pkgerrors.Wrapf(pkgerrors.ErrServiceStart, "%s: %v", unit, err)
	}
	select {
	case result := <-ch:
		if result != "done" {
			return pkgerrors.Wrapf(pkgerrors.ErrServiceStart, "%s: job result %q", unit, result)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsActive reports whether the unit is in the active state.
func (c *Client) IsActive(ctx context.Context, unit string) (bool, error) {
	state, err := c.unitProperty(ctx, unit, "ActiveState")
	if err != nil {
		return false, err
	}
	return state == "active", nil
}

// IsEnabled reports whether the unit file is enabled.
func (c *Client) IsEnabled(ctx context.Context, unit string) (bool, error) {
	state, err := c.unitProperty(ctx, unit, "UnitFileState")
	if err != nil {
		return false, err
	}
	return state == "enabled", nil
}

func (c *Client) unitProperty(ctx context.Context, unit, key string) (string, error) {
	props, err := c.conn.GetUnitPropertiesContext(ctx, unit)
	if err != nil {
		return "", fmt.Errorf("querying %s: %w", unit, err)
	}
	if v, ok := props[key].(string); ok {
		return v, nil
	}
	return "", nil
}
