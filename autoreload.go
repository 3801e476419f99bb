package gallery

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/agentstation/gallery/pkg/constants"
	"github.com/agentstation/gallery/pkg/logging"
)

// Compile-time interface check to ensure proper implementation.
var _ AutoReloader = (*client)(nil)

// AutoReloader provides controls for periodic reloads.
type AutoReloader interface {
	// AutoReloadOn starts reloading on the configured interval
	AutoReloadOn() error

	// AutoReloadOff stops periodic reloads
	AutoReloadOff() error
}

// AutoReloadOn starts reloading on the configured interval, replacing
// any running schedule.
func (c *client) AutoReloadOn() error {
	if err := c.AutoReloadOff(); err != nil {
		return err
	}

	c.autoMu.Lock()
	defer c.autoMu.Unlock()

	c.stopCh = make(chan struct{})
	c.reloadTicker = time.NewTicker(c.options.autoReloadInterval)

	ctx, cancel := context.WithCancel(context.Background())
	c.reloadCancel = cancel

	go func(parentCtx context.Context, ticker *time.Ticker, stop <-chan struct{}) {
		for {
			select {
			case <-ticker.C:
				reloadCtx, reloadCancel := context.WithTimeout(parentCtx, constants.ReloadContextTimeout)
				err := c.Reload(reloadCtx)
				reloadCancel()

				if err != nil {
					if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
						return
					}
					logging.Error().Err(err).Msg("Auto-reload failed")
				}
			case <-parentCtx.Done():
				return
			case <-stop:
				return
			}
		}
	}(ctx, c.reloadTicker, c.stopCh)

	return nil
}

// AutoReloadOff stops periodic reloads. It is safe to call repeatedly.
func (c *client) AutoReloadOff() error {
	c.autoMu.Lock()
	defer c.autoMu.Unlock()

	if c.reloadTicker != nil {
		c.reloadTicker.Stop()
		c.reloadTicker = nil
	}
	if c.reloadCancel != nil {
		c.reloadCancel()
		c.reloadCancel = nil
	}
	select {
	case <-c.stopCh:
	default:
		close(c.stopCh)
	}
	return nil
}
