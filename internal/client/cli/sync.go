package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/gymkeeper/internal/client/sync"
)

func newSyncCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Push queued changes and pull server changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Cli().runSync(cmd.Context())
		},
	}
}

func (c *Cli) runSync(ctx context.Context) error {
	c.io.Println("=== Synchronization ===")
	c.io.Println()
	c.io.Println("Starting synchronization with server...")

	result, err := c.syncer.Trigger(ctx, sync.TriggerManual)
	if errors.Is(err, sync.ErrSyncInProgress) {
		c.io.Println("Synchronization is already running, try again later.")
		return nil
	}
	if err != nil {
		if result != nil && result.Push != nil && result.Push.Claimed > 0 {
			c.io.Printf("Not delivered: %d change(s) will be retried, %d failed\n", result.Push.Retried, result.Push.Failed)
		}
		return fmt.Errorf("synchronization failed: %w", err)
	}

	c.io.Println()
	c.io.Println("✓ Synchronization completed successfully!")
	c.io.Println()
	c.io.Printf("Pushed to server:   %d change(s)\n", result.Push.Succeeded)
	if result.Push.Conflicts > 0 {
		c.io.Printf("Conflicts:          %d (server version kept)\n", result.Push.Conflicts)
	}
	if result.Push.Retried > 0 {
		c.io.Printf("Will retry:         %d\n", result.Push.Retried)
	}
	if result.Push.Failed > 0 {
		c.io.Printf("Failed:             %d (see 'gymkeeper outbox list')\n", result.Push.Failed)
	}
	c.io.Printf("Pulled from server: %d change(s), applied %d\n", result.Pull.Received, result.Pull.Applied)

	return nil
}
