package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/gymkeeper/internal/models"
)

func newOutboxCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outbox",
		Short: "Inspect and manage the queue of unsent changes",
	}

	var status string
	list := &cobra.Command{
		Use:   "list",
		Short: "List queued changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Cli().runOutboxList(cmd.Context(), models.OutboxStatus(status))
		},
	}
	list.Flags().StringVar(&status, "status", "", "pending, in_progress, failed or completed (default: all unsent)")

	retry := &cobra.Command{
		Use:   "retry [item-id...]",
		Short: "Return failed changes to the queue (all failed when no id given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Cli().runOutboxRetry(cmd.Context(), args)
		},
	}

	var olderThan time.Duration
	var yes bool
	purge := &cobra.Command{
		Use:   "purge",
		Short: "Remove completed changes from the queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Cli().runOutboxPurge(cmd.Context(), olderThan, yes)
		},
	}
	purge.Flags().DurationVar(&olderThan, "older-than", 24*time.Hour, "purge only changes created before this age")
	purge.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	cmd.AddCommand(list, retry, purge)
	return cmd
}

func (c *Cli) runOutboxList(ctx context.Context, status models.OutboxStatus) error {
	statuses := []models.OutboxStatus{models.OutboxStatusPending, models.OutboxStatusInProgress, models.OutboxStatusFailed}
	if status != "" {
		switch status {
		case models.OutboxStatusPending, models.OutboxStatusInProgress, models.OutboxStatusFailed, models.OutboxStatusCompleted:
		default:
			return fmt.Errorf("unknown status %q", status)
		}
		statuses = []models.OutboxStatus{status}
	}

	total := 0
	for _, st := range statuses {
		items, err := c.outbox.ListByStatus(ctx, st)
		if err != nil {
			return fmt.Errorf("failed to list %s items: %w", st, err)
		}
		for _, item := range items {
			c.printOutboxItem(item)
		}
		total += len(items)
	}

	if total == 0 {
		c.io.Println("Outbox is empty.")
	}
	return nil
}

func (c *Cli) printOutboxItem(item *models.OutboxItem) {
	c.io.Printf("#%d  %-11s  %-6s  %s/%s  retries %d/%d\n",
		item.ID, item.Status, item.Operation, item.Table, item.RecordClientID, item.RetryCount, item.MaxRetries)
	if item.NextAttemptAt != nil && item.Status == models.OutboxStatusPending {
		c.io.Printf("     next attempt: %s\n", item.NextAttemptAt.UTC().Format(time.RFC3339))
	}
	if item.ErrorMessage != "" {
		c.io.Printf("     error: %s\n", item.ErrorMessage)
	}
}

func (c *Cli) runOutboxRetry(ctx context.Context, args []string) error {
	var ids []uint64
	if len(args) == 0 {
		failed, err := c.outbox.ListByStatus(ctx, models.OutboxStatusFailed)
		if err != nil {
			return fmt.Errorf("failed to list failed items: %w", err)
		}
		for _, item := range failed {
			ids = append(ids, item.ID)
		}
	} else {
		for _, arg := range args {
			id, err := strconv.ParseUint(arg, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid item id %q", arg)
			}
			ids = append(ids, id)
		}
	}

	if len(ids) == 0 {
		c.io.Println("No failed changes to retry.")
		return nil
	}

	for _, id := range ids {
		if err := c.outbox.Requeue(ctx, id); err != nil {
			return fmt.Errorf("failed to requeue item %d: %w", id, err)
		}
	}

	c.io.Printf("✓ %d change(s) returned to the queue\n", len(ids))
	return nil
}

func (c *Cli) runOutboxPurge(ctx context.Context, olderThan time.Duration, yes bool) error {
	if !yes {
		ok, err := c.io.Confirm(fmt.Sprintf("Remove completed changes older than %s?", olderThan))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !ok {
			c.io.Println("Aborted.")
			return nil
		}
	}

	n, err := c.outbox.PurgeCompleted(ctx, c.now().Add(-olderThan))
	if err != nil {
		return fmt.Errorf("failed to purge outbox: %w", err)
	}

	c.io.Printf("✓ Removed %d completed change(s)\n", n)
	return nil
}
