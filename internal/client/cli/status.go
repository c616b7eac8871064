package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/gymkeeper/internal/client/sync"
)

// healthProbeTimeout ограничивает проверку сервера в status
const healthProbeTimeout = 3 * time.Second

// ANSI цвета индикатора
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
)

func newStatusCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show synchronization status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Cli().runStatus(cmd.Context())
		},
	}
}

func (c *Cli) runStatus(ctx context.Context) error {
	if c.health != nil {
		c.syncer.SetOnline(c.probeServer(ctx))
	}

	st, err := c.syncer.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to get sync status: %w", err)
	}

	c.io.Println("=== Sync Status ===")
	c.io.Println()
	c.io.Printf("Status:     %s\n", c.colorize(st))
	c.io.Printf("Pending:    %d\n", st.Pending)
	c.io.Printf("Failed:     %d\n", st.Failed)
	c.io.Printf("Conflicts:  %d\n", st.Conflicts)

	lastPush, err := c.outbox.GetLastPushTimestamp(ctx)
	if err != nil {
		return fmt.Errorf("failed to get last push time: %w", err)
	}
	watermark, err := c.outbox.GetWatermark(ctx)
	if err != nil {
		return fmt.Errorf("failed to get watermark: %w", err)
	}
	c.io.Printf("Last push:  %s\n", formatTime(lastPush))
	c.io.Printf("Pulled to:  %s\n", formatTime(watermark))

	if st.LastError != "" {
		c.io.Printf("Last error: %s\n", st.LastError)
	}

	c.io.Println()
	switch {
	case st.Failed > 0:
		c.io.Println("Run 'gymkeeper outbox list' to inspect failed changes and 'gymkeeper outbox retry' to resend them.")
	case st.Pending > 0 && st.Online:
		c.io.Println("Run 'gymkeeper sync' to send pending changes.")
	case st.Pending > 0:
		c.io.Println("Server is unreachable, changes stay queued until it is back.")
	default:
		c.io.Println("✓ All changes synchronized with server")
	}

	return nil
}

func (c *Cli) probeServer(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
	defer cancel()

	resp, err := c.health.Health(probeCtx)
	return err == nil && resp.Status == "ok"
}

// colorize раскрашивает индикатор, если вывод идет в терминал
func (c *Cli) colorize(st *sync.Status) string {
	text := st.String()
	if !c.io.IsTerminal() {
		return text
	}

	color := colorGreen
	switch st.Indicator {
	case sync.IndicatorSyncing, sync.IndicatorOffline:
		color = colorYellow
	case sync.IndicatorError:
		color = colorRed
	}
	return color + text + colorReset
}
