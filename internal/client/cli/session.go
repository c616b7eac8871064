package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/gymkeeper/internal/client/workout"
	"github.com/iudanet/gymkeeper/internal/models"
)

// sessionOptions флаги команд session create/update
type sessionOptions struct {
	StartedAt   string
	CompletedAt string
	Notes       string
	RoutineID   string
	WorkoutDate string
	SessionType string
	Duration    time.Duration
	TotalVolume float64
}

// flagChanged сообщает, задан ли флаг явно
type flagChanged func(name string) bool

func newSessionCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage workout sessions",
	}

	cmd.AddCommand(
		newSessionCreateCommand(app),
		newSessionUpdateCommand(app),
		newSessionDeleteCommand(app),
		newSessionListCommand(app),
		newSessionShowCommand(app),
	)
	return cmd
}

func addSessionFlags(cmd *cobra.Command, opts *sessionOptions) {
	cmd.Flags().StringVar(&opts.StartedAt, "started-at", "now", "session start (RFC3339, \"YYYY-MM-DD HH:MM\" or now)")
	cmd.Flags().StringVar(&opts.CompletedAt, "completed-at", "", "session end (RFC3339, \"YYYY-MM-DD HH:MM\" or now)")
	cmd.Flags().StringVar(&opts.Notes, "notes", "", "free-form notes")
	cmd.Flags().StringVar(&opts.RoutineID, "routine", "", "routine UUID")
	cmd.Flags().StringVar(&opts.WorkoutDate, "date", "", "workout date YYYY-MM-DD")
	cmd.Flags().StringVar(&opts.SessionType, "type", string(models.SessionTypeRealtime), "realtime or manual")
	cmd.Flags().DurationVar(&opts.Duration, "duration", 0, "session duration, e.g. 1h15m")
	cmd.Flags().Float64Var(&opts.TotalVolume, "volume", 0, "total volume")
}

func newSessionCreateCommand(app *App) *cobra.Command {
	opts := &sessionOptions{}
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Record a new workout session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Cli().runSessionCreate(cmd.Context(), *opts, cmd.Flags().Changed)
		},
	}
	addSessionFlags(cmd, opts)
	return cmd
}

func newSessionUpdateCommand(app *App) *cobra.Command {
	opts := &sessionOptions{}
	cmd := &cobra.Command{
		Use:   "update <session-id>",
		Short: "Change fields of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Cli().runSessionUpdate(cmd.Context(), args[0], *opts, cmd.Flags().Changed)
		},
	}
	addSessionFlags(cmd, opts)
	return cmd
}

func newSessionDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <session-id>",
		Short: "Delete a session together with its sets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Cli().runSessionDelete(cmd.Context(), args[0])
		},
	}
}

func newSessionListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sessions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Cli().runSessionList(cmd.Context())
		},
	}
}

func newSessionShowCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <session-id>",
		Short: "Show a session with its sets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Cli().runSessionShow(cmd.Context(), args[0])
		},
	}
}

// applySessionOptions переносит в payload только явно заданные флаги
func (c *Cli) applySessionOptions(p *models.SessionPayload, opts sessionOptions, changed flagChanged) error {
	now := c.now()

	if changed("started-at") {
		t, err := parseTime(opts.StartedAt, now)
		if err != nil {
			return err
		}
		p.StartedAt = t
	}
	if changed("completed-at") {
		if opts.CompletedAt == "" {
			p.CompletedAt = nil
		} else {
			t, err := parseTime(opts.CompletedAt, now)
			if err != nil {
				return err
			}
			p.CompletedAt = &t
		}
	}
	if changed("notes") {
		p.Notes = opts.Notes
	}
	if changed("routine") {
		p.RoutineID = opts.RoutineID
	}
	if changed("date") {
		p.WorkoutDate = opts.WorkoutDate
	}
	if changed("type") {
		p.SessionType = models.SessionType(opts.SessionType)
	}
	if changed("duration") {
		p.DurationSeconds = int(opts.Duration / time.Second)
	}
	if changed("volume") {
		volume := opts.TotalVolume
		p.TotalVolume = &volume
	}
	return nil
}

func (c *Cli) runSessionCreate(ctx context.Context, opts sessionOptions, changed flagChanged) error {
	payload := &models.SessionPayload{
		StartedAt:   c.now(),
		SessionType: models.SessionTypeRealtime,
	}
	if err := c.applySessionOptions(payload, opts, changed); err != nil {
		return err
	}

	session, err := c.workouts.CreateSession(ctx, payload)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	c.io.Printf("✓ Session created: %s\n", session.ClientID)
	c.io.Println("The change is queued and will be sent on the next sync.")
	return nil
}

func (c *Cli) runSessionUpdate(ctx context.Context, clientID string, opts sessionOptions, changed flagChanged) error {
	current, err := c.workouts.GetSessionWithSets(ctx, clientID)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	payload := current.Session.Payload
	if err := c.applySessionOptions(&payload, opts, changed); err != nil {
		return err
	}

	if _, err := c.workouts.UpdateSession(ctx, clientID, &payload); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	c.io.Printf("✓ Session updated: %s\n", clientID)
	return nil
}

func (c *Cli) runSessionDelete(ctx context.Context, clientID string) error {
	if err := c.workouts.DeleteSession(ctx, clientID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	c.io.Printf("✓ Session deleted: %s\n", clientID)
	return nil
}

func (c *Cli) runSessionList(ctx context.Context) error {
	sessions, err := c.workouts.ListSessions(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	if len(sessions) == 0 {
		c.io.Println("No sessions found.")
		c.io.Println()
		c.io.Println("Use 'gymkeeper session create' to record your first workout.")
		return nil
	}

	c.io.Printf("Found %d session(s):\n", len(sessions))
	c.io.Println()

	for i, s := range sessions {
		c.io.Printf("%d. %s  [%s]\n", i+1, formatTime(s.Payload.StartedAt), s.SyncStatus)
		c.io.Printf("   ID:    %s\n", s.ClientID)
		if s.Payload.Notes != "" {
			c.io.Printf("   Notes: %s\n", s.Payload.Notes)
		}
	}

	return nil
}

func (c *Cli) runSessionShow(ctx context.Context, clientID string) error {
	got, err := c.workouts.GetSessionWithSets(ctx, clientID)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	c.printSession(got.Session)
	c.io.Println()

	if len(got.Sets) == 0 {
		c.io.Println("No sets recorded.")
		return nil
	}

	c.io.Printf("Sets (%d):\n", len(got.Sets))
	for _, set := range got.Sets {
		c.printSetLine(set)
	}
	return nil
}

func (c *Cli) printSession(s *workout.Session) {
	p := s.Payload

	c.io.Println("=== Session ===")
	c.io.Printf("ID:          %s\n", s.ClientID)
	c.io.Printf("Server ID:   %s\n", orDash(s.ServerID))
	c.io.Printf("Sync status: %s\n", s.SyncStatus)
	c.io.Printf("Started:     %s\n", formatTime(p.StartedAt))
	if p.CompletedAt != nil {
		c.io.Printf("Completed:   %s\n", formatTime(*p.CompletedAt))
	}
	if p.WorkoutDate != "" {
		c.io.Printf("Date:        %s\n", p.WorkoutDate)
	}
	c.io.Printf("Type:        %s\n", orDash(string(p.SessionType)))
	if p.DurationSeconds > 0 {
		c.io.Printf("Duration:    %s\n", time.Duration(p.DurationSeconds)*time.Second)
	}
	if p.TotalVolume != nil {
		c.io.Printf("Volume:      %.1f\n", *p.TotalVolume)
	}
	if p.RoutineID != "" {
		c.io.Printf("Routine:     %s\n", p.RoutineID)
	}
	if p.Notes != "" {
		c.io.Printf("Notes:       %s\n", p.Notes)
	}
}
