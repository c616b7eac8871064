package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/gymkeeper/internal/client/workout"
	"github.com/iudanet/gymkeeper/internal/models"
)

// setOptions флаги команд set add/update
type setOptions struct {
	SessionID   string
	ExerciseID  string
	CompletedAt string
	SetNumber   int
	Reps        int
	Weight      float64
	RPE         int
	Warmup      bool
	PR          bool
}

func newSetCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Manage sets of a workout session",
	}

	cmd.AddCommand(
		newSetAddCommand(app),
		newSetUpdateCommand(app),
		newSetDeleteCommand(app),
	)
	return cmd
}

func addSetFlags(cmd *cobra.Command, opts *setOptions) {
	cmd.Flags().StringVar(&opts.ExerciseID, "exercise", "", "exercise UUID")
	cmd.Flags().StringVar(&opts.CompletedAt, "completed-at", "now", "set completion time")
	cmd.Flags().IntVar(&opts.SetNumber, "number", 0, "set number inside the session (0 - next)")
	cmd.Flags().IntVar(&opts.Reps, "reps", 0, "repetitions")
	cmd.Flags().Float64Var(&opts.Weight, "weight", 0, "weight")
	cmd.Flags().IntVar(&opts.RPE, "rpe", 0, "rate of perceived exertion 1-10")
	cmd.Flags().BoolVar(&opts.Warmup, "warmup", false, "warm-up set")
	cmd.Flags().BoolVar(&opts.PR, "pr", false, "personal record")
}

func newSetAddCommand(app *App) *cobra.Command {
	opts := &setOptions{}
	cmd := &cobra.Command{
		Use:   "add <session-id>",
		Short: "Add a set to a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.SessionID = args[0]
			return app.Cli().runSetAdd(cmd.Context(), *opts, cmd.Flags().Changed)
		},
	}
	addSetFlags(cmd, opts)
	_ = cmd.MarkFlagRequired("exercise")
	return cmd
}

func newSetUpdateCommand(app *App) *cobra.Command {
	opts := &setOptions{}
	cmd := &cobra.Command{
		Use:   "update <set-id>",
		Short: "Change fields of a set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Cli().runSetUpdate(cmd.Context(), args[0], *opts, cmd.Flags().Changed)
		},
	}
	addSetFlags(cmd, opts)
	return cmd
}

func newSetDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <set-id>",
		Short: "Delete a set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Cli().runSetDelete(cmd.Context(), args[0])
		},
	}
}

// applySetOptions переносит в payload только явно заданные флаги
func (c *Cli) applySetOptions(p *models.SetPayload, opts setOptions, changed flagChanged) error {
	if changed("completed-at") {
		t, err := parseTime(opts.CompletedAt, c.now())
		if err != nil {
			return err
		}
		p.CompletedAt = t
	}
	if changed("exercise") {
		p.ExerciseID = opts.ExerciseID
	}
	if changed("number") {
		p.SetNumber = opts.SetNumber
	}
	if changed("reps") {
		p.Reps = opts.Reps
	}
	if changed("weight") {
		weight := opts.Weight
		p.Weight = &weight
	}
	if changed("rpe") {
		if opts.RPE == 0 {
			p.RPE = nil
		} else {
			rpe := opts.RPE
			p.RPE = &rpe
		}
	}
	if changed("warmup") {
		p.IsWarmup = opts.Warmup
	}
	if changed("pr") {
		p.IsPR = opts.PR
	}
	return nil
}

func (c *Cli) runSetAdd(ctx context.Context, opts setOptions, changed flagChanged) error {
	payload := &models.SetPayload{
		SessionClientID: opts.SessionID,
		CompletedAt:     c.now(),
	}
	if err := c.applySetOptions(payload, opts, changed); err != nil {
		return err
	}

	set, err := c.workouts.AddSet(ctx, payload)
	if err != nil {
		return fmt.Errorf("failed to add set: %w", err)
	}

	c.io.Printf("✓ Set #%d added: %s\n", set.Payload.SetNumber, set.ClientID)
	return nil
}

func (c *Cli) runSetUpdate(ctx context.Context, clientID string, opts setOptions, changed flagChanged) error {
	current, err := c.workouts.GetSet(ctx, clientID)
	if err != nil {
		return fmt.Errorf("failed to get set: %w", err)
	}

	payload := current.Payload
	if err := c.applySetOptions(&payload, opts, changed); err != nil {
		return err
	}

	if _, err := c.workouts.UpdateSet(ctx, clientID, &payload); err != nil {
		return fmt.Errorf("failed to update set: %w", err)
	}

	c.io.Printf("✓ Set updated: %s\n", clientID)
	return nil
}

func (c *Cli) runSetDelete(ctx context.Context, clientID string) error {
	if err := c.workouts.DeleteSet(ctx, clientID); err != nil {
		return fmt.Errorf("failed to delete set: %w", err)
	}

	c.io.Printf("✓ Set deleted: %s\n", clientID)
	return nil
}

func (c *Cli) printSetLine(set *workout.Set) {
	p := set.Payload

	weight := "-"
	if p.Weight != nil {
		weight = fmt.Sprintf("%.1f", *p.Weight)
	}

	line := fmt.Sprintf("  #%d  %d x %s", p.SetNumber, p.Reps, weight)
	if p.RPE != nil {
		line += fmt.Sprintf("  RPE %d", *p.RPE)
	}
	if p.IsWarmup {
		line += "  warm-up"
	}
	if p.IsPR {
		line += "  PR"
	}
	line += fmt.Sprintf("  [%s]  %s", set.SyncStatus, set.ClientID)

	c.io.Println(line)
}
