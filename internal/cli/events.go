package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func newEventsCmd(app *App) *cobra.Command {
	var limit int
	var entity string

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect the local mutation log",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			log, err := st.OpenEventLog(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer log.Close()
			var (
				evs  any
				qerr error
			)
			if entity != "" {
				evs, qerr = log.ForEntity(ctx, entity, limit)
			} else {
				evs, qerr = log.Tail(ctx, limit)
			}
			if qerr != nil {
				return writeErr(cmd, qerr)
			}
			return writeOut(cmd, app, map[string]any{"data": evs})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 200, "Max events to return (0 = all)")
	cmd.Flags().StringVar(&entity, "entity", "", "Only events for this entity id")

	return cmd
}
