// Package cli wires the cobra command tree. Running the binary with no
// subcommand starts the interactive TUI; every subcommand is scriptable and
// prints strict JSON.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"memopad/internal/format"
	"memopad/internal/session"
	"memopad/internal/store"
	"memopad/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	PrettyJSON bool
	Yes        bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "memopad",
		Short:        "Local-first notes: todos, category tabs and a scratch pad",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  memopad

  # Scriptable commands
  memopad todo add "Buy milk"
  memopad todo list
  memopad item add Work "Quarterly report"
  memopad note show --render
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("MEMOPAD_DATA_DIR", ""), "Path to data dir (default: user config dir)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().BoolVarP(&app.Yes, "yes", "y", false, "Skip confirmation prompts")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newStatusCmd(app))
	cmd.AddCommand(newTodoCmd(app))
	cmd.AddCommand(newCategoryCmd(app))
	cmd.AddCommand(newItemCmd(app))
	cmd.AddCommand(newArchiveCmd(app))
	cmd.AddCommand(newNoteCmd(app))
	cmd.AddCommand(newEventsCmd(app))
	cmd.AddCommand(newPrefsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	st, err := openStore(app)
	if err != nil {
		return err
	}
	return tui.Run(st)
}

func openStore(app *App) (store.Store, error) {
	dir := app.Dir
	if dir == "" {
		d, err := store.DataDir()
		if err != nil {
			return store.Store{}, err
		}
		dir = d
	}
	app.Dir = dir
	return store.Store{Dir: dir}, nil
}

// withSession runs fn against a short-lived session and flushes it. One-shot
// commands share the interactive path so every mutation is event-logged and
// saved the same way.
func withSession(cmd *cobra.Command, app *App, fn func(ctx context.Context, s *session.Session) error) error {
	st, err := openStore(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := session.Open(ctx, st, session.Options{})
	if err != nil {
		return writeErr(cmd, err)
	}
	if err := fn(ctx, s); err != nil {
		_ = s.Close(ctx)
		return writeErr(cmd, err)
	}
	if err := s.Close(ctx); err != nil {
		return writeErr(cmd, err)
	}
	return nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.WriteJSON(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}

// confirm guards destructive commands. --yes (or piping "y") accepts.
func confirm(cmd *cobra.Command, app *App, prompt string) bool {
	if app.Yes {
		return true
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", prompt)
	var answer string
	fmt.Fscanln(cmd.InOrStdin(), &answer)
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
