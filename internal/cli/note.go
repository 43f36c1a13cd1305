package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"memopad/internal/richtext"
	"memopad/internal/session"

	"github.com/spf13/cobra"
)

func newNoteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "The free-form scratch note",
	}

	var render bool
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the note",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(ctx context.Context, s *session.Session) error {
				html := s.Document().FreeNote.HTML
				if render {
					fmt.Fprint(cmd.OutOrStdout(), richtext.RenderTerminal(html, 80))
					return nil
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"html": html}})
			})
		},
	}
	showCmd.Flags().BoolVar(&render, "render", false, "Render for the terminal instead of JSON")

	var setFile string
	setCmd := &cobra.Command{
		Use:   "set [text]",
		Short: "Replace the note body",
		RunE: func(cmd *cobra.Command, args []string) error {
			var body string
			switch {
			case setFile != "":
				b, err := os.ReadFile(setFile)
				if err != nil {
					return writeErr(cmd, err)
				}
				body = string(b)
			case len(args) > 0:
				body = strings.Join(args, " ")
			default:
				return writeErr(cmd, fmt.Errorf("pass the text as an argument or via --file"))
			}
			return withSession(cmd, app, func(ctx context.Context, s *session.Session) error {
				if _, err := s.Apply(ctx, session.SetFreeNote{HTML: bodyToHTML(body)}); err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"ok": true}})
			})
		},
	}
	setCmd.Flags().StringVar(&setFile, "file", "", "Read the body from a file")

	cmd.AddCommand(showCmd, setCmd)
	return cmd
}
