package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPrefsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "View and tweak UI preferences (window.json)",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			p, err := st.LoadPrefs()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": p})
		},
	}

	editorBGCmd := &cobra.Command{
		Use:   "editor-bg <pane> <#rrggbb|none>",
		Short: "Set or clear an editor pane background (panes: detail, note)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pane := args[0]
			if pane != "detail" && pane != "note" {
				return writeErr(cmd, fmt.Errorf("unknown pane %q (want detail or note)", pane))
			}
			st, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			p, err := st.LoadPrefs()
			if err != nil {
				return writeErr(cmd, err)
			}
			color := args[1]
			if color == "none" {
				color = ""
			}
			p.SetEditorBG(pane, color)
			if err := st.SavePrefs(p); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": p})
		},
	}

	cmd.AddCommand(showCmd, editorBGCmd)
	return cmd
}
