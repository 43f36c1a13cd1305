package cli

import (
	"context"
	"strconv"

	"memopad/internal/session"

	"github.com/spf13/cobra"
)

func newCategoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"cat"},
		Short:   "Manage category tabs",
	}

	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category tab",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(ctx context.Context, s *session.Session) error {
				res, err := s.Apply(ctx, session.AddCategory{CategoryName: args[0]})
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"name": res.EntityID}})
			})
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List categories in tab order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(ctx context.Context, s *session.Session) error {
				doc := s.Document()
				type row struct {
					Name     string `json:"name"`
					Items    int    `json:"items"`
					Archived int    `json:"archived"`
				}
				rows := make([]row, 0, len(doc.CategoryOrder))
				for _, name := range doc.CategoryOrder {
					cat := doc.Categories[name]
					if cat == nil {
						continue
					}
					rows = append(rows, row{Name: name, Items: len(cat.Items), Archived: len(cat.Archive)})
				}
				return writeOut(cmd, app, map[string]any{"data": rows})
			})
		},
	}

	renameCmd := &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a category (archived items keep following it)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(ctx context.Context, s *session.Session) error {
				res, err := s.Apply(ctx, session.RenameCategory{From: args[0], To: args[1]})
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"name": res.EntityID}})
			})
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a category with its items and archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(ctx context.Context, s *session.Session) error {
				if !confirm(cmd, app, "Delete category "+args[0]+" and everything in it?") {
					return nil
				}
				if _, err := s.Apply(ctx, session.DeleteCategory{CategoryName: args[0]}); err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": args[0]}})
			})
		},
	}

	moveCmd := &cobra.Command{
		Use:   "move <name> <position>",
		Short: "Move a category to a new tab position (0-based)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(ctx context.Context, s *session.Session) error {
				pos, err := strconv.Atoi(args[1])
				if err != nil {
					return err
				}
				if _, err := s.Apply(ctx, session.MoveCategory{CategoryName: args[0], To: pos}); err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": s.Document().CategoryOrder})
			})
		},
	}

	cmd.AddCommand(addCmd, listCmd, renameCmd, deleteCmd, moveCmd)
	return cmd
}
