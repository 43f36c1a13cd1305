package cli

import (
	"context"
	"strings"

	"memopad/internal/richtext"
	"memopad/internal/session"

	"github.com/spf13/cobra"
)

func bodyToHTML(body string) string {
	if body == "" {
		return ""
	}
	if richtext.ContainsHTML(body) {
		return body
	}
	return richtext.PlainToHTML(body)
}

func newTodoCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Manage the todo list",
	}

	var addBody string
	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a todo",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(ctx context.Context, s *session.Session) error {
				res, err := s.Apply(ctx, session.AddTodo{
					Title: strings.Join(args, " "),
					HTML:  bodyToHTML(addBody),
				})
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": res.Item})
			})
		},
	}
	addCmd.Flags().StringVar(&addBody, "body", "", "Item body (plain text or HTML)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List todos in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(ctx context.Context, s *session.Session) error {
				return writeOut(cmd, app, map[string]any{"data": s.Document().Todo.Items})
			})
		},
	}

	toggleCmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a todo's done state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(ctx context.Context, s *session.Session) error {
				id, err := resolveID(s.Document().Todo.Items, args[0])
				if err != nil {
					return err
				}
				res, err := s.Apply(ctx, session.ToggleTodo{ID: id})
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": res.Item})
			})
		},
	}

	renameCmd := &cobra.Command{
		Use:   "rename <id> <title>",
		Short: "Rename a todo",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(ctx context.Context, s *session.Session) error {
				id, err := resolveID(s.Document().Todo.Items, args[0])
				if err != nil {
					return err
				}
				res, err := s.Apply(ctx, session.RenameTodo{ID: id, Title: strings.Join(args[1:], " ")})
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": res.Item})
			})
		},
	}

	colorCmd := &cobra.Command{
		Use:   "color <id> <#rrggbb|none>",
		Short: "Set or clear a todo's row color",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(ctx context.Context, s *session.Session) error {
				id, err := resolveID(s.Document().Todo.Items, args[0])
				if err != nil {
					return err
				}
				color := args[1]
				if color == "none" {
					color = ""
				}
				res, err := s.Apply(ctx, session.RecolorTodo{ID: id, Color: color})
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": res.Item})
			})
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a todo permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(ctx context.Context, s *session.Session) error {
				id, err := resolveID(s.Document().Todo.Items, args[0])
				if err != nil {
					return err
				}
				if !confirm(cmd, app, "Delete todo "+id+"?") {
					return nil
				}
				if _, err := s.Apply(ctx, session.DeleteTodo{ID: id}); err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": id}})
			})
		},
	}

	doneCmd := &cobra.Command{
		Use:   "done",
		Short: "Archive every done todo",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(ctx context.Context, s *session.Session) error {
				res, err := s.Apply(ctx, session.ArchiveDoneTodos{})
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"archived": res.Changed}})
			})
		},
	}

	reorderCmd := &cobra.Command{
		Use:   "reorder <id>...",
		Short: "Reorder the todo list (every id, in the new order)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(ctx context.Context, s *session.Session) error {
				ids := make([]string, len(args))
				for i, arg := range args {
					id, err := resolveID(s.Document().Todo.Items, arg)
					if err != nil {
						return err
					}
					ids[i] = id
				}
				if _, err := s.Apply(ctx, session.ReorderTodos{IDs: ids}); err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": s.Document().Todo.Items})
			})
		},
	}

	cmd.AddCommand(addCmd, listCmd, toggleCmd, renameCmd, colorCmd, deleteCmd, doneCmd, reorderCmd)
	cmd.AddCommand(newTodoArchiveCmd(app))
	return cmd
}

func newTodoArchiveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Inspect and manage archived todos",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List archived todos",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(ctx context.Context, s *session.Session) error {
				return writeOut(cmd, app, map[string]any{"data": s.Document().Todo.Archive})
			})
		},
	}

	restoreCmd := &cobra.Command{
		Use:   "restore <id>",
		Short: "Move an archived todo back to the list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(ctx context.Context, s *session.Session) error {
				id, err := resolveID(archivedAsItems(s.Document().Todo.Archive), args[0])
				if err != nil {
					return err
				}
				res, err := s.Apply(ctx, session.RestoreTodoArchive{ID: id})
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": res.Item})
			})
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an archived todo permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(ctx context.Context, s *session.Session) error {
				id, err := resolveID(archivedAsItems(s.Document().Todo.Archive), args[0])
				if err != nil {
					return err
				}
				if !confirm(cmd, app, "Delete archived todo "+id+"?") {
					return nil
				}
				if _, err := s.Apply(ctx, session.DeleteTodoArchive{ID: id}); err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": id}})
			})
		},
	}

	var editTitle, editBody string
	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an archived todo in place",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(ctx context.Context, s *session.Session) error {
				doc := s.Document()
				id, err := resolveID(archivedAsItems(doc.Todo.Archive), args[0])
				if err != nil {
					return err
				}
				entry, ok := doc.FindTodoArchive(id)
				if !ok {
					return errNotFound("archived todo", id)
				}
				title := editTitle
				if title == "" {
					title = entry.Title
				}
				html := entry.HTML
				if cmd.Flags().Changed("body") {
					html = bodyToHTML(editBody)
				}
				res, err := s.Apply(ctx, session.EditArchivedTodo{ID: id, Title: title, HTML: html})
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": res.Item})
			})
		},
	}
	editCmd.Flags().StringVar(&editTitle, "title", "", "New title")
	editCmd.Flags().StringVar(&editBody, "body", "", "New body (plain text or HTML)")

	cmd.AddCommand(listCmd, restoreCmd, deleteCmd, editCmd)
	return cmd
}
