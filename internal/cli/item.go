package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"memopad/internal/model"
	"memopad/internal/richtext"
	"memopad/internal/session"

	"github.com/spf13/cobra"
)

func categoryItems(doc *model.Document, name string) ([]model.Item, error) {
	cat, ok := doc.Categories[name]
	if !ok {
		return nil, errNotFound("category", name)
	}
	return cat.Items, nil
}

func newItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage items inside category tabs",
	}

	var addBody string
	addCmd := &cobra.Command{
		Use:   "add <category> <title>",
		Short: "Add an item to a category",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(ctx context.Context, s *session.Session) error {
				res, err := s.Apply(ctx, session.AddItem{
					Category: args[0],
					Title:    strings.Join(args[1:], " "),
					HTML:     bodyToHTML(addBody),
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
		Use:   "list <category>",
		Short: "List a category's items in display order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(ctx context.Context, s *session.Session) error {
				items, err := categoryItems(s.Document(), args[0])
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": items})
			})
		},
	}

	var render bool
	showCmd := &cobra.Command{
		Use:   "show <category> <id>",
		Short: "Show one item with its body",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(ctx context.Context, s *session.Session) error {
				items, err := categoryItems(s.Document(), args[0])
				if err != nil {
					return err
				}
				id, err := resolveID(items, args[1])
				if err != nil {
					return err
				}
				item, _, ok := s.Document().FindResident(args[0], id)
				if !ok {
					return errNotFound("item", id)
				}
				if render {
					fmt.Fprintln(cmd.OutOrStdout(), item.Title)
					fmt.Fprint(cmd.OutOrStdout(), richtext.RenderTerminal(item.HTML, 80))
					return nil
				}
				return writeOut(cmd, app, map[string]any{"data": item})
			})
		},
	}
	showCmd.Flags().BoolVar(&render, "render", false, "Render the body for the terminal instead of JSON")

	renameCmd := &cobra.Command{
		Use:   "rename <category> <id> <title>",
		Short: "Rename an item",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(ctx context.Context, s *session.Session) error {
				items, err := categoryItems(s.Document(), args[0])
				if err != nil {
					return err
				}
				id, err := resolveID(items, args[1])
				if err != nil {
					return err
				}
				res, err := s.Apply(ctx, session.RenameItem{Category: args[0], ID: id, Title: strings.Join(args[2:], " ")})
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": res.Item})
			})
		},
	}

	var editBody string
	editCmd := &cobra.Command{
		Use:   "edit <category> <id>",
		Short: "Replace an item's body",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("body") {
				return errors.New("--body is required")
			}
			return withSession(cmd, app, func(ctx context.Context, s *session.Session) error {
				items, err := categoryItems(s.Document(), args[0])
				if err != nil {
					return err
				}
				id, err := resolveID(items, args[1])
				if err != nil {
					return err
				}
				s.Bind(ctx, session.RefResident{Category: args[0], ID: id})
				s.SetBuffer(bodyToHTML(editBody))
				s.Unbind(ctx)
				item, _, _ := s.Document().FindResident(args[0], id)
				return writeOut(cmd, app, map[string]any{"data": item})
			})
		},
	}
	editCmd.Flags().StringVar(&editBody, "body", "", "New body (plain text or HTML)")

	colorCmd := &cobra.Command{
		Use:   "color <category> <id> <#rrggbb|none>",
		Short: "Set or clear an item's row color",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(ctx context.Context, s *session.Session) error {
				items, err := categoryItems(s.Document(), args[0])
				if err != nil {
					return err
				}
				id, err := resolveID(items, args[1])
				if err != nil {
					return err
				}
				color := args[2]
				if color == "none" {
					color = ""
				}
				res, err := s.Apply(ctx, session.RecolorItem{Category: args[0], ID: id, Color: color})
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": res.Item})
			})
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <category> <id>",
		Short: "Delete an item permanently",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(ctx context.Context, s *session.Session) error {
				items, err := categoryItems(s.Document(), args[0])
				if err != nil {
					return err
				}
				id, err := resolveID(items, args[1])
				if err != nil {
					return err
				}
				if !confirm(cmd, app, "Delete item "+id+"?") {
					return nil
				}
				if _, err := s.Apply(ctx, session.DeleteItem{Category: args[0], ID: id}); err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": id}})
			})
		},
	}

	archiveCmd := &cobra.Command{
		Use:   "archive <category> <id>",
		Short: "Archive an item (restorable from the archive tab)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(ctx context.Context, s *session.Session) error {
				items, err := categoryItems(s.Document(), args[0])
				if err != nil {
					return err
				}
				id, err := resolveID(items, args[1])
				if err != nil {
					return err
				}
				if _, err := s.Apply(ctx, session.ArchiveItem{Category: args[0], ID: id}); err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"archived": id}})
			})
		},
	}

	reorderCmd := &cobra.Command{
		Use:   "reorder <category> <id>...",
		Short: "Reorder a category's items (every id, in the new order)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(ctx context.Context, s *session.Session) error {
				items, err := categoryItems(s.Document(), args[0])
				if err != nil {
					return err
				}
				ids := make([]string, len(args)-1)
				for i, arg := range args[1:] {
					id, err := resolveID(items, arg)
					if err != nil {
						return err
					}
					ids[i] = id
				}
				if _, err := s.Apply(ctx, session.ReorderItems{Category: args[0], IDs: ids}); err != nil {
					return err
				}
				items, _ = categoryItems(s.Document(), args[0])
				return writeOut(cmd, app, map[string]any{"data": items})
			})
		},
	}

	cmd.AddCommand(addCmd, listCmd, showCmd, renameCmd, editCmd, colorCmd, deleteCmd, archiveCmd, reorderCmd)
	return cmd
}
