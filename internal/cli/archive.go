package cli

import (
	"context"
	"time"

	"memopad/internal/model"
	"memopad/internal/session"

	"github.com/spf13/cobra"
)

type archiveRow struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	OriginalCategory string `json:"originalCategory"`
	ArchivedAt       string `json:"archivedAt"`
}

func archiveRows(entries []model.ResidentArchiveEntry) []archiveRow {
	rows := make([]archiveRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, archiveRow{
			ID:               e.ID,
			Title:            e.Title,
			OriginalCategory: e.OriginalCategory,
			ArchivedAt:       time.Unix(e.ArchivedAt, 0).Format(time.RFC3339),
		})
	}
	return rows
}

func resolveArchiveID(doc *model.Document, ref string) (string, error) {
	var items []model.Item
	for _, e := range doc.AllResidentArchives() {
		items = append(items, e.Item)
	}
	return resolveID(items, ref)
}

func newArchiveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "The cross-category archive of resident items",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List archived items, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(ctx context.Context, s *session.Session) error {
				return writeOut(cmd, app, map[string]any{"data": archiveRows(s.Document().AllResidentArchives())})
			})
		},
	}

	restoreCmd := &cobra.Command{
		Use:   "restore <id>",
		Short: "Restore an archived item to its original category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(ctx context.Context, s *session.Session) error {
				id, err := resolveArchiveID(s.Document(), args[0])
				if err != nil {
					return err
				}
				res, err := s.Apply(ctx, session.RestoreArchive{ID: id})
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": res.Item})
			})
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an archived item permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(ctx context.Context, s *session.Session) error {
				id, err := resolveArchiveID(s.Document(), args[0])
				if err != nil {
					return err
				}
				if !confirm(cmd, app, "Delete archived item "+id+"?") {
					return nil
				}
				if _, err := s.Apply(ctx, session.DeleteArchive{ID: id}); err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": id}})
			})
		},
	}

	var editTitle, editBody string
	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an archived item in place",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(ctx context.Context, s *session.Session) error {
				doc := s.Document()
				id, err := resolveArchiveID(doc, args[0])
				if err != nil {
					return err
				}
				entry, _, ok := doc.FindResidentArchive(id)
				if !ok {
					return errNotFound("archive entry", id)
				}
				title := editTitle
				if title == "" {
					title = entry.Title
				}
				html := entry.HTML
				if cmd.Flags().Changed("body") {
					html = bodyToHTML(editBody)
				}
				res, err := s.Apply(ctx, session.EditArchive{ID: id, Title: title, HTML: html})
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
