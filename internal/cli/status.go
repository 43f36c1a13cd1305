package cli

import (
	"context"

	"memopad/internal/session"
	"memopad/internal/store"

	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the data dir and an empty document",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			doc, info, err := st.LoadDocument()
			if err != nil {
				return writeErr(cmd, err)
			}
			if info.Fresh {
				if err := st.SaveDocument(doc); err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"dir":     st.Dir,
				"created": info.Fresh,
			}})
		},
	}
}

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show where the data lives and what is in it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(ctx context.Context, s *session.Session) error {
				doc := s.Document()
				done := 0
				for _, item := range doc.Todo.Items {
					if item.Done {
						done++
					}
				}
				residentItems, residentArchived := 0, 0
				for _, name := range doc.CategoryOrder {
					if cat := doc.Categories[name]; cat != nil {
						residentItems += len(cat.Items)
						residentArchived += len(cat.Archive)
					}
				}
				out := map[string]any{
					"dir":           s.Store().Dir,
					"schemaVersion": store.CurrentSchemaVersion,
					"todos":         len(doc.Todo.Items),
					"todosDone":     done,
					"todosArchived": len(doc.Todo.Archive),
					"categories":    len(doc.CategoryOrder),
					"items":         residentItems,
					"itemsArchived": residentArchived,
				}
				info := s.LoadInfo()
				if info.Migrated {
					out["migrated"] = true
				}
				if info.Warning != "" {
					out["warning"] = info.Warning
				}
				return writeOut(cmd, app, map[string]any{"data": out})
			})
		},
	}
}
