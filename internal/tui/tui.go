// Package tui is the interactive terminal front end. It drives the same
// session layer as the CLI, so anything done here shows up in `memopad`
// subcommands and vice versa.
package tui

import (
	"context"
	"runtime/debug"

	"memopad/internal/session"
	"memopad/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func Run(st store.Store) (err error) {
	ctx := context.Background()
	sess, err := session.Open(ctx, st, session.Options{})
	if err != nil {
		return err
	}
	defer func() {
		// A crash must not lose edits: record it and still flush the
		// session.
		if r := recover(); r != nil {
			st.AppendErrorLog(r, debug.Stack())
		}
		if cerr := sess.Close(ctx); err == nil {
			err = cerr
		}
	}()

	m := newAppModel(sess)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
