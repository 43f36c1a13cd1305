// Package session ties a loaded document to its store: it applies commands,
// debounces detail-editor keystrokes into the bound item, records applied
// commands in the event log, and autosaves after bursts of changes. One
// Session serves one process; cross-process safety comes from the store's
// file lock and atomic writes.
package session

import (
	"context"
	"os"
	"sync"
	"time"

	"memopad/internal/model"
	"memopad/internal/store"
)

const (
	editDebounce = 400 * time.Millisecond
	saveDebounce = 2 * time.Second
)

type Session struct {
	store  store.Store
	events *store.EventLog
	saver  *Saver

	mu        sync.Mutex
	doc       *model.Document
	info      store.LoadInfo
	dirty     bool
	loadedMod time.Time

	bound        Ref
	buffer       string
	bufferDirty  bool
	editTimer    *time.Timer
	editDebounce time.Duration
}

// Options tunes a Session. Zero values give the interactive defaults.
type Options struct {
	// EditDebounce delays folding SetBuffer text into the document.
	EditDebounce time.Duration
	// SaveDebounce delays the disk write after a change.
	SaveDebounce time.Duration
	// NoEventLog skips opening events.sqlite. One-shot commands that
	// manage their own log pass false; tests that want a quiet temp dir
	// pass true.
	NoEventLog bool
}

func Open(ctx context.Context, st store.Store, opts Options) (*Session, error) {
	if err := st.Ensure(); err != nil {
		return nil, err
	}
	doc, info, err := st.LoadDocument()
	if err != nil {
		return nil, err
	}
	s := &Session{
		store: st,
		doc:   doc,
		info:  info,
		bound: RefNone{},
	}
	if fi, err := os.Stat(st.DocumentPath()); err == nil {
		s.loadedMod = fi.ModTime()
	}
	if !opts.NoEventLog {
		// The log is best-effort; a locked or unreadable sqlite file must
		// not keep the user from their notes.
		if log, err := st.OpenEventLog(ctx); err == nil {
			s.events = log
		} else {
			st.AppendErrorLog(err, nil)
		}
	}
	save := opts.SaveDebounce
	if save <= 0 {
		save = saveDebounce
	}
	s.saver = NewSaver(save, s.saveNow)
	if opts.EditDebounce > 0 {
		s.editDebounce = opts.EditDebounce
	} else {
		s.editDebounce = editDebounce
	}
	return s, nil
}

// Document exposes the live document. Callers on the owning goroutine may
// read it freely; all writes must go through Apply or the edit buffer.
func (s *Session) Document() *model.Document {
	return s.doc
}

// LoadInfo reports how the document load went (fresh file, migration,
// recovered-from-corruption warning).
func (s *Session) LoadInfo() store.LoadInfo {
	return s.info
}

func (s *Session) Store() store.Store {
	return s.store
}

func (s *Session) Events() *store.EventLog {
	return s.events
}

// Dirty reports whether the document has unsaved changes.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Apply runs one command against the document. When the command changed
// anything, it is recorded in the event log and a save is scheduled.
func (s *Session) Apply(ctx context.Context, cmd Command) (Result, error) {
	s.mu.Lock()
	out, err := cmd.run(s.doc)
	if err != nil {
		s.mu.Unlock()
		return Result{}, err
	}
	if out.changed {
		s.dirty = true
	}
	s.mu.Unlock()

	if out.changed {
		if err := s.events.Append(ctx, cmd.Name(), out.entityID, out.payload); err != nil {
			s.store.AppendErrorLog(err, nil)
		}
		s.saver.Notify()
	}
	return Result{Changed: out.changed, Item: out.item, EntityID: out.entityID}, nil
}

// Save forces any unsaved state to disk now, including a pending edit
// buffer.
func (s *Session) Save(ctx context.Context) error {
	s.FlushBuffer(ctx)
	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()
	return s.saveErr()
}

func (s *Session) saveNow() {
	if err := s.saveErr(); err != nil {
		s.store.AppendErrorLog(err, nil)
	}
}

func (s *Session) saveErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}
	if err := s.store.SaveDocument(s.doc); err != nil {
		return err
	}
	s.dirty = false
	if fi, err := os.Stat(s.store.DocumentPath()); err == nil {
		s.loadedMod = fi.ModTime()
	}
	return nil
}

// ReloadIfChanged re-reads the document when another process has written
// it since our load. Local unsaved changes win: a dirty session never
// reloads.
func (s *Session) ReloadIfChanged() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dirty || s.bufferDirty {
		return false, nil
	}
	fi, err := os.Stat(s.store.DocumentPath())
	if err != nil {
		return false, nil
	}
	if !fi.ModTime().After(s.loadedMod) {
		return false, nil
	}
	doc, info, err := s.store.LoadDocument()
	if err != nil {
		return false, err
	}
	s.doc = doc
	s.info = info
	s.loadedMod = fi.ModTime()
	return true, nil
}

// Close flushes everything and releases the event log.
func (s *Session) Close(ctx context.Context) error {
	s.FlushBuffer(ctx)
	s.saver.Stop()
	err := s.saveErr()
	if cerr := s.events.Close(); err == nil {
		err = cerr
	}
	return err
}
