package session

import (
	"context"
	"time"
)

// Bind points the detail buffer at a new target. Any pending text for the
// previous target is folded in first, so switching rows can never leak one
// item's body into another.
func (s *Session) Bind(ctx context.Context, ref Ref) {
	s.FlushBuffer(ctx)
	s.mu.Lock()
	s.bound = ref
	if body := resolve(s.doc, ref); body != nil {
		s.buffer = *body
	} else {
		s.buffer = ""
	}
	s.bufferDirty = false
	s.mu.Unlock()
}

// Bound returns the current edit target.
func (s *Session) Bound() Ref {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bound
}

// Buffer returns the text the editor should display for the bound target.
func (s *Session) Buffer() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer
}

// SetBuffer records an editor keystroke. The text reaches the document only
// after a short idle pause, or immediately on the next Bind/Save/Close.
// With nothing bound the call is dropped.
func (s *Session) SetBuffer(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, none := s.bound.(RefNone); none {
		return
	}
	if s.buffer == text && !s.bufferDirty {
		return
	}
	s.buffer = text
	s.bufferDirty = true
	if s.editTimer == nil {
		s.editTimer = time.AfterFunc(s.editDebounce, s.onEditTimer)
		return
	}
	s.editTimer.Reset(s.editDebounce)
}

func (s *Session) onEditTimer() {
	s.FlushBuffer(context.Background())
}

// FlushBuffer folds pending editor text into the bound target. A target
// that vanished since binding (deleted or archived from elsewhere) drops
// the text silently; the document stays consistent and the next Bind
// repopulates the editor.
func (s *Session) FlushBuffer(ctx context.Context) {
	s.mu.Lock()
	if s.editTimer != nil {
		s.editTimer.Stop()
	}
	if !s.bufferDirty {
		s.mu.Unlock()
		return
	}
	s.bufferDirty = false
	body := resolve(s.doc, s.bound)
	if body == nil || *body == s.buffer {
		s.mu.Unlock()
		return
	}
	*body = s.buffer
	s.dirty = true
	ref := s.bound
	size := len(s.buffer)
	s.mu.Unlock()

	payload := map[string]any{"bytes": size}
	switch r := ref.(type) {
	case RefTodo:
		if err := s.events.Append(ctx, "todo.body", r.ID, payload); err != nil {
			s.store.AppendErrorLog(err, nil)
		}
	case RefResident:
		if err := s.events.Append(ctx, "item.body", r.ID, payload); err != nil {
			s.store.AppendErrorLog(err, nil)
		}
	case RefFreeNote:
		if err := s.events.Append(ctx, "note.set", "", payload); err != nil {
			s.store.AppendErrorLog(err, nil)
		}
	}
	s.saver.Notify()
}

// Unbind flushes and parks the buffer.
func (s *Session) Unbind(ctx context.Context) {
	s.Bind(ctx, RefNone{})
}
