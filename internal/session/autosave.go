package session

import (
	"sync"
	"time"
)

// Saver coalesces bursts of document changes into one write. Notify arms a
// timer; every further Notify before it fires pushes the write out again,
// so a typing burst costs a single save after the user pauses.
type Saver struct {
	debounce time.Duration
	save     func()

	mu      sync.Mutex
	timer   *time.Timer
	pending bool
	running bool
}

func NewSaver(debounce time.Duration, save func()) *Saver {
	if debounce <= 0 {
		debounce = 2 * time.Second
	}
	return &Saver{debounce: debounce, save: save}
}

func (s *Saver) Notify() {
	if s == nil {
		return
	}

	s.mu.Lock()
	s.pending = true
	if s.timer == nil {
		s.timer = time.AfterFunc(s.debounce, s.onTimer)
		s.mu.Unlock()
		return
	}
	s.timer.Reset(s.debounce)
	s.mu.Unlock()
}

func (s *Saver) onTimer() {
	s.mu.Lock()
	if s.running {
		// Another run is in-flight; schedule again to pick up pending changes.
		if s.timer != nil {
			s.timer.Reset(s.debounce)
		}
		s.mu.Unlock()
		return
	}
	if !s.pending {
		s.mu.Unlock()
		return
	}
	s.pending = false
	s.running = true
	s.mu.Unlock()

	s.save()

	s.mu.Lock()
	s.running = false
	if s.pending && s.timer != nil {
		s.timer.Reset(s.debounce)
	}
	s.mu.Unlock()
}

// Flush runs a pending save immediately. It is the shutdown path; callers
// that only changed data go through Notify.
func (s *Saver) Flush() {
	if s == nil {
		return
	}

	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
	}
	if !s.pending || s.running {
		s.mu.Unlock()
		return
	}
	s.pending = false
	s.running = true
	s.mu.Unlock()

	s.save()

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// Stop cancels any scheduled save without running it.
func (s *Saver) Stop() {
	if s == nil {
		return
	}
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.pending = false
	s.mu.Unlock()
}
