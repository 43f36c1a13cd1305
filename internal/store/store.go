// Package store persists the note document, the window/session preferences,
// and the command event log under a single per-user data directory.
//
// The document file is UTF-8 pretty-printed JSON written with atomic replace
// semantics (temp file + rename). Loads are tolerant: a missing or corrupt
// file yields a fresh default document rather than an error, and legacy
// documents are upgraded in memory (see migrate.go) and re-persisted.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"memopad/internal/model"

	"github.com/gofrs/flock"
)

const (
	documentFileName = "notes.json"
	prefsFileName    = "window.json"
	eventsFileName   = "events.sqlite"
	lockFileName     = "notes.json.lock"
	errorLogFileName = "error.log"
)

// Store reads and writes all memopad files under Dir.
type Store struct {
	Dir string
}

// DataDir resolves the per-user data directory. MEMOPAD_DATA_DIR overrides
// it (keeps unit tests and fixtures away from the real config dir).
func DataDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("MEMOPAD_DATA_DIR")); v != "" {
		return v, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "memopad"), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) DocumentPath() string {
	return filepath.Join(s.Dir, documentFileName)
}

func (s Store) PrefsPath() string {
	return filepath.Join(s.Dir, prefsFileName)
}

func (s Store) eventsPath() string {
	return filepath.Join(s.Dir, eventsFileName)
}

func (s Store) ErrorLogPath() string {
	return filepath.Join(s.Dir, errorLogFileName)
}

// lockDocument takes the cross-process file lock guarding the document file.
// CLI invocations and a running TUI may write concurrently; the lock keeps
// their load-modify-save cycles from interleaving.
func (s Store) lockDocument() (release func(), err error) {
	fl := flock.New(filepath.Join(s.Dir, lockFileName))
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	locked, err := fl.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("acquire document lock: %w", err)
	}
	if !locked {
		return nil, errors.New("document file is locked by another process")
	}
	return func() { _ = fl.Unlock() }, nil
}

// LoadInfo reports what happened during a document load.
type LoadInfo struct {
	// Fresh is true when no usable file existed and a default document was
	// substituted.
	Fresh bool
	// Migrated is true when a legacy document was upgraded (and re-persisted).
	Migrated bool
	// Warning carries a human-readable note about a discarded corrupt file.
	Warning string
}

// LoadDocument reads, migrates, and normalizes the document. Per the load
// protocol, parse failures are non-fatal: the previous file is left in place
// and a fresh default document is returned with a warning. Only environment
// errors (lock, mkdir) are returned as errors.
func (s Store) LoadDocument() (*model.Document, LoadInfo, error) {
	if err := s.Ensure(); err != nil {
		return nil, LoadInfo{}, err
	}
	release, err := s.lockDocument()
	if err != nil {
		return nil, LoadInfo{}, err
	}
	defer release()

	raw, err := os.ReadFile(s.DocumentPath())
	if errors.Is(err, os.ErrNotExist) {
		return model.NewDocument(), LoadInfo{Fresh: true}, nil
	}
	if err != nil {
		return model.NewDocument(), LoadInfo{Fresh: true, Warning: fmt.Sprintf("read %s: %v", documentFileName, err)}, nil
	}

	doc, migrated, err := decodeDocument(raw)
	if err != nil {
		return model.NewDocument(), LoadInfo{Fresh: true, Warning: fmt.Sprintf("parse %s: %v", documentFileName, err)}, nil
	}
	info := LoadInfo{Migrated: migrated}
	if migrated {
		// Upgraded documents are re-persisted immediately so the on-disk
		// shape is always current-schema after a successful load.
		if err := s.saveDocumentLocked(doc); err != nil {
			return nil, info, err
		}
	}
	return doc, info, nil
}

// SaveDocument writes the whole document atomically. The write is skipped
// when the serialized bytes are unchanged.
func (s Store) SaveDocument(doc *model.Document) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	release, err := s.lockDocument()
	if err != nil {
		return err
	}
	defer release()
	return s.saveDocumentLocked(doc)
}

func (s Store) saveDocumentLocked(doc *model.Document) error {
	b, err := encodeDocument(doc)
	if err != nil {
		return err
	}
	path := s.DocumentPath()
	if existing, err := os.ReadFile(path); err == nil {
		if bytes.Equal(existing, b) {
			return nil
		}
		// Best-effort safety net for manual recovery; never blocks the save.
		_ = atomicWriteFile(s.Dir, documentFileName+".bak.*.tmp", path+".bak", existing, 0o644)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return atomicWriteFile(s.Dir, documentFileName+".*.tmp", path, b, 0o644)
}

// documentFile is the on-disk envelope: the document plus a schema version
// consumed by migrate.go. Legacy files without the version field decode as
// version 0.
type documentFile struct {
	SchemaVersion int `json:"schema_version"`
	model.Document
}

func encodeDocument(doc *model.Document) ([]byte, error) {
	df := documentFile{SchemaVersion: CurrentSchemaVersion, Document: *doc}
	b, err := json.MarshalIndent(df, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

func decodeDocument(raw []byte) (*model.Document, bool, error) {
	upgraded, migrated, err := Migrate(raw)
	if err != nil {
		return nil, false, err
	}
	var df documentFile
	if err := json.Unmarshal(upgraded, &df); err != nil {
		return nil, false, err
	}
	doc := df.Document
	doc.Normalize()
	return &doc, migrated, nil
}
