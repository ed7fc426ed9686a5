// Package store persists user documents as plain text files in a flat
// directory.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/inkwell-nlp/inkwell/internal/logging"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("document not found")

// ErrBadName is returned when a filename cannot be made safe.
var ErrBadName = errors.New("invalid document name")

// Store is a flat-directory text document store.
type Store struct {
	dir string
	log *logging.Logger
}

// New creates a store rooted at dir. The directory is created on first
// save.
func New(dir string, log *logging.Logger) *Store {
	if log == nil {
		log = logging.NewNop()
	}
	return &Store{dir: dir, log: log}
}

// Save writes text under the sanitized name and returns the path.
func (s *Store) Save(name, text string) (string, error) {
	safe, err := Sanitize(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating documents dir: %w", err)
	}

	path := filepath.Join(s.dir, safe)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("writing document: %w", err)
	}
	s.log.Info("saved document", zap.String("name", safe))
	return path, nil
}

// Load returns the contents of the named document.
func (s *Store) Load(name string) (string, error) {
	safe, err := Sanitize(name)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(filepath.Join(s.dir, safe))
	if os.IsNotExist(err) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reading document: %w", err)
	}
	return string(data), nil
}

// List returns the stored document names, sorted. A missing directory
// yields an empty list.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Sanitize reduces a user-supplied filename to a safe basename: path
// separators and whitespace become underscores, anything outside a
// conservative character set is dropped.
func Sanitize(name string) (string, error) {
	name = filepath.Base(strings.TrimSpace(name))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}

	safe := strings.Trim(b.String(), ".")
	if safe == "" {
		return "", ErrBadName
	}
	return safe, nil
}
