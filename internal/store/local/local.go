// Package local is the demo-mode backend of the store facade. Each account's
// records live in a single JSON document on disk, the Go rendition of the
// browser-storage blob the live product uses when no remote backend is
// configured. Writes replace the whole document via an atomic rename, so
// re-applying the same document is a no-op.
package local

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"example.com/mil-eventos/backend/internal/models"
)

const usersFile = "users.json"

type Store struct {
	dir string
	mu  sync.Mutex
}

type document struct {
	Profile      models.BusinessProfile  `json:"profile"`
	Proposals    []models.Proposal       `json:"proposals"`
	Events       []models.Event          `json:"events"`
	Transactions []models.Transaction    `json:"transactions"`
	Clients      []models.Client         `json:"clients"`
	Suppliers    []models.Supplier       `json:"suppliers"`
	Services     []models.ServicePackage `json:"services"`
}

// Open prepares the data directory and returns a local store.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}

	return &Store{dir: dir}, nil
}

// Close is a no-op; documents are flushed on every write.
func (s *Store) Close() {}

func (s *Store) docPath(userID uuid.UUID) string {
	return filepath.Join(s.dir, userID.String()+".json")
}

func (s *Store) loadDocument(userID uuid.UUID) (document, error) {
	var doc document

	raw, err := os.ReadFile(s.docPath(userID))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return doc, nil
		}
		return doc, err
	}

	if err := json.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("decode document for %s: %w", userID, err)
	}

	return doc, nil
}

func (s *Store) saveDocument(userID uuid.UUID, doc document) error {
	return s.writeFile(s.docPath(userID), doc)
}

func (s *Store) writeFile(path string, value any) error {
	raw, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}

	return os.Rename(tmp, path)
}

func (s *Store) loadUsers() ([]models.User, error) {
	var users []models.User

	raw, err := os.ReadFile(filepath.Join(s.dir, usersFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	return users, nil
}

func (s *Store) saveUsers(users []models.User) error {
	return s.writeFile(filepath.Join(s.dir, usersFile), users)
}

// userDocuments lists the ids of all stored account documents.
func (s *Store) userDocuments() ([]uuid.UUID, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") || name == usersFile {
			continue
		}

		id, err := uuid.Parse(strings.TrimSuffix(name, ".json"))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func now() time.Time {
	return time.Now().UTC()
}
