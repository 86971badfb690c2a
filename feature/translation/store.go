package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"packetgen/core/apperr"
	"packetgen/core/artifact"

	"gorm.io/gorm"
)

// Store persists the merged translation table between runs. The table read
// by Load is the override source for the next merge; Save replaces it whole.
type Store interface {
	// Load returns the persisted table, or an empty table if none exists yet.
	Load(ctx context.Context) (Table, error)
	// Save replaces the persisted table with t.
	Save(ctx context.Context, t Table) error
}

// ArtifactStore is a Store whose persisted form is a single file.
type ArtifactStore interface {
	Store
	Artifact(t Table) (artifact.Artifact, error)
}

// TxStore is a Store whose Save runs inside a transaction. SaveWith calls fn
// after the table is written and commits only when fn succeeds.
type TxStore interface {
	Store
	SaveWith(ctx context.Context, t Table, fn func() error) error
}

// FileStore keeps the table as a JSON object in a file.
type FileStore struct {
	Path string
}

// NewFileStore creates a file-backed store.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load implements Store. A missing file yields an empty table.
func (s *FileStore) Load(ctx context.Context) (Table, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return Table{}, nil
	}
	if err != nil {
		return nil, apperr.SourceRead(s.Path, err)
	}

	t := Table{}
	if len(bytes.TrimSpace(data)) == 0 {
		return t, nil
	}
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, apperr.Parse(s.Path, err)
	}
	if t == nil {
		// The file held a JSON null.
		t = Table{}
	}
	return t, nil
}

// Save implements Store. The file is replaced atomically.
func (s *FileStore) Save(ctx context.Context, t Table) error {
	data, err := EncodeTable(t)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(s.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", s.Path, err)
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", s.Path, err)
	}
	return nil
}

// EncodeTable renders t as tab-indented JSON with sorted keys and a trailing
// newline, so unchanged tables encode to identical bytes.
func EncodeTable(t Table) ([]byte, error) {
	if t == nil {
		t = Table{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "\t")
	if err := enc.Encode(t); err != nil {
		return nil, fmt.Errorf("failed to encode translation table: %w", err)
	}
	return buf.Bytes(), nil
}

// Override is one persisted translation row.
type Override struct {
	Old string `gorm:"column:old;type:varchar(255);primaryKey"`
	New string `gorm:"column:new;type:varchar(255);not null"`
}

// TableName overrides the table name used by Override to `translation_overrides`.
func (Override) TableName() string {
	return "translation_overrides"
}

// DBStore keeps the table in a database through GORM.
type DBStore struct {
	db *gorm.DB
}

// NewDBStore creates a database-backed store. Call Migrate before first use.
func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

// Migrate creates or updates the overrides table.
func (s *DBStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&Override{}); err != nil {
		return fmt.Errorf("failed to migrate translation overrides: %w", err)
	}
	return nil
}

// Load implements Store.
func (s *DBStore) Load(ctx context.Context) (Table, error) {
	var rows []Override
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load translation overrides: %w", err)
	}
	t := make(Table, len(rows))
	for _, r := range rows {
		t[r.Old] = r.New
	}
	return t, nil
}

// Save implements Store. Rows not in t are deleted in the same transaction.
func (s *DBStore) Save(ctx context.Context, t Table) error {
	return s.SaveWith(ctx, t, nil)
}

// SaveWith implements TxStore. The table is replaced and fn runs inside one
// transaction; an error from fn rolls the table back.
func (s *DBStore) SaveWith(ctx context.Context, t Table, fn func() error) error {
	rows := make([]Override, 0, len(t))
	for _, k := range t.Keys() {
		rows = append(rows, Override{Old: k, New: t[k]})
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Override{}).Error; err != nil {
			return fmt.Errorf("failed to clear translation overrides: %w", err)
		}
		if len(rows) > 0 {
			if err := tx.CreateInBatches(rows, 500).Error; err != nil {
				return fmt.Errorf("failed to save translation overrides: %w", err)
			}
		}
		if fn == nil {
			return nil
		}
		return fn()
	})
}

// Artifact renders t as the file the store would write, so it can be flushed
// together with the other outputs of a run.
func (s *FileStore) Artifact(t Table) (artifact.Artifact, error) {
	data, err := EncodeTable(t)
	if err != nil {
		return artifact.Artifact{}, err
	}
	return artifact.Artifact{Path: s.Path, Data: data}, nil
}
