package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/zkvault/internal/client/client"
	"github.com/dmitrijs2005/zkvault/internal/client/models"
	"github.com/dmitrijs2005/zkvault/internal/client/vault"
	"github.com/dmitrijs2005/zkvault/internal/filex"
	"github.com/dmitrijs2005/zkvault/internal/logging"
	"github.com/dmitrijs2005/zkvault/internal/netx"
	"github.com/dmitrijs2005/zkvault/internal/rpc"
)

var (
	download = netx.Download
	nowFunc  = time.Now
)

// ExportResult describes an export written to disk.
type ExportResult struct {
	Path  string
	Count int
}

// EntryService defines entry operations. Add, Get and Update need an
// unlocked vault; List and Delete only a login.
type EntryService interface {
	Add(ctx context.Context, e *models.Entry) (*models.StoredEntry, error)
	Get(ctx context.Context, label string) (*models.Entry, error)
	List(ctx context.Context) ([]*models.StoredEntry, error)
	Update(ctx context.Context, e *models.Entry) (*models.StoredEntry, error)
	Delete(ctx context.Context, label string) error
	Export(ctx context.Context, dir string) (*ExportResult, error)
}

type entryService struct {
	client  client.Client
	session *vault.Session
	codec   *vault.Codec
	logger  logging.Logger
}

func NewEntryService(c client.Client, s *vault.Session, logger logging.Logger) EntryService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &entryService{client: c, session: s, codec: vault.NewCodec(s), logger: logger}
}

func (s *entryService) requireLogin() error {
	if s.session.State() == vault.StateLoggedOut {
		return vault.ErrNotLoggedIn
	}
	return nil
}

func (s *entryService) requireUnlocked() error {
	switch s.session.State() {
	case vault.StateLoggedOut:
		return vault.ErrNotLoggedIn
	case vault.StateLocked:
		return vault.ErrVaultLocked
	}
	return nil
}

func (s *entryService) handle(ctx context.Context, err error) error {
	return expireOnUnauthorized(ctx, s.session, s.client, err)
}

// Add seals e and stores it under its label.
func (s *entryService) Add(ctx context.Context, e *models.Entry) (*models.StoredEntry, error) {
	if err := s.requireUnlocked(); err != nil {
		return nil, err
	}
	env, err := s.codec.Seal(e)
	if err != nil {
		return nil, err
	}
	stored, err := s.client.CreateEntry(ctx, e.Label, env)
	if err != nil {
		return nil, s.handle(ctx, err)
	}
	s.logger.Debug(ctx, "entry added", "id", stored.ID)
	return stored, nil
}

// Get fetches and opens the entry stored under label.
func (s *entryService) Get(ctx context.Context, label string) (*models.Entry, error) {
	if err := s.requireUnlocked(); err != nil {
		return nil, err
	}
	if err := models.ValidateLabel(label); err != nil {
		return nil, err
	}
	stored, err := s.client.GetEntry(ctx, label)
	if err != nil {
		return nil, s.handle(ctx, err)
	}
	e, err := s.codec.Open(label, stored.Envelope)
	if err != nil {
		return nil, err
	}
	e.CreatedAt = stored.CreatedAt
	e.UpdatedAt = stored.UpdatedAt
	return e, nil
}

// List returns labels and timestamps. No key is needed.
func (s *entryService) List(ctx context.Context) ([]*models.StoredEntry, error) {
	if err := s.requireLogin(); err != nil {
		return nil, err
	}
	items, err := s.client.ListEntries(ctx)
	if err != nil {
		return nil, s.handle(ctx, err)
	}
	return items, nil
}

// Update reseals e and replaces the stored envelope for its label.
func (s *entryService) Update(ctx context.Context, e *models.Entry) (*models.StoredEntry, error) {
	if err := s.requireUnlocked(); err != nil {
		return nil, err
	}
	env, err := s.codec.Seal(e)
	if err != nil {
		return nil, err
	}
	stored, err := s.client.UpdateEntry(ctx, e.Label, env)
	if err != nil {
		return nil, s.handle(ctx, err)
	}
	return stored, nil
}

func (s *entryService) Delete(ctx context.Context, label string) error {
	if err := s.requireLogin(); err != nil {
		return err
	}
	if err := models.ValidateLabel(label); err != nil {
		return err
	}
	if err := s.client.DeleteEntry(ctx, label); err != nil {
		return s.handle(ctx, err)
	}
	return nil
}

// Export asks the server for a ciphertext-only export, downloads it and
// writes it into dir. The document is checked before it is written.
func (s *entryService) Export(ctx context.Context, dir string) (*ExportResult, error) {
	if err := s.requireLogin(); err != nil {
		return nil, err
	}

	info, err := s.client.Export(ctx)
	if err != nil {
		return nil, s.handle(ctx, err)
	}

	data, err := download(ctx, info.URL)
	if err != nil {
		return nil, fmt.Errorf("download export: %w", err)
	}

	var doc rpc.ExportDocument
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExport, err)
	}
	if doc.Version != rpc.ExportVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidExport, doc.Version)
	}
	if len(doc.Entries) != info.Count {
		return nil, fmt.Errorf("%w: %d entries, server reported %d", ErrInvalidExport, len(doc.Entries), info.Count)
	}

	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}
	name := fmt.Sprintf("zkvault-export-%s.json", nowFunc().UTC().Format("20060102-150405"))
	path := filepath.Join(abs, name)
	if err := filex.WriteFileAtomic(path, data, 0o600); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "export written", "path", path, "count", len(doc.Entries))
	return &ExportResult{Path: path, Count: len(doc.Entries)}, nil
}
