package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	auditapp "github.com/garage/backend/internal/application/audit"
	"github.com/garage/backend/internal/domain/audit"
	"github.com/garage/backend/internal/domain/catalog"
	"github.com/garage/backend/internal/domain/fleet"
	"github.com/garage/backend/internal/domain/maintenance"
	"github.com/garage/backend/internal/domain/partner"
	"github.com/garage/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FormatVersion is the payload version written by Export and accepted by Import
const FormatVersion = 1

// SnapshotData carries every collection of the backup payload. The log entries
// ride along but are merged, never truncated, on import.
type SnapshotData struct {
	Clients     []partner.Client                 `json:"clients"`
	Cars        []fleet.Car                      `json:"cars"`
	Insurance   []fleet.InsurancePolicy          `json:"insurance"`
	Services    []catalog.ShopService            `json:"services"`
	Products    []catalog.Product                `json:"products"`
	Suppliers   []partner.Supplier               `json:"suppliers"`
	Maintenance []maintenance.MaintenanceRequest `json:"maintenance"`
	Logs        []audit.Entry                    `json:"logs"`
}

// Snapshot is the full backup payload
type Snapshot struct {
	Version   int          `json:"version"`
	Timestamp time.Time    `json:"timestamp"`
	Data      SnapshotData `json:"data"`
}

// Datastore dumps and replaces whole collections. Replace must truncate and
// re-create every collection except the audit log within one transaction.
type Datastore interface {
	Dump(ctx context.Context) (*SnapshotData, error)
	Replace(ctx context.Context, data *SnapshotData) error
}

// ArchiveStorage uploads and downloads backup archives to object storage
type ArchiveStorage interface {
	Upload(ctx context.Context, key string, body io.Reader) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
}

// Service exports and imports full database snapshots
type Service struct {
	store   Datastore
	entries audit.EntryRepository
	archive ArchiveStorage
	logger  *zap.Logger
}

// NewService creates a new backup Service. Archive storage is optional; when
// nil, ArchiveToStorage and RestoreFromStorage return an error.
func NewService(store Datastore, entries audit.EntryRepository, archive ArchiveStorage, logger *zap.Logger) *Service {
	return &Service{
		store:   store,
		entries: entries,
		archive: archive,
		logger:  logger,
	}
}

// Export writes the full snapshot as JSON
func (s *Service) Export(ctx context.Context, w io.Writer) error {
	snapshot, err := s.snapshot(ctx)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(snapshot)
}

// Import reads a snapshot and restores it: every collection is truncated and
// re-created from the payload except the audit log, whose entries are merged
// append-by-id. One synthetic audit entry records the restore itself.
func (s *Service) Import(ctx context.Context, r io.Reader) error {
	var snapshot Snapshot
	if err := json.NewDecoder(r).Decode(&snapshot); err != nil {
		return shared.NewDomainError("INVALID_INPUT", "Backup payload is not valid JSON: "+err.Error())
	}
	if err := validateSnapshot(&snapshot); err != nil {
		return err
	}

	if err := s.store.Replace(ctx, &snapshot.Data); err != nil {
		return err
	}

	merged, err := s.mergeLogs(ctx, snapshot.Data.Logs)
	if err != nil {
		return err
	}
	s.logger.Info("backup restored",
		zap.Int("clients", len(snapshot.Data.Clients)),
		zap.Int("maintenance", len(snapshot.Data.Maintenance)),
		zap.Int("logs_merged", merged))

	entry, err := auditapp.BuildEntry(ctx, auditapp.RecordInput{
		Action:    audit.ActionCreate,
		TableName: "system",
		RecordID:  "restore",
		After: map[string]any{
			"version":      snapshot.Version,
			"timestamp":    snapshot.Timestamp,
			"logs_merged":  merged,
			"restored_at":  time.Now(),
		},
	})
	if err != nil {
		return err
	}
	return s.entries.Append(ctx, entry)
}

// ArchiveToStorage exports the snapshot and uploads it under a timestamped key
func (s *Service) ArchiveToStorage(ctx context.Context) (string, error) {
	if s.archive == nil {
		return "", shared.NewDomainError("INVALID_STATE", "Archive storage is not configured")
	}

	snapshot, err := s.snapshot(ctx)
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("backups/garage-%s.json", snapshot.Timestamp.UTC().Format("20060102-150405"))
	if err := s.archive.Upload(ctx, key, bytes.NewReader(payload)); err != nil {
		return "", err
	}
	s.logger.Info("backup archived", zap.String("key", key), zap.Int("bytes", len(payload)))
	return key, nil
}

// RestoreFromStorage downloads an archived snapshot and imports it
func (s *Service) RestoreFromStorage(ctx context.Context, key string) error {
	if s.archive == nil {
		return shared.NewDomainError("INVALID_STATE", "Archive storage is not configured")
	}

	body, err := s.archive.Download(ctx, key)
	if err != nil {
		return err
	}
	defer body.Close()

	return s.Import(ctx, body)
}

func (s *Service) snapshot(ctx context.Context) (*Snapshot, error) {
	data, err := s.store.Dump(ctx)
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		Version:   FormatVersion,
		Timestamp: time.Now(),
		Data:      *data,
	}, nil
}

// mergeLogs appends the payload's audit entries whose ids are not already
// present. Existing entries are never overwritten.
func (s *Service) mergeLogs(ctx context.Context, logs []audit.Entry) (int, error) {
	if len(logs) == 0 {
		return 0, nil
	}

	ids := make([]uuid.UUID, len(logs))
	for i := range logs {
		ids[i] = logs[i].ID
	}
	existing, err := s.entries.ExistingIDs(ctx, ids)
	if err != nil {
		return 0, err
	}

	fresh := make([]audit.Entry, 0, len(logs))
	for i := range logs {
		if !existing[logs[i].ID] {
			fresh = append(fresh, logs[i])
		}
	}
	if len(fresh) == 0 {
		return 0, nil
	}
	if err := s.entries.SaveAll(ctx, fresh); err != nil {
		return 0, err
	}
	return len(fresh), nil
}

func validateSnapshot(snapshot *Snapshot) error {
	if snapshot.Version > FormatVersion {
		return shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("Unsupported backup version %d", snapshot.Version))
	}

	missing := make([]string, 0)
	if snapshot.Data.Clients == nil {
		missing = append(missing, "clients")
	}
	if snapshot.Data.Cars == nil {
		missing = append(missing, "cars")
	}
	if snapshot.Data.Services == nil {
		missing = append(missing, "services")
	}
	if snapshot.Data.Products == nil {
		missing = append(missing, "products")
	}
	if snapshot.Data.Maintenance == nil {
		missing = append(missing, "maintenance")
	}
	if len(missing) > 0 {
		return shared.NewDomainError("INVALID_INPUT",
			"Backup payload is missing required collections: "+strings.Join(missing, ", "))
	}
	return nil
}
