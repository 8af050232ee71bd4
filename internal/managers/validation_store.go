package managers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/essaihub/dossier/internal/domain"
	"github.com/rs/zerolog/log"
)

// ValidationStore loads and persists the validation.json record of the
// main folder. The remote file is authoritative; every mutation
// re-uploads the full record (last write wins).
type ValidationStore struct {
	store FileStore
}

func NewValidationStore(store FileStore) *ValidationStore {
	return &ValidationStore{store: store}
}

// Load returns the persisted record, synthesizing and persisting the
// default record when validation.json is absent.
func (v *ValidationStore) Load(ctx context.Context, s *domain.Session) (domain.ValidationRecord, error) {
	recordID, err := v.findRecord(ctx, s)
	if err != nil {
		return domain.ValidationRecord{}, err
	}

	if recordID == "" {
		record := domain.DefaultValidationRecord()
		if err := v.Save(ctx, s, record); err != nil {
			return domain.ValidationRecord{}, fmt.Errorf("failed to persist default validation record: %w", err)
		}
		log.Debug().Str("folder", s.FolderName).Msg("Validation record created with defaults")
		return record, nil
	}

	data, err := v.store.Download(ctx, s.Folder.DriveID, recordID)
	if err != nil {
		return domain.ValidationRecord{}, fmt.Errorf("failed to download validation record: %w", err)
	}

	var record domain.ValidationRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return domain.ValidationRecord{}, fmt.Errorf("failed to parse validation record: %w", err)
	}

	return record, nil
}

// Save uploads the full record as the new content of validation.json.
func (v *ValidationStore) Save(ctx context.Context, s *domain.Session, record domain.ValidationRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal validation record: %w", err)
	}

	if _, err := v.store.Upload(ctx, s.Folder.DriveID, s.Folder.FolderID, domain.ValidationFileName, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to upload validation record: %w", err)
	}

	return nil
}

// Set applies a raw value to one validation key and persists the
// record immediately. FP and PVEE take "true"/"false"; PVEA takes one
// of its three states.
func (v *ValidationStore) Set(ctx context.Context, s *domain.Session, record *domain.ValidationRecord, key domain.ValidationKey, value string) error {
	switch key {
	case domain.KeyFP, domain.KeyPVEE:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value %q for %s: %w", value, key, err)
		}
		if key == domain.KeyFP {
			record.FP = b
		} else {
			record.PVEE = b
		}
	case domain.KeyPVEA:
		state, err := domain.ParsePVEAState(value)
		if err != nil {
			return err
		}
		record.PVEA = state
	default:
		return fmt.Errorf("unknown validation key %q", key)
	}

	return v.Save(ctx, s, *record)
}

// findRecord locates validation.json in the main folder listing and
// returns its id, or an empty string when absent.
func (v *ValidationStore) findRecord(ctx context.Context, s *domain.Session) (string, error) {
	children, err := v.store.ListChildren(ctx, s.Folder.DriveID, s.Folder.FolderID)
	if err != nil {
		return "", fmt.Errorf("failed to list main folder: %w", err)
	}

	for _, child := range children {
		if !child.IsFolder() && child.Name == domain.ValidationFileName {
			return child.ID, nil
		}
	}
	return "", nil
}
