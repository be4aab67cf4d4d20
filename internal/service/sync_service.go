package service

import (
	"encoding/json"
	"fmt"
	"log"

	"kannadabaruthe/internal/database"
	"kannadabaruthe/internal/models"
	"kannadabaruthe/internal/repository"
)

// ExportPayload is the backup file format: the full content set plus the
// learner's userData records
type ExportPayload struct {
	Modules  []models.Module `json:"modules"`
	UserData []models.Record `json:"userData"`
}

// SyncService exports and imports the whole application state. Imports are
// reconciled into a write plan first and applied inside one transaction.
type SyncService struct {
	db           *database.DB
	progressRepo *repository.ProgressRepository
	contentRepo  *repository.ContentRepository
}

// NewSyncService creates a new sync service
func NewSyncService(db *database.DB, progressRepo *repository.ProgressRepository, contentRepo *repository.ContentRepository) *SyncService {
	return &SyncService{db: db, progressRepo: progressRepo, contentRepo: contentRepo}
}

// Export collects the full application state as a backup payload
func (s *SyncService) Export() (*ExportPayload, error) {
	modules, err := s.contentRepo.ListModules()
	if err != nil {
		return nil, err
	}
	userData, err := s.progressRepo.GetAll(repository.StoreUserData)
	if err != nil {
		return nil, err
	}
	if modules == nil {
		modules = []models.Module{}
	}
	if userData == nil {
		userData = []models.Record{}
	}
	return &ExportPayload{Modules: modules, UserData: userData}, nil
}

// ImportJSON validates a backup payload and applies it. The reconciliation
// plan is computed in full before the first write; the apply itself runs in
// one transaction, so a failed import leaves the database untouched.
func (s *SyncService) ImportJSON(data []byte) error {
	var payload map[string]interface{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return formatErrorf("invalid JSON format: %v", err)
	}

	existingIDs, err := s.contentRepo.ModuleIDs()
	if err != nil {
		return err
	}

	plan, err := ComputeModuleSync(existingIDs, payload["modules"])
	if err != nil {
		return err
	}
	records, err := NormalizeUserDataRecords(payload["userData"])
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start import transaction: %w", err)
	}
	defer tx.Rollback()

	txContent := repository.NewContentRepository(tx)
	txProgress := repository.NewProgressRepository(tx)

	for i := range plan.ToUpsert {
		module := &plan.ToUpsert[i]
		position, err := txContent.ModulePosition(module.ID)
		if err != nil {
			return err
		}
		if fixed := DashboardPosition(module.ID); fixed >= 0 {
			position = fixed
		}
		if err := txContent.PutModule(module, position); err != nil {
			return err
		}
	}
	for _, id := range plan.ToDelete {
		if err := txContent.DeleteModule(id); err != nil {
			return err
		}
	}
	for _, record := range records {
		if err := txProgress.Put(repository.StoreUserData, record); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}

	log.Printf("Import applied: %d modules upserted, %d deleted, %d userData records",
		len(plan.ToUpsert), len(plan.ToDelete), len(records))
	return nil
}

// ResetAllProgress wipes every progress store and restores the default
// profile. Content modules and trivia are kept.
func (s *SyncService) ResetAllProgress() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start reset transaction: %w", err)
	}
	defer tx.Rollback()

	txProgress := repository.NewProgressRepository(tx)
	stores := []string{
		repository.StoreUserData,
		repository.StoreSRS,
		repository.StoreProgressLog,
		repository.StoreCardTracking,
	}
	for _, store := range stores {
		if err := txProgress.Clear(store); err != nil {
			return err
		}
	}
	if err := txProgress.PutProfile(models.DefaultProfile()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reset: %w", err)
	}
	log.Printf("All learner progress reset")
	return nil
}
