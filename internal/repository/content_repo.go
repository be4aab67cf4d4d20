package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"kannadabaruthe/internal/database"
	"kannadabaruthe/internal/models"
)

// ContentRepository persists the learning content: modules and trivia items
type ContentRepository struct {
	db database.DBTX
}

// NewContentRepository creates a new content repository
func NewContentRepository(db database.DBTX) *ContentRepository {
	return &ContentRepository{db: db}
}

// ListModules retrieves all modules in dashboard order
func (r *ContentRepository) ListModules() ([]models.Module, error) {
	query := `SELECT payload FROM modules ORDER BY position, id`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list modules: %w", err)
	}
	defer rows.Close()

	var modules []models.Module
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var module models.Module
		if err := json.Unmarshal([]byte(payload), &module); err != nil {
			return nil, fmt.Errorf("failed to decode module: %w", err)
		}
		modules = append(modules, module)
	}
	return modules, rows.Err()
}

// ModuleIDs retrieves the ids of all stored modules in dashboard order
func (r *ContentRepository) ModuleIDs() ([]string, error) {
	query := `SELECT id FROM modules ORDER BY position, id`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list module ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetModule retrieves one module by id, or nil when absent
func (r *ContentRepository) GetModule(id string) (*models.Module, error) {
	query := `SELECT payload FROM modules WHERE id = ?`

	var payload string
	err := r.db.QueryRow(query, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read module %s: %w", id, err)
	}

	module := &models.Module{}
	if err := json.Unmarshal([]byte(payload), module); err != nil {
		return nil, fmt.Errorf("failed to decode module %s: %w", id, err)
	}
	if module.Phrases == nil {
		module.Phrases = []models.Phrase{}
	}
	return module, nil
}

// PutModule inserts or replaces a module at the given dashboard position
func (r *ContentRepository) PutModule(module *models.Module, position int) error {
	payload, err := json.Marshal(module)
	if err != nil {
		return fmt.Errorf("failed to encode module %s: %w", module.ID, err)
	}

	_, err = r.db.Exec(r.db.GetDialect().UpsertModule(), module.ID, position, string(payload))
	if err != nil {
		return fmt.Errorf("failed to write module %s: %w", module.ID, err)
	}
	return nil
}

// ModulePosition retrieves the stored dashboard position of a module,
// or the next free position when the module is new
func (r *ContentRepository) ModulePosition(id string) (int, error) {
	var position int
	err := r.db.QueryRow(`SELECT position FROM modules WHERE id = ?`, id).Scan(&position)
	if err == nil {
		return position, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to read module position %s: %w", id, err)
	}

	var next sql.NullInt64
	if err := r.db.QueryRow(`SELECT MAX(position) + 1 FROM modules`).Scan(&next); err != nil {
		return 0, fmt.Errorf("failed to compute module position: %w", err)
	}
	if !next.Valid {
		return 0, nil
	}
	return int(next.Int64), nil
}

// DeleteModule removes a module by id
func (r *ContentRepository) DeleteModule(id string) error {
	if _, err := r.db.Exec(`DELETE FROM modules WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete module %s: %w", id, err)
	}
	return nil
}

// CountModules returns the number of stored modules
func (r *ContentRepository) CountModules() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM modules`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count modules: %w", err)
	}
	return count, nil
}

// ListTrivia retrieves all trivia items
func (r *ContentRepository) ListTrivia() ([]models.TriviaItem, error) {
	query := `SELECT payload FROM trivia_items ORDER BY id`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list trivia: %w", err)
	}
	defer rows.Close()

	var items []models.TriviaItem
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var item models.TriviaItem
		if err := json.Unmarshal([]byte(payload), &item); err != nil {
			return nil, fmt.Errorf("failed to decode trivia item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// AddTrivia stores a new trivia item and returns its id
func (r *ContentRepository) AddTrivia(item *models.TriviaItem) (int64, error) {
	payload, err := json.Marshal(item)
	if err != nil {
		return 0, fmt.Errorf("failed to encode trivia item: %w", err)
	}

	id, err := r.db.ExecReturningID(`INSERT INTO trivia_items (payload) VALUES (?)`, string(payload))
	if err != nil {
		return 0, fmt.Errorf("failed to write trivia item: %w", err)
	}
	return id, nil
}
