package service

import (
	"encoding/json"
	"strings"

	"kannadabaruthe/internal/models"
)

// ModuleSyncPlan is the write plan produced by reconciling an imported
// payload against the modules already in the content store
type ModuleSyncPlan struct {
	ToUpsert []models.Module
	ToDelete []string
}

// ComputeModuleSync validates the raw modules payload of an import file and
// computes which modules must be upserted and which deleted. The plan is
// complete before any write happens; any validation failure aborts the whole
// import with a FormatError naming the offending entry.
func ComputeModuleSync(existingIDs []string, importedModules interface{}) (*ModuleSyncPlan, error) {
	entries, ok := importedModules.([]interface{})
	if !ok {
		return nil, formatErrorf(`invalid JSON format: "modules" must be an array`)
	}

	seen := make(map[string]bool, len(entries))
	toUpsert := make([]models.Module, 0, len(entries))

	for index, entry := range entries {
		obj, ok := entry.(map[string]interface{})
		if !ok {
			return nil, formatErrorf("invalid module entry at index %d: expected an object", index)
		}

		rawID, ok := obj["id"].(string)
		if !ok || strings.TrimSpace(rawID) == "" {
			return nil, formatErrorf(`invalid module entry at index %d: missing a valid "id"`, index)
		}

		trimmedID := strings.TrimSpace(rawID)
		if seen[trimmedID] {
			return nil, formatErrorf("duplicate module id detected in import: %s", trimmedID)
		}
		seen[trimmedID] = true

		sanitized := make(map[string]interface{}, len(obj))
		for k, v := range obj {
			sanitized[k] = v
		}
		sanitized["id"] = trimmedID
		if _, isArray := sanitized["phrases"].([]interface{}); !isArray {
			// Invalid phrase data does not fail the import; the module just
			// comes in empty.
			sanitized["phrases"] = []interface{}{}
		}

		raw, err := json.Marshal(sanitized)
		if err != nil {
			return nil, formatErrorf("invalid module entry at index %d: %v", index, err)
		}
		var module models.Module
		if err := json.Unmarshal(raw, &module); err != nil {
			return nil, formatErrorf("invalid module entry at index %d: %v", index, err)
		}
		if module.Phrases == nil {
			module.Phrases = []models.Phrase{}
		}
		toUpsert = append(toUpsert, module)
	}

	toDelete := []string{}
	deleteSeen := make(map[string]bool, len(existingIDs))
	for _, id := range existingIDs {
		trimmed := strings.TrimSpace(id)
		if trimmed == "" || deleteSeen[trimmed] {
			continue
		}
		deleteSeen[trimmed] = true
		if !seen[trimmed] {
			toDelete = append(toDelete, trimmed)
		}
	}

	return &ModuleSyncPlan{ToUpsert: toUpsert, ToDelete: toDelete}, nil
}

// NormalizeUserDataRecords turns the userData payload of an import file into
// the list of records to write. A missing payload means nothing to import; a
// single object is treated as a one-record list.
func NormalizeUserDataRecords(raw interface{}) ([]models.Record, error) {
	if raw == nil {
		return []models.Record{}, nil
	}

	entries, ok := raw.([]interface{})
	if !ok {
		entries = []interface{}{raw}
	}

	records := make([]models.Record, 0, len(entries))
	for index, entry := range entries {
		obj, ok := entry.(map[string]interface{})
		if !ok {
			return nil, formatErrorf("invalid userData entry at index %d: expected an object", index)
		}

		key, ok := obj["key"].(string)
		if !ok || strings.TrimSpace(key) == "" {
			return nil, formatErrorf(`invalid userData entry at index %d: missing a valid "key"`, index)
		}

		record := make(models.Record, len(obj))
		for k, v := range obj {
			record[k] = v
		}
		record["key"] = strings.TrimSpace(key)
		records = append(records, record)
	}

	return records, nil
}
