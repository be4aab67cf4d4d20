package service

import (
	"encoding/json"
	"strings"
	"testing"
)

// asJSON round-trips a literal through encoding/json so the test input has
// the same dynamic types an uploaded backup file would
func asJSON(t *testing.T, literal string) interface{} {
	t.Helper()
	var v interface{}
	if err := json.Unmarshal([]byte(literal), &v); err != nil {
		t.Fatalf("bad test literal: %v", err)
	}
	return v
}

func TestComputeModuleSync(t *testing.T) {
	t.Run("reconciles upserts and deletes", func(t *testing.T) {
		existing := []string{"basics", "travel", "food"}
		imported := asJSON(t, `[
			{"id": "basics", "title": "Basics", "phrases": [{"id": 1, "en": "Hi", "kn": "Namaskara"}]},
			{"id": "culture", "title": "Culture", "phrases": []}
		]`)

		plan, err := ComputeModuleSync(existing, imported)
		if err != nil {
			t.Fatalf("ComputeModuleSync() error = %v", err)
		}

		if len(plan.ToUpsert) != 2 {
			t.Fatalf("ToUpsert has %d modules, want 2", len(plan.ToUpsert))
		}
		if plan.ToUpsert[0].ID != "basics" || plan.ToUpsert[1].ID != "culture" {
			t.Errorf("ToUpsert ids = [%s %s], want [basics culture]", plan.ToUpsert[0].ID, plan.ToUpsert[1].ID)
		}
		if len(plan.ToUpsert[0].Phrases) != 1 {
			t.Errorf("basics has %d phrases, want 1", len(plan.ToUpsert[0].Phrases))
		}

		if len(plan.ToDelete) != 2 || plan.ToDelete[0] != "travel" || plan.ToDelete[1] != "food" {
			t.Errorf("ToDelete = %v, want [travel food]", plan.ToDelete)
		}
	})

	t.Run("trims module ids", func(t *testing.T) {
		imported := asJSON(t, `[{"id": "  greetings  ", "title": "Greetings"}]`)

		plan, err := ComputeModuleSync(nil, imported)
		if err != nil {
			t.Fatalf("ComputeModuleSync() error = %v", err)
		}
		if plan.ToUpsert[0].ID != "greetings" {
			t.Errorf("id = %q, want %q", plan.ToUpsert[0].ID, "greetings")
		}
	})

	t.Run("rejects a non-array modules payload", func(t *testing.T) {
		_, err := ComputeModuleSync(nil, "not-an-array")
		if err == nil {
			t.Fatal("expected an error for a non-array payload")
		}
		if !IsFormatError(err) {
			t.Errorf("error type = %T, want FormatError", err)
		}
		if want := `"modules" must be an array`; !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should contain %q", err.Error(), want)
		}
	})

	t.Run("rejects duplicate ids", func(t *testing.T) {
		imported := asJSON(t, `[{"id": "basics"}, {"id": " basics "}]`)

		_, err := ComputeModuleSync(nil, imported)
		if err == nil {
			t.Fatal("expected an error for duplicate ids")
		}
		if want := "duplicate module id detected in import: basics"; err.Error() != want {
			t.Errorf("error = %q, want %q", err.Error(), want)
		}
	})

	t.Run("rejects a non-object entry with its index", func(t *testing.T) {
		imported := asJSON(t, `[{"id": "basics"}, 42]`)

		_, err := ComputeModuleSync(nil, imported)
		if err == nil {
			t.Fatal("expected an error for a non-object entry")
		}
		if !strings.Contains(err.Error(), "index 1") {
			t.Errorf("error %q should name index 1", err.Error())
		}
	})

	t.Run("rejects a blank id with its index", func(t *testing.T) {
		imported := asJSON(t, `[{"id": "   "}]`)

		_, err := ComputeModuleSync(nil, imported)
		if err == nil {
			t.Fatal("expected an error for a blank id")
		}
		if !strings.Contains(err.Error(), `index 0`) || !strings.Contains(err.Error(), `"id"`) {
			t.Errorf("error %q should name index 0 and the id field", err.Error())
		}
	})

	t.Run("coerces invalid phrases to an empty list", func(t *testing.T) {
		imported := asJSON(t, `[{"id": "basics", "phrases": "oops"}]`)

		plan, err := ComputeModuleSync(nil, imported)
		if err != nil {
			t.Fatalf("ComputeModuleSync() error = %v", err)
		}
		if plan.ToUpsert[0].Phrases == nil || len(plan.ToUpsert[0].Phrases) != 0 {
			t.Errorf("phrases = %v, want an empty list", plan.ToUpsert[0].Phrases)
		}
	})

	t.Run("empty import deletes everything", func(t *testing.T) {
		plan, err := ComputeModuleSync([]string{"basics", "travel"}, asJSON(t, `[]`))
		if err != nil {
			t.Fatalf("ComputeModuleSync() error = %v", err)
		}
		if len(plan.ToUpsert) != 0 {
			t.Errorf("ToUpsert = %v, want empty", plan.ToUpsert)
		}
		if len(plan.ToDelete) != 2 {
			t.Errorf("ToDelete = %v, want both existing ids", plan.ToDelete)
		}
	})
}

func TestNormalizeUserDataRecords(t *testing.T) {
	t.Run("missing payload yields no records", func(t *testing.T) {
		records, err := NormalizeUserDataRecords(nil)
		if err != nil {
			t.Fatalf("NormalizeUserDataRecords() error = %v", err)
		}
		if len(records) != 0 {
			t.Errorf("records = %v, want empty", records)
		}
	})

	t.Run("single object becomes a one-record list", func(t *testing.T) {
		records, err := NormalizeUserDataRecords(asJSON(t, `{"key": "profile", "name": "Cara"}`))
		if err != nil {
			t.Fatalf("NormalizeUserDataRecords() error = %v", err)
		}
		if len(records) != 1 || records[0].Key() != "profile" {
			t.Errorf("records = %v, want one record keyed profile", records)
		}
	})

	t.Run("keys are trimmed", func(t *testing.T) {
		records, err := NormalizeUserDataRecords(asJSON(t, `[{"key": "  profile  "}]`))
		if err != nil {
			t.Fatalf("NormalizeUserDataRecords() error = %v", err)
		}
		if records[0].Key() != "profile" {
			t.Errorf("key = %q, want %q", records[0].Key(), "profile")
		}
	})

	t.Run("missing key is rejected with its index", func(t *testing.T) {
		_, err := NormalizeUserDataRecords(asJSON(t, `[{"key": "profile"}, {"name": "Cara"}]`))
		if err == nil {
			t.Fatal("expected an error for a keyless record")
		}
		if !IsFormatError(err) {
			t.Errorf("error type = %T, want FormatError", err)
		}
		if want := `invalid userData entry at index 1: missing a valid "key"`; err.Error() != want {
			t.Errorf("error = %q, want %q", err.Error(), want)
		}
	})

	t.Run("non-object entry is rejected", func(t *testing.T) {
		_, err := NormalizeUserDataRecords(asJSON(t, `["profile"]`))
		if err == nil {
			t.Fatal("expected an error for a non-object entry")
		}
		if !strings.Contains(err.Error(), "index 0") {
			t.Errorf("error %q should name index 0", err.Error())
		}
	})
}
