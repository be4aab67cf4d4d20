package service

import (
	"testing"

	"kannadabaruthe/internal/models"
	"kannadabaruthe/internal/repository"
)

func TestSyncServiceImport(t *testing.T) {
	f := newServiceFixture(t)
	syncSvc := NewSyncService(f.db, f.progressRepo, f.contentRepo)

	f.seedModule(t, "basics", 2)
	f.seedModule(t, "travel", 2)

	t.Run("import reconciles the module set and userData", func(t *testing.T) {
		payload := []byte(`{
			"modules": [
				{"id": "basics", "title": "Basics", "phrases": [{"id": 1, "en": "Hi", "kn": "Namaskara"}]},
				{"id": "culture", "title": "Culture", "phrases": []}
			],
			"userData": [{"key": "profile", "name": "Maya", "wordsLearned": [1]}]
		}`)

		if err := syncSvc.ImportJSON(payload); err != nil {
			t.Fatalf("ImportJSON() error = %v", err)
		}

		ids, err := f.contentRepo.ModuleIDs()
		if err != nil {
			t.Fatalf("ModuleIDs() error = %v", err)
		}
		if len(ids) != 2 {
			t.Fatalf("module ids = %v, want [basics culture]", ids)
		}
		for _, id := range ids {
			if id != "basics" && id != "culture" {
				t.Errorf("unexpected module %q after import", id)
			}
		}

		profile, err := f.progressRepo.GetProfile()
		if err != nil {
			t.Fatalf("GetProfile() error = %v", err)
		}
		if profile == nil || profile.Name != "Maya" {
			t.Errorf("profile = %+v, want the imported one", profile)
		}
	})

	t.Run("invalid import leaves the database untouched", func(t *testing.T) {
		before, _ := f.contentRepo.ModuleIDs()

		err := syncSvc.ImportJSON([]byte(`{"modules": [{"id": "a"}, {"id": "a"}]}`))
		if !IsFormatError(err) {
			t.Fatalf("ImportJSON() error = %v, want FormatError", err)
		}

		after, _ := f.contentRepo.ModuleIDs()
		if len(after) != len(before) {
			t.Errorf("module ids changed on a failed import: %v -> %v", before, after)
		}
	})

	t.Run("malformed JSON is a format error", func(t *testing.T) {
		if err := syncSvc.ImportJSON([]byte(`{not json`)); !IsFormatError(err) {
			t.Errorf("ImportJSON() error = %v, want FormatError", err)
		}
	})
}

func TestSyncServiceExport(t *testing.T) {
	f := newServiceFixture(t)
	syncSvc := NewSyncService(f.db, f.progressRepo, f.contentRepo)

	t.Run("empty database exports empty lists", func(t *testing.T) {
		payload, err := syncSvc.Export()
		if err != nil {
			t.Fatalf("Export() error = %v", err)
		}
		if payload.Modules == nil || payload.UserData == nil {
			t.Error("export lists should be empty, not nil")
		}
	})

	t.Run("export carries modules and userData", func(t *testing.T) {
		f.seedModule(t, "basics", 2)
		if err := f.progressRepo.PutProfile(models.DefaultProfile()); err != nil {
			t.Fatalf("PutProfile() error = %v", err)
		}

		payload, err := syncSvc.Export()
		if err != nil {
			t.Fatalf("Export() error = %v", err)
		}
		if len(payload.Modules) != 1 || payload.Modules[0].ID != "basics" {
			t.Errorf("Modules = %v, want [basics]", payload.Modules)
		}
		if len(payload.UserData) != 1 || payload.UserData[0].Key() != "profile" {
			t.Errorf("UserData = %v, want the profile record", payload.UserData)
		}
	})
}

func TestResetAllProgress(t *testing.T) {
	f := newServiceFixture(t)
	syncSvc := NewSyncService(f.db, f.progressRepo, f.contentRepo)
	f.seedModule(t, "basics", 5)

	// Build up some progress
	profile, _ := f.lessonSvc.GetOrCreateProfile()
	profile = RecordAnswer(profile, true, 1)
	if err := f.progressRepo.PutProfile(profile); err != nil {
		t.Fatalf("PutProfile() error = %v", err)
	}
	if err := f.progressRepo.PutLogEntry(&models.ProgressLogEntry{Date: "2026-08-29", Answers: 1, Correct: 1}); err != nil {
		t.Fatalf("PutLogEntry() error = %v", err)
	}

	if err := syncSvc.ResetAllProgress(); err != nil {
		t.Fatalf("ResetAllProgress() error = %v", err)
	}

	fresh, err := f.progressRepo.GetProfile()
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if fresh == nil || len(fresh.WordsLearned) != 0 || fresh.Accuracy.Total != 0 {
		t.Errorf("profile = %+v, want the default after reset", fresh)
	}

	entries, err := f.progressRepo.GetAll(repository.StoreProgressLog)
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("progress log = %v, want empty after reset", entries)
	}

	// Content survives the reset
	module, err := f.contentRepo.GetModule("basics")
	if err != nil || module == nil {
		t.Errorf("GetModule(basics) = %v, %v; content should survive a reset", module, err)
	}
}
