package service

import (
	"testing"

	"kannadabaruthe/internal/models"
)

func TestRecordAnswer(t *testing.T) {
	t.Run("correct answer learns the phrase", func(t *testing.T) {
		profile := models.DefaultProfile()
		updated := RecordAnswer(profile, true, 7)

		if updated.Accuracy.Total != 1 || updated.Accuracy.Correct != 1 {
			t.Errorf("accuracy = %d/%d, want 1/1", updated.Accuracy.Correct, updated.Accuracy.Total)
		}
		if !updated.HasLearned(7) {
			t.Error("phrase 7 should be learned after a correct answer")
		}
	})

	t.Run("incorrect answer only counts the attempt", func(t *testing.T) {
		profile := models.DefaultProfile()
		updated := RecordAnswer(profile, false, 7)

		if updated.Accuracy.Total != 1 || updated.Accuracy.Correct != 0 {
			t.Errorf("accuracy = %d/%d, want 0/1", updated.Accuracy.Correct, updated.Accuracy.Total)
		}
		if updated.HasLearned(7) {
			t.Error("phrase 7 should not be learned after an incorrect answer")
		}
	})

	t.Run("learning is idempotent", func(t *testing.T) {
		profile := models.DefaultProfile()
		updated := RecordAnswer(profile, true, 7)
		updated = RecordAnswer(updated, true, 7)

		if len(updated.WordsLearned) != 1 {
			t.Errorf("learned set = %v, want exactly one entry", updated.WordsLearned)
		}
		if updated.Accuracy.Total != 2 || updated.Accuracy.Correct != 2 {
			t.Errorf("accuracy = %d/%d, want 2/2", updated.Accuracy.Correct, updated.Accuracy.Total)
		}
	})

	t.Run("incorrect answer never unlearns", func(t *testing.T) {
		profile := models.DefaultProfile()
		updated := RecordAnswer(profile, true, 7)
		updated = RecordAnswer(updated, false, 7)

		if !updated.HasLearned(7) {
			t.Error("phrase 7 should stay learned after a later miss")
		}
	})

	t.Run("input profile is not mutated", func(t *testing.T) {
		profile := models.DefaultProfile()
		RecordAnswer(profile, true, 7)

		if profile.Accuracy.Total != 0 || len(profile.WordsLearned) != 0 {
			t.Errorf("input profile was mutated: %+v", profile)
		}
	})
}

func TestCanAccessGames(t *testing.T) {
	tests := []struct {
		name    string
		learned int
		want    bool
	}{
		{"empty profile", 0, false},
		{"one short of the threshold", GameUnlockThreshold - 1, false},
		{"exactly at the threshold", GameUnlockThreshold, true},
		{"past the threshold", GameUnlockThreshold + 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := models.DefaultProfile()
			for i := 0; i < tt.learned; i++ {
				profile.WordsLearned = append(profile.WordsLearned, i+1)
			}
			if got := CanAccessGames(profile); got != tt.want {
				t.Errorf("CanAccessGames() with %d learned = %v, want %v", tt.learned, got, tt.want)
			}
		})
	}
}
