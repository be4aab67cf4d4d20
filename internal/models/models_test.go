package models

import "testing"

func TestProfileHelpers(t *testing.T) {
	t.Run("default profile", func(t *testing.T) {
		profile := DefaultProfile()
		if profile.Key != ProfileKey {
			t.Errorf("Key = %q, want %q", profile.Key, ProfileKey)
		}
		if profile.Name != "Cara" {
			t.Errorf("Name = %q, want %q", profile.Name, "Cara")
		}
		if profile.WordsLearned == nil || len(profile.WordsLearned) != 0 {
			t.Errorf("WordsLearned = %v, want an empty list", profile.WordsLearned)
		}
	})

	t.Run("HasLearned and LearnedSet agree", func(t *testing.T) {
		profile := &Profile{WordsLearned: []int{3, 7, 11}}
		set := profile.LearnedSet()
		for _, id := range []int{1, 3, 7, 11, 12} {
			if profile.HasLearned(id) != set[id] {
				t.Errorf("HasLearned(%d) = %v disagrees with LearnedSet", id, profile.HasLearned(id))
			}
		}
	})

	t.Run("accuracy percent", func(t *testing.T) {
		tests := []struct {
			name    string
			correct int
			total   int
			want    int
		}{
			{"nothing answered", 0, 0, 0},
			{"all correct", 5, 5, 100},
			{"two thirds rounds up", 2, 3, 67},
			{"one third rounds down", 1, 3, 33},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				profile := &Profile{Accuracy: Accuracy{Correct: tt.correct, Total: tt.total}}
				if got := profile.AccuracyPercent(); got != tt.want {
					t.Errorf("AccuracyPercent() = %d, want %d", got, tt.want)
				}
			})
		}
	})
}

func TestModuleHelpers(t *testing.T) {
	module := &Module{
		ID: "greetings",
		Phrases: []Phrase{
			{ID: 1, En: "Hello"},
			{ID: 5, En: "Bye"},
			{ID: 3, En: "Thanks"},
		},
	}

	t.Run("PhraseByID", func(t *testing.T) {
		phrase, ok := module.PhraseByID(5)
		if !ok || phrase.En != "Bye" {
			t.Errorf("PhraseByID(5) = %v, %v; want Bye", phrase, ok)
		}
		if _, ok := module.PhraseByID(99); ok {
			t.Error("PhraseByID(99) should report not found")
		}
	})

	t.Run("NextPhraseID", func(t *testing.T) {
		if got := module.NextPhraseID(); got != 6 {
			t.Errorf("NextPhraseID() = %d, want 6", got)
		}
		empty := &Module{}
		if got := empty.NextPhraseID(); got != 1 {
			t.Errorf("NextPhraseID() on empty module = %d, want 1", got)
		}
	})
}

func TestRecordKey(t *testing.T) {
	tests := []struct {
		name   string
		record Record
		want   string
	}{
		{"string key", Record{"key": "profile"}, "profile"},
		{"missing key", Record{"name": "Cara"}, ""},
		{"non-string key", Record{"key": 42}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.Key(); got != tt.want {
				t.Errorf("Key() = %q, want %q", got, tt.want)
			}
		})
	}
}
