package service

import (
	"math/rand"
	"testing"

	"kannadabaruthe/internal/models"
)

func makePhrases(ids ...int) []models.Phrase {
	phrases := make([]models.Phrase, 0, len(ids))
	for _, id := range ids {
		phrases = append(phrases, models.Phrase{ID: id, En: "en", Kn: "kn"})
	}
	return phrases
}

func phraseIDs(phrases []models.Phrase) []int {
	ids := make([]int, 0, len(phrases))
	for _, p := range phrases {
		ids = append(ids, p.ID)
	}
	return ids
}

func learnedSet(ids ...int) map[int]bool {
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func TestSelectLessonPhrases(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	t.Run("all unlearned takes first five in module order", func(t *testing.T) {
		phrases := makePhrases(1, 2, 3, 4, 5, 6, 7)
		lesson := SelectLessonPhrases(phrases, learnedSet(), LessonSize, rng)

		want := []int{1, 2, 3, 4, 5}
		got := phraseIDs(lesson)
		if len(got) != len(want) {
			t.Fatalf("lesson size = %d, want %d", len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("lesson[%d] = %d, want %d", i, got[i], want[i])
			}
		}
	})

	t.Run("small module returns everything", func(t *testing.T) {
		phrases := makePhrases(1, 2, 3)
		lesson := SelectLessonPhrases(phrases, learnedSet(), LessonSize, rng)
		if len(lesson) != 3 {
			t.Errorf("lesson size = %d, want 3", len(lesson))
		}
	})

	t.Run("empty module returns empty lesson", func(t *testing.T) {
		lesson := SelectLessonPhrases(nil, learnedSet(), LessonSize, rng)
		if len(lesson) != 0 {
			t.Errorf("lesson size = %d, want 0", len(lesson))
		}
	})

	t.Run("unlearned come before learned fill", func(t *testing.T) {
		phrases := makePhrases(1, 2, 3, 4, 5, 6)
		lesson := SelectLessonPhrases(phrases, learnedSet(1, 2, 3, 4), LessonSize, rng)

		got := phraseIDs(lesson)
		if len(got) != 5 {
			t.Fatalf("lesson size = %d, want 5", len(got))
		}
		// The two unlearned phrases lead, in module order
		if got[0] != 5 || got[1] != 6 {
			t.Errorf("lesson starts with %v, want [5 6 ...]", got[:2])
		}
		// The rest are drawn from the learned set
		for _, id := range got[2:] {
			if id != 1 && id != 2 && id != 3 && id != 4 {
				t.Errorf("fill phrase %d is not from the learned set", id)
			}
		}
	})

	t.Run("no duplicate ids", func(t *testing.T) {
		phrases := makePhrases(1, 2, 3, 4, 5, 6, 7, 8)
		for seed := int64(0); seed < 20; seed++ {
			lesson := SelectLessonPhrases(phrases, learnedSet(1, 2, 3, 4, 5, 6), LessonSize, rand.New(rand.NewSource(seed)))
			seen := map[int]bool{}
			for _, p := range lesson {
				if seen[p.ID] {
					t.Fatalf("seed %d: duplicate phrase id %d", seed, p.ID)
				}
				seen[p.ID] = true
			}
		}
	})

	t.Run("same seed gives same lesson", func(t *testing.T) {
		phrases := makePhrases(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
		learned := learnedSet(1, 2, 3, 4, 5, 6, 7, 8)

		a := SelectLessonPhrases(phrases, learned, LessonSize, rand.New(rand.NewSource(42)))
		b := SelectLessonPhrases(phrases, learned, LessonSize, rand.New(rand.NewSource(42)))

		gotA, gotB := phraseIDs(a), phraseIDs(b)
		if len(gotA) != len(gotB) {
			t.Fatalf("lesson sizes differ: %d vs %d", len(gotA), len(gotB))
		}
		for i := range gotA {
			if gotA[i] != gotB[i] {
				t.Errorf("lesson[%d] differs: %d vs %d", i, gotA[i], gotB[i])
			}
		}
	})
}
