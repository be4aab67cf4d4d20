package service

import (
	"math/rand"

	"kannadabaruthe/internal/models"
)

// LessonSize is the number of phrases selected for one lesson session
const LessonSize = 5

// SelectLessonPhrases builds the bounded ordered working set for one lesson.
// Unlearned phrases are taken first in module order, then any remaining slots
// are filled from the learner's already-learned phrases. The rng drives the
// learned-phrase shuffle so callers can make selection reproducible.
func SelectLessonPhrases(modulePhrases []models.Phrase, learnedIDs map[int]bool, targetSize int, rng *rand.Rand) []models.Phrase {
	var unlearned, learned []models.Phrase
	for _, p := range modulePhrases {
		if learnedIDs[p.ID] {
			learned = append(learned, p)
		} else {
			unlearned = append(unlearned, p)
		}
	}

	lesson := make([]models.Phrase, 0, targetSize)
	if len(unlearned) > targetSize {
		lesson = append(lesson, unlearned[:targetSize]...)
	} else {
		lesson = append(lesson, unlearned...)
	}

	// Priority fill: reserved for per-card tracking weighting. The subset is
	// currently always empty, but the step stays as the documented extension
	// point for weighting learned phrases by review history.
	priority := priorityPhrases(learned)
	if remaining := targetSize - len(lesson); remaining > 0 {
		if len(priority) > remaining {
			lesson = append(lesson, priority[:remaining]...)
		} else {
			lesson = append(lesson, priority...)
		}
	}

	if remaining := targetSize - len(lesson); remaining > 0 {
		usedInPriority := make(map[int]bool, len(priority))
		for _, p := range priority {
			usedInPriority[p.ID] = true
		}
		available := make([]models.Phrase, 0, len(learned))
		for _, p := range learned {
			if !usedInPriority[p.ID] {
				available = append(available, p)
			}
		}
		rng.Shuffle(len(available), func(i, j int) {
			available[i], available[j] = available[j], available[i]
		})
		if len(available) > remaining {
			available = available[:remaining]
		}
		lesson = append(lesson, available...)
	}

	// Overlapping fills can repeat a phrase; keep the first occurrence only.
	seen := make(map[int]bool, len(lesson))
	deduped := lesson[:0]
	for _, p := range lesson {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		deduped = append(deduped, p)
	}
	return deduped
}

// priorityPhrases returns the subset of learned phrases that should jump the
// random fill queue. Per-card tracking is not populated yet, so the subset is
// empty; future spaced-repetition weighting plugs in here.
func priorityPhrases(learned []models.Phrase) []models.Phrase {
	return nil
}
