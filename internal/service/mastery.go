package service

import "kannadabaruthe/internal/models"

// GameUnlockThreshold is the learned-word count that unlocks the review games
const GameUnlockThreshold = 20

// TriviaMinimumItems is the smallest trivia pool the trivia game will run on
const TriviaMinimumItems = 3

// RecordAnswer applies one answer outcome to the profile and returns the
// updated copy. The total counter always increments; a correct answer also
// increments the correct counter and adds the phrase id to the learned set
// if it is not already there. An incorrect answer never removes a learned id:
// mastery only grows. Persisting the result is the caller's responsibility.
func RecordAnswer(profile *models.Profile, correct bool, phraseID int) *models.Profile {
	updated := *profile
	updated.WordsLearned = append([]int(nil), profile.WordsLearned...)
	updated.Accuracy.Total++
	if correct {
		updated.Accuracy.Correct++
		if !updated.HasLearned(phraseID) {
			updated.WordsLearned = append(updated.WordsLearned, phraseID)
		}
	}
	return &updated
}

// CanAccessGames reports whether the learner has unlocked the review games.
// Trivia is not gated by this predicate.
func CanAccessGames(profile *models.Profile) bool {
	return len(profile.WordsLearned) >= GameUnlockThreshold
}
