package services

import (
	"testing"
)

func TestNotebookWordsAndStats(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustRegister(t, "learner@example.com")

	apple := env.mustCreateVocab(t, "apple")
	banana := env.mustCreateVocab(t, "banana")
	cherry := env.mustCreateVocab(t, "cherry")

	if _, err := env.progress.RecordVocabReview(t.Context(), user.ID, apple.ID, true); err != nil {
		t.Fatalf("review apple: %v", err)
	}
	if _, err := env.progress.RecordVocabReview(t.Context(), user.ID, banana.ID, true); err != nil {
		t.Fatalf("review banana: %v", err)
	}
	if _, err := env.progress.RecordVocabReview(t.Context(), user.ID, cherry.ID, false); err != nil {
		t.Fatalf("review cherry: %v", err)
	}
	if _, err := env.progress.RecordVocabReview(t.Context(), user.ID, cherry.ID, false); err != nil {
		t.Fatalf("review cherry again: %v", err)
	}

	words, err := env.notebook.Words(t.Context(), user.ID, 0)
	if err != nil {
		t.Fatalf("notebook words: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("got %d notebook words, want 2 memorized", len(words))
	}
	for _, w := range words {
		if w.IsMemorized == nil || !*w.IsMemorized {
			t.Fatalf("notebook word %s not memorized", w.Word)
		}
	}

	stats, err := env.notebook.Stats(t.Context(), user.ID)
	if err != nil {
		t.Fatalf("notebook stats: %v", err)
	}
	if stats.WordsStarted != 3 {
		t.Fatalf("started = %d, want 3", stats.WordsStarted)
	}
	if stats.WordsMemorized != 2 {
		t.Fatalf("memorized = %d, want 2", stats.WordsMemorized)
	}
	if stats.TotalReviews != 4 {
		t.Fatalf("total reviews = %d, want 4", stats.TotalReviews)
	}
}
