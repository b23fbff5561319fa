package services

import (
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/wordnest/wordnest-backend/internal/platform/apierr"
)

func TestVocabularyAnnotationForCaller(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustRegister(t, "learner@example.com")
	vocab := env.mustCreateVocab(t, "apple")

	if _, err := env.progress.RecordVocabReview(t.Context(), user.ID, vocab.ID, true); err != nil {
		t.Fatalf("review: %v", err)
	}

	// Anonymous: base record only.
	anon, err := env.vocab.Get(t.Context(), vocab.ID, uuid.Nil)
	if err != nil {
		t.Fatalf("anonymous get: %v", err)
	}
	if anon.IsMemorized != nil || anon.ReviewCount != nil {
		t.Fatal("anonymous caller got progress annotations")
	}

	// Authenticated: annotated.
	authed, err := env.vocab.Get(t.Context(), vocab.ID, user.ID)
	if err != nil {
		t.Fatalf("authed get: %v", err)
	}
	if authed.IsMemorized == nil || !*authed.IsMemorized {
		t.Fatal("expected memorized annotation")
	}
	if authed.ReviewCount == nil || *authed.ReviewCount != 1 {
		t.Fatal("expected review_count annotation of 1")
	}
}

func TestVocabularySearch(t *testing.T) {
	env := newTestEnv(t)
	env.mustCreateVocab(t, "apple")
	env.mustCreateVocab(t, "pineapple")
	env.mustCreateVocab(t, "banana")

	results, err := env.vocab.Search(t.Context(), "APPLE", 0, uuid.Nil)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	if _, err := env.vocab.Search(t.Context(), "   ", 0, uuid.Nil); err == nil {
		t.Fatal("blank keyword accepted")
	}
}

func TestVocabularyListAnnotatesOnlyReviewedWords(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustRegister(t, "learner@example.com")
	apple := env.mustCreateVocab(t, "apple")
	env.mustCreateVocab(t, "banana")

	if _, err := env.progress.RecordVocabReview(t.Context(), user.ID, apple.ID, false); err != nil {
		t.Fatalf("review: %v", err)
	}

	items, err := env.vocab.List(t.Context(), 10, 0, user.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	for _, item := range items {
		if item.ReviewCount == nil {
			t.Fatalf("item %s missing annotation", item.Word)
		}
		want := 0
		if item.ID == apple.ID {
			want = 1
		}
		if *item.ReviewCount != want {
			t.Fatalf("item %s review_count = %d, want %d", item.Word, *item.ReviewCount, want)
		}
	}
}

func TestVocabularyCreateDuplicateWord(t *testing.T) {
	env := newTestEnv(t)
	env.mustCreateVocab(t, "apple")

	_, err := env.vocab.Create(t.Context(), CreateVocabularyInput{Word: "  Apple ", Meaning: "x"})
	if err == nil {
		t.Fatal("expected conflict for duplicate word")
	}
	if apierr.StatusOf(err) != http.StatusConflict {
		t.Fatalf("status = %d, want 409", apierr.StatusOf(err))
	}
}

func TestVocabularyRandomRespectsLimit(t *testing.T) {
	env := newTestEnv(t)
	for _, w := range []string{"a", "b", "c", "d"} {
		env.mustCreateVocab(t, w)
	}

	items, err := env.vocab.Random(t.Context(), 2, uuid.Nil)
	if err != nil {
		t.Fatalf("random: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
}
