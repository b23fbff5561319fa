package services

import (
	"testing"

	"github.com/google/uuid"
)

func TestRecordVocabReviewCountsEveryCall(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustRegister(t, "learner@example.com")
	vocab := env.mustCreateVocab(t, "apple")

	const reviews = 5
	for i := 0; i < reviews; i++ {
		if _, err := env.progress.RecordVocabReview(t.Context(), user.ID, vocab.ID, false); err != nil {
			t.Fatalf("review %d: %v", i+1, err)
		}
	}

	row, err := env.vocabProgressRepo.Get(t.Context(), nil, user.ID, vocab.ID)
	if err != nil {
		t.Fatalf("get progress: %v", err)
	}
	if row == nil {
		t.Fatal("expected progress row")
	}
	if row.ReviewCount != reviews {
		t.Fatalf("review_count = %d, want %d", row.ReviewCount, reviews)
	}
	if row.IsMemorized {
		t.Fatal("expected not memorized")
	}
	if row.LastReviewedAt == nil {
		t.Fatal("expected last_reviewed_at to be set")
	}
}

func TestRecordVocabReviewSetsMemorized(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustRegister(t, "learner@example.com")
	vocab := env.mustCreateVocab(t, "banana")

	row, err := env.progress.RecordVocabReview(t.Context(), user.ID, vocab.ID, true)
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if !row.IsMemorized {
		t.Fatal("expected memorized")
	}
	if row.ReviewCount != 1 {
		t.Fatalf("review_count = %d, want 1", row.ReviewCount)
	}

	// Marking it unmemorized again keeps the counter growing.
	row, err = env.progress.RecordVocabReview(t.Context(), user.ID, vocab.ID, false)
	if err != nil {
		t.Fatalf("second review: %v", err)
	}
	if row.IsMemorized {
		t.Fatal("expected memorized flag overwritten")
	}
	if row.ReviewCount != 2 {
		t.Fatalf("review_count = %d, want 2", row.ReviewCount)
	}
}

func TestRecordVocabReviewUnknownWord(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustRegister(t, "learner@example.com")

	if _, err := env.progress.RecordVocabReview(t.Context(), user.ID, uuid.New(), false); err == nil {
		t.Fatal("expected error for unknown vocabulary")
	}
}

func TestLessonCompletionPercentage(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustRegister(t, "learner@example.com")
	lesson := env.mustCreateLesson(t, "Fruit")

	words := []string{"w0", "w1", "w2", "w3", "w4", "w5", "w6", "w7", "w8", "w9"}
	var vocabIDs []uuid.UUID
	for i, w := range words {
		vocab := env.mustCreateVocab(t, w)
		vocabIDs = append(vocabIDs, vocab.ID)
		if _, err := env.lesson.AttachVocabulary(t.Context(), AttachVocabularyInput{
			LessonID:     lesson.ID,
			VocabularyID: vocab.ID,
			DisplayOrder: i,
		}); err != nil {
			t.Fatalf("attach %s: %v", w, err)
		}
	}

	pct, err := env.progress.LessonCompletionPercentage(t.Context(), user.ID, lesson.ID)
	if err != nil {
		t.Fatalf("percentage: %v", err)
	}
	if pct != 0 {
		t.Fatalf("fresh lesson pct = %v, want 0", pct)
	}

	for _, id := range vocabIDs[:3] {
		if _, err := env.progress.RecordVocabReview(t.Context(), user.ID, id, true); err != nil {
			t.Fatalf("memorize: %v", err)
		}
	}
	pct, err = env.progress.LessonCompletionPercentage(t.Context(), user.ID, lesson.ID)
	if err != nil {
		t.Fatalf("percentage: %v", err)
	}
	if pct != 30.0 {
		t.Fatalf("pct = %v, want 30.0", pct)
	}

	for _, id := range vocabIDs[3:] {
		if _, err := env.progress.RecordVocabReview(t.Context(), user.ID, id, true); err != nil {
			t.Fatalf("memorize: %v", err)
		}
	}
	pct, err = env.progress.LessonCompletionPercentage(t.Context(), user.ID, lesson.ID)
	if err != nil {
		t.Fatalf("percentage: %v", err)
	}
	if pct != 100.0 {
		t.Fatalf("pct = %v, want 100.0", pct)
	}
}

func TestLessonCompletionPercentageEmptyLesson(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustRegister(t, "learner@example.com")
	lesson := env.mustCreateLesson(t, "Empty")

	pct, err := env.progress.LessonCompletionPercentage(t.Context(), user.ID, lesson.ID)
	if err != nil {
		t.Fatalf("percentage: %v", err)
	}
	if pct != 0 {
		t.Fatalf("pct = %v, want 0 for empty lesson", pct)
	}
}

func TestCompletionPercentClamping(t *testing.T) {
	tests := []struct {
		name      string
		completed int64
		total     int64
		want      float64
	}{
		{"zero total", 3, 0, 0},
		{"zero completed", 0, 10, 0},
		{"third", 1, 3, 33.3},
		{"full", 10, 10, 100},
		{"over full clamps", 12, 10, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := completionPercent(tt.completed, tt.total); got != tt.want {
				t.Fatalf("completionPercent(%d, %d) = %v, want %v", tt.completed, tt.total, got, tt.want)
			}
		})
	}
}

func TestUpdateTopicProgressIdempotent(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustRegister(t, "learner@example.com")
	topic := env.mustCreateTopic(t, "Basics")

	lessonA := env.mustCreateLesson(t, "A")
	lessonB := env.mustCreateLesson(t, "B")
	for i, l := range []uuid.UUID{lessonA.ID, lessonB.ID} {
		if _, err := env.topic.AttachLesson(t.Context(), topic.ID, l, i); err != nil {
			t.Fatalf("attach lesson: %v", err)
		}
	}

	if err := env.progress.CompleteLesson(t.Context(), user.ID, lessonA.ID); err != nil {
		t.Fatalf("complete lesson: %v", err)
	}

	for i := 0; i < 3; i++ {
		row, err := env.progress.UpdateTopicProgress(t.Context(), user.ID, topic.ID)
		if err != nil {
			t.Fatalf("update topic progress: %v", err)
		}
		if row.CompletedLessons != 1 || row.TotalLessons != 2 {
			t.Fatalf("counts = %d/%d, want 1/2", row.CompletedLessons, row.TotalLessons)
		}
		if row.CompletedPercentage != 50.0 {
			t.Fatalf("pct = %v, want 50.0", row.CompletedPercentage)
		}
	}

	// Still one snapshot row per (user, topic).
	var count int64
	if err := env.db.Table("topic_progress").Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 1 {
		t.Fatalf("topic_progress rows = %d, want 1", count)
	}
}

func TestCompleteLessonIdempotent(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustRegister(t, "learner@example.com")
	lesson := env.mustCreateLesson(t, "A")

	for i := 0; i < 2; i++ {
		if err := env.progress.CompleteLesson(t.Context(), user.ID, lesson.ID); err != nil {
			t.Fatalf("complete lesson: %v", err)
		}
	}

	count, err := env.lessonProgressRepo.CountCompletedByUser(t.Context(), nil, user.ID)
	if err != nil {
		t.Fatalf("count completed: %v", err)
	}
	if count != 1 {
		t.Fatalf("completed lessons = %d, want 1", count)
	}
}

func TestWordsToReviewLimitAndFilter(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustRegister(t, "learner@example.com")

	for _, w := range []string{"a", "b", "c"} {
		vocab := env.mustCreateVocab(t, w)
		memorized := w == "c"
		if _, err := env.progress.RecordVocabReview(t.Context(), user.ID, vocab.ID, memorized); err != nil {
			t.Fatalf("review %s: %v", w, err)
		}
	}

	words, err := env.progress.WordsToReview(t.Context(), user.ID, 0)
	if err != nil {
		t.Fatalf("words to review: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("got %d words, want 2 unmemorized", len(words))
	}
	for _, w := range words {
		if w.IsMemorized == nil || *w.IsMemorized {
			t.Fatalf("word %s should be unmemorized", w.Word)
		}
	}

	words, err = env.progress.WordsToReview(t.Context(), user.ID, 1)
	if err != nil {
		t.Fatalf("words to review: %v", err)
	}
	if len(words) != 1 {
		t.Fatalf("got %d words, want limit 1", len(words))
	}
}

func TestResetUserProgress(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustRegister(t, "learner@example.com")
	other := env.mustRegister(t, "other@example.com")

	vocab := env.mustCreateVocab(t, "apple")
	lesson := env.mustCreateLesson(t, "A")
	topic := env.mustCreateTopic(t, "Basics")
	if _, err := env.topic.AttachLesson(t.Context(), topic.ID, lesson.ID, 0); err != nil {
		t.Fatalf("attach lesson: %v", err)
	}

	for _, u := range []uuid.UUID{user.ID, other.ID} {
		if _, err := env.progress.RecordVocabReview(t.Context(), u, vocab.ID, true); err != nil {
			t.Fatalf("review: %v", err)
		}
		if err := env.progress.CompleteLesson(t.Context(), u, lesson.ID); err != nil {
			t.Fatalf("complete: %v", err)
		}
		if _, err := env.progress.UpdateTopicProgress(t.Context(), u, topic.ID); err != nil {
			t.Fatalf("topic progress: %v", err)
		}
	}

	if err := env.progress.ResetUserProgress(t.Context(), user.ID); err != nil {
		t.Fatalf("reset: %v", err)
	}

	overall, err := env.progress.OverallProgress(t.Context(), user.ID)
	if err != nil {
		t.Fatalf("overall: %v", err)
	}
	if overall.WordsStarted != 0 || overall.LessonsCompleted != 0 {
		t.Fatalf("progress not wiped: %+v", overall)
	}

	// The other learner keeps theirs.
	otherOverall, err := env.progress.OverallProgress(t.Context(), other.ID)
	if err != nil {
		t.Fatalf("overall other: %v", err)
	}
	if otherOverall.WordsStarted != 1 || otherOverall.LessonsCompleted != 1 {
		t.Fatalf("other learner's progress touched: %+v", otherOverall)
	}
}

func TestOverallProgressTotals(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustRegister(t, "learner@example.com")

	apple := env.mustCreateVocab(t, "apple")
	env.mustCreateVocab(t, "banana")
	lesson := env.mustCreateLesson(t, "A")
	env.mustCreateTopic(t, "Basics")

	if _, err := env.progress.RecordVocabReview(t.Context(), user.ID, apple.ID, true); err != nil {
		t.Fatalf("review: %v", err)
	}
	if err := env.progress.CompleteLesson(t.Context(), user.ID, lesson.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	overall, err := env.progress.OverallProgress(t.Context(), user.ID)
	if err != nil {
		t.Fatalf("overall: %v", err)
	}
	if overall.WordsStarted != 1 || overall.WordsMemorized != 1 {
		t.Fatalf("words = %d/%d, want 1/1", overall.WordsStarted, overall.WordsMemorized)
	}
	if overall.TotalWords != 2 {
		t.Fatalf("total words = %d, want 2", overall.TotalWords)
	}
	if overall.LessonsCompleted != 1 || overall.TotalLessons != 1 {
		t.Fatalf("lessons = %d/%d, want 1/1", overall.LessonsCompleted, overall.TotalLessons)
	}
	if len(overall.Topics) != 1 {
		t.Fatalf("topics = %d, want 1", len(overall.Topics))
	}
}
