package services

import (
	"testing"

	"github.com/google/uuid"
)

func strptr(s string) *string { return &s }

func TestLessonVocabularyOverridesAndOrder(t *testing.T) {
	env := newTestEnv(t)
	lesson := env.mustCreateLesson(t, "Fruit")
	apple := env.mustCreateVocab(t, "apple")
	banana := env.mustCreateVocab(t, "banana")

	if _, err := env.lesson.AttachVocabulary(t.Context(), AttachVocabularyInput{
		LessonID:        lesson.ID,
		VocabularyID:    banana.ID,
		DisplayOrder:    2,
		ExampleOverride: strptr("I peel a banana."),
	}); err != nil {
		t.Fatalf("attach banana: %v", err)
	}
	if _, err := env.lesson.AttachVocabulary(t.Context(), AttachVocabularyInput{
		LessonID:        lesson.ID,
		VocabularyID:    apple.ID,
		DisplayOrder:    1,
		MeaningOverride: strptr("a red fruit (in this lesson)"),
	}); err != nil {
		t.Fatalf("attach apple: %v", err)
	}

	items, err := env.lesson.LessonVocabulary(t.Context(), lesson.ID, uuid.Nil)
	if err != nil {
		t.Fatalf("lesson vocabulary: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].Word != "apple" || items[1].Word != "banana" {
		t.Fatalf("wrong order: %s, %s", items[0].Word, items[1].Word)
	}
	if items[0].Meaning != "a red fruit (in this lesson)" {
		t.Fatalf("meaning override not applied: %q", items[0].Meaning)
	}
	if items[1].Meaning != "meaning of banana" {
		t.Fatalf("banana meaning changed: %q", items[1].Meaning)
	}
	if items[1].ExampleOverride == nil || *items[1].ExampleOverride != "I peel a banana." {
		t.Fatal("example override missing")
	}
}

func TestAttachVocabularyTwiceConflicts(t *testing.T) {
	env := newTestEnv(t)
	lesson := env.mustCreateLesson(t, "Fruit")
	apple := env.mustCreateVocab(t, "apple")

	input := AttachVocabularyInput{LessonID: lesson.ID, VocabularyID: apple.ID}
	if _, err := env.lesson.AttachVocabulary(t.Context(), input); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if _, err := env.lesson.AttachVocabulary(t.Context(), input); err == nil {
		t.Fatal("second attach accepted")
	}
}

func TestUpdateVocabularyLinkClearsOverride(t *testing.T) {
	env := newTestEnv(t)
	lesson := env.mustCreateLesson(t, "Fruit")
	apple := env.mustCreateVocab(t, "apple")

	if _, err := env.lesson.AttachVocabulary(t.Context(), AttachVocabularyInput{
		LessonID:        lesson.ID,
		VocabularyID:    apple.ID,
		MeaningOverride: strptr("override"),
	}); err != nil {
		t.Fatalf("attach: %v", err)
	}

	// Empty string clears the override.
	link, err := env.lesson.UpdateVocabularyLink(t.Context(), lesson.ID, apple.ID, UpdateVocabularyLinkInput{
		MeaningOverride: strptr(""),
	})
	if err != nil {
		t.Fatalf("update link: %v", err)
	}
	if link.MeaningOverride != nil {
		t.Fatal("override not cleared")
	}
}

func TestLessonGetAnnotation(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustRegister(t, "learner@example.com")
	lesson := env.mustCreateLesson(t, "Fruit")
	apple := env.mustCreateVocab(t, "apple")
	banana := env.mustCreateVocab(t, "banana")
	for i, v := range []uuid.UUID{apple.ID, banana.ID} {
		if _, err := env.lesson.AttachVocabulary(t.Context(), AttachVocabularyInput{
			LessonID: lesson.ID, VocabularyID: v, DisplayOrder: i,
		}); err != nil {
			t.Fatalf("attach: %v", err)
		}
	}
	if _, err := env.progress.RecordVocabReview(t.Context(), user.ID, apple.ID, true); err != nil {
		t.Fatalf("review: %v", err)
	}

	anon, err := env.lesson.Get(t.Context(), lesson.ID, uuid.Nil)
	if err != nil {
		t.Fatalf("anonymous get: %v", err)
	}
	if anon.CompletionPercentage != nil || anon.IsCompleted != nil {
		t.Fatal("anonymous caller got annotations")
	}

	authed, err := env.lesson.Get(t.Context(), lesson.ID, user.ID)
	if err != nil {
		t.Fatalf("authed get: %v", err)
	}
	if authed.CompletionPercentage == nil || *authed.CompletionPercentage != 50.0 {
		t.Fatalf("completion = %v, want 50.0", authed.CompletionPercentage)
	}
	if authed.IsCompleted == nil || *authed.IsCompleted {
		t.Fatal("lesson should not be completed yet")
	}
}

func TestTopicLessonsListing(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustRegister(t, "learner@example.com")
	topic := env.mustCreateTopic(t, "Basics")
	lessonA := env.mustCreateLesson(t, "A")
	lessonB := env.mustCreateLesson(t, "B")
	for i, l := range []uuid.UUID{lessonA.ID, lessonB.ID} {
		if _, err := env.topic.AttachLesson(t.Context(), topic.ID, l, i); err != nil {
			t.Fatalf("attach: %v", err)
		}
	}
	if err := env.progress.CompleteLesson(t.Context(), user.ID, lessonA.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	lessons, err := env.topic.TopicLessons(t.Context(), topic.ID, user.ID)
	if err != nil {
		t.Fatalf("topic lessons: %v", err)
	}
	if len(lessons) != 2 {
		t.Fatalf("got %d lessons, want 2", len(lessons))
	}
	if lessons[0].IsCompleted == nil || !*lessons[0].IsCompleted {
		t.Fatal("lesson A should be completed")
	}
	if lessons[1].IsCompleted == nil || *lessons[1].IsCompleted {
		t.Fatal("lesson B should not be completed")
	}
}
