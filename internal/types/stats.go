package types

import (
	"github.com/google/uuid"
)

type WordReviewStat struct {
	VocabularyID uuid.UUID `json:"vocabulary_id"`
	Word         string    `json:"word"`
	ReviewCount  int       `json:"review_count"`
}

// OverallProgress is the per-user rollup behind GET /overall-progress.
type OverallProgress struct {
	WordsStarted     int                 `json:"words_started"`
	WordsMemorized   int                 `json:"words_memorized"`
	TotalWords       int                 `json:"total_words"`
	LessonsCompleted int                 `json:"lessons_completed"`
	TotalLessons     int                 `json:"total_lessons"`
	Topics           []TopicWithProgress `json:"topics"`
}

type NotebookStats struct {
	WordsStarted   int `json:"words_started"`
	WordsMemorized int `json:"words_memorized"`
	TotalReviews   int `json:"total_reviews"`
}

// AdminStatistics backs GET /admin/statistics.
type AdminStatistics struct {
	TotalUsers        int64            `json:"total_users"`
	TotalVocabulary   int64            `json:"total_vocabulary"`
	TotalLessons      int64            `json:"total_lessons"`
	TotalTopics       int64            `json:"total_topics"`
	ActiveLearners    int64            `json:"active_learners"`
	MostReviewedWords []WordReviewStat `json:"most_reviewed_words"`
}
