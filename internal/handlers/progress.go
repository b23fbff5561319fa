package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wordnest/wordnest-backend/internal/platform/apierr"
	"github.com/wordnest/wordnest-backend/internal/services"
)

type ProgressHandler struct {
	progressService services.ProgressService
}

func NewProgressHandler(progressService services.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

func (ph *ProgressHandler) UpdateVocabProgress(c *gin.Context) {
	var req struct {
		VocabularyID string `json:"vocabulary_id"`
		IsMemorized  bool   `json:"is_memorized"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.BadRequest(err))
		return
	}
	if req.VocabularyID == "" {
		RespondError(c, apierr.MissingField("vocabulary_id"))
		return
	}
	vocabID, err := uuid.Parse(req.VocabularyID)
	if err != nil {
		RespondError(c, apierr.MissingField("vocabulary_id"))
		return
	}

	row, err := ph.progressService.RecordVocabReview(c.Request.Context(), callerID(c), vocabID, req.IsMemorized)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"progress": row})
}

func (ph *ProgressHandler) CompleteLesson(c *gin.Context) {
	var req struct {
		LessonID string `json:"lesson_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.BadRequest(err))
		return
	}
	lessonID, err := uuid.Parse(req.LessonID)
	if err != nil {
		RespondError(c, apierr.MissingField("lesson_id"))
		return
	}

	if err := ph.progressService.CompleteLesson(c.Request.Context(), callerID(c), lessonID); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "lesson completed"})
}

func (ph *ProgressHandler) UpdateTopicProgress(c *gin.Context) {
	var req struct {
		TopicID string `json:"topic_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.BadRequest(err))
		return
	}
	topicID, err := uuid.Parse(req.TopicID)
	if err != nil {
		RespondError(c, apierr.MissingField("topic_id"))
		return
	}

	row, err := ph.progressService.UpdateTopicProgress(c.Request.Context(), callerID(c), topicID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"topic_progress": row})
}

func (ph *ProgressHandler) ResetProgress(c *gin.Context) {
	if err := ph.progressService.ResetUserProgress(c.Request.Context(), callerID(c)); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "progress reset"})
}

func (ph *ProgressHandler) WordsToReview(c *gin.Context) {
	words, err := ph.progressService.WordsToReview(c.Request.Context(), callerID(c), queryInt(c, "limit"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"words": words})
}

func (ph *ProgressHandler) OverallProgress(c *gin.Context) {
	progress, err := ph.progressService.OverallProgress(c.Request.Context(), callerID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"progress": progress})
}

func (ph *ProgressHandler) TopicsWithProgress(c *gin.Context) {
	topics, err := ph.progressService.TopicsWithProgress(c.Request.Context(), callerID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"topics": topics})
}
