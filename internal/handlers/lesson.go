package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wordnest/wordnest-backend/internal/platform/apierr"
	"github.com/wordnest/wordnest-backend/internal/services"
)

type LessonHandler struct {
	lessonService services.LessonService
}

func NewLessonHandler(lessonService services.LessonService) *LessonHandler {
	return &LessonHandler{lessonService: lessonService}
}

func (lh *LessonHandler) List(c *gin.Context) {
	lessons, err := lh.lessonService.ListActive(c.Request.Context(), callerID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"lessons": lessons})
}

func (lh *LessonHandler) Get(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	lesson, err := lh.lessonService.Get(c.Request.Context(), id, callerID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"lesson": lesson})
}

func (lh *LessonHandler) LessonVocabulary(c *gin.Context) {
	lessonID, err := uuid.Parse(c.Query("lesson_id"))
	if err != nil {
		RespondError(c, apierr.BadRequest(errors.New("invalid or missing lesson_id")))
		return
	}
	items, err := lh.lessonService.LessonVocabulary(c.Request.Context(), lessonID, callerID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"lesson_vocabulary": items})
}
