package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wordnest/wordnest-backend/internal/platform/apierr"
	"github.com/wordnest/wordnest-backend/internal/services"
)

type TopicHandler struct {
	topicService services.TopicService
}

func NewTopicHandler(topicService services.TopicService) *TopicHandler {
	return &TopicHandler{topicService: topicService}
}

func (th *TopicHandler) List(c *gin.Context) {
	topics, err := th.topicService.ListActive(c.Request.Context(), callerID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"topics": topics})
}

func (th *TopicHandler) Get(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	topic, err := th.topicService.Get(c.Request.Context(), id, callerID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"topic": topic})
}

func (th *TopicHandler) TopicLessons(c *gin.Context) {
	topicID, err := uuid.Parse(c.Query("topic_id"))
	if err != nil {
		RespondError(c, apierr.BadRequest(errors.New("invalid or missing topic_id")))
		return
	}
	lessons, err := th.topicService.TopicLessons(c.Request.Context(), topicID, callerID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"lessons": lessons})
}
