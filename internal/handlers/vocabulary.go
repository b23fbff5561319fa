package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wordnest/wordnest-backend/internal/platform/apierr"
	"github.com/wordnest/wordnest-backend/internal/services"
)

type VocabularyHandler struct {
	vocabService services.VocabularyService
}

func NewVocabularyHandler(vocabService services.VocabularyService) *VocabularyHandler {
	return &VocabularyHandler{vocabService: vocabService}
}

func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}

func pathUUID(c *gin.Context, key string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(key))
	if err != nil {
		return uuid.Nil, apierr.BadRequest(errors.New("invalid id"))
	}
	return id, nil
}

func (vh *VocabularyHandler) List(c *gin.Context) {
	items, err := vh.vocabService.List(c.Request.Context(), queryInt(c, "limit"), queryInt(c, "offset"), callerID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"vocabulary": items})
}

func (vh *VocabularyHandler) Get(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	item, err := vh.vocabService.Get(c.Request.Context(), id, callerID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"vocabulary": item})
}

func (vh *VocabularyHandler) Search(c *gin.Context) {
	items, err := vh.vocabService.Search(c.Request.Context(), c.Query("keyword"), queryInt(c, "limit"), callerID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"vocabulary": items})
}

func (vh *VocabularyHandler) Random(c *gin.Context) {
	items, err := vh.vocabService.Random(c.Request.Context(), queryInt(c, "limit"), callerID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"vocabulary": items})
}
