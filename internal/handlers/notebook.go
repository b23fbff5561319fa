package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/wordnest/wordnest-backend/internal/services"
)

type NotebookHandler struct {
	notebookService services.NotebookService
}

func NewNotebookHandler(notebookService services.NotebookService) *NotebookHandler {
	return &NotebookHandler{notebookService: notebookService}
}

func (nh *NotebookHandler) Words(c *gin.Context) {
	words, err := nh.notebookService.Words(c.Request.Context(), callerID(c), queryInt(c, "limit"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"words": words})
}

func (nh *NotebookHandler) Stats(c *gin.Context) {
	stats, err := nh.notebookService.Stats(c.Request.Context(), callerID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"stats": stats})
}
