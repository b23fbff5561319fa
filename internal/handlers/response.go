package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wordnest/wordnest-backend/internal/platform/apierr"
)

// Respond writes a success body whose status field mirrors the HTTP
// status code.
func Respond(c *gin.Context, status int, payload gin.H) {
	if payload == nil {
		payload = gin.H{}
	}
	payload["status"] = status
	c.JSON(status, payload)
}

func RespondOK(c *gin.Context, payload gin.H) {
	Respond(c, http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload gin.H) {
	Respond(c, http.StatusCreated, payload)
}

// RespondError maps the error through the apierr taxonomy. Internal
// errors never leak their message to the client.
func RespondError(c *gin.Context, err error) {
	status := apierr.StatusOf(err)
	msg := "internal server error"
	if status != http.StatusInternalServerError && err != nil {
		msg = err.Error()
	}
	c.JSON(status, gin.H{"status": status, "message": msg})
}
