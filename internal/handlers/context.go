package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wordnest/wordnest-backend/internal/requestdata"
)

// callerID is uuid.Nil for anonymous requests on OptionalAuth routes.
func callerID(c *gin.Context) uuid.UUID {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		return uuid.Nil
	}
	return rd.UserID
}
