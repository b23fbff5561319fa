package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/wordnest/wordnest-backend/internal/platform/apierr"
	"github.com/wordnest/wordnest-backend/internal/services"
)

type ProfileHandler struct {
	profileService services.ProfileService
}

func NewProfileHandler(profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (ph *ProfileHandler) Get(c *gin.Context) {
	profile, err := ph.profileService.Get(c.Request.Context(), callerID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"profile": profile, "is_complete": profile.IsComplete()})
}

func (ph *ProfileHandler) Update(c *gin.Context) {
	var req struct {
		FullName  *string        `json:"full_name"`
		BirthDate *string        `json:"birth_date"`
		Address   *string        `json:"address"`
		Bio       *string        `json:"bio"`
		Metadata  datatypes.JSON `json:"metadata"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.BadRequest(err))
		return
	}

	input := services.UpdateProfileInput{
		FullName: req.FullName,
		Address:  req.Address,
		Bio:      req.Bio,
		Metadata: req.Metadata,
	}
	if req.BirthDate != nil {
		if *req.BirthDate == "" {
			RespondError(c, apierr.BadRequest(errors.New("birth_date must be YYYY-MM-DD")))
			return
		}
		parsed, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			RespondError(c, apierr.BadRequest(errors.New("birth_date must be YYYY-MM-DD")))
			return
		}
		input.BirthDate = &parsed
	}

	profile, err := ph.profileService.Upsert(c.Request.Context(), callerID(c), input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"profile": profile, "is_complete": profile.IsComplete()})
}
