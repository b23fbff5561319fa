package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/wordnest/wordnest-backend/internal/platform/apierr"
	"github.com/wordnest/wordnest-backend/internal/services"
)

type AdminHandler struct {
	topicService      services.TopicService
	lessonService     services.LessonService
	vocabService      services.VocabularyService
	statisticsService services.StatisticsService
	importService     services.ImportService
	audioService      services.AudioService
}

func NewAdminHandler(
	topicService services.TopicService,
	lessonService services.LessonService,
	vocabService services.VocabularyService,
	statisticsService services.StatisticsService,
	importService services.ImportService,
	audioService services.AudioService,
) *AdminHandler {
	return &AdminHandler{
		topicService:      topicService,
		lessonService:     lessonService,
		vocabService:      vocabService,
		statisticsService: statisticsService,
		importService:     importService,
		audioService:      audioService,
	}
}

// Topics

func (ah *AdminHandler) ListTopics(c *gin.Context) {
	topics, err := ah.topicService.ListAll(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"topics": topics})
}

func (ah *AdminHandler) CreateTopic(c *gin.Context) {
	var req struct {
		Name         string `json:"name"`
		Description  string `json:"description"`
		DisplayOrder int    `json:"display_order"`
		IsActive     *bool  `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.BadRequest(err))
		return
	}
	topic, err := ah.topicService.Create(c.Request.Context(), services.CreateTopicInput{
		Name:         req.Name,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
		IsActive:     req.IsActive,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, gin.H{"topic": topic})
}

func (ah *AdminHandler) UpdateTopic(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	var req struct {
		Name         *string `json:"name"`
		Description  *string `json:"description"`
		DisplayOrder *int    `json:"display_order"`
		IsActive     *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.BadRequest(err))
		return
	}
	topic, err := ah.topicService.Update(c.Request.Context(), id, services.UpdateTopicInput{
		Name:         req.Name,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
		IsActive:     req.IsActive,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"topic": topic})
}

func (ah *AdminHandler) DeleteTopic(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	if err := ah.topicService.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "topic deleted"})
}

// Lessons

func (ah *AdminHandler) ListLessons(c *gin.Context) {
	lessons, err := ah.lessonService.ListAll(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"lessons": lessons})
}

func (ah *AdminHandler) CreateLesson(c *gin.Context) {
	var req struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		DisplayOrder int    `json:"display_order"`
		IsActive     *bool  `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.BadRequest(err))
		return
	}
	lesson, err := ah.lessonService.Create(c.Request.Context(), services.CreateLessonInput{
		Title:        req.Title,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
		IsActive:     req.IsActive,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, gin.H{"lesson": lesson})
}

func (ah *AdminHandler) UpdateLesson(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	var req struct {
		Title        *string `json:"title"`
		Description  *string `json:"description"`
		DisplayOrder *int    `json:"display_order"`
		IsActive     *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.BadRequest(err))
		return
	}
	lesson, err := ah.lessonService.Update(c.Request.Context(), id, services.UpdateLessonInput{
		Title:        req.Title,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
		IsActive:     req.IsActive,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"lesson": lesson})
}

func (ah *AdminHandler) DeleteLesson(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	if err := ah.lessonService.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "lesson deleted"})
}

// Vocabulary

func (ah *AdminHandler) CreateVocabulary(c *gin.Context) {
	var req struct {
		Word            string         `json:"word"`
		Meaning         string         `json:"meaning"`
		Pronunciation   string         `json:"pronunciation"`
		Examples        datatypes.JSON `json:"examples"`
		WordType        string         `json:"word_type"`
		DifficultyLevel int            `json:"difficulty_level"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.BadRequest(err))
		return
	}
	vocab, err := ah.vocabService.Create(c.Request.Context(), services.CreateVocabularyInput{
		Word:            req.Word,
		Meaning:         req.Meaning,
		Pronunciation:   req.Pronunciation,
		Examples:        req.Examples,
		WordType:        req.WordType,
		DifficultyLevel: req.DifficultyLevel,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, gin.H{"vocabulary": vocab})
}

func (ah *AdminHandler) UpdateVocabulary(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	var req struct {
		Word            *string        `json:"word"`
		Meaning         *string        `json:"meaning"`
		Pronunciation   *string        `json:"pronunciation"`
		Examples        datatypes.JSON `json:"examples"`
		WordType        *string        `json:"word_type"`
		DifficultyLevel *int           `json:"difficulty_level"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.BadRequest(err))
		return
	}
	vocab, err := ah.vocabService.Update(c.Request.Context(), id, services.UpdateVocabularyInput{
		Word:            req.Word,
		Meaning:         req.Meaning,
		Pronunciation:   req.Pronunciation,
		Examples:        req.Examples,
		WordType:        req.WordType,
		DifficultyLevel: req.DifficultyLevel,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"vocabulary": vocab})
}

func (ah *AdminHandler) DeleteVocabulary(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	if err := ah.vocabService.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "vocabulary deleted"})
}

// Lesson vocabulary links

type attachVocabularyRequest struct {
	LessonID        string  `json:"lesson_id"`
	VocabularyID    string  `json:"vocabulary_id"`
	DisplayOrder    int     `json:"display_order"`
	MeaningOverride *string `json:"meaning_override"`
	ExampleOverride *string `json:"example_override"`
}

func (ah *AdminHandler) attachVocabulary(c *gin.Context) {
	var req attachVocabularyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.BadRequest(err))
		return
	}
	lessonID, err := uuid.Parse(req.LessonID)
	if err != nil {
		RespondError(c, apierr.MissingField("lesson_id"))
		return
	}
	vocabID, err := uuid.Parse(req.VocabularyID)
	if err != nil {
		RespondError(c, apierr.MissingField("vocabulary_id"))
		return
	}
	link, err := ah.lessonService.AttachVocabulary(c.Request.Context(), services.AttachVocabularyInput{
		LessonID:        lessonID,
		VocabularyID:    vocabID,
		DisplayOrder:    req.DisplayOrder,
		MeaningOverride: req.MeaningOverride,
		ExampleOverride: req.ExampleOverride,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, gin.H{"lesson_vocabulary": link})
}

func (ah *AdminHandler) AttachLessonVocabulary(c *gin.Context) {
	ah.attachVocabulary(c)
}

// AddExistingVocabulary attaches an already-created word to a lesson.
// Same operation as AttachLessonVocabulary, kept as its own route for
// the admin UI.
func (ah *AdminHandler) AddExistingVocabulary(c *gin.Context) {
	ah.attachVocabulary(c)
}

func (ah *AdminHandler) UpdateLessonVocabulary(c *gin.Context) {
	lessonID, err := pathUUID(c, "lid")
	if err != nil {
		RespondError(c, err)
		return
	}
	vocabID, err := pathUUID(c, "vid")
	if err != nil {
		RespondError(c, err)
		return
	}
	var req struct {
		DisplayOrder    *int    `json:"display_order"`
		MeaningOverride *string `json:"meaning_override"`
		ExampleOverride *string `json:"example_override"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.BadRequest(err))
		return
	}
	link, err := ah.lessonService.UpdateVocabularyLink(c.Request.Context(), lessonID, vocabID, services.UpdateVocabularyLinkInput{
		DisplayOrder:    req.DisplayOrder,
		MeaningOverride: req.MeaningOverride,
		ExampleOverride: req.ExampleOverride,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"lesson_vocabulary": link})
}

func (ah *AdminHandler) DetachLessonVocabulary(c *gin.Context) {
	lessonID, err := pathUUID(c, "lid")
	if err != nil {
		RespondError(c, err)
		return
	}
	vocabID, err := pathUUID(c, "vid")
	if err != nil {
		RespondError(c, err)
		return
	}
	if err := ah.lessonService.DetachVocabulary(c.Request.Context(), lessonID, vocabID); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "vocabulary detached"})
}

// Topic lesson links

func (ah *AdminHandler) AttachTopicLesson(c *gin.Context) {
	var req struct {
		TopicID      string `json:"topic_id"`
		LessonID     string `json:"lesson_id"`
		DisplayOrder int    `json:"display_order"`
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
	lessonID, err := uuid.Parse(req.LessonID)
	if err != nil {
		RespondError(c, apierr.MissingField("lesson_id"))
		return
	}
	link, err := ah.topicService.AttachLesson(c.Request.Context(), topicID, lessonID, req.DisplayOrder)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, gin.H{"topic_lesson": link})
}

func (ah *AdminHandler) DetachTopicLesson(c *gin.Context) {
	topicID, err := pathUUID(c, "tid")
	if err != nil {
		RespondError(c, err)
		return
	}
	lessonID, err := pathUUID(c, "lid")
	if err != nil {
		RespondError(c, err)
		return
	}
	if err := ah.topicService.DetachLesson(c.Request.Context(), topicID, lessonID); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "lesson detached"})
}

// Statistics, audio, import

func (ah *AdminHandler) Statistics(c *gin.Context) {
	stats, err := ah.statisticsService.AdminStatistics(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"statistics": stats})
}

func (ah *AdminHandler) UploadAudio(c *gin.Context) {
	vocabID, err := uuid.Parse(c.PostForm("vocabulary_id"))
	if err != nil {
		RespondError(c, apierr.MissingField("vocabulary_id"))
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, apierr.MissingField("file"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, apierr.BadRequest(errors.New("unreadable upload")))
		return
	}
	defer file.Close()

	url, err := ah.audioService.UploadVocabularyAudio(c.Request.Context(), vocabID, fileHeader.Filename, file)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"audio_url": url})
}

func (ah *AdminHandler) ImportVocabulary(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, apierr.MissingField("file"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, apierr.BadRequest(errors.New("unreadable upload")))
		return
	}
	defer file.Close()

	result, err := ah.importService.ImportVocabulary(c.Request.Context(), file)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"result": result})
}
