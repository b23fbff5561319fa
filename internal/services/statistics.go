package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/wordnest/wordnest-backend/internal/platform/apierr"
	"github.com/wordnest/wordnest-backend/internal/platform/logger"
	"github.com/wordnest/wordnest-backend/internal/platform/rediscache"
	"github.com/wordnest/wordnest-backend/internal/repos"
	"github.com/wordnest/wordnest-backend/internal/types"
)

const (
	statisticsCacheKey = "admin:statistics"
	statisticsCacheTTL = 60 * time.Second
	mostReviewedLimit  = 10
)

type StatisticsService interface {
	AdminStatistics(ctx context.Context) (*types.AdminStatistics, error)
}

type statisticsService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	vocabRepo     repos.VocabularyRepo
	lessonRepo    repos.LessonRepo
	topicRepo     repos.TopicRepo
	vocabProgRepo repos.VocabProgressRepo
	cache         rediscache.Cache
}

func NewStatisticsService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	vocabRepo repos.VocabularyRepo,
	lessonRepo repos.LessonRepo,
	topicRepo repos.TopicRepo,
	vocabProgRepo repos.VocabProgressRepo,
	cache rediscache.Cache,
) StatisticsService {
	return &statisticsService{
		db:            db,
		log:           log.With("service", "StatisticsService"),
		userRepo:      userRepo,
		vocabRepo:     vocabRepo,
		lessonRepo:    lessonRepo,
		topicRepo:     topicRepo,
		vocabProgRepo: vocabProgRepo,
		cache:         cache,
	}
}

func (s *statisticsService) AdminStatistics(ctx context.Context) (*types.AdminStatistics, error) {
	var cached types.AdminStatistics
	hit, err := s.cache.GetJSON(ctx, statisticsCacheKey, &cached)
	if err != nil {
		s.log.Debug("Cache read failed", "key", statisticsCacheKey, "error", err.Error())
	}
	if hit {
		return &cached, nil
	}

	stats := &types.AdminStatistics{}
	if stats.TotalUsers, err = s.userRepo.Count(ctx, nil); err != nil {
		return nil, apierr.Internal(err)
	}
	if stats.TotalVocabulary, err = s.vocabRepo.Count(ctx, nil); err != nil {
		return nil, apierr.Internal(err)
	}
	if stats.TotalLessons, err = s.lessonRepo.Count(ctx, nil); err != nil {
		return nil, apierr.Internal(err)
	}
	if stats.TotalTopics, err = s.topicRepo.Count(ctx, nil); err != nil {
		return nil, apierr.Internal(err)
	}
	if stats.ActiveLearners, err = s.vocabProgRepo.CountDistinctUsers(ctx, nil); err != nil {
		return nil, apierr.Internal(err)
	}
	if stats.MostReviewedWords, err = s.vocabProgRepo.MostReviewed(ctx, nil, mostReviewedLimit); err != nil {
		return nil, apierr.Internal(err)
	}

	if err := s.cache.SetJSON(ctx, statisticsCacheKey, stats, statisticsCacheTTL); err != nil {
		s.log.Debug("Cache write failed", "key", statisticsCacheKey, "error", err.Error())
	}
	return stats, nil
}
