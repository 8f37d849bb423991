package service

import (
	"errors"
	"time"

	"artscore_backend/internal/model"
	"artscore_backend/internal/repository"
	"artscore_backend/internal/util"
	"artscore_backend/pkg/logger"
	"artscore_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// detailWeight is the fraction of a style vote passed on to every detail
// tagged on the swiped image.
const detailWeight = 0.5

type ScoringService struct {
	ScoreRepo     *repository.ScoreRepository
	CatalogRepo   *repository.CatalogRepository
	SessionRepo   *repository.QuizSessionRepository
	AnalyticsRepo *repository.AnalyticsRepository
}

func NewScoringService(
	scoreRepo *repository.ScoreRepository,
	catalogRepo *repository.CatalogRepository,
	sessionRepo *repository.QuizSessionRepository,
	analyticsRepo *repository.AnalyticsRepository,
) *ScoringService {
	return &ScoringService{
		ScoreRepo:     scoreRepo,
		CatalogRepo:   catalogRepo,
		SessionRepo:   sessionRepo,
		AnalyticsRepo: analyticsRepo,
	}
}

type SwipeResult struct {
	StyleScore   *model.StyleScore   `json:"styleScore"`
	DetailScores []model.DetailScore `json:"detailScores"`
}

func (s *ScoringService) findSession(sessionID string) (*model.QuizSession, error) {
	session, err := s.SessionRepo.FindByID(sessionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSessionNotFound
	}
	return session, err
}

// RecordStyleSwipe increments the style score by the swipe score and every
// detail tagged on the image by half of it, atomically.
func (s *ScoringService) RecordStyleSwipe(sessionID string, styleID, imageID uint, score float64, reactionMs *int, decisionChange bool) (*SwipeResult, error) {
	session, err := s.findSession(sessionID)
	if err != nil {
		return nil, err
	}

	if _, err := s.CatalogRepo.FindStyle(styleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrStyleNotFound
		}
		return nil, err
	}

	tags, err := s.CatalogRepo.TagsForImage(imageID)
	if err != nil {
		return nil, err
	}

	detailDeltas := make(map[uint]float64, len(tags))
	for _, tag := range tags {
		detailDeltas[tag.DetailID] += score * detailWeight
	}

	if err := s.ScoreRepo.ApplyStyleSwipe(sessionID, styleID, score, detailDeltas); err != nil {
		monitoring.ScoreMutationCounter.WithLabelValues("style_swipe", "error").Inc()
		return nil, err
	}
	monitoring.ScoreMutationCounter.WithLabelValues("style_swipe", "ok").Inc()

	session.SwipeCount++
	if err := s.SessionRepo.Update(session); err != nil {
		logger.Log.Error("Failed to bump swipe count", zap.String("session", sessionID), zap.Error(err))
	}

	s.appendEvent(sessionID, "style_swipe", reactionMs, decisionChange)

	styleScore, err := s.ScoreRepo.GetStyleScore(sessionID, styleID)
	if err != nil {
		return nil, err
	}

	detailIDs := make([]uint, 0, len(detailDeltas))
	for id := range detailDeltas {
		detailIDs = append(detailIDs, id)
	}
	detailScores, err := s.ScoreRepo.GetDetailScoresForIDs(sessionID, detailIDs)
	if err != nil {
		return nil, err
	}

	return &SwipeResult{StyleScore: styleScore, DetailScores: detailScores}, nil
}

// RecordComment stores the comment; when coordinates are present and hit a
// tag rectangle, the sentiment delta lands on that tag's detail score. For
// overlapping rectangles the first tag in catalog order wins.
func (s *ScoringService) RecordComment(sessionID string, styleImageID uint, text string, sentiment model.Sentiment, x, y, w, h *float64) (*model.Comment, error) {
	if _, err := s.findSession(sessionID); err != nil {
		return nil, err
	}

	if _, err := s.CatalogRepo.FindStyleImage(styleImageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrImageNotFound
		}
		return nil, err
	}

	comment := &model.Comment{
		SessionID:    sessionID,
		StyleImageID: styleImageID,
		Text:         text,
		Sentiment:    sentiment,
		X:            x,
		Y:            y,
		Width:        w,
		Height:       h,
	}

	var hit *model.ImageTag
	if x != nil && y != nil {
		tags, err := s.CatalogRepo.TagsForImage(styleImageID)
		if err != nil {
			return nil, err
		}
		for i := range tags {
			if tags[i].Contains(*x, *y) {
				hit = &tags[i]
				break
			}
		}
	}

	delta := sentiment.ScoreDelta()
	if err := s.ScoreRepo.ApplyComment(comment, hit, delta); err != nil {
		monitoring.ScoreMutationCounter.WithLabelValues("comment", "error").Inc()
		return nil, err
	}
	monitoring.ScoreMutationCounter.WithLabelValues("comment", "ok").Inc()

	s.appendEvent(sessionID, "comment", nil, false)

	return comment, nil
}

// RecordAnswer appends an answer row; no score side effects.
func (s *ScoringService) RecordAnswer(sessionID string, questionID uint, value string) (*model.Answer, error) {
	if _, err := s.findSession(sessionID); err != nil {
		return nil, err
	}

	if _, err := s.CatalogRepo.FindQuestion(questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	answer := &model.Answer{
		SessionID:  sessionID,
		QuestionID: questionID,
		Value:      value,
	}
	if err := s.ScoreRepo.CreateAnswer(answer); err != nil {
		return nil, err
	}

	s.appendEvent(sessionID, "answer", nil, false)

	return answer, nil
}

// RecordEvent appends a raw interaction event (tag clicks and other UI
// interactions the server does not otherwise observe).
func (s *ScoringService) RecordEvent(sessionID, interactionType string, reactionMs *int, decisionChange bool) error {
	if _, err := s.findSession(sessionID); err != nil {
		return err
	}
	return s.AnalyticsRepo.Append(&model.QuizAnalytics{
		SessionID:        sessionID,
		InteractionType:  interactionType,
		Timestamp:        time.Now(),
		ReactionTimeMs:   reactionMs,
		IsDecisionChange: decisionChange,
	})
}

// appendEvent is best effort: a failed log write never fails the mutation
// that triggered it.
func (s *ScoringService) appendEvent(sessionID, interactionType string, reactionMs *int, decisionChange bool) {
	err := s.AnalyticsRepo.Append(&model.QuizAnalytics{
		SessionID:        sessionID,
		InteractionType:  interactionType,
		Timestamp:        time.Now(),
		ReactionTimeMs:   reactionMs,
		IsDecisionChange: decisionChange,
	})
	if err != nil {
		logger.Log.Error("Failed to append analytics event",
			zap.String("session", sessionID),
			zap.String("type", interactionType),
			zap.Error(err))
	}
}
