package repository

import (
	"artscore_backend/internal/model"

	"gorm.io/gorm"
)

// AnalyticsRepository is the append-only interaction log.
type AnalyticsRepository struct {
	DB *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{DB: db}
}

func (r *AnalyticsRepository) Append(event *model.QuizAnalytics) error {
	return r.DB.Create(event).Error
}

func (r *AnalyticsRepository) ListBySession(sessionID string) ([]model.QuizAnalytics, error) {
	var events []model.QuizAnalytics
	err := r.DB.Where("session_id = ?", sessionID).Order("timestamp ASC, id ASC").Find(&events).Error
	return events, err
}
