package repository

import (
	"artscore_backend/internal/model"

	"gorm.io/gorm"
)

type QuizSessionRepository struct {
	DB *gorm.DB
}

func NewQuizSessionRepository(db *gorm.DB) *QuizSessionRepository {
	return &QuizSessionRepository{DB: db}
}

func (r *QuizSessionRepository) Create(session *model.QuizSession) error {
	return r.DB.Create(session).Error
}

func (r *QuizSessionRepository) FindByID(id string) (*model.QuizSession, error) {
	var session model.QuizSession
	err := r.DB.Where("id = ?", id).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *QuizSessionRepository) Update(session *model.QuizSession) error {
	return r.DB.Save(session).Error
}
