package repository

import (
	"artscore_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ScoreRepository owns all StyleScore/DetailScore mutations. Score rows are
// unique per (session, entity) pair and only ever move through atomic
// upsert-increments, so rapid double-submission of the same pair cannot
// create duplicate rows or lose updates.
type ScoreRepository struct {
	DB *gorm.DB
}

func NewScoreRepository(db *gorm.DB) *ScoreRepository {
	return &ScoreRepository{DB: db}
}

func incrementStyleScore(tx *gorm.DB, sessionID string, styleID uint, delta float64, flipped bool) error {
	assignments := map[string]interface{}{
		"score": gorm.Expr("score + ?", delta),
	}
	changes := 0
	if flipped {
		assignments["changes"] = gorm.Expr("changes + 1")
		changes = 1
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "style_id"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(&model.StyleScore{
		SessionID: sessionID,
		StyleID:   styleID,
		Score:     delta,
		Changes:   changes,
	}).Error
}

func incrementDetailScore(tx *gorm.DB, sessionID string, detailID uint, delta float64) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "detail_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"score": gorm.Expr("score + ?", delta),
		}),
	}).Create(&model.DetailScore{
		SessionID: sessionID,
		DetailID:  detailID,
		Score:     delta,
	}).Error
}

// ApplyStyleSwipe increments the style score and every tagged detail score
// in a single transaction: a partial application must never be observable.
func (r *ScoreRepository) ApplyStyleSwipe(sessionID string, styleID uint, delta float64, detailDeltas map[uint]float64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := incrementStyleScore(tx, sessionID, styleID, delta, false); err != nil {
			return err
		}
		for detailID, d := range detailDeltas {
			if err := incrementDetailScore(tx, sessionID, detailID, d); err != nil {
				return err
			}
		}
		return nil
	})
}

// IncrementStyleScore applies one upsert-increment outside a combined write
// (narrow-down and playoff merges).
func (r *ScoreRepository) IncrementStyleScore(sessionID string, styleID uint, delta float64, flipped bool) error {
	return incrementStyleScore(r.DB, sessionID, styleID, delta, flipped)
}

func (r *ScoreRepository) IncrementDetailScore(sessionID string, detailID uint, delta float64) error {
	return incrementDetailScore(r.DB, sessionID, detailID, delta)
}

// ApplyComment stores the comment and, when a tag was hit, applies the
// sentiment delta to the tag's detail score and links the comment, all in
// one transaction.
func (r *ScoreRepository) ApplyComment(comment *model.Comment, tag *model.ImageTag, delta float64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if tag != nil {
			comment.ImageTagID = &tag.ID
		}
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		if tag != nil && delta != 0 {
			if err := incrementDetailScore(tx, comment.SessionID, tag.DetailID, delta); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ScoreRepository) CreateAnswer(answer *model.Answer) error {
	return r.DB.Create(answer).Error
}

func (r *ScoreRepository) GetStyleScore(sessionID string, styleID uint) (*model.StyleScore, error) {
	var score model.StyleScore
	err := r.DB.Where("session_id = ? AND style_id = ?", sessionID, styleID).First(&score).Error
	if err != nil {
		return nil, err
	}
	return &score, nil
}

func (r *ScoreRepository) GetStyleScores(sessionID string) ([]model.StyleScore, error) {
	var scores []model.StyleScore
	err := r.DB.Where("session_id = ?", sessionID).Order("score DESC, style_id ASC").Find(&scores).Error
	return scores, err
}

func (r *ScoreRepository) GetDetailScores(sessionID string) ([]model.DetailScore, error) {
	var scores []model.DetailScore
	err := r.DB.Where("session_id = ?", sessionID).Order("score DESC, detail_id ASC").Find(&scores).Error
	return scores, err
}

func (r *ScoreRepository) GetDetailScoresForIDs(sessionID string, detailIDs []uint) ([]model.DetailScore, error) {
	var scores []model.DetailScore
	if len(detailIDs) == 0 {
		return scores, nil
	}
	err := r.DB.Where("session_id = ? AND detail_id IN ?", sessionID, detailIDs).Find(&scores).Error
	return scores, err
}
