package model

import (
	"time"
)

type QuizPhase string

const (
	PhaseModeSelection     QuizPhase = "mode_selection"
	PhaseRoomSelection     QuizPhase = "room_selection"
	PhaseStyleSwipe        QuizPhase = "style_swipe"
	PhaseNarrowDown        QuizPhase = "narrow_down"
	PhaseMaterialSelection QuizPhase = "material_selection"
	PhasePlayoffRound      QuizPhase = "playoff_round"
	PhaseDetailsRound      QuizPhase = "details_round"
	PhaseResults           QuizPhase = "results"
)

type PlayoffReason string

const (
	PlayoffIndecisive  PlayoffReason = "indecisive"
	PlayoffAllLiked    PlayoffReason = "all_liked"
	PlayoffAllDisliked PlayoffReason = "all_disliked"
)

type QuizMode string

const (
	ModeSingle QuizMode = "single"
	ModePair   QuizMode = "pair"
)

// QuizSession is one run through a quiz. The round phase is held here so
// the server stays the sole source of truth for orchestration.
//
// swagger:model QuizSession
type QuizSession struct {
	UUIDBase
	QuizID            string        `gorm:"size:50;index;not null" json:"quizId"`
	UserID            *uint         `gorm:"index" json:"userId,omitempty"`
	Mode              QuizMode      `gorm:"size:20" json:"mode"`
	RoomID            *uint         `gorm:"index" json:"roomId,omitempty"`
	Phase             QuizPhase     `gorm:"size:30;default:'mode_selection'" json:"phase"`
	PlayoffReason     PlayoffReason `gorm:"size:20" json:"playoffReason,omitempty"`
	PhaseAfterPlayoff QuizPhase     `gorm:"size:30" json:"phaseAfterPlayoff,omitempty"`
	SwipeCount        int           `gorm:"default:0" json:"swipeCount"`
	Candidates        string        `gorm:"size:500" json:"candidates,omitempty"` // JSON-encoded style IDs kept after narrow-down
	CompletedAt       *time.Time    `json:"completedAt,omitempty"`
}

func (QuizSession) TableName() string {
	return "quiz_sessions"
}

// swagger:model Answer
type Answer struct {
	BaseModel
	SessionID  string `gorm:"size:36;index;not null" json:"sessionId"`
	QuestionID uint   `gorm:"not null;index" json:"questionId"`
	Value      string `gorm:"size:500;not null" json:"value"`
}

func (Answer) TableName() string {
	return "answers"
}

// StyleScore is the accumulated preference for one (session, style) pair.
// Rows are only ever touched through upsert-increment; Changes counts
// playoff votes that flipped the sign of the running score.
//
// swagger:model StyleScore
type StyleScore struct {
	BaseModel
	SessionID string  `gorm:"size:36;not null;uniqueIndex:idx_session_style" json:"sessionId"`
	StyleID   uint    `gorm:"not null;uniqueIndex:idx_session_style" json:"styleId"`
	Score     float64 `gorm:"not null;default:0" json:"score"`
	Changes   int     `gorm:"not null;default:0" json:"changes"`
}

func (StyleScore) TableName() string {
	return "style_scores"
}

// swagger:model DetailScore
type DetailScore struct {
	BaseModel
	SessionID string  `gorm:"size:36;not null;uniqueIndex:idx_session_detail" json:"sessionId"`
	DetailID  uint    `gorm:"not null;uniqueIndex:idx_session_detail" json:"detailId"`
	Score     float64 `gorm:"not null;default:0" json:"score"`
}

func (DetailScore) TableName() string {
	return "detail_scores"
}

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// ScoreDelta maps a sentiment to the detail-score delta it applies when a
// comment lands inside a tagged rectangle.
func (s Sentiment) ScoreDelta() float64 {
	switch s {
	case SentimentPositive:
		return 3
	case SentimentNegative:
		return -3
	default:
		return 0
	}
}

// swagger:model Comment
type Comment struct {
	BaseModel
	SessionID    string    `gorm:"size:36;index;not null" json:"sessionId"`
	StyleImageID uint      `gorm:"not null;index" json:"styleImageId"`
	Text         string    `gorm:"type:text" json:"text"`
	Sentiment    Sentiment `gorm:"size:20" json:"sentiment,omitempty"`
	X            *float64  `json:"x,omitempty"`
	Y            *float64  `json:"y,omitempty"`
	Width        *float64  `json:"width,omitempty"`
	Height       *float64  `json:"height,omitempty"`
	ImageTagID   *uint     `gorm:"index" json:"imageTagId,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}

// QuizAnalytics is one append-only interaction log entry.
//
// swagger:model QuizAnalytics
type QuizAnalytics struct {
	BaseModel
	SessionID        string    `gorm:"size:36;index;not null" json:"sessionId"`
	InteractionType  string    `gorm:"size:50;not null" json:"interactionType"`
	Timestamp        time.Time `gorm:"not null" json:"timestamp"`
	ReactionTimeMs   *int      `json:"reactionTimeMs,omitempty"`
	IsDecisionChange bool      `gorm:"default:false" json:"isDecisionChange"`
}

func (QuizAnalytics) TableName() string {
	return "quiz_analytics"
}
