package controller

import (
	"errors"

	"artscore_backend/internal/model"
	"artscore_backend/internal/service"
	"artscore_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	ScoringService  *service.ScoringService
	InsightsService *service.InsightsService
}

func NewQuizController(scoringService *service.ScoringService, insightsService *service.InsightsService) *QuizController {
	return &QuizController{
		ScoringService:  scoringService,
		InsightsService: insightsService,
	}
}

func quizError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrSessionNotFound),
		errors.Is(err, util.ErrStyleNotFound),
		errors.Is(err, util.ErrImageNotFound),
		errors.Is(err, util.ErrQuestionNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrSessionCompleted):
		util.Error(ctx, 409, "session is already completed")
	case errors.Is(err, util.ErrWrongPhase):
		util.Error(ctx, 409, "operation not allowed in the current phase")
	default:
		util.LogInternalError(ctx, err)
	}
}

// swagger:model AnswerRequest
type AnswerRequest struct {
	SessionID  string `json:"sessionId" binding:"required"`
	QuestionID uint   `json:"questionId" binding:"required"`
	Value      string `json:"value" binding:"required"`
}

// RecordAnswer godoc
// @Summary Record a question answer
// @Tags quiz
// @Accept  json
// @Produce  json
// @Param   body body AnswerRequest true "Answer payload"
// @Success 201 {object} util.Response{data=model.Answer} "Created"
// @Failure 400 {object} util.Response "Invalid request"
// @Failure 404 {object} util.Response "Unknown session or question"
// @Router /api/quiz/answer [post]
func (c *QuizController) RecordAnswer(ctx *gin.Context) {
	var req AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	answer, err := c.ScoringService.RecordAnswer(req.SessionID, req.QuestionID, req.Value)
	if err != nil {
		quizError(ctx, err)
		return
	}

	util.Created(ctx, answer)
}

// swagger:model StyleScoreRequest
type StyleScoreRequest struct {
	SessionID      string  `json:"sessionId" binding:"required"`
	StyleID        uint    `json:"styleId" binding:"required"`
	ImageID        uint    `json:"imageId" binding:"required"`
	Score          float64 `json:"score" binding:"required"`
	ReactionTimeMs *int    `json:"reactionTimeMs"`
	DecisionChange bool    `json:"decisionChange"`
}

// RecordStyleScore godoc
// @Summary Record a style swipe
// @Description Increments the style score and every detail tagged on the swiped image
// @Tags quiz
// @Accept  json
// @Produce  json
// @Param   body body StyleScoreRequest true "Swipe payload"
// @Success 200 {object} util.Response{data=service.SwipeResult} "Updated scores"
// @Failure 400 {object} util.Response "Invalid request"
// @Failure 404 {object} util.Response "Unknown session or style"
// @Router /api/quiz/style-score [post]
func (c *QuizController) RecordStyleScore(ctx *gin.Context) {
	var req StyleScoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ScoringService.RecordStyleSwipe(req.SessionID, req.StyleID, req.ImageID, req.Score, req.ReactionTimeMs, req.DecisionChange)
	if err != nil {
		quizError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// swagger:model CommentRequest
type CommentRequest struct {
	SessionID    string   `json:"sessionId" binding:"required"`
	StyleImageID uint     `json:"styleImageId" binding:"required"`
	Text         string   `json:"text" binding:"required"`
	Sentiment    string   `json:"sentiment" binding:"omitempty,oneof=positive neutral negative"`
	X            *float64 `json:"x"`
	Y            *float64 `json:"y"`
	Width        *float64 `json:"width"`
	Height       *float64 `json:"height"`
}

// RecordComment godoc
// @Summary Record an image comment
// @Description Stores the comment; coordinates hitting a tagged rectangle move that detail's score by the sentiment delta
// @Tags quiz
// @Accept  json
// @Produce  json
// @Param   body body CommentRequest true "Comment payload"
// @Success 201 {object} util.Response{data=model.Comment} "Created"
// @Failure 400 {object} util.Response "Invalid request"
// @Failure 404 {object} util.Response "Unknown session or image"
// @Router /api/quiz/comment [post]
func (c *QuizController) RecordComment(ctx *gin.Context) {
	var req CommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sentiment := model.Sentiment(req.Sentiment)
	if sentiment == "" {
		sentiment = model.SentimentNeutral
	}

	comment, err := c.ScoringService.RecordComment(req.SessionID, req.StyleImageID, req.Text, sentiment, req.X, req.Y, req.Width, req.Height)
	if err != nil {
		quizError(ctx, err)
		return
	}

	util.Created(ctx, comment)
}

// swagger:model EventRequest
type EventRequest struct {
	SessionID       string `json:"sessionId" binding:"required"`
	InteractionType string `json:"interactionType" binding:"required"`
	ReactionTimeMs  *int   `json:"reactionTimeMs"`
	DecisionChange  bool   `json:"decisionChange"`
}

// RecordEvent godoc
// @Summary Record a raw interaction event
// @Tags quiz
// @Accept  json
// @Produce  json
// @Param   body body EventRequest true "Event payload"
// @Success 201 {object} util.Response "Created"
// @Failure 400 {object} util.Response "Invalid request"
// @Failure 404 {object} util.Response "Unknown session"
// @Router /api/quiz/event [post]
func (c *QuizController) RecordEvent(ctx *gin.Context) {
	var req EventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ScoringService.RecordEvent(req.SessionID, req.InteractionType, req.ReactionTimeMs, req.DecisionChange); err != nil {
		quizError(ctx, err)
		return
	}

	util.Created(ctx, nil)
}

// GetAnalytics godoc
// @Summary Get session analytics
// @Description Returns the raw event log plus derived insights
// @Tags quiz
// @Produce  json
// @Param   sessionId query string true "Session UUID"
// @Success 200 {object} util.Response{data=object} "Success"
// @Failure 400 {object} util.Response "Missing sessionId"
// @Router /api/quiz/analytics [get]
func (c *QuizController) GetAnalytics(ctx *gin.Context) {
	sessionID := ctx.Query("sessionId")
	if sessionID == "" {
		util.BadRequest(ctx, "sessionId is required")
		return
	}

	events, insights, err := c.InsightsService.GetSessionAnalytics(sessionID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"analytics": events,
		"insights":  insights,
	})
}
