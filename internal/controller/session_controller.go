package controller

import (
	"errors"

	"artscore_backend/internal/model"
	"artscore_backend/internal/service"
	"artscore_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	Orchestrator *service.Orchestrator
}

func NewSessionController(orchestrator *service.Orchestrator) *SessionController {
	return &SessionController{Orchestrator: orchestrator}
}

func sessionError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrSessionNotFound), errors.Is(err, util.ErrRoomNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrSessionCompleted):
		util.Error(ctx, 409, "session is already completed")
	case errors.Is(err, util.ErrWrongPhase):
		util.Error(ctx, 409, "operation not allowed in the current phase")
	case errors.Is(err, util.ErrPairModeUnsupported):
		util.Error(ctx, 422, "pair mode is not supported")
	default:
		util.LogInternalError(ctx, err)
	}
}

// swagger:model StartSessionRequest
type StartSessionRequest struct {
	QuizID string `json:"quizId" binding:"required"`
}

// StartSession godoc
// @Summary Start a quiz session
// @Description Creates a session in the mode-selection phase
// @Tags session
// @Accept  json
// @Produce  json
// @Param   body body StartSessionRequest true "Quiz identifier"
// @Success 201 {object} util.Response{data=model.QuizSession} "Created"
// @Failure 400 {object} util.Response "Invalid request"
// @Router /api/quiz/session [post]
func (c *SessionController) StartSession(ctx *gin.Context) {
	var req StartSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var userID *uint
	if claims := util.GetUserFromContext(ctx); claims != nil {
		userID = &claims.UserID
	}

	session, err := c.Orchestrator.StartSession(req.QuizID, userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, session)
}

// GetSession godoc
// @Summary Get session state
// @Tags session
// @Produce  json
// @Param   id path string true "Session UUID"
// @Success 200 {object} util.Response{data=model.QuizSession} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/quiz/session/{id} [get]
func (c *SessionController) GetSession(ctx *gin.Context) {
	session, err := c.Orchestrator.GetSession(ctx.Param("id"))
	if err != nil {
		sessionError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

// swagger:model SelectModeRequest
type SelectModeRequest struct {
	Mode string `json:"mode" binding:"required,oneof=single pair"`
}

// SelectMode godoc
// @Summary Choose the quiz mode
// @Tags session
// @Accept  json
// @Produce  json
// @Param   id path string true "Session UUID"
// @Param   body body SelectModeRequest true "Mode"
// @Success 200 {object} util.Response{data=model.QuizSession} "Success"
// @Failure 409 {object} util.Response "Wrong phase"
// @Failure 422 {object} util.Response "Pair mode unsupported"
// @Router /api/quiz/session/{id}/mode [post]
func (c *SessionController) SelectMode(ctx *gin.Context) {
	var req SelectModeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.Orchestrator.SelectMode(ctx.Param("id"), model.QuizMode(req.Mode))
	if err != nil {
		sessionError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

// swagger:model SelectRoomRequest
type SelectRoomRequest struct {
	RoomID uint `json:"roomId" binding:"required"`
}

// SelectRoom godoc
// @Summary Choose the room
// @Tags session
// @Accept  json
// @Produce  json
// @Param   id path string true "Session UUID"
// @Param   body body SelectRoomRequest true "Room"
// @Success 200 {object} util.Response{data=model.QuizSession} "Success"
// @Failure 404 {object} util.Response "Unknown room"
// @Failure 409 {object} util.Response "Wrong phase"
// @Router /api/quiz/session/{id}/room [post]
func (c *SessionController) SelectRoom(ctx *gin.Context) {
	var req SelectRoomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.Orchestrator.SelectRoom(ctx.Param("id"), req.RoomID)
	if err != nil {
		sessionError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

// swagger:model AdvanceRequest
type AdvanceRequest struct {
	// StyleScores carries per-style deltas for narrow-down and playoff rounds.
	StyleScores map[uint]float64 `json:"styleScores"`
	// DetailScores carries per-detail deltas for the material round.
	DetailScores map[uint]float64 `json:"detailScores"`
	// Outcome reports the details round result: all_liked, all_disliked or mixed.
	Outcome string `json:"outcome" binding:"omitempty,oneof=all_liked all_disliked mixed"`
}

// Advance godoc
// @Summary Complete the current round
// @Description Merges the round payload and moves the session to its next phase; which payload field applies depends on the phase being closed
// @Tags session
// @Accept  json
// @Produce  json
// @Param   id path string true "Session UUID"
// @Param   body body AdvanceRequest true "Round payload"
// @Success 200 {object} util.Response{data=model.QuizSession} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Failure 409 {object} util.Response "Wrong phase or completed"
// @Router /api/quiz/session/{id}/advance [post]
func (c *SessionController) Advance(ctx *gin.Context) {
	id := ctx.Param("id")

	var req AdvanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	current, err := c.Orchestrator.GetSession(id)
	if err != nil {
		sessionError(ctx, err)
		return
	}

	var session *model.QuizSession
	switch current.Phase {
	case model.PhaseStyleSwipe:
		session, err = c.Orchestrator.CompleteStyleSwipe(id)
	case model.PhaseNarrowDown:
		session, err = c.Orchestrator.CompleteNarrowDown(id, req.StyleScores)
	case model.PhaseMaterialSelection:
		session, err = c.Orchestrator.CompleteMaterialSelection(id, req.DetailScores)
	case model.PhasePlayoffRound:
		session, err = c.Orchestrator.CompletePlayoff(id, req.StyleScores)
	case model.PhaseDetailsRound:
		session, err = c.Orchestrator.CompleteDetailsRound(id, service.DetailsOutcome(req.Outcome))
	default:
		err = util.ErrWrongPhase
	}
	if err != nil {
		sessionError(ctx, err)
		return
	}

	util.Success(ctx, session)
}

// GetResults godoc
// @Summary Get session results
// @Description Ranked styles plus liked and disliked details; only available in the results phase
// @Tags session
// @Produce  json
// @Param   id path string true "Session UUID"
// @Success 200 {object} util.Response{data=service.SessionResults} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Failure 409 {object} util.Response "Session not finished"
// @Router /api/quiz/session/{id}/results [get]
func (c *SessionController) GetResults(ctx *gin.Context) {
	results, err := c.Orchestrator.Results(ctx.Param("id"))
	if err != nil {
		sessionError(ctx, err)
		return
	}
	util.Success(ctx, results)
}
