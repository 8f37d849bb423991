package controller

import (
	"errors"
	"strconv"

	"artscore_backend/internal/model"
	"artscore_backend/internal/service"
	"artscore_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LeadController struct {
	LeadService *service.LeadService
}

func NewLeadController(leadService *service.LeadService) *LeadController {
	return &LeadController{LeadService: leadService}
}

// swagger:model SubmitLeadRequest
type SubmitLeadRequest struct {
	CustomerName string `json:"customerName" binding:"required"`
	Email        string `json:"email" binding:"omitempty,email"`
	Phone        string `json:"phone"`
	Notes        string `json:"notes"`
}

// SubmitLead godoc
// @Summary Submit a customer lead
// @Description Creates a lead attributed to the authenticated partner
// @Tags leads
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   X-CSRF-Token header string true "CSRF token"
// @Param   body body SubmitLeadRequest true "Lead payload"
// @Success 201 {object} util.Response{data=model.Lead} "Created"
// @Failure 400 {object} util.Response "Invalid request"
// @Failure 403 {object} util.Response "Missing or invalid CSRF token"
// @Router /api/leads [post]
func (c *LeadController) SubmitLead(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitLeadRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lead := &model.Lead{
		PartnerID:    claims.UserID,
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Phone:        req.Phone,
		Notes:        req.Notes,
	}

	if err := c.LeadService.SubmitLead(lead); err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.BadRequest(ctx, "unknown partner")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, lead)
}

// ListLeads godoc
// @Summary List leads
// @Description Partners see only their own leads; admins see all
// @Tags leads
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "Page number" default(1)
// @Param   limit query int false "Page size" default(20)
// @Param   status query string false "Filter by status"
// @Param   search query string false "Match against customer name or email"
// @Success 200 {object} util.Response{data=util.PageResponse} "Success"
// @Router /api/leads [get]
func (c *LeadController) ListLeads(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	status := ctx.Query("status")
	search := ctx.Query("search")

	// Admins query across all partners.
	partnerID := claims.UserID
	if claims.Role == model.Admin {
		partnerID = 0
	}

	leads, total, err := c.LeadService.ListLeads(page, limit, partnerID, status, search)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  leads,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// GetLead godoc
// @Summary Get one lead
// @Tags leads
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Lead ID"
// @Success 200 {object} util.Response{data=model.Lead} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/leads/{id} [get]
func (c *LeadController) GetLead(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid lead id")
		return
	}

	lead, err := c.LeadService.GetLead(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrLeadNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	if claims.Role != model.Admin && lead.PartnerID != claims.UserID {
		util.Forbidden(ctx)
		return
	}

	util.Success(ctx, lead)
}

// swagger:model UpdateLeadStatusRequest
type UpdateLeadStatusRequest struct {
	Status     string   `json:"status" binding:"required,oneof=new contacted qualified won lost"`
	Commission *float64 `json:"commission"`
}

// UpdateStatus godoc
// @Summary Move a lead through the pipeline
// @Description Applies a status transition; illegal transitions are rejected
// @Tags admin
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Lead ID"
// @Param   body body UpdateLeadStatusRequest true "Target status and optional commission"
// @Success 200 {object} util.Response{data=model.Lead} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Failure 422 {object} util.Response "Illegal status transition"
// @Router /api/admin/leads/{id}/status [patch]
func (c *LeadController) UpdateStatus(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid lead id")
		return
	}

	var req UpdateLeadStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lead, err := c.LeadService.UpdateStatus(uint(id), model.LeadStatus(req.Status), req.Commission)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrLeadNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrInvalidTransition):
			util.Error(ctx, 422, "illegal status transition")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, lead)
}
