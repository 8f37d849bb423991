package controller

import (
	"artscore_backend/internal/service"
	"artscore_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	CatalogService *service.CatalogService
}

func NewCatalogController(catalogService *service.CatalogService) *CatalogController {
	return &CatalogController{CatalogService: catalogService}
}

// GetStyles godoc
// @Summary List styles
// @Description Styles with their images and detail tags
// @Tags catalog
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Style} "Success"
// @Router /api/quiz/styles [get]
func (c *CatalogController) GetStyles(ctx *gin.Context) {
	styles, err := c.CatalogService.GetStyles(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, styles)
}

// GetDetails godoc
// @Summary List details
// @Tags catalog
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Detail} "Success"
// @Router /api/quiz/details [get]
func (c *CatalogController) GetDetails(ctx *gin.Context) {
	details, err := c.CatalogService.GetDetails(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, details)
}

// GetRooms godoc
// @Summary List rooms
// @Tags catalog
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Room} "Success"
// @Router /api/rooms [get]
func (c *CatalogController) GetRooms(ctx *gin.Context) {
	rooms, err := c.CatalogService.GetRooms(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rooms)
}

// GetQuestions godoc
// @Summary List quiz questions
// @Tags catalog
// @Produce  json
// @Param   quizId query string true "Quiz identifier"
// @Success 200 {object} util.Response{data=[]model.QuizQuestion} "Success"
// @Router /api/quiz/questions [get]
func (c *CatalogController) GetQuestions(ctx *gin.Context) {
	quizID := ctx.Query("quizId")
	if quizID == "" {
		util.BadRequest(ctx, "quizId is required")
		return
	}
	questions, err := c.CatalogService.GetQuestions(ctx.Request.Context(), quizID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}
