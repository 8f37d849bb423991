package controller

import (
	"artscore_backend/internal/service"
	"artscore_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	SettingsService *service.SettingsService
}

func NewSettingsController(settingsService *service.SettingsService) *SettingsController {
	return &SettingsController{SettingsService: settingsService}
}

// GetSettings godoc
// @Summary List all settings
// @Tags admin
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Setting} "Success"
// @Router /api/admin/settings [get]
func (c *SettingsController) GetSettings(ctx *gin.Context) {
	settings, err := c.SettingsService.GetAll()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, settings)
}

// UpdateSettings godoc
// @Summary Update settings
// @Description Upserts the given key/value pairs
// @Tags admin
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body object true "Key/value map"
// @Success 200 {object} util.Response "Success"
// @Failure 400 {object} util.Response "Invalid request"
// @Router /api/admin/settings [put]
func (c *SettingsController) UpdateSettings(ctx *gin.Context) {
	var values map[string]string
	if err := ctx.ShouldBindJSON(&values); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if len(values) == 0 {
		util.BadRequest(ctx, "no settings provided")
		return
	}

	if err := c.SettingsService.Update(values); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
