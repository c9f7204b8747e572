package controllers

import (
	"net/http"

	"garagepro-backend/services"
	"garagepro-backend/utils"

	"github.com/gin-gonic/gin"
)

// UpsertTemplateInput defines the expected JSON structure
type UpsertTemplateInput struct {
	Type  string `json:"type" binding:"required,oneof=BIRTHDAY SHAKEN_2M SHAKEN_1W INSPECTION_1M CUSTOM"`
	Title string `json:"title"`
	Body  string `json:"body" binding:"required"`
	Note  string `json:"note"`
}

// GetTemplates lists the effective template of every category
func (rc *ReminderController) GetTemplates(c *gin.Context) {
	scope, err := resolveScope(c, c.Query("tenantId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	views, err := rc.Service.Templates(c.Request.Context(), scope)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// UpsertTemplate creates or replaces the caller tenant's template for a category
func (rc *ReminderController) UpsertTemplate(c *gin.Context) {
	var input UpsertTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	scope, err := resolveScope(c, c.Query("tenantId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	tpl, err := rc.Service.UpsertTemplate(c.Request.Context(), scope, services.TemplateInput{
		Type:  input.Type,
		Title: input.Title,
		Body:  input.Body,
		Note:  input.Note,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tpl)
}

// ResetTemplate deletes a category's template so the built-in text is used
func (rc *ReminderController) ResetTemplate(c *gin.Context) {
	scope, err := resolveScope(c, c.Query("tenantId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	deleted, err := rc.Service.ResetTemplate(c.Request.Context(), scope, c.Param("type"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !deleted {
		utils.RespondWithError(c, http.StatusNotFound, "Template not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Template reset to default"})
}
