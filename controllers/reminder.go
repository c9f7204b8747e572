// controllers/reminder.go
package controllers

import (
	"net/http"

	"garagepro-backend/services"
	"garagepro-backend/utils"

	"github.com/gin-gonic/gin"
)

type ReminderController struct {
	Service *services.ReminderService
}

// RunInput defines the expected JSON structure for a daily run
type RunInput struct {
	Date     string `json:"date" binding:"required"`
	TenantID string `json:"tenantId"`
}

// BulkSendInput defines the expected JSON structure for a month bulk send
type BulkSendInput struct {
	Month    string `json:"month" binding:"required"`
	TenantID string `json:"tenantId"`
	ItemIDs  []int  `json:"itemIds" binding:"required"`
}

// PreviewDay returns the five hit lists for ?date=YYYY-MM-DD
func (rc *ReminderController) PreviewDay(c *gin.Context) {
	scope, err := resolveScope(c, c.Query("tenantId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	day, err := services.ParseDate(c.Query("date"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	hits, err := rc.Service.PreviewDay(c.Request.Context(), scope, day)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, hits)
}

// PreviewMonth returns the day summaries and items for ?month=YYYY-MM
func (rc *ReminderController) PreviewMonth(c *gin.Context) {
	scope, err := resolveScope(c, c.Query("tenantId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	preview, err := rc.Service.PreviewMonth(c.Request.Context(), scope, c.Query("month"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, preview)
}

// Run sends and logs the reminders of one day
func (rc *ReminderController) Run(c *gin.Context) {
	var input RunInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	scope, err := resolveScope(c, input.TenantID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	day, err := services.ParseDate(input.Date)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	result, err := rc.Service.RunDay(c.Request.Context(), scope, day)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// BulkSend sends the selected items of a month
func (rc *ReminderController) BulkSend(c *gin.Context) {
	var input BulkSendInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	scope, err := resolveScope(c, input.TenantID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	result, err := rc.Service.BulkSend(c.Request.Context(), scope, input.Month, input.ItemIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
