package controllers

import (
	"errors"
	"net/http"

	"garagepro-backend/models"
	"garagepro-backend/services"
	"garagepro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// resolveScope turns the token claims into the tenant the request acts on.
// Platform admins must name the tenant; everyone else may only name their own.
func resolveScope(c *gin.Context, requestedTenant string) (models.Scope, error) {
	role := models.Role(c.GetString(utils.CtxRole))
	if !role.Valid() {
		return models.Scope{}, services.ErrNoTenantScope
	}
	scope := models.Scope{UserID: c.GetString(utils.CtxUserID), Role: role}

	if role == models.RolePlatformAdmin {
		if requestedTenant == "" {
			return models.Scope{}, services.ErrTenantRequired
		}
		id, err := uuid.Parse(requestedTenant)
		if err != nil {
			return models.Scope{}, services.ErrTenantRequired
		}
		scope.TenantID = id
		return scope, nil
	}

	own, err := uuid.Parse(c.GetString(utils.CtxTenantID))
	if err != nil || own == uuid.Nil {
		return models.Scope{}, services.ErrNoTenantScope
	}
	if requestedTenant != "" {
		requested, err := uuid.Parse(requestedTenant)
		if err != nil || requested != own {
			return models.Scope{}, services.ErrForbiddenTenant
		}
	}
	scope.TenantID = own
	return scope, nil
}

// respondServiceError maps service errors onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case services.IsValidation(err):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrTenantRequired):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNoTenantScope):
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrForbiddenTenant), errors.Is(err, services.ErrReadOnly):
		utils.RespondWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrTenantNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Tenant not found")
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		utils.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}
