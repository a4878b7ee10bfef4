// controllers/helpers.go
package controllers

import (
	"errors"
	"net/http"

	"petclinic-backend/models"
	"petclinic-backend/services"
	"petclinic-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RespondDomainError maps the engine's typed failures onto HTTP codes.
// Validation outcomes are 400, missing entities 404, conflicts and illegal
// lifecycle operations 409. Anything else is a storage error.
func RespondDomainError(c *gin.Context, err error) {
	var notFound *models.NotFoundError
	var invalidRange *models.InvalidTimeRangeError
	var conflict *models.ScheduleConflictError
	var unavailable *models.StaffUnavailableError
	var badTransition *models.InvalidStatusTransitionError
	var badOperation *models.InvalidOperationForStatusError

	switch {
	case errors.As(err, &notFound):
		utils.RespondWithError(c, http.StatusNotFound, notFound.Error())
	case errors.As(err, &invalidRange):
		utils.RespondWithError(c, http.StatusBadRequest, invalidRange.Error())
	case errors.Is(err, models.ErrNoServicesSpecified):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{
			"error":         conflict.Error(),
			"conflictStart": conflict.ConflictStart,
			"conflictEnd":   conflict.ConflictEnd,
		})
	case errors.As(err, &unavailable):
		utils.RespondWithError(c, http.StatusConflict, unavailable.Error())
	case errors.As(err, &badTransition):
		utils.RespondWithError(c, http.StatusConflict, badTransition.Error())
	case errors.As(err, &badOperation):
		utils.RespondWithError(c, http.StatusConflict, badOperation.Error())
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
	}
}

// principalFromContext rebuilds the caller principal from JWT claims set by
// the auth middleware.
func principalFromContext(c *gin.Context) (services.Principal, bool) {
	userID, exists := c.Get("userId")
	if !exists {
		return services.Principal{}, false
	}
	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		return services.Principal{}, false
	}

	principal := services.Principal{UserID: userUUID}
	if role, ok := c.Get("role"); ok {
		if r, ok := role.(string); ok {
			principal.Role = r
		}
	}
	if ownerID, ok := c.Get("ownerId"); ok {
		if o, ok := ownerID.(string); ok && o != "" {
			if ownerUUID, err := uuid.Parse(o); err == nil {
				principal.OwnerID = &ownerUUID
			}
		}
	}
	return principal, true
}

// parseUUIDParam reads a :id-style path parameter, responding 400 itself on
// malformed input.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	value, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return value, true
}
