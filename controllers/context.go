package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"feedback-hero/utils"
)

// currentBusinessID resolves the authenticated business id injected by the
// auth middleware. It responds with the appropriate error itself so handlers
// can simply return on !ok.
func currentBusinessID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := utils.BusinessID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Business ID not found in context")
		return uuid.Nil, false
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid business ID format")
		return uuid.Nil, false
	}
	return parsed, true
}
