package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rental-backend/services"
)

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

// JSONResults is the search response shape.
func JSONResults(c *gin.Context, results interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "results": results})
}

type errorMapping struct {
	kind    error
	status  int
	message string
}

// One translation table at the boundary: every handler funnels service
// errors through here so equal kinds always map to equal statuses.
var errorTable = []errorMapping{
	{services.ErrInvalidPeriod, http.StatusBadRequest, "Invalid stay duration"},
	{services.ErrInvalidDate, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD"},
	{services.ErrInvalidDecision, http.StatusBadRequest, "Decision must be accept or reject"},
	{services.ErrInvalidChoice, http.StatusBadRequest, "Invalid value for a restricted field"},
	{services.ErrMissingField, http.StatusBadRequest, "Required field missing"},
	{services.ErrRoomNotFound, http.StatusNotFound, "Room not found"},
	{services.ErrProposalNotFound, http.StatusNotFound, "Proposal not found"},
	{services.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{services.ErrNotFound, http.StatusNotFound, "Resource not found"},
	{services.ErrAlreadyReviewed, http.StatusConflict, "Proposal has already been reviewed"},
	{services.ErrDuplicateIdentity, http.StatusConflict, "Username or e-mail already in use"},
}

// JSONFail writes the structured failure response for err.
func JSONFail(c *gin.Context, err error) {
	for _, m := range errorTable {
		if errors.Is(err, m.kind) {
			c.JSON(m.status, gin.H{
				"success": false,
				"error":   gin.H{"kind": m.kind.Error(), "message": m.message},
			})
			return
		}
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   gin.H{"kind": "internal", "message": "Internal server error"},
	})
}

// JSONBadRequest reports a malformed payload before it reaches a
// service.
func JSONBadRequest(c *gin.Context, detail string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   gin.H{"kind": "invalid_payload", "message": detail},
	})
}
