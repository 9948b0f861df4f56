package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"healthrecord/internal/apperrors"
	"healthrecord/internal/middleware"
)

// respondError writes {success:false, message[, error]}. Underlying causes
// are only exposed outside production.
func respondError(c *gin.Context, err error, production bool) {
	status := apperrors.HTTPStatus(err)
	body := gin.H{
		"success": false,
		"message": apperrors.PublicMessage(err),
	}
	switch {
	case status >= http.StatusInternalServerError && production:
		body["error"] = "Internal server error"
	case status >= http.StatusInternalServerError, apperrors.HasCause(err):
		if !production {
			body["error"] = apperrors.Cause(err)
		}
	}
	_ = c.Error(err)
	c.JSON(status, body)
}

func currentUserID(c *gin.Context) (uint, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Login first - No token provided",
		})
		return 0, false
	}
	return id, true
}

func parseIDParam(c *gin.Context, name, message string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": message,
			"error":   "ID must be a valid positive integer",
		})
		return 0, false
	}
	return uint(id), true
}
