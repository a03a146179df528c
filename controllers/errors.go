package controllers

import (
	"errors"
	"net/http"

	"github.com/barrelborn/digital-menu/database"
	"github.com/barrelborn/digital-menu/services"
	"github.com/barrelborn/digital-menu/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// respondServiceError maps service errors onto status codes. Anything
// unexpected is logged in full and answered with the safe message.
func respondServiceError(c *gin.Context, err error, safeMessage string) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.RespondError(c, http.StatusBadRequest, verr)
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.RespondError(c, http.StatusUnauthorized, err)
	case errors.Is(err, database.ErrNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	default:
		_ = c.Error(err)
		utils.ErrorLogger.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
			"error":  err,
		}).Error(safeMessage)
		utils.RespondMessage(c, http.StatusInternalServerError, safeMessage)
	}
}

// respondBindError answers a body or query that could not be decoded.
func respondBindError(c *gin.Context, message string, err error) {
	utils.InfoLogger.WithError(err).Debug("request binding failed")
	utils.RespondMessage(c, http.StatusBadRequest, message)
}
