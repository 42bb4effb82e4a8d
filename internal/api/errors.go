package api

import (
	"net/http"

	"liftlog/workout-app/internal/apperr"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// respondError translates a service error into an HTTP response. Kinded
// errors carry a safe message; anything else is logged and masked as a 500.
func respondError(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		abortWithError(c, http.StatusNotFound, err.Error())
	case apperr.KindForbidden:
		abortWithError(c, http.StatusForbidden, err.Error())
	case apperr.KindAlreadyExists:
		abortWithError(c, http.StatusConflict, err.Error())
	case apperr.KindMaxLimit:
		abortWithError(c, http.StatusConflict, err.Error())
	case apperr.KindInvalidRoutine, apperr.KindMisc:
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		log.WithError(err).WithField("path", c.FullPath()).Error("unhandled service error")
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
