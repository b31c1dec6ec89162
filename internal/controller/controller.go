package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/kioku/internal/apperr"
	"github.com/lshigami/kioku/internal/dto"
	"github.com/lshigami/kioku/internal/model"
	"github.com/lshigami/kioku/internal/service"
	"github.com/rs/zerolog/log"
)

// respondError maps the service error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperr.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperr.ErrAuth):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperr.ErrNetwork):
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
	default:
		log.Error().Err(err).Msg("Unhandled service error")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
}

func bindError(c *gin.Context, err error) {
	log.Warn().Err(err).Str("path", c.FullPath()).Msg("Failed to bind request")
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
}

// activeUser resolves the logged-in profile for handlers that scope data to
// the current user. Writes a 401 and returns nil when nobody is logged in.
func activeUser(c *gin.Context, userSvc service.UserService) *model.LocalUser {
	user, err := userSvc.ActiveUser()
	if err != nil {
		respondError(c, err)
		return nil
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "no user is logged in"})
		return nil
	}
	return user
}
