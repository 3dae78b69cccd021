package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Freeeeeet/drivelead_bot/internal/service"
)

type errorBody struct {
	Detail string `json:"detail"`
}

// errBadParam ошибка разбора параметра запроса
type errBadParam struct {
	name string
}

func (e *errBadParam) Error() string {
	return "invalid parameter " + e.name
}

// errorResponse переводит ошибку в HTTP-ответ с полем detail
func (h *Handler) errorResponse(c echo.Context, err error) error {
	var badParam *errBadParam
	switch {
	case errors.As(err, &badParam):
		return c.JSON(http.StatusBadRequest, errorBody{Detail: badParam.Error()})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorBody{Detail: "Not found"})
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrInvalidStatus):
		h.logger.Warn("Request rejected",
			zap.String("path", c.Path()),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, errorBody{Detail: err.Error()})
	}

	h.logger.Error("Request failed",
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()),
		zap.Error(err))
	return c.JSON(http.StatusInternalServerError, errorBody{Detail: "internal error"})
}
