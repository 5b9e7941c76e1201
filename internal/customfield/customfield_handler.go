package customfield

import (
	"net/http"

	customfielderrors "github.com/ASARUDHEEN-MP/Employee-managment/internal/customfield/errors"
	"github.com/ASARUDHEEN-MP/Employee-managment/internal/shared/apperror"
	"github.com/ASARUDHEEN-MP/Employee-managment/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("customfield.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("customfield.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("custom field request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	userID := c.GetString("user_id")
	h.logger.Debug("http create custom field", zap.String("user_id", userID))
	var req CreateCustomFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create custom field validation failed", zap.Error(err))
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

func (h *Handler) List(c *gin.Context) {
	userID := c.GetString("user_id")
	h.logger.Debug("http list custom fields", zap.String("user_id", userID))

	resp, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	userID := c.GetString("user_id")
	h.logger.Debug("http delete custom field",
		zap.String("user_id", userID),
		zap.String("field_id", id),
	)
	if _, err := uuid.Parse(id); err != nil {
		h.writeServiceError(c, customfielderrors.ErrInvalidCustomFieldID)
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
