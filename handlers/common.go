package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"devconnect/apperror"
	"devconnect/auth"
	"devconnect/middleware"
	"devconnect/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultTimeout = 10 * time.Second

type Handler struct {
	svc     *service.Services
	timeout time.Duration
	log     *zap.Logger
}

func New(svc *service.Services, timeout time.Duration, log *zap.Logger) *Handler {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{svc: svc, timeout: timeout, log: log}
}

func (h *Handler) ctx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

// respondError writes err using its apperror kind. Server errors are logged
// and replaced by a generic body.
func (h *Handler) respondError(c *gin.Context, err error) {
	appErr := apperror.As(err)
	if appErr.Kind == apperror.KindServer {
		h.log.Error("request failed",
			zap.Error(appErr),
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString(middleware.RequestIDContextKey)),
		)
		_ = c.Error(appErr)
	}
	c.JSON(appErr.Kind.HTTPStatus(), appErr.ToJSON())
}

// bind decodes a JSON body into dst. An empty body leaves dst zero so the
// validators can report the missing fields.
func (h *Handler) bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return false
	}
	return true
}

func (h *Handler) identity(c *gin.Context) (*auth.Identity, bool) {
	id, ok := middleware.Identity(c)
	if !ok {
		h.respondError(c, apperror.ErrMissingToken)
	}
	return id, ok
}
