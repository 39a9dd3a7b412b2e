package handlers

import (
	"net/http"

	"devconnect/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Signup(c *gin.Context) {
	var req models.SignupEnvelope
	if !h.bind(c, &req) {
		return
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	user, err := h.svc.Users.Signup(ctx, req.Unwrap())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "201",
		"message": "You have successfully signed up, welcome...",
		"user": gin.H{
			"confirmed": user.Confirmed,
			"_id":       user.ID,
			"name":      user.Name,
			"email":     user.Email,
		},
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req models.LoginEnvelope
	if !h.bind(c, &req) {
		return
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	result, err := h.svc.Users.Login(ctx, req.Unwrap())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "200",
		"message": "You have logged in as " + result.User.Email,
		"user": gin.H{
			"email":  result.User.Email,
			"token":  result.Token,
			"name":   result.User.Name,
			"avatar": result.User.Avatar,
		},
		"token": result.Token,
	})
}

func (h *Handler) CurrentUser(c *gin.Context) {
	id, ok := h.identity(c)
	if !ok {
		return
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	user, err := h.svc.Users.Current(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"_id":   user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

// DeleteAccount removes the caller's profile and account.
func (h *Handler) DeleteAccount(c *gin.Context) {
	id, ok := h.identity(c)
	if !ok {
		return
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	if err := h.svc.Users.DeleteAccount(ctx, id); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User account successfully deleted"})
}
