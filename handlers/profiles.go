package handlers

import (
	"net/http"

	"devconnect/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetProfileByHandle(c *gin.Context) {
	ctx, cancel := h.ctx(c)
	defer cancel()

	profile, err := h.svc.Profiles.ByHandle(ctx, c.Param("handle"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) GetProfileByUser(c *gin.Context) {
	ctx, cancel := h.ctx(c)
	defer cancel()

	profile, err := h.svc.Profiles.ByUser(ctx, c.Param("user_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) GetProfiles(c *gin.Context) {
	ctx, cancel := h.ctx(c)
	defer cancel()

	profiles, err := h.svc.Profiles.All(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

func (h *Handler) GetMyProfile(c *gin.Context) {
	id, ok := h.identity(c)
	if !ok {
		return
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	profile, err := h.svc.Profiles.Own(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) UpsertProfile(c *gin.Context) {
	id, ok := h.identity(c)
	if !ok {
		return
	}
	var req models.ProfileEnvelope
	if !h.bind(c, &req) {
		return
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	profile, err := h.svc.Profiles.Upsert(ctx, id, req.Unwrap())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) AddExperience(c *gin.Context) {
	id, ok := h.identity(c)
	if !ok {
		return
	}
	var req models.ExperienceEnvelope
	if !h.bind(c, &req) {
		return
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	profile, err := h.svc.Profiles.AddExperience(ctx, id, req.Unwrap())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) DeleteExperience(c *gin.Context) {
	id, ok := h.identity(c)
	if !ok {
		return
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	profile, removed, err := h.svc.Profiles.DeleteExperience(ctx, id, c.Param("exp_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !removed {
		c.JSON(http.StatusOK, gin.H{"noexperience": "Either there is no experience for that id or it's already deleted"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) AddEducation(c *gin.Context) {
	id, ok := h.identity(c)
	if !ok {
		return
	}
	var req models.EducationEnvelope
	if !h.bind(c, &req) {
		return
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	profile, err := h.svc.Profiles.AddEducation(ctx, id, req.Unwrap())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) DeleteEducation(c *gin.Context) {
	id, ok := h.identity(c)
	if !ok {
		return
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	profile, removed, err := h.svc.Profiles.DeleteEducation(ctx, id, c.Param("edu_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !removed {
		c.JSON(http.StatusOK, gin.H{"noeducation": "Either there is no education background for that id or it's already deleted"})
		return
	}
	c.JSON(http.StatusOK, profile)
}
