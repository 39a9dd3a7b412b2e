package handlers

import (
	"net/http"

	"devconnect/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreatePost(c *gin.Context) {
	id, ok := h.identity(c)
	if !ok {
		return
	}
	var req models.PostEnvelope
	if !h.bind(c, &req) {
		return
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	post, err := h.svc.Posts.Create(ctx, id, req.Unwrap())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *Handler) GetPosts(c *gin.Context) {
	ctx, cancel := h.ctx(c)
	defer cancel()

	posts, err := h.svc.Posts.All(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *Handler) GetPost(c *gin.Context) {
	ctx, cancel := h.ctx(c)
	defer cancel()

	post, err := h.svc.Posts.Get(ctx, c.Param("post_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *Handler) DeletePost(c *gin.Context) {
	id, ok := h.identity(c)
	if !ok {
		return
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	if err := h.svc.Posts.Delete(ctx, id, c.Param("post_id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": "The post has been deleted"})
}

func (h *Handler) LikePost(c *gin.Context) {
	id, ok := h.identity(c)
	if !ok {
		return
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	post, err := h.svc.Posts.Like(ctx, id, c.Param("post_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"liked": "Post liked", "post": post})
}

func (h *Handler) UnlikePost(c *gin.Context) {
	id, ok := h.identity(c)
	if !ok {
		return
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	post, err := h.svc.Posts.Unlike(ctx, id, c.Param("post_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unlike": "You have unliked post", "post": post})
}

func (h *Handler) CommentPost(c *gin.Context) {
	id, ok := h.identity(c)
	if !ok {
		return
	}
	var req models.TextRequest
	if !h.bind(c, &req) {
		return
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	post, err := h.svc.Posts.Comment(ctx, id, c.Param("post_id"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"comment": "Post commented", "post": post})
}

func (h *Handler) DeleteComment(c *gin.Context) {
	id, ok := h.identity(c)
	if !ok {
		return
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	post, removed, err := h.svc.Posts.DeleteComment(ctx, id, c.Param("post_id"), c.Param("comment_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !removed {
		c.JSON(http.StatusOK, gin.H{"nocomment": "Either the comment was deleted or does not exist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"comment": "The comment was successfully deleted", "post": post})
}
