package routes

import (
	"net/http"
	"strings"
	"time"

	"devconnect/auth"
	"devconnect/handlers"
	"devconnect/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Deps struct {
	Handler        *handlers.Handler
	Tokens         *auth.TokenService
	Metrics        *middleware.Metrics
	Log            *zap.Logger
	AllowedOrigins []string
}

func SetupRouter(d Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ZapLogger(d.Log))
	if d.Metrics != nil {
		router.Use(d.Metrics.Handler())
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     d.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	if d.Metrics != nil {
		router.GET("/metrics", d.Metrics.Expose())
	}

	h := d.Handler
	requireAuth := middleware.JWTAuthMiddleware(d.Tokens, d.Log)

	users := router.Group("/api/users")
	users.POST("/signup", h.Signup)
	users.POST("/login", h.Login)
	users.GET("/current", requireAuth, h.CurrentUser)

	profiles := router.Group("/api/profiles")
	profiles.GET("/handle/:handle", h.GetProfileByHandle)
	profiles.GET("/user/:user_id", h.GetProfileByUser)
	profiles.GET("/all", h.GetProfiles)
	profiles.GET("", requireAuth, h.GetMyProfile)
	profiles.POST("", requireAuth, h.UpsertProfile)
	profiles.DELETE("", requireAuth, h.DeleteAccount)
	profiles.POST("/experience", requireAuth, h.AddExperience)
	profiles.DELETE("/experience/:exp_id", requireAuth, h.DeleteExperience)
	profiles.POST("/education", requireAuth, h.AddEducation)
	profiles.DELETE("/education/:edu_id", requireAuth, h.DeleteEducation)

	posts := router.Group("/api/posts")
	posts.POST("", requireAuth, h.CreatePost)
	posts.GET("/all", h.GetPosts)
	posts.GET("/:post_id", h.GetPost)
	posts.DELETE("/:post_id", requireAuth, h.DeletePost)
	posts.POST("/like/:post_id", requireAuth, h.LikePost)
	posts.DELETE("/like/:post_id", requireAuth, h.UnlikePost)
	posts.POST("/unlike/:post_id", requireAuth, h.UnlikePost)
	posts.POST("/comments/:post_id", requireAuth, h.CommentPost)
	posts.DELETE("/comments/:post_id/:comment_id", requireAuth, h.DeleteComment)

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Endpoint not found",
				"path":  c.Request.URL.Path,
			})
			return
		}
		c.Status(http.StatusNotFound)
	})

	return router
}
