package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/telmov/inkpress/internal/auth"
)

// NewRouter assembles the API routes. Draft roles and ownership are enforced
// inside the services; the router only gates on having a valid token.
func NewRouter(tm *auth.TokenManager, authH *AuthHandler, draftH *DraftHandler, blogH *BlogHandler, l zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(l))

	api := r.Group("/api")

	api.POST("/auth/login", authH.Login)
	api.POST("/auth/register", authH.Register)

	api.GET("/blog", blogH.Newest)
	api.GET("/blog/:id", blogH.Get)

	authed := api.Group("", auth.Authenticate(tm))

	authed.GET("/auth/userinfo", authH.UserInfo)

	authed.GET("/draft", draftH.List)
	authed.POST("/draft", draftH.Create)
	authed.GET("/draft/:id", draftH.Get)
	authed.PUT("/draft/:id", draftH.Update)
	authed.DELETE("/draft/:id", draftH.Delete)

	authed.POST("/blog/:id/comment", blogH.CreateComment)

	return r
}

func requestLogger(l zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		l.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("Request")
	}
}
