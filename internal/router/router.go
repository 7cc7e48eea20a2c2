package router

import (
	"os"

	"miniblog/internal/handlers"
	"miniblog/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// New builds the engine with sessions, templates and all routes wired to
// the given database handle.
func New(database *gorm.DB, templatesDir string) *gin.Engine {
	r := gin.Default()

	// Setup Sessions
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("miniblog_session", store))

	r.HTMLRender = loadTemplates(templatesDir)

	r.Use(middleware.LoadUser(database))

	// Handlers
	authHandler := handlers.NewAuthHandler(database)
	blogHandler := handlers.NewBlogHandler(database)

	// Public Routes
	r.GET("/", blogHandler.Index)
	r.GET("/:id/view", blogHandler.View)
	r.POST("/:id/view", blogHandler.VoteView) // any logged-in user may vote here

	r.GET("/auth/register", authHandler.ShowRegister)
	r.POST("/auth/register", authHandler.Register)
	r.GET("/auth/login", authHandler.ShowLogin)
	r.POST("/auth/login", authHandler.Login)
	r.GET("/auth/logout", authHandler.Logout)

	// Protected Routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/create", blogHandler.ShowCreate)
		authorized.POST("/create", blogHandler.Create)
		authorized.GET("/:id/update", blogHandler.ShowUpdate)
		authorized.POST("/:id/update", blogHandler.Update)
		authorized.POST("/:id/delete", blogHandler.Delete)
	}

	return r
}
