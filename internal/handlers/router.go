package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/applytrack/applytrack/internal/auth"
	"github.com/applytrack/applytrack/internal/store"
)

// NewRouter wires the full /api/v1 surface. Everything below the auth
// endpoints requires a bearer token.
func NewRouter(provider *auth.Provider, recordStore *store.Store) *gin.Engine {
	authHandler := NewAuthHandler(provider)
	recordHandler := NewRecordHandler(recordStore)

	r := gin.Default()
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true // For development only
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(config))

	api := r.Group("/api/v1")
	{
		api.GET("/health", HealthCheck)

		api.POST("/auth/signup", authHandler.SignUp)
		api.POST("/auth/signin", authHandler.SignIn)

		protected := api.Group("", RequireAuth(provider))
		{
			protected.GET("/applications", recordHandler.ListApplications)
			protected.POST("/applications", recordHandler.CreateApplication)
			protected.GET("/applications/:id", recordHandler.GetApplication)
			protected.PATCH("/applications/:id", recordHandler.UpdateApplication)
			protected.DELETE("/applications/:id", recordHandler.DeleteApplication)

			protected.GET("/tasks", recordHandler.ListTasks)
			protected.POST("/tasks", recordHandler.CreateTask)
			protected.GET("/tasks/:id", recordHandler.GetTask)
			protected.PATCH("/tasks/:id", recordHandler.UpdateTask)
			protected.DELETE("/tasks/:id", recordHandler.DeleteTask)
			protected.POST("/tasks/:id/toggle", recordHandler.ToggleTaskCompleted)
		}
	}
	return r
}
