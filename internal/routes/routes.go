package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/01moynul/travelschedule-golang/internal/config"
	"github.com/01moynul/travelschedule-golang/internal/handlers"
	"github.com/01moynul/travelschedule-golang/internal/middleware"
)

// corsConfig lets the configured frontends send credentialed requests with a JWT.
func corsConfig(origins []string) cors.Config {
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

func SetupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.Default()

	// --- APPLY THE CORS GUARD ---
	// This must be the very first thing the router uses
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	// Uploaded plan pictures are served as static files.
	router.Static("/uploads", cfg.UploadDir)

	v1 := router.Group("/v1")
	{
		// --- Ping Route (Public) ---
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Auth Routes (Public) ---
		v1.POST("/register", h.Register)
		v1.POST("/login", h.Login)

		// --- Reference Data (Public) ---
		v1.GET("/transportations", h.GetTransportations)

		// --- Protected Routes (Login Required) ---
		auth := v1.Group("/")
		auth.Use(middleware.AuthMiddleware(h.Issuer))
		{
			// --- My Page ---
			auth.GET("/me", h.Me)
			auth.PATCH("/me/name", h.ChangeName)
			auth.PATCH("/me/email", h.ChangeEmail)
			auth.PATCH("/me/password", h.ChangePassword)

			// --- Schedules ---
			auth.GET("/schedules", h.GetMySchedules)
			auth.POST("/schedules", h.CreateSchedule)
			auth.GET("/schedules/:id", h.GetSchedule)
			auth.PUT("/schedules/:id", h.UpdateSchedule)
			auth.DELETE("/schedules/:id", h.DeleteSchedule)
			auth.POST("/schedules/:id/advice", h.ScheduleAdvice)

			// --- Plans ---
			auth.POST("/schedules/:id/plans", h.CreatePlan)
			auth.PUT("/schedules/:id/plans/:planID", h.UpdatePlan)
			auth.DELETE("/schedules/:id/plans/:planID", h.DeletePlan)

			// --- Pictures ---
			auth.POST("/schedules/:id/plans/:planID/pictures", h.UploadPictures)
			auth.DELETE("/schedules/:id/plans/:planID/pictures/:pictureID", h.DeletePicture)
		}
	}

	return router
}
