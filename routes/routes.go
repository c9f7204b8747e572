package routes

import (
	"net/http"

	"garagepro-backend/config"
	"garagepro-backend/controllers"
	"garagepro-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type Deps struct {
	Settings  config.Settings
	Logger    zerolog.Logger
	Reminders *controllers.ReminderController
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	allowed := make(map[string]bool, len(d.Settings.CORSAllowedOrigins))
	for _, o := range d.Settings.CORSAllowedOrigins {
		allowed[o] = true
	}
	r.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) bool {
			return allowed[origin]
		},
	}))

	r.Use(config.RequestLogger(d.Logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware(d.Settings.JWTSecret))
	{
		reminders := api.Group("/reminders")
		{
			reminders.GET("/day", d.Reminders.PreviewDay)
			reminders.GET("/month", d.Reminders.PreviewMonth)
			reminders.POST("/run", d.Reminders.Run)
			reminders.POST("/bulk-send", d.Reminders.BulkSend)

			reminders.GET("/templates", d.Reminders.GetTemplates)
			reminders.PUT("/templates", d.Reminders.UpsertTemplate)
			reminders.DELETE("/templates/:type", d.Reminders.ResetTemplate)
		}
	}

	return r
}
