package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"rental-backend/controllers"
	"rental-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires the controllers onto the route tree. The renter
// surface lives at the root; everything manager-facing sits under
// /api.
func SetupRouter(
	sc *controllers.SearchController,
	rc *controllers.RoomController,
	pc *controllers.ProposalController,
	uc *controllers.UserController,
	cc *controllers.CatalogController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Renter-facing surface
	r.POST("/search", sc.Search)
	r.GET("/room/:id", rc.GetRoom)
	r.POST("/proposal", pc.Submit)
	r.GET("/proposal/:id", pc.Get)

	api := r.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("", uc.Create)
			users.PUT("/:id", uc.Update)
		}

		proposals := api.Group("/proposals")
		{
			proposals.POST("/:id/review", pc.Review)
		}

		destinations := api.Group("/destinations")
		{
			destinations.GET("", cc.ListDestinations)
			destinations.POST("", cc.CreateDestination)
		}

		properties := api.Group("/properties")
		{
			properties.POST("", cc.CreateProperty)
			properties.PATCH("/:id", cc.UpdateProperty)
			properties.PUT("/:id", cc.UpdateProperty)
			properties.DELETE("/:id", cc.DeleteProperty)
		}

		rooms := api.Group("/rooms")
		{
			rooms.POST("", cc.CreateRoom)
			rooms.PATCH("/:id", cc.UpdateRoom)
			rooms.PUT("/:id", cc.UpdateRoom)
			rooms.DELETE("/:id", cc.DeleteRoom)

			rooms.PUT("/:id/prices", cc.SetRoomPrice)
			rooms.DELETE("/:id/prices/:period", cc.DeleteRoomPrice)

			rooms.POST("/:id/photos", cc.AddRoomPhoto)

			rooms.POST("/:id/features", cc.AddRoomFeature)
			rooms.DELETE("/:id/features/:featureId", cc.RemoveRoomFeature)
		}

		photos := api.Group("/photos")
		{
			photos.DELETE("/:id", cc.DeleteRoomPhoto)
		}

		features := api.Group("/features")
		{
			features.POST("", cc.CreateFeature)
		}
	}

	return r
}
