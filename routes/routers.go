package routes

import (
	"net/http"

	"airmetr/controllers"
	_ "airmetr/docs"
	middlewares "airmetr/middleware"
	"airmetr/services"
	"airmetr/services/logger"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Options struct {
	Reservations      services.ReservationServiceInterface
	Properties        services.PropertyServiceInterface
	Melody            *melody.Melody
	Logger            logger.Logger
	JWTSecret         string
	DefaultCustomerID string
	RateLimiter       *middlewares.RateLimiter
	MaxStayDays       int
	// UploadDir is served under /images when set.
	UploadDir string
}

func SetupRoutes(router *gin.Engine, opts Options) {
	if opts.Logger == nil {
		opts.Logger = logger.NewNopLogger()
	}
	reservationController := controllers.NewReservationController(opts.Reservations, opts.MaxStayDays)
	propertyController := controllers.NewPropertyController(opts.Properties)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if opts.UploadDir != "" {
		router.Static("/images", opts.UploadDir)
	}
	if opts.Melody != nil {
		router.GET("/ws", func(c *gin.Context) {
			opts.Melody.HandleRequest(c.Writer, c.Request)
		})
	}

	limit := func(c *gin.Context) { c.Next() }
	if opts.RateLimiter != nil {
		limit = opts.RateLimiter.Limit()
	}

	v1 := router.Group("/api/v1")
	v1.Use(
		middlewares.ErrorHandler(opts.Logger),
		middlewares.CustomerIdentity(opts.JWTSecret, opts.DefaultCustomerID),
	)

	// properties
	v1.GET("/properties", propertyController.GetProperties)
	v1.GET("/properties/mine", propertyController.GetMyProperties)
	v1.GET("/properties/create-data", propertyController.GetCreateData)
	v1.GET("/properties/:id", propertyController.GetPropertyByID)
	v1.POST("/properties", limit, propertyController.CreateProperty)
	v1.PUT("/properties/:id", limit, propertyController.UpdateProperty)
	v1.DELETE("/properties/:id", limit, propertyController.DeleteProperty)

	// images
	v1.POST("/properties/:id/images", limit, propertyController.UploadImages)
	v1.DELETE("/images/:id", limit, propertyController.DeleteImage)

	// reservations
	v1.GET("/properties/:id/reservations", reservationController.ListPropertyReservations)
	v1.GET("/properties/:id/unavailable-dates", reservationController.GetUnavailableDates)
	v1.POST("/properties/:id/reservations", limit, reservationController.CreateReservation)
	v1.GET("/reservations/mine", reservationController.ListMyReservations)
	v1.GET("/reservations/:id", reservationController.GetReservation)
	v1.PUT("/reservations/:id", limit, reservationController.UpdateReservation)
	v1.DELETE("/reservations/:id", limit, reservationController.DeleteReservation)
}
