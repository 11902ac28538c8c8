// Package server assembles the HTTP API from the feature modules.
package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hotelbook/internal/middleware"
	"hotelbook/internal/modules/admin"
	"hotelbook/internal/modules/auth"
	"hotelbook/internal/modules/booking"
	"hotelbook/internal/modules/catalog"
	"hotelbook/internal/modules/negotiation"
	"hotelbook/internal/modules/notification"
	jwtsvc "hotelbook/internal/pkg/jwt"
	"hotelbook/internal/repository"
)

type Deps struct {
	DB  *gorm.DB
	JWT *jwtsvc.Service
	Log *logrus.Logger

	CORSAllowedOrigins  []string
	StrictCounterBounds bool

	// Now overrides the negotiation clock. Tests only.
	Now func() time.Time
}

// App is the wired API. Hub is exposed so the caller can close live
// websocket connections on shutdown.
type App struct {
	Router *gin.Engine
	Hub    *notification.Hub
}

func New(d Deps) *App {
	userRepo := repository.NewUserRepository(d.DB)
	hotelRepo := repository.NewHotelRepository(d.DB)
	roomRepo := repository.NewRoomRepository(d.DB)
	bookingRepo := repository.NewBookingRepository(d.DB)
	notificationRepo := repository.NewNotificationRepository(d.DB)
	statsRepo := repository.NewStatsRepository(d.DB)

	authService := auth.NewService(userRepo, d.JWT)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(hotelRepo, roomRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	bookingService := booking.NewService(bookingRepo)
	bookingHandler := booking.NewHandler(bookingService)

	hub := notification.NewHub()
	notificationService := notification.NewService(notificationRepo, hub, d.Log)
	notificationHandler := notification.NewHandler(notificationService, hub, d.JWT, d.CORSAllowedOrigins, d.Log)

	negotiationService := negotiation.NewService(
		d.DB,
		booking.NewMaterializer(d.Log),
		notificationService,
		d.Log,
		negotiation.Options{StrictCounterBounds: d.StrictCounterBounds, Now: d.Now},
	)
	negotiationHandler := negotiation.NewHandler(negotiationService)

	adminService := admin.NewService(userRepo, statsRepo)
	adminHandler := admin.NewHandler(adminService)

	r := gin.New()
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.ErrorLogger(d.Log))
	r.Use(middleware.CORS(d.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")

	// public
	authHandler.RegisterPublicRoutes(v1)
	notificationHandler.RegisterWS(v1)

	protected := v1.Group("")
	protected.Use(middleware.JWTAuth(d.JWT))
	{
		authHandler.RegisterProtectedRoutes(protected)
		negotiationHandler.RegisterRoutes(protected)
		notificationHandler.RegisterRoutes(protected)

		adminGroup := protected.Group("/admin")
		adminGroup.Use(middleware.AdminOnly())
		adminHandler.RegisterRoutes(adminGroup)
	}

	catalogHandler.RegisterRoutes(v1, protected)
	bookingHandler.RegisterRoutes(v1, protected)

	return &App{Router: r, Hub: hub}
}
