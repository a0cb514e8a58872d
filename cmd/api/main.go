package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"vacationstay/internal/config"
	"vacationstay/internal/database"
	"vacationstay/internal/middleware"
	"vacationstay/internal/modules/admin"
	"vacationstay/internal/modules/auth"
	"vacationstay/internal/modules/booking"
	"vacationstay/internal/modules/property"
	"vacationstay/internal/modules/review"
	jwtsvc "vacationstay/internal/pkg/jwt"
	"vacationstay/internal/repository"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService, j.TTL())

	propertyService := property.NewService(propertyRepo, reviewRepo, userRepo)
	propertyHandler := property.NewHandler(propertyService)

	bookingService := booking.NewService(bookingRepo, propertyRepo, userRepo)
	bookingHandler := booking.NewHandler(bookingService)

	reviewService := review.NewService(reviewRepo, propertyRepo, userRepo)
	reviewHandler := review.NewHandler(reviewService)

	adminService := admin.NewService(userRepo, bookingRepo)
	adminHandler := admin.NewHandler(adminService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))

		authHandler.RegisterRoutes(v1, protected)
		propertyHandler.RegisterRoutes(v1, protected)
		reviewHandler.RegisterRoutes(v1, protected)
		bookingHandler.RegisterRoutes(protected)

		adminGroup := v1.Group("/admin")
		adminGroup.Use(middleware.JWTAuth(j), middleware.AdminOnly())
		adminHandler.RegisterRoutes(adminGroup)

		if cfg.InternalToken != "" {
			internal := v1.Group("/internal")
			internal.Use(middleware.InternalTokenAuth(cfg.InternalToken))
			authHandler.RegisterInternalRoutes(internal)
		} else {
			log.Println("INTERNAL_API_TOKEN is empty, OAuth gateway endpoint disabled")
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
