package main

import (
	"log"
	"net/http"

	"gamevault/backend/internal/auth"
	"gamevault/backend/internal/cache"
	"gamevault/backend/internal/config"
	"gamevault/backend/internal/database"
	"gamevault/backend/internal/handler"
	"gamevault/backend/internal/repository"
	"gamevault/backend/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "gamevault/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           GameVault API
// @version         1.0
// @description     This is the API for the GameVault service.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to set up database: %v", err)
	}

	redisCache := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	tokens := auth.NewTokenService(cfg.JWTSecret)

	userRepo := repository.NewUserRepository(db)
	gameRepo := repository.NewGameRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)

	authService := service.NewAuthService(userRepo, tokens)
	gameService := service.NewGameService(gameRepo, redisCache)
	wishlistService := service.NewWishlistService(wishlistRepo, gameRepo)

	authHandler := handler.NewAuthHandler(authService)
	gameHandler := handler.NewGameHandler(gameService, wishlistService)
	wishlistHandler := handler.NewWishlistHandler(wishlistService)

	router := gin.Default()

	// CORS is restricted to the known frontend origins; credentials must be
	// allowed for the refresh token cookie.
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Origins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api")
	{
		// Auth routes
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
		}

		// Auth routes (protected)
		authProtected := api.Group("/auth")
		authProtected.Use(auth.AuthMiddleware(tokens))
		{
			authProtected.GET("", authHandler.Ping)
			authProtected.POST("/refresh-token", authHandler.Refresh)
			authProtected.GET("/profile", authHandler.GetProfile)
			authProtected.PUT("/profile", authHandler.UpdateProfile)
			authProtected.PATCH("/profile", authHandler.PatchProfile)
		}

		// Game routes (public reads carry optional identity for wishlist flags)
		gameRoutes := api.Group("/game")
		{
			gameRoutes.GET("/all", auth.OptionalAuthMiddleware(tokens), gameHandler.GetAll)
			gameRoutes.GET("/:id", auth.OptionalAuthMiddleware(tokens), gameHandler.GetByID)

			gameProtected := gameRoutes.Group("")
			gameProtected.Use(auth.AuthMiddleware(tokens))
			{
				gameProtected.GET("/my-games", gameHandler.GetMyGames)
				gameProtected.POST("", gameHandler.Create)
				gameProtected.PUT("/:id", gameHandler.Update)
				gameProtected.DELETE("/:id", gameHandler.Delete)
			}
		}

		// Wishlist routes (protected)
		wishlistRoutes := api.Group("/wishlist")
		wishlistRoutes.Use(auth.AuthMiddleware(tokens))
		{
			wishlistRoutes.GET("", wishlistHandler.List)
			wishlistRoutes.POST("", wishlistHandler.Add)
			wishlistRoutes.DELETE("/:gameId", wishlistHandler.Remove)
			wishlistRoutes.GET("/check/:gameId", wishlistHandler.Check)
		}
	}

	log.Printf("Server is running on :%s", cfg.ServerPort)
	log.Fatal(router.Run(":" + cfg.ServerPort))
}
