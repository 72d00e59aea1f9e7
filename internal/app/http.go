package app

import (
	"context"

	"github.com/gin-gonic/gin"

	"storefront-auth/internal/auth/credentials"
	"storefront-auth/internal/auth/handler"
	"storefront-auth/internal/auth/provider"
	"storefront-auth/internal/auth/provider/google"
	"storefront-auth/internal/auth/resolver"
	"storefront-auth/internal/catalog"
	"storefront-auth/internal/config"
	"storefront-auth/internal/identity"
	"storefront-auth/internal/middleware"
	"storefront-auth/internal/session"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func(ctx context.Context) error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	identities := identity.NewRepository(infra.Store)
	credentialService := credentials.NewService(identities)
	reconciler := resolver.NewStoreReconciler(identities)

	tokens := session.NewIssuer(cfg.SessionSecret, cfg.SessionTTL)
	revocations := session.NewRevocationList(infra.Redis.Client)

	googleProvider, err := google.New(
		ctx,
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
	)
	if err != nil {
		return nil, nil, err
	}

	registry := provider.NewRegistry(
		googleProvider,
	)

	authHandler := handler.NewHandler(
		registry,
		credentialService,
		reconciler,
		tokens,
		revocations,
	)

	catalogHandler := catalog.NewHandler(catalog.NewRepository(infra.Store))

	authMiddleware := middleware.NewAuthMiddleware(tokens, revocations)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	// ----------------------------
	// Public Routes
	// ----------------------------

	authHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Protected API Routes
	// ----------------------------

	api := router.Group("/")
	api.Use(middleware.GinRequireAuth(authMiddleware))

	api.GET("/auth/session", authHandler.Session)
	api.GET("/api/product", catalogHandler.List)
	api.GET("/api/product/:id", catalogHandler.Detail)

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func(ctx context.Context) error {
		if err := infra.Redis.Close(); err != nil {
			return err
		}
		return infra.Store.Close(ctx)
	}, nil
}
