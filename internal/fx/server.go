package fx

import (
	"context"
	"errors"
	"net/http"

	"github.com/Toston-App/lake-sub000/config"
	"github.com/Toston-App/lake-sub000/internal/contracts"
	"github.com/Toston-App/lake-sub000/internal/logger"
	"github.com/Toston-App/lake-sub000/internal/middleware"
	"github.com/Toston-App/lake-sub000/internal/routes"

	docs "github.com/Toston-App/lake-sub000/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
)

// ServerModule fornece a configuração do servidor HTTP
var ServerModule = fx.Module("server",
	fx.Provide(
		newRouter,
	),
	fx.Invoke(
		setupRoutes,
	),
)

func newRouter(cfg *config.Config) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	return router
}

func setupRoutes(
	lc fx.Lifecycle,
	cfg *config.Config,
	router *gin.Engine,
	handler *routes.Handler,
	limiter *middleware.RateLimiter,
) {
	contracts.RegisterValidators()

	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.Register(router, handler, limiter)

	serverAddr := ":" + cfg.Server.Port
	srv := &http.Server{Addr: serverAddr, Handler: router}

	logger.Info().
		Str("address", serverAddr).
		Str("environment", cfg.App.Environment).
		Msg("Servidor iniciando")

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal().Err(err).Msg("Falha ao iniciar servidor")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("Servidor parando...")
			return srv.Shutdown(ctx)
		},
	})
}
