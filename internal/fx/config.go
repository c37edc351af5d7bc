package fx

import (
	"log"

	"github.com/Toston-App/lake-sub000/config"
	"github.com/Toston-App/lake-sub000/internal/logger"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		loadConfig,
	),
	fx.Invoke(
		initLogger,
	),
)

// loadConfig reads .env before the environment is parsed.
func loadConfig() (*config.Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: não foi possível carregar .env do diretório atual: %v", err)
	}
	return config.Load()
}

func initLogger(cfg *config.Config) {
	logger.Init(cfg)
}
