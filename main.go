package main

import (
	"runtime"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/seanazu/value-hunter/config"
	"github.com/seanazu/value-hunter/database"
	"github.com/seanazu/value-hunter/routes"
)

func main() {
	runtime.GOMAXPROCS(runtime.NumCPU())
	sysConfigs, err := config.LoadConfigs()
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading configuration")
	}

	if sysConfigs.Config.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if sysConfigs.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	_, db, err := database.InitMongoClient(sysConfigs)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to MongoDB")
	}

	router := routes.SetupRouter(db, sysConfigs)

	port := sysConfigs.Config.Port
	log.Info().Str("port", port).Str("screener", sysConfigs.Config.ScreenerBaseUrl).Msg("Server starting")
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal().Err(err).Msg("Server failed to start")
	}
}

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.With().Logger()
}
