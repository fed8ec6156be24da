package routes

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humagin"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	localCache "github.com/seanazu/value-hunter/cache"
	"github.com/seanazu/value-hunter/client"
	"github.com/seanazu/value-hunter/config"
	"github.com/seanazu/value-hunter/controller"
	"github.com/seanazu/value-hunter/middleware"
	"github.com/seanazu/value-hunter/repository"
	"github.com/seanazu/value-hunter/service"
	"github.com/seanazu/value-hunter/view"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupRouter wires clients, services and controllers. db may be nil, which leaves presets disabled.
func SetupRouter(db *mongo.Database, cfg *config.SystemConfigs) *gin.Engine {
	configManager := config.NewConfigManager(cfg.Runtime())

	r := gin.New()
	r.Use(middleware.RecoveryMiddleware)
	r.Use(middleware.ZerologMiddleware())
	r.Use(middleware.CORS(configManager))
	r.Use(middleware.RateLimiter(configManager))
	r.SetHTMLTemplate(view.Templates())

	// --- 1. Clients ---
	screenerClient := client.NewScreenerClient(cfg.Config.ScreenerBaseUrl, cfg.ScreenerTimeout())

	// --- 2. Repositories ---
	var presetRepo service.PresetRepository
	if db != nil {
		presetRepo = repository.NewPresetRepository(db)
	}

	// --- 3. Services ---
	sessionSvc := service.NewSessionService(screenerClient, cfg.SessionTTL())
	presetSvc := service.NewPresetService(presetRepo, localCache.PresetCache)
	seedPresets(presetSvc, cfg.Config.PresetsFile)

	// --- 4. Routes & Controllers ---
	cookieMaxAge := int(cfg.SessionTTL().Seconds())
	if cookieMaxAge <= 0 {
		cookieMaxAge = int(localCache.DefaultSessionTTL.Seconds())
	}
	controller.NewScreenerPageController(sessionSvc, presetSvc, cfg.IsProduction(), cookieMaxAge).RegisterRoutes(r)

	api := r.Group("/api")
	{
		controller.NewHealthController(sessionSvc, presetSvc).RegisterRoutes(api)
		controller.NewPresetController(presetSvc).RegisterRoutes(api)
	}

	humaApi := humagin.New(r, huma.DefaultConfig("Value Hunter API", "1.0.0"))
	controller.NewSessionController(sessionSvc, presetSvc).RegisterRoutes(humaApi)

	return r
}

func seedPresets(presetSvc service.PresetService, path string) {
	if path == "" || !presetSvc.Enabled() {
		return
	}

	file, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn().Err(err).Str("file", path).Msg("cannot open presets file")
		}
		return
	}
	defer file.Close()

	n, err := presetSvc.SeedFromCSV(context.Background(), file)
	if err != nil {
		log.Error().Err(err).Str("file", path).Int("saved", n).Msg("preset seeding stopped")
		return
	}
	log.Info().Int("presets", n).Str("file", path).Msg("presets seeded")
}
