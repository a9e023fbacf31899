// Package wire 提供依赖装配
package wire

import (
	"context"

	"campus-life-api/internal/application/auth"
	"campus-life-api/internal/application/badge"
	"campus-life-api/internal/application/content"
	"campus-life-api/internal/application/play"
	"campus-life-api/internal/application/save"
	"campus-life-api/internal/application/settlement"
	"campus-life-api/internal/application/workshop"
	"campus-life-api/internal/config"
	"campus-life-api/internal/infrastructure/persistence/postgres"
	"campus-life-api/internal/infrastructure/persistence/redis"
	"campus-life-api/internal/interfaces/http/handler"
	"campus-life-api/internal/interfaces/http/router"
	"campus-life-api/pkg/logger"
	"campus-life-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

// App 装配完成的应用
type App struct {
	router *router.Router

	pgClient    *postgres.Client
	redisClient *redis.Client
}

// Engine 返回 Gin Engine
func (a *App) Engine() *gin.Engine {
	return a.router.Engine()
}

// InitializeApp 组装全部依赖，返回应用与资源清理函数
func InitializeApp(ctx context.Context, cfg *config.Config) (*App, func(), error) {
	// 数据层
	pgClient, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		return nil, nil, err
	}

	redisClient, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		_ = pgClient.Close()
		return nil, nil, err
	}

	txManager := postgres.NewTxManager(pgClient)
	saveRepo := postgres.NewSaveRepository(pgClient)
	scriptRepo := postgres.NewScriptRepository(pgClient)
	badgeRepo := postgres.NewBadgeRepository(pgClient)
	workshopRepo := postgres.NewWorkshopRepository(pgClient)
	userRepo := postgres.NewUserRepository(pgClient)
	settingRepo := postgres.NewSettingRepository(pgClient)

	cache := redis.NewCache(redisClient)
	catalog := redis.NewScriptCatalog(cache, scriptRepo, cfg.Cache.Redis.CatalogTTL)

	// 应用层
	jwtManager := utils.NewJWTManager(cfg.Security.JWT.Secret, cfg.Security.JWT.Issuer)
	authSvc := auth.NewService(userRepo, jwtManager, cfg.Security.JWT.Expiration, cfg.Security.JWT.RefreshExpiration)
	saveSvc := save.NewService(saveRepo, cfg.Game)
	badgeScanner := badge.NewScanner(badgeRepo, saveRepo)
	playSvc := play.NewService(saveRepo, scriptRepo, catalog, badgeScanner, txManager, cfg.Game)
	settlementSvc := settlement.NewService(saveRepo, badgeScanner, txManager, cfg.Game)
	workshopSvc := workshop.NewService(workshopRepo, txManager)
	contentSvc := content.NewService(scriptRepo, badgeRepo, catalog)

	// 接口层
	handlers := router.Handlers{
		Health:     handler.NewHealthHandler(pgClient, redisClient),
		Auth:       handler.NewAuthHandler(authSvc),
		Save:       handler.NewSaveHandler(saveSvc),
		Script:     handler.NewScriptHandler(playSvc),
		Settlement: handler.NewSettlementHandler(settlementSvc),
		Badge:      handler.NewBadgeHandler(saveSvc, badgeScanner),
		Workshop:   handler.NewWorkshopHandler(workshopSvc),
		Admin:      handler.NewAdminHandler(contentSvc, settingRepo, cache),
		Public:     handler.NewPublicHandler(settingRepo, cache),
	}

	app := &App{
		router:      router.New(cfg, redisClient, handlers),
		pgClient:    pgClient,
		redisClient: redisClient,
	}

	cleanup := func() {
		if err := app.redisClient.Close(); err != nil {
			logger.Error(ctx, "failed to close redis client", err)
		}
		if err := app.pgClient.Close(); err != nil {
			logger.Error(ctx, "failed to close postgres client", err)
		}
	}

	return app, cleanup, nil
}
