package main

import (
	"context"
	"flag"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/aldenpark/chessmate-backend/internal/config"
	"github.com/aldenpark/chessmate-backend/internal/controller"
	"github.com/aldenpark/chessmate-backend/internal/middleware"
	"github.com/aldenpark/chessmate-backend/internal/obslog"
	"github.com/aldenpark/chessmate-backend/internal/service"
	"github.com/aldenpark/chessmate-backend/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		obslog.Init("info", "console")
		obslog.L().Fatal("load config", zap.Error(err))
	}
	obslog.Init(cfg.Log.Level, cfg.Log.Format)
	log := obslog.L()

	var repo store.Repository
	if cfg.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisRepo, err := store.NewRedisRepository(ctx, cfg.RedisAddr)
		cancel()
		if err != nil {
			log.Fatal("connect redis", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		defer redisRepo.Close()
		repo = redisRepo
		log.Info("using redis game store", zap.String("addr", cfg.RedisAddr))
	} else {
		repo = store.NewMemoryRepository()
		log.Info("using in-memory game store")
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigin,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))
	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Debug("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("took", time.Since(start)))
		return err
	})

	gameManager := service.NewGameManager(repo, time.Duration(cfg.ClockSeconds)*time.Second, log)
	gameService := service.NewGameService(gameManager)

	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService, log)

	wsConfig := websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         []string{cfg.CORSOrigin},
	}
	app.Use("/ws/*", middleware.EnsurePlayerID(), middleware.WebSocketUpgrade())
	app.Get("/ws/game/:gameId", websocket.New(wsController.HandleGameConnection, wsConfig))
	app.Get("/ws/matchmaking", websocket.New(wsController.HandleMatchmaking, wsConfig))

	api := app.Group("/api", middleware.EnsurePlayerID())

	gameRoutes := api.Group("/game")
	gameRoutes.Post("/matchmaking/join", gameController.JoinMatchmaking)
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Post("/join/:gameId", gameController.JoinGame)
	gameRoutes.Get("/:gameId", gameController.GetGameState)
	gameRoutes.Get("/:gameId/moves", gameController.GetLegalMoves)
	gameRoutes.Post("/:gameId/move", gameController.MakeMove)
	gameRoutes.Post("/:gameId/promotion", gameController.CompletePromotion)

	log.Info("listening", zap.String("addr", cfg.ListenAddr))
	if err := app.Listen(cfg.ListenAddr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
