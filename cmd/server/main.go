package main

import (
	"os"

	"github.com/benbeisheim/chessrules/internal/config"
	"github.com/benbeisheim/chessrules/internal/controller"
	"github.com/benbeisheim/chessrules/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
)

func main() {
	cfg, err := config.Load(os.Args[1:], os.Getenv)
	if err != nil {
		log.Fatal(err)
	}
	level, _ := config.ParseLogLevel(cfg.LogLevel)
	log.SetLevel(level)

	app := fiber.New(fiber.Config{
		AppName: "chessrules",
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowMethods:     "GET, POST, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// Initialize services
	gameManager := service.NewGameManager()
	gameService := service.NewGameService(gameManager, service.Options{
		DefaultDifficulty: cfg.DefaultDifficulty,
	})

	controller.SetupRoutes(app, gameService, websocket.Config{
		ReadBufferSize:  cfg.ReadBufferSize,
		WriteBufferSize: cfg.WriteBufferSize,
		Origins:         cfg.Origins(),
	})

	log.Infof("listening on %s", cfg.Addr)
	log.Fatal(app.Listen(cfg.Addr))
}
