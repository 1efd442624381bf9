package controller

import (
	"github.com/benbeisheim/chessrules/internal/middleware"
	"github.com/benbeisheim/chessrules/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// SetupRoutes mounts the REST API under /api and the live game feed under
// /ws.
func SetupRoutes(app *fiber.App, gameService *service.GameService, wsConfig websocket.Config) {
	gameController := NewGameController(gameService)
	wsController := NewWebSocketController(gameService)
	requireGame := middleware.RequireGame(gameService)

	api := app.Group("/api")
	games := api.Group("/games")
	games.Post("/", gameController.CreateGame)
	games.Get("/:gameId", requireGame, gameController.GetGameState)
	games.Delete("/:gameId", requireGame, gameController.DeleteGame)
	games.Get("/:gameId/moves", requireGame, gameController.LegalDestinations)
	games.Post("/:gameId/moves", requireGame, gameController.MakeMove)
	games.Post("/:gameId/computer", requireGame, gameController.ComputerMove)
	games.Post("/:gameId/history/:index", requireGame, gameController.Navigate)
	games.Post("/:gameId/restart", requireGame, gameController.Restart)

	app.Get("/ws/games/:gameId",
		requireGame,
		middleware.WebSocketUpgrade(),
		websocket.New(wsController.HandleConnection, wsConfig),
	)
}
