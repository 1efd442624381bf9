package controller

import (
	"errors"

	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/service"
	"github.com/benbeisheim/chessrules/internal/ws"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var opts service.GameOptions
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&opts); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	view, err := gc.gameService.CreateGame(opts)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	view, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(view)
}

func (gc *GameController) DeleteGame(c *fiber.Ctx) error {
	if err := gc.gameService.DeleteGame(c.Params("gameId")); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// LegalDestinations answers GET .../moves?x=4&y=6 with the squares the piece
// there may move to.
func (gc *GameController) LegalDestinations(c *fiber.Ctx) error {
	from := model.Position{X: c.QueryInt("x", -1), Y: c.QueryInt("y", -1)}

	dests, err := gc.gameService.LegalDestinations(c.Params("gameId"), from)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"from":         from,
		"destinations": dests,
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var move ws.MovePayload
	if err := c.BodyParser(&move); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	view, err := gc.gameService.MakeMove(c.Params("gameId"), move.From, move.To)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(view)
}

func (gc *GameController) ComputerMove(c *fiber.Ctx) error {
	view, err := gc.gameService.ComputerMove(c.Params("gameId"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(view)
}

func (gc *GameController) Navigate(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "history index must be a number",
		})
	}

	view, err := gc.gameService.Navigate(c.Params("gameId"), index)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(view)
}

func (gc *GameController) Restart(c *fiber.Ctx) error {
	view, err := gc.gameService.Restart(c.Params("gameId"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(view)
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrInvalidSquare),
		errors.Is(err, model.ErrNavigationOutOfRange),
		errors.Is(err, service.ErrInvalidGameMode),
		errors.Is(err, service.ErrInvalidColor),
		errors.Is(err, model.ErrInvalidTierMode):
		return fiber.StatusBadRequest
	case errors.Is(err, model.ErrIllegalMove),
		errors.Is(err, model.ErrNoPieceAtSquare):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, model.ErrNotYourTurn),
		errors.Is(err, model.ErrGameOver),
		errors.Is(err, service.ErrNotComputerTurn):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

func errorResponse(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
		return c.Status(status).JSON(fiber.Map{
			"error": "internal server error",
		})
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
