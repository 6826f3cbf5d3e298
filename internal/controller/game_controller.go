package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/aldenpark/chessmate-backend/internal/engine"
	"github.com/aldenpark/chessmate-backend/internal/service"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

// statusForError maps domain rejections to HTTP statuses. Unknown
// errors are treated as internal.
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrGameExists),
		errors.Is(err, service.ErrGameFull),
		errors.Is(err, service.ErrAlreadyQueued),
		errors.Is(err, engine.ErrGameAlreadyOver):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrNotSeated),
		errors.Is(err, service.ErrNotYourTurn):
		return fiber.StatusForbidden
	case errors.Is(err, engine.ErrNoPieceAtSource),
		errors.Is(err, engine.ErrWrongSideToMove),
		errors.Is(err, engine.ErrIllegalMove),
		errors.Is(err, engine.ErrInvalidPositionNotation):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func errorJSON(c *fiber.Ctx, err error) error {
	return c.Status(statusForError(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

type createGameRequest struct {
	FEN string `json:"fen"`
}

// CreateGame starts a new game, from the initial position or from the
// position named in the optional request body.
func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req createGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "malformed request body",
			})
		}
	}

	var (
		gameID string
		err    error
	)
	if req.FEN != "" {
		gameID, err = gc.gameService.CreateGameFromFEN(req.FEN)
	} else {
		gameID, err = gc.gameService.CreateGame()
	}
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) GetLegalMoves(c *fiber.Ctx) error {
	moves, err := gc.gameService.GetLegalMoves(c.Params("gameId"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{
		"moves": moves,
	})
}

// MakeMove plays a move over REST. An ErrAmbiguousPromotion rejection
// carries promotion_required so clients know to follow up with a piece
// choice.
func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	var req service.MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "malformed request body",
		})
	}

	if err := gc.gameService.HandleMove(gameID, playerID, req); err != nil {
		if errors.Is(err, engine.ErrAmbiguousPromotion) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error":              err.Error(),
				"promotion_required": true,
			})
		}
		return errorJSON(c, err)
	}

	gameState, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(gameState)
}

type promotionRequest struct {
	Piece string `json:"piece"`
}

// CompletePromotion resolves a move previously rejected as an
// ambiguous promotion.
func (gc *GameController) CompletePromotion(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	var req promotionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "malformed request body",
		})
	}

	if err := gc.gameService.CompletePromotion(gameID, playerID, req.Piece); err != nil {
		return errorJSON(c, err)
	}

	gameState, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	if err := gc.gameService.JoinMatchmaking(playerID); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{
		"status": "queued",
	})
}
