package game

import (
	"errors"
	"log/slog"
	"net/http"

	"boardcamp/app/echoServer/validation"
	"boardcamp/model"
	gamesvc "boardcamp/service/game"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc gamesvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /games?name=prefix
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context(), c.QueryParam("name"))
	if err != nil {
		h.Log.Error("game list", "err", err)
		return c.NoContent(http.StatusInternalServerError)
	}
	if rows == nil {
		rows = []model.GameWithCategory{}
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /games
func (h *Controller) Create(c echo.Context) error {
	var req CreateGameReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, validation.Messages(err))
	}

	g := &model.Game{
		Name:        req.Name,
		Image:       req.Image,
		StockTotal:  *req.StockTotal,
		CategoryID:  req.CategoryID,
		PricePerDay: *req.PricePerDay,
	}
	id, err := h.Svc.Create(c.Request().Context(), g)
	if err != nil {
		switch {
		case errors.Is(err, gamesvc.ErrCategoryNotFound):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "category does not exist"})
		case errors.Is(err, gamesvc.ErrNameTaken):
			return c.JSON(http.StatusConflict, echo.Map{"message": "game name already exists"})
		default:
			h.Log.Error("game create", "err", err)
			return c.NoContent(http.StatusInternalServerError)
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}
