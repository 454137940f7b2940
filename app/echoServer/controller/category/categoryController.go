package category

import (
	"errors"
	"log/slog"
	"net/http"

	"boardcamp/app/echoServer/validation"
	"boardcamp/model"
	categorysvc "boardcamp/service/category"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc categorysvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /categories
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("category list", "err", err)
		return c.NoContent(http.StatusInternalServerError)
	}
	if rows == nil {
		rows = []model.Category{}
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /categories
func (h *Controller) Create(c echo.Context) error {
	var req CreateCategoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, validation.Messages(err))
	}

	id, err := h.Svc.Create(c.Request().Context(), req.Name)
	if err != nil {
		if errors.Is(err, categorysvc.ErrNameTaken) {
			return c.JSON(http.StatusConflict, echo.Map{"message": "category name already exists"})
		}
		h.Log.Error("category create", "err", err)
		return c.NoContent(http.StatusInternalServerError)
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}
