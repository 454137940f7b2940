package rental

import (
	"log/slog"
	"net/http"
	"strconv"

	"boardcamp/app/echoServer/validation"
	"boardcamp/model"
	rs "boardcamp/service/rental"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc rs.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /rentals?customerId=&gameId=
func (h *Controller) List(c echo.Context) error {
	var f rs.Filter
	if v := c.QueryParam("customerId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid customerId"})
		}
		f.CustomerID = &id
	}
	if v := c.QueryParam("gameId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid gameId"})
		}
		f.GameID = &id
	}

	rows, err := h.Svc.List(c.Request().Context(), f)
	if err != nil {
		h.Log.Error("rental list", "err", err)
		return c.NoContent(http.StatusInternalServerError)
	}
	if rows == nil {
		rows = []model.EnrichedRental{}
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /rentals
func (h *Controller) Create(c echo.Context) error {
	var req CreateRentalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, validation.Messages(err))
	}

	out, err := h.Svc.Checkout(c.Request().Context(), req.CustomerID, req.GameID, req.DaysRented)
	if err != nil {
		switch rs.Code(err) {
		case rs.ErrValidation:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "daysRented must be at least 1"})
		case rs.ErrNotAvailable:
			// Missing customer, missing game and exhausted stock all
			// surface as the same client error.
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "customer, game or stock unavailable"})
		default:
			h.Log.Error("rental create", "err", err)
			return c.NoContent(http.StatusInternalServerError)
		}
	}
	return c.JSON(http.StatusCreated, out)
}

// POST /rentals/:id/return
func (h *Controller) Return(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	out, err := h.Svc.Return(c.Request().Context(), id)
	if err != nil {
		switch rs.Code(err) {
		case rs.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "rental not found"})
		case rs.ErrAlreadyReturned:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "rental already returned"})
		default:
			h.Log.Error("rental return", "err", err)
			return c.NoContent(http.StatusInternalServerError)
		}
	}
	return c.JSON(http.StatusOK, out)
}

// DELETE /rentals/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		switch rs.Code(err) {
		case rs.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "rental not found"})
		case rs.ErrStillOpen:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "rental still open"})
		default:
			h.Log.Error("rental delete", "err", err)
			return c.NoContent(http.StatusInternalServerError)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}
