package customer

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"boardcamp/app/echoServer/validation"
	"boardcamp/model"
	customersvc "boardcamp/service/customer"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc customersvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /customers?cpf=prefix
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context(), c.QueryParam("cpf"))
	if err != nil {
		h.Log.Error("customer list", "err", err)
		return c.NoContent(http.StatusInternalServerError)
	}
	if rows == nil {
		rows = []model.Customer{}
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /customers/:id
func (h *Controller) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	row, err := h.Svc.Find(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, customersvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "customer not found"})
		}
		h.Log.Error("customer get", "err", err)
		return c.NoContent(http.StatusInternalServerError)
	}
	return c.JSON(http.StatusOK, row)
}

// POST /customers
func (h *Controller) Create(c echo.Context) error {
	var req CreateCustomerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, validation.Messages(err))
	}

	birthday, err := model.ParseDate(req.Birthday)
	if err != nil {
		return c.JSON(http.StatusBadRequest, []string{"birthday must be a date in the form 2006-01-02"})
	}

	cust := &model.Customer{
		Name:     req.Name,
		Phone:    req.Phone,
		CPF:      req.CPF,
		Birthday: birthday,
	}
	id, err := h.Svc.Create(c.Request().Context(), cust)
	if err != nil {
		if errors.Is(err, customersvc.ErrCPFTaken) {
			return c.JSON(http.StatusConflict, echo.Map{"message": "cpf already registered"})
		}
		h.Log.Error("customer create", "err", err)
		return c.NoContent(http.StatusInternalServerError)
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// PUT /customers/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	var req UpdateCustomerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, validation.Messages(err))
	}

	patch := customersvc.Patch{
		Name:  req.Name,
		Phone: req.Phone,
		CPF:   req.CPF,
	}
	if req.Birthday != nil {
		birthday, err := model.ParseDate(*req.Birthday)
		if err != nil {
			return c.JSON(http.StatusBadRequest, []string{"birthday must be a date in the form 2006-01-02"})
		}
		patch.Birthday = &birthday
	}

	row, err := h.Svc.Update(c.Request().Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, customersvc.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "customer not found"})
		case errors.Is(err, customersvc.ErrCPFTaken):
			return c.JSON(http.StatusConflict, echo.Map{"message": "cpf already registered"})
		default:
			h.Log.Error("customer update", "err", err)
			return c.NoContent(http.StatusInternalServerError)
		}
	}
	return c.JSON(http.StatusOK, row)
}
