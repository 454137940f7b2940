package main

import (
	"boardcamp/app/echoServer"
	categoryctrl "boardcamp/app/echoServer/controller/category"
	customerctrl "boardcamp/app/echoServer/controller/customer"
	gamectrl "boardcamp/app/echoServer/controller/game"
	rentalctrl "boardcamp/app/echoServer/controller/rental"
	"boardcamp/app/echoServer/validation"
	"boardcamp/config"
	"boardcamp/metrics"
	categoryrepo "boardcamp/repository/category"
	customerrepo "boardcamp/repository/customer"
	gamerepo "boardcamp/repository/game"
	rentalrepo "boardcamp/repository/rental"
	categorysvc "boardcamp/service/category"
	customersvc "boardcamp/service/customer"
	gamesvc "boardcamp/service/game"
	rentalsvc "boardcamp/service/rental"
	"boardcamp/util/database"
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// schema
	if err := database.Migrate(cfg.DatabaseURL); err != nil {
		log.Error("migrations failed", "err", err)
		os.Exit(1)
	}

	// DB: *sql.DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	catr := categoryrepo.New(db)
	gr := gamerepo.New(db)
	cr := customerrepo.New(db)
	rr := rentalrepo.New(db)

	// services
	cats := categorysvc.New(catr)
	gs := gamesvc.New(gr)
	cs := customersvc.New(cr)
	rs := rentalsvc.New(rr)

	// controllers
	v := validator.New()
	categoryC := &categoryctrl.Controller{Svc: cats, V: v, Log: log}
	gameC := &gamectrl.Controller{Svc: gs, V: v, Log: log}
	customerC := &customerctrl.Controller{Svc: cs, V: v, Log: log}
	rentalC := &rentalctrl.Controller{Svc: rs, V: v, Log: log}

	// echo
	m := metrics.NewCollector()
	e := echo.New()
	echoServer.RegisterMiddlewares(e, m, cfg.RateLimit)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"status": "ok",
		})
	})
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	echoServer.Register(e, echoServer.C{
		Category: categoryC,
		Game:     gameC,
		Customer: customerC,
		Rental:   rentalC,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
