package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/tienda-admin/internal/application/store"
	"github.com/jhoicas/tienda-admin/internal/infrastructure/api"
	httpRouter "github.com/jhoicas/tienda-admin/internal/interfaces/http"
	"github.com/jhoicas/tienda-admin/pkg/config"
	"github.com/jhoicas/tienda-admin/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("api", cfg.API.BaseURL).
		Msg("iniciando panel")

	// Cliente del API remoto de catálogo. La credencial es estática: la
	// entrega el colaborador de sesión vía API_TOKEN y solo se valida su
	// expiración localmente antes de cada llamada.
	creds := api.NewStaticCredential(cfg.API.Token)
	catalogo := api.New(api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	}, creds, log)

	cats := store.NewCategoryStore(catalogo, cfg.Stores.StaleAfter, log)
	prods := store.NewProductStore(catalogo, cfg.Stores.StaleAfter, log)
	coordinador := store.NewCascadeDeleteCoordinator(catalogo, cats, prods, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Categories:  cats,
		Products:    prods,
		Coordinator: coordinador,
		JWTSecret:   cfg.JWT.Secret,
		JWTIssuer:   cfg.JWT.Issuer,
		JWTExpMin:   cfg.JWT.Expiration,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("panel detenido")
}
