// Package server exposes a map session over HTTP: locate, view control and an
// SVG snapshot of the current view.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"stockmap/pkg/config"
	"stockmap/pkg/inventory"
	"stockmap/pkg/warehouse/session"
)

// Items reads and writes full inventory records
type Items interface {
	Get(ctx context.Context, code string) (inventory.Record, bool, error)
	Put(ctx context.Context, rec inventory.Record) error
}

// Server serves one shared map session
type Server struct {
	app     *fiber.App
	session *session.Session
	items   Items
	port    string
}

// New builds the fiber app and registers all routes
func New(cfg *config.Config, s *session.Session, items Items) *Server {
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "stockmap",
	})

	srv := &Server{app: app, session: s, items: items, port: cfg.Port}

	app.Use(recover.New())
	app.Use(requestLogger())
	app.Use(allowAll())

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})
	app.Get("/health/ready", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ready", "layout": s.Layout().Name()})
	})

	api := app.Group("/api")
	api.Get("/layout", srv.getLayout)
	api.Get("/items/:code", srv.getItem)
	api.Put("/items/:code", srv.putItem)
	api.Get("/locate/:code", srv.locate)

	api.Get("/view", srv.getView)
	api.Post("/view/resize", srv.resize)
	api.Post("/view/zoom", srv.zoom)
	api.Post("/view/pan", srv.pan)
	api.Post("/view/reset", srv.reset)

	api.Post("/shelves/:id/select", srv.selectShelf)
	api.Delete("/selection", srv.dismissSelection)
	api.Delete("/marker", srv.dismissMarker)

	api.Get("/map.svg", srv.mapSVG)

	return srv
}

// App returns the underlying fiber app
func (srv *Server) App() *fiber.App {
	return srv.app
}

// Listen serves until the app is shut down
func (srv *Server) Listen() error {
	addr := fmt.Sprintf(":%s", srv.port)
	log.Printf("[SERVER] Starting on %s", addr)
	return srv.app.Listen(addr)
}

// Shutdown stops accepting requests and waits for in-flight ones
func (srv *Server) Shutdown() error {
	return srv.app.Shutdown()
}
