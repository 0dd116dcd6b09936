package server

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/pathwise-dev/pathwise/pkg/model"
)

// Advisor is the inbound call surface consumed by the HTTP layer.
type Advisor interface {
	Handle(ctx context.Context, sessionID model.SessionID, message string) (*model.OrchestrationResult, error)
	Memory(sessionID model.SessionID) []model.Turn
	ClearSession(sessionID model.SessionID)
	GenerativeConfigured() bool
}

// Server exposes the advisor over HTTP for the UI collaborator.
type Server struct {
	app         *fiber.App
	advisor     Advisor
	catalogSize int
}

func New(advisor Advisor, catalogSize int) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "pathwise",
		DisableStartupMessage: true,
	})

	s := &Server{
		app:         app,
		advisor:     advisor,
		catalogSize: catalogSize,
	}

	v1 := app.Group("/v1")
	v1.Post("/chat", s.handleChat)
	v1.Get("/sessions/:id/history", s.handleHistory)
	v1.Delete("/sessions/:id", s.handleClearSession)
	app.Get("/health", s.handleHealth)

	return s
}

// App returns the underlying fiber app, used by tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run blocks serving HTTP on the given address.
func (s *Server) Run(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
