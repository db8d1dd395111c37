package accounts

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-router"
)

// Server is the fiber backed HTTP surface for the account API. It owns the
// adapter and exposes the underlying router for callers that want to mount
// additional routes next to the account ones.
type Server struct {
	srv        router.Server[*fiber.App]
	controller *HTTPController
}

// NewServer builds the fiber adapter and registers the account routes on it
func NewServer(controller *HTTPController) *Server {
	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			UnescapePath:  true,
			StrictRouting: false,
		}))
	})

	controller.RegisterAccountRoutes(srv.Router().Group("/"))

	return &Server{
		srv:        srv,
		controller: controller,
	}
}

// Router exposes the adapter router
func (s *Server) Router() router.Router[*fiber.App] {
	return s.srv.Router()
}

// Serve starts listening on the given address
func (s *Server) Serve(addr string) error {
	return s.srv.Serve(addr)
}
