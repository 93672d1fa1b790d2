package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/devxankit/CRM-SaaS-sub000/internal/api/middleware"
	requesthdl "github.com/devxankit/CRM-SaaS-sub000/internal/api/request/handler"
	"github.com/devxankit/CRM-SaaS-sub000/internal/api/router"
)

// RegisterRequestRoutes đăng ký các route của workflow request.
// Các route tĩnh (statistics, recipients) phải đăng ký trước /:id.
func RegisterRequestRoutes(api fiber.Router, _ *router.Router) error {
	handler, err := requesthdl.NewRequestHandler()
	if err != nil {
		return err
	}

	auth := []fiber.Handler{middleware.AuthMiddleware()}

	router.RegisterRouteWithMiddleware(api, "/requests", "POST", "", auth, handler.HandleCreate)
	router.RegisterRouteWithMiddleware(api, "/requests", "GET", "", auth, handler.HandleList)
	router.RegisterRouteWithMiddleware(api, "/requests", "GET", "/statistics", auth, handler.HandleStatistics)
	router.RegisterRouteWithMiddleware(api, "/requests", "GET", "/recipients", auth, handler.HandleRecipients)
	router.RegisterRouteWithMiddleware(api, "/requests", "GET", "/:id", auth, handler.HandleGetByID)
	router.RegisterRouteWithMiddleware(api, "/requests", "POST", "/:id/respond", auth, handler.HandleRespond)
	router.RegisterRouteWithMiddleware(api, "/requests", "PUT", "/:id", auth, handler.HandleUpdate)
	router.RegisterRouteWithMiddleware(api, "/requests", "DELETE", "/:id", auth, handler.HandleDelete)

	return nil
}
