package router

import (
	"github.com/gofiber/fiber/v3"

	feedhdl "github.com/devxankit/CRM-SaaS-sub000/internal/api/feed/handler"
	identitymodels "github.com/devxankit/CRM-SaaS-sub000/internal/api/identity/models"
	"github.com/devxankit/CRM-SaaS-sub000/internal/api/middleware"
	"github.com/devxankit/CRM-SaaS-sub000/internal/api/router"
)

// RegisterFeedRoutes đăng ký các route feed thông báo theo vai trò.
func RegisterFeedRoutes(api fiber.Router, _ *router.Router) error {
	handler, err := feedhdl.NewFeedHandler()
	if err != nil {
		return err
	}

	clientOnly := []fiber.Handler{
		middleware.AuthMiddleware(),
		middleware.RequireRole(identitymodels.RoleClient),
	}
	employeeOnly := []fiber.Handler{
		middleware.AuthMiddleware(),
		middleware.RequireRole(identitymodels.RoleEmployee),
	}

	router.RegisterRouteWithMiddleware(api, "/client", "GET", "/notifications", clientOnly, handler.HandleClientFeed)
	router.RegisterRouteWithMiddleware(api, "/employee", "GET", "/notifications", employeeOnly, handler.HandleEmployeeFeed)

	return nil
}
