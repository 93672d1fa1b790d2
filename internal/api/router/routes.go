package router

import (
	"github.com/gofiber/fiber/v3"
)

// ============================================================================
// QUAN TRỌNG: BUG FIBER V3 - CÁCH ĐĂNG KÝ MIDDLEWARE
// ============================================================================
//
// Fiber v3 có bug với cách đăng ký middleware trực tiếp trong route.
// Middleware sẽ KHÔNG được gọi nếu dùng cách trực tiếp!
//
// CÁCH SAI (KHÔNG HOẠT ĐỘNG):
//    router.Get("/path", middleware.AuthMiddleware(), handler)
//    → Middleware sẽ KHÔNG được gọi, request sẽ bỏ qua middleware!
//
// CÁCH ĐÚNG (PHẢI DÙNG):
//    authMiddleware := middleware.AuthMiddleware()
//    RegisterRouteWithMiddleware(router, "/prefix", "GET", "/path", []fiber.Handler{authMiddleware}, handler)
//    → Middleware sẽ được gọi đúng cách thông qua .Use() method
//
// Nếu thấy route nào dùng cách trực tiếp router.Get/Post/Patch/Delete(path, middleware, handler)
// → PHẢI SỬA NGAY thành RegisterRouteWithMiddleware!
//
// ============================================================================

// Router quản lý việc định tuyến cho API
type Router struct {
	app *fiber.App
}

// RoutePrefix chứa các prefix cơ bản cho API
type RoutePrefix struct {
	Base string // Prefix cơ bản (/api)
}

// NewRoutePrefix tạo mới một instance của RoutePrefix với các giá trị mặc định
func NewRoutePrefix() RoutePrefix {
	return RoutePrefix{
		Base: "/api",
	}
}

// NewRouter tạo mới một instance của Router
func NewRouter(app *fiber.App) *Router {
	return &Router{
		app: app,
	}
}

// RegisterRouteWithMiddleware đăng ký route với middleware sử dụng .Use() method (cách đúng theo Fiber v3).
// Dùng từ domain router.
func RegisterRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	// Tạo group với prefix, middleware sẽ chỉ áp dụng cho routes trong group này
	routeGroup := router.Group(prefix)
	for _, mw := range middlewares {
		routeGroup.Use(mw) // Dùng .Use() thay vì truyền trực tiếp
	}

	// Đăng ký route với path tương đối (không có prefix vì đã có trong group)
	switch method {
	case "GET":
		routeGroup.Get(path, handler)
	case "POST":
		routeGroup.Post(path, handler)
	case "PUT":
		routeGroup.Put(path, handler)
	case "PATCH":
		routeGroup.Patch(path, handler)
	case "DELETE":
		routeGroup.Delete(path, handler)
	}
}

// RegisterFunc là hàm đăng ký route của một domain (do domain/router export).
type RegisterFunc func(api fiber.Router, r *Router) error

// SetupRoutes thiết lập tất cả các route cho ứng dụng.
// Caller truyền lần lượt Register của từng domain để tránh import cycle.
func SetupRoutes(app *fiber.App, regs ...RegisterFunc) error {
	prefix := NewRoutePrefix()
	api := app.Group(prefix.Base)
	r := NewRouter(app)
	for _, reg := range regs {
		if err := reg(api, r); err != nil {
			return err
		}
	}
	return nil
}
