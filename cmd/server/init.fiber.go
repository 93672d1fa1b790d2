package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"

	"github.com/devxankit/CRM-SaaS-sub000/internal/global"
	"github.com/devxankit/CRM-SaaS-sub000/internal/logger"
)

// InitFiberApp khởi tạo ứng dụng Fiber với các middleware cần thiết
func InitFiberApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:       "CRM SaaS API",
		ServerHeader:  "CRM SaaS API",
		StrictRouting: true,
		CaseSensitive: true,
		UnescapePath:  true,

		BodyLimit:       10 * 1024 * 1024,
		Concurrency:     256 * 1024,
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,

		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,

		// Lỗi framework (route không tồn tại, body quá lớn...) trả về cùng
		// envelope với lỗi nghiệp vụ
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal server error"
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
			}

			logger.WithRequest(c).WithFields(map[string]interface{}{
				"code":    code,
				"message": message,
			}).Error("Request error")

			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"message": message,
			})
		},
	})

	// 1. Request ID - trace mỗi request qua log
	app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return fmt.Sprintf("%d", time.Now().UnixNano())
		},
	}))

	// 2. CORS - phải đặt trước các middleware khác để xử lý preflight
	corsOrigins := global.ServerConfig.CORS_Origins
	var allowOrigins []string
	if corsOrigins == "*" {
		allowOrigins = []string{"*"}
	} else {
		allowOrigins = strings.Split(corsOrigins, ",")
		for i, origin := range allowOrigins {
			allowOrigins[i] = strings.TrimSpace(origin)
		}
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
			"X-Request-ID",
			"X-Requested-With",
		},
		AllowCredentials: global.ServerConfig.CORS_AllowCredentials,
		ExposeHeaders:    []string{"Content-Length", "Content-Range", "X-Request-ID"},
		MaxAge:           24 * 60 * 60,
	}))

	// 3. Security headers
	app.Use(func(c fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	})

	// 4. Rate limiting theo IP
	if global.ServerConfig.RateLimit_Enabled && global.ServerConfig.RateLimit_Max > 0 {
		rateLimitMax := global.ServerConfig.RateLimit_Max
		rateLimitWindow := time.Duration(global.ServerConfig.RateLimit_Window) * time.Second
		app.Use(limiter.New(limiter.Config{
			Max:        rateLimitMax,
			Expiration: rateLimitWindow,
			KeyGenerator: func(c fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"success": false,
					"message": "Too many requests, please try again later",
				})
			},
			Next: func(c fiber.Ctx) bool {
				// Bỏ qua rate limit cho health check và preflight
				return c.Path() == "/api/system/health" || c.Method() == "OPTIONS"
			},
		}))
		logger.GetAppLogger().Infof("Rate limiting enabled: %d requests per %d seconds", rateLimitMax, global.ServerConfig.RateLimit_Window)
	} else {
		logger.GetAppLogger().Info("Rate limiting disabled")
	}

	// 5. Recover panic thành 500, giữ server sống
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			logger.WithRequest(c).WithFields(map[string]interface{}{
				"panic": e,
			}).Error("Panic recovered")
		},
	}))

	return app
}
