package main

import (
	"context"
	"crypto/tls"
	"net"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/devxankit/CRM-SaaS-sub000/internal/api/base/handler"
	feedrouter "github.com/devxankit/CRM-SaaS-sub000/internal/api/feed/router"
	projectrouter "github.com/devxankit/CRM-SaaS-sub000/internal/api/project/router"
	requestrouter "github.com/devxankit/CRM-SaaS-sub000/internal/api/request/router"
	"github.com/devxankit/CRM-SaaS-sub000/internal/api/router"
	"github.com/devxankit/CRM-SaaS-sub000/internal/global"
	"github.com/devxankit/CRM-SaaS-sub000/internal/logger"
	"github.com/devxankit/CRM-SaaS-sub000/internal/notifier"
	"github.com/devxankit/CRM-SaaS-sub000/internal/worker"
)

// initLogger khởi tạo và cấu hình logger cho toàn bộ ứng dụng
func initLogger() {
	if err := logger.Init(nil); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	logger.GetAppLogger().Info("Logger system initialized successfully")
}

// registerSystemRoutes đăng ký route hệ thống (health check, không cần auth).
func registerSystemRoutes(api fiber.Router, _ *router.Router) error {
	handler, err := basehdl.NewSystemHandler()
	if err != nil {
		return err
	}
	api.Get("/system/health", handler.HandleHealth)
	return nil
}

// resolvePath resolve đường dẫn tương đối từ thư mục gốc của project
// (thư mục chứa config/env).
func resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	currentDir, err := os.Getwd()
	if err != nil {
		return path
	}
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(currentDir, path)
		}
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return path
		}
		currentDir = parentDir
	}
}

// main_thread khởi tạo và chạy Fiber server
func main_thread() {
	app := InitFiberApp()
	log := logger.GetAppLogger()

	if err := router.SetupRoutes(app,
		registerSystemRoutes,
		requestrouter.RegisterRequestRoutes,
		projectrouter.RegisterProjectRoutes,
		feedrouter.RegisterFeedRoutes,
	); err != nil {
		log.WithError(err).Fatal("Failed to set up routes")
	}

	cfg := global.ServerConfig
	address := cfg.Address
	log.Info("Starting Fiber server...")

	if cfg.EnableTLS && cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		certPath := resolvePath(cfg.TLSCertFile)
		keyPath := resolvePath(cfg.TLSKeyFile)

		if _, err := os.Stat(certPath); os.IsNotExist(err) {
			log.Fatalf("TLS certificate file not found: %s", certPath)
		}
		if _, err := os.Stat(keyPath); os.IsNotExist(err) {
			log.Fatalf("TLS key file not found: %s", keyPath)
		}

		cert, err := tls.LoadX509KeyPair(certPath, keyPath)
		if err != nil {
			log.Fatalf("Error loading TLS certificate: %v", err)
		}

		ln, err := net.Listen("tcp", address)
		if err != nil {
			log.Fatalf("Error creating listener: %v", err)
		}
		tlsListener := tls.NewListener(ln, &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		})

		log.WithFields(map[string]interface{}{
			"address": address,
			"cert":    certPath,
		}).Info("Starting server with HTTPS/TLS")
		if err := app.Listener(tlsListener); err != nil {
			log.Fatalf("Error in Fiber Listener with TLS: %v", err)
		}
	} else {
		log.WithFields(map[string]interface{}{
			"address":  address,
			"protocol": "HTTP",
		}).Info("Starting server with HTTP")
		if err := app.Listen(address, fiber.ListenConfig{}); err != nil {
			log.Fatalf("Error in Fiber Listen: %v", err)
		}
	}
}

// Hàm main
func main() {
	initLogger()
	InitGlobal()
	InitRegistry()

	log := logger.GetAppLogger()

	// Worker đối soát các tổng tài chính stale, chạy nền tới khi server dừng
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if totalsWorker, err := worker.NewFinanceTotalsWorker(0, 0); err != nil {
		log.WithError(err).Error("Failed to create finance totals worker, continuing without it")
	} else {
		go totalsWorker.Start(ctx)
	}

	// Websocket notification hub chạy trên listener net/http riêng
	// (gorilla/websocket không chạy trên nền fasthttp của Fiber).
	// Hub nhận cả các event thay đổi dữ liệu từ tầng CRUD.
	notifier.BindDataChanges(notifier.Default())
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.WithFields(map[string]interface{}{"panic": r}).
					Error("Notification hub goroutine panic")
			}
		}()
		log.Infof("Starting notification hub on %s", global.ServerConfig.WSAddress)
		if err := notifier.Default().Serve(global.ServerConfig.WSAddress); err != nil {
			log.WithError(err).Error("Notification hub stopped")
		}
	}()

	main_thread()
}
