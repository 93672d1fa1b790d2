package logger

import (
	"os"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// LogConfig chứa cấu hình cho hệ thống logging
type LogConfig struct {
	Level           string // Log level: debug, info, warn, error
	Format          string // Format: json hoặc text
	Output          string // Output: file, stdout, both
	LogPath         string // Thư mục chứa file log (tương đối so với root project)
	AppFile         string // Tên file log chính
	AuditFile       string // Tên file log audit
	PerformanceFile string // Tên file log performance
	ErrorFile       string // Tên file log error
	MaxSize         int    // Kích thước tối đa của file log (MB) trước khi rotate
	MaxBackups      int    // Số file log cũ giữ lại
	MaxAge          int    // Số ngày giữ file log cũ
	Compress        bool   // Nén file log cũ
	FilterPatterns  []string
}

// DefaultConfig trả về cấu hình logging mặc định, có thể override bằng env vars.
func DefaultConfig() *LogConfig {
	cfg := &LogConfig{
		Level:           getEnvOr("LOG_LEVEL", "info"),
		Format:          getEnvOr("LOG_FORMAT", "text"),
		Output:          getEnvOr("LOG_OUTPUT", "both"),
		LogPath:         getEnvOr("LOG_PATH", "logs"),
		AppFile:         "app.log",
		AuditFile:       "audit.log",
		PerformanceFile: "performance.log",
		ErrorFile:       "error.log",
		MaxSize:         getEnvIntOr("LOG_MAX_SIZE", 100),
		MaxBackups:      getEnvIntOr("LOG_MAX_BACKUPS", 5),
		MaxAge:          getEnvIntOr("LOG_MAX_AGE", 30),
		Compress:        true,
	}

	// Các pattern bị filter khỏi log (phân cách bằng dấu phẩy)
	if patterns := os.Getenv("LOG_FILTER_PATTERNS"); patterns != "" {
		for _, p := range strings.Split(patterns, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.FilterPatterns = append(cfg.FilterPatterns, p)
			}
		}
	}

	return cfg
}

func getEnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// FilterHook đánh dấu các entry khớp pattern để AsyncHook bỏ qua khi ghi.
// Đánh dấu bằng field "_filtered" thay vì chặn hẳn để không ảnh hưởng các hook khác.
type FilterHook struct {
	patterns []string
}

// NewFilterHook tạo filter hook từ cấu hình
func NewFilterHook(cfg *LogConfig) *FilterHook {
	return &FilterHook{patterns: cfg.FilterPatterns}
}

// Levels trả về các log levels mà hook này xử lý
func (h *FilterHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire đánh dấu entry bị filter nếu message khớp một pattern
func (h *FilterHook) Fire(entry *logrus.Entry) error {
	for _, p := range h.patterns {
		if strings.Contains(entry.Message, p) {
			if entry.Data == nil {
				entry.Data = logrus.Fields{}
			}
			entry.Data["_filtered"] = true
			return nil
		}
	}
	return nil
}

// WithRequest trả về entry của app logger kèm thông tin request (method, path, ip, request id).
// Dùng trong error handler và recover middleware.
func WithRequest(c fiber.Ctx) *logrus.Entry {
	return GetAppLogger().WithFields(logrus.Fields{
		"method":     c.Method(),
		"path":       c.Path(),
		"ip":         c.IP(),
		"request_id": c.Get("X-Request-ID"),
	})
}
