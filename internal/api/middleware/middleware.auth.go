package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devxankit/CRM-SaaS-sub000/internal/common"
	"github.com/devxankit/CRM-SaaS-sub000/internal/global"
	"github.com/devxankit/CRM-SaaS-sub000/internal/logger"
	"github.com/devxankit/CRM-SaaS-sub000/internal/utility"
)

// Actor là danh tính người gọi đã xác thực, gắn vào request context.
type Actor struct {
	ID   primitive.ObjectID // ID của định danh trong collection tương ứng với Role
	Role string             // Một trong: Admin, Client, Employee, ProjectManager, Sales
}

// tokenClaims là payload JWT của hệ thống: id + role của actor.
type tokenClaims struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// tokenCache giảm chi phí parse token lặp lại trong cửa sổ ngắn.
var tokenCache = utility.NewCache(5*time.Minute, 10*time.Minute)

// SignToken tạo JWT cho một actor (dùng bởi flow đăng nhập và test).
func SignToken(id primitive.ObjectID, role string, ttl time.Duration) (string, error) {
	claims := tokenClaims{
		ID:   id.Hex(),
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(global.ServerConfig.JwtSecret))
}

// ParseToken xác thực chữ ký và hạn của token, trả về Actor.
// Export để notifier dùng lại khi handshake websocket (ngoài pipeline Fiber).
func ParseToken(tokenStr string) (*Actor, error) {
	if cached, ok := tokenCache.Get(tokenStr); ok {
		if actor, ok := cached.(*Actor); ok {
			return actor, nil
		}
	}

	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(global.ServerConfig.JwtSecret), nil
	})
	if err != nil {
		if strings.Contains(err.Error(), "expired") {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, common.ErrTokenInvalid
	}

	id, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return nil, common.ErrTokenInvalid
	}
	if claims.Role == "" {
		return nil, common.ErrTokenInvalid
	}

	actor := &Actor{ID: id, Role: claims.Role}
	tokenCache.Set(tokenStr, actor)
	return actor, nil
}

// AuthMiddleware xác thực Bearer token và gắn actor vào context.
// Mọi route nghiệp vụ đều đi qua middleware này.
func AuthMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			logger.LogAuth("token_missing", c, nil)
			return HandleErrorResponse(c, common.ErrTokenMissing)
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			logger.LogAuth("token_missing", c, nil)
			return HandleErrorResponse(c, common.ErrTokenMissing)
		}

		actor, err := ParseToken(parts[1])
		if err != nil {
			logger.LogAuth("token_rejected", c, map[string]interface{}{"reason": err.Error()})
			return HandleErrorResponse(c, err)
		}

		c.Locals("actor_id", actor.ID.Hex())
		c.Locals("actor_role", actor.Role)
		return c.Next()
	}
}

// RequireRole chỉ cho phép các vai trò được liệt kê đi tiếp.
// Dùng sau AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c fiber.Ctx) error {
		role, ok := c.Locals("actor_role").(string)
		if !ok || role == "" {
			return HandleErrorResponse(c, common.ErrUnauthorized)
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		logger.LogAuth("role_denied", c, map[string]interface{}{"role": role})
		return HandleErrorResponse(c, common.ErrForbidden)
	}
}

// GetActor lấy actor đã xác thực từ context.
func GetActor(c fiber.Ctx) (*Actor, error) {
	idStr, ok := c.Locals("actor_id").(string)
	if !ok || idStr == "" {
		return nil, common.ErrUnauthorized
	}
	role, ok := c.Locals("actor_role").(string)
	if !ok || role == "" {
		return nil, common.ErrUnauthorized
	}
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		return nil, common.ErrUnauthorized
	}
	return &Actor{ID: id, Role: role}, nil
}
