// Package middleware - test vòng ký/parse token với secret cấu hình sẵn.
package middleware

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devxankit/CRM-SaaS-sub000/config"
	"github.com/devxankit/CRM-SaaS-sub000/internal/common"
	"github.com/devxankit/CRM-SaaS-sub000/internal/global"
)

func setupTestSecret(t *testing.T) {
	t.Helper()
	global.ServerConfig = &config.Configuration{JwtSecret: "test-secret"}
}

func TestSignVaParseToken(t *testing.T) {
	setupTestSecret(t)
	id := primitive.NewObjectID()

	token, err := SignToken(id, "ProjectManager", time.Hour)
	if err != nil {
		t.Fatalf("SignToken lỗi: %v", err)
	}

	actor, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken lỗi: %v", err)
	}
	if actor.ID != id {
		t.Errorf("actor.ID sai: muốn %s, có %s", id.Hex(), actor.ID.Hex())
	}
	if actor.Role != "ProjectManager" {
		t.Errorf("actor.Role sai: %q", actor.Role)
	}
}

func TestParseToken_HetHan(t *testing.T) {
	setupTestSecret(t)

	token, err := SignToken(primitive.NewObjectID(), "Client", -time.Minute)
	if err != nil {
		t.Fatalf("SignToken lỗi: %v", err)
	}
	if _, err := ParseToken(token); err != common.ErrTokenExpired {
		t.Errorf("token hết hạn phải trả ErrTokenExpired, có %v", err)
	}
}

func TestParseToken_KhongHopLe(t *testing.T) {
	setupTestSecret(t)
	if _, err := ParseToken("not-a-jwt"); err != common.ErrTokenInvalid {
		t.Errorf("token rác phải trả ErrTokenInvalid, có %v", err)
	}

	// Token ký bằng secret khác phải bị từ chối
	token, err := SignToken(primitive.NewObjectID(), "Admin", time.Hour)
	if err != nil {
		t.Fatalf("SignToken lỗi: %v", err)
	}
	global.ServerConfig = &config.Configuration{JwtSecret: "other-secret"}
	if _, err := ParseToken(token); err != common.ErrTokenInvalid {
		t.Errorf("token sai chữ ký phải trả ErrTokenInvalid, có %v", err)
	}
}
