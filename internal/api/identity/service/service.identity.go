// Package identitysvc cung cấp RoleRegistry: điểm duy nhất ánh xạ role tag sang
// collection định danh tương ứng. Mọi chỗ cần resolve/populate danh tính theo
// (id, roleModel) đều đi qua đây, không giữ map riêng trong handler.
package identitysvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/devxankit/CRM-SaaS-sub000/internal/api/base/service"
	identitymodels "github.com/devxankit/CRM-SaaS-sub000/internal/api/identity/models"
	"github.com/devxankit/CRM-SaaS-sub000/internal/common"
	"github.com/devxankit/CRM-SaaS-sub000/internal/global"
)

// RoleRegistry giữ một base service cho mỗi collection vai trò.
type RoleRegistry struct {
	services map[string]*basesvc.BaseServiceMongoImpl[identitymodels.Identity]
}

// NewRoleRegistry khởi tạo registry từ các collection đã đăng ký trong global.
func NewRoleRegistry() (*RoleRegistry, error) {
	roleCollections := map[string]string{
		identitymodels.RoleAdmin:          global.ColNames.Admins,
		identitymodels.RoleClient:         global.ColNames.Clients,
		identitymodels.RoleEmployee:       global.ColNames.Employees,
		identitymodels.RoleProjectManager: global.ColNames.ProjectManagers,
		identitymodels.RoleSales:          global.ColNames.Sales,
	}

	services := make(map[string]*basesvc.BaseServiceMongoImpl[identitymodels.Identity], len(roleCollections))
	for role, colName := range roleCollections {
		col, exist := global.RegistryCollections.Get(colName)
		if !exist {
			return nil, fmt.Errorf("failed to get %s collection: %v", colName, common.ErrNotFound)
		}
		services[role] = basesvc.NewBaseServiceMongo[identitymodels.Identity](col)
	}

	return &RoleRegistry{services: services}, nil
}

// serviceFor trả về base service của một role tag.
func (r *RoleRegistry) serviceFor(role string) (*basesvc.BaseServiceMongoImpl[identitymodels.Identity], error) {
	svc, ok := r.services[role]
	if !ok {
		return nil, common.NewValidationError(fmt.Sprintf("Invalid role model '%s'", role))
	}
	return svc, nil
}

// Resolve tìm một định danh theo (role tag, id).
func (r *RoleRegistry) Resolve(ctx context.Context, role string, id primitive.ObjectID) (identitymodels.Identity, error) {
	svc, err := r.serviceFor(role)
	if err != nil {
		return identitymodels.Identity{}, err
	}
	return svc.FindOne(ctx, bson.M{"_id": id}, nil)
}

// Exists kiểm tra một định danh có tồn tại theo (role tag, id).
func (r *RoleRegistry) Exists(ctx context.Context, role string, id primitive.ObjectID) (bool, error) {
	svc, err := r.serviceFor(role)
	if err != nil {
		return false, err
	}
	return svc.DocumentExists(ctx, bson.M{"_id": id})
}

// Summary trả về projection gọn của một định danh; lỗi NotFound trả về zero Summary
// để caller hiển thị "unknown actor" thay vì fail cả response.
func (r *RoleRegistry) Summary(ctx context.Context, role string, id primitive.ObjectID) (identitymodels.Summary, error) {
	identity, err := r.Resolve(ctx, role, id)
	if err != nil {
		return identitymodels.Summary{}, err
	}
	return identity.ToSummary(), nil
}

// Summaries tìm nhiều định danh của cùng một role tag, trả về map theo id.
// Dùng khi populate danh sách để tránh N+1 query.
func (r *RoleRegistry) Summaries(ctx context.Context, role string, ids []primitive.ObjectID) (map[primitive.ObjectID]identitymodels.Summary, error) {
	out := make(map[primitive.ObjectID]identitymodels.Summary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	svc, err := r.serviceFor(role)
	if err != nil {
		return nil, err
	}
	identities, err := svc.FindManyByIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, identity := range identities {
		out[identity.ID] = identity.ToSummary()
	}
	return out, nil
}

// ListByRole liệt kê định danh của một role tag, giới hạn limit bản ghi, sort theo tên.
// Dùng cho danh sách người nhận khi soạn request.
func (r *RoleRegistry) ListByRole(ctx context.Context, role string, limit int64) ([]identitymodels.Summary, error) {
	svc, err := r.serviceFor(role)
	if err != nil {
		return nil, err
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(limit).
		SetProjection(bson.M{"name": 1, "email": 1, "phone": 1})
	identities, err := svc.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	summaries := make([]identitymodels.Summary, 0, len(identities))
	for _, identity := range identities {
		summaries = append(summaries, identity.ToSummary())
	}
	return summaries, nil
}
