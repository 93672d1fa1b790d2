// Package activitysvc ghi và truy vấn activity log.
// Log là append-only: service không expose update/delete.
package activitysvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	activitymodels "github.com/devxankit/CRM-SaaS-sub000/internal/api/activity/models"
	basesvc "github.com/devxankit/CRM-SaaS-sub000/internal/api/base/service"
	"github.com/devxankit/CRM-SaaS-sub000/internal/common"
	"github.com/devxankit/CRM-SaaS-sub000/internal/global"
)

// ActivityService là cấu trúc chứa các phương thức liên quan đến Activity log.
type ActivityService struct {
	*basesvc.BaseServiceMongoImpl[activitymodels.Activity]
}

// NewActivityService tạo mới ActivityService.
func NewActivityService() (*ActivityService, error) {
	collection, exist := global.RegistryCollections.Get(global.ColNames.Activities)
	if !exist {
		return nil, fmt.Errorf("failed to get activities collection: %v", common.ErrNotFound)
	}

	return &ActivityService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[activitymodels.Activity](collection),
	}, nil
}

// Log ghi một activity mới. Message dài quá giới hạn bị cắt bớt.
func (s *ActivityService) Log(ctx context.Context, a activitymodels.Activity) (activitymodels.Activity, error) {
	if len(a.Message) > activitymodels.MessageMaxLength {
		a.Message = a.Message[:activitymodels.MessageMaxLength]
	}
	return s.InsertOne(ctx, a)
}

// FindByEntities trả về các activity gắn với một tập thực thể cùng loại,
// mới nhất trước, giới hạn limit bản ghi.
func (s *ActivityService) FindByEntities(ctx context.Context, entityType string, entityIDs []primitive.ObjectID, limit int64) ([]activitymodels.Activity, error) {
	if len(entityIDs) == 0 {
		return []activitymodels.Activity{}, nil
	}
	filter := bson.M{
		"entityType": entityType,
		"entityId":   bson.M{"$in": entityIDs},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	return s.Find(ctx, filter, opts)
}
