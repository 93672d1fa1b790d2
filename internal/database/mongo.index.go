// Package database - Index cho các collection nghiệp vụ (compound, sparse).
package database

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// indexSpec mô tả một index cần tạo trên một collection
type indexSpec struct {
	collection string
	keys       bson.D
	name       string
	sparse     bool
	unique     bool
}

// domainIndexes là danh sách index phục vụ các truy vấn chính của hệ thống
var domainIndexes = []indexSpec{
	// requests: truy vấn incoming theo (recipient, recipientModel) và sort theo updatedAt
	{
		collection: "requests",
		keys:       bson.D{{Key: "recipient", Value: 1}, {Key: "recipientModel", Value: 1}, {Key: "updatedAt", Value: -1}},
		name:       "request_recipient_updated",
	},
	// requests: truy vấn outgoing theo (requestedBy, requestedByModel)
	{
		collection: "requests",
		keys:       bson.D{{Key: "requestedBy", Value: 1}, {Key: "requestedByModel", Value: 1}, {Key: "updatedAt", Value: -1}},
		name:       "request_requester_updated",
	},
	// requests: thống kê theo status
	{
		collection: "requests",
		keys:       bson.D{{Key: "status", Value: 1}},
		name:       "request_status",
	},
	// projects: danh sách dự án mới của một project manager
	{
		collection: "projects",
		keys:       bson.D{{Key: "projectManager", Value: 1}, {Key: "status", Value: 1}},
		name:       "project_manager_status",
	},
	// projects: feed của client lọc theo chủ sở hữu
	{
		collection: "projects",
		keys:       bson.D{{Key: "client", Value: 1}},
		name:       "project_client",
		sparse:     true,
	},
	// projects: feed của employee lọc theo thành viên được gán
	{
		collection: "projects",
		keys:       bson.D{{Key: "assignedTeam", Value: 1}},
		name:       "project_assigned_team",
	},
	// activities: quét hoạt động theo thực thể, mới nhất trước
	{
		collection: "activities",
		keys:       bson.D{{Key: "entityType", Value: 1}, {Key: "entityId", Value: 1}, {Key: "createdAt", Value: -1}},
		name:       "activity_entity_created",
	},
	// tasks: truy vấn task được gán cho employee trong 7 ngày gần nhất
	{
		collection: "tasks",
		keys:       bson.D{{Key: "assignedTo", Value: 1}, {Key: "createdAt", Value: -1}},
		name:       "task_assigned_created",
	},
	// tasks, milestones: scope feed theo dự án
	{
		collection: "tasks",
		keys:       bson.D{{Key: "project", Value: 1}},
		name:       "task_project",
	},
	{
		collection: "milestones",
		keys:       bson.D{{Key: "project", Value: 1}},
		name:       "milestone_project",
	},
	// finance_transactions: đối soát theo dự án
	{
		collection: "finance_transactions",
		keys:       bson.D{{Key: "project", Value: 1}, {Key: "createdAt", Value: -1}},
		name:       "finance_project_created",
	},
}

// CreateDomainIndexes tạo toàn bộ index nghiệp vụ. Index đã tồn tại không bị coi là lỗi.
func CreateDomainIndexes(ctx context.Context, db *mongo.Database) error {
	for _, spec := range domainIndexes {
		opts := options.Index().SetName(spec.name)
		if spec.sparse {
			opts = opts.SetSparse(true)
		}
		if spec.unique {
			opts = opts.SetUnique(true)
		}
		_, err := db.Collection(spec.collection).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    spec.keys,
			Options: opts,
		})
		if err != nil && !isIndexExistsError(err) {
			return err
		}
	}
	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
