// Package projectsvc triển khai guard lifecycle dự án phía PM:
// untouched -> started -> active, cộng meetingStatus song song.
// Mọi chuyển trạng thái là một update có điều kiện trên đúng trạng thái nguồn;
// sai nguồn thì không match document nào và trạng thái giữ nguyên.
package projectsvc

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	activitymodels "github.com/devxankit/CRM-SaaS-sub000/internal/api/activity/models"
	activitysvc "github.com/devxankit/CRM-SaaS-sub000/internal/api/activity/service"
	basemodels "github.com/devxankit/CRM-SaaS-sub000/internal/api/base/models"
	basesvc "github.com/devxankit/CRM-SaaS-sub000/internal/api/base/service"
	identitymodels "github.com/devxankit/CRM-SaaS-sub000/internal/api/identity/models"
	identitysvc "github.com/devxankit/CRM-SaaS-sub000/internal/api/identity/service"
	projectdto "github.com/devxankit/CRM-SaaS-sub000/internal/api/project/dto"
	projectmodels "github.com/devxankit/CRM-SaaS-sub000/internal/api/project/models"
	"github.com/devxankit/CRM-SaaS-sub000/internal/common"
	"github.com/devxankit/CRM-SaaS-sub000/internal/global"
	"github.com/devxankit/CRM-SaaS-sub000/internal/logger"
	"github.com/devxankit/CRM-SaaS-sub000/internal/notifier"
	"github.com/devxankit/CRM-SaaS-sub000/internal/utility"
)

// newProjectStatuses là các trạng thái coi là "dự án mới" của PM.
var newProjectStatuses = []string{
	projectmodels.ProjectStatusUntouched,
	projectmodels.ProjectStatusStarted,
}

// ProjectService là cấu trúc chứa các phương thức lifecycle dự án.
type ProjectService struct {
	*basesvc.BaseServiceMongoImpl[projectmodels.Project]
	roles      *identitysvc.RoleRegistry
	activities *activitysvc.ActivityService
}

// NewProjectService tạo mới ProjectService.
func NewProjectService() (*ProjectService, error) {
	projectCol, exist := global.RegistryCollections.Get(global.ColNames.Projects)
	if !exist {
		return nil, fmt.Errorf("failed to get projects collection: %v", common.ErrNotFound)
	}
	roles, err := identitysvc.NewRoleRegistry()
	if err != nil {
		return nil, err
	}
	activities, err := activitysvc.NewActivityService()
	if err != nil {
		return nil, err
	}

	return &ProjectService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[projectmodels.Project](projectCol),
		roles:                roles,
		activities:           activities,
	}, nil
}

// GetNewProjects liệt kê dự án mới (untouched/started) của một PM.
// Query status hợp lệ sẽ thay bộ lọc mặc định; search là regex không phân biệt
// hoa thường trên tên dự án, tên client và công ty client.
func (s *ProjectService) GetNewProjects(ctx context.Context, pmID primitive.ObjectID, q *projectdto.NewProjectListQuery) (*basemodels.PaginateResult[projectmodels.Project], error) {
	filter := bson.M{"projectManager": pmID}
	if q.Status != "" {
		if !utility.Contains(projectmodels.AllProjectStatuses, q.Status) {
			return nil, common.NewValidationError(fmt.Sprintf("Invalid project status '%s'", q.Status))
		}
		filter["status"] = q.Status
	} else {
		filter["status"] = bson.M{"$in": newProjectStatuses}
	}
	if q.Priority != "" {
		filter["priority"] = q.Priority
	}
	if q.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		filter["$or"] = []bson.M{
			{"name": pattern},
			{"clientName": pattern},
			{"clientCompany": pattern},
		}
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.FindWithPagination(ctx, filter, page, limit, opts)
}

// loadOwned load một project và kiểm tra quyền sở hữu của PM.
func (s *ProjectService) loadOwned(ctx context.Context, pmID, projectID primitive.ObjectID) (projectmodels.Project, error) {
	project, err := s.FindOneById(ctx, projectID)
	if err != nil {
		if err == common.ErrNotFound {
			return project, common.NewNotFoundError("Project not found")
		}
		return project, err
	}
	if project.ProjectManager != pmID {
		return project, common.NewForbiddenError("You do not manage this project")
	}
	return project, nil
}

// UpdateMeetingStatus cập nhật meetingStatus của một dự án chưa active.
// meetingStatus chỉ có nghĩa trong giai đoạn untouched/started.
func (s *ProjectService) UpdateMeetingStatus(ctx context.Context, pmID, projectID primitive.ObjectID, meetingStatus string) (*projectmodels.Project, error) {
	if meetingStatus != projectmodels.MeetingStatusPending && meetingStatus != projectmodels.MeetingStatusDone {
		return nil, common.NewValidationError(fmt.Sprintf("Invalid meeting status '%s'", meetingStatus))
	}

	if _, err := s.loadOwned(ctx, pmID, projectID); err != nil {
		return nil, err
	}

	updated, err := s.FindOneAndUpdate(ctx,
		bson.M{
			"_id":            projectID,
			"projectManager": pmID,
			"status":         bson.M{"$in": newProjectStatuses},
		},
		&basesvc.UpdateData{Set: map[string]interface{}{"meetingStatus": meetingStatus}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if err != nil {
		if err == common.ErrNotFound {
			return nil, common.NewConflictError("Meeting status can only be updated before the project is active")
		}
		return nil, err
	}

	s.logActivity(ctx, pmID, updated.ID, activitymodels.ActivityMeetingStatusUpdated,
		fmt.Sprintf("Meeting status updated to %s", meetingStatus),
		map[string]interface{}{"meetingStatus": meetingStatus})
	s.notifyProject(&updated, "meeting_status_updated", "Meeting status updated",
		fmt.Sprintf("Meeting status for project %s is now %s", updated.Name, meetingStatus), nil)

	return &updated, nil
}

// StartProject chuyển dự án từ untouched sang started.
// Transition không idempotent: gọi lại trên dự án đã started là Conflict.
func (s *ProjectService) StartProject(ctx context.Context, pmID, projectID primitive.ObjectID) (*projectmodels.Project, error) {
	if _, err := s.loadOwned(ctx, pmID, projectID); err != nil {
		return nil, err
	}

	updated, err := s.FindOneAndUpdate(ctx,
		bson.M{
			"_id":            projectID,
			"projectManager": pmID,
			"status":         projectmodels.ProjectStatusUntouched,
		},
		&basesvc.UpdateData{Set: map[string]interface{}{"status": projectmodels.ProjectStatusStarted}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if err != nil {
		if err == common.ErrNotFound {
			return nil, common.NewConflictError("Only untouched projects can be started")
		}
		return nil, err
	}

	s.logActivity(ctx, pmID, updated.ID, activitymodels.ActivityProjectStarted,
		fmt.Sprintf("Project %s has been started", updated.Name), nil)
	s.notifyProject(&updated, "project_started", "Project started",
		fmt.Sprintf("Work on project %s has started", updated.Name), nil)

	return &updated, nil
}

// ActivateProject chuyển dự án từ started sang active, gán team và due date.
// Trả về project đã populate client/PM/team để hiển thị.
func (s *ProjectService) ActivateProject(ctx context.Context, pmID, projectID primitive.ObjectID, input *projectdto.ActivateProjectInput) (*projectdto.ProjectDetail, error) {
	if input.DueDate <= 0 {
		return nil, common.NewValidationError("A due date is required to activate a project")
	}
	if len(input.AssignedTeam) == 0 {
		return nil, common.NewValidationError("At least one team member is required")
	}

	team := make([]primitive.ObjectID, 0, len(input.AssignedTeam))
	for _, raw := range input.AssignedTeam {
		memberID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return nil, common.NewValidationError(fmt.Sprintf("Invalid team member id '%s'", raw))
		}
		team = append(team, memberID)
	}

	if _, err := s.loadOwned(ctx, pmID, projectID); err != nil {
		return nil, err
	}

	set := map[string]interface{}{
		"status":       projectmodels.ProjectStatusActive,
		"dueDate":      input.DueDate,
		"assignedTeam": team,
	}
	if input.EstimatedHours > 0 {
		set["estimatedHours"] = input.EstimatedHours
	}
	if len(input.Tags) > 0 {
		set["tags"] = input.Tags
	}

	updated, err := s.FindOneAndUpdate(ctx,
		bson.M{
			"_id":            projectID,
			"projectManager": pmID,
			"status":         projectmodels.ProjectStatusStarted,
		},
		&basesvc.UpdateData{Set: set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if err != nil {
		if err == common.ErrNotFound {
			return nil, common.NewConflictError("Only started projects can be activated")
		}
		return nil, err
	}

	s.logActivity(ctx, pmID, updated.ID, activitymodels.ActivityProjectActivated,
		fmt.Sprintf("Project %s has been activated", updated.Name),
		map[string]interface{}{
			"teamSize": len(team),
			"dueDate":  input.DueDate,
		})

	// Thông báo cá nhân cho từng thành viên + broadcast phạm vi dự án.
	// Lỗi thông báo của một thành viên không chặn các thành viên còn lại.
	members, err := s.roles.Summaries(ctx, identitymodels.RoleEmployee, team)
	if err != nil {
		logger.GetErrorLogger().WithError(err).WithField("project", updated.ID.Hex()).
			Error("Failed to resolve team members for activation notifications")
		members = map[primitive.ObjectID]identitymodels.Summary{}
	}
	for _, memberID := range team {
		notifier.Default().NotifyUser(identitymodels.RoleEmployee, memberID.Hex(), notifier.Notification{
			Type:      "project_activated",
			Title:     "You have been assigned to a project",
			Message:   fmt.Sprintf("You have been assigned to project %s", updated.Name),
			ProjectID: updated.ID.Hex(),
			Timestamp: time.Now().UnixMilli(),
		})
		if member, ok := members[memberID]; ok && member.Email != "" {
			notifier.SendActivationEmail(member.Email, member.Name, updated.Name, updated.DueDate)
		}
	}
	s.notifyProject(&updated, "project_activated", "Project activated",
		fmt.Sprintf("Project %s is now active", updated.Name),
		map[string]interface{}{"teamSize": len(team)})

	return s.populate(ctx, &updated)
}

// logActivity ghi một activity record. Lỗi ghi activity chỉ log, không chặn nghiệp vụ.
func (s *ProjectService) logActivity(ctx context.Context, pmID, projectID primitive.ObjectID, activityType, message string, metadata map[string]interface{}) {
	_, err := s.activities.Log(ctx, activitymodels.Activity{
		EntityType:   activitymodels.EntityTypeProject,
		EntityID:     projectID,
		ActivityType: activityType,
		User:         pmID,
		UserModel:    identitymodels.RoleProjectManager,
		Message:      message,
		Metadata:     metadata,
	})
	if err != nil {
		logger.GetErrorLogger().WithError(err).WithFields(map[string]interface{}{
			"project":  projectID.Hex(),
			"activity": activityType,
		}).Error("Failed to record project activity")
	}
}

// notifyProject đẩy một notification phạm vi dự án tới client của dự án (nếu có).
func (s *ProjectService) notifyProject(project *projectmodels.Project, notifType, title, message string, metadata map[string]interface{}) {
	n := notifier.Notification{
		Type:      notifType,
		Title:     title,
		Message:   message,
		ProjectID: project.ID.Hex(),
		Metadata:  metadata,
		Timestamp: time.Now().UnixMilli(),
	}
	if !project.Client.IsZero() {
		notifier.Default().NotifyUser(identitymodels.RoleClient, project.Client.Hex(), n)
	}
	notifier.Default().Broadcast(n)
}

// populate resolve client/PM/team của một project cho hiển thị.
func (s *ProjectService) populate(ctx context.Context, project *projectmodels.Project) (*projectdto.ProjectDetail, error) {
	detail := &projectdto.ProjectDetail{Project: *project}

	if pm, err := s.roles.Summary(ctx, identitymodels.RoleProjectManager, project.ProjectManager); err == nil {
		detail.ProjectManagerInfo = &pm
	}
	if !project.Client.IsZero() {
		if client, err := s.roles.Summary(ctx, identitymodels.RoleClient, project.Client); err == nil {
			detail.ClientInfo = &client
		}
	}
	if len(project.AssignedTeam) > 0 {
		members, err := s.roles.Summaries(ctx, identitymodels.RoleEmployee, project.AssignedTeam)
		if err != nil {
			return nil, err
		}
		detail.TeamInfo = make([]identitymodels.Summary, 0, len(project.AssignedTeam))
		for _, memberID := range project.AssignedTeam {
			if member, ok := members[memberID]; ok {
				detail.TeamInfo = append(detail.TeamInfo, member)
			}
		}
	}
	return detail, nil
}
