// Package feedsvc dựng feed thông báo đọc-lúc-gọi cho client và employee.
// Thuần read-side: không ghi gì vào store; feed là snapshot tại thời điểm gọi,
// không có bảo đảm nhất quán chéo giữa các query thành phần.
package feedsvc

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	activitymodels "github.com/devxankit/CRM-SaaS-sub000/internal/api/activity/models"
	activitysvc "github.com/devxankit/CRM-SaaS-sub000/internal/api/activity/service"
	basesvc "github.com/devxankit/CRM-SaaS-sub000/internal/api/base/service"
	feeddto "github.com/devxankit/CRM-SaaS-sub000/internal/api/feed/dto"
	identitymodels "github.com/devxankit/CRM-SaaS-sub000/internal/api/identity/models"
	projectmodels "github.com/devxankit/CRM-SaaS-sub000/internal/api/project/models"
	requestmodels "github.com/devxankit/CRM-SaaS-sub000/internal/api/request/models"
	"github.com/devxankit/CRM-SaaS-sub000/internal/common"
	"github.com/devxankit/CRM-SaaS-sub000/internal/global"
)

// Giới hạn số dòng của feed.
const (
	FeedLimitMin     = 5
	FeedLimitMax     = 100
	FeedLimitDefault = 30
)

// taskAssignedWindow là cửa sổ nhìn lại cho thông báo "task assigned" tổng hợp.
const taskAssignedWindow = 7 * 24 * time.Hour

// FeedService là cấu trúc chứa các phương thức dựng feed.
type FeedService struct {
	requests   *basesvc.BaseServiceMongoImpl[requestmodels.Request]
	projects   *basesvc.BaseServiceMongoImpl[projectmodels.Project]
	milestones *basesvc.BaseServiceMongoImpl[projectmodels.Milestone]
	tasks      *basesvc.BaseServiceMongoImpl[projectmodels.Task]
	activities *activitysvc.ActivityService
}

// NewFeedService tạo mới FeedService.
func NewFeedService() (*FeedService, error) {
	requestCol, exist := global.RegistryCollections.Get(global.ColNames.Requests)
	if !exist {
		return nil, fmt.Errorf("failed to get requests collection: %v", common.ErrNotFound)
	}
	projectCol, exist := global.RegistryCollections.Get(global.ColNames.Projects)
	if !exist {
		return nil, fmt.Errorf("failed to get projects collection: %v", common.ErrNotFound)
	}
	milestoneCol, exist := global.RegistryCollections.Get(global.ColNames.Milestones)
	if !exist {
		return nil, fmt.Errorf("failed to get milestones collection: %v", common.ErrNotFound)
	}
	taskCol, exist := global.RegistryCollections.Get(global.ColNames.Tasks)
	if !exist {
		return nil, fmt.Errorf("failed to get tasks collection: %v", common.ErrNotFound)
	}
	activities, err := activitysvc.NewActivityService()
	if err != nil {
		return nil, err
	}

	return &FeedService{
		requests:   basesvc.NewBaseServiceMongo[requestmodels.Request](requestCol),
		projects:   basesvc.NewBaseServiceMongo[projectmodels.Project](projectCol),
		milestones: basesvc.NewBaseServiceMongo[projectmodels.Milestone](milestoneCol),
		tasks:      basesvc.NewBaseServiceMongo[projectmodels.Task](taskCol),
		activities: activities,
	}, nil
}

// ClampLimit đưa limit về khoảng cho phép, 0 lấy mặc định.
func ClampLimit(limit int64) int64 {
	if limit == 0 {
		return FeedLimitDefault
	}
	if limit < FeedLimitMin {
		return FeedLimitMin
	}
	if limit > FeedLimitMax {
		return FeedLimitMax
	}
	return limit
}

// SortKey là khóa sắp xếp của một dòng feed: updatedAt, thiếu thì createdAt.
func SortKey(item *feeddto.FeedItem) int64 {
	if item.UpdatedAt > 0 {
		return item.UpdatedAt
	}
	return item.CreatedAt
}

// MergeStreams gộp nhiều stream thành một feed: sort theo SortKey giảm dần,
// cắt về limit. Sort ổn định để các dòng cùng mốc thời gian giữ thứ tự stream.
func MergeStreams(limit int64, streams ...[]feeddto.FeedItem) []feeddto.FeedItem {
	merged := make([]feeddto.FeedItem, 0)
	for _, stream := range streams {
		merged = append(merged, stream...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return SortKey(&merged[i]) > SortKey(&merged[j])
	})
	if int64(len(merged)) > limit {
		merged = merged[:limit]
	}
	return merged
}

// RequestDirection phân loại hướng của một request so với người xem.
// Nhánh other là fallback phòng hờ, bình thường query đã lọc đúng.
func RequestDirection(req *requestmodels.Request, viewerID primitive.ObjectID, viewerRole string) string {
	if req.IsRecipient(viewerID, viewerRole) {
		return feeddto.DirectionIncoming
	}
	if req.IsRequestedBy(viewerID, viewerRole) {
		return feeddto.DirectionOutgoing
	}
	return feeddto.DirectionOther
}

// RequestMessage dựng message theo hướng và trạng thái của request.
func RequestMessage(req *requestmodels.Request, direction string) string {
	resolved := req.Status != requestmodels.StatusPending
	switch {
	case direction == feeddto.DirectionIncoming && !resolved:
		return fmt.Sprintf("New request awaiting your response: %s", req.Title)
	case direction == feeddto.DirectionIncoming && resolved:
		return fmt.Sprintf("Request \"%s\" has been %s", req.Title, req.Status)
	case direction == feeddto.DirectionOutgoing && !resolved:
		return fmt.Sprintf("Your request \"%s\" is pending", req.Title)
	case direction == feeddto.DirectionOutgoing && resolved:
		return fmt.Sprintf("Your request \"%s\" has been %s", req.Title, req.Status)
	default:
		return fmt.Sprintf("Request \"%s\" was updated", req.Title)
	}
}

// requestItems fetch và render các request liên quan tới người xem.
func (s *FeedService) requestItems(ctx context.Context, viewerID primitive.ObjectID, viewerRole string, limit int64) ([]feeddto.FeedItem, error) {
	filter := bson.M{"$or": []bson.M{
		{"recipient": viewerID, "recipientModel": viewerRole},
		{"requestedBy": viewerID, "requestedByModel": viewerRole},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}}).SetLimit(limit)
	reqs, err := s.requests.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	items := make([]feeddto.FeedItem, 0, len(reqs))
	for i := range reqs {
		direction := RequestDirection(&reqs[i], viewerID, viewerRole)
		items = append(items, feeddto.FeedItem{
			ID:        reqs[i].ID.Hex(),
			Kind:      feeddto.KindRequest,
			Title:     reqs[i].Title,
			Message:   RequestMessage(&reqs[i], direction),
			Direction: direction,
			Status:    reqs[i].Status,
			Priority:  reqs[i].Priority,
			CreatedAt: reqs[i].CreatedAt,
			UpdatedAt: reqs[i].UpdatedAt,
		})
	}
	return items, nil
}

// entityRefOfProject dựng payload hiển thị của project từ map đã fetch sẵn.
func entityRefOfProject(projects map[primitive.ObjectID]projectmodels.Project, id primitive.ObjectID) *feeddto.EntityRef {
	if p, ok := projects[id]; ok {
		return &feeddto.EntityRef{ID: p.ID.Hex(), Name: p.Name, Status: p.Status}
	}
	return nil
}

// activityItems render các activity thành dòng feed, resolve payload hiển thị
// theo entityType bằng các map trong bộ nhớ (không query thêm theo từng dòng).
func activityItems(
	activities []activitymodels.Activity,
	projects map[primitive.ObjectID]projectmodels.Project,
	milestones map[primitive.ObjectID]projectmodels.Milestone,
	tasks map[primitive.ObjectID]projectmodels.Task,
) []feeddto.FeedItem {
	items := make([]feeddto.FeedItem, 0, len(activities))
	for i := range activities {
		a := &activities[i]
		item := feeddto.FeedItem{
			ID:        a.ID.Hex(),
			Kind:      feeddto.KindActivity,
			Title:     a.ActivityType,
			Message:   a.Message,
			Metadata:  a.Metadata,
			CreatedAt: a.CreatedAt,
			UpdatedAt: a.UpdatedAt,
		}
		switch a.EntityType {
		case activitymodels.EntityTypeProject:
			item.Project = entityRefOfProject(projects, a.EntityID)
		case activitymodels.EntityTypeMilestone:
			if m, ok := milestones[a.EntityID]; ok {
				item.Milestone = &feeddto.EntityRef{ID: m.ID.Hex(), Name: m.Title, Status: m.Status}
				item.Project = entityRefOfProject(projects, m.Project)
			}
		case activitymodels.EntityTypeTask:
			if t, ok := tasks[a.EntityID]; ok {
				item.Task = &feeddto.EntityRef{ID: t.ID.Hex(), Name: t.Title, Status: t.Status}
				if m, ok := milestones[t.Milestone]; ok {
					item.Milestone = &feeddto.EntityRef{ID: m.ID.Hex(), Name: m.Title, Status: m.Status}
				}
				item.Project = entityRefOfProject(projects, t.Project)
			}
		}
		items = append(items, item)
	}
	return items
}

// ClientFeed dựng feed cho một client: request liên quan + activity của các
// dự án mà client sở hữu. Hai query gốc không phụ thuộc nhau nên chạy song song.
func (s *FeedService) ClientFeed(ctx context.Context, clientID primitive.ObjectID, limit int64) ([]feeddto.FeedItem, error) {
	limit = ClampLimit(limit)

	var (
		wg          sync.WaitGroup
		projectList []projectmodels.Project
		reqItems    []feeddto.FeedItem
		projectErr  error
		requestErr  error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		projectList, projectErr = s.projects.Find(ctx, bson.M{"client": clientID}, nil)
	}()
	go func() {
		defer wg.Done()
		reqItems, requestErr = s.requestItems(ctx, clientID, identitymodels.RoleClient, limit)
	}()
	wg.Wait()
	if projectErr != nil {
		return nil, projectErr
	}
	if requestErr != nil {
		return nil, requestErr
	}

	projectByID := make(map[primitive.ObjectID]projectmodels.Project, len(projectList))
	projectIDs := make([]primitive.ObjectID, 0, len(projectList))
	for _, p := range projectList {
		projectByID[p.ID] = p
		projectIDs = append(projectIDs, p.ID)
	}

	// Activity phụ thuộc tập dự án nên chạy sau
	var actItems []feeddto.FeedItem
	if len(projectIDs) > 0 {
		acts, err := s.activities.FindByEntities(ctx, activitymodels.EntityTypeProject, projectIDs, limit)
		if err != nil {
			return nil, err
		}
		actItems = activityItems(acts, projectByID, nil, nil)
	}

	return MergeStreams(limit, reqItems, actItems), nil
}

// EmployeeFeed dựng feed cho một employee: request liên quan + activity của các
// dự án/milestone/task trong phạm vi của employee + thông báo "task assigned"
// tổng hợp từ các task mới giao trong 7 ngày.
func (s *FeedService) EmployeeFeed(ctx context.Context, employeeID primitive.ObjectID, limit int64) ([]feeddto.FeedItem, error) {
	limit = ClampLimit(limit)

	// Hai query gốc độc lập: dự án có mặt trong team, và task được giao
	var (
		wg         sync.WaitGroup
		teamList   []projectmodels.Project
		myTasks    []projectmodels.Task
		projectErr error
		taskErr    error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		teamList, projectErr = s.projects.Find(ctx, bson.M{"assignedTeam": employeeID}, nil)
	}()
	go func() {
		defer wg.Done()
		myTasks, taskErr = s.tasks.Find(ctx, bson.M{"assignedTo": employeeID}, nil)
	}()
	wg.Wait()
	if projectErr != nil {
		return nil, projectErr
	}
	if taskErr != nil {
		return nil, taskErr
	}

	// Hợp hai nguồn dự án, dedup theo id
	projectByID := make(map[primitive.ObjectID]projectmodels.Project, len(teamList))
	for _, p := range teamList {
		projectByID[p.ID] = p
	}
	// Dự án của các task được giao, dedup phía server bằng distinct
	taskProjects, err := s.tasks.Distinct(ctx, "project", bson.M{"assignedTo": employeeID})
	if err != nil {
		return nil, err
	}
	var missing []primitive.ObjectID
	for _, v := range taskProjects {
		id, ok := v.(primitive.ObjectID)
		if !ok || id.IsZero() {
			continue
		}
		if _, ok := projectByID[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		extra, err := s.projects.FindManyByIds(ctx, missing)
		if err != nil {
			return nil, err
		}
		for _, p := range extra {
			projectByID[p.ID] = p
		}
	}
	projectIDs := make([]primitive.ObjectID, 0, len(projectByID))
	for id := range projectByID {
		projectIDs = append(projectIDs, id)
	}

	// Milestone của các dự án trong phạm vi, map theo id
	milestoneByID := make(map[primitive.ObjectID]projectmodels.Milestone)
	var milestoneIDs []primitive.ObjectID
	if len(projectIDs) > 0 {
		milestoneList, err := s.milestones.Find(ctx, bson.M{"project": bson.M{"$in": projectIDs}}, nil)
		if err != nil {
			return nil, err
		}
		for _, m := range milestoneList {
			milestoneByID[m.ID] = m
			milestoneIDs = append(milestoneIDs, m.ID)
		}
	}

	taskByID := make(map[primitive.ObjectID]projectmodels.Task, len(myTasks))
	taskIDs := make([]primitive.ObjectID, 0, len(myTasks))
	for _, t := range myTasks {
		taskByID[t.ID] = t
		taskIDs = append(taskIDs, t.ID)
	}

	// Activity theo ba tập entity trong phạm vi
	var allActivities []activitymodels.Activity
	fetch := func(entityType string, ids []primitive.ObjectID) error {
		if len(ids) == 0 {
			return nil
		}
		acts, err := s.activities.FindByEntities(ctx, entityType, ids, limit)
		if err != nil {
			return err
		}
		allActivities = append(allActivities, acts...)
		return nil
	}
	if err := fetch(activitymodels.EntityTypeProject, projectIDs); err != nil {
		return nil, err
	}
	if err := fetch(activitymodels.EntityTypeMilestone, milestoneIDs); err != nil {
		return nil, err
	}
	if err := fetch(activitymodels.EntityTypeTask, taskIDs); err != nil {
		return nil, err
	}
	actItems := activityItems(allActivities, projectByID, milestoneByID, taskByID)

	// Thông báo "task assigned" tổng hợp: không lưu trong store, dẫn xuất từ
	// các task mới giao trong cửa sổ 7 ngày
	cutoff := time.Now().Add(-taskAssignedWindow).UnixMilli()
	taskItems := make([]feeddto.FeedItem, 0)
	for _, t := range myTasks {
		if t.CreatedAt < cutoff {
			continue
		}
		item := feeddto.FeedItem{
			ID:        t.ID.Hex(),
			Kind:      feeddto.KindTaskAssignment,
			Title:     "Task assigned",
			Message:   fmt.Sprintf("You have been assigned to task \"%s\"", t.Title),
			Status:    t.Status,
			Task:      &feeddto.EntityRef{ID: t.ID.Hex(), Name: t.Title, Status: t.Status},
			Project:   entityRefOfProject(projectByID, t.Project),
			CreatedAt: t.CreatedAt,
		}
		taskItems = append(taskItems, item)
	}

	reqItems, err := s.requestItems(ctx, employeeID, identitymodels.RoleEmployee, limit)
	if err != nil {
		return nil, err
	}

	return MergeStreams(limit, reqItems, actItems, taskItems), nil
}
