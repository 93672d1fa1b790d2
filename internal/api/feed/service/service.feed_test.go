// Package feedsvc - test các hàm thuần của feed: clamp limit, merge/sort/cap,
// phân loại hướng request và resolve payload hiển thị của activity.
package feedsvc

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	activitymodels "github.com/devxankit/CRM-SaaS-sub000/internal/api/activity/models"
	feeddto "github.com/devxankit/CRM-SaaS-sub000/internal/api/feed/dto"
	projectmodels "github.com/devxankit/CRM-SaaS-sub000/internal/api/project/models"
	requestmodels "github.com/devxankit/CRM-SaaS-sub000/internal/api/request/models"
)

func TestClampLimit(t *testing.T) {
	cases := []struct {
		in   int64
		want int64
	}{
		{0, FeedLimitDefault},
		{1, FeedLimitMin},
		{5, 5},
		{30, 30},
		{100, 100},
		{500, FeedLimitMax},
	}
	for _, c := range cases {
		if got := ClampLimit(c.in); got != c.want {
			t.Errorf("ClampLimit(%d) = %d, muốn %d", c.in, got, c.want)
		}
	}
}

func TestSortKey_UpdatedAtRoiVeCreatedAt(t *testing.T) {
	withUpdated := feeddto.FeedItem{CreatedAt: 100, UpdatedAt: 200}
	if got := SortKey(&withUpdated); got != 200 {
		t.Errorf("SortKey phải ưu tiên updatedAt, có %d", got)
	}
	withoutUpdated := feeddto.FeedItem{CreatedAt: 100}
	if got := SortKey(&withoutUpdated); got != 100 {
		t.Errorf("SortKey phải rơi về createdAt khi thiếu updatedAt, có %d", got)
	}
}

func TestMergeStreams_SortGiamDanVaCatLimit(t *testing.T) {
	a := []feeddto.FeedItem{
		{ID: "a1", CreatedAt: 10},
		{ID: "a2", CreatedAt: 30},
	}
	b := []feeddto.FeedItem{
		{ID: "b1", CreatedAt: 5, UpdatedAt: 40},
		{ID: "b2", CreatedAt: 20},
	}

	merged := MergeStreams(3, a, b)
	if len(merged) != 3 {
		t.Fatalf("feed phải bị cắt về limit 3, có %d dòng", len(merged))
	}
	want := []string{"b1", "a2", "b2"}
	for i, id := range want {
		if merged[i].ID != id {
			t.Errorf("vị trí %d: muốn %s, có %s", i, id, merged[i].ID)
		}
	}
}

func TestMergeStreams_MoiDongReadFalse(t *testing.T) {
	items := MergeStreams(10, []feeddto.FeedItem{
		{ID: "x", CreatedAt: 1},
		{ID: "y", CreatedAt: 2},
	})
	for _, item := range items {
		if item.Read {
			t.Errorf("dòng %s phải có read=false (trạng thái đã-đọc chưa được lưu)", item.ID)
		}
	}
}

func TestRequestDirection(t *testing.T) {
	viewer := primitive.NewObjectID()
	other := primitive.NewObjectID()

	incoming := requestmodels.Request{Recipient: viewer, RecipientModel: "Client"}
	if got := RequestDirection(&incoming, viewer, "Client"); got != feeddto.DirectionIncoming {
		t.Errorf("muốn incoming, có %s", got)
	}

	outgoing := requestmodels.Request{RequestedBy: viewer, RequestedByModel: "Client"}
	if got := RequestDirection(&outgoing, viewer, "Client"); got != feeddto.DirectionOutgoing {
		t.Errorf("muốn outgoing, có %s", got)
	}

	unrelated := requestmodels.Request{Recipient: other, RecipientModel: "Client", RequestedBy: other, RequestedByModel: "Admin"}
	if got := RequestDirection(&unrelated, viewer, "Client"); got != feeddto.DirectionOther {
		t.Errorf("muốn other (fallback), có %s", got)
	}

	// Cùng id nhưng roleModel khác vẫn không phải incoming
	wrongModel := requestmodels.Request{Recipient: viewer, RecipientModel: "Employee"}
	if got := RequestDirection(&wrongModel, viewer, "Client"); got != feeddto.DirectionOther {
		t.Errorf("roleModel khác phải ra other, có %s", got)
	}
}

func TestRequestMessage_BonTemplateTheoHuongVaTrangThai(t *testing.T) {
	pendingIn := requestmodels.Request{Title: "Leave", Status: requestmodels.StatusPending}
	resolvedIn := requestmodels.Request{Title: "Leave", Status: requestmodels.StatusApproved}

	msgs := map[string]string{
		"incoming-pending":  RequestMessage(&pendingIn, feeddto.DirectionIncoming),
		"incoming-resolved": RequestMessage(&resolvedIn, feeddto.DirectionIncoming),
		"outgoing-pending":  RequestMessage(&pendingIn, feeddto.DirectionOutgoing),
		"outgoing-resolved": RequestMessage(&resolvedIn, feeddto.DirectionOutgoing),
		"other":             RequestMessage(&pendingIn, feeddto.DirectionOther),
	}

	seen := map[string]bool{}
	for name, msg := range msgs {
		if msg == "" {
			t.Errorf("template %s trả về message rỗng", name)
		}
		if seen[msg] {
			t.Errorf("template %s trùng message với template khác: %q", name, msg)
		}
		seen[msg] = true
	}
}

func TestActivityItems_ResolveTheoEntityType(t *testing.T) {
	projectID := primitive.NewObjectID()
	milestoneID := primitive.NewObjectID()
	taskID := primitive.NewObjectID()

	projects := map[primitive.ObjectID]projectmodels.Project{
		projectID: {ID: projectID, Name: "Website", Status: "active"},
	}
	milestones := map[primitive.ObjectID]projectmodels.Milestone{
		milestoneID: {ID: milestoneID, Project: projectID, Title: "Phase 1"},
	}
	tasks := map[primitive.ObjectID]projectmodels.Task{
		taskID: {ID: taskID, Project: projectID, Milestone: milestoneID, Title: "Build API"},
	}

	acts := []activitymodels.Activity{
		{ID: primitive.NewObjectID(), EntityType: activitymodels.EntityTypeProject, EntityID: projectID},
		{ID: primitive.NewObjectID(), EntityType: activitymodels.EntityTypeMilestone, EntityID: milestoneID},
		{ID: primitive.NewObjectID(), EntityType: activitymodels.EntityTypeTask, EntityID: taskID},
	}

	items := activityItems(acts, projects, milestones, tasks)
	if len(items) != 3 {
		t.Fatalf("muốn 3 dòng, có %d", len(items))
	}

	if items[0].Project == nil || items[0].Project.Name != "Website" {
		t.Errorf("activity project phải resolve project summary: %+v", items[0].Project)
	}
	if items[1].Milestone == nil || items[1].Milestone.Name != "Phase 1" {
		t.Errorf("activity milestone phải resolve milestone: %+v", items[1].Milestone)
	}
	if items[1].Project == nil {
		t.Error("activity milestone phải resolve cả project cha")
	}
	if items[2].Task == nil || items[2].Task.Name != "Build API" {
		t.Errorf("activity task phải resolve task: %+v", items[2].Task)
	}
	if items[2].Milestone == nil || items[2].Project == nil {
		t.Error("activity task phải resolve cả milestone và project cha")
	}
}

func TestActivityItems_EntityKhongCoTrongMapKhongPanic(t *testing.T) {
	acts := []activitymodels.Activity{
		{ID: primitive.NewObjectID(), EntityType: activitymodels.EntityTypeTask, EntityID: primitive.NewObjectID()},
	}
	items := activityItems(acts, nil, nil, nil)
	if len(items) != 1 {
		t.Fatalf("muốn 1 dòng, có %d", len(items))
	}
	if items[0].Task != nil || items[0].Project != nil {
		t.Error("entity không resolve được phải để trống payload, không panic")
	}
}
