// Package requestsvc - test các hàm thuần dựng filter và suy ra module,
// không cần kết nối MongoDB.
package requestsvc

import (
	"errors"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	identitymodels "github.com/devxankit/CRM-SaaS-sub000/internal/api/identity/models"
	projectmodels "github.com/devxankit/CRM-SaaS-sub000/internal/api/project/models"
	requestdto "github.com/devxankit/CRM-SaaS-sub000/internal/api/request/dto"
	requestmodels "github.com/devxankit/CRM-SaaS-sub000/internal/api/request/models"
	"github.com/devxankit/CRM-SaaS-sub000/internal/common"
)

func TestModuleForRole(t *testing.T) {
	cases := []struct {
		role string
		want string
	}{
		{identitymodels.RoleAdmin, requestmodels.ModuleAdmin},
		{identitymodels.RoleClient, requestmodels.ModuleClient},
		{identitymodels.RoleEmployee, requestmodels.ModuleEmployee},
		{identitymodels.RoleProjectManager, requestmodels.ModulePM},
		{identitymodels.RoleSales, requestmodels.ModuleSales},
		{"Unknown", ""},
	}
	for _, c := range cases {
		if got := moduleForRole(c.role); got != c.want {
			t.Errorf("moduleForRole(%q) = %q, muốn %q", c.role, got, c.want)
		}
	}
}

func TestDirectionFilter(t *testing.T) {
	id := primitive.NewObjectID()

	incoming := directionFilter("incoming", id, "Admin")
	if incoming["recipient"] != id || incoming["recipientModel"] != "Admin" {
		t.Errorf("filter incoming sai: %v", incoming)
	}
	if _, ok := incoming["requestedBy"]; ok {
		t.Error("filter incoming không được chứa requestedBy")
	}

	outgoing := directionFilter("outgoing", id, "Admin")
	if outgoing["requestedBy"] != id || outgoing["requestedByModel"] != "Admin" {
		t.Errorf("filter outgoing sai: %v", outgoing)
	}

	all := directionFilter("", id, "Admin")
	or, ok := all["$or"].([]bson.M)
	if !ok || len(or) != 2 {
		t.Fatalf("filter all phải là $or của 2 nhánh, có: %v", all)
	}
}

func TestBuildListFilter_SearchGopBangAnd(t *testing.T) {
	id := primitive.NewObjectID()
	q := &requestdto.RequestListQuery{Search: "deploy"}

	// direction mặc định (all) đã chiếm $or; search phải gộp bằng $and
	filter := buildListFilter(q, id, "Employee")
	if _, ok := filter["$or"]; ok {
		t.Error("khi direction=all và có search, $or phải được chuyển vào $and")
	}
	and, ok := filter["$and"].([]bson.M)
	if !ok || len(and) != 2 {
		t.Fatalf("filter phải có $and với 2 nhánh, có: %v", filter)
	}
}

func TestBuildListFilter_SearchEscapeRegex(t *testing.T) {
	id := primitive.NewObjectID()
	q := &requestdto.RequestListQuery{Direction: "incoming", Search: "a.b(c)"}

	filter := buildListFilter(q, id, "Admin")
	or, ok := filter["$or"].([]bson.M)
	if !ok || len(or) != 2 {
		t.Fatalf("filter search phải là $or trên title/description, có: %v", filter)
	}
	pattern, ok := or[0]["title"].(primitive.Regex)
	if !ok {
		t.Fatalf("điều kiện title phải là regex, có: %v", or[0]["title"])
	}
	if !strings.Contains(pattern.Pattern, `\.`) || !strings.Contains(pattern.Pattern, `\(`) {
		t.Errorf("ký tự đặc biệt trong search phải được escape, pattern: %q", pattern.Pattern)
	}
	if pattern.Options != "i" {
		t.Errorf("regex search phải không phân biệt hoa thường, options: %q", pattern.Options)
	}
}

func TestBuildListFilter_CacFilterPhu(t *testing.T) {
	id := primitive.NewObjectID()
	q := &requestdto.RequestListQuery{
		Direction: "incoming",
		Module:    requestmodels.ModuleSales,
		Type:      requestmodels.TypeApproval,
		Status:    requestmodels.StatusPending,
		Priority:  requestmodels.PriorityUrgent,
	}

	filter := buildListFilter(q, id, "Admin")
	if filter["module"] != requestmodels.ModuleSales {
		t.Errorf("thiếu filter module: %v", filter)
	}
	if filter["type"] != requestmodels.TypeApproval {
		t.Errorf("thiếu filter type: %v", filter)
	}
	if filter["status"] != requestmodels.StatusPending {
		t.Errorf("thiếu filter status: %v", filter)
	}
	if filter["priority"] != requestmodels.PriorityUrgent {
		t.Errorf("thiếu filter priority: %v", filter)
	}
}

func TestTruncateDescription(t *testing.T) {
	long := strings.Repeat("a", requestmodels.DescriptionMaxLength+100)
	if got := truncateDescription(long); len(got) != requestmodels.DescriptionMaxLength {
		t.Errorf("description phải bị cắt về %d ký tự, có %d", requestmodels.DescriptionMaxLength, len(got))
	}
	short := "ngắn gọn"
	if got := truncateDescription(short); got != short {
		t.Errorf("description ngắn không được thay đổi: %q", got)
	}
}

func TestInstallmentApprovalFilter_BuocCaHaiDieuKienVaoCungPhanTu(t *testing.T) {
	projectID := primitive.NewObjectID()
	installmentID := primitive.NewObjectID()

	filter := installmentApprovalFilter(projectID, installmentID)

	if filter["_id"] != projectID {
		t.Errorf("filter phải match đúng project, got %v", filter["_id"])
	}
	// Điều kiện installment phải nằm trong $elemMatch. Viết rời bằng dot
	// notation thì một phần tử đã paid và một phần tử pending khác có thể
	// thỏa mãn chéo nhau và update nhầm phần tử.
	if _, ok := filter["installmentPlan._id"]; ok {
		t.Error("không được dùng dot notation rời cho installmentPlan._id")
	}
	if _, ok := filter["installmentPlan.status"]; ok {
		t.Error("không được dùng dot notation rời cho installmentPlan.status")
	}
	plan, ok := filter["installmentPlan"].(bson.M)
	if !ok {
		t.Fatalf("filter installmentPlan phải là bson.M, got %T", filter["installmentPlan"])
	}
	elem, ok := plan["$elemMatch"].(bson.M)
	if !ok {
		t.Fatalf("điều kiện installment phải nằm trong $elemMatch, got %v", plan)
	}
	if elem["_id"] != installmentID {
		t.Errorf("$elemMatch phải match _id installment, got %v", elem["_id"])
	}
	if elem["status"] != projectmodels.InstallmentStatusPending {
		t.Errorf("$elemMatch phải yêu cầu status pending, got %v", elem["status"])
	}
}

func TestClassifyInstallmentMiss_PlanLanPaidVaPending(t *testing.T) {
	paidID := primitive.NewObjectID()
	pendingID := primitive.NewObjectID()
	plan := []projectmodels.Installment{
		{ID: paidID, Amount: 100, Status: projectmodels.InstallmentStatusPaid},
		{ID: pendingID, Amount: 200, Status: projectmodels.InstallmentStatusPending},
	}

	// Duyệt lại installment đã paid phải ra Conflict, không phải NotFound
	err := classifyInstallmentMiss(plan, paidID)
	var conflictErr *common.Error
	if !errors.As(err, &conflictErr) || conflictErr.StatusCode != common.StatusBadRequest {
		t.Fatalf("installment đã paid phải ra Conflict (400), got %v", err)
	}

	// Installment không có trong plan là NotFound
	err = classifyInstallmentMiss(plan, primitive.NewObjectID())
	var notFoundErr *common.Error
	if !errors.As(err, &notFoundErr) || notFoundErr.StatusCode != common.StatusNotFound {
		t.Fatalf("installment không tồn tại phải ra NotFound, got %v", err)
	}
}
