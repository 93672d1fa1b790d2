// Package basesvc - test chuyển đổi dữ liệu update sang UpdateData.
package basesvc

import (
	"testing"

	"github.com/devxankit/CRM-SaaS-sub000/internal/utility"
)

func TestToUpdateData_PointerDiQuaNguyenVen(t *testing.T) {
	in := &UpdateData{Set: map[string]interface{}{"name": "x"}}
	out, err := ToUpdateData(in)
	if err != nil {
		t.Fatalf("lỗi không mong đợi: %v", err)
	}
	if out != in {
		t.Error("pointer UpdateData phải được trả về nguyên vẹn")
	}
}

func TestToUpdateData_ValueThanhPointer(t *testing.T) {
	in := UpdateData{Unset: map[string]interface{}{"old": ""}}
	out, err := ToUpdateData(in)
	if err != nil {
		t.Fatalf("lỗi không mong đợi: %v", err)
	}
	if out == nil || out.Unset["old"] != "" {
		t.Errorf("value UpdateData phải giữ nguyên nội dung: %+v", out)
	}
}

func TestToUpdateData_MapCoOperator(t *testing.T) {
	in := map[string]interface{}{
		"$set":   map[string]interface{}{"status": "started"},
		"$unset": map[string]interface{}{"draft": ""},
	}
	out, err := ToUpdateData(in)
	if err != nil {
		t.Fatalf("lỗi không mong đợi: %v", err)
	}
	if out.Set["status"] != "started" {
		t.Errorf("$set phải được giữ: %+v", out.Set)
	}
	if _, ok := out.Unset["draft"]; !ok {
		t.Errorf("$unset phải được giữ: %+v", out.Unset)
	}
}

func TestToUpdateData_MapThuongWrapTrongSet(t *testing.T) {
	in := map[string]interface{}{"title": "Mới", "priority": "high"}
	out, err := ToUpdateData(in)
	if err != nil {
		t.Fatalf("lỗi không mong đợi: %v", err)
	}
	if out.Set["title"] != "Mới" || out.Set["priority"] != "high" {
		t.Errorf("map thường phải được wrap trong $set: %+v", out.Set)
	}
}

func TestToUpdateData_StructWrapTrongSet(t *testing.T) {
	type patch struct {
		Name string `json:"name" bson:"name"`
	}
	out, err := ToUpdateData(patch{Name: "abc"})
	if err != nil {
		t.Fatalf("lỗi không mong đợi: %v", err)
	}
	if out.Set["name"] != "abc" {
		t.Errorf("struct phải được convert sang map rồi wrap trong $set: %+v", out.Set)
	}
}

func TestToUpdateData_OperatorGiuQuaBsonRoundTrip(t *testing.T) {
	// CustomBson.Set sinh map qua bson marshal/unmarshal nên document con
	// là bson.D; đường dẫn operator phải vẫn giữ được nội dung $set
	update, err := new(utility.CustomBson).Set(struct {
		Status string `bson:"status"`
	}{Status: "paid"})
	if err != nil {
		t.Fatalf("lỗi không mong đợi: %v", err)
	}

	out, err := ToUpdateData(update)
	if err != nil {
		t.Fatalf("lỗi không mong đợi: %v", err)
	}
	if out.Set["status"] != "paid" {
		t.Errorf("$set phải sống sót qua bson round-trip: %+v", out.Set)
	}
	if len(out.Unset) != 0 || len(out.Push) != 0 {
		t.Errorf("không được sinh operator thừa: %+v", out)
	}
}
