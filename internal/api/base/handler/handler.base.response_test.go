package basehdl

import (
	"encoding/json"
	"strings"
	"testing"

	basemodels "github.com/devxankit/CRM-SaaS-sub000/internal/api/base/models"
)

func TestPaginationFrom(t *testing.T) {
	if got := PaginationFrom[int](nil); got != nil {
		t.Errorf("PaginationFrom(nil) phải trả về nil, got %+v", got)
	}

	result := &basemodels.PaginateResult[int]{
		Page:      2,
		Limit:     10,
		Total:     45,
		TotalPage: 5,
	}
	p := PaginationFrom(result)
	if p.Page != 2 || p.Limit != 10 || p.Total != 45 || p.Pages != 5 {
		t.Errorf("khối phân trang sai: %+v", p)
	}
}

func TestPagination_JSONDungKhoaEnvelope(t *testing.T) {
	raw, err := json.Marshal(&Pagination{Page: 1, Limit: 30, Total: 60, Pages: 2})
	if err != nil {
		t.Fatalf("marshal pagination lỗi: %v", err)
	}
	s := string(raw)

	// Envelope cố định các khóa page/limit/total/pages
	for _, key := range []string{`"page":1`, `"limit":30`, `"total":60`, `"pages":2`} {
		if !strings.Contains(s, key) {
			t.Errorf("pagination JSON thiếu %s: %s", key, s)
		}
	}
	if strings.Contains(s, "totalPage") {
		t.Errorf("khóa đếm trang phải là pages, không phải totalPage: %s", s)
	}
}
