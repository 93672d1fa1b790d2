package global

import "testing"

func TestValidateNoXSS(t *testing.T) {
	InitValidator()

	safe := []string{"Báo cáo tuần", "general", "payment > 100"}
	for _, v := range safe {
		if err := Validate.Var(v, "no_xss"); err != nil {
			t.Errorf("giá trị an toàn %q không được fail no_xss: %v", v, err)
		}
	}

	dangerous := []string{
		"<script>alert(1)</script>",
		"javascript:void(0)",
		"<img onerror=x>",
		"<iframe src=x>",
	}
	for _, v := range dangerous {
		if err := Validate.Var(v, "no_xss"); err == nil {
			t.Errorf("giá trị nguy hiểm %q phải fail no_xss", v)
		}
	}
}

func TestValidateRoleTag(t *testing.T) {
	InitValidator()

	valid := []string{"Admin", "Client", "Employee", "ProjectManager", "Sales"}
	for _, v := range valid {
		if err := Validate.Var(v, "role_tag"); err != nil {
			t.Errorf("role tag hợp lệ %q không được fail: %v", v, err)
		}
	}

	invalid := []string{"admin", "PM", "User", ""}
	for _, v := range invalid {
		if err := Validate.Var(v, "role_tag"); err == nil {
			t.Errorf("role tag không hợp lệ %q phải fail", v)
		}
	}
}

func TestValidateExists_CacNhanhKhongCanDatabase(t *testing.T) {
	InitValidator()

	// Giá trị rỗng là optional, bỏ qua kiểm tra tồn tại
	if err := Validate.Var("", "exists=employees"); err != nil {
		t.Errorf("chuỗi rỗng phải được bỏ qua: %v", err)
	}

	// Không phải hex ObjectID thì fail ngay trước khi chạm registry
	if err := Validate.Var("khong-phai-hex", "exists=employees"); err == nil {
		t.Error("giá trị không phải ObjectID hex phải fail")
	}

	// Collection chưa đăng ký trong registry thì không thể xác nhận tồn tại
	if err := Validate.Var("507f1f77bcf86cd799439011", "exists=khong_ton_tai"); err == nil {
		t.Error("collection chưa đăng ký phải fail")
	}
}
