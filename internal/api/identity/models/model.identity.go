// Package models định nghĩa model định danh theo vai trò.
// Năm collection (admins, clients, employees, project_managers, sales) dùng chung
// một shape tối thiểu; hồ sơ chi tiết của từng vai trò do dịch vụ định danh bên ngoài quản lý.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Các role tag hợp lệ của hệ thống. Giá trị được lưu nguyên văn trong
// requestedByModel/recipientModel của request.
const (
	RoleAdmin          = "Admin"
	RoleClient         = "Client"
	RoleEmployee       = "Employee"
	RoleProjectManager = "ProjectManager"
	RoleSales          = "Sales"
)

// AllRoles liệt kê toàn bộ role tag theo thứ tự hiển thị.
var AllRoles = []string{RoleAdmin, RoleClient, RoleEmployee, RoleProjectManager, RoleSales}

// IsValidRole kiểm tra một role tag có hợp lệ không.
func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Identity là bản ghi định danh trong một collection vai trò.
type Identity struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email,omitempty" bson:"email,omitempty"`
	Phone     string             `json:"phone,omitempty" bson:"phone,omitempty"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}

// Summary là projection gọn của một định danh, dùng khi populate
// requestedBy/recipient/respondedBy và khi liệt kê người nhận.
type Summary struct {
	ID    primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name  string             `json:"name" bson:"name"`
	Email string             `json:"email,omitempty" bson:"email,omitempty"`
	Phone string             `json:"phone,omitempty" bson:"phone,omitempty"`
}

// ToSummary rút gọn một Identity thành Summary.
func (i Identity) ToSummary() Summary {
	return Summary{ID: i.ID, Name: i.Name, Email: i.Email, Phone: i.Phone}
}
