package global

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/devxankit/CRM-SaaS-sub000/config"
	"github.com/devxankit/CRM-SaaS-sub000/internal/registry"
)

// CollectionName chứa tên các collection trong MongoDB
type CollectionName struct {
	// Role identity collections (mỗi vai trò một collection riêng)
	Admins          string // Tên collection cho quản trị viên
	Clients         string // Tên collection cho khách hàng
	Employees       string // Tên collection cho nhân viên
	ProjectManagers string // Tên collection cho quản lý dự án
	Sales           string // Tên collection cho nhân viên kinh doanh

	// Project management collections
	Projects   string // Tên collection cho dự án
	Milestones string // Tên collection cho milestone
	Tasks      string // Tên collection cho task

	// Workflow collections
	Requests   string // Tên collection cho yêu cầu phê duyệt liên vai trò
	Activities string // Tên collection cho nhật ký hoạt động (append-only)

	// Finance collections
	FinanceTransactions string // Tên collection cho giao dịch tài chính (đối soát installment)
}

// Các biến toàn cục
var Validate *validator.Validate        // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client       // Phiên kết nối tới MongoDB
var ServerConfig *config.Configuration  // Cấu hình của server
var ColNames CollectionName = *new(CollectionName) // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
