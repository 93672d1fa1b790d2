package main

import (
	"context"
	"time"

	"github.com/devxankit/CRM-SaaS-sub000/config"
	"github.com/devxankit/CRM-SaaS-sub000/internal/database"
	"github.com/devxankit/CRM-SaaS-sub000/internal/global"
	"github.com/devxankit/CRM-SaaS-sub000/internal/logger"
)

// InitGlobal khởi tạo các biến toàn cục theo thứ tự phụ thuộc:
// tên collection, validator, config, kết nối MongoDB, index.
func InitGlobal() {
	initColNames()
	global.InitValidator()
	initConfig()
	initDatabase()
}

// initColNames gán tên cho các collection trong database
func initColNames() {
	// Role identity collections
	global.ColNames.Admins = "admins"
	global.ColNames.Clients = "clients"
	global.ColNames.Employees = "employees"
	global.ColNames.ProjectManagers = "project_managers"
	global.ColNames.Sales = "sales"

	// Project management collections
	global.ColNames.Projects = "projects"
	global.ColNames.Milestones = "milestones"
	global.ColNames.Tasks = "tasks"

	// Workflow collections
	global.ColNames.Requests = "requests"
	global.ColNames.Activities = "activities"

	// Finance collections
	global.ColNames.FinanceTransactions = "finance_transactions"
}

// initConfig đọc file config và gán vào biến toàn cục
func initConfig() {
	log := logger.GetAppLogger()
	global.ServerConfig = config.NewConfig()
	if global.ServerConfig == nil {
		log.Fatal("Failed to load server configuration")
	}
	log.Info("Server configuration loaded")
}

// initDatabase kết nối MongoDB và tạo các index cần thiết cho query pattern
// của workflow request, lifecycle dự án và feed thông báo.
func initDatabase() {
	log := logger.GetAppLogger()

	client, err := database.GetInstance(global.ServerConfig)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	global.MongoDB_Session = client
	log.Info("Connected to MongoDB")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	db := client.Database(global.ServerConfig.MongoDB_DBName)
	if err := database.CreateDomainIndexes(ctx, db); err != nil {
		// Index lỗi không chặn khởi động; query vẫn đúng, chỉ chậm hơn
		log.WithError(err).Warn("Failed to create some MongoDB indexes")
	}
}
