package main

import (
	"github.com/devxankit/CRM-SaaS-sub000/internal/global"
	"github.com/devxankit/CRM-SaaS-sub000/internal/logger"
)

// InitRegistry đăng ký toàn bộ collection của hệ thống vào registry toàn cục.
// Service constructor lấy collection từ đây thay vì giữ tham chiếu database.
func InitRegistry() {
	log := logger.GetAppLogger()
	db := global.MongoDB_Session.Database(global.ServerConfig.MongoDB_DBName)

	colNames := []string{
		// Role identity collections
		global.ColNames.Admins,
		global.ColNames.Clients,
		global.ColNames.Employees,
		global.ColNames.ProjectManagers,
		global.ColNames.Sales,

		// Project management collections
		global.ColNames.Projects,
		global.ColNames.Milestones,
		global.ColNames.Tasks,

		// Workflow collections
		global.ColNames.Requests,
		global.ColNames.Activities,

		// Finance collections
		global.ColNames.FinanceTransactions,
	}

	for _, name := range colNames {
		if _, err := global.RegistryCollections.Register(name, db.Collection(name)); err != nil {
			log.WithError(err).Fatalf("Failed to register collection %s", name)
		}
	}
	log.Infof("Registered %d collections", len(colNames))
}
