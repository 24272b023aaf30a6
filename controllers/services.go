package controllers

import (
	"journal-submission-api/services"

	"gorm.io/gorm"
)

var (
	identityService     *services.IdentityService
	lifecycleService    *services.LifecycleService
	schedulerService    *services.SchedulerService
	settingsService     *services.SettingsService
	notificationService *services.NotificationService
	doiService          *services.DOIService
)

// InitServices wires the workflow services the controllers depend on. Called
// once at startup after the database connection is established.
func InitServices(db *gorm.DB, hooks *services.HookRegistry) {
	identityService = services.NewIdentityService(db)
	lifecycleService = services.NewLifecycleService(db, identityService, hooks)
	schedulerService = services.NewSchedulerService(db)
	settingsService = services.NewSettingsService(db, services.DefaultSettingsTTL)
	notificationService = services.NewNotificationService(db)
	doiService = services.NewDOIService()
}
