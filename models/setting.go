package models

import "time"

// SystemSetting is a journal-wide key/value setting.
type SystemSetting struct {
	SettingID    int       `gorm:"primaryKey;column:setting_id" json:"setting_id"`
	SettingKey   string    `gorm:"column:setting_key;unique" json:"setting_key"`
	SettingValue string    `gorm:"column:setting_value" json:"setting_value"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (SystemSetting) TableName() string {
	return "system_settings"
}

// UserSetting is a per-user key/value setting such as the preferred theme.
type UserSetting struct {
	SettingID    int       `gorm:"primaryKey;column:setting_id" json:"setting_id"`
	UserID       int       `gorm:"column:user_id;uniqueIndex:uix_user_setting" json:"user_id"`
	SettingKey   string    `gorm:"column:setting_key;uniqueIndex:uix_user_setting" json:"setting_key"`
	SettingValue string    `gorm:"column:setting_value" json:"setting_value"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (UserSetting) TableName() string {
	return "user_settings"
}
