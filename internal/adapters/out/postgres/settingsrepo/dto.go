// Package settingsrepo persists operational key-value settings.
package settingsrepo

// SettingDTO represents one settings row.
type SettingDTO struct {
	Key   string `gorm:"type:varchar(100);primaryKey"`
	Value string `gorm:"not null"`
}

// TableName specifies the database table name for settings rows.
func (SettingDTO) TableName() string {
	return "settings"
}
