package dbmodels

import (
	"time"
)

// SessionValue значение кэша сессии браузерного клиента
type SessionValue struct {
	ClientID  string `gorm:"primaryKey;type:varchar(64)"`
	Key       string `gorm:"primaryKey;type:varchar(32)"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}

func (SessionValue) TableName() string {
	return "portal_session_values"
}
