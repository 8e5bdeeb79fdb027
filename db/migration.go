package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	dbmodels "recruit-portal/models/db"
)

// AutoMigrateDB таблица значений сессий клиентов портала
func AutoMigrateDB(conn *gorm.DB) error {
	log.Info("Запуск миграций")
	for _, model := range []interface{}{&dbmodels.SessionValue{}} {
		if err := conn.AutoMigrate(model); err != nil {
			return errors.Wrapf(err, "ошибка создания структуры %T", model)
		}
	}
	log.Info("Миграция прошла успешно")
	return nil
}
