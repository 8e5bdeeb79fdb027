package sessionstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	dbmodels "recruit-portal/models/db"
	"time"
)

func NewDBInstance(DB *gorm.DB) Provider {
	return &dbImpl{
		db: DB,
	}
}

type dbImpl struct {
	db *gorm.DB
}

func (i dbImpl) Get(clientID, key string) (string, bool, error) {
	rec := dbmodels.SessionValue{}
	err := i.db.
		Where("client_id = ? AND key = ?", clientID, key).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return rec.Value, true, nil
}

func (i dbImpl) Set(clientID, key, value string) error {
	rec := dbmodels.SessionValue{
		ClientID:  clientID,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	return i.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "client_id"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&rec).
		Error
}

func (i dbImpl) Delete(clientID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return i.db.
		Where("client_id = ? AND key IN ?", clientID, keys).
		Delete(&dbmodels.SessionValue{}).
		Error
}
