package initializers

import (
	"recruit-portal/config"
	"recruit-portal/db"
	sessionstore "recruit-portal/lib/session/store"

	log "github.com/sirupsen/logrus"
)

const sessionDriverPostgres = "postgres"

func InitDBConnection() {
	err := db.Connect(db.Options{
		Host:         config.Conf.Database.Host,
		Port:         config.Conf.Database.Port,
		Database:     config.Conf.Database.Name,
		User:         config.Conf.Database.User,
		Password:     config.Conf.Database.Password,
		MaxOpenConns: config.Conf.Database.MaxOpenConns,
		DebugMode:    *config.Conf.Database.DebugMode,
		Migrate:      *config.Conf.Database.MigrateOnStart,
	})
	if err != nil {
		panic(err.Error())
	}
}

// InitSessionStore сессии клиентов в памяти либо в postgres
func InitSessionStore() {
	if config.Conf.Session.Driver == sessionDriverPostgres {
		InitDBConnection()
		sessionstore.Instance = sessionstore.NewDBInstance(db.DB)
		log.Info("сессии клиентов хранятся в БД")
		return
	}
	sessionstore.Instance = sessionstore.NewMemoryInstance()
	log.Info("сессии клиентов хранятся в памяти")
}
