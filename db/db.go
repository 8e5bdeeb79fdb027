package db

import (
	"fmt"

	gorm_logrus "github.com/onrik/gorm-logrus"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Options подключение к БД хранилища сессий
type Options struct {
	Host         string
	Port         string
	Database     string
	User         string
	Password     string
	MaxOpenConns int
	DebugMode    bool
	Migrate      bool
}

func (o Options) dsn() string {
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable password=%s",
		o.Host, o.Port, o.User, o.Database, o.Password)
}

func Connect(opts Options) error {
	if DB != nil {
		return nil
	}
	conn, err := gorm.Open(postgres.Open(opts.dsn()), &gorm.Config{
		Logger: gorm_logrus.New(),
	})
	if err != nil {
		return errors.Wrap(err, "Ошибка подключения к БД")
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return errors.Wrap(err, "Ошибка подключения к БД")
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
		sqlDB.SetMaxIdleConns(opts.MaxOpenConns)
	}
	if opts.DebugMode {
		conn.Logger = logger.Default.LogMode(logger.Info)
		conn = conn.Debug()
	}
	if opts.Migrate {
		if err = AutoMigrateDB(conn); err != nil {
			return err
		}
	}
	DB = conn
	log.WithField("host", opts.Host).Info("Сервис успешно подключен к БД")
	return nil
}

// PingDB без БД (сессии в памяти) сервис считается здоровым
func PingDB() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
