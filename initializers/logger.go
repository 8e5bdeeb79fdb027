package initializers

import (
	log "github.com/sirupsen/logrus"
	"recruit-portal/config"
	"recruit-portal/fiberlog"
)

func jsonFormatter() *log.JSONFormatter {
	return &log.JSONFormatter{
		FieldMap: log.FieldMap{
			log.FieldKeyTime: "@timestamp",
			log.FieldKeyMsg:  "message",
		},
	}
}

func parseLevel(value string, fallback log.Level) log.Level {
	level, err := log.ParseLevel(value)
	if err != nil {
		log.WithError(err).WithField("level", value).Warn("неизвестный уровень логирования")
		return fallback
	}
	return level
}

// InitLogger общий логгер сервиса и отдельный логгер запросов
func InitLogger() *fiberlog.Config {
	log.SetFormatter(jsonFormatter())
	log.SetLevel(parseLevel(config.Conf.Log.Level, log.InfoLevel))

	logger := log.New()
	logger.SetFormatter(jsonFormatter())
	logger.SetLevel(parseLevel(config.Conf.Log.RequestLevel, log.DebugLevel))
	return &fiberlog.Config{
		Logger:    logger,
		SkipPaths: []string{"/metrics", "/health"},
		// тела запросов не пишем: в них пароли и анкеты кандидатов
		Tags: []string{
			fiberlog.TagMethod,
			fiberlog.TagPath,
			fiberlog.TagRoute,
			fiberlog.TagStatus,
			fiberlog.TagLatency,
			fiberlog.TagClientID,
			fiberlog.RequestID,
		},
	}
}
