package config

import (
	"github.com/gotify/configor"
	"time"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr   string `default:"" env:"APP_HOST"`
		Port         int    `default:"8080"  env:"APP_PORT"`
		PublicRoute  string `default:"/jobs" env:"APP_PUBLIC_ROUTE"`
		LoginRoute   string `default:"/login" env:"APP_LOGIN_ROUTE"`
		ClientCookie string `default:"portal_client" env:"APP_CLIENT_COOKIE"`
		SecureCookie *bool  `default:"false" env:"APP_SECURE_COOKIE"`

		// лимит тела запроса с анкетой и файлом резюме
		ApplicationBodyLimit int64  `default:"6291456" env:"APP_APPLICATION_BODY_LIMIT"`
		ErrNotifyAddr        string `default:"" env:"APP_ERR_NOTIFY_ADDR"`
	}
	Log struct {
		Level        string `default:"info" env:"LOG_LEVEL"`
		RequestLevel string `default:"debug" env:"LOG_REQUEST_LEVEL"`
	}
	Backend struct {
		BaseURL       string `default:"http://localhost:5000" env:"BACKEND_URL"`
		TimeoutSec    int    `default:"10" env:"BACKEND_TIMEOUT_SEC"`
		ValidateToken *bool  `default:"false" env:"BACKEND_VALIDATE_TOKEN"`
	}
	Session struct {
		Driver             string `default:"memory" env:"SESSION_DRIVER"` // memory | postgres
		AutoLogoutDelaySec int    `default:"5" env:"SESSION_AUTO_LOGOUT_DELAY_SEC"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"recruit-portal" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
		MaxOpenConns   int    `default:"10" env:"DB_MAX_OPEN_CONNS"`
	}
	Stats struct {
		PollIntervalSec int `default:"300" env:"STATS_POLL_INTERVAL_SEC"`
	}
	Cache struct {
		CandidateSize   int `default:"500" env:"CACHE_CANDIDATE_SIZE"`
		CandidateTTLSec int `default:"60" env:"CACHE_CANDIDATE_TTL_SEC"`
	}
	S3 struct {
		Endpoint        string `default:"" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
		BucketName      string `default:"resumes" env:"S3_BUCKET_NAME"`
		Region          string `default:"us-east-1" env:"S3_REGION"`
	}
}

func (c Configuration) BackendTimeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSec) * time.Second
}

func (c Configuration) AutoLogoutDelay() time.Duration {
	return time.Duration(c.Session.AutoLogoutDelaySec) * time.Second
}

func (c Configuration) StatsPollInterval() time.Duration {
	return time.Duration(c.Stats.PollIntervalSec) * time.Second
}

func (c Configuration) CandidateCacheTTL() time.Duration {
	return time.Duration(c.Cache.CandidateTTLSec) * time.Second
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
