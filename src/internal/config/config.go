package config

import (
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"kennelhub-session-svc/src/internal/models"
)

type Configuration struct {
	Logs     LogsSettings     `mapstructure:"logs"`
	App      Application      `mapstructure:"app"`
	Database Database         `mapstructure:"database"`
	Queue    QueueConfig      `mapstructure:"queue"`
	Redis    Redis            `mapstructure:"redis"`
	Security SecuritySettings `mapstructure:"security"`
	Server   ServerSettings   `mapstructure:"server"`
	Target   TargetSite       `mapstructure:"target"`
	Cache    CacheConfig      `mapstructure:"cache"`
}

type LogsSettings struct {
	Level            string `mapstructure:"level"`
	Path             string `mapstructure:"log-path"`
	EnableJSONOutput bool   `mapstructure:"enable-json-output"`
}

type Application struct {
	Name    string `mapstructure:"name"`
	Timeout int    `mapstructure:"timeout"`
	Version string `mapstructure:"version"`
}

type Database struct {
	Url               string `mapstructure:"url"`
	DbName            string `mapstructure:"dbname"`
	SessionCollection string `mapstructure:"session-collection"`
	Timeout           int    `mapstructure:"timeout"`
}

type QueueConfig struct {
	RabbitMQ RabbitMQConfig `mapstructure:"rabbitmq"`
}

type RabbitMQConfig struct {
	Url          string `mapstructure:"url"`
	Exchange     string `mapstructure:"exchange"`
	ExchangeType string `mapstructure:"exchange-type"`
	RoutingKey   string `mapstructure:"routing-key"`
	Timeout      int    `mapstructure:"timeout"`
	Durable      bool   `mapstructure:"durable"`
	AutoDelete   bool   `mapstructure:"auto-delete"`
	Internal     bool   `mapstructure:"internal"`
	NoWait       bool   `mapstructure:"no-wait"`
}

type Redis struct {
	Url      string `mapstructure:"url"`
	Password string `mapstructure:"password"`
	Db       int    `mapstructure:"db"`
}

type SecuritySettings struct {
	JwtKey string `mapstructure:"jwt-key"`
}

type ServerSettings struct {
	Port         string `mapstructure:"port"`
	Mode         string `mapstructure:"mode"`
	ReadTimeout  int    `mapstructure:"read-timeout"`
	WriteTimeout int    `mapstructure:"write-timeout"`
	IdleTimeout  int    `mapstructure:"idle-timeout"`
}

// TargetSite describes the third-party site the broker logs in to.
// Username and password are opaque secrets; they are never logged.
type TargetSite struct {
	LoginUrl    string `mapstructure:"login-url"`
	SsoLoginUrl string `mapstructure:"sso-login-url"`
	ServiceUrl  string `mapstructure:"service-url"`
	UserAgent   string `mapstructure:"user-agent"`
	Timeout     int    `mapstructure:"timeout"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
}

type CacheConfig struct {
	SessionTTLMinutes int    `mapstructure:"session-ttl-minutes"`
	SessionCacheKey   string `mapstructure:"session-cache-key"`
}

func Load() *Configuration {
	cfg := read()
	logrus.Info("Configuration loaded")

	// Override with environment variables
	mongoUri := os.Getenv("MONGODB_URL")
	if mongoUri != "" {
		cfg.Database.Url = mongoUri
	}

	dbName := os.Getenv("DB_NAME")
	if dbName != "" {
		cfg.Database.DbName = dbName
	}

	redisUrl := os.Getenv("REDIS_URL")
	if redisUrl != "" {
		cfg.Redis.Url = redisUrl
	}

	redisDB := os.Getenv("REDIS_DB")
	if redisDB != "" {
		if db, err := strconv.Atoi(redisDB); err == nil {
			cfg.Redis.Db = db
		}
	}

	rabbitmqUrl := os.Getenv("RABBITMQ_URL")
	if rabbitmqUrl != "" {
		cfg.Queue.RabbitMQ.Url = rabbitmqUrl
	}

	jwtKey := os.Getenv("SERVICE_JWT_KEY")
	if jwtKey != "" {
		cfg.Security.JwtKey = jwtKey
	}

	targetUser := os.Getenv("TARGET_USERNAME")
	if targetUser != "" {
		cfg.Target.Username = targetUser
	}

	targetPassword := os.Getenv("TARGET_PASSWORD")
	if targetPassword != "" {
		cfg.Target.Password = targetPassword
	}

	ttlMinutes := os.Getenv("SESSION_TTL_MINUTES")
	if ttlMinutes != "" {
		if ttl, err := strconv.Atoi(ttlMinutes); err == nil {
			cfg.Cache.SessionTTLMinutes = ttl
		}
	}

	cfg.applyDefaults()

	return cfg
}

// Validate checks the settings that must be present before any network
// attempt is made. Secrets are reported by name only, never by value.
func (c *Configuration) Validate() error {
	if c.Target.Username == "" || c.Target.Password == "" {
		return models.ErrConfigMissingCredentials
	}

	if c.Target.LoginUrl == "" {
		return models.ErrConfigMissingLoginUrl
	}

	if c.Database.Url == "" {
		return models.ErrConfigMissingDatabase
	}

	return nil
}

func (c *Configuration) applyDefaults() {
	if c.Cache.SessionTTLMinutes <= 0 {
		c.Cache.SessionTTLMinutes = 30
	}

	if c.Cache.SessionCacheKey == "" {
		c.Cache.SessionCacheKey = "session:current"
	}

	if c.Target.UserAgent == "" {
		c.Target.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	}

	if c.Target.Timeout <= 0 {
		c.Target.Timeout = 30
	}
}

func read() *Configuration {
	viper.SetConfigFile("src/internal/config/cfg.yml")
	viper.AutomaticEnv()
	viper.SetConfigType("yml")

	var config Configuration

	err := viper.ReadInConfig()
	if err != nil {
		logrus.Panicf("Error reading config file, %s", err)
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		logrus.Panicf("Error unmarshalling config file, %s", err)
	}

	return &config
}
