package config

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

var Cfg Config

type Config struct {
	// 服务配置
	ServerPort  string `env:"SERVER_PORT" envDefault:"8888"`
	ServerHost  string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"` // development, staging, production
	ServiceName string `env:"SERVICE_NAME" envDefault:"laboros"`

	// PostgreSQL 配置
	PostgreSQLHost        string `env:"POSTGRESQL_HOST" envDefault:"localhost"`
	PostgreSQLPort        string `env:"POSTGRESQL_PORT" envDefault:"5432"`
	PostgreSQLUser        string `env:"POSTGRESQL_USER" envDefault:"postgres"`
	PostgreSQLPassword    string `env:"POSTGRESQL_PASSWORD" envDefault:"postgres"`
	PostgreSQLDatabase    string `env:"POSTGRESQL_DATABASE" envDefault:"laboros"`
	PostgreSQLSchema      string `env:"POSTGRESQL_SCHEMA" envDefault:"public"`
	PostgreSQLSSLMode     string `env:"POSTGRESQL_SSLMODE" envDefault:"disable"`
	PostgreSQLReplicaHost string `env:"POSTGRESQL_REPLICA_HOST"` // 只读副本，可选
	PostgreSQLMaxIdle     int    `env:"POSTGRESQL_MAX_IDLE" envDefault:"30"`
	PostgreSQLMaxOpen     int    `env:"POSTGRESQL_MAX_OPEN" envDefault:"200"`

	// Redis 配置
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"lbr"`
	// CheckInGuardEnabled 关闭后跳过 SETNX 快路径，去重完全交给数据库唯一索引
	CheckInGuardEnabled bool `env:"CHECKIN_GUARD_ENABLED" envDefault:"true"`

	// RabbitMQ 配置
	RabbitMQAddr     string `env:"RABBITMQ_ADDR" envDefault:"localhost"`
	RabbitMQPort     string `env:"RABBITMQ_PORT" envDefault:"5672"`
	RabbitMQUsername string `env:"RABBITMQ_USERNAME" envDefault:"guest"`
	RabbitMQPassword string `env:"RABBITMQ_PASSWORD" envDefault:"guest"`
	RabbitMQVhost    string `env:"RABBITMQ_VHOST" envDefault:"/"`

	// JWT 配置
	JWTSecret        string `env:"JWT_SECRET"` // 必填，用于签名 JWT
	JWTExpireMinutes int    `env:"JWT_EXPIRE_MINUTES" envDefault:"30"`
	JWTRefreshDays   int    `env:"JWT_REFRESH_DAYS" envDefault:"7"`

	// 考勤核验配置
	// DefaultSiteRadiusMeters 仅作为建站表单的默认值，围栏判定始终使用站点自身的半径
	DefaultSiteRadiusMeters float64 `env:"DEFAULT_SITE_RADIUS_METERS" envDefault:"200"`
	MatchThreshold          float64 `env:"MATCH_THRESHOLD" envDefault:"0.5"`   // 人脸特征欧氏距离阈值
	DescriptorLength        int     `env:"DESCRIPTOR_LENGTH" envDefault:"128"` // 特征向量固定长度
	LocationTimeoutSeconds  int     `env:"LOCATION_TIMEOUT_SECONDS" envDefault:"10"`
	Timezone                string  `env:"TIMEZONE" envDefault:"Asia/Kolkata"`

	// 日结配置
	ClosingReminderHour   int `env:"CLOSING_REMINDER_HOUR" envDefault:"20"` // 当地时间触发提醒
	ClosingReminderMinute int `env:"CLOSING_REMINDER_MINUTE" envDefault:"30"`

	// 短信服务配置
	// 注意：AccessKey 和 SecretKey 通过阿里云 SDK 的环境变量自动获取
	// 需要设置环境变量：ALIBABA_CLOUD_ACCESS_KEY_ID 和 ALIBABA_CLOUD_ACCESS_KEY_SECRET
	SMSProvider                string `env:"SMS_PROVIDER" envDefault:"aliyun"` // aliyun, mock
	SMSSignName                string `env:"SMS_SIGN_NAME"`
	SMSAccessAlertTemplate     string `env:"SMS_ACCESS_ALERT_TEMPLATE"`     // 围栏外打卡申请告警模板
	SMSClosingMismatchTemplate string `env:"SMS_CLOSING_MISMATCH_TEMPLATE"` // 日结差异告警模板
	SMSClosingReminderTemplate string `env:"SMS_CLOSING_REMINDER_TEMPLATE"` // 日结提醒模板

	// 加密配置
	EncryptionKey string `env:"ENCRYPTION_KEY"` // 用于加密手机号等敏感数据，32字节 AES-256
	PhoneHashSalt string `env:"PHONEHASH_SALT"`

	// Snowflake ID 生成器配置
	SnowflakeMachineID  int64 `env:"SNOWFLAKE_MACHINE_ID" envDefault:"1"`
	SnowflakeDataCenter int64 `env:"SNOWFLAKE_DATACENTER_ID" envDefault:"1"`

	// 日志配置
	LoggerLevel      string `env:"LOGGER_LEVEL" envDefault:"INFO"`
	LoggerFormat     string `env:"LOGGER_FORMAT" envDefault:"text"` // json, text
	LoggerOutputPath string `env:"LOGGER_OUTPUT_PATH" envDefault:"stdout"`

	// 链路追踪配置
	TracingEnabled  bool    `env:"TRACING_ENABLED" envDefault:"false"`
	TracingEndpoint string  `env:"TRACING_ENDPOINT" envDefault:"localhost:4317"`
	TracingSampler  float64 `env:"TRACING_SAMPLER" envDefault:"0.1"`

	// 速率限制配置, 配置在中间件内
	RateLimitEnabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RateLimitRPS     int  `env:"RATE_LIMIT_RPS" envDefault:"100"` // 每秒请求数
}

func init() {

	if err := godotenv.Load(); err != nil {

		log.Printf("WARN: Cannot load .env file: %v, using environment variables", err)
	}

	Cfg = Config{}
	if err := env.Parse(&Cfg); err != nil {
		log.Fatalf("Failed to parse environment variables: %v", err)
	}

	validateConfig()
}

func validateConfig() {
	if Cfg.JWTSecret == "" {
		if Cfg.IsProduction() {
			log.Fatal("JWT_SECRET is required")
		}
		log.Printf("WARN: JWT_SECRET is not set, using insecure development secret")
		Cfg.JWTSecret = "laboros-insecure-dev-secret"
	}

	if Cfg.EncryptionKey == "" {
		if Cfg.IsProduction() {
			log.Fatal("ENCRYPTION_KEY is required (32 bytes for AES-256)")
		}
		log.Printf("WARN: ENCRYPTION_KEY is not set, using insecure development key")
		Cfg.EncryptionKey = "laboros-dev-key-0123456789abcdef"
	}

	if len(Cfg.EncryptionKey) != 32 {
		log.Fatal("ENCRYPTION_KEY must be exactly 32 bytes for AES-256")
	}

	if Cfg.MatchThreshold <= 0 {
		log.Fatal("MATCH_THRESHOLD must be positive")
	}

	if Cfg.DescriptorLength <= 0 {
		log.Fatal("DESCRIPTOR_LENGTH must be positive")
	}

	if Cfg.SMSSignName == "" {
		log.Printf("WARN: SMS_SIGN_NAME is not set, SMS service may not work properly")
	}
	if Cfg.SMSAccessAlertTemplate == "" {
		log.Printf("WARN: SMS_ACCESS_ALERT_TEMPLATE is not set, supervisor alerts will not be sent")
	}
}

func (c *Config) GetDSN() string {
	return "host=" + c.PostgreSQLHost +
		" port=" + c.PostgreSQLPort +
		" user=" + c.PostgreSQLUser +
		" password=" + c.PostgreSQLPassword +
		" dbname=" + c.PostgreSQLDatabase +
		" sslmode=" + c.PostgreSQLSSLMode +
		" search_path=" + c.PostgreSQLSchema
}

// GetReplicaDSN 只读副本 DSN，未配置副本时返回空串
func (c *Config) GetReplicaDSN() string {
	if c.PostgreSQLReplicaHost == "" {
		return ""
	}
	return "host=" + c.PostgreSQLReplicaHost +
		" port=" + c.PostgreSQLPort +
		" user=" + c.PostgreSQLUser +
		" password=" + c.PostgreSQLPassword +
		" dbname=" + c.PostgreSQLDatabase +
		" sslmode=" + c.PostgreSQLSSLMode +
		" search_path=" + c.PostgreSQLSchema
}

func (c *Config) GetRabbitMQURL() string {
	return "amqp://" + c.RabbitMQUsername + ":" + c.RabbitMQPassword + "@" + c.RabbitMQAddr + ":" + c.RabbitMQPort + c.RabbitMQVhost
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
