package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Business BusinessConfig
	Backend  BackendConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Postgres PostgresConfig
	History  HistoryConfig
	Notice   NoticeConfig
}

type ServerConfig struct {
	AppEnv   string
	HTTPPort string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

// BusinessConfig identifies the register and feeds the receipt header.
type BusinessConfig struct {
	MerchantID  string
	StoreName   string
	Address     string
	Phone       string
	TaxID       string
	CashierID   string
	CashierName string
}

type BackendConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers    []string
	SaleTopic  string
	StockTopic string
	GroupID    string
}

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	ConnMaxIdleTime int
}

// HistoryConfig selects the sale-history backend: "postgres" or "local".
type HistoryConfig struct {
	Driver string
}

type NoticeConfig struct {
	TTLSeconds int
}

func LoadEnv() *Config {
	// Basic config loading
	// In a real scenario, use structured config loader like viper or koanf
	return &Config{
		Server: ServerConfig{
			AppEnv:   getEnv("APP_ENV", "dev"),
			HTTPPort: getEnv("HTTP_PORT", ":8085"),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Business: BusinessConfig{
			MerchantID:  getEnv("MERCHANT_ID", "demo-merchant"),
			StoreName:   getEnv("STORE_NAME", "OmniPOS Store"),
			Address:     getEnv("STORE_ADDRESS", ""),
			Phone:       getEnv("STORE_PHONE", ""),
			TaxID:       getEnv("STORE_TAX_ID", ""),
			CashierID:   getEnv("CASHIER_ID", "cashier-1"),
			CashierName: getEnv("CASHIER_NAME", "Cashier"),
		},
		Backend: BackendConfig{
			BaseURL:        getEnv("BACKEND_BASE_URL", "http://localhost:8080/api/v1"),
			TimeoutSeconds: getEnvInt("BACKEND_TIMEOUT_SECONDS", 15),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers:    getEnvSlice("KAFKA_BROKERS", []string{"localhost:9092"}),
			SaleTopic:  getEnv("KAFKA_TOPIC_SALES", "sales.events"),
			StockTopic: getEnv("KAFKA_TOPIC_INVENTORY", "inventory.events"),
			GroupID:    getEnv("KAFKA_GROUP_TERMINAL", "sale-terminal"),
		},
		Postgres: PostgresConfig{
			Host:            getEnv("POSTGRES_HOST", "localhost"),
			Port:            getEnv("POSTGRES_PORT", "5433"),
			User:            getEnv("POSTGRES_USER", "omnipos"),
			Password:        getEnv("POSTGRES_PASSWORD", "omnipos"),
			DBName:          getEnv("POSTGRES_DB", "omnipos_terminal"),
			SSLMode:         getEnv("POSTGRES_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("POSTGRES_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("POSTGRES_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvInt("POSTGRES_CONN_MAX_LIFETIME", 300),
			ConnMaxIdleTime: getEnvInt("POSTGRES_CONN_MAX_IDLE_TIME", 60),
		},
		History: HistoryConfig{
			Driver: getEnv("HISTORY_DRIVER", "local"),
		},
		Notice: NoticeConfig{
			TTLSeconds: getEnvInt("NOTICE_TTL_SECONDS", 6),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.Split(value, ",")
	}
	return fallback
}
