package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App        AppConfig
	DB         DBConfig
	JWT        JWTConfig
	HTTP       HTTPConfig
	Redis      RedisConfig
	SMTP       SMTPConfig
	Storage    StorageConfig
	Scheduler  SchedulerConfig
	Retry      RetryConfig
	Encryption EncryptionConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de persistencia.
// Driver "postgres" (por defecto) o "memory" (desarrollo local, sin base de datos).
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	Driver      string
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	AutoMigrate bool
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT. El emisor de tokens es externo; Secret valida la firma HS256.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos, solo para tokens emitidos por invoizoctl
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig si Address está vacío los jobs programados corren sin lock distribuido.
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// Enabled indica si hay Redis configurado.
func (c RedisConfig) Enabled() bool { return c.Address != "" }

// SMTPConfig envío de correo. Host vacío desactiva el mailer.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Enabled indica si hay servidor SMTP configurado.
func (c SMTPConfig) Enabled() bool { return c.Host != "" }

// StorageConfig almacenamiento de miniaturas en Google Cloud Storage.
type StorageConfig struct {
	Bucket          string
	CredentialsJSON string // vacío = ADC
	PublicBaseURL   string // vacío = https://storage.googleapis.com/<bucket>
}

// Enabled indica si hay bucket configurado.
func (c StorageConfig) Enabled() bool { return c.Bucket != "" }

// SchedulerConfig expresiones cron (5 campos) de los jobs diarios.
type SchedulerConfig struct {
	Enabled      bool
	OverdueCron  string
	ReminderCron string
	Timezone     string
}

// Location devuelve la zona horaria de los jobs (Local si está vacía).
func (c SchedulerConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// RetryConfig política de reintentos de persistencia.
type RetryConfig struct {
	MaxAttempts  int
	InitialDelay time.Duration
}

// EncryptionConfig clave AES-256 en base64 (32 bytes decodificados).
type EncryptionConfig struct {
	Key string
}

// KeyBytes decodifica y valida la clave.
func (c EncryptionConfig) KeyBytes() ([]byte, error) {
	if strings.TrimSpace(c.Key) == "" {
		return nil, errors.New("ENCRYPTION_KEY is required")
	}
	key, err := base64.StdEncoding.DecodeString(strings.TrimSpace(c.Key))
	if err != nil {
		return nil, fmt.Errorf("ENCRYPTION_KEY must be base64: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("ENCRYPTION_KEY must decode to 32 bytes, got %d", len(key))
	}
	return key, nil
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, ENCRYPTION_KEY, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo .env o config.env
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "invoizo-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			Driver:      strings.ToLower(getString(v, "DB_DRIVER", "postgres")),
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "invoizo"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			AutoMigrate: getBool(v, "DB_AUTO_MIGRATE", true),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "invoizo"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Redis: RedisConfig{
			Address:  getString(v, "REDIS_ADDRESS", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		SMTP: SMTPConfig{
			Host:     getString(v, "SMTP_HOST", ""),
			Port:     getInt(v, "SMTP_PORT", 587),
			Username: getString(v, "SMTP_USERNAME", ""),
			Password: getString(v, "SMTP_PASSWORD", ""),
			From:     getString(v, "SMTP_FROM", ""),
		},
		Storage: StorageConfig{
			Bucket:          getString(v, "GCS_BUCKET", ""),
			CredentialsJSON: getString(v, "GCS_CREDENTIALS_JSON", ""),
			PublicBaseURL:   getString(v, "GCS_PUBLIC_BASE_URL", ""),
		},
		Scheduler: SchedulerConfig{
			Enabled:      getBool(v, "SCHEDULER_ENABLED", true),
			OverdueCron:  getString(v, "OVERDUE_CRON", "0 1 * * *"),
			ReminderCron: getString(v, "REMINDER_CRON", "0 9 * * *"),
			Timezone:     getString(v, "SCHEDULER_TIMEZONE", ""),
		},
		Retry: RetryConfig{
			MaxAttempts:  getInt(v, "RETRY_MAX_ATTEMPTS", 3),
			InitialDelay: time.Duration(getInt(v, "RETRY_INITIAL_DELAY_MS", 500)) * time.Millisecond,
		},
		Encryption: EncryptionConfig{
			Key: getString(v, "ENCRYPTION_KEY", ""),
		},
	}

	return cfg, nil
}

// Validate comprueba lo imprescindible para arrancar el servidor.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if _, err := c.Encryption.KeyBytes(); err != nil {
		return err
	}
	switch c.DB.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("DB_DRIVER %q not supported (postgres, memory)", c.DB.Driver)
	}
	if c.Retry.MaxAttempts < 1 {
		return errors.New("RETRY_MAX_ATTEMPTS must be at least 1")
	}
	if _, err := c.Scheduler.Location(); err != nil {
		return fmt.Errorf("SCHEDULER_TIMEZONE: %w", err)
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return b
	}
	return def
}
