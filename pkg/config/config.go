package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Drivers de almacenamiento de registros.
const (
	StoreDriverCSV      = "csv"
	StoreDriverS3       = "s3"
	StoreDriverPostgres = "postgres"
	StoreDriverMemoria  = "memoria"
)

// Drivers de sesiones del formulario.
const (
	SessionDriverMemoria = "memoria"
	SessionDriverRedis   = "redis"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	JWT     JWTConfig
	Gate    GateConfig
	Form    FormConfig
	Store   StoreConfig
	Session SessionConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
	Timezone string // zona horaria de Fecha_Hora
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	SwaggerFile string
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig configuración de JWT para el acceso al dashboard.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// GateConfig clave compartida que habilita el Dashboard en Vivo.
type GateConfig struct {
	Passphrase string
}

// FormConfig parámetros del formulario de acceso.
type FormConfig struct {
	ConfirmationMS int // pausa de confirmación que aplica el cliente antes de volver al paso 1
	HistoryLimit   int // filas del historial en el dashboard
}

// StoreConfig selecciona y configura el almacén de registros.
type StoreConfig struct {
	Driver string
	CSV    CSVConfig
	S3     S3Config
	DB     DBConfig
}

// CSVConfig planilla local.
type CSVConfig struct {
	Path    string
	Charset string // utf-8, windows-1252, iso-8859-1
}

// S3Config planilla en un bucket compatible con S3 (AWS, R2, MinIO).
type S3Config struct {
	Bucket          string
	Key             string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Charset         string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
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

// SessionConfig almacenamiento de las sesiones del formulario.
type SessionConfig struct {
	Driver     string
	TTLMinutes int
	Redis      RedisConfig
}

// RedisConfig conexión a Redis para sesiones.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, STORE_DRIVER, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return FromViper(v)
}

// FromViper construye la configuración a partir de una instancia de Viper ya cargada.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "control-rf29"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
			Timezone: getString(v, "APP_TIMEZONE", "America/Santiago"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			SwaggerFile: getString(v, "HTTP_SWAGGER_FILE", "./docs/swagger.json"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 720),
			Issuer:     getString(v, "JWT_ISSUER", "control-rf29"),
		},
		Gate: GateConfig{
			Passphrase: getString(v, "DASHBOARD_PASSPHRASE", "GAR2026"),
		},
		Form: FormConfig{
			ConfirmationMS: getInt(v, "FORM_CONFIRMATION_MS", 2000),
			HistoryLimit:   getInt(v, "DASHBOARD_HISTORY_LIMIT", 15),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getString(v, "STORE_DRIVER", StoreDriverCSV)),
			CSV: CSVConfig{
				Path:    getString(v, "STORE_CSV_PATH", "data/registros_rf29.csv"),
				Charset: getString(v, "STORE_CSV_CHARSET", "utf-8"),
			},
			S3: S3Config{
				Bucket:          getString(v, "S3_BUCKET", ""),
				Key:             getString(v, "S3_KEY", "rf29/registros_rf29.csv"),
				Region:          getString(v, "S3_REGION", "auto"),
				Endpoint:        getString(v, "S3_ENDPOINT", ""),
				AccessKeyID:     getString(v, "S3_ACCESS_KEY_ID", ""),
				SecretAccessKey: getString(v, "S3_SECRET_ACCESS_KEY", ""),
				Charset:         getString(v, "S3_CHARSET", "utf-8"),
			},
			DB: DBConfig{
				DatabaseURL: getString(v, "DATABASE_URL", ""),
				Host:        getString(v, "DB_HOST", "localhost"),
				Port:        getInt(v, "DB_PORT", 5432),
				User:        getString(v, "DB_USER", "postgres"),
				Password:    getString(v, "DB_PASSWORD", ""),
				DBName:      getString(v, "DB_NAME", "control_rf29"),
				SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			},
		},
		Session: SessionConfig{
			Driver:     strings.ToLower(getString(v, "SESSION_DRIVER", SessionDriverMemoria)),
			TTLMinutes: getInt(v, "SESSION_TTL_MINUTES", 120),
			Redis: RedisConfig{
				Addr:     getString(v, "REDIS_ADDR", "localhost:6379"),
				Password: getString(v, "REDIS_PASSWORD", ""),
				DB:       getInt(v, "REDIS_DB", 0),
			},
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case StoreDriverCSV, StoreDriverS3, StoreDriverPostgres, StoreDriverMemoria:
	default:
		return fmt.Errorf("config: STORE_DRIVER desconocido %q", c.Store.Driver)
	}
	if c.Store.Driver == StoreDriverS3 && c.Store.S3.Bucket == "" {
		return fmt.Errorf("config: S3_BUCKET es obligatorio con STORE_DRIVER=s3")
	}
	switch c.Session.Driver {
	case SessionDriverMemoria, SessionDriverRedis:
	default:
		return fmt.Errorf("config: SESSION_DRIVER desconocido %q", c.Session.Driver)
	}
	if c.Gate.Passphrase == "" {
		return fmt.Errorf("config: DASHBOARD_PASSPHRASE no puede estar vacío")
	}
	if c.Form.HistoryLimit <= 0 {
		c.Form.HistoryLimit = 15
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
			n, err := strconv.Atoi(v.GetString(key))
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
