package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Drivers de almacenamiento soportados (STORE_DRIVER).
const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Drivers de notificación soportados (NOTIFIER_DRIVER).
const (
	NotifierPusher = "pusher"
	NotifierRedis  = "redis"
	NotifierLocal  = "local"
	NotifierNone   = "none"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Store    StoreConfig
	Mongo    MongoConfig
	DB       DBConfig
	JWT      JWTConfig
	Notifier NotifierConfig
	Pusher   PusherConfig
	Redis    RedisConfig
	Seed     SeedConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host          string
	Port          int
	CORSOrigins   string
	AuthRateLimit int // peticiones por minuto e IP en register/login; 0 desactiva
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StoreConfig selecciona el adaptador de persistencia.
type StoreConfig struct {
	Driver string // mongo, postgres, memory
}

// MongoConfig configuración del almacén de documentos.
type MongoConfig struct {
	URI      string
	Database string
}

// DBConfig configuración de PostgreSQL (driver alterno).
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

// JWTConfig configuración de JWT. La vigencia del token es fija (30 días) y no se configura.
type JWTConfig struct {
	Secret string
	Issuer string
}

// NotifierConfig selecciona el relay de notificaciones de cambios.
type NotifierConfig struct {
	Driver string // pusher, redis, local, none
}

// PusherConfig credenciales del relay Pusher. Host solo se usa para apuntar a un servidor propio.
type PusherConfig struct {
	AppID   string
	Key     string
	Secret  string
	Cluster string
	Host    string
}

// Complete informa si están las cuatro credenciales obligatorias.
func (c PusherConfig) Complete() bool {
	return c.AppID != "" && c.Key != "" && c.Secret != "" && c.Cluster != ""
}

// RedisConfig configuración del broker Redis pub/sub.
type RedisConfig struct {
	Addr          string
	Password      string
	DB            int
	ChannelPrefix string
}

// SeedConfig datos del primer administrador (cmd/seed).
type SeedConfig struct {
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, MONGO_URI, JWT_SECRET, PUSHER_KEY, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "catalog-admin-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:          getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:          getInt(v, "HTTP_PORT", 5000),
			CORSOrigins:   getString(v, "CORS_ORIGINS", "*"),
			AuthRateLimit: getInt(v, "AUTH_RATE_LIMIT", 20),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getString(v, "STORE_DRIVER", StoreMongo)),
		},
		Mongo: MongoConfig{
			URI:      getString(v, "MONGO_URI", "mongodb://localhost:27017"),
			Database: getString(v, "MONGO_DATABASE", "catalog_admin"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "catalog_admin"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret: getString(v, "JWT_SECRET", ""),
			Issuer: getString(v, "JWT_ISSUER", "catalog-admin-api"),
		},
		Notifier: NotifierConfig{
			Driver: strings.ToLower(getString(v, "NOTIFIER_DRIVER", NotifierLocal)),
		},
		Pusher: PusherConfig{
			AppID:   getString(v, "PUSHER_APP_ID", ""),
			Key:     getString(v, "PUSHER_KEY", ""),
			Secret:  getString(v, "PUSHER_SECRET", ""),
			Cluster: getString(v, "PUSHER_CLUSTER", ""),
			Host:    getString(v, "PUSHER_HOST", ""),
		},
		Redis: RedisConfig{
			Addr:          getString(v, "REDIS_ADDR", "localhost:6379"),
			Password:      getString(v, "REDIS_PASSWORD", ""),
			DB:            getInt(v, "REDIS_DB", 0),
			ChannelPrefix: getString(v, "REDIS_CHANNEL_PREFIX", ""),
		},
		Seed: SeedConfig{
			AdminName:     getString(v, "SEED_ADMIN_NAME", "Administrator"),
			AdminEmail:    getString(v, "SEED_ADMIN_EMAIL", ""),
			AdminPassword: getString(v, "SEED_ADMIN_PASSWORD", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rechaza combinaciones que no pueden arrancar.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreMongo, StorePostgres, StoreMemory:
	default:
		return fmt.Errorf("config: STORE_DRIVER desconocido %q", c.Store.Driver)
	}
	switch c.Notifier.Driver {
	case NotifierPusher:
		if !c.Pusher.Complete() {
			return errors.New("config: faltan credenciales Pusher (PUSHER_APP_ID, PUSHER_KEY, PUSHER_SECRET, PUSHER_CLUSTER)")
		}
	case NotifierRedis, NotifierLocal, NotifierNone:
	default:
		return fmt.Errorf("config: NOTIFIER_DRIVER desconocido %q", c.Notifier.Driver)
	}
	if c.JWT.Secret == "" && c.Store.Driver != StoreMemory {
		return errors.New("config: JWT_SECRET es obligatorio")
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
