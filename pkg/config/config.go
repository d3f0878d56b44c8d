package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración del panel (lectura vía Viper desde env y
// opcionalmente archivo).
type Config struct {
	App    AppConfig
	API    APIConfig
	HTTP   HTTPConfig
	JWT    JWTConfig
	Stores StoreConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// APIConfig configuración del API remoto de catálogo (colaborador externo).
type APIConfig struct {
	BaseURL string // ej. https://api.mitienda.com
	Token   string // credencial bearer suministrada por el colaborador de sesión
	Timeout time.Duration
}

// HTTPConfig configuración del servidor HTTP del panel (puente al navegador).
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig configuración del token local del panel.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// StoreConfig política de caché de los stores en memoria.
type StoreConfig struct {
	// StaleAfter tiempo tras el cual un listado se considera viejo y
	// IsStale() sugiere un Refresh explícito (reemplaza el fetch implícito
	// al cambiar de pestaña).
	StaleAfter time.Duration
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, API_BASE_URL, API_TOKEN, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// También intenta config.env
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "tienda-admin"),
			LogLevel: getString(v, "APP_LOG_LEVEL", "info"),
		},
		API: APIConfig{
			BaseURL: getString(v, "API_BASE_URL", "http://localhost:4000"),
			Token:   getString(v, "API_TOKEN", ""),
			Timeout: time.Duration(getInt(v, "API_TIMEOUT_SECONDS", 15)) * time.Second,
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "tienda-admin"),
		},
		Stores: StoreConfig{
			StaleAfter: time.Duration(getInt(v, "STORE_STALE_SECONDS", 60)) * time.Second,
		},
	}

	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("config: API_BASE_URL es requerido")
	}

	return cfg, nil
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
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
