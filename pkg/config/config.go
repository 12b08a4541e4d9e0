package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde flags, env y opcionalmente archivo).
type Config struct {
	App    AppConfig
	Input  InputConfig
	Output OutputConfig
	JWT    JWTConfig
	HTTP   HTTPConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string `validate:"oneof=development staging production"`
	Name     string `validate:"required"`
	LogLevel string `validate:"oneof=trace debug info warn error"`
}

// InputConfig lectura de snapshots.
type InputConfig struct {
	Encoding  string `validate:"oneof=utf-8 utf8 latin1 iso-8859-1 windows-1252 cp1252"`
	Delimiter string `validate:"omitempty,len=1"` // vacío = según extensión (coma o tabulador)
	Sheet     string // hoja de un .xlsx; vacío = primera hoja
}

// DelimiterRune devuelve el delimitador configurado o 0 si se decide por extensión.
func (c InputConfig) DelimiterRune() rune {
	if c.Delimiter == "" {
		return 0
	}
	if c.Delimiter == `\t` {
		return '\t'
	}
	return []rune(c.Delimiter)[0]
}

// OutputConfig salida del reporte.
type OutputConfig struct {
	Path   string `validate:"required"`
	Format string `validate:"oneof=json xml pdf"`
}

// JWTConfig configuración de JWT. Sin Secret la API no exige autenticación.
type JWTConfig struct {
	Secret     string
	Expiration int `validate:"min=1"` // minutos
	Issuer     string
}

// Enabled indica si la API debe validar tokens.
func (c JWTConfig) Enabled() bool { return c.Secret != "" }

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int `validate:"min=1,max=65535"`
	BodyLimitMB int `validate:"min=1,max=512"`
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// flagKeys relaciona los flags de la CLI con sus claves de configuración.
var flagKeys = map[string]string{
	"output":    "OUTPUT_PATH",
	"format":    "OUTPUT_FORMAT",
	"encoding":  "INPUT_ENCODING",
	"delimiter": "INPUT_DELIMITER",
	"sheet":     "INPUT_SHEET",
	"log-level": "LOG_LEVEL",
	"host":      "HTTP_HOST",
	"port":      "HTTP_PORT",
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, LOG_LEVEL, INPUT_ENCODING, OUTPUT_PATH, JWT_SECRET, etc.
func Load() (*Config, error) {
	return LoadWithFlags(nil)
}

// LoadWithFlags igual que Load pero los flags modificados en fs tienen la máxima prioridad.
func LoadWithFlags(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if fs != nil {
		for flag, key := range flagKeys {
			if f := fs.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("config: bind flag %s: %w", flag, err)
				}
			}
		}
	}

	cfg := &Config{
		App: AppConfig{
			Env:      v.GetString("APP_ENV"),
			Name:     v.GetString("APP_NAME"),
			LogLevel: strings.ToLower(v.GetString("LOG_LEVEL")),
		},
		Input: InputConfig{
			Encoding:  strings.ToLower(v.GetString("INPUT_ENCODING")),
			Delimiter: v.GetString("INPUT_DELIMITER"),
			Sheet:     v.GetString("INPUT_SHEET"),
		},
		Output: OutputConfig{
			Path:   v.GetString("OUTPUT_PATH"),
			Format: strings.ToLower(v.GetString("OUTPUT_FORMAT")),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("JWT_SECRET"),
			Expiration: v.GetInt("JWT_EXPIRATION_MINUTES"),
			Issuer:     v.GetString("JWT_ISSUER"),
		},
		HTTP: HTTPConfig{
			Host:        v.GetString("HTTP_HOST"),
			Port:        v.GetInt("HTTP_PORT"),
			BodyLimitMB: v.GetInt("HTTP_BODY_LIMIT_MB"),
		},
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "inventory-reconciler")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("INPUT_ENCODING", "utf-8")
	v.SetDefault("INPUT_DELIMITER", "")
	v.SetDefault("INPUT_SHEET", "")
	v.SetDefault("OUTPUT_PATH", "output/reconciliation_report.json")
	v.SetDefault("OUTPUT_FORMAT", "json")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRATION_MINUTES", 60)
	v.SetDefault("JWT_ISSUER", "inventory-reconciler")
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("HTTP_BODY_LIMIT_MB", 20)
}

// Validate aplica las reglas declaradas en las etiquetas validate.
func Validate(cfg *Config) error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config: %w", err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s=%v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	sort.Strings(fields)
	return fmt.Errorf("config inválida: %s", strings.Join(fields, ", "))
}
