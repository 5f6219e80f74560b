package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type TLS struct {
	CertFile  string `mapstructure:"certFile"`
	KeyFile   string `mapstructure:"keyFile"`
	EnableTLS bool   `mapstructure:"enableTLS"`
}

type Config struct {
	Mode     string `mapstructure:"mode"`
	Version  string `mapstructure:"version"`
	Dotenv   string `mapstructure:"dotenv"`
	Handlers struct {
		Prometheus struct {
			Port string `mapstructure:"port"`
			TLS  `mapstructure:",squash"`
		} `mapstructure:"prometheus"`
	} `mapstructure:"handlers"`
	Repositories struct {
		Postgres struct {
			Enabled           bool   `mapstructure:"enabled"`
			Host              string `mapstructure:"host"`
			Password          string `mapstructure:"password"`
			Port              string `mapstructure:"port"`
			Username          string `mapstructure:"username"`
			DB                string `mapstructure:"db"`
			SSLMODE           string `mapstructure:"SSLMODE"`
			MAXCONWAITINGTIME int    `mapstructure:"MAXCONWAITINGTIME"`
		} `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
	Server struct {
		HTTPPort     string        `mapstructure:"HTTPPort"`
		Timeout      time.Duration `mapstructure:"HTTPTimeout"`
		ReadTimeout  time.Duration `mapstructure:"readTimeout"`
		WriteTimeout time.Duration `mapstructure:"writeTimeout"`
	} `mapstructure:"server"`
	Cache     Cache     `mapstructure:"cache"`
	Providers Providers `mapstructure:"providers"`
	LLM       struct {
		APIKey      string  `mapstructure:"apiKey"`
		Model       string  `mapstructure:"model"`
		Temperature float32 `mapstructure:"temperature"`
	} `mapstructure:"llm"`
	Planner struct {
		DefaultLocale string `mapstructure:"defaultLocale"`
	} `mapstructure:"planner"`
	RateLimit struct {
		Enabled           bool    `mapstructure:"enabled"`
		RequestsPerSecond float64 `mapstructure:"requestsPerSecond"`
		Burst             int     `mapstructure:"burst"`
	} `mapstructure:"ratelimit"`
	Auth struct {
		JWTSecret string `mapstructure:"jwtSecret"`
	} `mapstructure:"auth"`
}

type Cache struct {
	Dir            string `mapstructure:"dir"`
	MaxSizeMB      int    `mapstructure:"maxSizeMB"`
	MaxMemoryItems int    `mapstructure:"maxMemoryItems"`
	Redis          struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`
}

type Providers struct {
	Timeout     time.Duration `mapstructure:"timeout"`
	UserAgent   string        `mapstructure:"userAgent"`
	Nominatim   Endpoint      `mapstructure:"nominatim"`
	OpenWeather Endpoint      `mapstructure:"openWeather"`
	Foursquare  Endpoint      `mapstructure:"foursquare"`
	Wikipedia   Endpoint      `mapstructure:"wikipedia"`
	Tavily      Endpoint      `mapstructure:"tavily"`
	GoogleMaps  Endpoint      `mapstructure:"googleMaps"`
}

type Endpoint struct {
	BaseURL string `mapstructure:"baseURL"`
	APIKey  string `mapstructure:"apiKey"`
}

// envBindings maps config keys to the provider credential variables used in
// deployment environments.
var envBindings = map[string]string{
	"llm.apiKey":                   "GOOGLE_GEMINI_API_KEY",
	"providers.openWeather.apiKey": "OPENWEATHER_API_KEY",
	"providers.foursquare.apiKey":  "FOURSQUARE_API_KEY",
	"providers.tavily.apiKey":      "TAVILY_API_KEY",
	"providers.googleMaps.apiKey":  "GOOGLE_MAPS_API_KEY",
	"auth.jwtSecret":               "JWT_SECRET",
	"mode":                         "APP_ENV",
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	// Add file-based config paths
	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")
	v.AddConfigPath("/usr/local/bin")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	// Try to load file-based config
	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	fmt.Println("Successfully loaded app configs...")
	return config, nil
}

// Development reports whether the service runs in development mode.
func (c Config) Development() bool {
	return c.Mode == "" || c.Mode == "development"
}
