package config

import (
	"log"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Port           string        `mapstructure:"port"`
		Env            string        `mapstructure:"env"`
		LogLevel       string        `mapstructure:"log_level"`
		RequestTimeout time.Duration `mapstructure:"request_timeout"`
		PublicURL      string        `mapstructure:"public_url"`
	} `mapstructure:"app"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Redis struct {
		Addr       string        `mapstructure:"addr"`
		Password   string        `mapstructure:"password"`
		DB         int           `mapstructure:"db"`
		ProfileTTL time.Duration `mapstructure:"profile_ttl"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
		GroupID string   `mapstructure:"group_id"`
	} `mapstructure:"kafka"`
	Auth struct {
		JWTSecret     string        `mapstructure:"jwt_secret"`
		TokenLifespan time.Duration `mapstructure:"token_lifespan"`
	} `mapstructure:"auth"`
	LLM struct {
		Provider string        `mapstructure:"provider"`
		Host     string        `mapstructure:"host"`
		APIKey   string        `mapstructure:"api_key"`
		Model    string        `mapstructure:"model"`
		Timeout  time.Duration `mapstructure:"timeout"`
	} `mapstructure:"llm"`
	Cloudinary struct {
		CloudName string `mapstructure:"cloud_name"`
		ApiKey    string `mapstructure:"api_key"`
		ApiSecret string `mapstructure:"api_secret"`
	} `mapstructure:"cloudinary"`
	Jaeger struct {
		Enabled      bool   `mapstructure:"enabled"`
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"jaeger"`
	Progress struct {
		TimelineSwitch string `mapstructure:"timeline_switch"`
	} `mapstructure:"progress"`
}

func setDefaults() {
	viper.SetDefault("app.port", "8080")
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.log_level", "")
	viper.SetDefault("app.request_timeout", 15*time.Second)
	viper.SetDefault("app.public_url", "http://localhost:8080")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.profile_ttl", 10*time.Minute)
	viper.SetDefault("kafka.group_id", "career-path-worker")
	viper.SetDefault("auth.token_lifespan", 24*time.Hour)
	viper.SetDefault("llm.provider", "gemini")
	viper.SetDefault("llm.model", "gemini-2.5-flash")
	viper.SetDefault("llm.timeout", 30*time.Second)
	viper.SetDefault("progress.timeline_switch", "preserve")
}

// LoadConfig reads config.yaml from the given directories (default ".") and
// overlays environment variables, including those from a .env file.
func LoadConfig(paths ...string) (cfg Config, err error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	envFiles := make([]string, 0, len(paths))
	for _, p := range paths {
		envFiles = append(envFiles, strings.TrimSuffix(p, "/")+"/.env")
	}
	if err = godotenv.Load(envFiles...); err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	setDefaults()

	for _, p := range paths {
		viper.AddConfigPath(p)
	}
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if err = viper.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read .env only. Error: %v", err)
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.BindEnv("app.port", "APP_PORT")
	viper.BindEnv("app.env", "APP_ENV")
	viper.BindEnv("app.log_level", "LOG_LEVEL")
	viper.BindEnv("app.request_timeout", "REQUEST_TIMEOUT")
	viper.BindEnv("app.public_url", "PUBLIC_URL")
	viper.BindEnv("db.dsn", "DB_DSN")
	viper.BindEnv("redis.addr", "REDIS_ADDR")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("redis.profile_ttl", "REDIS_PROFILE_TTL")
	viper.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	viper.BindEnv("kafka.group_id", "KAFKA_GROUP_ID")
	viper.BindEnv("auth.jwt_secret", "JWT_SECRET")
	viper.BindEnv("auth.token_lifespan", "TOKEN_LIFESPAN")

	viper.BindEnv("llm.provider", "LLM_PROVIDER")
	viper.BindEnv("llm.host", "LLM_HOST")
	viper.BindEnv("llm.api_key", "LLM_API_KEY", "GEMINI_API_KEY")
	viper.BindEnv("llm.model", "LLM_MODEL")
	viper.BindEnv("llm.timeout", "LLM_TIMEOUT")

	viper.BindEnv("cloudinary.cloud_name", "CLOUDINARY_CLOUD_NAME")
	viper.BindEnv("cloudinary.api_key", "CLOUDINARY_API_KEY")
	viper.BindEnv("cloudinary.api_secret", "CLOUDINARY_API_SECRET")

	viper.BindEnv("jaeger.enabled", "JAEGER_ENABLED")
	viper.BindEnv("jaeger.otlp_endpoint", "JAEGER_OTLP_ENDPOINT")

	viper.BindEnv("progress.timeline_switch", "PROGRESS_TIMELINE_SWITCH")

	err = viper.Unmarshal(&cfg)
	if err == nil && len(cfg.Kafka.Brokers) == 1 && strings.Contains(cfg.Kafka.Brokers[0], ",") {
		cfg.Kafka.Brokers = strings.Split(cfg.Kafka.Brokers[0], ",")
	}
	return
}

// Watch reloads config.yaml on change and hands the new values to onChange.
// Only settings that are safe to swap at runtime should be read from it.
func Watch(onChange func(Config)) {
	viper.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		var cfg Config
		if err := viper.Unmarshal(&cfg); err != nil {
			log.Printf("warning: config reload failed: %v", err)
			return
		}
		onChange(cfg)
	})
	viper.WatchConfig()
}
