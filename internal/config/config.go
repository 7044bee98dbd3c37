package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageDriverFile     = "file"
	StorageDriverRedis    = "redis"
	StorageDriverPostgres = "postgres"
)

type Config struct {
	App struct {
		Port    string `mapstructure:"port"`
		Env     string `mapstructure:"env"`
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"app"`
	Storage struct {
		Driver string `mapstructure:"driver"`
		Key    string `mapstructure:"key"`
		Dir    string `mapstructure:"dir"`
	} `mapstructure:"storage"`
	DB struct {
		DSN        string `mapstructure:"dsn"`
		Migrations string `mapstructure:"migrations"`
		MaxConns   int32  `mapstructure:"max_conns"`
	} `mapstructure:"db"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
		GroupID string   `mapstructure:"group_id"`
	} `mapstructure:"kafka"`
	Auth struct {
		JWTSecret     string        `mapstructure:"jwt_secret"`
		TokenLifespan time.Duration `mapstructure:"token_lifespan"`
	} `mapstructure:"auth"`
	Cloudinary struct {
		CloudName string `mapstructure:"cloud_name"`
		ApiKey    string `mapstructure:"api_key"`
		ApiSecret string `mapstructure:"api_secret"`
	} `mapstructure:"cloudinary"`
	LLM struct {
		BaseURL     string        `mapstructure:"base_url"`
		APIKey      string        `mapstructure:"api_key"`
		Model       string        `mapstructure:"model"`
		Temperature float32       `mapstructure:"temperature"`
		Timeout     time.Duration `mapstructure:"timeout"`
	} `mapstructure:"llm"`
	Jaeger struct {
		OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
		SampleRatio  float64 `mapstructure:"sample_ratio"`
	} `mapstructure:"jaeger"`
	Backup struct {
		Schedule    string        `mapstructure:"schedule"`
		MinInterval time.Duration `mapstructure:"min_interval"`
	} `mapstructure:"backup"`
}

// Enabled helpers keep optional integrations out of main.

func (c Config) CloudinaryEnabled() bool { return c.Cloudinary.CloudName != "" }

func (c Config) KafkaEnabled() bool { return len(c.Kafka.Brokers) > 0 }

func (c Config) TracingEnabled() bool { return c.Jaeger.OTLPEndpoint != "" }

// LoadConfig reads .env and config.yaml from the given directories (the working directory when
// none is given), then overlays environment variables.
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

	v := viper.New()
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err = v.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read .env only. Error: %v", err)
	}

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("app.port", "APP_PORT")
	v.BindEnv("app.env", "APP_ENV")
	v.BindEnv("app.base_url", "APP_BASE_URL")
	v.BindEnv("storage.driver", "STORAGE_DRIVER")
	v.BindEnv("storage.key", "STORAGE_KEY")
	v.BindEnv("storage.dir", "STORAGE_DIR")
	v.BindEnv("db.dsn", "DB_DSN")
	v.BindEnv("db.migrations", "DB_MIGRATIONS")
	v.BindEnv("db.max_conns", "DB_MAX_CONNS")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("redis.db", "REDIS_DB")
	v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("kafka.group_id", "KAFKA_GROUP_ID")
	v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	v.BindEnv("auth.token_lifespan", "TOKEN_LIFESPAN")

	v.BindEnv("cloudinary.cloud_name", "CLOUDINARY_CLOUD_NAME")
	v.BindEnv("cloudinary.api_key", "CLOUDINARY_API_KEY")
	v.BindEnv("cloudinary.api_secret", "CLOUDINARY_API_SECRET")

	v.BindEnv("llm.base_url", "LLM_BASE_URL")
	v.BindEnv("llm.api_key", "LLM_API_KEY")
	v.BindEnv("llm.model", "LLM_MODEL")
	v.BindEnv("llm.temperature", "LLM_TEMPERATURE")
	v.BindEnv("llm.timeout", "LLM_TIMEOUT")

	v.BindEnv("jaeger.otlp_endpoint", "JAEGER_OTLP_ENDPOINT")
	v.BindEnv("jaeger.sample_ratio", "JAEGER_SAMPLE_RATIO")
	v.BindEnv("backup.schedule", "BACKUP_SCHEDULE")
	v.BindEnv("backup.min_interval", "BACKUP_MIN_INTERVAL")

	err = v.Unmarshal(&cfg)
	if err != nil {
		return cfg, err
	}

	// KAFKA_BROKERS arrives as one comma separated string.
	if len(cfg.Kafka.Brokers) == 1 && strings.Contains(cfg.Kafka.Brokers[0], ",") {
		cfg.Kafka.Brokers = strings.Split(cfg.Kafka.Brokers[0], ",")
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.base_url", "http://localhost:8080")
	v.SetDefault("storage.driver", StorageDriverFile)
	v.SetDefault("storage.key", "portfolio_cms_data_v3")
	v.SetDefault("storage.dir", "./data")
	v.SetDefault("db.migrations", "file://migrations")
	v.SetDefault("db.max_conns", 4)
	v.SetDefault("kafka.group_id", "portfolio-notifier-group")
	v.SetDefault("auth.token_lifespan", "12h")
	v.SetDefault("llm.base_url", "http://localhost:11434/v1")
	v.SetDefault("llm.model", "phi3:mini")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.timeout", "60s")
	v.SetDefault("jaeger.sample_ratio", 1.0)
	v.SetDefault("backup.schedule", "@daily")
	v.SetDefault("backup.min_interval", "10m")
}
