package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AppConfig holds every runtime setting of the API and the seeder.
type AppConfig struct {
	Env           string              `mapstructure:"env"`
	Server        ServerConfig        `mapstructure:"server"`
	Log           LogConfig           `mapstructure:"log"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Catalog       CatalogConfig       `mapstructure:"catalog"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Generative    GenerativeConfig    `mapstructure:"generative"`
	Search        SearchConfig        `mapstructure:"search"`
	Kafka         KafkaConfig         `mapstructure:"kafka"`
	Auth          AuthConfig          `mapstructure:"auth"`
	RateLimit     RateLimitConfig     `mapstructure:"ratelimit"`
	CORS          CORSConfig          `mapstructure:"cors"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

type RedisConfig struct {
	URL      string        `mapstructure:"url"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// CatalogConfig selects the catalog backend: postgres, elasticsearch or http.
type CatalogConfig struct {
	Backend    string `mapstructure:"backend"`
	URL        string `mapstructure:"url"`
	MaxResults int    `mapstructure:"max_results"`
	Cache      bool   `mapstructure:"cache"`
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	Index     string   `mapstructure:"index"`
}

// GenerativeConfig selects the generative provider: local or http.
type GenerativeConfig struct {
	Provider             string `mapstructure:"provider"`
	Endpoint             string `mapstructure:"endpoint"`
	ImageBaseURL         string `mapstructure:"image_base_url"`
	TextBaseURL          string `mapstructure:"text_base_url"`
	Model                string `mapstructure:"model"`
	TextModel            string `mapstructure:"text_model"`
	Width                int    `mapstructure:"width"`
	Height               int    `mapstructure:"height"`
	Variants             int    `mapstructure:"variants"`
	MinDescriptionLength int    `mapstructure:"min_description_length"`
	Mode                 string `mapstructure:"mode"`
}

type SearchConfig struct {
	CatalogTimeout    time.Duration `mapstructure:"catalog_timeout"`
	GenerativeTimeout time.Duration `mapstructure:"generative_timeout"`
	SessionTTL        time.Duration `mapstructure:"session_ttl"`
	MaxSessions       int           `mapstructure:"max_sessions"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	JWTExpiry time.Duration `mapstructure:"jwt_expiry"`
	Issuer    string        `mapstructure:"issuer"`
}

type RateLimitConfig struct {
	AIRequests     int           `mapstructure:"ai_requests"`
	AIWindow       time.Duration `mapstructure:"ai_window"`
	SearchRequests int           `mapstructure:"search_requests"`
	SearchWindow   time.Duration `mapstructure:"search_window"`
}

type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// IsProduction reports whether APP_ENV is production.
func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// legacyEnv maps config keys onto the plain variable names deployments already use.
var legacyEnv = map[string]string{
	"env":             "APP_ENV",
	"server.port":     "PORT",
	"auth.jwt_secret": "JWT_SECRET",
	"auth.jwt_expiry": "JWT_EXPIRY",
}

// Load reads config.yaml from path and then environment variables, which win.
// A .env file in the working directory is loaded into the environment first.
func Load(path string) (*AppConfig, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		if err := v.BindEnv(key, strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Comma separated lists arrive from the environment as one string.
	cfg.Elasticsearch.Addresses = splitList(v, "elasticsearch.addresses", cfg.Elasticsearch.Addresses)
	cfg.Kafka.Brokers = splitList(v, "kafka.brokers", cfg.Kafka.Brokers)
	cfg.CORS.AllowOrigins = splitList(v, "cors.allow_origins", cfg.CORS.AllowOrigins)

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")

	v.SetDefault("server.port", 8081)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")

	v.SetDefault("database.url", "postgres://postgres:@localhost:5432/heritage_craft?sslmode=disable")
	v.SetDefault("database.max_open_conns", 5)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)
	v.SetDefault("database.conn_max_idle_time", 2*time.Minute)

	v.SetDefault("redis.url", "redis://localhost:6379")
	v.SetDefault("redis.cache_ttl", time.Minute)

	v.SetDefault("catalog.backend", "postgres")
	v.SetDefault("catalog.url", "")
	v.SetDefault("catalog.max_results", 50)
	v.SetDefault("catalog.cache", true)

	v.SetDefault("elasticsearch.addresses", []string{"http://localhost:9200"})
	v.SetDefault("elasticsearch.username", "")
	v.SetDefault("elasticsearch.password", "")
	v.SetDefault("elasticsearch.index", "products")

	v.SetDefault("generative.provider", "local")
	v.SetDefault("generative.endpoint", "")
	v.SetDefault("generative.image_base_url", "https://image.pollinations.ai")
	v.SetDefault("generative.text_base_url", "https://text.pollinations.ai")
	v.SetDefault("generative.model", "flux")
	v.SetDefault("generative.text_model", "openai")
	v.SetDefault("generative.width", 512)
	v.SetDefault("generative.height", 512)
	v.SetDefault("generative.variants", 4)
	v.SetDefault("generative.min_description_length", 5)
	v.SetDefault("generative.mode", "images")

	v.SetDefault("search.catalog_timeout", 4*time.Second)
	v.SetDefault("search.generative_timeout", 8*time.Second)
	v.SetDefault("search.session_ttl", 30*time.Minute)
	v.SetDefault("search.max_sessions", 10000)

	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "marketplace.search.performed")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.jwt_expiry", 24*time.Hour)
	v.SetDefault("auth.issuer", "heritage-craft-api")

	v.SetDefault("ratelimit.ai_requests", 20)
	v.SetDefault("ratelimit.ai_window", time.Minute)
	v.SetDefault("ratelimit.search_requests", 60)
	v.SetDefault("ratelimit.search_window", time.Minute)

	v.SetDefault("cors.allow_origins", []string{"http://localhost:3000", "http://localhost:3001"})
}

func splitList(v *viper.Viper, key string, current []string) []string {
	raw, ok := v.Get(key).(string)
	if !ok {
		return current
	}
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
