package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port                    string
	Env                     string
	PostgresConnStr         string
	JWTSecret               string
	JWTTTL                  time.Duration
	RedisAddr               string
	UserCacheTTL            time.Duration
	AvatarStore             string
	AvatarDir               string
	MongoURI                string
	MongoDatabase           string
	FirebaseCredentialsPath string
	CORSOrigins             []string
}

// devJWTSecret is only accepted when ENV=development.
const devJWTSecret = "movieshare-dev-secret"

// Load reads .env (if any), the optional app.yaml and the environment. Environment wins.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("JWT_TTL_MINUTES", 30)
	v.SetDefault("USER_CACHE_TTL_SECONDS", 300)
	v.SetDefault("AVATAR_STORE", "disk")
	v.SetDefault("AVATAR_DIR", "./uploads/avatars")
	v.SetDefault("MONGO_DATABASE", "movieshare")

	cfg := &Config{
		Port:                    v.GetString("PORT"),
		Env:                     v.GetString("ENV"),
		PostgresConnStr:         v.GetString("POSTGRES_CONN_STR"),
		JWTSecret:               v.GetString("JWT_SECRET"),
		JWTTTL:                  time.Duration(v.GetInt("JWT_TTL_MINUTES")) * time.Minute,
		RedisAddr:               v.GetString("REDIS_ADDR"),
		UserCacheTTL:            time.Duration(v.GetInt("USER_CACHE_TTL_SECONDS")) * time.Second,
		AvatarStore:             strings.ToLower(v.GetString("AVATAR_STORE")),
		AvatarDir:               v.GetString("AVATAR_DIR"),
		MongoURI:                v.GetString("MONGO_URI"),
		MongoDatabase:           v.GetString("MONGO_DATABASE"),
		FirebaseCredentialsPath: v.GetString("FIREBASE_CREDENTIALS_PATH"),
		CORSOrigins:             splitList(v.GetString("CORS_ORIGINS")),
	}
	return cfg, cfg.validate()
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// UsesMongo reports whether a MongoDB connection is needed. Only the GridFS
// avatar store reads from Mongo.
func (c *Config) UsesMongo() bool {
	return c.AvatarStore == "gridfs"
}

func (c *Config) validate() error {
	if c.PostgresConnStr == "" {
		return errors.New("POSTGRES_CONN_STR environment variable not set")
	}
	if c.JWTSecret == "" {
		if !c.IsDevelopment() {
			return errors.New("JWT_SECRET environment variable not set")
		}
		c.JWTSecret = devJWTSecret
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL_MINUTES must be positive")
	}
	switch c.AvatarStore {
	case "disk":
	case "gridfs":
		if c.MongoURI == "" {
			return errors.New("MONGO_URI is required when AVATAR_STORE=gridfs")
		}
	default:
		return errors.New("AVATAR_STORE must be disk or gridfs")
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
