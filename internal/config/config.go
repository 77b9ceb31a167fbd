// internal/config/config.go
package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Name string `mapstructure:"name"`
		Env  string `mapstructure:"env"` // dev / production
	} `mapstructure:"app"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Database struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"database"`
	JWT struct {
		SecretKey        string        `mapstructure:"secret_key"`
		RefreshSecretKey string        `mapstructure:"refresh_secret_key"`
		AccessTokenTTL   time.Duration `mapstructure:"access_token_ttl"`
		RefreshTokenTTL  time.Duration `mapstructure:"refresh_token_ttl"`
		Issuer           string        `mapstructure:"issuer"`
		Audience         string        `mapstructure:"audience"`
	} `mapstructure:"jwt"`
	Storage struct {
		Driver    string `mapstructure:"driver"` // local / minio
		UploadDir string `mapstructure:"upload_dir"`
		PublicURL string `mapstructure:"public_url"` // 生成するURLのベース
		Minio     struct {
			Endpoint     string `mapstructure:"endpoint"`
			AccessKey    string `mapstructure:"access_key"`
			SecretKey    string `mapstructure:"secret_key"`
			Bucket       string `mapstructure:"bucket"`
			UseSSL       bool   `mapstructure:"use_ssl"`
			AvatarFolder string `mapstructure:"avatar_folder"`
		} `mapstructure:"minio"`
	} `mapstructure:"storage"`
	Redis struct {
		Enabled  bool   `mapstructure:"enabled"`
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`
	Mailer struct {
		Type   string `mapstructure:"type"` // log / ses
		Sender string `mapstructure:"sender"`
	} `mapstructure:"mailer"`
	SES struct {
		Region          string `mapstructure:"region"`
		AuthType        string `mapstructure:"auth_type"` // iam_role / static_credentials
		AccessKeyID     string `mapstructure:"access_key_id"`
		SecretAccessKey string `mapstructure:"secret_access_key"`
	} `mapstructure:"ses"`
	CORS struct {
		AllowedOrigins   []string `mapstructure:"allowed_origins"`
		AllowedMethods   []string `mapstructure:"allowed_methods"`
		AllowedHeaders   []string `mapstructure:"allowed_headers"`
		ExposedHeaders   []string `mapstructure:"exposed_headers"`
		AllowCredentials bool     `mapstructure:"allow_credentials"`
		MaxAge           int      `mapstructure:"max_age"`
	} `mapstructure:"cors"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

// IsProduction は本番環境かどうかを返します。
// エラーレスポンスへのスタック添付や検証コードのエコーバックの抑制に使う。
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

var Cfg Config

func LoadConfig(path string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("APP")
	viper.AutomaticEnv()
	viper.BindEnv("app.env", "APP_ENV")
	viper.BindEnv("database.dsn", "DATABASE_DSN")
	viper.BindEnv("jwt.secret_key", "JWT_SECRET")
	viper.BindEnv("jwt.refresh_secret_key", "JWT_REFRESH_SECRET")
	viper.BindEnv("storage.minio.access_key", "MINIO_ACCESS_KEY")
	viper.BindEnv("storage.minio.secret_key", "MINIO_SECRET_KEY")
	viper.BindEnv("redis.addr", "REDIS_ADDR")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	if err := viper.Unmarshal(&Cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	applyDefaults(&Cfg)

	log.Println("Config loaded successfully")
	log.Printf("App Env: %s", Cfg.App.Env)
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Storage Driver: %s", Cfg.Storage.Driver)

	return nil
}

func applyDefaults(c *Config) {
	if c.App.Name == "" {
		c.App.Name = "voca-app"
	}
	if c.Server.Port == "" {
		log.Println("Server port not set, using default ':8080'")
		c.Server.Port = ":8080"
	}
	if c.Database.DSN == "" {
		log.Println("Warning: Database DSN is not set in config.")
	}
	if c.JWT.SecretKey == "" {
		log.Println("Warning: JWT secret key not set, using insecure default.")
		c.JWT.SecretKey = "your-secret-key"
	}
	if c.JWT.RefreshSecretKey == "" {
		c.JWT.RefreshSecretKey = "your-refresh-secret"
	}
	if c.JWT.AccessTokenTTL <= 0 {
		c.JWT.AccessTokenTTL = 24 * time.Hour
	}
	if c.JWT.RefreshTokenTTL <= 0 {
		c.JWT.RefreshTokenTTL = 7 * 24 * time.Hour
	}
	if c.JWT.Issuer == "" {
		c.JWT.Issuer = "voca-app"
	}
	if c.JWT.Audience == "" {
		c.JWT.Audience = "voca-users"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "local"
	}
	if c.Storage.UploadDir == "" {
		c.Storage.UploadDir = "uploads"
	}
	if c.Storage.Minio.AvatarFolder == "" {
		c.Storage.Minio.AvatarFolder = "avatars"
	}
	if c.Mailer.Type == "" {
		c.Mailer.Type = "log"
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}
	if len(c.CORS.AllowedMethods) == 0 {
		c.CORS.AllowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	if len(c.CORS.AllowedHeaders) == 0 {
		c.CORS.AllowedHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
