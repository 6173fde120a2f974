package core

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Debug            bool
		TestMode         bool
		Env              string // DEV (default), TEST, QA, PROD
		Build            string
		AppName          string
		SecretKey        string
		WorkDir          string
		FrontendBaseURL  string
		DefaultFromEmail string
		SendgridAPIKey   string
		RollbarToken     string

		Server   ServerConfig
		Database DatabaseConfig
		Redis    RedisConfig
		Blob     BlobConfig
		Export   ExportConfig
	}

	ServerConfig struct {
		Host               string
		Address            string
		DebugHost          string
		ShutdownTimeout    time.Duration
		JWTExpirationDelta time.Duration
	}

	DatabaseConfig struct {
		Engine        string
		Name          string
		Host          string
		Port          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
	}

	RedisConfig struct {
		Address     string
		Password    string
		SnapshotTTL time.Duration
	}

	BlobConfig struct {
		Bucket    string
		Region    string
		KeyPrefix string
	}

	ExportConfig struct {
		DefaultPageSize   int
		PageSizeOptions   []int
		DirectoryPageSize int
		FetchTimeout      time.Duration
	}
)

func (conf DatabaseConfig) Address() string {
	return fmt.Sprintf("%s:%s", conf.Host, conf.Port)
}

func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Darasa Admin")
	v.SetDefault("build", "dev")
	v.SetDefault("secretKey", "poq5-wer)enb$+57=dz&uoxh2(h!x)#*c2(#yg4h^$cegm2emy")
	v.SetDefault("frontendBaseURL", "http://localhost:3000")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.debugHost", ":4000")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("server.jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("database.engine", "postgres")
	v.SetDefault("database.name", "darasa")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.disableTLS", true)
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.snapshotTTL", 2*time.Minute)
	v.SetDefault("blob.bucket", "darasa-partners")
	v.SetDefault("blob.region", "us-east-1")
	v.SetDefault("blob.keyPrefix", "partners/")
	v.SetDefault("export.defaultPageSize", 25)
	v.SetDefault("export.pageSizeOptions", []int{25, 50, 100})
	v.SetDefault("export.directoryPageSize", 1000)
	v.SetDefault("export.fetchTimeout", 30*time.Second)

	env := os.Getenv("ENV")
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	wd := Getwd()

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		Debug:            v.GetBool("debug"),
		TestMode:         v.GetBool("testMode"),
		Env:              env,
		Build:            v.GetString("build"),
		AppName:          v.GetString("appName"),
		SecretKey:        v.GetString("secretKey"),
		WorkDir:          wd,
		FrontendBaseURL:  v.GetString("frontendBaseURL"),
		DefaultFromEmail: v.GetString("defaultFromEmail"),
		SendgridAPIKey:   v.GetString("sendgridAPIKey"),
		RollbarToken:     v.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:               v.GetString("server.host"),
			Address:            v.GetString("server.address"),
			DebugHost:          v.GetString("server.debugHost"),
			ShutdownTimeout:    v.GetDuration("server.shutdownTimeout"),
			JWTExpirationDelta: v.GetDuration("server.jwtExpirationDelta"),
		},
		Database: DatabaseConfig{
			Engine:        v.GetString("database.engine"),
			Name:          v.GetString("database.name"),
			Host:          v.GetString("database.host"),
			Port:          v.GetString("database.port"),
			User:          v.GetString("database.user"),
			Password:      v.GetString("database.password"),
			AdminUser:     v.GetString("database.adminUser"),
			AdminPassword: v.GetString("database.adminPassword"),
			DisableTLS:    v.GetBool("database.disableTLS"),
		},
		Redis: RedisConfig{
			Address:     v.GetString("redis.address"),
			Password:    v.GetString("redis.password"),
			SnapshotTTL: v.GetDuration("redis.snapshotTTL"),
		},
		Blob: BlobConfig{
			Bucket:    v.GetString("blob.bucket"),
			Region:    v.GetString("blob.region"),
			KeyPrefix: v.GetString("blob.keyPrefix"),
		},
		Export: ExportConfig{
			DefaultPageSize:   v.GetInt("export.defaultPageSize"),
			PageSizeOptions:   v.GetIntSlice("export.pageSizeOptions"),
			DirectoryPageSize: v.GetInt("export.directoryPageSize"),
			FetchTimeout:      v.GetDuration("export.fetchTimeout"),
		},
	}
}
