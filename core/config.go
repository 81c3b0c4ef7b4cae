package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends
const (
	StorageMongoDB = "mongodb"
	StorageMemory  = "memory"
)

type (
	ServerConfig struct {
		Address            string
		Host               string
		DebugHost          string
		ShutdownTimeout    time.Duration
		JWTExpirationDelta time.Duration
		DisableReqLogs     bool
	}

	DatabaseConfig struct {
		URI            string
		Name           string
		ConnectTimeout time.Duration
	}

	Config struct {
		Env                 string // DEV (local; default), TEST, QA, PROD
		Build               string
		AppName             string
		Debug               bool
		TestMode            bool
		SecretKey           string
		RollbarToken        string
		CommonPasswordsPath string // gzipped list of passwords refused by the password policy
		Storage             string
		Server              ServerConfig
		Database            DatabaseConfig
	}
)

func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("build", "develop")
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Barrios")
	v.SetDefault("secretKey", "n7#vq2+jk!r0w@x8$zl4&me1p)c5^hs9(bt3*fy6_gd0=ua")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("commonPasswordsPath", filepath.Join("assets", "common-passwords.txt.gz"))
	v.SetDefault("storage", StorageMongoDB)
	v.SetDefault("serverAddress", ":9000")
	v.SetDefault("serverHost", "localhost")
	v.SetDefault("debugHost", "localhost:9090")
	v.SetDefault("shutdownTimeout", 5*time.Second)
	v.SetDefault("jwtExpirationDelta", time.Hour)
	v.SetDefault("disableReqLogs", false)
	v.SetDefault("mongodbURI", "mongodb://localhost:27017")
	v.SetDefault("mongodbName", "barrios")
	v.SetDefault("mongodbConnectTimeout", 10*time.Second)

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		Env:                 env,
		Build:               v.GetString("build"),
		AppName:             v.GetString("appName"),
		Debug:               v.GetBool("debug"),
		TestMode:            v.GetBool("testMode"),
		SecretKey:           v.GetString("secretKey"),
		RollbarToken:        v.GetString("rollbarToken"),
		CommonPasswordsPath: v.GetString("commonPasswordsPath"),
		Storage:             v.GetString("storage"),
		Server: ServerConfig{
			Address:            v.GetString("serverAddress"),
			Host:               v.GetString("serverHost"),
			DebugHost:          v.GetString("debugHost"),
			ShutdownTimeout:    v.GetDuration("shutdownTimeout"),
			JWTExpirationDelta: v.GetDuration("jwtExpirationDelta"),
			DisableReqLogs:     v.GetBool("disableReqLogs"),
		},
		Database: DatabaseConfig{
			URI:            v.GetString("mongodbURI"),
			Name:           v.GetString("mongodbName"),
			ConnectTimeout: v.GetDuration("mongodbConnectTimeout"),
		},
	}
}
