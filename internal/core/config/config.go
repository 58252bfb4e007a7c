package config

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type App struct {
	Name string
	Env  string
	HTTP HTTP
}

type Log struct {
	Level string
	JSON  bool
}

type JWT struct {
	Secret          string
	Issuer          string
	ExpiryInMinutes int
}

type DB struct {
	Driver             string
	DSN                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

type Password struct {
	MinLength        int
	RequireUppercase bool
	RequireLowercase bool
}

type Config struct {
	App      App
	Log      Log
	JWT      JWT
	DB       DB
	AuthDB   DB
	Password Password
}

func Load(path string) *Config {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config: %v", err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Fatalf("unmarshal config: %v", err)
	}
	c.applyDefaults()
	return &c
}

func (c *Config) applyDefaults() {
	// identity store defaults to the product store when not configured separately
	if c.AuthDB.Driver == "" && c.AuthDB.DSN == "" {
		c.AuthDB = c.DB
	}
	if c.Password.MinLength == 0 {
		c.Password = Password{MinLength: 8, RequireUppercase: true, RequireLowercase: true}
	}
	if c.JWT.ExpiryInMinutes == 0 {
		c.JWT.ExpiryInMinutes = 30
	}
}
