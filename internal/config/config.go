package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv     string
	Host, Port string

	DBDSN     string
	RedisAddr string
	RedisDB   int

	SecretKey string
	Algorithm string
	TokenTTL  time.Duration

	CORSOrigins []string

	LeaderboardTTL time.Duration
}

func Load() *Config {
	_ = godotenv.Load()

	c := &Config{
		AppEnv:         get("APP_ENV", "dev"),
		Host:           get("HOST", "0.0.0.0"),
		Port:           get("PORT", "8000"),
		DBDSN:          must("DB_DSN"),
		RedisAddr:      get("REDIS_ADDR", "127.0.0.1:6379"),
		RedisDB:        intEnv("REDIS_DB", "0"),
		SecretKey:      must("SECRET_KEY"),
		Algorithm:      get("ALGORITHM", "HS256"),
		TokenTTL:       time.Duration(intEnv("ACCESS_TOKEN_EXPIRE_MINUTES", "30")) * time.Minute,
		CORSOrigins:    split(get("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		LeaderboardTTL: durationEnv("LEADERBOARD_CACHE_TTL", "30s"),
	}
	return c
}

func get(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing env %s", k)
	}
	return v
}
func intEnv(k, d string) int {
	s := get(k, d)
	i, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("env %s: %q is not an integer", k, s)
	}
	return i
}
func durationEnv(k, d string) time.Duration {
	s := get(k, d)
	v, err := time.ParseDuration(s)
	if err != nil {
		log.Fatalf("env %s: %q is not a duration", k, s)
	}
	return v
}
func split(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func GetEnv(k, d string) string {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	return v
}
