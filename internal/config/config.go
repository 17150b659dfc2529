package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	AppPort    string
	AppEnv     string

	RedisAddr string

	S3Bucket string
	S3Region string

	StorePrefix   string
	LowStockLimit int
	MaxOrderQty   int
	MaxImageBytes int64
	JWTSecret     string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),
		AppPort:    getenv("APP_PORT", "8080"),
		AppEnv:     os.Getenv("APP_ENV"),

		RedisAddr: getenv("REDIS_ADDR", "localhost:6379"),

		S3Bucket: getenv("S3_BUCKET", "plantstore-product-images"),
		S3Region: getenv("S3_REGION", "ap-south-1"),

		StorePrefix:   getenv("STORE_PREFIX", "FLOWER"),
		LowStockLimit: getenvInt("LOW_STOCK_LIMIT", 5),
		MaxOrderQty:   getenvInt("MAX_ORDER_QTY", 20),
		MaxImageBytes: int64(getenvInt("MAX_IMAGE_BYTES", 5*1024*1024)),
		JWTSecret:     os.Getenv("JWT_SECRET"),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
