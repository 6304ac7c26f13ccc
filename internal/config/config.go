package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const defaultDSN = "host=localhost user=postgres password=postgres dbname=catalog port=5432 sslmode=disable"

type Config struct {
	HTTPPort       string
	DatabaseDriver string // postgres | sqlite
	DatabaseDSN    string
	PublicDir      string // SPA dosyalarının bulunduğu klasör
	CORSOrigins    string
	HighlightDelay time.Duration // satır içi düzenlemede hücre vurgusunun süresi
}

func Load() *Config {
	// .env varsa yükle, yoksa sadece ortam değişkenleri
	if err := godotenv.Load(); err == nil {
		log.Println(".env dosyası yüklendi")
	}

	driver := getEnv("DATABASE_DRIVER", "postgres")
	dsn := defaultDSN
	if driver == "sqlite" {
		// boş DSN: bellek içi veritabanı
		dsn = ""
	}

	cfg := &Config{
		HTTPPort:       getEnv("HTTP_PORT", "8000"),
		DatabaseDriver: driver,
		DatabaseDSN:    getEnv("DATABASE_DSN", dsn),
		PublicDir:      getEnv("PUBLIC_DIR", "./public"),
		CORSOrigins:    getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:8000"),
		HighlightDelay: time.Duration(getEnvInt("HIGHLIGHT_MS", 800)) * time.Millisecond,
	}

	if cfg.DatabaseDriver == "postgres" && cfg.DatabaseDSN == defaultDSN {
		log.Println("[WARN] DATABASE_DSN varsayılan değer kullanılıyor, production için kendi Postgres bağlantı bilgini tanımla.")
	}
	if cfg.CORSOrigins == "http://localhost:8000" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS varsayılan değer kullanılıyor.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		log.Printf("[WARN] %s geçersiz (%q), varsayılan %d kullanılıyor", key, v, def)
		return def
	}
	return n
}
