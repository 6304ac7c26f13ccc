package database

import (
	"fmt"
	"log"
	"time"

	"catalog-backend/internal/config"
	"catalog-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	if cfg.DatabaseDriver == "sqlite" && cfg.DatabaseDSN == "" {
		log.Printf("[WARN] DATABASE_DSN boş, bellek içi SQLite kullanılıyor (veriler kalıcı değil)")
		DB, err = OpenMemory("catalog")
	} else {
		DB, err = Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	}
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	log.Printf("Veritabanı bağlantısı başarılı (%s). Migration tamamlandı.", cfg.DatabaseDriver)
}

// Open: sürücüye göre gorm bağlantısı açar (postgres | sqlite).
func Open(driver, dsn string) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	switch driver {
	case "postgres", "":
		db, err := gorm.Open(postgres.Open(dsn), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("get sql db: %w", err)
		}
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(time.Hour)
		return db, nil

	case "sqlite":
		db, err := gorm.Open(sqlite.Open(dsn), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("sqlite: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("get sql db: %w", err)
		}
		// SQLite tek yazıcı; bellek içi veritabanında bağlantılar da paylaşılmalı
		sqlDB.SetMaxOpenConns(1)
		return db, nil

	default:
		return nil, fmt.Errorf("desteklenmeyen veritabanı sürücüsü: %s", driver)
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Catalog{},
		&models.Order{},
		&models.ClientSetting{},
	)
}

// OpenMemory: adlandırılmış, bellek içi SQLite veritabanı açar ve tabloları oluşturur.
// Aynı ad aynı veritabanını paylaşır.
func OpenMemory(name string) (*gorm.DB, error) {
	db, err := Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
