package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"uni-meet/internal/model"
	"uni-meet/pkg/config"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// Migrations 需要自动迁移的模型
var Migrations = []interface{}{
	&model.User{},
	&model.Club{},
	&model.ClubMember{},
	&model.Event{},
}

func dialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "mysql", "":
		return mysql.Open(cfg.DSN), nil
	case "postgres":
		return postgres.Open(cfg.DSN), nil
	case "sqlite":
		return sqlite.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// 初始化数据库连接
func InitDB(cfg config.DatabaseConfig) error {
	d, err := dialector(cfg)
	if err != nil {
		return err
	}

	gormConfig := &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	}
	if cfg.Debug {
		gormConfig.Logger = gormLogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormLogger.Config{
				SlowThreshold: time.Second,
				LogLevel:      gormLogger.Info,
				Colorful:      true,
			},
		)
	}

	// 关闭旧连接 (测试中会多次初始化)
	Close()

	conn, err := gorm.Open(d, gormConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Driver == "sqlite" {
		sqlDB, err := conn.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		// sqlite 只允许一个写连接
		sqlDB.SetMaxOpenConns(1)
	}

	// 自动迁移模式
	if err := conn.AutoMigrate(Migrations...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	DB = conn
	return nil
}

// Close 关闭数据库连接
func Close() {
	if DB == nil {
		return
	}
	if sqlDB, err := DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	DB = nil
}
