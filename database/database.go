package database

import (
	"fmt"
	"log"
	"time"

	"budget/config"
	"budget/models"
	"budget/repository"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DriverMemory 内存存储，重启后数据丢失，适合本地调试
const DriverMemory = "memory"

// DSN 构建 MySQL 连接字符串
func DSN(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=UTC",
		cfg.Username,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
	)
}

// Open 连接 MySQL 并迁移记录表
func Open(cfg *config.Config) (*gorm.DB, error) {
	level := logger.Info
	if cfg.Server.Mode == "release" {
		level = logger.Warn
	}

	db, err := gorm.Open(mysql.Open(DSN(&cfg.Database)), &gorm.Config{
		Logger:  logger.Default.LogMode(level),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("数据库初始化成功")
	return db, nil
}

// Migrate 自动迁移四张记录表
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Expense{},
		&models.Saving{},
		&models.Investment{},
		&models.SavingsGoal{},
	); err != nil {
		return fmt.Errorf("迁移数据表失败: %w", err)
	}
	return nil
}

// NewStore 按配置创建记录存储
func NewStore(cfg *config.Config) (repository.Store, error) {
	if cfg.Database.Driver == DriverMemory {
		log.Println("使用内存存储")
		return repository.NewMemoryStore(), nil
	}
	if cfg.Database.Driver != "mysql" {
		return nil, fmt.Errorf("不支持的存储驱动: %s", cfg.Database.Driver)
	}

	db, err := Open(cfg)
	if err != nil {
		return nil, err
	}
	return repository.NewGormStore(db), nil
}
