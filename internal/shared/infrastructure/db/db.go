package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"Cataphract/internal/shared/logs"
	"Cataphract/internal/shared/serverconfig"
)

const slowQueryThreshold = 200 * time.Millisecond

// Open 建立 MySQL 连接池，SQL 日志走 zap。
func Open(cfg serverconfig.MySQLConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn(cfg)), &gorm.Config{
		Logger: logs.NewGormLogger(logger.Info, slowQueryThreshold),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxConn)
	sqlDB.SetMaxIdleConns(cfg.MaxIdle)

	logs.Info("open mysql success",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("db", cfg.DBName),
		zap.String("user", cfg.User),
	)
	return db, nil
}

func dsn(cfg serverconfig.MySQLConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8&parseTime=True&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName)
}
