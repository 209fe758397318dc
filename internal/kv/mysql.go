package kv

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// entry is the gorm model behind the MySQL backend.
type entry struct {
	Key   string `gorm:"primaryKey;size:191"`
	Value []byte `gorm:"type:longblob;not null"`
}

func (entry) TableName() string { return "kv" }

type MySQL struct {
	db *gorm.DB
}

func OpenMySQL(dsn string) (*MySQL, error) {
	if dsn == "" {
		return nil, errors.New("mysql dsn required")
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("migrate kv table: %w", err)
	}
	return &MySQL{db: db}, nil
}

func (m *MySQL) Get(ctx context.Context, key string) ([]byte, error) {
	var e entry
	err := m.db.WithContext(ctx).Where("`key` = ?", key).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", key, err)
	}
	return e.Value, nil
}

func (m *MySQL) Set(ctx context.Context, key string, value []byte) error {
	err := m.db.WithContext(ctx).Clauses(clause.OnConflict{
		UpdateAll: true,
	}).Create(&entry{Key: key, Value: value}).Error
	if err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (m *MySQL) Delete(ctx context.Context, key string) error {
	if err := m.db.WithContext(ctx).Delete(&entry{Key: key}).Error; err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (m *MySQL) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
