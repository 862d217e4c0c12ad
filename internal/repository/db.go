package repository

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB 初始化数据库连接
func InitDB(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("无法连接数据库: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层连接失败: %w", err)
	}

	// 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库 ping 失败: %w", err)
	}

	// 设置连接池
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := InitSchema(db); err != nil {
		return nil, fmt.Errorf("初始化表结构失败: %w", err)
	}

	return db, nil
}

// InitSchema 创建缓存存储所需的表（幂等）
func InitSchema(db *gorm.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS books (
			id SERIAL PRIMARY KEY,
			title TEXT NOT NULL UNIQUE,
			author TEXT NOT NULL DEFAULT '',
			cover_image_url VARCHAR(2048) NOT NULL DEFAULT '',
			preview_url VARCHAR(2048) NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS book_searches (
			id SERIAL PRIMARY KEY,
			query VARCHAR(256) NOT NULL UNIQUE,
			search_count INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS book_searches_books (
			book_search_id INTEGER NOT NULL REFERENCES book_searches(id),
			book_id INTEGER NOT NULL REFERENCES books(id),
			PRIMARY KEY (book_search_id, book_id)
		)`,
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// Repositories 仓库集合
type Repositories struct {
	DB         *gorm.DB
	Book       *BookRepository
	BookSearch *BookSearchRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:         db,
		Book:       NewBookRepository(db),
		BookSearch: NewBookSearchRepository(db),
	}
}
