package repository

import (
	"database/sql"
	"errors"

	"github.com/user/wisepick/internal/model"
	"gorm.io/gorm"
)

type BookSearchRepository struct {
	db *gorm.DB
}

func NewBookSearchRepository(db *gorm.DB) *BookSearchRepository {
	return &BookSearchRepository{db: db}
}

// FindByQuery 按规范化查询串查找搜索记录，附带已关联的书籍
// 并发首次请求可能写入重复记录之外的竞态由唯一约束兜底，这里不提供跨请求的
// 排他保证，缓存语义允许
func (r *BookSearchRepository) FindByQuery(query string) (*model.BookSearch, error) {
	search := &model.BookSearch{}

	err := r.db.Raw(`
		SELECT id, query, search_count
		FROM book_searches
		WHERE query = ?
		LIMIT 1
	`, query).Row().Scan(&search.ID, &search.Query, &search.SearchCount)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	books, err := r.findBooks(search.ID)
	if err != nil {
		return nil, err
	}
	search.Books = books

	return search, nil
}

// Create 创建搜索记录（按 query 幂等），计数初始为 0
func (r *BookSearchRepository) Create(query string) (*model.BookSearch, error) {
	search := &model.BookSearch{Query: query}

	err := r.db.Raw(`
		INSERT INTO book_searches (query, search_count)
		VALUES (?, 0)
		ON CONFLICT (query) DO UPDATE SET query = EXCLUDED.query
		RETURNING id, search_count
	`, query).Row().Scan(&search.ID, &search.SearchCount)
	if err != nil {
		return nil, err
	}

	return search, nil
}

// IncrementCount 搜索计数加一
func (r *BookSearchRepository) IncrementCount(id int) error {
	return r.db.Exec(`
		UPDATE book_searches SET search_count = search_count + 1 WHERE id = ?
	`, id).Error
}

// AttachBook 将书籍关联到搜索记录，重复关联静默忽略
func (r *BookSearchRepository) AttachBook(searchID, bookID int) error {
	return r.db.Exec(`
		INSERT INTO book_searches_books (book_search_id, book_id)
		VALUES (?, ?)
		ON CONFLICT DO NOTHING
	`, searchID, bookID).Error
}

// findBooks 查询搜索记录关联的书籍，按入库顺序返回
func (r *BookSearchRepository) findBooks(searchID int) ([]model.Book, error) {
	rows, err := r.db.Raw(`
		SELECT b.id, b.title, b.author, b.cover_image_url, b.preview_url
		FROM books b
		JOIN book_searches_books sb ON sb.book_id = b.id
		WHERE sb.book_search_id = ?
		ORDER BY b.id
	`, searchID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []model.Book
	for rows.Next() {
		var book model.Book
		if err := rows.Scan(&book.ID, &book.Title, &book.Author,
			&book.CoverImageURL, &book.PreviewURL); err != nil {
			return nil, err
		}
		books = append(books, book)
	}

	return books, rows.Err()
}
