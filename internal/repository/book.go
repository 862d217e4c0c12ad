package repository

import (
	"database/sql"
	"errors"

	"github.com/user/wisepick/internal/model"
	"gorm.io/gorm"
)

type BookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) *BookRepository {
	return &BookRepository{db: db}
}

// FindByTitle 按标题查找书籍，书籍标题在进程范围内唯一
func (r *BookRepository) FindByTitle(title string) (*model.Book, error) {
	var book model.Book

	err := r.db.Raw(`
		SELECT id, title, author, cover_image_url, preview_url
		FROM books
		WHERE title = ?
		LIMIT 1
	`, title).Row().Scan(
		&book.ID, &book.Title, &book.Author, &book.CoverImageURL, &book.PreviewURL,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &book, nil
}

// Create 创建书籍并回填 ID
// 按 title 做 upsert，并发写入同一标题时两边拿到同一行
func (r *BookRepository) Create(book *model.Book) error {
	return r.db.Raw(`
		INSERT INTO books (title, author, cover_image_url, preview_url)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (title) DO UPDATE SET
			author = EXCLUDED.author,
			cover_image_url = EXCLUDED.cover_image_url,
			preview_url = EXCLUDED.preview_url
		RETURNING id
	`, book.Title, book.Author, book.CoverImageURL, book.PreviewURL).
		Row().Scan(&book.ID)
}
