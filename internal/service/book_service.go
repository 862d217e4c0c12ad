package service

import (
	"context"
	"log"

	"github.com/user/wisepick/internal/apperr"
	"github.com/user/wisepick/internal/model"
)

// BookSuggester 补全侧书名建议
type BookSuggester interface {
	SuggestSingleBook(ctx context.Context, query string) (string, string, error)
	SuggestMultipleBooks(ctx context.Context, query string) ([]string, error)
}

// BookResolver 目录侧书籍详情解析
type BookResolver interface {
	GetBookDetails(ctx context.Context, title string) (*model.Book, error)
}

// BookRepo 书籍行存取
type BookRepo interface {
	FindByTitle(title string) (*model.Book, error)
	Create(book *model.Book) error
}

// BookSearchRepo 查询缓存记录存取
type BookSearchRepo interface {
	FindByQuery(query string) (*model.BookSearch, error)
	Create(query string) (*model.BookSearch, error)
	IncrementCount(id int) error
	AttachBook(searchID, bookID int) error
}

// BookService 书籍推荐编排：补全 -> 目录解析 -> 缓存落库
type BookService struct {
	llm        BookSuggester
	resolver   BookResolver
	bookRepo   BookRepo
	searchRepo BookSearchRepo
}

func NewBookService(llm BookSuggester, resolver BookResolver, bookRepo BookRepo, searchRepo BookSearchRepo) *BookService {
	return &BookService{
		llm:        llm,
		resolver:   resolver,
		bookRepo:   bookRepo,
		searchRepo: searchRepo,
	}
}

// SuggestOne 单本推荐：书名 + 推荐理由，目录查不到按 NotFound 处理，不走缓存
func (s *BookService) SuggestOne(ctx context.Context, query string) (*model.Book, error) {
	title, description, err := s.llm.SuggestSingleBook(ctx, query)
	if err != nil {
		return nil, err
	}

	book, err := s.resolver.GetBookDetails(ctx, title)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, apperr.NotFound("Could not find book details for the suggested title")
	}

	book.Description = description
	log.Printf("[BookService] 推荐书籍: %s", title)
	return book, nil
}

// SuggestMany 批量推荐，缓存优先
// 命中非空缓存直接返回，计数每次访问都加一；未命中时逐条解析，单条失败跳过，
// 全部落空才报 NotFound
func (s *BookService) SuggestMany(ctx context.Context, query string) ([]model.Book, error) {
	search, err := s.searchRepo.FindByQuery(query)
	if err != nil {
		return nil, err
	}

	if search != nil && len(search.Books) > 0 {
		// 快路径的计数失败不影响请求
		if err := s.searchRepo.IncrementCount(search.ID); err != nil {
			log.Printf("[BookService] 更新搜索计数失败 (query: %s): %v", query, err)
		}
		log.Printf("[BookService] 命中缓存: %s", query)
		return search.Books, nil
	}

	titles, err := s.llm.SuggestMultipleBooks(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(titles) == 0 {
		return nil, apperr.NotFound("No book recommendations could be generated for this query")
	}

	if search == nil {
		if search, err = s.searchRepo.Create(query); err != nil {
			return nil, err
		}
	}

	// 已关联的书按标题参与去重，同一标题不重复入库
	result := append([]model.Book{}, search.Books...)
	seen := make(map[string]bool, len(titles))
	for _, book := range search.Books {
		seen[book.Title] = true
	}

	for _, title := range titles {
		details, err := s.resolver.GetBookDetails(ctx, title)
		if err != nil {
			log.Printf("[BookService] 获取书籍详情失败 (%s): %v", title, err)
			continue
		}
		if details == nil || seen[details.Title] {
			continue
		}

		book, err := s.bookRepo.FindByTitle(details.Title)
		if err != nil {
			return nil, err
		}
		if book == nil {
			book = details
			if err := s.bookRepo.Create(book); err != nil {
				return nil, err
			}
		}

		if err := s.searchRepo.AttachBook(search.ID, book.ID); err != nil {
			return nil, err
		}

		seen[book.Title] = true
		result = append(result, *book)
	}

	if len(result) == 0 {
		return nil, apperr.NotFound("Could not find details for any of the suggested books")
	}

	if err := s.searchRepo.IncrementCount(search.ID); err != nil {
		log.Printf("[BookService] 更新搜索计数失败 (query: %s): %v", query, err)
	}

	log.Printf("[BookService] 推荐 %d 本书 (query: %s)", len(result), query)
	return result, nil
}
