package service

import (
	"context"
	"fmt"
	"log"
	"net/url"

	"github.com/user/wisepick/internal/apperr"
	"github.com/user/wisepick/internal/config"
	"github.com/user/wisepick/internal/model"
	"github.com/user/wisepick/internal/utils"
)

const (
	// FallbackAuthor 目录缺失作者时的占位
	FallbackAuthor = "Unknown Author"
	// FallbackCoverImage 目录缺失封面时的占位资源
	FallbackCoverImage = "assets/images/image-err.png"
)

type googleBooksResponse struct {
	TotalItems int `json:"totalItems"`
	Items      []struct {
		VolumeInfo struct {
			Title      string   `json:"title"`
			Authors    []string `json:"authors"`
			ImageLinks struct {
				Thumbnail string `json:"thumbnail"`
			} `json:"imageLinks"`
			PreviewLink string `json:"previewLink"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// GoogleBooksService 书籍目录解析：书名 -> 作者/封面/预览链接
type GoogleBooksService struct {
	config     *config.Config
	httpClient *utils.HTTPClient
	baseURL    string
}

func NewGoogleBooksService(cfg *config.Config) *GoogleBooksService {
	return &GoogleBooksService{
		config:     cfg,
		httpClient: utils.NewHTTPClient(cfg.UpstreamTimeout),
		baseURL:    "https://www.googleapis.com/books/v1/volumes",
	}
}

// GetBookDetails 按书名查询目录，零结果返回 nil（是否致命由调用方决定）
// 返回的 Title 始终是传入的书名，而非目录回传的标题，保证按建议书名去重
func (s *GoogleBooksService) GetBookDetails(ctx context.Context, title string) (*model.Book, error) {
	reqURL := fmt.Sprintf("%s?q=%s&key=%s",
		s.baseURL,
		url.QueryEscape("intitle:"+title),
		url.QueryEscape(s.config.GoogleAPIKey),
	)

	var result googleBooksResponse
	if err := s.httpClient.GetJSON(ctx, reqURL, &result); err != nil {
		return nil, apperr.External("Google Books", err.Error())
	}

	if result.TotalItems == 0 || len(result.Items) == 0 {
		log.Printf("[GoogleBooks] 未找到书籍: %s", title)
		return nil, nil
	}

	volume := result.Items[0].VolumeInfo

	author := FallbackAuthor
	if len(volume.Authors) > 0 {
		author = volume.Authors[0]
	}

	coverImage := volume.ImageLinks.Thumbnail
	if coverImage == "" {
		coverImage = FallbackCoverImage
	}

	return &model.Book{
		Title:         title,
		Author:        author,
		CoverImageURL: coverImage,
		// 目录可能不给预览链接，空串不算错误
		PreviewURL: volume.PreviewLink,
	}, nil
}
