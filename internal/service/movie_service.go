package service

import (
	"context"
	"log"

	"github.com/user/wisepick/internal/apperr"
	"github.com/user/wisepick/internal/model"
)

// MovieSuggester 补全侧片名建议
type MovieSuggester interface {
	SuggestSingleMovie(ctx context.Context, query string) (string, error)
	SuggestMultipleMovies(ctx context.Context, query string) ([]string, error)
}

// MovieResolver 目录侧电影详情解析
type MovieResolver interface {
	SearchMovie(ctx context.Context, title string) (*model.Movie, error)
}

// TrailerFinder 预告片增强
type TrailerFinder interface {
	GetTrailerURL(ctx context.Context, title string) string
}

// MovieService 电影推荐编排：补全 -> 目录解析 -> 预告片增强，结果不落库
type MovieService struct {
	llm      MovieSuggester
	resolver MovieResolver
	trailer  TrailerFinder
}

func NewMovieService(llm MovieSuggester, resolver MovieResolver, trailer TrailerFinder) *MovieService {
	return &MovieService{
		llm:      llm,
		resolver: resolver,
		trailer:  trailer,
	}
}

// GetMovieDetails 解析单个片名并附加预告片链接
func (s *MovieService) GetMovieDetails(ctx context.Context, title string) (*model.Movie, error) {
	movie, err := s.resolver.SearchMovie(ctx, title)
	if err != nil {
		return nil, err
	}

	movie.TrailerURL = s.trailer.GetTrailerURL(ctx, title)
	return movie, nil
}

// SuggestOne 单部推荐
// 目录零结果是解析器抛出的 ExternalAPIError，原样向上传递，不改写为 NotFound
func (s *MovieService) SuggestOne(ctx context.Context, query string) (*model.Movie, error) {
	title, err := s.llm.SuggestSingleMovie(ctx, query)
	if err != nil {
		return nil, err
	}

	movie, err := s.GetMovieDetails(ctx, title)
	if err != nil {
		return nil, err
	}

	log.Printf("[MovieService] 推荐电影: %s", title)
	return movie, nil
}

// SuggestMany 批量推荐：按建议顺序逐条解析，单条失败记录并跳过
// 存活结果按处理顺序赋 1 起始连续序号，全部落空才报 NotFound
func (s *MovieService) SuggestMany(ctx context.Context, query string) ([]model.Movie, error) {
	titles, err := s.llm.SuggestMultipleMovies(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(titles) == 0 {
		return nil, apperr.NotFound("No movie recommendations could be generated for this query")
	}

	result := make([]model.Movie, 0, len(titles))
	for _, title := range titles {
		movie, err := s.GetMovieDetails(ctx, title)
		if err != nil {
			log.Printf("[MovieService] 获取电影详情失败 (%s): %v", title, err)
			continue
		}

		movie.ID = len(result) + 1
		result = append(result, *movie)
	}

	if len(result) == 0 {
		return nil, apperr.NotFound("Could not find details for any of the suggested movies")
	}

	log.Printf("[MovieService] 推荐 %d 部电影 (query: %s)", len(result), query)
	return result, nil
}
