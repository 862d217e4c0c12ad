package service

import (
	"context"
	"fmt"
	"log"
	"net/url"

	gocache "github.com/patrickmn/go-cache"
	"github.com/user/wisepick/internal/apperr"
	"github.com/user/wisepick/internal/config"
	"github.com/user/wisepick/internal/model"
	"github.com/user/wisepick/internal/utils"
	"golang.org/x/sync/singleflight"
)

// PosterBaseURL TMDB 海报 CDN 前缀
const PosterBaseURL = "https://image.tmdb.org/t/p/original"

const genreCacheKey = "movie_genres"

type tmdbSearchResponse struct {
	Results []struct {
		ID          int     `json:"id"`
		Title       string  `json:"title"`
		Overview    string  `json:"overview"`
		ReleaseDate string  `json:"release_date"`
		VoteAverage float64 `json:"vote_average"`
		PosterPath  string  `json:"poster_path"`
		GenreIDs    []int   `json:"genre_ids"`
	} `json:"results"`
}

type tmdbGenreListResponse struct {
	Genres []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
}

// TMDBService 电影目录解析：片名 -> 简介/海报/类型
type TMDBService struct {
	config     *config.Config
	httpClient *utils.HTTPClient
	baseURL    string

	// 类型表近乎静态，进程内取一次缓存终身；併发首取由 singleflight 合并
	genreCache *gocache.Cache
	group      singleflight.Group
}

func NewTMDBService(cfg *config.Config) *TMDBService {
	return &TMDBService{
		config:     cfg,
		httpClient: utils.NewHTTPClient(cfg.UpstreamTimeout),
		baseURL:    "https://api.themoviedb.org/3",
		genreCache: gocache.New(gocache.NoExpiration, 0),
	}
}

// SearchMovie 按片名检索电影，取第一条结果
// 零结果按 ExternalAPIError 处理（电影侧不存在软 not found，与书籍侧不同）
func (s *TMDBService) SearchMovie(ctx context.Context, title string) (*model.Movie, error) {
	reqURL := fmt.Sprintf("%s/search/movie?api_key=%s&query=%s",
		s.baseURL,
		url.QueryEscape(s.config.TMDBAPIKey),
		url.QueryEscape(title),
	)

	var result tmdbSearchResponse
	if err := s.httpClient.GetJSON(ctx, reqURL, &result); err != nil {
		return nil, apperr.External("TMDB", err.Error())
	}

	if len(result.Results) == 0 {
		return nil, apperr.External("TMDB", fmt.Sprintf("No movie found for title: %s", title))
	}

	first := result.Results[0]

	movie := &model.Movie{
		TMDBID:      first.ID,
		Title:       first.Title,
		Overview:    first.Overview,
		ReleaseDate: first.ReleaseDate,
		Rating:      first.VoteAverage,
	}

	// 无海报路径不算错误，字段留空
	if first.PosterPath != "" {
		movie.PosterURL = PosterBaseURL + first.PosterPath
	}

	genres := s.getGenres(ctx)
	movie.GenreNames = make([]string, 0, len(first.GenreIDs))
	for _, id := range first.GenreIDs {
		name, ok := genres[id]
		if !ok {
			name = "Unknown Genre"
		}
		movie.GenreNames = append(movie.GenreNames, name)
	}

	return movie, nil
}

// getGenres 获取类型 ID -> 名称映射
// 失败时返回空表且不缓存，下次调用重试；缓存写入最多一次，之后只读
func (s *TMDBService) getGenres(ctx context.Context) map[int]string {
	if cached, ok := s.genreCache.Get(genreCacheKey); ok {
		return cached.(map[int]string)
	}

	val, err, _ := s.group.Do(genreCacheKey, func() (interface{}, error) {
		reqURL := fmt.Sprintf("%s/genre/movie/list?api_key=%s",
			s.baseURL, url.QueryEscape(s.config.TMDBAPIKey))

		var result tmdbGenreListResponse
		if err := s.httpClient.GetJSON(ctx, reqURL, &result); err != nil {
			return nil, err
		}

		genres := make(map[int]string, len(result.Genres))
		for _, g := range result.Genres {
			genres[g.ID] = g.Name
		}
		s.genreCache.Set(genreCacheKey, genres, gocache.NoExpiration)
		return genres, nil
	})

	if err != nil {
		log.Printf("[TMDB] 获取类型列表失败: %v", err)
		return map[int]string{}
	}
	return val.(map[int]string)
}
