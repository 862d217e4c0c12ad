package service

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/user/wisepick/internal/config"
	"github.com/user/wisepick/internal/utils"
)

// TrailerNotFound 预告片未找到的哨兵值，预告片缺失不构成错误
const TrailerNotFound = "None"

type youtubeSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
}

// YouTubeService 预告片增强：片名 -> 观看链接，尽力而为
type YouTubeService struct {
	config     *config.Config
	httpClient *utils.HTTPClient
	baseURL    string

	// 同一片名的预告片短期内不会变，内存记忆减少配额消耗
	memo *utils.SearchCache[string]
}

func NewYouTubeService(cfg *config.Config) *YouTubeService {
	return &YouTubeService{
		config:     cfg,
		httpClient: utils.NewHTTPClient(cfg.UpstreamTimeout),
		baseURL:    "https://www.googleapis.com/youtube/v3/search",
		memo:       utils.NewSearchCache[string](512, 24*time.Hour),
	}
}

// GetTrailerURL 搜索电影预告片并返回观看链接
// 任何失败（无结果、超时、响应异常）都降级为哨兵值，从不向调用方抛错
func (s *YouTubeService) GetTrailerURL(ctx context.Context, title string) string {
	if cached, ok := s.memo.Get(title); ok {
		return cached
	}

	reqURL := fmt.Sprintf("%s?part=snippet&type=video&q=%s&key=%s",
		s.baseURL,
		url.QueryEscape(title+" movie trailer"),
		url.QueryEscape(s.config.YouTubeAPIKey),
	)

	var result youtubeSearchResponse
	if err := s.httpClient.GetJSON(ctx, reqURL, &result); err != nil {
		log.Printf("[YouTube] 获取预告片失败 (%s): %v", title, err)
		return TrailerNotFound
	}

	if len(result.Items) == 0 || result.Items[0].ID.VideoID == "" {
		return TrailerNotFound
	}

	trailerURL := "https://www.youtube.com/watch?v=" + result.Items[0].ID.VideoID
	s.memo.Set(title, trailerURL)
	return trailerURL
}
