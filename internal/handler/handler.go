package handler

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/user/wisepick/internal/config"
	"github.com/user/wisepick/internal/repository"
	"github.com/user/wisepick/internal/service"
	"github.com/user/wisepick/internal/utils"
)

// Handler HTTP 处理器
type Handler struct {
	Config *config.Config
	Books  *service.BookService
	Movies *service.MovieService
}

// NewHandler 创建处理器并装配推荐流水线
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	openaiSvc := service.NewOpenAIService(cfg)
	googleBooks := service.NewGoogleBooksService(cfg)
	tmdb := service.NewTMDBService(cfg)
	youtube := service.NewYouTubeService(cfg)

	return &Handler{
		Config: cfg,
		Books:  service.NewBookService(openaiSvc, googleBooks, repos.Book, repos.BookSearch),
		Movies: service.NewMovieService(openaiSvc, tmdb, youtube),
	}
}

type suggestRequest struct {
	Q string `form:"q" binding:"required"`
}

// bindQuery 提取并校验查询参数，失败时已写出 400 响应
// 长度按去除首尾空白后的字符数计，3 到 500；不合法的查询不触发任何外部调用
func (h *Handler) bindQuery(c *gin.Context) (string, bool) {
	var req suggestRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.BadRequest(c, "Query parameter 'q' is required")
		return "", false
	}

	query := strings.TrimSpace(req.Q)
	length := utf8.RuneCountInString(query)
	if length < 3 {
		utils.BadRequest(c, "Query must be at least 3 characters long")
		return "", false
	}
	if length > 500 {
		utils.BadRequest(c, "Query must be at most 500 characters long")
		return "", false
	}

	return query, true
}

// Root 根路由，返回 API 元信息
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":        h.Config.AppName,
		"version":     h.Config.AppVersion,
		"description": "API for Recommend Me Something - Get personalized book and movie recommendations",
		"endpoints": gin.H{
			"books":  "/books",
			"movies": "/movies",
		},
	})
}

// Health 健康检查
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"version": h.Config.AppVersion,
	})
}
