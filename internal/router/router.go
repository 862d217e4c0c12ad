package router

import (
	"github.com/gin-gonic/gin"
	"github.com/user/wisepick/internal/handler"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 元信息与健康检查
	r.GET("/", h.Root)
	r.GET("/health", h.Health)

	// ==================== 书籍推荐 ====================
	books := r.Group("/books")
	{
		books.GET("/suggest", h.BookSuggest)
		books.GET("/suggest-many", h.BookSuggestMany)
	}

	// ==================== 电影推荐 ====================
	movies := r.Group("/movies")
	{
		movies.GET("/suggest", h.MovieSuggest)
		movies.GET("/suggest-many", h.MovieSuggestMany)
	}
}
