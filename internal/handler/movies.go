package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/user/wisepick/internal/utils"
)

// MovieSuggest 单部电影推荐
// GET /movies/suggest?q=<text>
func (h *Handler) MovieSuggest(c *gin.Context) {
	query, ok := h.bindQuery(c)
	if !ok {
		return
	}

	movie, err := h.Movies.SuggestOne(c.Request.Context(), query)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Success(c, movie)
}

// MovieSuggestMany 批量电影推荐，每次重新解析，不走缓存
// GET /movies/suggest-many?q=<text>
func (h *Handler) MovieSuggestMany(c *gin.Context) {
	query, ok := h.bindQuery(c)
	if !ok {
		return
	}

	movies, err := h.Movies.SuggestMany(c.Request.Context(), query)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Success(c, movies)
}
