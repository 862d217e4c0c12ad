package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/user/wisepick/internal/utils"
)

// BookSuggest 单本书推荐
// GET /books/suggest?q=<text>
func (h *Handler) BookSuggest(c *gin.Context) {
	query, ok := h.bindQuery(c)
	if !ok {
		return
	}

	book, err := h.Books.SuggestOne(c.Request.Context(), query)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Success(c, book)
}

// BookSuggestMany 批量书籍推荐，重复查询走缓存
// GET /books/suggest-many?q=<text>
func (h *Handler) BookSuggestMany(c *gin.Context) {
	query, ok := h.bindQuery(c)
	if !ok {
		return
	}

	books, err := h.Books.SuggestMany(c.Request.Context(), query)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Success(c, books)
}
