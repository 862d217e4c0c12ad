package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/wisepick/internal/apperr"
)

func newTestGoogleBooks(server *httptest.Server) *GoogleBooksService {
	svc := NewGoogleBooksService(testConfig())
	svc.baseURL = server.URL
	return svc
}

func TestGetBookDetails(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		fmt.Fprint(w, `{
			"totalItems": 2,
			"items": [{
				"volumeInfo": {
					"title": "Dune (Deluxe Edition)",
					"authors": ["Frank Herbert", "Someone Else"],
					"imageLinks": {"thumbnail": "http://books.example/cover.jpg"},
					"previewLink": "http://books.example/preview"
				}
			}]
		}`)
	}))
	defer server.Close()

	svc := newTestGoogleBooks(server)
	book, err := svc.GetBookDetails(context.Background(), "Dune")

	require.NoError(t, err)
	require.NotNil(t, book)
	assert.Equal(t, "intitle:Dune", gotQuery)
	// 返回的标题始终是请求的书名，不取目录回传的标题
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, "Frank Herbert", book.Author)
	assert.Equal(t, "http://books.example/cover.jpg", book.CoverImageURL)
	assert.Equal(t, "http://books.example/preview", book.PreviewURL)
}

func TestGetBookDetailsFallbacks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"totalItems": 1, "items": [{"volumeInfo": {"title": "Obscure"}}]}`)
	}))
	defer server.Close()

	svc := newTestGoogleBooks(server)
	book, err := svc.GetBookDetails(context.Background(), "Obscure")

	require.NoError(t, err)
	require.NotNil(t, book)
	assert.Equal(t, FallbackAuthor, book.Author)
	assert.Equal(t, FallbackCoverImage, book.CoverImageURL)
	// 目录没给预览链接：空串，不算错误
	assert.Empty(t, book.PreviewURL)
}

func TestGetBookDetailsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"totalItems": 0}`)
	}))
	defer server.Close()

	svc := newTestGoogleBooks(server)
	book, err := svc.GetBookDetails(context.Background(), "No Such Book")

	// 零结果是软空值，是否致命由调用方决定
	require.NoError(t, err)
	assert.Nil(t, book)
}

func TestGetBookDetailsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	svc := newTestGoogleBooks(server)
	_, err := svc.GetBookDetails(context.Background(), "Dune")

	require.Error(t, err)
	assert.Equal(t, apperr.KindExternalAPI, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "Google Books")
}

func TestGetBookDetailsStableAcrossCalls(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"totalItems": 1,
			"items": [{"volumeInfo": {"authors": ["A"], "imageLinks": {"thumbnail": "c"}, "previewLink": "p"}}]
		}`)
	}))
	defer server.Close()

	svc := newTestGoogleBooks(server)
	first, err := svc.GetBookDetails(context.Background(), "Dune")
	require.NoError(t, err)
	second, err := svc.GetBookDetails(context.Background(), "Dune")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
