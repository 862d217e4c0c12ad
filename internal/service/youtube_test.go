package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestYouTube(server *httptest.Server) *YouTubeService {
	svc := NewYouTubeService(testConfig())
	svc.baseURL = server.URL
	return svc
}

func TestGetTrailerURL(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		fmt.Fprint(w, `{"items": [{"id": {"videoId": "dQw4w9WgXcQ"}}]}`)
	}))
	defer server.Close()

	svc := newTestYouTube(server)
	url := svc.GetTrailerURL(context.Background(), "Arrival")

	assert.Equal(t, "Arrival movie trailer", gotQuery)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", url)
}

// 任何失败模式都只降级为哨兵值，绝不向调用方抛错
func TestGetTrailerURLDegradesToSentinel(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "零结果",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"items": []}`)
			},
		},
		{
			name: "上游报错",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			},
		},
		{
			name: "响应结构异常",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `this is not json`)
			},
		},
		{
			name: "结果缺视频标识",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"items": [{"id": {}}]}`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			svc := newTestYouTube(server)
			assert.Equal(t, TrailerNotFound, svc.GetTrailerURL(context.Background(), "Arrival"))
		})
	}
}

func TestGetTrailerURLMemoized(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		fmt.Fprint(w, `{"items": [{"id": {"videoId": "abc123"}}]}`)
	}))
	defer server.Close()

	svc := newTestYouTube(server)
	first := svc.GetTrailerURL(context.Background(), "Arrival")
	second := svc.GetTrailerURL(context.Background(), "Arrival")

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}
