package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "查询无效", err: InvalidQuery("too short"), want: KindInvalidQuery},
		{name: "限流", err: RateLimited("slow down"), want: KindRateLimited},
		{name: "外部服务", err: External("TMDB", "timeout"), want: KindExternalAPI},
		{name: "未找到", err: NotFound("nothing matched"), want: KindNotFound},
		{name: "普通错误", err: errors.New("boom"), want: KindUnknown},
		{name: "空错误", err: nil, want: KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("suggest books: %w", RateLimited("rate limit exceeded"))

	assert.Equal(t, KindRateLimited, KindOf(err))
	assert.True(t, IsKind(err, KindRateLimited))
	assert.False(t, IsKind(err, KindExternalAPI))
}

func TestExternalMessageCarriesService(t *testing.T) {
	err := External("Google Books", "bad gateway")
	assert.Contains(t, err.Error(), "Google Books")
	assert.Contains(t, err.Error(), "bad gateway")
}
