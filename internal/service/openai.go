package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/user/wisepick/internal/apperr"
	"github.com/user/wisepick/internal/config"
)

// ChatRequest OpenAI Chat Completions API 请求结构
type ChatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Messages    []ChatMessage `json:"messages"`
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResponse OpenAI Chat Completions API 响应结构
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// OpenAIService 补全服务：把自然语言查询变成书名/片名建议
type OpenAIService struct {
	config     *config.Config
	httpClient *http.Client
}

func NewOpenAIService(cfg *config.Config) *OpenAIService {
	return &OpenAIService{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.UpstreamTimeout,
		},
	}
}

// createChatCompletion 调用补全接口，返回首个候选的正文
// 调用失败归为 RateLimited / ExternalAPI；调用成功但内容不可用由上层归为 InvalidQuery
func (s *OpenAIService) createChatCompletion(ctx context.Context, prompt string) (string, error) {
	reqBody := ChatRequest{
		Model:       s.config.OpenAIModel,
		Temperature: s.config.OpenAITemperature,
		MaxTokens:   s.config.OpenAIMaxTokens,
		Messages: []ChatMessage{
			{Role: "user", Content: prompt},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", apperr.External("OpenAI", fmt.Sprintf("marshal request failed: %v", err))
	}

	url := s.config.OpenAIBaseURL + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", apperr.External("OpenAI", fmt.Sprintf("create request failed: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.OpenAIAPIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", apperr.External("OpenAI", fmt.Sprintf("request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", apperr.RateLimited("OpenAI API rate limit exceeded. Please try again later.")
	}

	var result ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", apperr.External("OpenAI", fmt.Sprintf("decode response failed: %v", err))
	}

	if result.Error != nil {
		return "", apperr.External("OpenAI", result.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", apperr.External("OpenAI", fmt.Sprintf("unexpected status: %d", resp.StatusCode))
	}
	if len(result.Choices) == 0 {
		return "", apperr.External("OpenAI", "no content returned")
	}

	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}

// SuggestSingleBook 单本书推荐，返回书名与推荐理由
func (s *OpenAIService) SuggestSingleBook(ctx context.Context, query string) (string, string, error) {
	// 提示词约定以句号结尾，无关正确性的归一化
	if !strings.HasSuffix(query, ".") {
		query += "."
	}

	prompt := fmt.Sprintf(
		"Recommend a book title and how it helps separated by '|' "+
			"without author name according to:\n%s\n"+
			"Give output 'err' if query is not proper\n\nbook title:", query)

	raw, err := s.createChatCompletion(ctx, prompt)
	if err != nil {
		return "", "", err
	}

	// 去掉所有格撇号和引号，避免模型回显的标点破坏后续解析
	raw = strings.ReplaceAll(raw, "'s", "s")
	raw = strings.ReplaceAll(raw, `"`, "")

	if strings.EqualFold(raw, "err") {
		return "", "", apperr.InvalidQuery("Please provide a proper query for book recommendation")
	}

	parts := strings.Split(raw, "|")
	if len(parts) != 2 {
		return "", "", apperr.InvalidQuery("Invalid response format from AI")
	}

	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}

// SuggestMultipleBooks 多本书推荐，返回书名列表
func (s *OpenAIService) SuggestMultipleBooks(ctx context.Context, query string) ([]string, error) {
	prompt := fmt.Sprintf(
		"%s Suggest book titles without author name "+
			"as a JSON array of double quoted strings according to my query.", query)

	raw, err := s.createChatCompletion(ctx, prompt)
	if err != nil {
		return nil, err
	}

	raw = strings.ReplaceAll(raw, "'s", "s")

	titles, err := parseTitleList(raw)
	if err != nil {
		return nil, apperr.InvalidQuery("Please provide a proper query for book recommendations")
	}
	return titles, nil
}

// SuggestSingleMovie 单部电影推荐，返回片名
func (s *OpenAIService) SuggestSingleMovie(ctx context.Context, query string) (string, error) {
	if !strings.HasSuffix(query, ".") {
		query += "."
	}

	prompt := fmt.Sprintf(
		"Recommend a single movie title according to:\n%s\n"+
			"Give output 'err' if query is not proper\n\nMovie title:", query)

	raw, err := s.createChatCompletion(ctx, prompt)
	if err != nil {
		return "", err
	}

	raw = strings.TrimSpace(strings.ReplaceAll(raw, `"`, ""))

	lower := strings.ToLower(raw)
	if lower == "err" || lower == "error" {
		return "", apperr.InvalidQuery("Please provide a proper query for movie recommendation")
	}

	return raw, nil
}

// SuggestMultipleMovies 多部电影推荐，返回片名列表
func (s *OpenAIService) SuggestMultipleMovies(ctx context.Context, query string) ([]string, error) {
	if !strings.HasSuffix(query, ".") {
		query += "."
	}

	prompt := fmt.Sprintf(
		"Recommend movie titles as a JSON array of double quoted strings according to:\n%s\n\n"+
			"Movie titles in JSON array:", query)

	raw, err := s.createChatCompletion(ctx, prompt)
	if err != nil {
		return nil, err
	}

	titles, err := parseTitleList(raw)
	if err != nil {
		return nil, apperr.InvalidQuery("Please provide a proper query for movie recommendations")
	}
	return titles, nil
}

// parseTitleList 从模型原文中解析扁平字符串列表
// 只接受严格 JSON 数组：取首个 '[' 到最后一个 ']' 的片段交给 JSON 解码器，
// 字符串成员原样保留，数字成员转为其字面文本，其余形态一律报错。
// 模型输出是不可信文本，绝不允许进入任何表达式求值器。
func parseTitleList(raw string) ([]string, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array in output")
	}

	dec := json.NewDecoder(strings.NewReader(raw[start : end+1]))
	dec.UseNumber()

	var items []interface{}
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("invalid JSON array: %w", err)
	}

	titles := make([]string, 0, len(items))
	for _, item := range items {
		var title string
		switch v := item.(type) {
		case string:
			title = v
		case json.Number:
			title = v.String()
		default:
			return nil, fmt.Errorf("list member is not a string")
		}
		if title = strings.TrimSpace(title); title != "" {
			titles = append(titles, title)
		}
	}

	return titles, nil
}
