package news

import (
	"celebrity-news/config"
	"celebrity-news/internal/models"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

// APIError 表示新闻API返回的可识别错误，附带给用户的提示
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("新闻API错误(%d): %s", e.StatusCode, e.Message)
}

// Client 是新闻搜索API(NewsAPI)的客户端
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	retryDelay time.Duration
}

// NewClient 创建一个新的新闻API客户端
func NewClient(cfg *config.NewsConfig) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		retryDelay: 2 * time.Second,
	}
}

// searchResponse NewsAPI everything接口的响应结构
type searchResponse struct {
	Status       string `json:"status"`
	TotalResults int    `json:"totalResults"`
	Articles     []struct {
		Source struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

// Search 搜索指定人物的最新新闻
// 503自动重试，其余错误映射为带提示的APIError
// 返回空列表不是错误，由调用方切换到内置示例新闻
func (c *Client) Search(ctx context.Context, person string, maxItems int) ([]models.NewsItem, error) {
	if c.apiKey == "" {
		return nil, &APIError{
			StatusCode: 0,
			Message:    "未配置NEWS_API_KEY，请在环境变量中设置新闻API密钥",
		}
	}

	query := url.Values{}
	query.Set("q", person)
	query.Set("sortBy", "publishedAt")
	query.Set("language", "en")
	query.Set("pageSize", fmt.Sprintf("%d", maxItems))
	query.Set("apiKey", c.apiKey)
	requestURL := fmt.Sprintf("%s/everything?%s", c.baseURL, query.Encode())

	body, err := c.fetchWithRetry(ctx, requestURL)
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("解析新闻API响应失败: %w", err)
	}

	items := make([]models.NewsItem, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		items = append(items, models.NewsItem{
			Title:     a.Title,
			Summary:   a.Description,
			URL:       a.URL,
			Source:    a.Source.Name,
			Published: a.PublishedAt,
		})
	}

	log.Printf("获取了 %d 条关于 %s 的新闻", len(items), person)
	return items, nil
}

// fetchWithRetry 发送请求，503时重试
func (c *Client) fetchWithRetry(ctx context.Context, requestURL string) ([]byte, error) {
	maxRetries := 3
	for i := 0; i < maxRetries; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, fmt.Errorf("创建请求失败: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("请求新闻API失败: %w", err)
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusOK:
			if readErr != nil {
				return nil, fmt.Errorf("读取响应失败: %w", readErr)
			}
			return body, nil
		case http.StatusServiceUnavailable:
			// 服务暂时不可用，退避后重试
			if i < maxRetries-1 {
				log.Printf("新闻API暂时不可用，正在重试 (%d/%d)", i+1, maxRetries)
				time.Sleep(time.Duration(i+1) * c.retryDelay)
				continue
			}
			return nil, &APIError{
				StatusCode: resp.StatusCode,
				Message:    "新闻服务暂时不可用，请稍后再试",
			}
		case http.StatusNotFound:
			return nil, &APIError{
				StatusCode: resp.StatusCode,
				Message:    "新闻API接口不存在，请检查NEWS_API_BASE_URL配置",
			}
		case http.StatusTooManyRequests:
			return nil, &APIError{
				StatusCode: resp.StatusCode,
				Message:    "新闻API请求次数已达上限，请稍后再试或升级套餐",
			}
		default:
			return nil, &APIError{
				StatusCode: resp.StatusCode,
				Message:    fmt.Sprintf("新闻API请求失败，状态码 %d", resp.StatusCode),
			}
		}
	}

	return nil, &APIError{StatusCode: http.StatusServiceUnavailable, Message: "新闻服务暂时不可用，请稍后再试"}
}
