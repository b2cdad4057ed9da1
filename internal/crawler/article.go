package crawler

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ArticleFetcher 抓取新闻原文正文，用于增强AI提示词
type ArticleFetcher struct {
	httpClient *http.Client
}

// NewArticleFetcher 创建一个新的正文抓取器
func NewArticleFetcher() *ArticleFetcher {
	return &ArticleFetcher{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchBody 抓取URL对应页面的段落文本
// 任何失败都返回空字符串，正文只是提示词的可选增强
func (f *ArticleFetcher) FetchBody(articleURL string, maxTokens int) string {
	if articleURL == "" {
		return ""
	}

	req, err := http.NewRequest(http.MethodGet, articleURL, nil)
	if err != nil {
		log.Printf("创建请求失败: %v %s", err, articleURL)
		return ""
	}

	// 设置请求头 - 模拟浏览器请求
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		log.Printf("获取文章失败: %v %s", err, articleURL)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("获取文章失败: %s %s", resp.Status, articleURL)
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		log.Printf("解析HTML失败: %v %s", err, articleURL)
		return ""
	}

	// 提取正文段落
	var paragraphs []string
	doc.Find("article p, p").Each(func(i int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	body := strings.Join(paragraphs, "\n")

	// 限制正文大小以避免token过多
	maxLength := maxTokens * 4
	if len(body) > maxLength {
		body = body[:maxLength]
	}

	return body
}
