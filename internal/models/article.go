package models

import "time"

// NewsItem 表示新闻API返回的一条真实新闻
type NewsItem struct {
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	URL       string `json:"url"`
	Source    string `json:"source"`
	Published string `json:"published"`
}

// GeneratedArticle 表示归一化后的一篇AI生成文章
// 由generator在一次生成中创建，创建后不再修改
type GeneratedArticle struct {
	ID              int    `json:"id"`
	Title           string `json:"title"`
	OriginalTitle   string `json:"originalTitle"`
	Body            string `json:"body"`
	Summary         string `json:"summary"`
	OriginalSummary string `json:"originalSummary"`
	ImageURL        string `json:"imageUrl"`
	PublishedAt     string `json:"publishedAt"`
	SourceURL       string `json:"sourceUrl"`
	Source          string `json:"source"`
	PersonName      string `json:"personName"`
	IsVerified      bool   `json:"isVerified"`
}

// ArticleSet 表示一次生成的完整结果，按 人物+日期 归档
type ArticleSet struct {
	Person      string             `json:"person"`
	Date        string             `json:"date"`
	GeneratedAt string             `json:"generatedAt"`
	Articles    []GeneratedArticle `json:"articles"`
}

// ImagePool 是配图地址池，按下标轮询分配，与文章内容无关
var ImagePool = []string{
	"https://images.unsplash.com/photo-1504711434969-e33886168f5c?w=800",
	"https://images.unsplash.com/photo-1495020689067-958852a7765e?w=800",
	"https://images.unsplash.com/photo-1585829365295-ab7cd400c167?w=800",
	"https://images.unsplash.com/photo-1523995462485-3d171b5c8fa9?w=800",
	"https://images.unsplash.com/photo-1478940020726-e9e191651f1a?w=800",
}

// SampleNews 返回内置的示例新闻，新闻API返回空结果时使用
func SampleNews(person string) []NewsItem {
	now := time.Now().Format(time.RFC3339)
	return []NewsItem{
		{
			Title:     person + " makes headlines at international charity gala",
			Summary:   person + " attended a high-profile charity event, drawing attention from media around the world.",
			URL:       "",
			Source:    "Sample News",
			Published: now,
		},
		{
			Title:     person + " announces surprise new project",
			Summary:   "Fans were thrilled as " + person + " teased an upcoming project on social media.",
			URL:       "",
			Source:    "Sample News",
			Published: now,
		},
		{
			Title:     "Public reacts to " + person + "'s latest interview",
			Summary:   "A recent interview with " + person + " sparked widespread discussion online.",
			URL:       "",
			Source:    "Sample News",
			Published: now,
		},
	}
}
