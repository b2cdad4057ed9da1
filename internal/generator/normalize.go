package generator

import (
	"celebrity-news/internal/models"
	"celebrity-news/internal/parser"
	"strings"
	"time"
)

// Normalize 把解析出的记录与真实新闻按下标对齐，生成归一化的文章列表
// 第N条生成文章对应第N条输入新闻；新闻不够时对应字段留空，不报错
func Normalize(person string, parsed []parser.RawArticle, items []models.NewsItem, now time.Time) []models.GeneratedArticle {
	articles := make([]models.GeneratedArticle, 0, len(parsed))

	for i, raw := range parsed {
		var item models.NewsItem
		if i < len(items) {
			item = items[i]
		}

		body := raw[parser.KeyGeneratedArticle]

		// 来源URL：模型给出的优先，其次真实新闻的，都没有则留空
		sourceURL := raw[parser.KeySourceURL]
		if sourceURL == "" {
			sourceURL = item.URL
		}

		// 发布时间：模型给出的优先，其次真实新闻的，最后用当前时间
		publishedAt := raw[parser.KeyPublishedAt]
		if publishedAt == "" {
			publishedAt = item.Published
		}
		if publishedAt == "" {
			publishedAt = now.Format(time.RFC3339)
		}

		articles = append(articles, models.GeneratedArticle{
			ID:              i + 1,
			Title:           resolveTitle(raw[parser.KeyOriginalTitle], item.Title, body),
			OriginalTitle:   raw[parser.KeyOriginalTitle],
			Body:            body,
			Summary:         buildPreview(body),
			OriginalSummary: item.Summary,
			ImageURL:        models.ImagePool[i%len(models.ImagePool)],
			PublishedAt:     publishedAt,
			SourceURL:       sourceURL,
			Source:          item.Source,
			PersonName:      person,
			// 纯语法校验：URL非空且以http开头，不做任何网络探测
			IsVerified: sourceURL != "" && strings.HasPrefix(sourceURL, "http"),
		})
	}

	return articles
}

// resolveTitle 标题优先级：模型给出的原标题 > 真实新闻标题 > 正文首句
func resolveTitle(modelTitle, newsTitle, body string) string {
	if modelTitle != "" {
		return modelTitle
	}
	if newsTitle != "" {
		return newsTitle
	}

	// 从正文首句推导，过长时截断
	sentence := body
	if idx := strings.Index(body, "."); idx >= 0 {
		sentence = body[:idx]
	}
	if len(sentence) > 80 {
		return sentence[:60] + "..."
	}
	return sentence
}

// buildPreview 取生成正文的第一段作为列表页预览，超过200字符截断
func buildPreview(body string) string {
	paragraph := firstParagraph(body)
	if paragraph == "" {
		paragraph = body
	}
	if len(paragraph) > 200 {
		return paragraph[:200] + "..."
	}
	return paragraph
}

// firstParagraph 按空行拆分取第一段，没有空行时按第一个换行拆分
func firstParagraph(text string) string {
	if p, _, found := strings.Cut(text, "\n\n"); found {
		return strings.TrimSpace(p)
	}
	if p, _, found := strings.Cut(text, "\n"); found {
		return strings.TrimSpace(p)
	}
	return strings.TrimSpace(text)
}
