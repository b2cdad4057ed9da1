package generator

import (
	"celebrity-news/config"
	"celebrity-news/internal/ai"
	"celebrity-news/internal/crawler"
	"celebrity-news/internal/models"
	"celebrity-news/internal/news"
	"celebrity-news/internal/parser"
	"context"
	"fmt"
	"log"
	"time"
)

// fallbackBody 解析或归一化意外崩溃时兜底记录的正文
const fallbackBody = "抱歉，本次文章生成出现了问题，请稍后重试。"

// Generator 执行一次完整的生成流水线：
// 搜索新闻 -> (可选)抓取正文 -> AI改写 -> 恢复解析 -> 归一化
type Generator struct {
	cfg        *config.Config
	newsClient *news.Client
	aiClient   *ai.Client
	fetcher    *crawler.ArticleFetcher
}

// NewGenerator 创建一个新的生成器
func NewGenerator(cfg *config.Config) *Generator {
	return &Generator{
		cfg:        cfg,
		newsClient: news.NewClient(&cfg.News),
		aiClient:   ai.NewClient(&cfg.OpenAI),
		fetcher:    crawler.NewArticleFetcher(),
	}
}

// Generate 为指定人物生成一组文章
// 网络和配置错误会中止流水线并返回给调用方；
// 解析错误不会：恢复解析器总能给出至少一条记录
func (g *Generator) Generate(ctx context.Context, person string, maxItems int) (*models.ArticleSet, error) {
	if maxItems <= 0 {
		maxItems = g.cfg.News.MaxItems
	}

	// 步骤1: 搜索真实新闻
	items, err := g.newsClient.Search(ctx, person, maxItems)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		// 没有搜到新闻时使用内置示例集
		log.Printf("没有搜到关于 %s 的新闻，使用示例新闻", person)
		items = models.SampleNews(person)
	}
	if len(items) > maxItems {
		items = items[:maxItems]
	}

	// 步骤2: 组装提示词内容，按配置抓取原文正文
	contents := ai.BuildStoryContents(items)
	if g.cfg.News.FetchArticleBody {
		for i, item := range items {
			if body := g.fetcher.FetchBody(item.URL, g.cfg.OpenAI.MaxTokens); body != "" {
				contents[i] += "\n<article>\n" + body + "\n</article>"
			}
		}
	}

	// 步骤3: AI改写
	raw, err := g.aiClient.RewriteNews(ctx, person, contents)
	if err != nil {
		return nil, fmt.Errorf("AI改写失败: %w", err)
	}

	// 步骤4: 恢复解析并归一化
	now := time.Now()
	articles := recoverArticles(person, raw, items, now)

	return &models.ArticleSet{
		Person:      person,
		Date:        now.Format("2006-01-02"),
		GeneratedAt: now.Format(time.RFC3339),
		Articles:    articles,
	}, nil
}

// recoverArticles 解析并归一化，任何意外崩溃都降级为一条兜底记录
func recoverArticles(person, raw string, items []models.NewsItem, now time.Time) (articles []models.GeneratedArticle) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("解析AI响应时发生意外错误: %v", r)
			articles = []models.GeneratedArticle{fallbackArticle(person, now)}
		}
	}()

	parsed := parser.Parse(raw)
	return Normalize(person, parsed, items, now)
}

// fallbackArticle 构造兜底记录
func fallbackArticle(person string, now time.Time) models.GeneratedArticle {
	return models.GeneratedArticle{
		ID:          1,
		Title:       "生成失败",
		Body:        fallbackBody,
		Summary:     fallbackBody,
		ImageURL:    models.ImagePool[0],
		PublishedAt: now.Format(time.RFC3339),
		PersonName:  person,
		IsVerified:  false,
	}
}
