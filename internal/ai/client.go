package ai

import (
	"celebrity-news/config"
	"celebrity-news/internal/models"
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// Client 是AI接口的客户端
type Client struct {
	client *openai.Client
	config *config.OpenAIConfig
}

// NewClient 创建一个新的AI客户端
func NewClient(cfg *config.OpenAIConfig) *Client {
	// 创建OpenAI配置
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = cfg.BaseURL

	return &Client{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}
}

// RewriteNews 让模型以指定人物的口吻改写一组新闻
// 返回模型的原始文本，交给parser恢复为记录列表
func (c *Client) RewriteNews(ctx context.Context, person string, contents []string) (string, error) {
	userPrompt := BuildUserPrompt(person, contents)

	// 限制内容长度，防止超过token限制
	maxLength := c.config.MaxTokens * 4
	if len(userPrompt) > maxLength {
		userPrompt = userPrompt[:maxLength]
	}

	req := openai.ChatCompletionRequest{
		Model: c.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: SystemPrompt(person),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userPrompt,
			},
		},
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
		TopP:        c.config.TopP,
	}

	return c.generateText(ctx, req)
}

// generateText 发送AI请求并获取生成的文本
func (c *Client) generateText(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	log.Printf("生成AI内容，模型: %s", req.Model)

	// 添加重试逻辑
	maxRetries := 3
	for i := 0; i < maxRetries; i++ {
		// 添加超时
		timeoutCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)

		// 发送请求
		resp, err := c.client.CreateChatCompletion(timeoutCtx, req)
		cancel()
		if err != nil {
			// 检查是否是可重试的错误
			if i < maxRetries-1 {
				log.Printf("AI请求失败，正在重试 (%d/%d): %v", i+1, maxRetries, err)
				time.Sleep(time.Duration(i+1) * 2 * time.Second)
				continue
			}
			return "", fmt.Errorf("生成AI内容失败: %w", err)
		}

		// 检查响应是否有效
		if len(resp.Choices) == 0 {
			if i < maxRetries-1 {
				log.Printf("AI响应无效，正在重试 (%d/%d)", i+1, maxRetries)
				time.Sleep(time.Duration(i+1) * 2 * time.Second)
				continue
			}
			return "", fmt.Errorf("AI响应中没有内容")
		}

		log.Printf("AI内容生成成功，使用tokens: %d", resp.Usage.TotalTokens)
		return resp.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("超过最大重试次数")
}

// BuildUserPrompt 把新闻内容拼装为用户提示词
func BuildUserPrompt(person string, contents []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here are today's news stories about %s:\n\n", person)
	b.WriteString(strings.Join(contents, "\n\n---\n\n"))
	b.WriteString("\n\nRewrite each story as instructed.")
	return b.String()
}

// BuildStoryContents 把新闻列表转为编号的提示词片段
func BuildStoryContents(items []models.NewsItem) []string {
	contents := make([]string, 0, len(items))
	for i, item := range items {
		var parts []string
		parts = append(parts, fmt.Sprintf("Story %d: %s", i+1, item.Title))
		if item.Summary != "" {
			parts = append(parts, fmt.Sprintf("Summary: %s", item.Summary))
		}
		if item.URL != "" {
			parts = append(parts, fmt.Sprintf("URL: %s", item.URL))
		}
		if item.Published != "" {
			parts = append(parts, fmt.Sprintf("Published: %s", item.Published))
		}
		contents = append(contents, strings.Join(parts, "\n"))
	}
	return contents
}
