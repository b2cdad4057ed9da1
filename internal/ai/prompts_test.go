package ai

import (
	"celebrity-news/internal/models"
	"strings"
	"testing"
)

func TestStyleTemplate(t *testing.T) {
	// 内置人物命中手写模板
	if got := StyleTemplate("Elon Musk"); !strings.Contains(got, "first-principles") {
		t.Errorf("Elon Musk 模板 = %q", got)
	}

	// 未知人物回退到通用模板
	got := StyleTemplate("Some Unknown Person")
	if !strings.Contains(got, "Some Unknown Person") {
		t.Errorf("通用模板应包含人物名: %q", got)
	}
}

// 系统提示词必须约定解析器依赖的字段名
func TestSystemPromptKeys(t *testing.T) {
	prompt := SystemPrompt("Taylor Swift")

	for _, key := range []string{
		`"Generated article"`,
		`"Original title"`,
		`"Source URL"`,
		`"Published at"`,
	} {
		if !strings.Contains(prompt, key) {
			t.Errorf("系统提示词缺少字段 %s", key)
		}
	}

	if !strings.Contains(prompt, "Taylor Swift") {
		t.Errorf("系统提示词应包含人物名")
	}
	if !strings.Contains(prompt, "JSON array") {
		t.Errorf("系统提示词应要求JSON数组输出")
	}
}

// 新闻按序编号，生成文章与新闻按位置对应
func TestBuildStoryContents(t *testing.T) {
	items := []models.NewsItem{
		{Title: "First headline", Summary: "s1", URL: "https://e.com/1", Published: "2025-06-01T00:00:00Z"},
		{Title: "Second headline"},
	}

	contents := BuildStoryContents(items)
	if len(contents) != 2 {
		t.Fatalf("期望2段内容，得到%d段", len(contents))
	}

	if !strings.HasPrefix(contents[0], "Story 1: First headline") {
		t.Errorf("第1段 = %q", contents[0])
	}
	if !strings.Contains(contents[0], "https://e.com/1") {
		t.Errorf("第1段缺少URL: %q", contents[0])
	}
	if !strings.HasPrefix(contents[1], "Story 2: Second headline") {
		t.Errorf("第2段 = %q", contents[1])
	}
	// 空字段不输出
	if strings.Contains(contents[1], "Summary:") || strings.Contains(contents[1], "URL:") {
		t.Errorf("第2段不应包含空字段: %q", contents[1])
	}
}

func TestBuildUserPrompt(t *testing.T) {
	prompt := BuildUserPrompt("Oprah Winfrey", []string{"story a", "story b"})

	if !strings.Contains(prompt, "Oprah Winfrey") {
		t.Errorf("用户提示词应包含人物名")
	}
	if !strings.Contains(prompt, "story a\n\n---\n\nstory b") {
		t.Errorf("新闻内容应以分隔符拼接: %q", prompt)
	}
}
