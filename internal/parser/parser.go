package parser

import (
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
)

// AI返回的文章记录中约定的字段名
const (
	KeyGeneratedArticle = "Generated article"
	KeyOriginalTitle    = "Original title"
	KeySourceURL        = "Source URL"
	KeyPublishedAt      = "Published at"
)

// RawArticle 表示从AI响应中恢复出的一条松散类型记录
type RawArticle map[string]string

// strategy 是降级解析链中的一级，失败时交给下一级
type strategy struct {
	name string
	fn   func(raw string) ([]RawArticle, error)
}

// 策略按顺序尝试，取第一个成功且非空的结果
// 最后一级不会失败，因此Parse总能返回至少一条记录
var strategies = []strategy{
	{name: "repaired-json", fn: parseRepairedJSON},
	{name: "regex-salvage", fn: salvageGeneratedArticles},
	{name: "whole-text", fn: wholeText},
}

// Parse 将AI返回的原始文本恢复为文章记录列表
// 永不失败：所有解析错误都在内部降级消化
func Parse(raw string) []RawArticle {
	for _, s := range strategies {
		articles, err := s.fn(raw)
		if err != nil {
			log.Printf("解析策略 %s 失败: %v", s.name, err)
			continue
		}
		if len(articles) == 0 {
			continue
		}
		return articles
	}

	// 不可达：whole-text不会失败，这里仅作保底
	return []RawArticle{{KeyGeneratedArticle: raw}}
}

// parseRepairedJSON 第一级：清理并修复后按JSON解析
func parseRepairedJSON(raw string) ([]RawArticle, error) {
	s := stripCodeFences(raw)
	s = stripControlChars(s)

	// 定位JSON边界：数组和对象同时存在时，数组开始位置不靠后则优先数组
	arrStart := strings.IndexByte(s, '[')
	objStart := strings.IndexByte(s, '{')
	useArray := arrStart >= 0 && (objStart < 0 || arrStart <= objStart)

	var start, end int
	if useArray {
		start = arrStart
		end = strings.LastIndexByte(s, ']')
	} else if objStart >= 0 {
		start = objStart
		end = strings.LastIndexByte(s, '}')
	} else {
		return nil, fmt.Errorf("文本中没有JSON边界")
	}
	if end <= start {
		return nil, fmt.Errorf("JSON边界不完整")
	}

	s = repairJSON(s[start : end+1])

	if useArray {
		var items []map[string]interface{}
		if err := json.Unmarshal([]byte(s), &items); err != nil {
			return nil, fmt.Errorf("解析JSON数组失败: %w", err)
		}
		articles := make([]RawArticle, 0, len(items))
		for _, item := range items {
			articles = append(articles, toRawArticle(item))
		}
		return articles, nil
	}

	// 单个对象视为只有一条记录的列表
	var item map[string]interface{}
	if err := json.Unmarshal([]byte(s), &item); err != nil {
		return nil, fmt.Errorf("解析JSON对象失败: %w", err)
	}
	return []RawArticle{toRawArticle(item)}, nil
}

// generatedArticlePattern 匹配 "Generated article": "..." 片段，识别转义引号
var generatedArticlePattern = regexp.MustCompile(`"Generated article"\s*:\s*"((?:[^"\\]|\\.)*)"`)

// salvageGeneratedArticles 第二级：JSON解析失败时用正则从原文中抢救正文
func salvageGeneratedArticles(raw string) ([]RawArticle, error) {
	matches := generatedArticlePattern.FindAllStringSubmatch(raw, -1)
	if len(matches) == 0 {
		return nil, nil
	}

	articles := make([]RawArticle, 0, len(matches))
	for _, m := range matches {
		text := strings.ReplaceAll(m[1], `\n`, "\n")
		text = strings.ReplaceAll(text, `\"`, `"`)
		articles = append(articles, RawArticle{KeyGeneratedArticle: text})
	}
	return articles, nil
}

// wholeText 最后一级：把整段原始文本当作一篇生成文章
func wholeText(raw string) ([]RawArticle, error) {
	return []RawArticle{{KeyGeneratedArticle: raw}}, nil
}

// stripCodeFences 去掉Markdown代码块围栏
func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// stripControlChars 去掉C0/C1控制字符
// 保留\n\r\t，留给repairJSON统一压缩为空格
func stripControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == '\t' {
			return r
		}
		if r < 0x20 || (r >= 0x7f && r <= 0x9f) {
			return -1
		}
		return r
	}, s)
}

var (
	trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)
	whitespacePattern    = regexp.MustCompile(`\s+`)
)

// repairJSON 轻量修复：去掉闭合括号前的尾逗号，压缩空白
// 尾逗号不去掉会导致解析失败、错误地落入下一级
func repairJSON(s string) string {
	s = trailingCommaPattern.ReplaceAllString(s, "$1")
	return whitespacePattern.ReplaceAllString(s, " ")
}

// toRawArticle 把解析出的对象转为字符串到字符串的记录
func toRawArticle(item map[string]interface{}) RawArticle {
	article := make(RawArticle, len(item))
	for key, value := range item {
		switch v := value.(type) {
		case string:
			article[key] = v
		case float64:
			article[key] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			article[key] = strconv.FormatBool(v)
		case nil:
			// 忽略null字段
		default:
			article[key] = fmt.Sprintf("%v", v)
		}
	}
	return article
}
