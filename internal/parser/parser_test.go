package parser

import (
	"encoding/json"
	"strings"
	"testing"
)

// 任何输入都返回非空列表，且不会panic
func TestParseNeverEmpty(t *testing.T) {
	inputs := []string{
		"",
		"just some plain text",
		`[{"Generated article":"ok"}]`,
		`{"Generated article":"ok"}`,
		"```json\n[{\"Generated article\":\"ok\"}]\n```",
		`[{"Generated article":"A",},{"Generated article":"B",}]`,
		"prose with control\x01chars and no json",
		"[broken json",
	}

	for _, input := range inputs {
		articles := Parse(input)
		if len(articles) == 0 {
			t.Errorf("Parse(%q) 返回了空列表", input)
		}
	}
}

func TestParseValidArray(t *testing.T) {
	articles := Parse(`[{"Generated article":"Hello world."}]`)

	if len(articles) != 1 {
		t.Fatalf("期望1条记录，得到%d条", len(articles))
	}
	if got := articles[0][KeyGeneratedArticle]; got != "Hello world." {
		t.Errorf("正文 = %q, 期望 %q", got, "Hello world.")
	}
}

// 单个对象包装为只有一条记录的列表
func TestParseSingleObject(t *testing.T) {
	articles := Parse(`{"Generated article":"solo","Original title":"T"}`)

	if len(articles) != 1 {
		t.Fatalf("期望1条记录，得到%d条", len(articles))
	}
	if articles[0][KeyGeneratedArticle] != "solo" {
		t.Errorf("正文 = %q", articles[0][KeyGeneratedArticle])
	}
	if articles[0][KeyOriginalTitle] != "T" {
		t.Errorf("原标题 = %q", articles[0][KeyOriginalTitle])
	}
}

// 代码块围栏对解析透明
func TestParseFencedJSON(t *testing.T) {
	fenced := "```json\n[{\"Generated article\":\"X\"}]\n```"
	unfenced := `[{"Generated article":"X"}]`

	got := Parse(fenced)
	want := Parse(unfenced)

	if len(got) != len(want) {
		t.Fatalf("围栏/无围栏记录数不一致: %d vs %d", len(got), len(want))
	}
	if got[0][KeyGeneratedArticle] != want[0][KeyGeneratedArticle] {
		t.Errorf("围栏 = %q, 无围栏 = %q", got[0][KeyGeneratedArticle], want[0][KeyGeneratedArticle])
	}
}

// 尾逗号必须在解析前去掉，否则会错误地落入下一级
func TestParseTrailingCommas(t *testing.T) {
	articles := Parse(`[{"Generated article":"A",},{"Generated article":"B",}]`)

	if len(articles) != 2 {
		t.Fatalf("期望2条记录，得到%d条", len(articles))
	}
	if articles[0][KeyGeneratedArticle] != "A" || articles[1][KeyGeneratedArticle] != "B" {
		t.Errorf("正文 = %q / %q", articles[0][KeyGeneratedArticle], articles[1][KeyGeneratedArticle])
	}
}

// 没有任何括号时整段原文原样作为正文
func TestParsePlainText(t *testing.T) {
	input := "just some plain text"
	articles := Parse(input)

	if len(articles) != 1 {
		t.Fatalf("期望1条记录，得到%d条", len(articles))
	}
	if articles[0][KeyGeneratedArticle] != input {
		t.Errorf("正文 = %q, 期望原文 %q", articles[0][KeyGeneratedArticle], input)
	}
}

// 对象括号在数组括号之前出现时优先取对象
func TestParseObjectBeforeArray(t *testing.T) {
	input := `note {"Generated article":"from object"} trailing [1, 2]`
	articles := Parse(input)

	if len(articles) != 1 {
		t.Fatalf("期望1条记录，得到%d条", len(articles))
	}
	if articles[0][KeyGeneratedArticle] != "from object" {
		t.Errorf("正文 = %q", articles[0][KeyGeneratedArticle])
	}
}

// 控制字符不会让第一级失败
func TestParseControlChars(t *testing.T) {
	input := "[{\"Generated article\":\"clean\x01\x02 text\"}]"
	articles := Parse(input)

	if len(articles) != 1 {
		t.Fatalf("期望1条记录，得到%d条", len(articles))
	}
	if got := articles[0][KeyGeneratedArticle]; !strings.Contains(got, "clean") {
		t.Errorf("正文 = %q", got)
	}
}

// JSON解析失败时第二级用正则抢救正文
func TestRegexSalvage(t *testing.T) {
	// 缺失闭合括号，第一级必然失败
	input := `[{"Generated article": "First story.\nSecond line."}, {"Generated article": "Quoted \"value\"."`

	articles := Parse(input)
	if len(articles) != 2 {
		t.Fatalf("期望抢救出2条记录，得到%d条", len(articles))
	}
	if articles[0][KeyGeneratedArticle] != "First story.\nSecond line." {
		t.Errorf("第1条 = %q", articles[0][KeyGeneratedArticle])
	}
	if articles[1][KeyGeneratedArticle] != `Quoted "value".` {
		t.Errorf("第2条 = %q", articles[1][KeyGeneratedArticle])
	}
}

// 非字符串值转为字符串而不是报错
func TestParseNonStringValues(t *testing.T) {
	articles := Parse(`[{"Generated article":"x","id":3,"flag":true,"gone":null}]`)

	if len(articles) != 1 {
		t.Fatalf("期望1条记录，得到%d条", len(articles))
	}
	a := articles[0]
	if a["id"] != "3" {
		t.Errorf("id = %q", a["id"])
	}
	if a["flag"] != "true" {
		t.Errorf("flag = %q", a["flag"])
	}
	if _, ok := a["gone"]; ok {
		t.Errorf("null字段应当被忽略")
	}
}

// 把解析结果重新序列化再解析，得到等价的记录列表
func TestParseIdempotent(t *testing.T) {
	first := Parse(`[{"Generated article":"A","Original title":"T","Source URL":"https://example.com"}]`)

	data, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("序列化失败: %v", err)
	}

	second := Parse(string(data))
	if len(second) != len(first) {
		t.Fatalf("记录数不一致: %d vs %d", len(second), len(first))
	}
	for i := range first {
		for key, want := range first[i] {
			if got := second[i][key]; got != want {
				t.Errorf("记录%d字段%q = %q, 期望 %q", i, key, got, want)
			}
		}
	}
}

func TestParseEmptyInput(t *testing.T) {
	articles := Parse("")

	if len(articles) != 1 {
		t.Fatalf("期望1条记录，得到%d条", len(articles))
	}
	if articles[0][KeyGeneratedArticle] != "" {
		t.Errorf("空输入的正文应为空字符串，得到 %q", articles[0][KeyGeneratedArticle])
	}
}
