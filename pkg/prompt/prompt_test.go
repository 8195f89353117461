package prompt

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestRender_ReplacesAllOccurrences(t *testing.T) {
	tpl := "{title} 仅售 {price} 元，{title} 数量有限"
	info := map[string]interface{}{
		"title": "机械键盘",
		"price": float64(899),
	}

	got := Render(tpl, info)

	want := "机械键盘 仅售 899 元，机械键盘 数量有限"
	if got.Preview != want {
		t.Errorf("渲染结果错误:\n got: %s\nwant: %s", got.Preview, want)
	}
	if got.Variables["title"] != "机械键盘" || got.Variables["price"] != "899" {
		t.Errorf("变量报告错误: %v", got.Variables)
	}
	if got.WordCount != utf8.RuneCountInString(want) {
		t.Errorf("字数应等于结果长度: got %d", got.WordCount)
	}
}

func TestRender_UnusedKeysNotReported(t *testing.T) {
	got := Render("只用 {title}", map[string]interface{}{
		"title": "A",
		"price": float64(1),
		"desc":  "未引用",
	})

	if _, ok := got.Variables["price"]; ok {
		t.Error("模板未引用的键不应出现在变量报告里")
	}
	if _, ok := got.Variables["desc"]; ok {
		t.Error("模板未引用的键不应出现在变量报告里")
	}
	if got.Variables["title"] != "A" {
		t.Errorf("已替换变量缺失: %v", got.Variables)
	}
}

func TestRender_MissingVariableLeftAsIs(t *testing.T) {
	got := Render("价格 {price}，库存 {stock}", map[string]interface{}{
		"price": float64(10),
	})

	if !strings.Contains(got.Preview, "{stock}") {
		t.Errorf("信息里没有的占位符应原样保留: %s", got.Preview)
	}
}

func TestRender_MalformedBracesUntouched(t *testing.T) {
	cases := []string{
		"残缺的 {title 占位符",
		"孤立右括号 title}",
		"空的 {} 花括号",
	}
	info := map[string]interface{}{"title": "X"}

	for _, tpl := range cases {
		got := Render(tpl, info)
		if got.Preview != tpl {
			t.Errorf("畸形花括号应原样输出: %q -> %q", tpl, got.Preview)
		}
		if len(got.Variables) != 0 {
			t.Errorf("畸形模板不应报告变量: %v", got.Variables)
		}
	}
}

func TestRender_NumberFormatting(t *testing.T) {
	got := Render("{price} / {rate}", map[string]interface{}{
		"price": float64(7999),
		"rate":  float64(78.5),
	})

	if got.Preview != "7999 / 78.5" {
		t.Errorf("数字格式化错误: %s", got.Preview)
	}
}

func TestRender_EmptyTemplate(t *testing.T) {
	got := Render("", map[string]interface{}{"title": "X"})

	if got.Preview != "" || got.WordCount != 0 || len(got.Variables) != 0 {
		t.Errorf("空模板应返回空结果: %+v", got)
	}
}

func TestValidate_EmptyContent(t *testing.T) {
	got := Validate("   ")
	if got.Valid {
		t.Error("空内容应判定为无效")
	}
	if len(got.Errors) == 0 {
		t.Error("应返回错误信息")
	}
}

func TestValidate_UnknownVariableWarns(t *testing.T) {
	got := Validate("你好 {nickname}")
	if !got.Valid {
		t.Error("未知变量只是警告，不影响有效性")
	}
	if len(got.Warnings) == 0 {
		t.Error("未知变量应产生警告")
	}
}

func TestValidate_UnbalancedBracesWarn(t *testing.T) {
	got := Validate("价格 {price} 和残缺 {title")
	if !got.Valid {
		t.Error("花括号不配对只是警告")
	}

	found := false
	for _, w := range got.Warnings {
		if strings.Contains(w, "不配对") {
			found = true
		}
	}
	if !found {
		t.Errorf("应有不配对警告: %v", got.Warnings)
	}
}

func TestValidate_NoVariablesSuggests(t *testing.T) {
	got := Validate("纯文本模板")
	if !got.Valid {
		t.Error("纯文本模板是有效的")
	}
	if len(got.Suggestions) == 0 {
		t.Error("未引用变量应给出建议")
	}
}

func TestExtractPlaceholders(t *testing.T) {
	keys := extractPlaceholders("{title} 和 {price} 再来一次 {title}")
	if len(keys) != 2 {
		t.Fatalf("应去重得到 2 个键: %v", keys)
	}
	if keys[0] != "title" || keys[1] != "price" {
		t.Errorf("键名或顺序错误: %v", keys)
	}
}
