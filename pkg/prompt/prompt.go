// Package prompt 实现提示词模板的变量替换与校验。
// 占位符是字面量的 {key}，不是模板语言：无嵌套、无转义、无条件分支，
// 畸形的花括号原样保留。
package prompt

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// PreviewResult 渲染结果
type PreviewResult struct {
	Preview string `json:"preview"`
	// Variables 实际发生了替换的变量（模板里不存在的键不报告）
	Variables map[string]string `json:"variables"`
	// WordCount 渲染结果的字符数
	WordCount int `json:"wordCount"`
}

// Render 用商品信息渲染模板
// 对 info 中的每个键，若模板含有字面量 {key}，替换其全部出现
func Render(template string, info map[string]interface{}) PreviewResult {
	preview := template
	variables := make(map[string]string)

	for key, value := range info {
		placeholder := "{" + key + "}"
		if !strings.Contains(template, placeholder) {
			continue
		}
		str := stringify(value)
		preview = strings.ReplaceAll(preview, placeholder, str)
		variables[key] = str
	}

	return PreviewResult{
		Preview:   preview,
		Variables: variables,
		WordCount: utf8.RuneCountInString(preview),
	}
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// JSON 数字统一走 float64，整数值不带小数位输出
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}

// ==================== 校验 ====================

// ValidationResult 模板校验结果
type ValidationResult struct {
	Valid       bool     `json:"valid"`
	Errors      []string `json:"errors,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Variable 可用变量说明
type Variable struct {
	Name    string `json:"name"`
	Key     string `json:"key"`
	Desc    string `json:"description"`
	Example string `json:"example"`
}

// KnownVariables 商品信息可提供的变量目录
var KnownVariables = []Variable{
	{Name: "商品标题", Key: "title", Desc: "商品的标题", Example: "iPhone 14 Pro 深空黑"},
	{Name: "商品描述", Key: "desc", Desc: "商品的详细描述", Example: "全新未拆封"},
	{Name: "商品价格", Key: "price", Desc: "当前售价（元）", Example: "7999"},
	{Name: "商品编号", Key: "itemId", Desc: "闲鱼侧商品 ID", Example: "iphone14pro_001"},
	{Name: "商品分类", Key: "category", Desc: "商品所属分类", Example: "电子产品"},
}

// Validate 校验模板内容
// 空内容是错误；引用未知变量、花括号不配对只是警告（占位符本就是字面文本）
func Validate(content string) ValidationResult {
	result := ValidationResult{Valid: true}

	if strings.TrimSpace(content) == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "模板内容不能为空")
		return result
	}

	known := make(map[string]bool, len(KnownVariables))
	for _, v := range KnownVariables {
		known[v.Key] = true
	}

	used := extractPlaceholders(content)
	for _, key := range used {
		if !known[key] {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("变量 {%s} 不在可用变量列表中，预览时将原样保留", key))
		}
	}

	if strings.Count(content, "{") != strings.Count(content, "}") {
		result.Warnings = append(result.Warnings, "花括号数量不配对，畸形占位符会原样输出")
	}

	if len(used) == 0 {
		result.Suggestions = append(result.Suggestions, "模板未引用任何变量，可插入 {title}、{price} 等提高针对性")
	}

	return result
}

// extractPlaceholders 提取形如 {key} 的占位符键名（不处理嵌套）
func extractPlaceholders(content string) []string {
	var keys []string
	seen := make(map[string]bool)

	for i := 0; i < len(content); i++ {
		if content[i] != '{' {
			continue
		}
		end := strings.IndexByte(content[i+1:], '}')
		if end < 0 {
			break
		}
		key := content[i+1 : i+1+end]
		// 键内再出现 { 说明是畸形片段，跳过该起始位置
		if key == "" || strings.ContainsAny(key, "{ \t\n") {
			continue
		}
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
		i += end + 1
	}
	return keys
}
