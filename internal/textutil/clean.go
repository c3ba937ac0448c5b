package textutil

import (
	"regexp"
	"strings"

	"golang.org/x/text/width"
)

// nationalityMarks lists the country and dynasty tags the source site puts in
// front of author and director names.
var nationalityMarks = []string{
	"美国", "英国", "法国", "德国", "日本", "意大利", "俄罗斯", "加拿大", "澳大利亚",
	"西班牙", "葡萄牙", "新西兰", "爱尔兰", "以色列", "瑞典", "瑞士", "丹麦", "挪威",
	"芬兰", "波兰", "捷克", "匈牙利", "印度", "韩国", "苏联", "巴西", "阿根廷", "智利",
	"哥伦比亚", "墨西哥", "奥地利", "荷兰", "比利时", "希腊", "土耳其", "埃及", "南非",
	"美", "英", "法", "德", "日", "意", "俄", "加", "澳", "西", "葡", "荷", "比", "奥",
	"瑞", "丹", "挪", "芬", "波", "捷", "匈", "印", "韩", "朝", "苏", "希", "土", "以",
	"清", "明", "宋", "元", "唐", "汉", "晋",
	"US", "USA", "UK",
}

var nationalityPattern = buildNationalityPattern()

func buildNationalityPattern() *regexp.Regexp {
	quoted := make([]string, 0, len(nationalityMarks))
	for _, mark := range nationalityMarks {
		quoted = append(quoted, regexp.QuoteMeta(mark))
	}
	return regexp.MustCompile(`[\(（\[【〔]\s*(?:` + strings.Join(quoted, "|") + `)\s*[\)）\]】〕]`)
}

// CollapseSpace trims s and replaces every whitespace run with a single space.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// StripNationality removes bracketed nationality annotations in half- and
// full-width forms. Other bracketed text is kept.
func StripNationality(s string) string {
	return nationalityPattern.ReplaceAllString(s, "")
}

// Clean applies the cleanup every resolved field receives.
func Clean(s string) string {
	if s == "" {
		return ""
	}
	return CollapseSpace(StripNationality(s))
}

// FoldWidth maps full-width ASCII variants (digits, punctuation, latin
// letters) to their narrow forms.
func FoldWidth(s string) string {
	return width.Fold.String(s)
}

// FirstLine returns the first non-blank line of s, trimmed.
func FirstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
