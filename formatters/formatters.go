package formatters

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// SpeciesLabels 动物种别显示名。未知代码查不到时直接回退显示原始代码
// （SpeciesLabel），绝不输出 "undefined" 之类的占位符。
var SpeciesLabels = map[string]string{
	"dog":   "犬",
	"cat":   "貓",
	"other": "其他",
}

// SpeciesLabel 返回种别显示名，未配置的代码原样返回。
func SpeciesLabel(species string) string {
	if label, ok := SpeciesLabels[species]; ok {
		return label
	}
	return species
}

// InvalidDateMarker 无法解析的时间戳统一渲染成这个标记，
// 保证垃圾输入不会原样流进 CSV/HTML。
const InvalidDateMarker = "Invalid Date"

// timestampLayouts App 端写入的都是 ISO-8601，但批量补录历史数据里
// 见过不带时区和只有日期的变体，都要容忍。
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp 解析 App 端时间戳。解析失败返回 false，不报错。
func ParseTimestamp(timestamp string) (time.Time, bool) {
	s := strings.TrimSpace(timestamp)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatTimestamp 完整时间戳（日期 + 时分秒），zh-TW 习惯格式。
func FormatTimestamp(timestamp string) string {
	t, ok := ParseTimestamp(timestamp)
	if !ok {
		return InvalidDateMarker
	}
	return t.Format("2006/01/02 15:04:05")
}

// FormatDateTime 日期 + 时分。
func FormatDateTime(timestamp string) string {
	t, ok := ParseTimestamp(timestamp)
	if !ok {
		return InvalidDateMarker
	}
	return t.Format("2006/01/02 15:04")
}

// FormatTime 只有时分秒。
func FormatTime(timestamp string) string {
	t, ok := ParseTimestamp(timestamp)
	if !ok {
		return InvalidDateMarker
	}
	return t.Format("15:04:05")
}

// CalculateDuration 计算两个时间戳之间的时长。
// endTime 为空、任一时间戳无法解析、或 end 早于 start（时钟偏移/误操作）
// 都返回 "-"，绝不返回负时长。两个时间戳相等返回 "0 分鐘"。
func CalculateDuration(startTime, endTime string) string {
	if endTime == "" {
		return "-"
	}
	start, okStart := ParseTimestamp(startTime)
	end, okEnd := ParseTimestamp(endTime)
	if !okStart || !okEnd || end.Before(start) {
		return "-"
	}

	minutes := int(math.Round(end.Sub(start).Minutes()))
	hours := minutes / 60
	mins := minutes % 60
	if hours > 0 {
		return fmt.Sprintf("%d 小時 %d 分鐘", hours, mins)
	}
	return fmt.Sprintf("%d 分鐘", mins)
}

var (
	// 公式注入危险前缀
	formulaPrefixPattern = regexp.MustCompile(`^[=+@]`)
	// 纯带符号十进制数（区分 "-5" 和 "-1+1"）。
	// 这是个启发式，不是完整的 Excel 公式文法——刻意保持原样，
	// 不要换成更严的判断。
	plainNumberPattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
)

// EscapeCSV CSV 单元格转义 + 公式注入防御。
// 两道检查按顺序独立生效：
//  1. 字符串以 = + @ 开头，或以 - 开头且不是纯负数 → 引号包裹并在
//     引号内加 ' 前缀，内嵌双引号翻倍（防 Excel/Sheets 打开时自动执行）；
//  2. 含逗号、双引号、换行 → 标准 CSV 引号包裹。
//
// 数字类型的负值不是公式风险，直接按数字字符串输出。
func EscapeCSV(value any) string {
	str := csvString(value)

	if s, ok := value.(string); ok {
		if formulaPrefixPattern.MatchString(s) {
			return `"'` + strings.ReplaceAll(s, `"`, `""`) + `"`
		}
		if strings.HasPrefix(s, "-") && !plainNumberPattern.MatchString(s) {
			return `"'` + strings.ReplaceAll(s, `"`, `""`) + `"`
		}
	}

	if strings.ContainsAny(str, ",\"\n") {
		return `"` + strings.ReplaceAll(str, `"`, `""`) + `"`
	}
	return str
}

func csvString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprint(v)
	}
}

// EscapeHTML HTML 转义，防止 XSS 注入。用于 PDF 导出的 HTML 模板。
// & 必须最先替换，否则后面插入的实体会被再次转义。
func EscapeHTML(str string) string {
	str = strings.ReplaceAll(str, "&", "&amp;")
	str = strings.ReplaceAll(str, "<", "&lt;")
	str = strings.ReplaceAll(str, ">", "&gt;")
	str = strings.ReplaceAll(str, `"`, "&quot;")
	str = strings.ReplaceAll(str, "'", "&#39;")
	return str
}

var unsafeFileNamePattern = regexp.MustCompile(`[/\\:*?"<>|]`)

// SanitizeFileName 文件名消毒：路径分隔符和保留字符全部替换为下划线，
// 其余字符（包括非拉丁文字）原样保留。空输入回退为 "unnamed"。
func SanitizeFileName(name string) string {
	if name == "" {
		return "unnamed"
	}
	return unsafeFileNamePattern.ReplaceAllString(name, "_")
}
