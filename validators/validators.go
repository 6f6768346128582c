package validators

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/sensa-code/anesthesiamonitor/models"
)

// numberPattern 整串匹配：可选负号 + 数字 + 可选小数 + 可选科学记号。
// strconv.ParseFloat 本身会接受 "Inf"、"NaN" 等字面量，所以必须先过整串
// 正则，再交给 ParseFloat。
var numberPattern = regexp.MustCompile(`^-?(\d+\.?\d*|\d*\.?\d+)([eE][+-]?\d+)?$`)

// ParseNumber 严格解析数字字符串。
// 拒绝空白、部分匹配（如 "12abc"）、"Infinity"/"NaN" 字面量、
// 以及溢出为 ±Inf 的极大值（如 "1e309"）。
// "-0" 与 "1e308" 是合法的有限数，照常接受——合理范围是
// ValidateVitalRange 的职责，不是解析器的。
func ParseNumber(value string) (float64, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, false
	}
	if !numberPattern.MatchString(trimmed) {
		return 0, false
	}

	num, err := strconv.ParseFloat(trimmed, 64)
	// ParseFloat 溢出时返回 ±Inf 和 ErrRange，这里统一按非有限数拒绝
	if math.IsNaN(num) || math.IsInf(num, 0) {
		return 0, false
	}
	if err != nil {
		return 0, false
	}
	return num, true
}

// ValidationResult 验证结果。Valid 为 false 时 Message 是可直接展示的提示。
type ValidationResult struct {
	Valid   bool   `json:"isValid"`
	Message string `json:"message,omitempty"`
}

func valid() ValidationResult {
	return ValidationResult{Valid: true}
}

func invalid(message string) ValidationResult {
	return ValidationResult{Valid: false, Message: message}
}

// ValidatePatientInfo 病患资料表单验证。
// 字符串字段只要求非空白：内容里带标记/公式无所谓，清洗是导出层的事。
func ValidatePatientInfo(info models.PatientInfo) ValidationResult {
	if strings.TrimSpace(info.HospitalName) == "" {
		return invalid("請輸入動物醫院名")
	}
	if strings.TrimSpace(info.PatientName) == "" {
		return invalid("請輸入病患名稱")
	}
	if strings.TrimSpace(info.CaseNumber) == "" {
		return invalid("請輸入病例編號")
	}
	if math.IsNaN(info.Weight) || math.IsInf(info.Weight, 0) || info.Weight <= 0 {
		return invalid("請輸入有效的體重")
	}
	return valid()
}

// ValidateWeight 体重输入框验证：严格数字解析 + 必须为正。
// 空白、非数字、非正数、非有限数共用同一条提示。
func ValidateWeight(weightStr string) ValidationResult {
	weight, ok := ParseNumber(weightStr)
	if !ok || weight <= 0 {
		return invalid("請輸入有效的體重")
	}
	return valid()
}

// VitalRange 生理数值合理区间（闭区间）
type VitalRange struct {
	Min float64
	Max float64
}

// VitalRanges 兽医生理数值合理范围定义。
// 只初始化一次，运行期不修改。
var VitalRanges = map[string]VitalRange{
	"systolicBP":      {Min: 0, Max: 400},
	"diastolicBP":     {Min: 0, Max: 300},
	"meanBP":          {Min: 0, Max: 350},
	"heartRate":       {Min: 0, Max: 500},
	"respiratoryRate": {Min: 0, Max: 200},
	"spO2":            {Min: 0, Max: 100},
	"etCO2":           {Min: 0, Max: 150},
	"anesthesiaConc":  {Min: 0, Max: 20},
	"temperature":     {Min: 15, Max: 50},
}

// ValidateVitalRange 验证生理数值是否在合理范围内。
// nil 值合法（该字段未填写）；非有限数一律非法；
// 表里没有的字段不限制（fail open，为新字段留的前向兼容口子，
// 不要收紧）。
func ValidateVitalRange(field string, value *float64) ValidationResult {
	if value == nil {
		return valid()
	}

	v := *value
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid(fmt.Sprintf("%s 數值無效", field))
	}

	r, ok := VitalRanges[field]
	if !ok {
		return valid()
	}

	if v < r.Min || v > r.Max {
		return invalid(fmt.Sprintf("%s 超出合理範圍 (%g–%g)", field, r.Min, r.Max))
	}
	return valid()
}
