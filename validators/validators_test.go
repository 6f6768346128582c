package validators

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sensa-code/anesthesiamonitor/models"
)

// ============================================
// ParseNumber 输入边界反向测试
// ============================================

func TestParseNumber_Accepted(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"整数", "120", 120},
		{"小数", "37.5", 37.5},
		{"零", "0", 0},
		{"前后空白", "  120.5  ", 120.5},
		{"负数", "-50", -50},
		{"科学记号", "1e2", 100},
		{"科学记号带符号", "1.5e+2", 150},
		{"大写 E", "2E3", 2000},
		{"极大但有限", "1e308", 1e308},
		{"只有小数部分", ".5", 0.5},
		{"尾随小数点", "5.", 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseNumber(tt.input)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseNumber_Rejected(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"空字符串", ""},
		{"纯空白", "   "},
		{"NaN 字面量", "NaN"},
		{"Infinity 字面量", "Infinity"},
		{"negative Infinity 字面量", "-Infinity"},
		{"溢出为 Inf", "1e309"},
		{"部分解析", "12abc"},
		{"多个小数点", "1.2.3"},
		{"中间带空格", "12 34"},
		{"前导加号", "+5"},
		{"只有负号", "-"},
		{"只有小数点", "."},
		{"只有指数", "e5"},
		{"十六进制", "0x10"},
		{"千分位逗号", "1,000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ParseNumber(tt.input)
			assert.False(t, ok)
		})
	}
}

func TestParseNumber_NegativeZero(t *testing.T) {
	// IEEE 754 负零是合法结果，必须原样保留
	got, ok := ParseNumber("-0")
	require.True(t, ok)
	assert.Equal(t, 0.0, got+0)
	assert.True(t, math.Signbit(got))
}

// ============================================
// ValidatePatientInfo
// ============================================

func validInfo() models.PatientInfo {
	return models.PatientInfo{
		HospitalName: "測試醫院",
		PatientName:  "小白",
		CaseNumber:   "C001",
		Weight:       5,
		Species:      models.SpeciesDog,
	}
}

func TestValidatePatientInfo_Valid(t *testing.T) {
	result := ValidatePatientInfo(validInfo())
	assert.True(t, result.Valid)
	assert.Empty(t, result.Message)
}

func TestValidatePatientInfo_RequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.PatientInfo)
	}{
		{"缺少医院名", func(i *models.PatientInfo) { i.HospitalName = "" }},
		{"医院名纯空白", func(i *models.PatientInfo) { i.HospitalName = "   " }},
		{"缺少病患名", func(i *models.PatientInfo) { i.PatientName = "" }},
		{"病患名纯空白", func(i *models.PatientInfo) { i.PatientName = "\t " }},
		{"缺少病例编号", func(i *models.PatientInfo) { i.CaseNumber = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := validInfo()
			tt.mutate(&info)
			result := ValidatePatientInfo(info)
			assert.False(t, result.Valid)
			assert.NotEmpty(t, result.Message)
		})
	}
}

func TestValidatePatientInfo_Weight(t *testing.T) {
	tests := []struct {
		name   string
		weight float64
		valid  bool
	}{
		{"零体重", 0, false},
		{"负体重", -1, false},
		{"NaN", math.NaN(), false},
		{"正无穷", math.Inf(1), false},
		{"负无穷", math.Inf(-1), false},
		{"正常体重", 4.2, true},
		{"极小正数", 0.001, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := validInfo()
			info.Weight = tt.weight
			assert.Equal(t, tt.valid, ValidatePatientInfo(info).Valid)
		})
	}
}

func TestValidatePatientInfo_HostileStringsAccepted(t *testing.T) {
	// 清洗是导出层的事，表单验证只看非空
	info := validInfo()
	info.PatientName = "<script>alert(1)</script>"
	info.CaseNumber = "=CMD()" + strings.Repeat("A", 10000)
	assert.True(t, ValidatePatientInfo(info).Valid)
}

// ============================================
// ValidateWeight
// ============================================

func TestValidateWeight(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"正常", "5", true},
		{"小数", "4.25", true},
		{"带空白", " 3.2 ", true},
		{"空字符串", "", false},
		{"纯空白", "  ", false},
		{"非数字", "abc", false},
		{"部分解析", "12abc", false},
		{"零", "0", false},
		{"负数", "-5", false},
		{"溢出", "1e309", false},
		{"Infinity", "Infinity", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateWeight(tt.input)
			assert.Equal(t, tt.valid, result.Valid)
			if !tt.valid {
				assert.Equal(t, "請輸入有效的體重", result.Message)
			}
		})
	}
}

// ============================================
// ValidateVitalRange
// ============================================

func TestValidateVitalRange_NilAlwaysValid(t *testing.T) {
	// nil 代表该字段未测量，永远合法
	for field := range VitalRanges {
		assert.True(t, ValidateVitalRange(field, nil).Valid, field)
	}
	assert.True(t, ValidateVitalRange("unknownField", nil).Valid)
}

func TestValidateVitalRange_NonFiniteAlwaysInvalid(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		result := ValidateVitalRange("heartRate", models.Float(v))
		assert.False(t, result.Valid)
		assert.Contains(t, result.Message, "heartRate")
	}
	// 未配置范围的字段也一样拒绝非有限数
	assert.False(t, ValidateVitalRange("unknownField", models.Float(math.NaN())).Valid)
}

func TestValidateVitalRange_Bounds(t *testing.T) {
	tests := []struct {
		field string
		value float64
		valid bool
	}{
		{"spO2", 150, false},
		{"spO2", 100, true},
		{"spO2", 0, true},
		{"spO2", -1, false},
		{"heartRate", 500, true},
		{"heartRate", 501, false},
		{"temperature", 15, true},
		{"temperature", 14.9, false},
		{"temperature", 50, true},
		{"temperature", 50.1, false},
		{"anesthesiaConc", 2.5, true},
		{"anesthesiaConc", 21, false},
		{"systolicBP", 120, true},
		{"systolicBP", 401, false},
	}
	for _, tt := range tests {
		result := ValidateVitalRange(tt.field, models.Float(tt.value))
		assert.Equal(t, tt.valid, result.Valid, "%s=%v", tt.field, tt.value)
	}
}

func TestValidateVitalRange_BoundsMessage(t *testing.T) {
	result := ValidateVitalRange("spO2", models.Float(150))
	require.False(t, result.Valid)
	assert.Contains(t, result.Message, "spO2")
	assert.Contains(t, result.Message, "0")
	assert.Contains(t, result.Message, "100")
}

func TestValidateVitalRange_UnknownFieldFailsOpen(t *testing.T) {
	// 表里没有的字段不限制：给新字段留的前向兼容策略
	assert.True(t, ValidateVitalRange("unknownField", models.Float(50)).Valid)
	assert.True(t, ValidateVitalRange("", models.Float(-99999)).Valid)
}
