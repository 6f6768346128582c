// Package export 把一次麻醉监测 session 渲染成可交给打印/分享设施的
// CSV、HTML、Excel 文本。安全契约：所有用户自由输入的单元格在拼接前
// 必须过 formatters 的转义，任何备注/标识符里的公式或标记都不能
// 逃出自己的单元格。
package export

import (
	"strconv"
	"strings"

	"github.com/sensa-code/anesthesiamonitor/formatters"
	"github.com/sensa-code/anesthesiamonitor/models"
)

// vitalsHeader 生理数值表固定表头（11 列，顺序不可变）
const vitalsHeader = "時間,收縮壓Sys (mmHg),舒張壓Dia (mmHg),平均壓MAP (mmHg),心跳HR (bpm),呼吸RR (次/分),血氧SpO2 (%),呼末二氧化碳EtCO2 (mmHg),麻醉濃度MAC (%),體溫BT (°C),備註Others"

// GenerateCSV 生成整个 session 的 CSV 报表文本。
// 病患标识符、种别回退值、备注都经过 EscapeCSV；数值列直接输出
// 裸数字，空值输出空单元格。
func GenerateCSV(session *models.AnesthesiaSession) string {
	var lines []string

	info := session.PatientInfo
	lines = append(lines, "病患資料")
	lines = append(lines, "動物醫院,"+formatters.EscapeCSV(info.HospitalName))
	lines = append(lines, "病患名稱,"+formatters.EscapeCSV(info.PatientName))
	lines = append(lines, "病例編號,"+formatters.EscapeCSV(info.CaseNumber))
	lines = append(lines, "體重 (kg),"+formatters.EscapeCSV(info.Weight))
	lines = append(lines, "動物種別,"+formatters.EscapeCSV(formatters.SpeciesLabel(info.Species)))
	lines = append(lines, "開始時間,"+formatters.FormatTimestamp(session.StartTime))
	if session.EndTime != "" {
		lines = append(lines, "結束時間,"+formatters.FormatTimestamp(session.EndTime))
	}
	lines = append(lines, "")

	lines = append(lines, "生理數值記錄")
	lines = append(lines, vitalsHeader)

	for i := range session.Records {
		r := &session.Records[i]
		lines = append(lines, strings.Join([]string{
			formatters.FormatTimestamp(r.Timestamp),
			formatValue(r.SystolicBP),
			formatValue(r.DiastolicBP),
			formatValue(r.MeanBP),
			formatValue(r.HeartRate),
			formatValue(r.RespiratoryRate),
			formatValue(r.SpO2),
			formatValue(r.EtCO2),
			formatValue(r.AnesthesiaConc),
			formatValue(r.Temperature),
			formatters.EscapeCSV(r.Notes),
		}, ","))
	}

	return strings.Join(lines, "\n")
}

// formatValue 数值单元格：nil 渲染成空单元格
func formatValue(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}
