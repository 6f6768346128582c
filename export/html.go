package export

import (
	"fmt"
	"strings"

	"github.com/sensa-code/anesthesiamonitor/chart"
	"github.com/sensa-code/anesthesiamonitor/formatters"
	"github.com/sensa-code/anesthesiamonitor/models"
)

// svgChartSpec 趋势图字段清单（渲染顺序固定）
type svgChartSpec struct {
	field string
	title string
	color string
	unit  string
}

var svgCharts = []svgChartSpec{
	{"systolicBP", "收縮壓", "#e53935", "mmHg"},
	{"diastolicBP", "舒張壓", "#c62828", "mmHg"},
	{"meanBP", "平均壓", "#ad1457", "mmHg"},
	{"heartRate", "心跳", "#d81b60", "bpm"},
	{"respiratoryRate", "呼吸", "#8e24aa", "次/分"},
	{"spO2", "血氧", "#1e88e5", "%"},
	{"etCO2", "呼末二氧化碳", "#0277bd", "mmHg"},
	{"anesthesiaConc", "麻醉濃度", "#43a047", "%"},
	{"temperature", "體溫", "#fb8c00", "°C"},
}

const htmlStyle = `
        body { font-family: Arial, sans-serif; padding: 20px; }
        h1 { color: #2196F3; border-bottom: 2px solid #2196F3; padding-bottom: 10px; }
        h2 { color: #333; margin-top: 30px; }
        h3 { color: #666; font-size: 14px; margin: 10px 0 5px 0; }
        .info-table { width: 100%; border-collapse: collapse; margin-bottom: 20px; }
        .info-table td { padding: 8px; border-bottom: 1px solid #ddd; }
        .info-table td:first-child { font-weight: bold; width: 120px; color: #666; }
        .data-table { width: 100%; border-collapse: collapse; font-size: 12px; }
        .data-table th, .data-table td { border: 1px solid #ddd; padding: 6px; text-align: center; }
        .data-table th { background-color: #2196F3; color: white; }
        .data-table tr:nth-child(even) { background-color: #f9f9f9; }
        .data-table .notes { text-align: left; max-width: 150px; font-size: 11px; }
        .charts-grid { display: grid; grid-template-columns: 1fr 1fr; gap: 20px; }
        .chart-container { page-break-inside: avoid; }
`

// GenerateHTML 生成 PDF 导出用的完整 HTML 文档（病患资料表、九张趋势
// SVG、生理数值表）。所有用户输入文本在插入前都过 EscapeHTML——
// 这里产出的就是外部打印设施直接消费的"已消毒"字符串。
func GenerateHTML(session *models.AnesthesiaSession) string {
	info := session.PatientInfo
	hospital := formatters.EscapeHTML(info.HospitalName)
	patient := formatters.EscapeHTML(info.PatientName)
	caseNumber := formatters.EscapeHTML(info.CaseNumber)
	species := formatters.EscapeHTML(formatters.SpeciesLabel(info.Species))

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"UTF-8\">\n")
	fmt.Fprintf(&b, "<title>麻醉記錄 - %s</title>\n", patient)
	b.WriteString("<style>" + htmlStyle + "</style>\n</head>\n<body>\n")

	fmt.Fprintf(&b, "<h1>%s麻醉監測記錄表</h1>\n", hospital)

	b.WriteString("<h2>病患資料</h2>\n<table class=\"info-table\">\n")
	fmt.Fprintf(&b, "<tr><td>動物醫院</td><td>%s</td></tr>\n", hospital)
	fmt.Fprintf(&b, "<tr><td>病患名稱</td><td>%s</td></tr>\n", patient)
	fmt.Fprintf(&b, "<tr><td>病例編號</td><td>%s</td></tr>\n", caseNumber)
	fmt.Fprintf(&b, "<tr><td>動物種別</td><td>%s</td></tr>\n", species)
	fmt.Fprintf(&b, "<tr><td>體重</td><td>%s kg</td></tr>\n", formatValue(&info.Weight))
	fmt.Fprintf(&b, "<tr><td>開始時間</td><td>%s</td></tr>\n", formatters.FormatTimestamp(session.StartTime))
	if session.EndTime != "" {
		fmt.Fprintf(&b, "<tr><td>結束時間</td><td>%s</td></tr>\n", formatters.FormatTimestamp(session.EndTime))
		fmt.Fprintf(&b, "<tr><td>麻醉時長</td><td>%s</td></tr>\n", formatters.CalculateDuration(session.StartTime, session.EndTime))
	}
	b.WriteString("</table>\n")

	if len(session.Records) > 0 {
		b.WriteString("<h2>生理數值趨勢圖</h2>\n<div class=\"charts-grid\">\n")
		for _, spec := range svgCharts {
			b.WriteString(generateSVGChart(session.Records, spec))
		}
		b.WriteString("</div>\n")
	}

	b.WriteString("<h2>生理數值記錄</h2>\n<table class=\"data-table\">\n<thead>\n<tr>")
	for _, th := range []string{
		"時間", "收縮壓<br>(mmHg)", "舒張壓<br>(mmHg)", "平均壓<br>(mmHg)",
		"心跳<br>(bpm)", "呼吸<br>(次/分)", "血氧<br>(%)", "呼末二氧化碳<br>(mmHg)",
		"麻醉濃度<br>(%)", "體溫<br>(°C)", "備註",
	} {
		fmt.Fprintf(&b, "<th>%s</th>", th)
	}
	b.WriteString("</tr>\n</thead>\n<tbody>\n")

	for i := range session.Records {
		r := &session.Records[i]
		b.WriteString("<tr>")
		fmt.Fprintf(&b, "<td>%s</td>", formatters.FormatTime(r.Timestamp))
		for _, v := range []*float64{
			r.SystolicBP, r.DiastolicBP, r.MeanBP, r.HeartRate, r.RespiratoryRate,
			r.SpO2, r.EtCO2, r.AnesthesiaConc, r.Temperature,
		} {
			fmt.Fprintf(&b, "<td>%s</td>", htmlValue(v))
		}
		fmt.Fprintf(&b, "<td class=\"notes\">%s</td>", formatters.EscapeHTML(r.Notes))
		b.WriteString("</tr>\n")
	}

	b.WriteString("</tbody>\n</table>\n</body>\n</html>\n")
	return b.String()
}

// htmlValue HTML 表格里空值显示 "-"（CSV 里是空单元格，这里跟 App 端一致）
func htmlValue(value *float64) string {
	if value == nil {
		return "-"
	}
	return formatValue(value)
}

// generateSVGChart 渲染一个字段的折线趋势图。没有有效数据点的字段
// 整块省略。
func generateSVGChart(records []models.VitalRecord, spec svgChartSpec) string {
	cd := chart.ProcessChartData(records, spec.field)
	if cd == nil {
		return ""
	}

	const (
		width   = 600.0
		height  = 150.0
		padding = 40.0
	)
	chartWidth := width - padding*2
	chartHeight := height - padding*2

	valueRange := cd.MaxValue - cd.MinValue
	if valueRange == 0 {
		valueRange = 1
	}
	denom := float64(len(cd.Data) - 1)
	if denom == 0 {
		denom = 1
	}

	xAt := func(i int) float64 { return padding + float64(i)/denom*chartWidth }
	yAt := func(v float64) float64 {
		return padding + chartHeight - (v-cd.MinValue)/valueRange*chartHeight
	}

	var points []string
	for i, v := range cd.Data {
		points = append(points, fmt.Sprintf("%.1f,%.1f", xAt(i), yAt(v)))
	}

	var b strings.Builder
	b.WriteString("<div class=\"chart-container\">\n")
	fmt.Fprintf(&b, "<h3>%s (%s)</h3>\n", spec.title, spec.unit)
	fmt.Fprintf(&b, "<svg width=\"%.0f\" height=\"%.0f\" style=\"border: 1px solid #ddd; background: #fff;\">\n", width, height)
	fmt.Fprintf(&b, "<line x1=\"%.0f\" y1=\"%.0f\" x2=\"%.0f\" y2=\"%.0f\" stroke=\"#ccc\" />\n", padding, padding, padding, height-padding)
	fmt.Fprintf(&b, "<line x1=\"%.0f\" y1=\"%.0f\" x2=\"%.0f\" y2=\"%.0f\" stroke=\"#ccc\" />\n", padding, height-padding, width-padding, height-padding)
	fmt.Fprintf(&b, "<text x=\"10\" y=\"%.0f\" font-size=\"10\" fill=\"#666\">%.1f</text>\n", padding+5, cd.MaxValue)
	fmt.Fprintf(&b, "<text x=\"10\" y=\"%.0f\" font-size=\"10\" fill=\"#666\">%.1f</text>\n", height-padding, cd.MinValue)
	fmt.Fprintf(&b, "<polyline points=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"2\" />\n", strings.Join(points, " "), spec.color)
	for i, v := range cd.Data {
		fmt.Fprintf(&b, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"3\" fill=\"%s\" />\n", xAt(i), yAt(v), spec.color)
	}
	for i, label := range cd.Labels {
		if label == "" {
			continue
		}
		fmt.Fprintf(&b, "<text x=\"%.1f\" y=\"%.0f\" font-size=\"9\" fill=\"#666\" text-anchor=\"middle\">%s</text>\n", xAt(i), height-10, label)
	}
	b.WriteString("</svg>\n</div>\n")
	return b.String()
}
