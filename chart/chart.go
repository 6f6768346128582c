package chart

import (
	"fmt"
	"math"

	"github.com/sensa-code/anesthesiamonitor/formatters"
	"github.com/sensa-code/anesthesiamonitor/models"
)

// maxLabels 横轴最多显示的时间标签数，超过的点留空避免互相挤压
const maxLabels = 6

// defaultPadding 全部数值相同时（range 为 0）的纵轴留白，
// 避免图表刻度高度退化为 0
const defaultPadding = 10

// ChartData 一个字段的图表投影，按需现算，不落库。
type ChartData struct {
	Data     []float64 `json:"data"`
	Labels   []string  `json:"labels"`
	MinValue float64   `json:"minValue"`
	MaxValue float64   `json:"maxValue"`
	Padding  float64   `json:"padding"`
}

// fieldAccessors 图表字段名 -> 记录字段。与 VitalRanges 的键一致。
var fieldAccessors = map[string]func(*models.VitalRecord) *float64{
	"systolicBP":      func(r *models.VitalRecord) *float64 { return r.SystolicBP },
	"diastolicBP":     func(r *models.VitalRecord) *float64 { return r.DiastolicBP },
	"meanBP":          func(r *models.VitalRecord) *float64 { return r.MeanBP },
	"heartRate":       func(r *models.VitalRecord) *float64 { return r.HeartRate },
	"respiratoryRate": func(r *models.VitalRecord) *float64 { return r.RespiratoryRate },
	"spO2":            func(r *models.VitalRecord) *float64 { return r.SpO2 },
	"etCO2":           func(r *models.VitalRecord) *float64 { return r.EtCO2 },
	"anesthesiaConc":  func(r *models.VitalRecord) *float64 { return r.AnesthesiaConc },
	"temperature":     func(r *models.VitalRecord) *float64 { return r.Temperature },
}

// FieldValue 按字段名取记录里的测量值，未知字段返回 nil。
func FieldValue(record *models.VitalRecord, field string) *float64 {
	accessor, ok := fieldAccessors[field]
	if !ok {
		return nil
	}
	return accessor(record)
}

// ProcessChartData 从记录序列提取一个字段的图表数据。
// nil、NaN、±Inf 一律过滤（真实的 0 保留），没有任何有效点时返回 nil，
// 调用方据此渲染"无数据"状态而不是让图表崩掉。
func ProcessChartData(records []models.VitalRecord, field string) *ChartData {
	type point struct {
		value     float64
		timestamp string
	}

	var points []point
	for i := range records {
		v := FieldValue(&records[i], field)
		if v == nil {
			continue
		}
		if math.IsNaN(*v) || math.IsInf(*v, 0) {
			continue
		}
		points = append(points, point{value: *v, timestamp: records[i].Timestamp})
	}

	if len(points) == 0 {
		return nil
	}

	n := len(points)
	data := make([]float64, n)
	labels := make([]string, n)
	step := int(math.Ceil(float64(n) / maxLabels))
	for i, p := range points {
		data[i] = p.value
		if n <= maxLabels || i%step == 0 {
			labels[i] = timeLabel(p.timestamp)
		}
	}

	minValue := data[0]
	maxValue := data[0]
	for _, v := range data[1:] {
		if v < minValue {
			minValue = v
		}
		if v > maxValue {
			maxValue = v
		}
	}

	padding := (maxValue - minValue) * 0.1
	if padding == 0 {
		padding = defaultPadding
	}

	return &ChartData{
		Data:     data,
		Labels:   labels,
		MinValue: minValue,
		MaxValue: maxValue,
		Padding:  padding,
	}
}

// timeLabel 横轴时间标签（小时不补零，分钟补零，同 App 端）。
// 时间戳解析失败就留空，标签缺一个不影响画图。
func timeLabel(timestamp string) string {
	t, ok := formatters.ParseTimestamp(timestamp)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%d:%02d", t.Hour(), t.Minute())
}
