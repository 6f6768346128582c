package models

import "github.com/google/uuid"

// 注意：json tag 使用 camelCase，与 App 端（AsyncStorage/localStorage）既有
// session blob 格式对齐，不能改成 snake_case。

// Species 动物种别代码（闭合枚举，但存储层必须容忍未知值）
type Species = string

const (
	SpeciesDog   Species = "dog"
	SpeciesCat   Species = "cat"
	SpeciesOther Species = "other"
)

// PatientInfo 病患基本资料
type PatientInfo struct {
	HospitalName string  `json:"hospitalName"`
	PatientName  string  `json:"patientName"`
	CaseNumber   string  `json:"caseNumber"`
	Weight       float64 `json:"weight"` // kg
	Species      Species `json:"species"`
}

// VitalRecord 一条生理数值记录。九个测量值全部可空（nil = 未测量），
// 非空时必须是有限实数（NaN/±Inf 不允许入库）。
// Notes 是自由文本，可能包含对 CSV/HTML 有害的字符；
// 清洗只发生在导出边界，存储时保留原文。
type VitalRecord struct {
	Timestamp       string   `json:"timestamp"`       // ISO-8601
	SystolicBP      *float64 `json:"systolicBP"`      // 收缩压 Sys (mmHg)
	DiastolicBP     *float64 `json:"diastolicBP"`     // 舒张压 Dia (mmHg)
	MeanBP          *float64 `json:"meanBP"`          // 平均压 MAP (mmHg)
	HeartRate       *float64 `json:"heartRate"`       // 心跳 HR (bpm)
	RespiratoryRate *float64 `json:"respiratoryRate"` // 呼吸 RR (次/分)
	SpO2            *float64 `json:"spO2"`            // 血氧 SpO2 (%)
	EtCO2           *float64 `json:"etCO2"`           // 呼末二氧化碳 EtCO2 (mmHg)
	AnesthesiaConc  *float64 `json:"anesthesiaConc"`  // 麻醉浓度 MAC (%)
	Temperature     *float64 `json:"temperature"`     // 体温 BT (°C)
	Notes           string   `json:"notes"`           // 备注 Others
}

// AnesthesiaSession 一次麻醉监测 session。
// Records 保持插入顺序（批量补录允许时间乱序）。
// EndTime 为空字符串表示监测尚未结束。
type AnesthesiaSession struct {
	ID          string        `json:"id"`
	PatientInfo PatientInfo   `json:"patientInfo"`
	StartTime   string        `json:"startTime"`
	EndTime     string        `json:"endTime,omitempty"`
	Records     []VitalRecord `json:"records"`
}

// Finished 是否已设置结束时间
func (s *AnesthesiaSession) Finished() bool {
	return s.EndTime != ""
}

// NewSessionID 生成 session ID（保留 App 端的 "session_" 前缀约定）
func NewSessionID() string {
	return "session_" + uuid.NewString()
}

// Float 返回 *float64 字段的便捷构造（测试与批量补录用）
func Float(v float64) *float64 {
	return &v
}
