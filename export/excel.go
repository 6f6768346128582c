package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/sensa-code/anesthesiamonitor/formatters"
	"github.com/sensa-code/anesthesiamonitor/models"
)

// vitalsExcelHeader Excel 记录表表头（与 CSV 的 11 列一一对应）
var vitalsExcelHeader = []string{
	"時間",
	"收縮壓Sys (mmHg)",
	"舒張壓Dia (mmHg)",
	"平均壓MAP (mmHg)",
	"心跳HR (bpm)",
	"呼吸RR (次/分)",
	"血氧SpO2 (%)",
	"呼末二氧化碳EtCO2 (mmHg)",
	"麻醉濃度MAC (%)",
	"體溫BT (°C)",
	"備註Others",
}

// GenerateXLSX 生成 session 的 Excel 工作簿。
// 文本单元格一律用 SetCellStr 写入（字符串单元格不会被当公式执行，
// 数字列写原生数值），不需要 CSV 那套前缀防御。
func GenerateXLSX(session *models.AnesthesiaSession) ([]byte, error) {
	f := excelize.NewFile()
	// 注意：出错路径才 Close，正常路径 WriteToBuffer 需要文件保持打开

	sheetName := "麻醉記錄"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	// 病患资料块
	info := session.PatientInfo
	infoRows := [][2]string{
		{"動物醫院", info.HospitalName},
		{"病患名稱", info.PatientName},
		{"病例編號", info.CaseNumber},
		{"體重 (kg)", formatValue(&info.Weight)},
		{"動物種別", formatters.SpeciesLabel(info.Species)},
		{"開始時間", formatters.FormatTimestamp(session.StartTime)},
	}
	if session.EndTime != "" {
		infoRows = append(infoRows,
			[2]string{"結束時間", formatters.FormatTimestamp(session.EndTime)},
			[2]string{"麻醉時長", formatters.CalculateDuration(session.StartTime, session.EndTime)},
		)
	}
	for i, pair := range infoRows {
		row := i + 1
		if err := f.SetCellStr(sheetName, cellName(1, row), pair[0]); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set info cell: %w", err)
		}
		if err := f.SetCellStr(sheetName, cellName(2, row), pair[1]); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set info cell: %w", err)
		}
	}

	// 表头样式
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	headerRow := len(infoRows) + 2
	for col, header := range vitalsExcelHeader {
		cell := cellName(col+1, headerRow)
		if err := f.SetCellStr(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	// 记录行
	for i := range session.Records {
		r := &session.Records[i]
		row := headerRow + 1 + i
		if err := f.SetCellStr(sheetName, cellName(1, row), formatters.FormatTimestamp(r.Timestamp)); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set record cell: %w", err)
		}
		values := []*float64{
			r.SystolicBP, r.DiastolicBP, r.MeanBP, r.HeartRate, r.RespiratoryRate,
			r.SpO2, r.EtCO2, r.AnesthesiaConc, r.Temperature,
		}
		for col, v := range values {
			if v == nil {
				continue
			}
			if err := f.SetCellValue(sheetName, cellName(col+2, row), *v); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set record cell: %w", err)
			}
		}
		if err := f.SetCellStr(sheetName, cellName(11, row), r.Notes); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set notes cell: %w", err)
		}
	}

	// 时间和备注列放宽一点
	for _, cw := range []struct {
		col   string
		width float64
	}{{"A", 20}, {"K", 40}} {
		if err := f.SetColWidth(sheetName, cw.col, cw.col, cw.width); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// cellName 列行号转 A1 形式。列行号都由本包常量推出，转换不会失败。
func cellName(col, row int) string {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	return cell
}
