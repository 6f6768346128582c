package export

import (
	"fmt"
	"io"
	"time"

	"github.com/sensa-code/anesthesiamonitor/formatters"
	"github.com/sensa-code/anesthesiamonitor/models"
)

// utf8BOM 写入文件时的 UTF-8 BOM 前缀，Excel 打开含中文的 CSV 需要它
const utf8BOM = "\uFEFF"

// FileName 导出文件名：anesthesia_<病例编号>_<毫秒时间戳>.<ext>。
// 病例编号是用户输入，必须消毒后才能进文件名。
func FileName(session *models.AnesthesiaSession, ext string) string {
	caseNumber := formatters.SanitizeFileName(session.PatientInfo.CaseNumber)
	return fmt.Sprintf("anesthesia_%s_%d.%s", caseNumber, time.Now().UnixMilli(), ext)
}

// WriteCSV 把 BOM + CSV 报表写入 w（通常是即将分享的文件）。
func WriteCSV(w io.Writer, session *models.AnesthesiaSession) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}
	if _, err := io.WriteString(w, GenerateCSV(session)); err != nil {
		return fmt.Errorf("write csv body: %w", err)
	}
	return nil
}
