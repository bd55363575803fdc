package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 一期仅实现通知统计导出为 Excel (.xlsx)
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
//   - Excel 格式：概览区 + 按类型的送达/已读明细表
type ExportService interface {
	// ExportNotificationStats 导出通知统计为 Excel
	ExportNotificationStats(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	notification NotificationService
	logger       *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(notification NotificationService, logger *zap.Logger) ExportService {
	return &exportService{notification: notification, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportNotificationStats — 导出通知统计为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 概览区：总数 / 激活 / 紧急 / 已过期 / 待调度
//   - 明细表：| 类型 | 送达数 | 已读数 | 已读率(%) |
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportNotificationStats(ctx context.Context) (*bytes.Buffer, string, error) {
	// 1. 复用统计查询
	stats, err := s.notification.Stats(ctx)
	if err != nil {
		return nil, "", err
	}

	// 2. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "通知统计"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	f.DeleteSheet("Sheet1")

	// 设置列宽
	f.SetColWidth(sheetName, "A", "A", 20)
	f.SetColWidth(sheetName, "B", "D", 14)

	// 样式
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", "通知统计报表")
	f.MergeCell(sheetName, "A1", "D1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 概览区
	overviewRows := []struct {
		label string
		value int64
	}{
		{"通知总数", stats.Overview.Total},
		{"激活中", stats.Overview.Active},
		{"紧急", stats.Overview.Urgent},
		{"已过期", stats.Overview.Expired},
		{"待调度", stats.Overview.Scheduled},
	}
	row := 2
	for _, ov := range overviewRows {
		f.SetCellValue(sheetName, cell("A", row), ov.label)
		f.SetCellValue(sheetName, cell("B", row), ov.value)
		row++
	}

	// 明细表头
	row++
	f.SetCellValue(sheetName, cell("A", row), "类型")
	f.SetCellValue(sheetName, cell("B", row), "送达数")
	f.SetCellValue(sheetName, cell("C", row), "已读数")
	f.SetCellValue(sheetName, cell("D", row), "已读率(%)")
	f.SetCellStyle(sheetName, cell("A", row), cell("D", row), headerStyle)

	// 明细数据行
	row++
	for _, ts := range stats.ByType {
		f.SetCellValue(sheetName, cell("A", row), ts.Type)
		f.SetCellValue(sheetName, cell("B", row), ts.Sent)
		f.SetCellValue(sheetName, cell("C", row), ts.Read)
		f.SetCellValue(sheetName, cell("D", row), ts.ReadPercentage)
		row++
	}

	// 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("notification_stats_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

// ── 辅助函数 ──

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
