package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/LukasdeSouza/login-corp-nexus-backend/internal/model"
	"github.com/LukasdeSouza/login-corp-nexus-backend/internal/repository"
)

func setupTestExportService() (ExportService, *mockNotificationRepo) {
	readRepo := newMockNotificationReadRepo()
	notifRepo := newMockNotificationRepo(readRepo)
	repo := &repository.Repository{
		Company:          newMockCompanyRepo(),
		User:             newMockUserRepo(),
		Notification:     notifRepo,
		NotificationRead: readRepo,
	}
	logger := zap.NewNop()
	notificationSvc := NewNotificationService(repo, logger)
	return NewExportService(notificationSvc, logger), notifRepo
}

func TestExportService_ExportNotificationStats(t *testing.T) {
	svc, notifRepo := setupTestExportService()

	base := time.Now().Add(-time.Hour)
	seedNotification(notifRepo, "n1", model.AudienceAll{}, base, withType(model.TypeInfo))
	seedNotification(notifRepo, "n2", model.AudienceAll{}, base.Add(time.Minute), withType(model.TypeWarning), withPriority(model.PriorityUrgent))

	buf, filename, err := svc.ExportNotificationStats(context.Background())
	if err != nil {
		t.Fatalf("导出应成功: %v", err)
	}
	if !strings.HasPrefix(filename, "notification_stats_") || !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("文件名不符: %s", filename)
	}

	// 回读 Excel 校验结构
	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("生成的 Excel 应可打开: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("通知统计")
	if err != nil {
		t.Fatalf("读取 Sheet 失败: %v", err)
	}
	if len(rows) == 0 || rows[0][0] != "通知统计报表" {
		t.Errorf("标题行不符: %v", rows)
	}

	var foundTotal, foundHeader bool
	for _, row := range rows {
		if len(row) >= 2 && row[0] == "通知总数" && row[1] == "2" {
			foundTotal = true
		}
		if len(row) >= 4 && row[0] == "类型" && row[3] == "已读率(%)" {
			foundHeader = true
		}
	}
	if !foundTotal {
		t.Error("概览区应包含通知总数")
	}
	if !foundHeader {
		t.Error("应包含明细表头")
	}
}

func TestExportService_ExportNotificationStats_Empty(t *testing.T) {
	svc, _ := setupTestExportService()

	// 空库导出也应产出合法工作簿
	buf, _, err := svc.ExportNotificationStats(context.Background())
	if err != nil {
		t.Fatalf("空库导出应成功: %v", err)
	}
	if _, err := excelize.OpenReader(bytes.NewReader(buf.Bytes())); err != nil {
		t.Errorf("生成的 Excel 应可打开: %v", err)
	}
}
