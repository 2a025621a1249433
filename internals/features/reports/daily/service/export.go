package service

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	reportModel "chike_backend/internals/features/reports/daily/model"
)

// ExportRow 导出用的联查行（日报 + 提交人/部门名）。
type ExportRow struct {
	Report         reportModel.DailyReportModel
	UserName       string
	DepartmentName string
}

const exportSheet = "日报"

// BuildTeamReportWorkbook 生成团队日报 Excel。
func BuildTeamReportWorkbook(rows []ExportRow) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", exportSheet)

	headers := []string{"日期", "姓名", "部门", "状态", "提交时间", "表单内容"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return nil, err
		}
	}

	for i, row := range rows {
		submittedAt := ""
		if row.Report.SubmittedAt != nil {
			submittedAt = row.Report.SubmittedAt.Format("2006-01-02 15:04:05")
		}
		status := "草稿"
		if row.Report.Status == reportModel.StatusSubmitted {
			status = "已提交"
		}
		values := []interface{}{
			row.Report.ReportDate,
			row.UserName,
			row.DepartmentName,
			status,
			submittedAt,
			string(row.Report.FormData),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	// 标题行加粗
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		lastCol, _ := excelize.CoordinatesToCellName(len(headers), 1)
		_ = f.SetCellStyle(exportSheet, "A1", lastCol, style)
	}

	return f, nil
}

// ExportFileName 附件名：门店名 + 日期范围。
func ExportFileName(storeName, from, to string) string {
	return fmt.Sprintf("%s_日报_%s_%s.xlsx", storeName, from, to)
}
