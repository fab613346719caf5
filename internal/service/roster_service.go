package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tjmanoj/gce-placify/internal/dto"
	"github.com/tjmanoj/gce-placify/internal/repository"
)

// ── 花名册模块业务错误 ──

const maxRosterRows = 5000

var (
	ErrRosterNoData       = errors.New("Excel 文件无数据行（第一行为表头）")
	ErrRosterBadHeader    = errors.New("Excel 表头缺少 roll_number 列")
	ErrRosterTooManyRows  = fmt.Errorf("数据行数超过上限 %d 行", maxRosterRows)
	ErrNoApplicants       = errors.New("该职位暂无申请记录")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// RosterService 学生花名册导入与申请表导出
type RosterService interface {
	// ParseRosterFile 解析花名册 Excel，返回按学号定位的更新行
	ParseRosterFile(reader io.Reader) ([]repository.RosterRow, error)
	// ImportRoster 按学号更新已有学生档案。
	// 学号不存在的行静默跳过，不创建新账号
	ImportRoster(ctx context.Context, rows []repository.RosterRow) (*dto.ImportRosterResponse, error)
	// ExportApplicants 导出职位的全部申请（任意状态）联查学生档案
	ExportApplicants(ctx context.Context, jobID uint) (*bytes.Buffer, string, error)
}

type rosterService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewRosterService(repo *repository.Repository, logger *zap.Logger) RosterService {
	return &rosterService{repo: repo, logger: logger}
}

func (s *rosterService) ParseRosterFile(reader io.Reader) ([]repository.RosterRow, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("无法解析Excel文件: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	excelRows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("读取工作表失败: %w", err)
	}

	if len(excelRows) < 2 {
		return nil, ErrRosterNoData
	}
	if len(excelRows)-1 > maxRosterRows {
		return nil, ErrRosterTooManyRows
	}

	// 解析表头（支持灵活列序）
	colIndex := parseRosterHeader(excelRows[0])
	if colIndex["roll_number"] < 0 {
		return nil, ErrRosterBadHeader
	}

	var rows []repository.RosterRow
	for i := 1; i < len(excelRows); i++ {
		raw := excelRows[i]
		cell := func(key string) string {
			if idx := colIndex[key]; idx >= 0 && idx < len(raw) {
				return strings.TrimSpace(raw[idx])
			}
			return ""
		}

		row := repository.RosterRow{
			RollNumber:  cell("roll_number"),
			Name:        cell("name"),
			Email:       cell("email"),
			PhoneNumber: cell("phone_number"),
			Department:  cell("department"),
		}
		// 跳过无学号的行
		if row.RollNumber == "" {
			continue
		}

		// 空白或无法解析的数值单元格置 nil，导入时保持原值
		row.GraduationYear = parseIntCell(cell("graduation_year"))
		row.CGPA = parseFloatCell(cell("cgpa"))
		row.HistoryOfArrear = parseIntCell(cell("history_of_arrear"))
		row.StandingArrear = parseIntCell(cell("standing_arrear"))

		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, ErrRosterNoData
	}
	return rows, nil
}

func (s *rosterService) ImportRoster(ctx context.Context, rows []repository.RosterRow) (*dto.ImportRosterResponse, error) {
	updated := 0
	for i := range rows {
		affected, err := s.repo.User.UpdateByRollNumber(ctx, &rows[i])
		if err != nil {
			s.logger.Error("花名册行更新失败",
				zap.String("roll_number", rows[i].RollNumber), zap.Error(err))
			return nil, err
		}
		if affected > 0 {
			updated++
		}
	}

	s.logger.Info("花名册导入完成",
		zap.Int("total", len(rows)), zap.Int("updated", updated))
	return &dto.ImportRosterResponse{UpdatedCount: updated}, nil
}

// ═══════════════════════════════════════════════════════════
// ExportApplicants — 导出申请表为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：单 Sheet，一行一条申请（任意状态）联查学生档案。
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *rosterService) ExportApplicants(ctx context.Context, jobID uint) (*bytes.Buffer, string, error) {
	job, err := s.repo.Job.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrJobNotFound
		}
		s.logger.Error("查询职位失败", zap.Uint("job_id", jobID), zap.Error(err))
		return nil, "", err
	}

	rows, err := s.repo.Application.ListForExport(ctx, jobID)
	if err != nil {
		s.logger.Error("查询申请导出数据失败", zap.Uint("job_id", jobID), zap.Error(err))
		return nil, "", err
	}
	if len(rows) == 0 {
		return nil, "", ErrNoApplicants
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Applicants"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headers := []string{
		"Roll Number", "Name", "Email", "Phone Number",
		"CGPA", "Graduation Year", "Resume URL", "Skills",
		"Status", "Applied At",
	}
	widths := []float64{14, 20, 28, 16, 8, 14, 36, 28, 12, 22}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, fmt.Sprintf("%s1", col), h)
		f.SetColWidth(sheetName, col, col, widths[i])
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s1", lastCol), headerStyle)

	for i, row := range rows {
		r := i + 2
		values := []interface{}{
			row.RollNumber, row.Name, row.Email, row.PhoneNumber,
			row.CGPA, row.GraduationYear, row.ResumeURL, row.Skills,
			row.Status, row.AppliedAt.Format(time.RFC3339),
		}
		for j, v := range values {
			col, _ := excelize.ColumnNumberToName(j + 1)
			f.SetCellValue(sheetName, fmt.Sprintf("%s%d", col, r), v)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("applicants_job_%d_%s.xlsx", job.ID, sanitizeFilename(job.JobTitle))
	return buf, filename, nil
}

// ── 辅助函数 ──

// parseRosterHeader 解析花名册表头，返回列名 -> 列索引映射
func parseRosterHeader(header []string) map[string]int {
	idx := map[string]int{
		"roll_number":       -1,
		"name":              -1,
		"email":             -1,
		"phone_number":      -1,
		"department":        -1,
		"graduation_year":   -1,
		"cgpa":              -1,
		"history_of_arrear": -1,
		"standing_arrear":   -1,
	}
	for i, h := range header {
		lower := strings.ToLower(strings.TrimSpace(h))
		lower = strings.ReplaceAll(lower, " ", "_")
		switch lower {
		case "roll_number", "rollnumber", "roll_no":
			idx["roll_number"] = i
		case "name", "student_name":
			idx["name"] = i
		case "email":
			idx["email"] = i
		case "phone_number", "phone":
			idx["phone_number"] = i
		case "department", "dept":
			idx["department"] = i
		case "graduation_year", "batch":
			idx["graduation_year"] = i
		case "cgpa":
			idx["cgpa"] = i
		case "history_of_arrear", "history_arrears":
			idx["history_of_arrear"] = i
		case "standing_arrear", "standing_arrears":
			idx["standing_arrear"] = i
		}
	}
	return idx
}

func parseIntCell(s string) *int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

func parseFloatCell(s string) *float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// sanitizeFilename 替换文件名中不安全的字符
func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-")
	return replacer.Replace(name)
}
