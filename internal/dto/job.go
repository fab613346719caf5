package dto

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/tjmanoj/gce-placify/internal/model"
)

// ── 职位模块 DTO ──

// JobRequest 创建/编辑职位请求
// 数组字段兼容两种形态：原生 JSON 数组或逗号分隔字符串（FlexStringList / FlexIntList）
type JobRequest struct {
	OrganisationTitle      string         `json:"organisation_title"`
	OrganisationLogoURL    string         `json:"organisation_logo_url"`
	JobTitle               string         `json:"job_title"`
	Locations              string         `json:"locations"`
	MinCTC                 int64          `json:"min_ctc"`
	MaxCTC                 int64          `json:"max_ctc"`
	NoOfPositionsAvailable int            `json:"no_of_positions_available"`
	SkillsRequired         FlexStringList `json:"skills_required"`
	JobDescription         string         `json:"job_description"`
	EligibilityCriteria    string         `json:"eligibility_criteria"`
	JobState               string         `json:"job_state"`
	JobType                string         `json:"job_type"`
	ApplyBy                string         `json:"apply_by"`
	JobActiveStatus        *bool          `json:"job_active_status"`
	MinCGPA                float64        `json:"min_cgpa"`
	MaxHistoryOfArrear     int            `json:"max_history_of_arrear"`
	MaxStandingArrear      int            `json:"max_standing_arrear"`
	AllowedGraduationYears FlexIntList    `json:"allowed_graduation_years"`
	AllowedDepartments     FlexStringList `json:"allowed_departments"`
}

// JobListRequest 职位分页请求
type JobListRequest struct {
	Page int `form:"page" binding:"omitempty,min=1"`
}

// GetPage 获取页码（含默认值）
func (r *JobListRequest) GetPage() int {
	if r.Page <= 0 {
		return 1
	}
	return r.Page
}

// JobListResponse 职位分页响应
type JobListResponse struct {
	Jobs        []model.Job `json:"jobs"`
	CurrentPage int         `json:"current_page"`
	TotalPages  int         `json:"total_pages"`
}

// ── 宽松数组类型 ──

// FlexStringList 字符串数组，JSON 反序列化同时接受
// ["a","b"] 与 "a, b" 两种形态，逗号分隔时去除首尾空白
type FlexStringList []string

// UnmarshalJSON 实现 json.Unmarshaler
func (l *FlexStringList) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*l = nil
		return nil
	}

	if strings.HasPrefix(s, "[") {
		var arr []string
		if err := json.Unmarshal(data, &arr); err != nil {
			return err
		}
		*l = arr
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*l = splitTrim(raw)
	return nil
}

// FlexIntList 整数数组，JSON 反序列化同时接受
// [2025,2026] 与 "2025, 2026" 两种形态
type FlexIntList []int64

// UnmarshalJSON 实现 json.Unmarshaler
func (l *FlexIntList) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*l = nil
		return nil
	}

	if strings.HasPrefix(s, "[") {
		var arr []int64
		if err := json.Unmarshal(data, &arr); err != nil {
			return err
		}
		*l = arr
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	parts := splitTrim(raw)
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return err
		}
		out = append(out, n)
	}
	*l = out
	return nil
}

func splitTrim(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
