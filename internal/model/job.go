package model

import (
	"time"

	"github.com/lib/pq"
)

// 职位状态与类型常量
const (
	JobStateOpen       = "OPEN"
	JobTypeFullTime    = "FULL_TIME"
	JobTypeInternship  = "INTERNSHIP"
	JobTypePartTime    = "PART_TIME"
)

// Job 职位表 — 对应 jobs
// min_cgpa / max_*_arrear / allowed_* 为资格门槛字段，资格判定见 ApplicationService
type Job struct {
	ID                     uint           `gorm:"primaryKey"                                    json:"id"`
	OrganisationTitle      string         `gorm:"type:varchar(200);not null"                    json:"organisation_title"`
	OrganisationLogoURL    string         `gorm:"type:text;not null;default:''"                 json:"organisation_logo_url"`
	JobTitle               string         `gorm:"type:varchar(200);not null"                    json:"job_title"`
	Locations              string         `gorm:"type:text;not null;default:''"                 json:"locations"`
	MinCTC                 int64          `gorm:"not null;default:0"                            json:"min_ctc"`
	MaxCTC                 int64          `gorm:"not null;default:0"                            json:"max_ctc"`
	NoOfPositionsAvailable int            `gorm:"not null;default:1"                            json:"no_of_positions_available"`
	SkillsRequired         pq.StringArray `gorm:"type:text[];not null;default:'{}'"             json:"skills_required"`
	JobDescription         string         `gorm:"type:text;not null;default:''"                 json:"job_description"`
	EligibilityCriteria    string         `gorm:"type:text;not null;default:''"                 json:"eligibility_criteria"`
	JobState               string         `gorm:"type:varchar(20);not null;default:'OPEN'"      json:"job_state"`
	JobType                string         `gorm:"type:varchar(20);not null;default:'FULL_TIME'" json:"job_type"`
	ApplyBy                string         `gorm:"type:varchar(10);not null"                     json:"apply_by"`
	JobActiveStatus        bool           `gorm:"not null;default:true;index"                   json:"job_active_status"`
	MinCGPA                float64        `gorm:"type:numeric(4,2);not null;default:0"          json:"min_cgpa"`
	MaxHistoryOfArrear     int            `gorm:"not null;default:0"                            json:"max_history_of_arrear"`
	MaxStandingArrear      int            `gorm:"not null;default:0"                            json:"max_standing_arrear"`
	AllowedGraduationYears pq.Int64Array  `gorm:"type:integer[];not null;default:'{}'"          json:"allowed_graduation_years"`
	AllowedDepartments     pq.StringArray `gorm:"type:text[];not null;default:'{}'"             json:"allowed_departments"`
	CreatedAt              time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"            json:"created_at"`
	UpdatedAt              time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"            json:"updated_at"`
}

// TableName 指定表名
func (Job) TableName() string { return "jobs" }
