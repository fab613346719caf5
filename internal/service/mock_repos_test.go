package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/tjmanoj/gce-placify/internal/model"
	"github.com/tjmanoj/gce-placify/internal/repository"
	"github.com/tjmanoj/gce-placify/pkg/redis"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users  map[uint]*model.User
	nextID uint
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uint]*model.User), nextID: 1}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.ID == 0 {
		user.ID = m.nextID
		m.nextID++
	} else if user.ID >= m.nextID {
		m.nextID = user.ID + 1
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uint) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) PromoteToAdmin(_ context.Context, id uint) (int64, error) {
	u, ok := m.users[id]
	if !ok || u.Role == model.RoleAdmin {
		return 0, nil
	}
	u.Role = model.RoleAdmin
	return 1, nil
}

func (m *mockUserRepo) DemoteToStudent(_ context.Context, id uint) (int64, error) {
	u, ok := m.users[id]
	if !ok || u.Role != model.RoleAdmin {
		return 0, nil
	}
	u.Role = model.RoleStudent
	return 1, nil
}

func (m *mockUserRepo) UpdateStudentProfile(_ context.Context, user *model.User) (int64, error) {
	u, ok := m.users[user.ID]
	if !ok || u.Role != model.RoleStudent {
		return 0, nil
	}
	role := u.Role
	hash := u.PasswordHash
	*u = *user
	u.Role = role
	u.PasswordHash = hash
	return 1, nil
}

func (m *mockUserRepo) UpdateByRollNumber(_ context.Context, row *repository.RosterRow) (int64, error) {
	var affected int64
	for _, u := range m.users {
		if u.RollNumber != row.RollNumber {
			continue
		}
		if row.Name != "" {
			u.Name = row.Name
		}
		if row.Email != "" {
			u.Email = row.Email
		}
		if row.PhoneNumber != "" {
			u.PhoneNumber = row.PhoneNumber
		}
		if row.Department != "" {
			u.Department = row.Department
		}
		if row.GraduationYear != nil {
			u.GraduationYear = *row.GraduationYear
		}
		if row.CGPA != nil {
			u.CGPA = *row.CGPA
		}
		if row.HistoryOfArrear != nil {
			u.HistoryOfArrear = *row.HistoryOfArrear
		}
		if row.StandingArrear != nil {
			u.StandingArrear = *row.StandingArrear
		}
		affected++
	}
	return affected, nil
}

func (m *mockUserRepo) ListStudentEmails(_ context.Context) ([]string, error) {
	var emails []string
	for _, u := range m.users {
		if u.Role == model.RoleStudent {
			emails = append(emails, u.Email)
		}
	}
	sort.Strings(emails)
	return emails, nil
}

// ── Mock JobRepository ──

type mockJobRepo struct {
	jobs   map[uint]*model.Job
	nextID uint
}

func newMockJobRepo() *mockJobRepo {
	return &mockJobRepo{jobs: make(map[uint]*model.Job), nextID: 1}
}

func (m *mockJobRepo) Create(_ context.Context, job *model.Job) error {
	if job.ID == 0 {
		job.ID = m.nextID
		m.nextID++
	} else if job.ID >= m.nextID {
		m.nextID = job.ID + 1
	}
	m.jobs[job.ID] = job
	return nil
}

func (m *mockJobRepo) GetByID(_ context.Context, id uint) (*model.Job, error) {
	if j, ok := m.jobs[id]; ok {
		return j, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockJobRepo) ListActive(_ context.Context, offset, limit int) ([]model.Job, int64, error) {
	var active []model.Job
	for _, j := range m.jobs {
		if j.JobActiveStatus {
			active = append(active, *j)
		}
	}
	// id 倒序
	sort.Slice(active, func(i, j int) bool { return active[i].ID > active[j].ID })
	total := int64(len(active))
	if offset >= len(active) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(active) {
		end = len(active)
	}
	return active[offset:end], total, nil
}

func (m *mockJobRepo) Update(_ context.Context, job *model.Job) error {
	m.jobs[job.ID] = job
	return nil
}

func (m *mockJobRepo) Delete(_ context.Context, id uint) (int64, error) {
	if _, ok := m.jobs[id]; !ok {
		return 0, nil
	}
	delete(m.jobs, id)
	return 1, nil
}

// ── Mock ApplicationRepository ──

type mockApplicationRepo struct {
	users  *mockUserRepo // 联查学生字段用
	apps   map[string]*model.JobApplication
	nextID uint
}

func newMockApplicationRepo(users *mockUserRepo) *mockApplicationRepo {
	return &mockApplicationRepo{
		users: users,
		apps:  make(map[string]*model.JobApplication),
	}
}

func appKey(jobID, studentID uint) string {
	return fmt.Sprintf("%d:%d", jobID, studentID)
}

func (m *mockApplicationRepo) Create(_ context.Context, app *model.JobApplication) error {
	key := appKey(app.JobID, app.StudentID)
	if _, ok := m.apps[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	m.nextID++
	app.ID = m.nextID
	if app.AppliedAt.IsZero() {
		app.AppliedAt = time.Now()
	}
	m.apps[key] = app
	return nil
}

func (m *mockApplicationRepo) Exists(_ context.Context, jobID, studentID uint) (bool, error) {
	_, ok := m.apps[appKey(jobID, studentID)]
	return ok, nil
}

func (m *mockApplicationRepo) Approve(_ context.Context, jobID, studentID uint) (int64, error) {
	app, ok := m.apps[appKey(jobID, studentID)]
	if !ok {
		return 0, nil
	}
	app.Status = model.ApplicationApproved
	return 1, nil
}

func (m *mockApplicationRepo) ApproveAllPending(_ context.Context, jobID uint) ([]model.JobApplication, error) {
	var updated []model.JobApplication
	for _, app := range m.apps {
		if app.JobID == jobID && app.Status == model.ApplicationPending {
			app.Status = model.ApplicationApproved
			updated = append(updated, *app)
		}
	}
	sort.Slice(updated, func(i, j int) bool { return updated[i].ID < updated[j].ID })
	return updated, nil
}

func (m *mockApplicationRepo) Delete(_ context.Context, jobID, studentID uint) (int64, error) {
	key := appKey(jobID, studentID)
	if _, ok := m.apps[key]; !ok {
		return 0, nil
	}
	delete(m.apps, key)
	return 1, nil
}

func (m *mockApplicationRepo) ListByJobStatus(_ context.Context, jobID uint, status string) ([]repository.ApplicationStudentRow, error) {
	var rows []repository.ApplicationStudentRow
	for _, app := range m.apps {
		if app.JobID != jobID || app.Status != status {
			continue
		}
		row := repository.ApplicationStudentRow{
			ApplicationID: app.ID,
			JobID:         app.JobID,
			StudentID:     app.StudentID,
			Status:        app.Status,
			AppliedAt:     app.AppliedAt,
		}
		if u, ok := m.users.users[app.StudentID]; ok {
			row.StudentName = u.Name
			row.StudentEmail = u.Email
			row.StudentRollNumber = u.RollNumber
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].AppliedAt.Before(rows[j].AppliedAt) })
	return rows, nil
}

func (m *mockApplicationRepo) ListForExport(_ context.Context, jobID uint) ([]repository.ApplicantExportRow, error) {
	var rows []repository.ApplicantExportRow
	for _, app := range m.apps {
		if app.JobID != jobID {
			continue
		}
		row := repository.ApplicantExportRow{
			Status:    app.Status,
			AppliedAt: app.AppliedAt,
		}
		if u, ok := m.users.users[app.StudentID]; ok {
			row.RollNumber = u.RollNumber
			row.Name = u.Name
			row.Email = u.Email
			row.PhoneNumber = u.PhoneNumber
			row.CGPA = u.CGPA
			row.GraduationYear = u.GraduationYear
			row.ResumeURL = u.ResumeURL
			row.Skills = strings.Join(u.Skills, ", ")
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].AppliedAt.Before(rows[j].AppliedAt) })
	return rows, nil
}

// ── Mock SubscriptionRepository ──

type mockSubscriptionRepo struct {
	subs map[uint]*model.PushSubscription
}

func newMockSubscriptionRepo() *mockSubscriptionRepo {
	return &mockSubscriptionRepo{subs: make(map[uint]*model.PushSubscription)}
}

func (m *mockSubscriptionRepo) Upsert(_ context.Context, sub *model.PushSubscription) error {
	m.subs[sub.UserID] = sub
	return nil
}

func (m *mockSubscriptionRepo) ListAll(_ context.Context) ([]model.PushSubscription, error) {
	var result []model.PushSubscription
	for _, s := range m.subs {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })
	return result, nil
}

// ── Mock 邮件 / 推送发送器 ──

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type mockMailSender struct {
	sent    []sentMail
	failFor map[string]bool // 指定收件人发送失败
}

func newMockMailSender() *mockMailSender {
	return &mockMailSender{failFor: make(map[string]bool)}
}

func (m *mockMailSender) Send(to, subject, body string) error {
	if m.failFor[to] {
		return fmt.Errorf("smtp send failed: %s", to)
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

// ── Mock AuthStateStore ──

// mockAuthStateStore 内存版待确认注册记录 + Token 黑名单。
// TakePendingSignup 与 Redis GETDEL 语义一致：取出即删除
type mockAuthStateStore struct {
	pending     map[string]*redis.PendingSignup
	setCalls    int
	lastTTL     time.Duration
	blacklisted map[string]time.Duration
}

func newMockAuthStateStore() *mockAuthStateStore {
	return &mockAuthStateStore{
		pending:     make(map[string]*redis.PendingSignup),
		blacklisted: make(map[string]time.Duration),
	}
}

func (m *mockAuthStateStore) SetPendingSignup(_ context.Context, p *redis.PendingSignup, ttl time.Duration) error {
	cp := *p
	m.pending[p.Email] = &cp
	m.setCalls++
	m.lastTTL = ttl
	return nil
}

func (m *mockAuthStateStore) TakePendingSignup(_ context.Context, email string) (*redis.PendingSignup, error) {
	p, ok := m.pending[email]
	if !ok {
		return nil, redis.ErrPendingSignupNotFound
	}
	delete(m.pending, email)
	return p, nil
}

func (m *mockAuthStateStore) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	m.blacklisted[jti] = ttl
	return nil
}

type mockPushSender struct {
	sent [][]byte
	fail bool
}

func newMockPushSender() *mockPushSender {
	return &mockPushSender{}
}

func (m *mockPushSender) Send(_ []byte, payload []byte) error {
	if m.fail {
		return fmt.Errorf("push send failed")
	}
	m.sent = append(m.sent, payload)
	return nil
}

// ── 组装辅助 ──

func newMockRepository() (*repository.Repository, *mockUserRepo, *mockJobRepo, *mockApplicationRepo, *mockSubscriptionRepo) {
	users := newMockUserRepo()
	jobs := newMockJobRepo()
	apps := newMockApplicationRepo(users)
	subs := newMockSubscriptionRepo()
	repo := &repository.Repository{
		User:         users,
		Job:          jobs,
		Application:  apps,
		Subscription: subs,
	}
	return repo, users, jobs, apps, subs
}
