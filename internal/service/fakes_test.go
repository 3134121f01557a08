package service

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/course-reporting-api/internal/access"
	"github.com/noah-isme/course-reporting-api/internal/models"
	"github.com/noah-isme/course-reporting-api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func testValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func grantFor(user models.User, action access.Action, scope access.Scope) access.Grant {
	return access.Grant{
		Identity: access.Identity{UserID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role, Faculty: user.Faculty},
		Action:   action,
		Scope:    scope,
	}
}

type memoryUserRepo struct {
	mu    sync.Mutex
	users []models.User
}

func (m *memoryUserRepo) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return repository.ErrDuplicate
		}
	}
	user.ID = uint(len(m.users) + 1)
	m.users = append(m.users, *user)
	return nil
}

func (m *memoryUserRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (m *memoryUserRepo) GetByID(ctx context.Context, id uint) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (m *memoryUserRepo) ListByRole(ctx context.Context, role models.UserRole) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []models.User
	for _, user := range m.users {
		if user.Role == role {
			result = append(result, user)
		}
	}
	return result, nil
}

func (m *memoryUserRepo) seed(name string, role models.UserRole, faculty string) models.User {
	user := models.User{Name: name, Email: strings.ToLower(name) + "@luct.test", PasswordHash: "x", Role: role, Faculty: faculty}
	_ = m.Create(context.Background(), &user)
	return user
}

type memoryCourseRepo struct {
	courses []models.Course
}

func (m *memoryCourseRepo) Create(ctx context.Context, course *models.Course) error {
	course.ID = uint(len(m.courses) + 1)
	m.courses = append(m.courses, *course)
	return nil
}

func (m *memoryCourseRepo) GetByID(ctx context.Context, id uint) (models.Course, error) {
	for _, course := range m.courses {
		if course.ID == id {
			return course, nil
		}
	}
	return models.Course{}, gorm.ErrRecordNotFound
}

func (m *memoryCourseRepo) List(ctx context.Context, filter repository.CourseFilter) ([]models.Course, error) {
	var result []models.Course
	for _, course := range m.courses {
		if filter.Faculty == nil || course.Faculty == *filter.Faculty {
			result = append(result, course)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

type memoryClassRepo struct {
	courses *memoryCourseRepo
	users   *memoryUserRepo
	classes []models.Class
}

func (m *memoryClassRepo) CreateWithDetails(ctx context.Context, class *models.Class) (repository.ClassDetail, error) {
	class.ID = uint(len(m.classes) + 1)
	m.classes = append(m.classes, *class)
	return m.detail(ctx, *class), nil
}

func (m *memoryClassRepo) GetByID(ctx context.Context, id uint) (models.Class, error) {
	for _, class := range m.classes {
		if class.ID == id {
			return class, nil
		}
	}
	return models.Class{}, gorm.ErrRecordNotFound
}

func (m *memoryClassRepo) ListDetails(ctx context.Context, filter repository.ClassFilter) ([]repository.ClassDetail, error) {
	var result []repository.ClassDetail
	for _, class := range m.classes {
		if filter.LecturerID != nil && (class.AssignedLecturerID == nil || *class.AssignedLecturerID != *filter.LecturerID) {
			continue
		}
		result = append(result, m.detail(ctx, class))
	}
	return result, nil
}

func (m *memoryClassRepo) detail(ctx context.Context, class models.Class) repository.ClassDetail {
	course, _ := m.courses.GetByID(ctx, class.CourseID)
	detail := repository.ClassDetail{
		ID:              class.ID,
		Name:            class.Name,
		ScheduledTime:   class.ScheduledTime,
		Venue:           class.Venue,
		TotalRegistered: class.TotalRegistered,
		CourseID:        class.CourseID,
		CourseName:      course.Name,
		CourseCode:      course.Code,
		LecturerID:      class.AssignedLecturerID,
	}
	if class.AssignedLecturerID != nil {
		if lecturer, err := m.users.GetByID(ctx, *class.AssignedLecturerID); err == nil {
			detail.LecturerName = &lecturer.Name
		}
	}
	return detail
}

type memoryReportRepo struct {
	reports []models.Report
	filters []repository.ReportFilter
}

func (m *memoryReportRepo) Create(ctx context.Context, report *models.Report) error {
	report.ID = uint(len(m.reports) + 1)
	report.CreatedAt = time.Now()
	m.reports = append(m.reports, *report)
	return nil
}

func (m *memoryReportRepo) ListDetails(ctx context.Context, filter repository.ReportFilter) ([]repository.ReportDetail, error) {
	m.filters = append(m.filters, filter)
	var result []repository.ReportDetail
	for _, report := range m.reports {
		if filter.LecturerID != nil && report.LecturerID != *filter.LecturerID {
			continue
		}
		if filter.PRLID != nil && report.PRLID != *filter.PRLID {
			continue
		}
		result = append(result, repository.ReportDetail{
			ID:                    report.ID,
			TopicTaught:           report.TopicTaught,
			ActualStudentsPresent: report.ActualStudentsPresent,
			Status:                report.Status,
			PRLFeedback:           report.PRLFeedback,
			PRLID:                 report.PRLID,
			CreatedAt:             report.CreatedAt,
		})
	}
	return result, nil
}

func (m *memoryReportRepo) SubmitFeedback(ctx context.Context, update repository.FeedbackUpdate) (int64, error) {
	for i := range m.reports {
		if m.reports[i].ID == update.ReportID && m.reports[i].PRLID == update.PRLID {
			m.reports[i].PRLFeedback = update.Feedback
			m.reports[i].Status = update.Status
			return 1, nil
		}
	}
	return 0, nil
}

type memoryRatingRepo struct {
	users   *memoryUserRepo
	ratings []models.Rating
}

func (m *memoryRatingRepo) Create(ctx context.Context, rating *models.Rating) error {
	rating.ID = uint(len(m.ratings) + 1)
	rating.CreatedAt = time.Now()
	m.ratings = append(m.ratings, *rating)
	return nil
}

func (m *memoryRatingRepo) ListForLecturer(ctx context.Context, lecturerID uint) ([]repository.RatingDetail, error) {
	var result []repository.RatingDetail
	for _, rating := range m.ratings {
		if rating.LecturerID != lecturerID {
			continue
		}
		rater, _ := m.users.GetByID(ctx, rating.RaterID)
		result = append(result, repository.RatingDetail{
			ID:        rating.ID,
			Module:    rating.Module,
			Score:     rating.Score,
			Comment:   rating.Comment,
			RaterName: rater.Name,
			CreatedAt: rating.CreatedAt,
		})
	}
	return result, nil
}

type memoryFacultyRepo struct {
	counts map[string]repository.FacultyCounts
	calls  int
}

func (m *memoryFacultyRepo) Counts(ctx context.Context, faculty string) (repository.FacultyCounts, error) {
	m.calls++
	return m.counts[faculty], nil
}

type memoryActivityRepo struct {
	entries []models.ActivityLog
}

func (m *memoryActivityRepo) Create(ctx context.Context, entry *models.ActivityLog) error {
	entry.ID = uint(len(m.entries) + 1)
	entry.CreatedAt = time.Now()
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *memoryActivityRepo) List(ctx context.Context, filter repository.ActivityLogFilter) ([]models.ActivityLog, int64, error) {
	var matched []models.ActivityLog
	for _, entry := range m.entries {
		if filter.Action != "" && entry.Action != filter.Action {
			continue
		}
		matched = append(matched, entry)
	}
	total := int64(len(matched))
	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		start := (page - 1) * filter.PageSize
		if start > len(matched) {
			start = len(matched)
		}
		end := start + filter.PageSize
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[start:end]
	}
	return matched, total, nil
}

type recordingPublisher struct {
	events []DomainEvent
}

func (r *recordingPublisher) Publish(ctx context.Context, event DomainEvent) error {
	r.events = append(r.events, event)
	return nil
}
