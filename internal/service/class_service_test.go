package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-reporting-api/internal/access"
	"github.com/noah-isme/course-reporting-api/internal/dto"
	"github.com/noah-isme/course-reporting-api/internal/models"
)

type classFixture struct {
	svc      ClassService
	users    *memoryUserRepo
	courses  *memoryCourseRepo
	pl       models.User
	lecturer models.User
	student  models.User
	course   models.Course
}

func newClassFixture(t *testing.T) classFixture {
	t.Helper()
	users := &memoryUserRepo{}
	courses := &memoryCourseRepo{}
	classes := &memoryClassRepo{courses: courses, users: users}

	course := models.Course{Name: "Web Design", Code: "WD101", Faculty: "FICT"}
	require.NoError(t, courses.Create(context.Background(), &course))

	return classFixture{
		svc:      NewClassService(classes, courses, users, NewActivityService(&memoryActivityRepo{}, testLogger()), NoopEventPublisher{}, testValidator(), testLogger()),
		users:    users,
		courses:  courses,
		pl:       users.seed("Thabo", models.RolePL, "FICT"),
		lecturer: users.seed("Palesa", models.RoleLecturer, "FICT"),
		student:  users.seed("Lerato", models.RoleStudent, "FICT"),
		course:   course,
	}
}

func TestClassServiceCreateReturnsJoinedRow(t *testing.T) {
	f := newClassFixture(t)

	class, err := f.svc.Create(context.Background(), grantFor(f.pl, access.ActionClassCreate, access.ScopeAll), dto.ClassCreateRequest{
		CourseID:        f.course.ID,
		Name:            "Group A",
		ScheduledTime:   "Mon 08:30",
		Venue:           "Hall 6",
		TotalRegistered: 40,
		LecturerID:      f.lecturer.ID,
	})
	require.NoError(t, err)
	require.Equal(t, "Web Design", class.CourseName)
	require.Equal(t, "WD101", class.CourseCode)
	require.NotNil(t, class.LecturerName)
	require.Equal(t, "Palesa", *class.LecturerName)
}

func TestClassServiceCreateRejectsBadReferences(t *testing.T) {
	f := newClassFixture(t)
	grant := grantFor(f.pl, access.ActionClassCreate, access.ScopeAll)

	_, err := f.svc.Create(context.Background(), grant, dto.ClassCreateRequest{CourseID: 99, Name: "A", LecturerID: f.lecturer.ID})
	require.ErrorIs(t, err, ErrInvalidReference)

	_, err = f.svc.Create(context.Background(), grant, dto.ClassCreateRequest{CourseID: f.course.ID, Name: "A", LecturerID: f.student.ID})
	require.ErrorIs(t, err, ErrInvalidReference)

	var refErr *ReferenceError
	require.ErrorAs(t, err, &refErr)
	require.Equal(t, "lecturer_id", refErr.Field)
}

func TestClassServiceCreateRequiresFields(t *testing.T) {
	f := newClassFixture(t)

	_, err := f.svc.Create(context.Background(), grantFor(f.pl, access.ActionClassCreate, access.ScopeAll), dto.ClassCreateRequest{Name: "A"})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInvalidReference)
}

func TestClassServiceListForLecturerOnlyReturnsAssigned(t *testing.T) {
	f := newClassFixture(t)
	other := f.users.seed("Kea", models.RoleLecturer, "FICT")
	grant := grantFor(f.pl, access.ActionClassCreate, access.ScopeAll)

	_, err := f.svc.Create(context.Background(), grant, dto.ClassCreateRequest{CourseID: f.course.ID, Name: "Mine", LecturerID: f.lecturer.ID})
	require.NoError(t, err)
	_, err = f.svc.Create(context.Background(), grant, dto.ClassCreateRequest{CourseID: f.course.ID, Name: "Theirs", LecturerID: other.ID})
	require.NoError(t, err)

	mine, err := f.svc.List(context.Background(), grantFor(f.lecturer, access.ActionClassListMine, access.ScopeLecturer))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, "Mine", mine[0].Name)

	all, err := f.svc.List(context.Background(), grantFor(f.pl, access.ActionClassList, access.ScopeAll))
	require.NoError(t, err)
	require.Len(t, all, 2)
}
