package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-reporting-api/internal/access"
	"github.com/noah-isme/course-reporting-api/internal/dto"
	"github.com/noah-isme/course-reporting-api/internal/models"
)

func TestCourseServiceCreateRecordsActivityAndEvent(t *testing.T) {
	courses := &memoryCourseRepo{}
	activity := &memoryActivityRepo{}
	events := &recordingPublisher{}
	svc := NewCourseService(courses, NewActivityService(activity, testLogger()), events, testValidator(), testLogger())

	pl := models.User{ID: 9, Name: "Thabo", Role: models.RolePL, Faculty: "FICT"}
	course, err := svc.Create(context.Background(), grantFor(pl, access.ActionCourseCreate, access.ScopeAll), dto.CourseCreateRequest{
		Name: " Web Design ", Code: "WD101", Faculty: "FICT",
	})
	require.NoError(t, err)
	require.Equal(t, "Web Design", course.Name)
	require.NotZero(t, course.ID)

	require.Len(t, activity.entries, 1)
	require.Equal(t, ActionCourseCreated, activity.entries[0].Action)
	require.Equal(t, uint(9), activity.entries[0].ActorID)

	require.Len(t, events.events, 1)
	require.Equal(t, ActionCourseCreated, events.events[0].Type)
	require.Equal(t, course.ID, events.events[0].EntityID)
}

func TestCourseServiceCreateValidatesPresence(t *testing.T) {
	svc := NewCourseService(&memoryCourseRepo{}, nil, NoopEventPublisher{}, testValidator(), testLogger())

	pl := models.User{ID: 1, Role: models.RolePL}
	_, err := svc.Create(context.Background(), grantFor(pl, access.ActionCourseCreate, access.ScopeAll), dto.CourseCreateRequest{Name: "Web", Faculty: "FICT"})
	require.Error(t, err)
}

func TestCourseServiceListAppliesFacultyScope(t *testing.T) {
	courses := &memoryCourseRepo{}
	ctx := context.Background()
	require.NoError(t, courses.Create(ctx, &models.Course{Name: "Web", Code: "W1", Faculty: "FICT"}))
	require.NoError(t, courses.Create(ctx, &models.Course{Name: "Accounting", Code: "A1", Faculty: "FBMG"}))
	svc := NewCourseService(courses, nil, nil, testValidator(), testLogger())

	lecturer := models.User{ID: 2, Role: models.RoleLecturer, Faculty: "FICT"}
	scoped, err := svc.List(ctx, grantFor(lecturer, access.ActionCourseList, access.ScopeFaculty))
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	require.Equal(t, "Web", scoped[0].Name)

	student := models.User{ID: 3, Role: models.RoleStudent, Faculty: "FICT"}
	all, err := svc.List(ctx, grantFor(student, access.ActionCourseList, access.ScopeAll))
	require.NoError(t, err)
	require.Len(t, all, 2)

	_, err = svc.List(ctx, grantFor(student, access.ActionCourseList, access.ScopePRL))
	require.ErrorIs(t, err, access.ErrForbidden)
}

func TestCourseServiceFacultyScopeWithoutFacultyListsNothing(t *testing.T) {
	courses := &memoryCourseRepo{}
	ctx := context.Background()
	require.NoError(t, courses.Create(ctx, &models.Course{Name: "Web", Code: "W1", Faculty: "FICT"}))
	svc := NewCourseService(courses, nil, nil, testValidator(), testLogger())

	lecturer := models.User{ID: 2, Role: models.RoleLecturer}
	scoped, err := svc.List(ctx, grantFor(lecturer, access.ActionCourseList, access.ScopeFaculty))
	require.NoError(t, err)
	require.Empty(t, scoped)
}
