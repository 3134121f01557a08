package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-reporting-api/internal/access"
	"github.com/noah-isme/course-reporting-api/internal/dto"
	"github.com/noah-isme/course-reporting-api/internal/models"
)

func TestActivityServiceRecordMasksSensitiveKeys(t *testing.T) {
	repo := &memoryActivityRepo{}
	svc := NewActivityService(repo, testLogger())

	entry, err := svc.Record(context.Background(), ActivityEntry{
		ActorID:    1,
		ActorRole:  "PL",
		Action:     "Course.Created",
		EntityType: "course",
		EntityID:   ptrUint(5),
		Metadata: map[string]interface{}{
			"email":        "pl@luct.test",
			"access_token": "abc",
			"code":         "WD101",
		},
	})
	require.NoError(t, err)
	require.Equal(t, "***", entry.Metadata["email"])
	require.Equal(t, "***", entry.Metadata["access_token"])
	require.Equal(t, "WD101", entry.Metadata["code"])
	require.Equal(t, "pl", entry.ActorRole)
	require.Equal(t, "course.created", entry.Action)
}

func TestActivityServiceRecordRequiresAction(t *testing.T) {
	svc := NewActivityService(&memoryActivityRepo{}, testLogger())

	_, err := svc.Record(context.Background(), ActivityEntry{EntityType: "course"})
	require.Error(t, err)
}

func TestActivityServiceListPaginates(t *testing.T) {
	repo := &memoryActivityRepo{}
	svc := NewActivityService(repo, testLogger())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Record(ctx, ActivityEntry{ActorID: 1, ActorRole: "pl", Action: ActionCourseCreated, EntityType: "course"})
		require.NoError(t, err)
	}

	pl := models.User{ID: 1, Role: models.RolePL}
	result, err := svc.List(ctx, grantFor(pl, access.ActionActivityList, access.ScopeAll), dto.ActivityListRequest{Page: 1, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	require.Equal(t, int64(3), result.Pagination.TotalItems)
	require.Equal(t, 2, result.Pagination.TotalPages)
}

func ptrUint(v uint) *uint {
	return &v
}
