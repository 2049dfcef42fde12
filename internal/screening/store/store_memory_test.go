package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amoria/internal/screening/models"
	"amoria/pkg/platform/sentinel"
)

func testBatch(checkID, userID string, createdAt time.Time) *models.SearchBatch {
	return &models.SearchBatch{
		CheckID:   checkID,
		UserID:    userID,
		Source:    models.SourceSearchBugAPI,
		People:    []models.PersonCandidate{{ReportToken: "tok-1"}, {ReportToken: "tok-2"}},
		CreatedAt: createdAt,
	}
}

func TestSaveBatch_DuplicateCheckIDConflicts(t *testing.T) {
	st := New()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, st.SaveBatch(ctx, testBatch("check_1", "user-1", now)))
	err := st.SaveBatch(ctx, testBatch("check_1", "user-1", now))
	assert.ErrorIs(t, err, sentinel.ErrConflict)
}

// TestFinalizeSelection_ExactlyOnce verifies the store-level guarantee both
// selection endpoints depend on: the second finalization loses with
// ErrConflict and the first selection survives untouched.
func TestFinalizeSelection_ExactlyOnce(t *testing.T) {
	st := New()
	ctx := context.Background()
	require.NoError(t, st.SaveBatch(ctx, testBatch("check_1", "user-1", time.Now())))

	updated, err := st.FinalizeSelection(ctx, "check_1", 1, time.Now())
	require.NoError(t, err)
	require.NotNil(t, updated.SelectedIndex)
	assert.Equal(t, 1, *updated.SelectedIndex)

	_, err = st.FinalizeSelection(ctx, "check_1", 0, time.Now())
	assert.ErrorIs(t, err, sentinel.ErrConflict)

	stored, err := st.FindByCheckID(ctx, "check_1")
	require.NoError(t, err)
	assert.Equal(t, 1, *stored.SelectedIndex)
}

func TestFinalizeSelection_UnknownCheck(t *testing.T) {
	st := New()
	_, err := st.FinalizeSelection(context.Background(), "check_missing", 0, time.Now())
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestListByUser_NewestFirst(t *testing.T) {
	st := New()
	ctx := context.Background()
	base := time.Now()

	require.NoError(t, st.SaveBatch(ctx, testBatch("check_old", "user-1", base.Add(-time.Hour))))
	require.NoError(t, st.SaveBatch(ctx, testBatch("check_new", "user-1", base)))
	require.NoError(t, st.SaveBatch(ctx, testBatch("check_other", "user-2", base)))

	batches, err := st.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, batches, 2)
	assert.Equal(t, "check_new", batches[0].CheckID)
	assert.Equal(t, "check_old", batches[1].CheckID)
}

// TestClone_IsolatesCallers verifies reads hand out copies: mutating a
// returned batch must not leak back into the store.
func TestClone_IsolatesCallers(t *testing.T) {
	st := New()
	ctx := context.Background()
	require.NoError(t, st.SaveBatch(ctx, testBatch("check_1", "user-1", time.Now())))

	got, err := st.FindByCheckID(ctx, "check_1")
	require.NoError(t, err)
	got.People[0].ReportToken = "tampered"

	fresh, err := st.FindByCheckID(ctx, "check_1")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", fresh.People[0].ReportToken)
}
