package workflow

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"amoria/pkg/adminclient"
	"amoria/pkg/workflow/mocks"
)

func batch(names ...string) *adminclient.SearchResult {
	people := make([]adminclient.PersonCandidate, 0, len(names))
	for _, name := range names {
		n := name
		people = append(people, adminclient.PersonCandidate{
			ReportToken: "tok-" + name,
			Name:        &n,
		})
	}
	return &adminclient.SearchResult{
		People:            people,
		CheckID:           "check_1",
		RequiresSelection: len(people) > 1,
	}
}

type SelectionSuite struct {
	suite.Suite
	ctrl   *gomock.Controller
	client *mocks.MockConfirmer
}

func (s *SelectionSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.client = mocks.NewMockConfirmer(s.ctrl)
}

func (s *SelectionSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestSelectionSuite(t *testing.T) {
	suite.Run(t, new(SelectionSuite))
}

func (s *SelectionSuite) TestHighlightThenConfirm() {
	sel := NewSelection(batch("Alpha", "Beta", "Gamma"))
	require.True(s.T(), sel.RequiresSelection())
	assert.Equal(s.T(), -1, sel.Highlighted())
	assert.False(s.T(), sel.CanConfirm(), "nothing highlighted yet")

	require.NoError(s.T(), sel.Highlight(1))
	assert.True(s.T(), sel.CanConfirm())

	s.client.EXPECT().
		SelectPerson(gomock.Any(), "check_1", 1).
		Return(&sel.People()[1], nil)

	selected, err := sel.Confirm(context.Background(), s.client)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "tok-Beta", selected.ReportToken)
	require.NotNil(s.T(), sel.Confirmed())
	assert.False(s.T(), sel.CanConfirm(), "a committed selection is final")
}

func (s *SelectionSuite) TestConfirmWithoutHighlight() {
	sel := NewSelection(batch("Alpha", "Beta"))
	_, err := sel.Confirm(context.Background(), s.client)
	assert.ErrorIs(s.T(), err, ErrNoHighlight)
}

// TestSingleCandidateImmediatelyConfirmable verifies the unambiguous case
// needs no explicit highlight step.
func (s *SelectionSuite) TestSingleCandidateImmediatelyConfirmable() {
	sel := NewSelection(batch("Alpha"))
	assert.False(s.T(), sel.RequiresSelection())
	assert.Equal(s.T(), 0, sel.Highlighted())
	assert.True(s.T(), sel.CanConfirm())

	s.client.EXPECT().
		SelectPerson(gomock.Any(), "check_1", 0).
		Return(&adminclient.PersonCandidate{ReportToken: "tok-Alpha"}, nil)

	selected, err := sel.Confirm(context.Background(), s.client)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "tok-Alpha", selected.ReportToken)
}

func (s *SelectionSuite) TestHighlightOutOfRange() {
	sel := NewSelection(batch("Alpha", "Beta"))
	assert.ErrorIs(s.T(), sel.Highlight(2), ErrIndexOutOfRange)
	assert.ErrorIs(s.T(), sel.Highlight(-1), ErrIndexOutOfRange)
}

// TestRetryCap verifies the attempt budget: three failed confirms spend the
// budget, and the fourth attempt is rejected locally. The mock expects
// exactly three calls, so a fourth request would fail the test.
func (s *SelectionSuite) TestRetryCap() {
	sel := NewSelection(batch("Alpha", "Beta"))
	require.NoError(s.T(), sel.Highlight(0))

	upstreamErr := &adminclient.APIError{StatusCode: http.StatusInternalServerError}
	s.client.EXPECT().
		SelectPerson(gomock.Any(), "check_1", 0).
		Return(nil, upstreamErr).
		Times(3)

	for i := 0; i < 3; i++ {
		_, err := sel.Confirm(context.Background(), s.client)
		require.Error(s.T(), err)
	}
	assert.Equal(s.T(), 0, sel.AttemptsRemaining())
	assert.False(s.T(), sel.CanConfirm())

	_, err := sel.Confirm(context.Background(), s.client)
	assert.ErrorIs(s.T(), err, ErrRetriesExhausted)
}

// TestLastErrorClearedAtAttemptStart verifies stale feedback never survives
// into a new attempt: after a failure the feedback is set, and a following
// successful attempt leaves it nil.
func (s *SelectionSuite) TestLastErrorClearedAtAttemptStart() {
	sel := NewSelection(batch("Alpha", "Beta"))
	require.NoError(s.T(), sel.Highlight(0))

	gomock.InOrder(
		s.client.EXPECT().
			SelectPerson(gomock.Any(), "check_1", 0).
			Return(nil, &adminclient.APIError{StatusCode: http.StatusTooManyRequests}),
		s.client.EXPECT().
			SelectPerson(gomock.Any(), "check_1", 0).
			Return(&adminclient.PersonCandidate{ReportToken: "tok-Alpha"}, nil),
	)

	_, err := sel.Confirm(context.Background(), s.client)
	require.Error(s.T(), err)
	progress := sel.Progress()
	require.NotNil(s.T(), progress.LastError)
	assert.Equal(s.T(), SeverityWarning, progress.LastError.Severity)

	_, err = sel.Confirm(context.Background(), s.client)
	require.NoError(s.T(), err)
	progress = sel.Progress()
	assert.Nil(s.T(), progress.LastError)
	assert.Equal(s.T(), 2, progress.RetryCount)
}

func (s *SelectionSuite) TestConfirmAfterCommitRejected() {
	sel := NewSelection(batch("Alpha", "Beta"))
	require.NoError(s.T(), sel.Highlight(0))
	s.client.EXPECT().
		SelectPerson(gomock.Any(), "check_1", 0).
		Return(&adminclient.PersonCandidate{ReportToken: "tok-Alpha"}, nil)

	_, err := sel.Confirm(context.Background(), s.client)
	require.NoError(s.T(), err)

	_, err = sel.Confirm(context.Background(), s.client)
	assert.ErrorIs(s.T(), err, ErrAlreadyConfirmed)
	assert.ErrorIs(s.T(), sel.Highlight(1), ErrAlreadyConfirmed)
}

// TestSingleConfirmInFlight verifies duplicate submits are dropped while a
// confirmation is running: the slow first call holds the in-flight guard and
// the concurrent second call fails fast without reaching the backend.
func (s *SelectionSuite) TestSingleConfirmInFlight() {
	sel := NewSelection(batch("Alpha", "Beta"))
	require.NoError(s.T(), sel.Highlight(0))

	entered := make(chan struct{})
	release := make(chan struct{})
	s.client.EXPECT().
		SelectPerson(gomock.Any(), "check_1", 0).
		DoAndReturn(func(context.Context, string, int) (*adminclient.PersonCandidate, error) {
			close(entered)
			<-release
			return &adminclient.PersonCandidate{ReportToken: "tok-Alpha"}, nil
		})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := sel.Confirm(context.Background(), s.client)
		assert.NoError(s.T(), err)
	}()

	<-entered
	_, err := sel.Confirm(context.Background(), s.client)
	assert.ErrorIs(s.T(), err, ErrConfirmInFlight)

	close(release)
	wg.Wait()
	require.NotNil(s.T(), sel.Confirmed())
}

func (s *SelectionSuite) TestPeopleOrderPreserved() {
	names := []string{"Gamma", "Alpha", "Beta"}
	sel := NewSelection(batch(names...))
	people := sel.People()
	require.Len(s.T(), people, 3)
	for i, name := range names {
		assert.Equal(s.T(), "tok-"+name, people[i].ReportToken)
	}
}
