package handler

//go:generate mockgen -source=handler.go -destination=mocks/handler_mock.go -package=mocks Service

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"amoria/internal/screening/handler/mocks"
	"amoria/internal/screening/models"
	dErrors "amoria/pkg/domain-errors"
)

type HandlerSuite struct {
	suite.Suite
	router      http.Handler
	ctrl        *gomock.Controller
	mockService *mocks.MockService
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockService = mocks.NewMockService(s.ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := New(s.mockService, logger)

	r := chi.NewRouter()
	h.Register(r)
	s.router = r
}

func (s *HandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) postJSON(path string, body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	require.NoError(s.T(), err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) decodeEnvelope(rec *httptest.ResponseRecorder) map[string]any {
	var env map[string]any
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func (s *HandlerSuite) TestSelectPerson_Success() {
	index := 1
	s.mockService.EXPECT().
		SelectPerson(gomock.Any(), gomock.Any(), "check_1", index).
		Return(&models.PersonCandidate{ReportToken: "tok-1", Name: models.KnownField("Dana")}, nil)

	rec := s.postJSON("/admin/background-check/select-person", map[string]any{
		"checkId":             "check_1",
		"selectedPersonIndex": index,
	})

	assert.Equal(s.T(), http.StatusOK, rec.Code)
	env := s.decodeEnvelope(rec)
	assert.Equal(s.T(), true, env["success"])
}

// TestSelectPerson_ZeroIndexAccepted guards the classic pointer-vs-zero trap:
// index 0 is a legitimate choice and must not read as "missing".
func (s *HandlerSuite) TestSelectPerson_ZeroIndexAccepted() {
	s.mockService.EXPECT().
		SelectPerson(gomock.Any(), gomock.Any(), "check_1", 0).
		Return(&models.PersonCandidate{ReportToken: "tok-0"}, nil)

	rec := s.postJSON("/admin/background-check/select-person", map[string]any{
		"checkId":             "check_1",
		"selectedPersonIndex": 0,
	})

	assert.Equal(s.T(), http.StatusOK, rec.Code)
}

func (s *HandlerSuite) TestSelectPerson_MissingIndexRejected() {
	rec := s.postJSON("/admin/background-check/select-person", map[string]any{
		"checkId": "check_1",
	})

	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
	env := s.decodeEnvelope(rec)
	assert.Equal(s.T(), false, env["success"])
}

func (s *HandlerSuite) TestSelectPerson_InvalidJSON() {
	req := httptest.NewRequest(http.MethodPost, "/admin/background-check/select-person",
		bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

// TestSelectPerson_DomainCodeMapping verifies the status taxonomy clients
// dispatch on: stale check 404, duplicate selection 409, each with its
// stable code in the envelope.
func (s *HandlerSuite) TestSelectPerson_DomainCodeMapping() {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{
			name:   "stale check",
			err:    dErrors.New(dErrors.CodeNotFound, "search not found or expired; run the search again"),
			status: http.StatusNotFound,
			code:   "not_found",
		},
		{
			name:   "duplicate selection",
			err:    dErrors.New(dErrors.CodeAlreadySelected, "a person was already selected for this check"),
			status: http.StatusConflict,
			code:   "already_selected",
		},
		{
			name:   "index out of range",
			err:    dErrors.New(dErrors.CodeBadRequest, "selected person index out of range"),
			status: http.StatusBadRequest,
			code:   "bad_request",
		},
	}
	for _, tc := range cases {
		s.T().Run(tc.name, func(t *testing.T) {
			s.mockService.EXPECT().
				SelectPerson(gomock.Any(), gomock.Any(), "check_1", 0).
				Return(nil, tc.err)

			rec := s.postJSON("/admin/background-check/select-person", map[string]any{
				"checkId":             "check_1",
				"selectedPersonIndex": 0,
			})

			assert.Equal(t, tc.status, rec.Code)
			env := s.decodeEnvelope(rec)
			assert.Equal(t, false, env["success"])
			assert.Equal(t, tc.code, env["code"])
		})
	}
}

func (s *HandlerSuite) TestTriggerSearch_FeatureDisabledMapsTo501() {
	s.mockService.EXPECT().
		TriggerSearch(gomock.Any(), gomock.Any(), "user-1").
		Return(nil, dErrors.New(dErrors.CodeFeatureDisabled, "manual person search is not available"))

	rec := s.postJSON("/admin/users/user-1/background-check/search", nil)

	assert.Equal(s.T(), http.StatusNotImplemented, rec.Code)
	env := s.decodeEnvelope(rec)
	assert.Equal(s.T(), "feature_disabled", env["code"])
}

func (s *HandlerSuite) TestManualSelect_ReturnsMessageEnvelope() {
	s.mockService.EXPECT().
		SelectPersonManual(gomock.Any(), gomock.Any(), "check_1", 2).
		Return("Person record confirmed: Dana Whitfield", nil)

	rec := s.postJSON("/admin/background-check/manual-verify/select-person", map[string]any{
		"checkId":             "check_1",
		"selectedPersonIndex": 2,
	})

	assert.Equal(s.T(), http.StatusOK, rec.Code)
	env := s.decodeEnvelope(rec)
	assert.Equal(s.T(), true, env["success"])
	assert.Contains(s.T(), env["message"], "Dana Whitfield")
}

func (s *HandlerSuite) TestGetHistory() {
	s.mockService.EXPECT().
		GetHistory(gomock.Any(), "user-1").
		Return([]models.HistoryEntry{{CheckID: "check_1", CandidateCount: 3}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/users/user-1/background-checks", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Contains(s.T(), rec.Body.String(), "check_1")
}
