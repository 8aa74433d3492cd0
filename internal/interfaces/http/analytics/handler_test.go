package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	analyticsapp "github.com/genba-survey/validation-api/internal/analytics/application"
	dashboardapp "github.com/genba-survey/validation-api/internal/dashboard/application"
	dashboarddomain "github.com/genba-survey/validation-api/internal/dashboard/domain"
	"github.com/genba-survey/validation-api/internal/interfaces/http/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecordSource struct {
	records []dashboarddomain.SubmissionRecord
	err     error
}

func (s *fakeRecordSource) List(context.Context, dashboarddomain.Principal, int, int) (dashboardapp.PagedResult, error) {
	return dashboardapp.PagedResult{}, errors.New("not used")
}

func (s *fakeRecordSource) Flat(context.Context, dashboarddomain.Principal, int) ([]dashboarddomain.SubmissionRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

func recordFixture() []dashboarddomain.SubmissionRecord {
	records := make([]dashboarddomain.SubmissionRecord, 0, 24)
	today := time.Now().Format("2006-01-02")
	// A は 12件中 6件に警告、B は 12件すべて警告なし。
	for i := 0; i < 12; i++ {
		alertA := ""
		if i%2 == 0 {
			alertA = "1"
		}
		records = append(records, dashboarddomain.SubmissionRecord{
			Submission:    dashboarddomain.Submission{ID: "a", Date: today, Submitter: "A", AlertFlag: alertA},
			SurveyAssetID: "alpha",
		})
		records = append(records, dashboarddomain.SubmissionRecord{
			Submission:    dashboarddomain.Submission{ID: "b", Date: today, Submitter: "B", AlertFlag: "NA"},
			SurveyAssetID: "alpha",
		})
	}
	return records
}

func serveAnalytics(t *testing.T, source dashboardapp.SubmissionQueryService, target string, principal *common.Principal) *httptest.ResponseRecorder {
	t.Helper()
	handler := NewHandler(Config{
		Logger:    log.New(io.Discard, "", 0),
		Records:   source,
		Summaries: analyticsapp.NewSummaryService(),
		Location:  time.UTC,
	})
	router := chi.NewRouter()
	handler.Register(router)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if principal != nil {
		req = req.WithContext(common.ContextWithPrincipal(req.Context(), *principal))
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestEnumeratorSummaryResponse(t *testing.T) {
	source := &fakeRecordSource{records: recordFixture()}
	principal := &common.Principal{ID: "admin-1", Role: "admin"}

	recorder := serveAnalytics(t, source, "/analytics/enumerators", principal)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body summaryListResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	assert.Equal(t, "all", body.Window)
	assert.Equal(t, "threshold", body.Strategy)
	require.Len(t, body.Summaries, 2)

	a := body.Summaries[0]
	assert.Equal(t, "A", a.Submitter)
	assert.Equal(t, 12, a.TotalSubmissions)
	assert.Equal(t, 6, a.SubmissionsWithAlerts)
	assert.Equal(t, 50.0, a.ErrorRate)

	// 閾値戦略: 12件提出で警告ゼロの B が最優秀。
	require.NotNil(t, body.BestPerformer)
	assert.Equal(t, "B", body.BestPerformer.Submitter)

	assert.Equal(t, 2, body.Overview.Enumerators)
	assert.Equal(t, 25.0, body.Overview.MeanErrorRate)
	assert.Equal(t, 25.0, body.Overview.MedianErrorRate)
}

func TestEnumeratorSummaryStrategyQuery(t *testing.T) {
	source := &fakeRecordSource{records: recordFixture()}
	principal := &common.Principal{ID: "admin-1", Role: "admin"}

	recorder := serveAnalytics(t, source, "/analytics/enumerators?strategy=log", principal)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body summaryListResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "log", body.Strategy)
	require.NotNil(t, body.BestPerformer)
	assert.Equal(t, "B", body.BestPerformer.Submitter)
}

func TestEnumeratorSummaryWindowQuery(t *testing.T) {
	source := &fakeRecordSource{records: recordFixture()}
	principal := &common.Principal{ID: "admin-1", Role: "admin"}

	recorder := serveAnalytics(t, source, "/analytics/enumerators?from=2025-06-01&to=2025-06-30", principal)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body summaryListResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "2025-06-01..2025-06-30", body.Window)
}

func TestEnumeratorSummaryInvalidWindow(t *testing.T) {
	source := &fakeRecordSource{records: recordFixture()}
	principal := &common.Principal{ID: "admin-1", Role: "admin"}

	recorder := serveAnalytics(t, source, "/analytics/enumerators?window=14days", principal)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestEnumeratorSummaryEmptyRecords(t *testing.T) {
	source := &fakeRecordSource{}
	principal := &common.Principal{ID: "user-1", Role: "user"}

	recorder := serveAnalytics(t, source, "/analytics/enumerators", principal)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body summaryListResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Empty(t, body.Summaries)
	assert.Nil(t, body.BestPerformer)
	assert.Equal(t, 0, body.Overview.Enumerators)
}

func TestEnumeratorSummaryRequiresPrincipal(t *testing.T) {
	recorder := serveAnalytics(t, &fakeRecordSource{}, "/analytics/enumerators", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestEnumeratorSummarySourceFailure(t *testing.T) {
	source := &fakeRecordSource{err: errors.New("catalog unavailable")}
	principal := &common.Principal{ID: "admin-1", Role: "admin"}

	recorder := serveAnalytics(t, source, "/analytics/enumerators", principal)
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}
