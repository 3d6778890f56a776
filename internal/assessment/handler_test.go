package assessment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReports struct{}

func (stubReports) Generate(*Assessment) ([]byte, error) {
	return []byte("%PDF-stub"), nil
}

func newTestRouter(t *testing.T) (*chi.Mux, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()
	svc := NewService(testStore(t), repo, nil, nil)
	h := NewHandler(svc, stubReports{})

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		RegisterRoutes(r, h)
	})
	return r, repo
}

func postJSON(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleAssessOK(t *testing.T) {
	router, repo := newTestRouter(t)

	rec := postJSON(t, router, "/api/assessment", AssessRequest{
		Symptoms: []string{"vomiting", "diarrhea"},
		Species:  "dog",
		Name:     "Rex",
		AgeYears: 4,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var a Assessment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &a))
	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.NotEmpty(t, a.Result.Conditions)
	assert.NotEmpty(t, a.Result.Recommendations)

	_, saved := repo.saved[a.ID]
	assert.True(t, saved)
}

func TestHandleAssessEmergencyExample(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := postJSON(t, router, "/api/assessment", AssessRequest{
		Symptoms: []string{"seizure", "unresponsive"},
		Species:  "dog",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var a Assessment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &a))
	assert.True(t, a.Result.Emergency)
	require.NotEmpty(t, a.Result.Recommendations)
	assert.Equal(t, EmergencyDirective, a.Result.Recommendations[0])
}

func TestHandleAssessEmptySymptomsRejected(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := postJSON(t, router, "/api/assessment", AssessRequest{
		Symptoms: []string{},
		Species:  "dog",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleAssessUnknownSpecies(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := postJSON(t, router, "/api/assessment", AssessRequest{
		Symptoms: []string{"vomiting"},
		Species:  "dragon",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandleAssessMalformedBody(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/assessment", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetAssessment(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := postJSON(t, router, "/api/assessment", AssessRequest{
		Symptoms: []string{"vomiting"},
		Species:  "cat",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var created Assessment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/assessment/%s", created.ID), nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, req)
	require.Equal(t, http.StatusOK, getRec.Code)

	var fetched Assessment
	require.NoError(t, json.Unmarshal(getRec.Body.Bytes(), &fetched))
	assert.Equal(t, created.ID, fetched.ID)
}

func TestHandleGetAssessmentNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/assessment/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleReport(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := postJSON(t, router, "/api/assessment", AssessRequest{
		Symptoms: []string{"vomiting"},
		Species:  "cat",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var created Assessment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/assessment/%s/report", created.ID), nil)
	repRec := httptest.NewRecorder()
	router.ServeHTTP(repRec, req)
	require.Equal(t, http.StatusOK, repRec.Code)
	assert.Equal(t, "application/pdf", repRec.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF-stub", repRec.Body.String())
}

func TestHandleListEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, path := range []string{"/api/symptoms", "/api/conditions"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Header().Get("Content-Type"), "application/json", path)
	}
}

func TestHandleReloadKnowledge(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/knowledge/reload", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
