package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/trialboard/internal/dashboard"
	"github.com/sells-group/trialboard/internal/model"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	study := func(id, title, design, condition string, year int) model.StudyRecord {
		return model.StudyRecord{
			ID: id,
			Characteristics: model.Characteristics{
				Title:           title,
				Design:          design,
				PublicationYear: model.Num{Value: float64(year), Valid: year > 0},
			},
			Population: model.Population{Condition: condition, Valid: condition != ""},
		}
	}
	records := []model.StudyRecord{
		study("s1", "Metformin trial", "Randomized Controlled Trial", "Diabetes", 2020),
		study("s2", "Screening model", "Markov cost-effectiveness model", "Diabetes", 2019),
		study("s3", "Inhaler cohort", "Cohort study", "Asthma", 2020),
		study("s4", "Statin follow-up", "Randomised trial", "Cardiovascular", 2021),
	}
	app := dashboard.New(records, dashboard.DefaultViews(), dashboard.Options{})
	return newRouter(newServer(app), []string{"*"}, "")
}

func get(t *testing.T, h http.Handler, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestServer_HealthReportsStudyCount(t *testing.T) {
	rec, body := get(t, testRouter(t), "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(4), body["studies"])
}

func TestServer_RecordsHonorQueryFilters(t *testing.T) {
	r := testRouter(t)

	rec, body := get(t, r, "/api/records")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(4), body["total"])

	_, body = get(t, r, "/api/records?condition=Diabetes&design=RCT")
	assert.Equal(t, float64(1), body["total"])

	_, body = get(t, r, "/api/records?q=inhaler")
	assert.Equal(t, float64(1), body["total"])

	_, body = get(t, r, "/api/records?year=2020")
	assert.Equal(t, float64(2), body["total"])
}

func TestServer_RecordsFilterIsRequestScoped(t *testing.T) {
	r := testRouter(t)

	_, body := get(t, r, "/api/records?condition=Asthma")
	assert.Equal(t, float64(1), body["total"])

	// The previous request must not leak into an unfiltered one.
	_, body = get(t, r, "/api/records")
	assert.Equal(t, float64(4), body["total"])
}

func TestServer_KPIsRespectFilters(t *testing.T) {
	r := testRouter(t)

	rec, body := get(t, r, "/api/kpis?condition=Diabetes")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), body["total_studies"])
}

func TestServer_ViewEndpoints(t *testing.T) {
	r := testRouter(t)

	rec, body := get(t, r, "/api/views")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, body["views"])

	rec, body = get(t, r, "/api/views/overview")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "overview", body["view"])
	assert.NotNil(t, body["charts"])

	rec, _ = get(t, r, "/api/views/no-such-view")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_StudyLookup(t *testing.T) {
	r := testRouter(t)

	rec, body := get(t, r, "/api/studies/s2")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, body["detail"])

	rec, _ = get(t, r, "/api/studies/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_CompareEnforcesSelectionRules(t *testing.T) {
	r := testRouter(t)

	rec, body := get(t, r, "/api/compare?ids=s1,s2,s3")
	assert.Equal(t, http.StatusOK, rec.Code)
	headers, ok := body["headers"].([]any)
	require.True(t, ok)
	assert.Len(t, headers, 4) // field column plus one per study

	rec, _ = get(t, r, "/api/compare?ids=s1,s2,s3,s4")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = get(t, r, "/api/compare?ids=s1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = get(t, r, "/api/compare?ids=s1,nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = get(t, r, "/api/compare")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
