package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galactly/onboarding-service/internal/model"
	"github.com/galactly/onboarding-service/internal/onboarding"
	"github.com/galactly/onboarding-service/pkg/config"
	"github.com/galactly/onboarding-service/prometheus"
)

func TestMain(m *testing.M) {
	prometheus.InitMetrics(&config.Config{
		ServiceName: "onboarding-service-test",
		Metrics:     config.MetricsConfig{Prefix: "onboarding_test"},
	})
	os.Exit(m.Run())
}

type memStore struct {
	answers  map[string]model.Answer
	supplier *model.SupplierRecord
}

func newMemStore() *memStore {
	return &memStore{answers: make(map[string]model.Answer)}
}

func (s *memStore) SaveAnswer(_ context.Context, _ string, answer model.Answer) error {
	s.answers[answer.QuestionID] = answer
	return nil
}

func (s *memStore) AllAnswers(_ context.Context, _ string) (map[string]model.Answer, error) {
	out := make(map[string]model.Answer, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out, nil
}

func (s *memStore) Supplier(_ context.Context, _ string) (*model.SupplierRecord, error) {
	return s.supplier, nil
}

func (s *memStore) UpdateOnboardingStatus(_ context.Context, _ string, _ model.OnboardingStatus) error {
	return nil
}

func newTestHandler(st *memStore) *OnboardingHandler {
	service := onboarding.NewService(st, nil, false, nil)
	return NewOnboardingHandler(service)
}

func doJSON(t *testing.T, h echo.HandlerFunc, method, target, body string, setup func(echo.Context)) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	e := echo.New()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if setup != nil {
		setup(c)
	}

	require.NoError(t, h(c))

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	return rec, parsed
}

func TestListQuestions(t *testing.T) {
	h := newTestHandler(newMemStore())
	rec, body := doJSON(t, h.ListQuestions, http.MethodGet, "/api/onboarding/questions", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(17), body["totalQuestions"])
	assert.Len(t, body["questions"], 17)
}

func TestSubmitAnswer_HappyPath(t *testing.T) {
	st := newMemStore()
	h := newTestHandler(st)

	payload := `{"supplierId":"sup-1","questionId":"q1","answer":"boxes","answerType":"choice"}`
	rec, body := doJSON(t, h.SubmitAnswer, http.MethodPost, "/api/onboarding/submit-answer", payload, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "q1", body["questionId"])
	assert.Equal(t, false, body["onboardingComplete"])

	aiResponse, ok := body["aiResponse"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "research", aiResponse["source"])
	assert.Contains(t, aiResponse["response"], "box manufacturing")

	progress, ok := body["progress"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), progress["answeredQuestions"])
	assert.Equal(t, float64(17), progress["totalQuestions"])
	assert.Equal(t, float64(6), progress["percentComplete"])
	assert.Equal(t, "in_progress", progress["status"])

	nextQuestion, ok := body["nextQuestion"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "q2", nextQuestion["id"])
	assert.Equal(t, float64(2), nextQuestion["number"])
}

func TestSubmitAnswer_SilentQuestionReturnsNullAcknowledgement(t *testing.T) {
	h := newTestHandler(newMemStore())

	payload := `{"supplierId":"sup-1","questionId":"q4","answer":12}`
	rec, body := doJSON(t, h.SubmitAnswer, http.MethodPost, "/api/onboarding/submit-answer", payload, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, body["aiResponse"])
}

func TestSubmitAnswer_FalsyAnswerIsAccepted(t *testing.T) {
	st := newMemStore()
	h := newTestHandler(st)

	payload := `{"supplierId":"sup-1","questionId":"q4","answer":null}`
	rec, _ := doJSON(t, h.SubmitAnswer, http.MethodPost, "/api/onboarding/submit-answer", payload, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, st.answers, "q4", "an explicit null answer must still be stored")
}

func TestSubmitAnswer_MissingFields(t *testing.T) {
	st := newMemStore()
	h := newTestHandler(st)

	tests := []struct {
		name    string
		payload string
	}{
		{"missing supplierId", `{"questionId":"q1","answer":"boxes"}`},
		{"missing questionId", `{"supplierId":"sup-1","answer":"boxes"}`},
		{"missing answer", `{"supplierId":"sup-1","questionId":"q1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := doJSON(t, h.SubmitAnswer, http.MethodPost, "/api/onboarding/submit-answer", tt.payload, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, "supplierId, questionId, and answer are required", body["error"])
		})
	}

	assert.Empty(t, st.answers, "validation failures must not write")
}

func TestSubmitAnswer_UnknownQuestion(t *testing.T) {
	st := newMemStore()
	h := newTestHandler(st)

	payload := `{"supplierId":"sup-1","questionId":"q42","answer":"x"}`
	rec, body := doJSON(t, h.SubmitAnswer, http.MethodPost, "/api/onboarding/submit-answer", payload, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Unknown question id", body["error"])
	assert.Empty(t, st.answers)
}

func TestGetProgress(t *testing.T) {
	st := newMemStore()
	st.answers["q1"] = model.Answer{QuestionID: "q1"}
	st.supplier = &model.SupplierRecord{
		SupplierID:       "sup-1",
		Email:            "owner@mill.example",
		DisplayName:      "Mill & Co",
		OnboardingStatus: model.OnboardingInProgress,
	}
	h := newTestHandler(st)

	rec, body := doJSON(t, h.GetProgress, http.MethodGet, "/", "", func(c echo.Context) {
		c.SetParamNames("supplierId")
		c.SetParamValues("sup-1")
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sup-1", body["supplierId"])

	supplier, ok := body["supplier"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "owner@mill.example", supplier["email"])
	assert.Equal(t, "Mill & Co", supplier["displayName"])

	progress, ok := body["progress"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "in_progress", progress["status"])
}

func TestGetProgress_UnknownSupplier(t *testing.T) {
	h := newTestHandler(newMemStore())

	rec, body := doJSON(t, h.GetProgress, http.MethodGet, "/", "", func(c echo.Context) {
		c.SetParamNames("supplierId")
		c.SetParamValues("nobody")
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, body["supplier"])

	progress, ok := body["progress"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "not_started", progress["status"])
	assert.Equal(t, float64(0), progress["answeredQuestions"])
}

func TestGetAllAnswers(t *testing.T) {
	st := newMemStore()
	st.answers["q1"] = model.Answer{QuestionID: "q1", Answer: "boxes", AnswerType: model.AnswerTypeChoice}
	st.answers["q2"] = model.Answer{QuestionID: "q2", Answer: float64(2015), AnswerType: model.AnswerTypeYear}
	h := newTestHandler(st)

	rec, body := doJSON(t, h.GetAllAnswers, http.MethodGet, "/", "", func(c echo.Context) {
		c.SetParamNames("supplierId")
		c.SetParamValues("sup-1")
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), body["totalAnswered"])

	answers, ok := body["answers"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, answers, "q1")
	assert.Contains(t, answers, "q2")
}

func TestHealthCheck(t *testing.T) {
	h := NewHealthHandler("onboarding-service", "1.0.0")

	rec, body := doJSON(t, h.Check, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "onboarding-service", body["service"])
	assert.Equal(t, "1.0.0", body["version"])
	assert.NotEmpty(t, body["timestamp"])
}
