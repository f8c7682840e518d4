package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"nanny-match/internal/delivery/http/handler"
	"nanny-match/internal/delivery/http/middleware"
	v1 "nanny-match/internal/delivery/http/routes/v1"
	"nanny-match/internal/domain/answer"
	"nanny-match/internal/domain/onboarding"
	"nanny-match/internal/domain/user"
	"nanny-match/internal/pkg/apperr"
	"nanny-match/internal/pkg/jwt"
	"nanny-match/internal/query"
	"nanny-match/internal/usecase"
)

type fakeOnboarding struct {
	configs []onboarding.Configuration
	err     error
	lastQ   usecase.ConfigQuery
}

func (f *fakeOnboarding) Configurations(_ context.Context, q usecase.ConfigQuery) ([]onboarding.Configuration, error) {
	f.lastQ = q
	return f.configs, f.err
}

func (f *fakeOnboarding) DefaultConfigurations(context.Context, string) ([]onboarding.Configuration, error) {
	return []onboarding.Configuration{}, f.err
}

func (f *fakeOnboarding) Steps(context.Context, usecase.StepQuery) ([]onboarding.Step, error) {
	return nil, f.err
}

func (f *fakeOnboarding) StepsByRole(context.Context, string) ([]onboarding.Step, error) {
	return nil, f.err
}

func (f *fakeOnboarding) Fields(context.Context, usecase.FieldQuery) ([]onboarding.Field, error) {
	return nil, f.err
}

func (f *fakeOnboarding) ActiveFields(context.Context, string) ([]onboarding.Field, error) {
	return nil, f.err
}

type fakeAnswers struct {
	in     usecase.AnswerInput
	userID uuid.UUID
	err    error
}

func (f *fakeAnswers) Save(_ context.Context, userID uuid.UUID, in usecase.AnswerInput) (usecase.SavedAnswer, error) {
	f.in, f.userID = in, userID
	if f.err != nil {
		return usecase.SavedAnswer{}, f.err
	}
	return usecase.SavedAnswer{
		Answer:   answer.Answer{ID: uuid.New(), UserID: userID, StepKey: in.StepKey, FieldKey: in.FieldKey, Value: in.Value},
		Inserted: true,
	}, nil
}

func (f *fakeAnswers) List(context.Context, uuid.UUID, string) ([]answer.Answer, error) {
	return []answer.Answer{}, f.err
}

type fakeTables struct {
	q   usecase.TableQuery
	err error
}

func (f *fakeTables) List(_ context.Context, q usecase.TableQuery) ([]query.Row, error) {
	f.q = q
	if f.err != nil {
		return nil, f.err
	}
	return []query.Row{{"id": "1"}}, nil
}

func (f *fakeTables) Entities() []string { return nil }

type fakeNannies struct {
	limit string
	err   error
}

func (f *fakeNannies) Simple(_ context.Context, limit string) ([]user.NannySummary, error) {
	f.limit = limit
	if f.err != nil {
		return nil, f.err
	}
	return []user.NannySummary{{UserID: uuid.New(), FirstName: "Olena"}}, nil
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	app     *fiber.App
	jwt     *jwt.HMACService
	onb     *fakeOnboarding
	answers *fakeAnswers
	tables  *fakeTables
	nannies *fakeNannies
}

func newTestServer() *testServer {
	s := &testServer{
		jwt:     jwt.NewHMACService("access", "refresh", time.Minute, time.Hour),
		onb:     &fakeOnboarding{},
		answers: &fakeAnswers{},
		tables:  &fakeTables{},
		nannies: &fakeNannies{},
	}
	errMw := middleware.NewErrorMiddleware(nil)
	s.app = fiber.New(fiber.Config{ErrorHandler: errMw.ErrorHandler})
	s.app.Use(errMw.Middleware())

	v1.Register(s.app.Group("/api/v1"), v1.Handlers{
		Onboarding: handler.NewOnboardingHandler(s.onb),
		Answers:    handler.NewAnswerHandler(s.answers),
		Tables:     handler.NewTableHandler(s.tables),
		Nannies:    handler.NewNannyHandler(s.nannies),
	}, middleware.NewAuthMiddleware(s.jwt))
	return s
}

func (s *testServer) do(t *testing.T, method, target, body string, auth bool) (int, envelope) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		tok, err := s.jwt.GenerateAccessToken(uuid.New(), "parent@example.com")
		if err != nil {
			t.Fatalf("token: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := s.app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return resp.StatusCode, env
}

func TestOnboardingConfigs_PublicAndFiltered(t *testing.T) {
	s := newTestServer()
	s.onb.configs = []onboarding.Configuration{{ID: uuid.New(), Name: "Parent", TargetRole: "parent"}}

	status, env := s.do(t, http.MethodGet, "/api/v1/onboarding_configs?target_role=parent&is_default=true", "", false)
	if status != http.StatusOK || env.Status != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", status, env.Message)
	}
	if s.onb.lastQ.TargetRole != "parent" || s.onb.lastQ.IsDefault != "true" {
		t.Fatalf("query not forwarded: %+v", s.onb.lastQ)
	}
	var items []map[string]any
	if err := json.Unmarshal(env.Data, &items); err != nil || len(items) != 1 || items[0]["target_role"] != "parent" {
		t.Fatalf("unexpected data: %s", env.Data)
	}
}

func TestOnboardingConfigs_ValidationError(t *testing.T) {
	s := newTestServer()
	s.onb.err = apperr.Validation("onboarding.configurations", "is_active must be true or false")

	status, env := s.do(t, http.MethodGet, "/api/v1/onboarding_configs?is_active=maybe", "", false)
	if status != http.StatusBadRequest || env.Message != "is_active must be true or false" {
		t.Fatalf("expected 400 with message, got %d %q", status, env.Message)
	}
}

func TestDefaultConfig_EmptyList(t *testing.T) {
	s := newTestServer()
	status, env := s.do(t, http.MethodGet, "/api/v1/onboarding/configs/nanny", "", false)
	if status != http.StatusOK || string(env.Data) != "[]" {
		t.Fatalf("expected empty list, got %d %s", status, env.Data)
	}
}

func TestStorageErrorIsNotLeaked(t *testing.T) {
	s := newTestServer()
	s.onb.err = apperr.Storage("onboarding.steps", context.DeadlineExceeded)

	status, env := s.do(t, http.MethodGet, "/api/v1/onboarding_steps", "", false)
	if status != http.StatusInternalServerError || strings.Contains(env.Message, "deadline") {
		t.Fatalf("expected opaque 500, got %d %q", status, env.Message)
	}
}

func TestAnswers_RequireAuth(t *testing.T) {
	s := newTestServer()
	status, _ := s.do(t, http.MethodPost, "/api/v1/onboarding/data", `{}`, false)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}
}

func TestAnswers_SaveTaggedValue(t *testing.T) {
	s := newTestServer()
	body := `{"config_id":"` + uuid.NewString() + `","step_key":"basic_info","field_key":"child_age","value":{"type":"number","value":4}}`

	status, env := s.do(t, http.MethodPost, "/api/v1/onboarding/data", body, true)
	if status != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", status, env.Message)
	}
	if n, ok := s.answers.in.Value.Number(); !ok || n != 4 {
		t.Fatalf("expected number 4, got %v", s.answers.in.Value)
	}
	if s.answers.userID == uuid.Nil {
		t.Fatalf("expected caller id from token")
	}
	var data map[string]any
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data["number_value"] != float64(4) || data["text_value"] != nil {
		t.Fatalf("unexpected slots: %v", data)
	}
}

func TestAnswers_SaveLegacySlots(t *testing.T) {
	s := newTestServer()
	cfg := uuid.NewString()

	status, _ := s.do(t, http.MethodPost, "/api/v1/onboarding/data",
		`{"config_id":"`+cfg+`","step_key":"schedule","field_key":"start","time_value":"07:45"}`, true)
	if status != http.StatusCreated {
		t.Fatalf("expected 201, got %d", status)
	}
	if s.answers.in.Value.String() != "07:45:00" {
		t.Fatalf("expected time value, got %v", s.answers.in.Value)
	}

	status, env := s.do(t, http.MethodPost, "/api/v1/onboarding/data",
		`{"config_id":"`+cfg+`","step_key":"s","field_key":"f","text_value":"a","number_value":1}`, true)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for two slots, got %d (%s)", status, env.Message)
	}

	status, _ = s.do(t, http.MethodPost, "/api/v1/onboarding/data",
		`{"config_id":"`+cfg+`","step_key":"s","field_key":"f","text_value":null}`, true)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for no value, got %d", status)
	}
}

func TestTables_FiltersAndNotFound(t *testing.T) {
	s := newTestServer()

	status, _ := s.do(t, http.MethodGet, "/api/v1/profiles?email__eq=a%40example.com&order_by=created_at:desc&limit=5&utm=x", "", true)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if s.tables.q.Table != "profiles" || s.tables.q.Filters["email__eq"] != "a@example.com" || s.tables.q.Limit != "5" {
		t.Fatalf("unexpected query: %+v", s.tables.q)
	}
	if _, ok := s.tables.q.Filters["utm"]; ok {
		t.Fatalf("plain keys must not be treated as filters")
	}

	s.tables.err = apperr.NotFound("tables.list", "unknown entity %q", "nope")
	status, _ = s.do(t, http.MethodGet, "/api/v1/nope", "", true)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}

	status, _ = s.do(t, http.MethodGet, "/api/v1/profiles", "", false)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", status)
	}
}

func TestNanniesSimple_PublicAndNotShadowedByTables(t *testing.T) {
	s := newTestServer()

	status, env := s.do(t, http.MethodGet, "/api/v1/nannies/simple?limit=2", "", false)
	if status != http.StatusOK {
		t.Fatalf("expected 200 without token, got %d", status)
	}
	if s.nannies.limit != "2" || s.tables.q.Table != "" {
		t.Fatalf("expected the nanny listing to serve the request, limit=%q table=%q", s.nannies.limit, s.tables.q.Table)
	}
	var data struct {
		Nannies []struct {
			FirstName string `json:"first_name"`
		} `json:"nannies"`
		Count int `json:"count"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Count != 1 || len(data.Nannies) != 1 || data.Nannies[0].FirstName != "Olena" {
		t.Fatalf("unexpected payload: %s", env.Data)
	}

	s.nannies.err = apperr.Validation("nannies.simple", "limit must be between 1 and 10")
	status, _ = s.do(t, http.MethodGet, "/api/v1/nannies/simple?limit=11", "", false)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
}

func TestDevOnly(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.NewErrorMiddleware(nil).ErrorHandler})
	app.Get("/dev/ping", middleware.DevOnly(false), func(c fiber.Ctx) error { return c.SendString("pong") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/dev/ping", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 outside development, got %d", resp.StatusCode)
	}
}
