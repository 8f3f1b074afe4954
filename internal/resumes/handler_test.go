package resumes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"career-backend/internal/bootstrap"
	"career-backend/internal/shared/auth"
	"career-backend/internal/shared/config"
	"career-backend/internal/users"
	"career-backend/resume/model"
)

type testApp struct {
	router *gin.Engine
	app    *bootstrap.App
}

func newTestApp(t *testing.T) testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	app, err := bootstrap.Build(config.Config{Port: "0", Env: "test"})
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return testApp{router: app.Router, app: app}
}

// onboard signs a user in and completes onboarding directly through the service.
func (a testApp) onboard(t *testing.T, userID string) string {
	t.Helper()
	_, err := a.app.UsersService.SubmitOnboarding(context.Background(), users.Identity{
		ID:    userID,
		Email: userID + "@example.com",
	}, model.OnboardingProfile{
		Mobile:        "+1 555 0100",
		Location:      "Toronto",
		LinkedIn:      "https://linkedin.com/in/" + userID,
		Industry:      "tech",
		SubIndustries: []string{"Software Development"},
		Experience:    4,
		Bio:           "Engineer with a long history of shipping services.",
		Skills:        []string{"Go"},
	})
	if err != nil {
		t.Fatalf("onboard: %v", err)
	}
	return signIn(t, userID)
}

func signIn(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.SignJWT(auth.Claims{
		Email:            userID + "@example.com",
		Name:             "Ada Lovelace",
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID},
	})
	if err != nil {
		t.Fatalf("sign jwt: %v", err)
	}
	return "Bearer " + token
}

func (a testApp) do(method, path, authz string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authz != "" {
		req.Header.Set("Authorization", authz)
	} else {
		req.Header.Set("X-Guest-Id", "guest-1")
	}
	resp := httptest.NewRecorder()
	a.router.ServeHTTP(resp, req)
	return resp
}

func sampleDocument() map[string]any {
	return map[string]any{
		"contactInfo": map[string]any{"email": "ada@example.com", "mobile": "+1 555 0100"},
		"summary":     "Engineer.",
		"skills":      []string{"Go"},
		"experience": []map[string]any{{
			"title":        "Engineer",
			"organization": "Analytical Engines",
			"startDate":    "2020-01",
			"current":      true,
			"description":  "Built things.",
		}},
	}
}

func TestResumesRequireOnboarding(t *testing.T) {
	a := newTestApp(t)

	if resp := a.do(http.MethodGet, "/api/v1/resumes", "", nil); resp.Code != http.StatusUnauthorized {
		t.Fatalf("guest: expected 401, got %d", resp.Code)
	}
	if resp := a.do(http.MethodGet, "/api/v1/resumes", signIn(t, "fresh"), nil); resp.Code != http.StatusForbidden {
		t.Fatalf("not onboarded: expected 403, got %d", resp.Code)
	}
}

func TestResumePreview(t *testing.T) {
	a := newTestApp(t)
	authz := a.onboard(t, "u1")

	resp := a.do(http.MethodPost, "/api/v1/resumes/preview", authz, map[string]any{"document": sampleDocument()})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var body struct {
		Markdown string            `json:"markdown"`
		Valid    bool              `json:"valid"`
		Errors   map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Valid || len(body.Errors) != 0 {
		t.Fatalf("expected valid preview, got %+v", body)
	}
	if !strings.Contains(body.Markdown, "Ada Lovelace") || !strings.Contains(body.Markdown, "### Engineer @ Analytical Engines") {
		t.Fatalf("unexpected markdown:\n%s", body.Markdown)
	}
}

func TestResumeSaveListDownloadDelete(t *testing.T) {
	a := newTestApp(t)
	authz := a.onboard(t, "u1")

	resp := a.do(http.MethodPost, "/api/v1/resumes", authz, map[string]any{
		"name":     "Backend/Platform",
		"document": sampleDocument(),
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var saved struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &saved); err != nil {
		t.Fatalf("decode saved: %v", err)
	}
	if saved.ID == "" || saved.Name != "Backend/Platform" {
		t.Fatalf("unexpected saved: %+v", saved)
	}

	resp = a.do(http.MethodPost, "/api/v1/resumes", authz, map[string]any{
		"id":       saved.ID,
		"name":     "Backend/Platform",
		"document": sampleDocument(),
		"content":  "# Hand edited",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = a.do(http.MethodGet, "/api/v1/resumes", authz, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", resp.Code)
	}
	var list struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list.Items) != 1 || list.Items[0].ID != saved.ID {
		t.Fatalf("unexpected list: %+v", list)
	}

	resp = a.do(http.MethodGet, "/api/v1/resumes/"+saved.ID+"/download", authz, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("download: expected 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("Content-Disposition"); got != `attachment; filename="Backend_Platform.md"` {
		t.Fatalf("unexpected disposition %q", got)
	}
	if !strings.HasPrefix(resp.Header().Get("Content-Type"), "text/markdown") {
		t.Fatalf("unexpected content type %q", resp.Header().Get("Content-Type"))
	}
	if resp.Body.String() != "# Hand edited" {
		t.Fatalf("expected hand edit to be saved, got %q", resp.Body.String())
	}

	other := a.onboard(t, "u2")
	if resp := a.do(http.MethodGet, "/api/v1/resumes/"+saved.ID, other, nil); resp.Code != http.StatusForbidden {
		t.Fatalf("other user: expected 403, got %d", resp.Code)
	}

	if resp := a.do(http.MethodDelete, "/api/v1/resumes/"+saved.ID, authz, nil); resp.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", resp.Code)
	}
	if resp := a.do(http.MethodGet, "/api/v1/resumes/"+saved.ID, authz, nil); resp.Code != http.StatusNotFound {
		t.Fatalf("after delete: expected 404, got %d", resp.Code)
	}
}

func TestResumeSaveRequiresContent(t *testing.T) {
	a := newTestApp(t)
	authz := a.onboard(t, "u1")

	resp := a.do(http.MethodPost, "/api/v1/resumes", authz, map[string]any{"name": "Empty"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
