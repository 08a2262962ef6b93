package content_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/bootstrap"
	sharedauth "resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/config"
)

func newRouterAndToken(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	app, err := bootstrap.Build(config.Config{Env: "dev", JWTSecret: "test-secret"})
	require.NoError(t, err)
	token, err := app.Tokens.Issue(sharedauth.Identity{UserID: "user-1", Email: "ada@example.com"})
	require.NoError(t, err)
	return app.Router, token
}

func post(t *testing.T, router *gin.Engine, token, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	var out map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &out)
	return resp, out
}

func errorMessage(out map[string]any) string {
	body, _ := out["error"].(map[string]any)
	msg, _ := body["message"].(string)
	return msg
}

func TestGenerateSummaryEndpoint(t *testing.T) {
	router, token := newRouterAndToken(t)

	resp, out := post(t, router, token, "/api/ai/generate-summary", `{"name":"Ada","targetRole":"Data Analyst","skills":"SQL, Python","experience":["Acme"]}`)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "fallback", out["source"])
	assert.Contains(t, out["summary"], "Data Analyst")

	resp, out = post(t, router, token, "/api/ai/generate-summary", `{"name":"Ada"}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "Name and target role are required", errorMessage(out))
}

func TestImproveDescriptionEndpoint(t *testing.T) {
	router, token := newRouterAndToken(t)

	resp, out := post(t, router, token, "/api/ai/improve-description", `{"description":"Built a website","position":"Engineer"}`)
	require.Equal(t, http.StatusOK, resp.Code)
	improved, _ := out["improved"].(string)
	assert.True(t, strings.HasPrefix(improved, "• Built a website"))
	assert.Len(t, strings.Split(improved, "\n"), 4)

	resp, out = post(t, router, token, "/api/ai/improve-description", `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "Description is required", errorMessage(out))
}

func TestSuggestSkillsEndpoint(t *testing.T) {
	router, token := newRouterAndToken(t)

	resp, out := post(t, router, token, "/api/ai/suggest-skills", `{"targetRole":"Product Manager","currentSkills":["Jira"]}`)
	require.Equal(t, http.StatusOK, resp.Code)
	skills, _ := out["skills"].([]any)
	assert.Contains(t, skills, "Roadmapping")

	resp, out = post(t, router, token, "/api/ai/suggest-skills", ``)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "Target role is required", errorMessage(out))
}

func TestAnalyzeResumeEndpoint(t *testing.T) {
	router, token := newRouterAndToken(t)

	var body bytes.Buffer
	require.NoError(t, json.NewEncoder(&body).Encode(map[string]any{
		"resumeData": map[string]any{"title": "CV", "personalInfo": map[string]any{"fullName": "Ada"}},
	}))
	resp, out := post(t, router, token, "/api/ai/analyze-resume", body.String())
	require.Equal(t, http.StatusOK, resp.Code)
	analysis, _ := out["analysis"].(map[string]any)
	assert.Equal(t, float64(75), analysis["score"])
	assert.Len(t, analysis["suggestions"], 6)

	resp, out = post(t, router, token, "/api/ai/analyze-resume", `{"resumeData":null}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "Resume data is required", errorMessage(out))
}

func TestContentEndpointsRequireAuth(t *testing.T) {
	router, _ := newRouterAndToken(t)
	resp, _ := post(t, router, "", "/api/ai/generate-summary", `{"name":"Ada","targetRole":"Dev"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
