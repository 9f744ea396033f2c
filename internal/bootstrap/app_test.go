package bootstrap

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elevate-backend/internal/extract/pdftest"
	"elevate-backend/internal/shared/auth"
	"elevate-backend/internal/shared/config"
	"elevate-backend/internal/users"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Env:             "dev",
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
		FrontendURL:     "http://localhost:5173",
	}
}

func buildApp(t *testing.T, cfg config.Config) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	app, err := Build(t.Context(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func upload(t *testing.T, app *App, token string) string {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	fw, err := w.CreateFormFile("file", "cv.pdf")
	require.NoError(t, err)
	_, err = fw.Write(pdftest.Build("Senior Go engineer", ""))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var out struct {
		ResumeID string `json:"resumeId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.NotEmpty(t, out.ResumeID)
	return out.ResumeID
}

func usersFixture() users.User {
	return users.User{Name: "Ada", Email: "ada@example.com", Provider: "google", ProviderID: "g-1"}
}

func TestBuildInMemoryDefaults(t *testing.T) {
	app := buildApp(t, testConfig(t))

	assert.Nil(t, app.DB)
	assert.NotNil(t, app.Signer)
	assert.Nil(t, app.BillingService.Provider)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","database":"memory","ai":"unconfigured"}`, rec.Body.String())
}

func TestBuildRequiresDatabaseOutsideDev(t *testing.T) {
	cfg := testConfig(t)
	cfg.Env = "production"
	cfg.JWTSecret = "secret"
	_, err := Build(t.Context(), cfg)
	require.Error(t, err)
}

func TestBuildRejectsS3WithoutBucket(t *testing.T) {
	cfg := testConfig(t)
	cfg.ObjectStoreType = "s3"
	_, err := Build(t.Context(), cfg)
	require.Error(t, err)
}

func TestAnonymousAnalysisIsRedactedMock(t *testing.T) {
	app := buildApp(t, testConfig(t))
	resumeID := upload(t, app, "")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes/"+resumeID+"/analyze", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, resumeID, out["resumeId"])
	assert.EqualValues(t, 85, out["atsScore"])
	assert.Equal(t, true, out["partialAnalysis"])

	rec = httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/resumes/"+resumeID+"/analysis", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSignedInUserFlow(t *testing.T) {
	app := buildApp(t, testConfig(t))
	user, err := app.UsersService.UpsertFromAuth(t.Context(), usersFixture())
	require.NoError(t, err)
	token, err := app.Signer.Sign(auth.Identity{UserID: user.ID, Email: user.Email})
	require.NoError(t, err)

	resumeID := upload(t, app, token)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes/"+resumeID+"/analyze", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/v1/resumes/history", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var history []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	require.Len(t, history, 1)
	assert.EqualValues(t, 85, history[0]["atsScore"])

	req = httptest.NewRequest(http.MethodGet, "/api/v1/user/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCheckoutUnavailableWithoutStripe(t *testing.T) {
	app := buildApp(t, testConfig(t))
	token, err := app.Signer.Sign(auth.Identity{UserID: "u1", Email: "a@example.com"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/billing/checkout-session", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
