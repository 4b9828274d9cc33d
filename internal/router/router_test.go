package router

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/hadiajavedd/SaySoPrototype/internal/config"
	"github.com/hadiajavedd/SaySoPrototype/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fieldNamePattern = regexp.MustCompile(`name="(q\d+)"`)

// newTestEngine builds a full engine over a fresh store.
func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	config.Conf = &config.Config{}
	config.Conf.Server.SessionSecret = "test-secret"

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	return Setup(zap.NewNop(), filepath.Join("..", "..", "templates", "*.html"))
}

// client plays a browser: it carries cookies between requests.
type client struct {
	t       *testing.T
	engine  *gin.Engine
	cookies map[string]*http.Cookie
}

func newClient(t *testing.T, engine *gin.Engine) *client {
	return &client{t: t, engine: engine, cookies: make(map[string]*http.Cookie)}
}

func (c *client) do(method, path, contentType string, body io.Reader) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	c.engine.ServeHTTP(w, req)

	for _, cookie := range w.Result().Cookies() {
		c.cookies[cookie.Name] = cookie
	}
	return w
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(http.MethodGet, path, "", nil)
}

func (c *client) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	return c.do(http.MethodPost, path, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
}

func (c *client) json(method, path, body string) *httptest.ResponseRecorder {
	return c.do(method, path, "application/json", strings.NewReader(body))
}

func (c *client) signupAndLogin(username, password string) {
	c.t.Helper()
	form := url.Values{"username": {username}, "password": {password}}

	w := c.postForm("/signup", form)
	require.Equal(c.t, http.StatusFound, w.Code, "signup should redirect: %s", w.Body.String())

	w = c.postForm("/", form)
	require.Equal(c.t, http.StatusFound, w.Code, "login should redirect")
	require.Equal(c.t, "/homepage", w.Header().Get("Location"))
}

func (c *client) createQuestionnaire(title string, questions string) uint {
	c.t.Helper()
	body := fmt.Sprintf(`{"title":%q,"questions":%s}`, title, questions)
	w := c.json(http.MethodPost, "/api/questionnaires", body)
	require.Equal(c.t, http.StatusOK, w.Code, w.Body.String())

	var out struct {
		ID uint `json:"id"`
	}
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &out))
	require.NotZero(c.t, out.ID)
	return out.ID
}

func TestEndToEndSurveyFlow(t *testing.T) {
	engine := newTestEngine(t)

	owner := newClient(t, engine)
	owner.signupAndLogin("alice", "password123")

	id := owner.createQuestionnaire("Survey", `[{"text":"Name?","qtype":"short"}]`)

	// An anonymous respondent takes the questionnaire.
	respondent := newClient(t, engine)
	takePath := fmt.Sprintf("/take-questionnaire/%d", id)

	w := respondent.get(takePath)
	require.Equal(t, http.StatusOK, w.Code)
	match := fieldNamePattern.FindStringSubmatch(w.Body.String())
	require.NotNil(t, match, "take page should contain a question field")

	form := url.Values{match[1]: {"Bob"}}
	w = respondent.postForm(takePath, form)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Thank you")

	// The owner sees the aligned answer.
	w = owner.get(fmt.Sprintf("/responses/%d", id))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Bob")
	assert.Contains(t, w.Body.String(), "Name?")
}

func TestAPIMe(t *testing.T) {
	engine := newTestEngine(t)

	anonymous := newClient(t, engine)
	w := anonymous.get("/api/me")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	alice := newClient(t, engine)
	alice.signupAndLogin("alice", "password123")
	w = alice.get("/api/me")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"username":"alice"}`, w.Body.String())
}

func TestMyQuestionnairesTimestamps(t *testing.T) {
	engine := newTestEngine(t)

	alice := newClient(t, engine)
	alice.signupAndLogin("alice", "password123")
	alice.createQuestionnaire("Survey", `[]`)

	w := alice.get("/api/my-questionnaires")
	require.Equal(t, http.StatusOK, w.Code)

	var items []struct {
		ID         uint   `json:"id"`
		Title      string `json:"title"`
		CreatedAt  string `json:"created_at"`
		LastOpened string `json:"last_opened"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Survey", items[0].Title)

	_, err := time.Parse(time.RFC3339, items[0].CreatedAt)
	assert.NoError(t, err, "created_at must be ISO-8601")
	_, err = time.Parse(time.RFC3339, items[0].LastOpened)
	assert.NoError(t, err, "last_opened must be ISO-8601")
}

func TestCrossUserAccessLooksMissing(t *testing.T) {
	engine := newTestEngine(t)

	alice := newClient(t, engine)
	alice.signupAndLogin("alice", "password123")
	id := alice.createQuestionnaire("Alice's survey", `[{"text":"Q1","qtype":"short"}]`)

	bob := newClient(t, engine)
	bob.signupAndLogin("bob", "password456")

	w := bob.json(http.MethodPut, fmt.Sprintf("/api/questionnaire/%d", id), `{"title":"Hijacked","questions":[]}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = bob.do(http.MethodDelete, fmt.Sprintf("/api/questionnaires/%d", id), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = bob.get(fmt.Sprintf("/responses/%d", id))
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Alice still owns an intact questionnaire.
	w = alice.get(fmt.Sprintf("/view-questionnaire/%d", id))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Alice&#39;s survey")
}

func TestAuthRequiredRedirectsGuests(t *testing.T) {
	engine := newTestEngine(t)
	guest := newClient(t, engine)

	for _, path := range []string{"/homepage", "/profile", "/create-questionnaire", "/responses/1", "/share/1"} {
		w := guest.get(path)
		assert.Equal(t, http.StatusFound, w.Code, "path %s", path)
		assert.Equal(t, "/", w.Header().Get("Location"), "path %s", path)
	}
}

func TestTakeUnknownQuestionnaire(t *testing.T) {
	engine := newTestEngine(t)
	guest := newClient(t, engine)

	w := guest.get("/take-questionnaire/9999")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = guest.postForm("/take-questionnaire/9999", url.Values{})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLoginFailureRerendersForm(t *testing.T) {
	engine := newTestEngine(t)
	guest := newClient(t, engine)

	w := guest.postForm("/", url.Values{"username": {"ghost"}, "password": {"whatever"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Login failed")
}

func TestSharePageEmbedsQRCode(t *testing.T) {
	engine := newTestEngine(t)

	alice := newClient(t, engine)
	alice.signupAndLogin("alice", "password123")
	id := alice.createQuestionnaire("Survey", `[]`)

	w := alice.get(fmt.Sprintf("/share/%d", id))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), fmt.Sprintf("/take-questionnaire/%d", id))
	assert.Contains(t, w.Body.String(), "data:image/png;base64,")
}

func TestSubmissionChartRenders(t *testing.T) {
	engine := newTestEngine(t)

	alice := newClient(t, engine)
	alice.signupAndLogin("alice", "password123")
	id := alice.createQuestionnaire("Survey", `[{"text":"Q1","qtype":"short"}]`)

	w := alice.get(fmt.Sprintf("/responses/%d/chart", id))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "echarts")
}

func TestDeleteAccountEndsSessionAndData(t *testing.T) {
	engine := newTestEngine(t)

	alice := newClient(t, engine)
	alice.signupAndLogin("alice", "password123")
	id := alice.createQuestionnaire("Survey", `[]`)

	w := alice.postForm("/delete-account", url.Values{})
	require.Equal(t, http.StatusFound, w.Code)

	w = alice.get("/api/me")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	guest := newClient(t, engine)
	w = guest.get(fmt.Sprintf("/api/questionnaire/%d", id))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEditReplacesQuestionsViaAPI(t *testing.T) {
	engine := newTestEngine(t)

	alice := newClient(t, engine)
	alice.signupAndLogin("alice", "password123")
	id := alice.createQuestionnaire("Survey", `[{"text":"Old","qtype":"short"}]`)

	w := alice.json(http.MethodPut, fmt.Sprintf("/api/questionnaire/%d", id),
		`{"title":"Survey v2","questions":[{"text":"New A","qtype":"short"},{"text":"New B","qtype":"long"}]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	w = alice.get(fmt.Sprintf("/api/questionnaire/%d", id))
	require.Equal(t, http.StatusOK, w.Code)

	var out struct {
		Title     string `json:"title"`
		Questions []struct {
			Text  string `json:"text"`
			QType string `json:"qtype"`
		} `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "Survey v2", out.Title)
	require.Len(t, out.Questions, 2)
	assert.Equal(t, "New A", out.Questions[0].Text)
	assert.Equal(t, "New B", out.Questions[1].Text)
}
