package web

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"

	"newsboard/database"
	"newsboard/logger"
	"newsboard/web/session"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServer(t *testing.T) *httptest.Server {
	t.Setenv("NB_LOG_FOLDER", t.TempDir())
	logger.InitLogger(logging.ERROR)

	dbPath := "test.db"
	os.Remove(dbPath)
	require.NoError(t, database.InitDB(dbPath))

	s := NewServer()
	engine, err := s.initRouter()
	require.NoError(t, err)

	ts := httptest.NewServer(engine)
	t.Cleanup(func() {
		ts.Close()
		db, _ := database.GetDB().DB()
		db.Close()
		os.Remove(dbPath)
	})
	return ts
}

func newClient(t *testing.T) *http.Client {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func getBody(t *testing.T, client *http.Client, url string) (int, string) {
	resp, err := client.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func postForm(t *testing.T, client *http.Client, url string, data url.Values) (int, string) {
	resp, err := client.PostForm(url, data)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func register(t *testing.T, client *http.Client, baseURL, login, password string) {
	status, _ := postForm(t, client, baseURL+"/reg", url.Values{
		"login":            {login},
		"password":         {password},
		"confirm_password": {password},
	})
	require.Equal(t, http.StatusOK, status)
	status, _ = postForm(t, client, baseURL+"/login", url.Values{
		"login":    {login},
		"password": {password},
	})
	require.Equal(t, http.StatusOK, status)
}

func TestProtectedRoutesRequireLogin(t *testing.T) {
	ts := setupServer(t)
	client := newClient(t)

	for _, path := range []string{"/news", "/news/1", "/news_delete/1", "/logout"} {
		status, body := getBody(t, client, ts.URL+path)
		assert.Equal(t, http.StatusUnauthorized, status, path)
		assert.Contains(t, body, "401", path)
	}
}

func TestRegisterValidation(t *testing.T) {
	ts := setupServer(t)
	client := newClient(t)

	// mismatched confirmation creates no user
	status, body := postForm(t, client, ts.URL+"/reg", url.Values{
		"login":            {"alice"},
		"password":         {"p"},
		"confirm_password": {"q"},
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Passwords do not match")

	register(t, client, ts.URL, "alice", "p")

	// duplicate login never creates a second user
	status, body = postForm(t, newClient(t), ts.URL+"/reg", url.Values{
		"login":            {"alice"},
		"password":         {"x"},
		"confirm_password": {"x"},
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "User already exists")

	// missing fields re-render the form with inline errors
	status, body = postForm(t, newClient(t), ts.URL+"/reg", url.Values{})
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "is required")
}

func TestLoginErrorsDoNotLeak(t *testing.T) {
	ts := setupServer(t)
	client := newClient(t)
	register(t, client, ts.URL, "alice", "p")

	// wrong password and unknown login answer with the identical message
	_, wrongPass := postForm(t, newClient(t), ts.URL+"/login", url.Values{
		"login":    {"alice"},
		"password": {"nope"},
	})
	_, unknownUser := postForm(t, newClient(t), ts.URL+"/login", url.Values{
		"login":    {"nobody"},
		"password": {"nope"},
	})
	assert.Contains(t, wrongPass, "Incorrect login or password")
	assert.Contains(t, unknownUser, "Incorrect login or password")
}

func TestNewsLifecycle(t *testing.T) {
	ts := setupServer(t)

	alice := newClient(t)
	register(t, alice, ts.URL, "alice", "p")

	// fresh account sees no posts
	status, body := getBody(t, alice, ts.URL+"/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "No news yet.")

	// create a private post
	status, body = postForm(t, alice, ts.URL+"/news", url.Values{
		"title":      {"secret plans"},
		"content":    {"C"},
		"is_private": {"true"},
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "secret plans")

	// invisible to anonymous
	_, body = getBody(t, newClient(t), ts.URL+"/")
	assert.NotContains(t, body, "secret plans")

	// invisible to another user, and not editable or deletable
	bob := newClient(t)
	register(t, bob, ts.URL, "bob", "p")
	_, body = getBody(t, bob, ts.URL+"/")
	assert.NotContains(t, body, "secret plans")

	status, _ = getBody(t, bob, ts.URL+"/news/1")
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = postForm(t, bob, ts.URL+"/news/1", url.Values{
		"title": {"hijacked"},
	})
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = getBody(t, bob, ts.URL+"/news_delete/1")
	assert.Equal(t, http.StatusNotFound, status)

	// still intact for the owner
	_, body = getBody(t, alice, ts.URL+"/")
	assert.Contains(t, body, "secret plans")

	// owner edits it
	status, _ = postForm(t, alice, ts.URL+"/news/1", url.Values{
		"title":   {"updated plans"},
		"content": {"C2"},
	})
	assert.Equal(t, http.StatusOK, status)
	_, body = getBody(t, alice, ts.URL+"/")
	assert.Contains(t, body, "updated plans")
	assert.NotContains(t, body, "secret plans")

	// edit form is pre-populated
	_, body = getBody(t, alice, ts.URL+"/news/1")
	assert.Contains(t, body, "updated plans")

	// owner deletes it
	status, _ = getBody(t, alice, ts.URL+"/news_delete/1")
	assert.Equal(t, http.StatusOK, status)
	_, body = getBody(t, alice, ts.URL+"/")
	assert.NotContains(t, body, "updated plans")

	// deleting again is a 404, not a silent redirect
	status, _ = getBody(t, alice, ts.URL+"/news_delete/1")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestLogout(t *testing.T) {
	ts := setupServer(t)
	client := newClient(t)
	register(t, client, ts.URL, "alice", "p")

	status, body := getBody(t, client, ts.URL+"/logout")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Log in")

	// identity is gone
	status, _ = getBody(t, client, ts.URL+"/news")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRememberMeCookieLifetime(t *testing.T) {
	ts := setupServer(t)
	register(t, newClient(t), ts.URL, "alice", "p")

	// non-redirecting client so the login response's Set-Cookie is
	// observable
	plain := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	sessionCookie := func(data url.Values) *http.Cookie {
		resp, err := plain.PostForm(ts.URL+"/login", data)
		require.NoError(t, err)
		_, err = io.Copy(io.Discard, resp.Body)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusFound, resp.StatusCode)

		var found *http.Cookie
		for _, ck := range resp.Cookies() {
			if ck.Name == session.SessionName {
				found = ck
			}
		}
		require.NotNil(t, found)
		return found
	}

	// without remember_me the cookie is session-scoped (no Max-Age)
	ck := sessionCookie(url.Values{
		"login":    {"alice"},
		"password": {"p"},
	})
	assert.Equal(t, 0, ck.MaxAge)

	// with remember_me it persists for 30 days
	ck = sessionCookie(url.Values{
		"login":       {"alice"},
		"password":    {"p"},
		"remember_me": {"true"},
	})
	assert.Equal(t, 30*24*60*60, ck.MaxAge)
}

func TestLanguageSelection(t *testing.T) {
	ts := setupServer(t)

	// default language
	_, body := getBody(t, newClient(t), ts.URL+"/login")
	assert.Contains(t, body, "Log in")

	// the lang cookie switches the page language for that request only
	req, err := http.NewRequest(http.MethodGet, ts.URL+"/login", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: "lang", Value: "ru-RU"})
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	ruBody, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(ruBody), "Вход")

	// the next request without the cookie is back to the default
	_, body = getBody(t, newClient(t), ts.URL+"/login")
	assert.Contains(t, body, "Log in")
	assert.NotContains(t, body, "Вход")
}

func TestUnknownRouteRenders404(t *testing.T) {
	ts := setupServer(t)
	status, body := getBody(t, newClient(t), ts.URL+"/no/such/page")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, "404")
}
