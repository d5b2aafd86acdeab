package web_test

import (
	"bytes"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/jkwan-hk/eatery/internal/factory"
	"github.com/jkwan-hk/eatery/internal/web"
)

// webTestServer provides a test server for web interface testing
type webTestServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.TestApp
	cookies *cookieJar
}

// newWebTestServer creates a new test server with all dependencies wired
func newWebTestServer(t *testing.T) *webTestServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app := factory.NewTestApp()

	router := web.NewRouter(web.RouterConfig{
		Logger:           logger,
		AuthService:      app.AuthService,
		DirectoryService: app.DirectoryService,
		Sessions:         app.Sessions,
	})

	return &webTestServer{
		t:       t,
		handler: router,
		app:     app,
		cookies: newCookieJar(),
	}
}

// request makes an HTTP request and returns the response
func (ts *webTestServer) request(method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	// Add cookies from jar
	ts.cookies.addTo(req)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	// Extract Set-Cookie headers into jar
	ts.cookies.extract(rr)

	return rr
}

// get makes a GET request
func (ts *webTestServer) get(path string) *httptest.ResponseRecorder {
	return ts.request(http.MethodGet, path, nil, "")
}

// post makes a POST request with urlencoded form data
func (ts *webTestServer) post(path string, form url.Values) *httptest.ResponseRecorder {
	return ts.request(http.MethodPost, path, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
}

// postMultipart makes a POST request with a multipart form, optionally
// attaching a photo file part
func (ts *webTestServer) postMultipart(path string, fields map[string]string, photo []byte, photoMimetype string) *httptest.ResponseRecorder {
	ts.t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, value := range fields {
		require.NoError(ts.t, mw.WriteField(name, value))
	}
	if photo != nil {
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Disposition", `form-data; name="photo"; filename="photo"`)
		hdr.Set("Content-Type", photoMimetype)
		part, err := mw.CreatePart(hdr)
		require.NoError(ts.t, err)
		_, err = part.Write(photo)
		require.NoError(ts.t, err)
	}
	require.NoError(ts.t, mw.Close())

	return ts.request(http.MethodPost, path, &buf, mw.FormDataContentType())
}

// followRedirect follows the Location header of a redirect response
func (ts *webTestServer) followRedirect(rr *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	ts.t.Helper()
	location := rr.Header().Get("Location")
	require.NotEmpty(ts.t, location, "Expected Location header for redirect")
	return ts.get(location)
}

// parseHTML parses the response body as HTML
func parseHTML(r io.Reader) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		panic(err)
	}
	return doc
}

// cookieJar maintains cookies across requests (like a browser would)
type cookieJar struct {
	cookies map[string]*http.Cookie
}

func newCookieJar() *cookieJar {
	return &cookieJar{
		cookies: make(map[string]*http.Cookie),
	}
}

// addTo adds all cookies to the request
func (j *cookieJar) addTo(req *http.Request) {
	for _, cookie := range j.cookies {
		req.AddCookie(cookie)
	}
}

// extract extracts Set-Cookie headers from response
func (j *cookieJar) extract(rr *httptest.ResponseRecorder) {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.MaxAge < 0 {
			// Cookie being deleted
			delete(j.cookies, cookie.Name)
		} else {
			j.cookies[cookie.Name] = cookie
		}
	}
}

// hasSession returns true if the session cookie is set
func (j *cookieJar) hasSession() bool {
	_, ok := j.cookies["session"]
	return ok
}

// Helper functions for common test operations

// signUpAndIn registers a user and signs them in
func (ts *webTestServer) signUpAndIn(username, password string) {
	ts.t.Helper()

	form := url.Values{
		"username":         {username},
		"password":         {password},
		"password_confirm": {password},
	}
	rr := ts.post("/signup", form)
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after signup")

	ts.signIn(username, password)
}

// signIn authenticates an already-registered user
func (ts *webTestServer) signIn(username, password string) {
	ts.t.Helper()

	form := url.Values{
		"username": {username},
		"password": {password},
	}
	rr := ts.post("/signin", form)
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after signin")
	require.True(ts.t, ts.cookies.hasSession(), "Expected session cookie to be set")
}

// signOut clears the current session via the logout endpoint
func (ts *webTestServer) signOut() {
	ts.t.Helper()
	rr := ts.post("/logout", url.Values{})
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after logout")
}

// createRestaurant submits the creation form and returns the new id
// parsed from the redirect location
func (ts *webTestServer) createRestaurant(fields map[string]string) string {
	ts.t.Helper()
	rr := ts.postMultipart("/restaurant/new", fields, nil, "")
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after creation")

	location := rr.Header().Get("Location")
	require.Contains(ts.t, location, "/restaurant/show?id=", "Expected redirect to show page")
	u, err := url.Parse(location)
	require.NoError(ts.t, err)
	return u.Query().Get("id")
}

// Assertion helpers

// assertContainsElement asserts that the document contains an element matching the selector
func assertContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
	}
}

// assertNotContainsElement asserts that the document does not contain an element matching the selector
func assertNotContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() > 0 {
		t.Errorf("Expected NOT to find element matching %q, but found %d", selector, doc.Find(selector).Length())
	}
}

// assertContainsText asserts that the element matching the selector contains the text
func assertContainsText(t *testing.T, doc *goquery.Document, selector, text string) {
	t.Helper()
	el := doc.Find(selector)
	if el.Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
		return
	}
	if !strings.Contains(el.Text(), text) {
		t.Errorf("Expected element %q to contain %q, but got %q", selector, text, el.Text())
	}
}
