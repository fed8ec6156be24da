package controller

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/seanazu/value-hunter/client"
	"github.com/seanazu/value-hunter/model"
	"github.com/seanazu/value-hunter/service"
	"github.com/seanazu/value-hunter/view"
)

type screenerStub struct {
	mu      sync.Mutex
	queries []string
}

func (s *screenerStub) last() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queries) == 0 {
		return ""
	}
	return s.queries[len(s.queries)-1]
}

func (s *screenerStub) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queries)
}

func newScreenerStub(t *testing.T, status int, body string) (*screenerStub, *client.ScreenerClient) {
	t.Helper()
	stub := &screenerStub{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stub.mu.Lock()
		stub.queries = append(stub.queries, r.URL.RawQuery)
		stub.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return stub, client.NewScreenerClient(srv.URL, 2*time.Second)
}

func setupPageRouter(t *testing.T, status int, body string) (*gin.Engine, service.SessionService, *screenerStub) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	stub, c := newScreenerStub(t, status, body)
	ss := service.NewSessionService(c, time.Minute)
	ps := service.NewPresetService(nil, cache.New(cache.NoExpiration, 0))

	r := gin.New()
	r.SetHTMLTemplate(view.Templates())
	NewScreenerPageController(ss, ps, false, 60).RegisterRoutes(r)
	return r, ss, stub
}

func sessionCookieFrom(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookie {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func postForm(r *gin.Engine, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getPage(r *gin.Engine, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/screener", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func waitForState(t *testing.T, ss service.SessionService, id string, state model.RequestState) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if form, err := ss.Get(id); err == nil && form.Lifecycle().State == state {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("session %s never reached %s", id, state)
}

func TestShowForm_RendersDefaults(t *testing.T) {
	r, ss, _ := setupPageRouter(t, http.StatusOK, `[]`)

	w := getPage(r, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	cookie := sessionCookieFrom(t, w)
	if _, err := ss.Get(cookie.Value); err != nil {
		t.Errorf("cookie does not name a live session: %v", err)
	}
	body := w.Body.String()
	for _, want := range []string{`value="500000000"`, `value="15"`, `value="300000"`, `value="NASDAQ" selected`, `>Submit</button>`} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if w.Header().Get("Cache-Control") != "no-store" {
		t.Errorf("Cache-Control = %q", w.Header().Get("Cache-Control"))
	}
}

func TestRootRedirects(t *testing.T) {
	r, _, _ := setupPageRouter(t, http.StatusOK, `[]`)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/screener" {
		t.Errorf("got %d -> %q", w.Code, w.Header().Get("Location"))
	}
}

func TestSubmitForm_ShowsResults(t *testing.T) {
	r, ss, stub := setupPageRouter(t, http.StatusOK, `[{"symbol":"XYZ","score":0.92,"explanation":"Undervalued small-cap"}]`)
	cookie := sessionCookieFrom(t, getPage(r, nil))

	form := url.Values{
		"marketCapLowerThan":    {"500000000"},
		"priceLowerThan":        {"15"},
		"averageVolumeMoreThan": {"300000"},
		"exchange":              {"NYSE"},
		"isEtf":                 {"true"},
	}
	w := postForm(r, "/screener", form, cookie)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", w.Code)
	}

	waitForState(t, ss, cookie.Value, model.StateSucceeded)

	// the unchecked isActivelyTrading box had a value, so it is sent as false
	want := "marketCapLowerThan=500000000&priceLowerThan=15&averageVolumeMoreThan=300000&exchange=NYSE&isActivelyTrading=false&isEtf=true"
	if got := stub.last(); got != want {
		t.Errorf("query = %q, want %q", got, want)
	}

	body := getPage(r, cookie).Body.String()
	if !strings.Contains(body, "1. Ticker: XYZ") || !strings.Contains(body, "Undervalued small-cap") {
		t.Errorf("results not rendered:\n%s", body)
	}
}

func TestSubmitForm_MissingExchange(t *testing.T) {
	r, ss, stub := setupPageRouter(t, http.StatusOK, `[]`)
	cookie := sessionCookieFrom(t, getPage(r, nil))

	w := postForm(r, "/screener", url.Values{"exchange": {""}}, cookie)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", w.Code)
	}

	form, _ := ss.Get(cookie.Value)
	if lc := form.Lifecycle(); lc.State != model.StateFailed {
		t.Fatalf("lifecycle = %+v", lc)
	}
	if stub.count() != 0 {
		t.Error("request sent despite validation failure")
	}
	body := getPage(r, cookie).Body.String()
	if !strings.Contains(body, "Please fill in all required fields.") {
		t.Error("validation message not rendered")
	}
}

func TestSubmitForm_ServerError(t *testing.T) {
	r, ss, _ := setupPageRouter(t, http.StatusInternalServerError, `oops`)
	cookie := sessionCookieFrom(t, getPage(r, nil))

	postForm(r, "/screener", url.Values{}, cookie)
	waitForState(t, ss, cookie.Value, model.StateFailed)

	body := getPage(r, cookie).Body.String()
	if !strings.Contains(body, "Server error: Internal Server Error") {
		t.Error("server error message not rendered")
	}
}

func TestSubmitForm_BadNumber(t *testing.T) {
	r, _, stub := setupPageRouter(t, http.StatusOK, `[]`)
	cookie := sessionCookieFrom(t, getPage(r, nil))

	w := postForm(r, "/screener", url.Values{"priceLowerThan": {"cheap"}}, cookie)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d", w.Code)
	}
	if stub.count() != 0 {
		t.Error("request sent for invalid input")
	}
}

func TestReset_ClosesSession(t *testing.T) {
	r, ss, _ := setupPageRouter(t, http.StatusOK, `[]`)
	cookie := sessionCookieFrom(t, getPage(r, nil))
	form, _ := ss.Get(cookie.Value)

	w := postForm(r, "/screener/reset", url.Values{}, cookie)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", w.Code)
	}
	if !form.Closed() {
		t.Error("form not closed")
	}
	if c := sessionCookieFrom(t, w); c.MaxAge >= 0 {
		t.Errorf("cookie not cleared: %+v", c)
	}
}

func TestApplyPreset_Disabled(t *testing.T) {
	r, _, _ := setupPageRouter(t, http.StatusOK, `[]`)
	cookie := sessionCookieFrom(t, getPage(r, nil))

	w := postForm(r, "/screener/preset", url.Values{"preset": {"PENNY"}}, cookie)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Preset could not be loaded: PENNY") {
		t.Error("notice not rendered")
	}
}

func TestSubmitForm_UnknownExchange(t *testing.T) {
	r, ss, stub := setupPageRouter(t, http.StatusOK, `[]`)
	cookie := sessionCookieFrom(t, getPage(r, nil))

	w := postForm(r, "/screener", url.Values{"exchange": {"LSE"}}, cookie)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d", w.Code)
	}
	form, _ := ss.Get(cookie.Value)
	if ex := form.Filters().Exchange; ex == nil || *ex != model.ExchangeNasdaq {
		t.Errorf("exchange = %v", ex)
	}
	if stub.count() != 0 {
		t.Error("request sent for unknown exchange")
	}
}

func TestShowForm_ClosedSessionGetsFreshOne(t *testing.T) {
	r, ss, _ := setupPageRouter(t, http.StatusOK, `[]`)
	cookie := sessionCookieFrom(t, getPage(r, nil))
	form, _ := ss.Get(cookie.Value)
	form.Close()

	w := getPage(r, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	fresh := sessionCookieFrom(t, w)
	if fresh.Value == cookie.Value {
		t.Error("closed session was reused")
	}
	if _, err := ss.Get(cookie.Value); err == nil {
		t.Error("closed session still resolvable")
	}
}
