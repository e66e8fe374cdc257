package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"

	tanitiweb "finitefield.org/taniti-web"
	"finitefield.org/taniti-web/internal/cms"
	"finitefield.org/taniti-web/internal/dataset"
	"finitefield.org/taniti-web/internal/filters"
	handlersPkg "finitefield.org/taniti-web/internal/handlers"
	mw "finitefield.org/taniti-web/internal/middleware"
	"finitefield.org/taniti-web/internal/platform/config"
	"finitefield.org/taniti-web/internal/platform/observability"
	"finitefield.org/taniti-web/internal/site"
)

func sampleStore(t *testing.T) *dataset.Store {
	t.Helper()
	d, err := dataset.Decode(bytes.NewReader(tanitiweb.SampleData))
	require.NoError(t, err)
	return dataset.NewStaticStore(d)
}

// newTestServer builds the server the way serve does, over the embedded
// templates, assets and content.
func newTestServer(t *testing.T, store *dataset.Store) *server {
	t.Helper()
	v, err := newViews(tanitiweb.Templates(), false)
	require.NoError(t, err)
	sessions, err := mw.NewSessions(config.SessionConfig{Key: bytes.Repeat([]byte("k"), 32)}, zap.NewNop())
	require.NoError(t, err)
	return &server{
		logger:   zap.NewNop(),
		store:    store,
		content:  cms.NewLibrary(tanitiweb.Content(), 0),
		pages:    site.Pages(),
		views:    v,
		layout:   handlersPkg.Layout{},
		sessions: sessions,
		assets:   tanitiweb.Public(),
	}
}

// browser is a cookie-keeping client against a live test server.
type browser struct {
	t      *testing.T
	base   *url.URL
	client *http.Client
}

func newBrowser(t *testing.T, s *server) *browser {
	t.Helper()
	ts := httptest.NewServer(s.routes())
	t.Cleanup(ts.Close)
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	base, err := url.Parse(ts.URL)
	require.NoError(t, err)
	return &browser{
		t:    t,
		base: base,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (b *browser) csrf() string {
	for _, c := range b.client.Jar.Cookies(b.base) {
		if c.Name == "csrf_token" {
			return c.Value
		}
	}
	return ""
}

func (b *browser) do(method, path string, form url.Values, headers map[string]string) (*http.Response, string) {
	b.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(context.Background(), method, b.base.String()+path, body)
	require.NoError(b.t, err)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := b.client.Do(req)
	require.NoError(b.t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)
	return resp, string(raw)
}

func (b *browser) get(path string) (*http.Response, string) {
	return b.do(http.MethodGet, path, nil, nil)
}

// htmxPost posts like htmx does: request header plus the CSRF header.
func (b *browser) htmxPost(path, target string, form url.Values) (*http.Response, string) {
	return b.do(http.MethodPost, path, form, map[string]string{
		"HX-Request":   "true",
		"HX-Target":    target,
		mw.CSRFHeader: b.csrf(),
	})
}

func parseDoc(t *testing.T, body string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	require.NoError(t, err)
	return doc
}

func TestHealthzOK(t *testing.T) {
	b := newBrowser(t, newTestServer(t, sampleStore(t)))
	resp, body := b.get("/healthz")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", strings.TrimSpace(body))
}

func TestHomeRendersFullLayout(t *testing.T) {
	b := newBrowser(t, newTestServer(t, sampleStore(t)))
	resp, body := b.get("/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	doc := parseDoc(t, body)
	require.Equal(t, "Welcome to Taniti", strings.TrimSpace(doc.Find("#page-title").Text()))
	require.Equal(t, "Visit Taniti", strings.TrimSpace(doc.Find("title").First().Text()))
	require.Equal(t, "Home", strings.TrimSpace(doc.Find(`#main-nav a[aria-current="page"]`).Text()))
	require.Equal(t, 1, doc.Find("#modal-root").Length())
	require.NotEmpty(t, b.csrf(), "csrf cookie issued on first visit")
}

func TestUnknownStayIsNotFound(t *testing.T) {
	b := newBrowser(t, newTestServer(t, sampleStore(t)))
	resp, body := b.get("/stay/unknown-id")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	doc := parseDoc(t, body)
	require.Equal(t, "Page not found", strings.TrimSpace(doc.Find("#page-title").Text()))
	robots, _ := doc.Find(`meta[name="robots"]`).Attr("content")
	require.Equal(t, "noindex", robots)
}

func TestUnknownRouteIsNotFound(t *testing.T) {
	b := newBrowser(t, newTestServer(t, sampleStore(t)))
	resp, _ := b.get("/nowhere")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStayDetailHeading(t *testing.T) {
	b := newBrowser(t, newTestServer(t, sampleStore(t)))
	resp, body := b.get("/stay/bayview-bnb")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	doc := parseDoc(t, body)
	require.Equal(t, "Bayview B&B", strings.TrimSpace(doc.Find("#page-title").Text()))
	require.Equal(t, 1, doc.Find("#book-bayview-bnb").Length())
}

func TestContentPagesRender(t *testing.T) {
	b := newBrowser(t, newTestServer(t, sampleStore(t)))
	cases := map[string]string{
		"/plan":             "Plan Your Trip",
		"/about":            "About Taniti",
		"/things/beaches":   "Beaches",
		"/things/merriton":  "Merriton Landing (Nightlife District)",
		"/area/merriton":    "Merriton Landing",
		"/transport/bus":    "City Buses",
		"/transport/walk":   "Walking",
		"/activity/volcano": "Volcano Tour",
		"/activity/zip":     "Zip",
	}
	for path, title := range cases {
		resp, body := b.get(path)
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		doc := parseDoc(t, body)
		require.Equal(t, title, strings.TrimSpace(doc.Find("#page-title").Text()), path)
	}
}

func TestHTMXNavigationReturnsFragment(t *testing.T) {
	b := newBrowser(t, newTestServer(t, sampleStore(t)))
	resp, body := b.do(http.MethodGet, "/dining", nil, map[string]string{
		"HX-Request": "true",
		"HX-Boosted": "true",
		"HX-Target":  "app",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotContains(t, strings.ToLower(body), "<!doctype")
	require.Contains(t, resp.Header.Values("Vary"), "HX-Request")

	doc := parseDoc(t, body)
	require.Equal(t, "Food & Dining", strings.TrimSpace(doc.Find("#page-title").Text()))
	oob, _ := doc.Find("#main-nav").Attr("hx-swap-oob")
	require.Equal(t, "true", oob)
	require.Equal(t, 10, doc.Find("#dining-results article.card").Length())
}

func TestStayFilterToggleFragment(t *testing.T) {
	b := newBrowser(t, newTestServer(t, sampleStore(t)))
	b.get("/stay")

	resp, body := b.htmxPost("/stay/filters", "stay-results", url.Values{"key": {"beachfront"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	doc := parseDoc(t, body)
	require.Equal(t, 1, doc.Find("section#stay-results").Length())
	require.Equal(t, 2, doc.Find("#stay-results article.card").Length())
	pressed, _ := doc.Find(`button[value="beachfront"]`).Attr("aria-pressed")
	require.Equal(t, "true", pressed)

	// $ plus beachfront matches nothing in the sample data.
	_, body = b.htmxPost("/stay/filters", "stay-results", url.Values{"key": {"price-$"}})
	doc = parseDoc(t, body)
	require.Equal(t, 0, doc.Find("#stay-results article.card").Length())
	require.Equal(t, filters.NoStaysMessage, strings.TrimSpace(doc.Find("#stay-results .empty").Text()))

	// The selection lives in the session, so a full page load keeps it.
	_, body = b.get("/stay")
	doc = parseDoc(t, body)
	require.Equal(t, filters.NoStaysMessage, strings.TrimSpace(doc.Find("#stay-results .empty").Text()))
	require.Equal(t, 1, doc.Find(".reset-link").Length())
}

func TestDiningFilterToggleFragment(t *testing.T) {
	b := newBrowser(t, newTestServer(t, sampleStore(t)))
	b.get("/dining")

	_, body := b.htmxPost("/dining/filters", "dining-results", url.Values{"key": {"diet-vegan"}})
	doc := parseDoc(t, body)
	require.Equal(t, 2, doc.Find("#dining-results article.card").Length())

	_, body = b.htmxPost("/dining/filters", "dining-results", url.Values{"key": {"cui-american"}})
	doc = parseDoc(t, body)
	require.Equal(t, filters.NoVenuesMessage, strings.TrimSpace(doc.Find("#dining-results .empty").Text()))
}

func TestFilterRejectsUnknownKey(t *testing.T) {
	b := newBrowser(t, newTestServer(t, sampleStore(t)))
	b.get("/stay")
	resp, _ := b.htmxPost("/stay/filters", "stay-results", url.Values{"key": {"price-$$$$"}})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFilterWithoutCSRFIsForbidden(t *testing.T) {
	b := newBrowser(t, newTestServer(t, sampleStore(t)))
	b.get("/stay")
	resp, _ := b.do(http.MethodPost, "/stay/filters", url.Values{"key": {"walkable"}}, map[string]string{"HX-Request": "true"})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestFilterPlainPostRedirects(t *testing.T) {
	b := newBrowser(t, newTestServer(t, sampleStore(t)))
	b.get("/dining")
	resp, _ := b.do(http.MethodPost, "/dining/filters", url.Values{
		"key":         {"diet-vegetarian"},
		mw.CSRFField: {b.csrf()},
	}, nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/dining", resp.Header.Get("Location"))
}

func TestResetClearsFilters(t *testing.T) {
	b := newBrowser(t, newTestServer(t, sampleStore(t)))
	b.get("/stay")
	b.htmxPost("/stay/filters", "stay-results", url.Values{"key": {"walkable"}})

	resp, body := b.do(http.MethodGet, "/home?reset=1", nil, map[string]string{"HX-Request": "true", "HX-Target": "app"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "/home", resp.Header.Get("HX-Push-Url"))
	require.NotContains(t, body, "reset-link")

	_, body = b.get("/stay")
	require.Equal(t, 6, parseDoc(t, body).Find("#stay-results article.card").Length())
}

func TestModalOpenInfersSubject(t *testing.T) {
	b := newBrowser(t, newTestServer(t, sampleStore(t)))
	resp, body := b.do(http.MethodGet, "/modals/booking?focus=book-bayview-bnb&ref=stay:bayview-bnb", nil,
		map[string]string{"HX-Request": "true", "HX-Target": "modal-root"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	doc := parseDoc(t, body)
	require.Equal(t, "Start booking — Bayview B&B", strings.TrimSpace(doc.Find("#bk-title").Text()))
	focus, _ := doc.Find(`input[name="return_focus"]`).Attr("value")
	require.Equal(t, "book-bayview-bnb", focus)
	_, autofocus := doc.Find("#bk-name").Attr("autofocus")
	require.True(t, autofocus)
	party, _ := doc.Find("#bk-party").Attr("value")
	require.Equal(t, "2", party)
}

func TestBookingOpensFromItineraryPages(t *testing.T) {
	b := newBrowser(t, newTestServer(t, sampleStore(t)))

	_, body := b.get("/home")
	require.Equal(t, 1, parseDoc(t, body).Find(`#book-hero[hx-get^="/modals/booking"]`).Length())
	_, body = b.get("/itinerary")
	require.Equal(t, 4, parseDoc(t, body).Find(`button[hx-get^="/modals/booking"]`).Length())

	_, body = b.get("/itinerary/5-day-classic")
	trigger, ok := parseDoc(t, body).Find("#book-itinerary-5-day-classic").Attr("hx-get")
	require.True(t, ok)

	resp, body := b.do(http.MethodGet, trigger, nil, map[string]string{"HX-Request": "true", "HX-Target": "modal-root"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	doc := parseDoc(t, body)
	require.Equal(t, "Start booking — 5-Day Island Classic", strings.TrimSpace(doc.Find("#bk-title").Text()))
	focus, _ := doc.Find(`input[name="return_focus"]`).Attr("value")
	require.Equal(t, "book-itinerary-5-day-classic", focus)
}

func TestModalUnknownKind(t *testing.T) {
	b := newBrowser(t, newTestServer(t, sampleStore(t)))
	resp, _ := b.get("/modals/checkout")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestModalSubmitMissingFieldsStaysOpen(t *testing.T) {
	b := newBrowser(t, newTestServer(t, sampleStore(t)))
	b.get("/stay")
	resp, _ := b.htmxPost("/stay/filters", "stay-results", url.Values{"key": {"price-$$"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_, page := b.get("/stay")
	filtered := parseDoc(t, page).Find("#stay-results article.card").Length()
	require.Equal(t, 4, filtered)

	resp, body := b.htmxPost("/modals/booking", "modal-root", url.Values{
		"return_focus": {"book-bayview-bnb"},
		"subject":      {"Bayview B&B"},
		"name":         {"  "},
		"email":        {"ana@example.com"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.Empty(t, resp.Header.Get("HX-Trigger"))

	doc := parseDoc(t, body)
	require.Equal(t, "Please enter your name and email.", strings.TrimSpace(doc.Find(".form-error").Text()))
	invalid, _ := doc.Find("#bk-name").Attr("aria-invalid")
	require.Equal(t, "true", invalid)
	email, _ := doc.Find("#bk-email").Attr("value")
	require.Equal(t, "ana@example.com", email)
	require.Equal(t, "Start booking — Bayview B&B", strings.TrimSpace(doc.Find("#bk-title").Text()))

	// Filter state is untouched by the failed submit.
	_, page = b.get("/stay")
	doc = parseDoc(t, page)
	require.Equal(t, filtered, doc.Find("#stay-results article.card").Length())
	checked, _ := doc.Find(`#stay-results button[name="key"][value="price-$$"]`).Attr("aria-pressed")
	require.Equal(t, "true", checked)
}

func TestModalSubmitAcceptedClosesWithToast(t *testing.T) {
	b := newBrowser(t, newTestServer(t, sampleStore(t)))
	b.get("/dining")
	resp, body := b.htmxPost("/modals/reserve", "modal-root", url.Values{
		"return_focus": {"reserve-harbor-grill"},
		"subject":      {"Harbor Grill"},
		"name":         {"Ana"},
		"phone":        {"+1 808 555 0100"},
		"date":         {"2026-11-02"},
		"time":         {"19:00"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"modal:closed":{"focus":"reserve-harbor-grill"}}`, resp.Header.Get("HX-Trigger"))

	doc := parseDoc(t, body)
	require.Equal(t, 0, doc.Find(".modal").Length())
	require.Equal(t,
		"Thanks, Ana! We'll ask the venue to hold a table at Harbor Grill for 2026-11-02 19:00. We'll call +1 808 555 0100 to confirm. (Demo)",
		strings.TrimSpace(doc.Find(".toast p").First().Text()))
}

func TestModalCloseRestoresFocus(t *testing.T) {
	b := newBrowser(t, newTestServer(t, sampleStore(t)))
	b.get("/stay")
	resp, body := b.htmxPost("/modals/booking/close", "modal-root", url.Values{
		"return_focus": {"book-coral-point-resort"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Empty(t, strings.TrimSpace(body))
	require.JSONEq(t, `{"modal:closed":{"focus":"book-coral-point-resort"}}`, resp.Header.Get("HX-Trigger"))
}

func TestModalClearKeepsDialogOpen(t *testing.T) {
	b := newBrowser(t, newTestServer(t, sampleStore(t)))
	b.get("/stay")
	resp, body := b.htmxPost("/modals/booking/clear", "modal-root", url.Values{
		"return_focus": {"book-x"},
		"name":         {"Ana"},
		"party":        {"5"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	doc := parseDoc(t, body)
	name, _ := doc.Find("#bk-name").Attr("value")
	require.Empty(t, name)
	party, _ := doc.Find("#bk-party").Attr("value")
	require.Equal(t, "2", party)
}

func TestContactSubmitFragment(t *testing.T) {
	b := newBrowser(t, newTestServer(t, sampleStore(t)))
	b.get("/contact")

	resp, body := b.htmxPost("/contact", "contact-form", url.Values{"name": {"Ana"}})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	doc := parseDoc(t, body)
	require.Equal(t, "Please fill in your name, email, and message.", strings.TrimSpace(doc.Find("#contact-form .form-error").Text()))

	resp, body = b.htmxPost("/contact", "contact-form", url.Values{
		"name":    {"Ana"},
		"email":   {"ana@example.com"},
		"message": {"Hello"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, `We received your message about &#34;your trip&#34;`)
}

func TestContactPlainPostRendersPage(t *testing.T) {
	b := newBrowser(t, newTestServer(t, sampleStore(t)))
	b.get("/contact")
	resp, body := b.do(http.MethodPost, "/contact", url.Values{mw.CSRFField: {b.csrf()}}, nil)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	doc := parseDoc(t, body)
	require.Equal(t, "Contact Taniti Tourism", strings.TrimSpace(doc.Find("#page-title").Text()))
	require.Equal(t, 1, doc.Find("#contact-form .form-error").Length())
}

func TestItineraryPDF(t *testing.T) {
	b := newBrowser(t, newTestServer(t, sampleStore(t)))
	resp, body := b.get("/itinerary/5-day-classic/print.pdf")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	require.Contains(t, resp.Header.Get("Content-Disposition"), "taniti-5-day-classic.pdf")
	require.True(t, strings.HasPrefix(body, "%PDF"))

	resp, _ = b.get("/itinerary/nope/print.pdf")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestItineraryDetailLinksSteps(t *testing.T) {
	b := newBrowser(t, newTestServer(t, sampleStore(t)))
	_, body := b.get("/itinerary/5-day-classic")
	doc := parseDoc(t, body)
	var hrefs []string
	doc.Find("ol.days a").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		hrefs = append(hrefs, href)
	})
	require.Equal(t, []string{"/things/beaches", "/activity/rainforest", "/activity/volcano", "/activity/museum", "/things/merriton"}, hrefs)
}

func TestDatasetWarningBanner(t *testing.T) {
	store := dataset.NewStore(nil, zap.NewNop())
	_, err := store.Load(context.Background())
	require.Error(t, err)

	b := newBrowser(t, newTestServer(t, store))
	resp, body := b.get("/stay")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	doc := parseDoc(t, body)
	require.Equal(t, dataset.LoadWarning, strings.TrimSpace(doc.Find(".banner-warn").Text()))
	require.Equal(t, filters.NoStaysMessage, strings.TrimSpace(doc.Find("#stay-results .empty").Text()))
}

func TestAssetsServedWithETag(t *testing.T) {
	b := newBrowser(t, newTestServer(t, sampleStore(t)))
	resp, _ := b.get("/assets/js/app.js")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	etag := resp.Header.Get("ETag")
	require.NotEmpty(t, etag)

	resp, _ = b.do(http.MethodGet, "/assets/js/app.js", nil, map[string]string{"If-None-Match": etag})
	require.Equal(t, http.StatusNotModified, resp.StatusCode)
}

func TestRenderCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"render", "--sample", "#/stay/bayview-bnb"})
	t.Cleanup(func() { rootCmd.SetArgs(nil); useSample = false })
	require.NoError(t, rootCmd.Execute())

	doc := parseDoc(t, out.String())
	require.Equal(t, "Bayview B&B", strings.TrimSpace(doc.Find("#page-title").Text()))
}

func TestRenderCommandMissingPage(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"render", "--sample", "#/stay/unknown-id"})
	t.Cleanup(func() { rootCmd.SetArgs(nil); useSample = false })
	err := rootCmd.Execute()
	require.ErrorContains(t, err, "page not found")
	require.Contains(t, out.String(), "Page not found")
}

func TestValidateCommandSample(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"validate", "--sample"})
	t.Cleanup(func() { rootCmd.SetArgs(nil); useSample = false })
	require.NoError(t, rootCmd.Execute())
	require.Contains(t, out.String(), "ok: static (6 stays, 10 dining, 4 itineraries, 4 activities)")
}

func TestPageAndDialogMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	s := newTestServer(t, sampleStore(t))
	s.metrics = observability.NewMetrics(mp.Meter("test"), zap.NewNop())
	b := newBrowser(t, s)

	b.get("/home")
	b.get("/home")
	b.get("/stay/nope")
	resp, _ := b.htmxPost("/modals/booking", "modal-root", url.Values{"name": {""}, "email": {""}})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	count := func(name string, want ...attribute.KeyValue) int64 {
		var total int64
		for _, sm := range rm.ScopeMetrics {
			for _, m := range sm.Metrics {
				sum, ok := m.Data.(metricdata.Sum[int64])
				if m.Name != name || !ok {
					continue
				}
				for _, dp := range sum.DataPoints {
					matched := true
					for _, kv := range want {
						if v, ok := dp.Attributes.Value(kv.Key); !ok || v.Emit() != kv.Value.Emit() {
							matched = false
						}
					}
					if matched {
						total += dp.Value
					}
				}
			}
		}
		return total
	}

	require.EqualValues(t, 2, count(observability.MetricPageDispatches,
		attribute.String("route.name", "home"), attribute.Bool("route.not_found", false)))
	require.EqualValues(t, 1, count(observability.MetricPageDispatches,
		attribute.String("route.name", "stay"), attribute.Bool("route.not_found", true)))
	require.EqualValues(t, 1, count(observability.MetricDialogSubmissions,
		attribute.String("dialog", "booking"), attribute.Bool("accepted", false)))
	require.EqualValues(t, 1, count(observability.MetricRequests,
		attribute.String("http.route", "/modals/{kind}"), attribute.String("http.status_code", "422")))
}
