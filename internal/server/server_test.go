package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/oggyb/zenvia-sms/internal/handler"
	routes "github.com/oggyb/zenvia-sms/internal/router"
	"github.com/oggyb/zenvia-sms/pkg/sms"
)

func newRelay(t *testing.T, providerStatus int) (*httptest.Server, *int32) {
	t.Helper()

	h, hits := newRelayHandler(t, providerStatus, zap.NewNop())
	relay := httptest.NewServer(h)
	t.Cleanup(relay.Close)

	return relay, hits
}

func newRelayHandler(t *testing.T, providerStatus int, lg *zap.Logger) (http.Handler, *int32) {
	t.Helper()

	var hits int32
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if user, pass, ok := r.BasicAuth(); !ok || user != "relay-user" || pass != "relay-pass" {
			t.Errorf("unexpected credentials %q/%q", user, pass)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(providerStatus)
		_, _ = w.Write([]byte(`{"sendSmsResponse":{"statusCode":"00","statusDescription":"Ok"}}`))
	}))
	t.Cleanup(provider.Close)

	client := sms.NewZenviaClient(sms.Config{
		User:     "relay-user",
		Password: "relay-pass",
		Endpoint: provider.URL,
	})

	deps := routes.AppDeps{
		Home: handler.NewHomeHandler(),
		SMS:  handler.NewSMSHandler(client, zap.NewNop()),
	}

	return Handler(deps, lg), &hits
}

func post(t *testing.T, url, body string) (*http.Response, []byte) {
	t.Helper()

	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	return resp, b
}

func TestRelay_SendSuccess(t *testing.T) {
	t.Parallel()

	relay, hits := newRelay(t, http.StatusOK)

	resp, body := post(t, relay.URL+"/sms", `{"to":"5511999999999","from":"agenda0","msg":"Hello World"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", resp.StatusCode, body)
	}
	if atomic.LoadInt32(hits) != 1 {
		t.Fatalf("expected one provider call, got %d", atomic.LoadInt32(hits))
	}

	var env struct {
		Success bool `json:"success"`
		Data    struct {
			ID      string          `json:"id"`
			Request sms.SendRequest `json:"request"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !env.Success || env.Data.ID == "" {
		t.Fatalf("unexpected envelope %s", body)
	}
	if env.Data.Request.SendSmsRequest.ID != env.Data.ID {
		t.Fatalf("expected generated id in request envelope, got %+v", env.Data.Request)
	}
}

func TestRelay_ValidationNeverReachesProvider(t *testing.T) {
	t.Parallel()

	relay, hits := newRelay(t, http.StatusOK)

	resp, body := post(t, relay.URL+"/sms", `{"to":"5511","from":"agenda0"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "Missing message.msg") {
		t.Fatalf("expected validation message, got %s", body)
	}
	if atomic.LoadInt32(hits) != 0 {
		t.Fatalf("expected no provider call")
	}
}

func TestRelay_ProviderFailure(t *testing.T) {
	t.Parallel()

	relay, _ := newRelay(t, http.StatusInternalServerError)

	resp, body := post(t, relay.URL+"/sms", `{"to":"5511","from":"agenda0","msg":"hi"}`)
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "Failed to create zenvia message") {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestRelay_UnknownRouteAndDocs(t *testing.T) {
	t.Parallel()

	relay, _ := newRelay(t, http.StatusOK)

	resp, err := http.Get(relay.URL + "/nope")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	resp, err = http.Get(relay.URL + "/swagger/doc.json")
	if err != nil {
		t.Fatalf("GET docs: %v", err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(b), `"/sms"`) {
		t.Fatalf("expected swagger doc with /sms, got %d %s", resp.StatusCode, b)
	}
}

func TestRelay_AccessLog(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	h, _ := newRelayHandler(t, http.StatusOK, zap.New(core))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/sms", strings.NewReader(`{"to":"5511","from":"agenda0"}`)))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}

	entries := logs.FilterMessage("http request").All()
	if len(entries) != 1 {
		t.Fatalf("expected one access log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["method"] != http.MethodPost || fields["path"] != "/sms" {
		t.Fatalf("unexpected request fields %v", fields)
	}
	if fields["status"] != int64(http.StatusBadRequest) {
		t.Fatalf("expected status 400 in access log, got %v", fields["status"])
	}
}
