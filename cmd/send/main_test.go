package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/oggyb/zenvia-sms/pkg/sms"
)

func TestRun_PrintsResult(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"1234"}`))
	}))
	defer provider.Close()

	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("LOG_FILE", "")
	t.Setenv("ZENVIA_API_URL", provider.URL)

	var out, errOut bytes.Buffer
	err := run([]string{"-to", "5511999999999", "-from", "agenda0", "-msg", "Hello", "-id", "cli-1"}, &out, &errOut)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}

	var res sms.SendResult
	if err := json.Unmarshal(out.Bytes(), &res); err != nil {
		t.Fatalf("decode output: %v out=%s", err, out.String())
	}
	if res.ID != "cli-1" || res.Request.SendSmsRequest.To != "5511999999999" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestRun_ValidationError(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("LOG_FILE", "")
	t.Setenv("ZENVIA_API_URL", "http://127.0.0.1:1")

	var out, errOut bytes.Buffer
	err := run([]string{"-to", "5511", "-from", "agenda0"}, &out, &errOut)
	if err == nil || !strings.Contains(err.Error(), "Missing message.msg") {
		t.Fatalf("expected validation error, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %s", out.String())
	}
}

func TestRun_VerboseKeepsStdoutJSON(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"1234"}`))
	}))
	defer provider.Close()

	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("LOG_FILE", "")
	t.Setenv("ZENVIA_API_URL", provider.URL)

	var out, errOut bytes.Buffer
	err := run([]string{"-v", "-to", "5511999999999", "-from", "agenda0", "-msg", "Hello", "-id", "cli-2"}, &out, &errOut)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}

	dec := json.NewDecoder(&out)
	var res sms.SendResult
	if err := dec.Decode(&res); err != nil {
		t.Fatalf("decode output: %v out=%s", err, out.String())
	}
	if res.ID != "cli-2" {
		t.Fatalf("unexpected result %+v", res)
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		t.Fatalf("expected a single JSON document on stdout, got trailing %s (err=%v)", extra, err)
	}

	if !strings.Contains(errOut.String(), "Sending SMS request") {
		t.Fatalf("expected debug trace on stderr, got %q", errOut.String())
	}
}

func TestRun_ProviderFailureLogsToStderr(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer provider.Close()

	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("LOG_FILE", "")
	t.Setenv("ZENVIA_API_URL", provider.URL)

	var out, errOut bytes.Buffer
	err := run([]string{"-to", "5511", "-from", "agenda0", "-msg", "hi"}, &out, &errOut)
	if !errors.Is(err, sms.ErrProviderFailure) {
		t.Fatalf("expected provider failure, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected nothing on stdout, got %s", out.String())
	}
	if !strings.Contains(errOut.String(), "zenvia send failed") {
		t.Fatalf("expected failure log on stderr, got %q", errOut.String())
	}
}
