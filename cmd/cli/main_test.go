package main

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read stdout: %v", err)
	}
	return buf.String()
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestPrintResponseIndentsJSON(t *testing.T) {
	out := captureOutput(t, func() {
		printResponse(jsonResponse(http.StatusOK, `{"a":1}`))
	})

	expected := "{\n  \"a\": 1\n}\n"
	if out != expected {
		t.Fatalf("unexpected json output:\n%s", out)
	}
}

func TestPrintResponseEmptyBody(t *testing.T) {
	out := captureOutput(t, func() {
		printResponse(jsonResponse(http.StatusNoContent, ""))
	})

	if !strings.Contains(out, "204") {
		t.Fatalf("expected status in output, got %q", out)
	}
}

func TestPrintResponseNonJSONPassthrough(t *testing.T) {
	out := captureOutput(t, func() {
		printResponse(jsonResponse(http.StatusOK, "plain text"))
	})

	if strings.TrimSpace(out) != "plain text" {
		t.Fatalf("expected raw body, got %q", out)
	}
}
