package auth

import (
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

func TestNormalizeRedirect(t *testing.T) {
	logger := zap.NewNop()
	cases := map[string]string{
		"urn:ietf:wg:oauth:2.0:oob":         "http://localhost:6789/oauth2callback",
		"http://localhost":                  "http://localhost:6789",
		"http://127.0.0.1:9999/cb":          "http://127.0.0.1:6789/cb",
		"https://example.com/oauth2/return": "https://example.com/oauth2/return",
	}
	for in, want := range cases {
		if got := normalizeRedirect(in, logger); got != want {
			t.Errorf("normalizeRedirect(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTokenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", TokenFile)
	tok := &oauth2.Token{AccessToken: "a", RefreshToken: "r", Expiry: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}
	if err := saveToken(path, tok); err != nil {
		t.Fatal(err)
	}
	got, err := tokenFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.AccessToken != "a" || got.RefreshToken != "r" || !got.Expiry.Equal(tok.Expiry) {
		t.Fatalf("unexpected token %+v", got)
	}
}

func TestRemoveTokenMissingIsFine(t *testing.T) {
	t.Setenv("STUDYDESK_CONFIG_DIR", t.TempDir())
	if err := RemoveToken(); err != nil {
		t.Fatal(err)
	}
}
