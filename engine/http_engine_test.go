package engine

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<html><body><img src="https://scontent.xx.fbcdn.net/v/t39.30808-1/1_2_3_n.jpg"></body></html>`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "datr", Value: "session-1", Path: "/"})
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/whoami", func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie("datr")
		if err != nil {
			http.Error(w, "no session", http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte(c.Value + "|" + r.Header.Get("Referer") + "|" + r.Header.Get("Sec-Fetch-Mode")))
	})
	mux.HandleFunc("/gzip", func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		_, _ = zw.Write([]byte(page))
		_ = zw.Close()
		w.Header().Set("Content-Encoding", "gzip")
		_, _ = w.Write(buf.Bytes())
	})
	mux.HandleFunc("/br", func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		bw := brotli.NewWriter(&buf)
		_, _ = bw.Write([]byte(page))
		_ = bw.Close()
		w.Header().Set("Content-Encoding", "br")
		_, _ = w.Write(buf.Bytes())
	})
	mux.HandleFunc("/deflate", func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		zw := zlib.NewWriter(&buf)
		_, _ = zw.Write([]byte(page))
		_ = zw.Close()
		w.Header().Set("Content-Encoding", "deflate")
		_, _ = w.Write(buf.Bytes())
	})
	mux.HandleFunc("/share/abc", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/profile.php?id=4", http.StatusFound)
	})
	mux.HandleFunc("/profile.php", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("profile"))
	})
	mux.HandleFunc("/limited", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPEngine_DecodesBodies(t *testing.T) {
	srv := newTestServer(t)
	e := NewHTTPEngine(HTTPOptions{})

	for _, path := range []string{"/gzip", "/br", "/deflate"} {
		t.Run(path, func(t *testing.T) {
			res, err := e.Fetch(context.Background(), &FetchRequest{URL: srv.URL + path})
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, res.StatusCode)
			assert.Equal(t, page, res.HTML)
			assert.Equal(t, "http", res.EngineName)
		})
	}
}

func TestHTTPEngine_SessionCookiesAndHeaders(t *testing.T) {
	srv := newTestServer(t)
	e := NewHTTPEngine(HTTPOptions{})

	jar, err := NewSession()
	require.NoError(t, err)

	_, err = e.Fetch(context.Background(), &FetchRequest{URL: srv.URL + "/", Jar: jar})
	require.NoError(t, err)

	res, err := e.Fetch(context.Background(), &FetchRequest{
		URL:     srv.URL + "/whoami",
		Jar:     jar,
		Headers: map[string]string{"Referer": "https://www.facebook.com/"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "session-1|https://www.facebook.com/|navigate", res.HTML)

	// A fresh session carries no cookies.
	other, err := NewSession()
	require.NoError(t, err)
	res, err = e.Fetch(context.Background(), &FetchRequest{URL: srv.URL + "/whoami", Jar: other})
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestHTTPEngine_FollowsRedirects(t *testing.T) {
	srv := newTestServer(t)
	e := NewHTTPEngine(HTTPOptions{})

	res, err := e.Fetch(context.Background(), &FetchRequest{URL: srv.URL + "/share/abc"})
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/profile.php?id=4", res.FinalURL)
	assert.Equal(t, "profile", res.HTML)
}

func TestHTTPEngine_StatusIsNotAnError(t *testing.T) {
	srv := newTestServer(t)
	e := NewHTTPEngine(HTTPOptions{})

	res, err := e.Fetch(context.Background(), &FetchRequest{URL: srv.URL + "/limited"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, res.StatusCode)
}

func TestHTTPEngine_Timeout(t *testing.T) {
	srv := newTestServer(t)
	e := NewHTTPEngine(HTTPOptions{})

	_, err := e.Fetch(context.Background(), &FetchRequest{URL: srv.URL + "/slow", Timeout: 50 * time.Millisecond})
	require.Error(t, err)
	assert.True(t, IsTimeout(err), "expected timeout, got %v", err)
}

func TestIsTimeout(t *testing.T) {
	assert.True(t, IsTimeout(context.DeadlineExceeded))
	assert.False(t, IsTimeout(context.Canceled))
	assert.False(t, IsTimeout(nil))
}
