package crawler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetchBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body>
			<article>
				<p>First paragraph.</p>
				<p>  Second paragraph.  </p>
				<p></p>
			</article>
		</body></html>`))
	}))
	defer srv.Close()

	fetcher := NewArticleFetcher()
	body := fetcher.FetchBody(srv.URL, 1024)

	if !strings.Contains(body, "First paragraph.") {
		t.Errorf("正文缺少第一段: %q", body)
	}
	if !strings.Contains(body, "Second paragraph.") {
		t.Errorf("正文缺少第二段: %q", body)
	}
}

// 抓取失败不报错，返回空字符串
func TestFetchBodyTolerant(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	fetcher := NewArticleFetcher()

	if body := fetcher.FetchBody(srv.URL, 1024); body != "" {
		t.Errorf("失败时应返回空字符串，得到 %q", body)
	}
	if body := fetcher.FetchBody("", 1024); body != "" {
		t.Errorf("空URL应返回空字符串，得到 %q", body)
	}
}

// 正文超长时按token上限截断
func TestFetchBodyTruncation(t *testing.T) {
	long := strings.Repeat("word ", 1000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>" + long + "</p></body></html>"))
	}))
	defer srv.Close()

	fetcher := NewArticleFetcher()
	body := fetcher.FetchBody(srv.URL, 10)

	if len(body) > 40 {
		t.Errorf("正文长度 = %d, 期望不超过 40", len(body))
	}
}
