package article

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const samplePage = `<!DOCTYPE html>
<html lang="ja">
<head><title>緑の朝</title></head>
<body>
<article>
<h1>緑の朝</h1>
<p>朝の空は緑色でした。<ruby>鳥<rt>とり</rt></ruby>が鳴いていました。
風はとても静かで、町の人はまだ眠っていました。遠くの山が光っていて、
誰もその理由を知りませんでした。</p>
<p>少年は窓を開けて、冷たい空気を吸い込みました。空の色は少しずつ
変わっていき、緑から金色になりました。彼は急いで服を着て、外へ
走り出しました。</p>
<p>通りには誰もいませんでした。ただ、昨日までなかった大きな木が、
広場の真ん中に立っていました。その葉は朝の光を受けて、静かに
揺れていました。</p>
</article>
</body>
</html>`

func TestFetchExtractsText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	art, err := Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if !strings.Contains(art.Title, "緑の朝") {
		t.Errorf("expected title to contain 緑の朝, got %q", art.Title)
	}
	if !strings.Contains(art.Text, "朝の空は緑色でした") {
		t.Errorf("body text missing, got %q", art.Text)
	}
	// Furigana is stripped before extraction.
	if strings.Contains(art.Text, "とり") {
		t.Errorf("ruby text leaked into %q", art.Text)
	}

	sentences := art.Sentences()
	if len(sentences) < 3 {
		t.Fatalf("expected several sentences, got %v", sentences)
	}
}

func TestFetchRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if _, err := Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for 404")
	}
}
