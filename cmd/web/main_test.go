package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/tomz197/galactic/internal/store"
)

func TestScoresEndpoint(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(store.PathFor(dir, "ace"))
	if err != nil {
		t.Fatal(err)
	}
	st.Set(store.KeyBest, 1200)
	st.Set(store.KeyScore, 300)
	st.Set(store.KeyScoreRate, 4)

	srv := httptest.NewServer(newRouter("<h1>hi</h1>", dir, log.New(io.Discard)))
	defer srv.Close()

	res, err := http.Get(srv.URL + "/api/scores/ace")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", res.StatusCode)
	}
	var got scoreResponse
	if err := json.NewDecoder(res.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	want := scoreResponse{Player: "ace", Best: 1200, Last: 300, Rate: 4}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	res2, err := http.Get(srv.URL + "/api/scores/nobody")
	if err != nil {
		t.Fatal(err)
	}
	res2.Body.Close()
	if res2.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown player status = %d", res2.StatusCode)
	}
}

func TestIndexPage(t *testing.T) {
	srv := httptest.NewServer(newRouter("<h1>hi</h1>", t.TempDir(), log.New(io.Discard)))
	defer srv.Close()

	res, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(body), "hi") {
		t.Fatalf("body = %q", body)
	}

	res2, err := http.Post(srv.URL+"/", "text/plain", nil)
	if err != nil {
		t.Fatal(err)
	}
	res2.Body.Close()
	if res2.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("POST status = %d", res2.StatusCode)
	}
}

func TestEmbeddedPageHasPlaceholders(t *testing.T) {
	if !strings.Contains(htmlPage, "{{.SSHHost}}") {
		t.Fatal("embedded page lost its ssh host placeholder")
	}
}
