package loe_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"svitlobot/internal/loe"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *loe.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return loe.NewClient(srv.URL, 5*time.Second, nil)
}

func TestFetchRawHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		status  int
		want    string
		wantErr bool
	}{
		{
			name: "photo-grafic member",
			body: `{"hydra:member":[
				{"type":"other","menuItems":[{"name":"x","rawhtml":"<div>wrong</div>"}]},
				{"type":"photo-grafic","menuItems":[{"name":"Today","rawhtml":"<div>graphic</div>"}]}
			]}`,
			status: http.StatusOK,
			want:   "<div>graphic</div>",
		},
		{
			name: "fallback to untyped member",
			body: `{"hydra:member":[
				{"menuItems":[{"name":"Today","rawhtml":"<div>fallback</div>"}]}
			]}`,
			status: http.StatusOK,
			want:   "<div>fallback</div>",
		},
		{
			name: "skips items without payload",
			body: `{"hydra:member":[
				{"type":"photo-grafic","menuItems":[{"name":"empty"},{"name":"Today","rawhtml":"<p>ok</p>"}]}
			]}`,
			status: http.StatusOK,
			want:   "<p>ok</p>",
		},
		{
			name:    "no members",
			body:    `{"hydra:member":[]}`,
			status:  http.StatusOK,
			wantErr: true,
		},
		{
			name:    "no rawhtml anywhere",
			body:    `{"hydra:member":[{"type":"photo-grafic","menuItems":[{"name":"empty"}]}]}`,
			status:  http.StatusOK,
			wantErr: true,
		},
		{
			name:    "malformed json",
			body:    `{"hydra:member": [`,
			status:  http.StatusOK,
			wantErr: true,
		},
		{
			name:    "server error",
			body:    `upstream broken`,
			status:  http.StatusBadGateway,
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/menus" {
					t.Errorf("unexpected path %q", r.URL.Path)
				}
				if got := r.URL.Query().Get("type"); got != "photo-grafic" {
					t.Errorf("type query = %q, want photo-grafic", got)
				}
				if got := r.URL.Query().Get("page"); got != "1" {
					t.Errorf("page query = %q, want 1", got)
				}
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			got, err := client.FetchRawHTML(context.Background())
			if tc.wantErr {
				if err == nil {
					t.Fatal("FetchRawHTML() expected error")
				}
				if !errors.Is(err, loe.ErrUnavailable) {
					t.Errorf("error = %v, want wrapped ErrUnavailable", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FetchRawHTML() error = %v", err)
			}
			if got != tc.want {
				t.Errorf("FetchRawHTML() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFetchRawHTMLNetworkError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := loe.NewClient(srv.URL, time.Second, nil)

	_, err := client.FetchRawHTML(context.Background())
	if !errors.Is(err, loe.ErrUnavailable) {
		t.Errorf("error = %v, want wrapped ErrUnavailable", err)
	}
}
