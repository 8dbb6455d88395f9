package adnet

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

type fakeProvider struct {
	name  string
	err   error
	calls atomic.Int64
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Fill(ctx context.Context, placement string) error {
	f.calls.Add(1)
	return f.err
}

func TestProviderSetFillFirstSuccess(t *testing.T) {
	a := &fakeProvider{name: "a"}
	b := &fakeProvider{name: "b"}
	ps := NewProviderSet([]Provider{a, b}, []int{100, 100})

	if err := ps.Fill(context.Background(), "pop"); err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	if a.calls.Load() != 1 || b.calls.Load() != 0 {
		t.Errorf("calls = a:%d b:%d, want 1/0", a.calls.Load(), b.calls.Load())
	}
}

func TestProviderSetRotatesOnFailure(t *testing.T) {
	a := &fakeProvider{name: "a", err: errors.New("no fill")}
	b := &fakeProvider{name: "b"}
	ps := NewProviderSet([]Provider{a, b}, []int{100, 100})

	if err := ps.Fill(context.Background(), "pop"); err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	if a.calls.Load() != 1 || b.calls.Load() != 1 {
		t.Errorf("calls = a:%d b:%d, want 1/1", a.calls.Load(), b.calls.Load())
	}

	// The rotation pointer advanced past the failed provider.
	if err := ps.Fill(context.Background(), "pop"); err != nil {
		t.Fatalf("second Fill() error = %v", err)
	}
	if a.calls.Load() != 1 {
		t.Errorf("failed provider called again: %d calls", a.calls.Load())
	}
}

func TestProviderSetAllFail(t *testing.T) {
	a := &fakeProvider{name: "a", err: errors.New("down")}
	b := &fakeProvider{name: "b", err: errors.New("down")}
	ps := NewProviderSet([]Provider{a, b}, []int{100, 100})

	err := ps.Fill(context.Background(), "pop")
	if !errors.Is(err, ErrAllProvidersFailed) {
		t.Fatalf("Fill() error = %v, want ErrAllProvidersFailed", err)
	}
}

func TestProviderSetEmpty(t *testing.T) {
	ps := NewProviderSet(nil, nil)
	if err := ps.Fill(context.Background(), "pop"); !errors.Is(err, ErrNoProviders) {
		t.Fatalf("Fill() error = %v, want ErrNoProviders", err)
	}
}

func TestPostbackProviderFill(t *testing.T) {
	var gotPlacement, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPlacement = r.URL.Query().Get("placement")
		gotKey = r.URL.Query().Get("key")
		w.Write([]byte(`{"status":"filled"}`))
	}))
	defer srv.Close()

	p := NewPostbackProvider("net", srv.URL, "secret", srv.Client())
	if err := p.Fill(context.Background(), "interstitial"); err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	if gotPlacement != "interstitial" || gotKey != "secret" {
		t.Errorf("request params = %q/%q", gotPlacement, gotKey)
	}
}

func TestPostbackProviderNoFill(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"nofill","reason":"inventory empty"}`))
	}))
	defer srv.Close()

	p := NewPostbackProvider("net", srv.URL, "secret", srv.Client())
	if err := p.Fill(context.Background(), "pop"); err == nil {
		t.Fatal("Fill() should fail on nofill")
	}
}

func TestPostbackProviderHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewPostbackProvider("net", srv.URL, "secret", srv.Client())
	if err := p.Fill(context.Background(), "pop"); err == nil {
		t.Fatal("Fill() should fail on HTTP 502")
	}
}

func TestHouseProviderAlwaysFills(t *testing.T) {
	var p HouseProvider
	if err := p.Fill(context.Background(), "anything"); err != nil {
		t.Fatalf("Fill() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Fill(ctx, "anything"); err == nil {
		t.Error("Fill() should respect cancelled context")
	}
}
