package host

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func okHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, body)
	})
}

func TestGroup_OpenAndShutdown(t *testing.T) {
	logger := testLogger()
	person := New("person", "127.0.0.1:0", okHandler("person"), logger)
	image := New("image", "127.0.0.1:0", okHandler("image"), logger)
	group := NewGroup(logger, person, image)

	if err := group.Open(context.Background()); err != nil {
		t.Fatalf("expected hosts to open, got %v", err)
	}

	for _, h := range []*Host{person, image} {
		resp, err := http.Get("http://" + h.Addr())
		if err != nil {
			t.Fatalf("%s not serving: %v", h.Name, err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if string(body) != h.Name {
			t.Errorf("%s served %q", h.Name, body)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := group.Shutdown(ctx); err != nil {
		t.Fatalf("expected clean shutdown, got %v", err)
	}
	if _, err := http.Get("http://" + person.Addr()); err == nil {
		t.Error("expected person host to be closed")
	}
}

func TestGroup_OpenFailureClosesOpenedHosts(t *testing.T) {
	logger := testLogger()

	taken, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to reserve a port: %v", err)
	}
	defer taken.Close()

	good := New("person", "127.0.0.1:0", okHandler("person"), logger)
	bad := New("image", taken.Addr().String(), okHandler("image"), logger)
	group := NewGroup(logger, good, bad)

	if err := group.Open(context.Background()); err == nil {
		t.Fatal("expected open to fail on a taken address")
	}

	if good.opened() {
		if _, err := http.Get("http://" + good.Addr()); err == nil {
			t.Error("expected the opened host to be closed after a failed startup")
		}
	}
}
