package testutils

import (
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/phayes/freeport"
)

// TestHttpServer serves registered handlers on a free localhost port until
// the test ends.
type TestHttpServer struct {
	*http.ServeMux
	port int
}

func NewTestHttpServer() *TestHttpServer {
	return &TestHttpServer{http.NewServeMux(), 0}
}

// Start returns the port the server is listening on.
func (s *TestHttpServer) Start(t *testing.T) int {
	port, err := freeport.GetFreePort()
	if err != nil {
		t.Fatalf("cannot find free port for test server: %v", err)
	}

	srvAddr := fmt.Sprintf("localhost:%d", port)
	srv := &http.Server{
		Addr:              srvAddr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}
	t.Cleanup(func() {
		srv.Close()
	})

	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			t.Errorf("cannot start test server: %v", err)
		}
	}()

	waitForServer(t, srvAddr)
	s.port = port
	return port
}

// URL builds address of path served by started server.
func (s *TestHttpServer) URL(path string) string {
	return fmt.Sprintf("http://localhost:%d%s", s.port, path)
}

func waitForServer(t *testing.T, addr string) {
	backoff := 50 * time.Millisecond

	for attempt := 0; attempt < 10; attempt++ {
		conn, err := net.DialTimeout("tcp", addr, time.Second)
		if err != nil {
			time.Sleep(backoff)
			continue
		}

		if err := conn.Close(); err != nil {
			t.Fatal(err)
		}
		return
	}

	t.Fatalf("server on %s not up after 10 attempts", addr)
}
