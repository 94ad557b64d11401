package main

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	. "github.com/franela/goblin"
	"github.com/phayes/freeport"
)

func TestRunServer(t *testing.T) {
	g := Goblin(t)

	g.Describe("runServer", func() {
		g.It("Should wait for in-flight requests before returning", func() {
			port, err := freeport.GetFreePort()
			g.Assert(err).IsNil()

			requestStarted := make(chan struct{})
			releaseRequest := make(chan struct{})
			mux := http.NewServeMux()
			mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
				close(requestStarted)
				<-releaseRequest
				w.WriteHeader(http.StatusCreated)
			})
			server := &http.Server{Addr: fmt.Sprintf("localhost:%d", port), Handler: mux}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			stopped := make(chan error, 1)
			go func() {
				stopped <- runServer(ctx, server, 5*time.Second)
			}()

			responseCode := make(chan int, 1)
			go func() {
				for attempt := 0; attempt < 50; attempt++ {
					resp, err := http.Get(fmt.Sprintf("http://localhost:%d/slow", port))
					if err != nil {
						time.Sleep(20 * time.Millisecond)
						continue
					}
					resp.Body.Close()
					responseCode <- resp.StatusCode
					return
				}
				responseCode <- 0
			}()

			select {
			case <-requestStarted:
			case <-time.After(5 * time.Second):
				g.Fail("request did not reach the server")
			}
			cancel()

			select {
			case <-stopped:
				g.Fail("server returned while request was still running")
			case <-time.After(100 * time.Millisecond):
			}

			close(releaseRequest)

			g.Assert(<-responseCode).Equal(http.StatusCreated)
			g.Assert(<-stopped).IsNil()
		})

		g.It("Should return listen error", func() {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			server := &http.Server{Addr: "localhost:-1"}

			g.Assert(runServer(ctx, server, time.Second) == nil).IsFalse()
		})
	})
}
