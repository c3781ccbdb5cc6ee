// Command fakeapi serves the in-memory MedMate backend for local runs of the
// CLI.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/medmate/internal/client/fakeapi"
)

func main() {
	addr := flag.String("a", "localhost:5000", "listen address")
	seed := flag.Bool("seed", true, "create the demo user (demo / demo)")
	flag.Parse()

	srv := fakeapi.New(fakeapi.WithRequestLog())
	if *seed {
		srv.AddUser("demo", "demo@example.com", "demo", fakeapi.DefaultCredits)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("fake MedMate backend listening on %s", *addr)
	if err := srv.Start(*addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("%v", err)
	}
}
