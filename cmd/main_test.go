package main

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/quotepulse/internal/app"
	"github.com/guttosm/quotepulse/internal/domain/dto"
	"github.com/guttosm/quotepulse/internal/domain/models"
	"github.com/guttosm/quotepulse/internal/refresh"
	"github.com/guttosm/quotepulse/internal/service"
)

type unavailableAggregator struct{}

func (unavailableAggregator) GetSnapshot(context.Context, string, models.Period) (*models.Snapshot, error) {
	return nil, service.ErrInvalidSymbol
}

func testApp(cleaned chan struct{}) *app.App {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	sel := dto.Selection{Symbol: "AAPL", Period: models.Period1D}
	return &app.App{
		Router:  router,
		Driver:  refresh.NewDriver(unavailableAggregator{}, sel, time.Hour, nil),
		Cleanup: func() { close(cleaned) },
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	cleaned := make(chan struct{})
	a := testApp(cleaned)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- run(ctx, a, "0") }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("run did not return after cancel")
	}

	select {
	case <-cleaned:
	default:
		t.Fatalf("cleanup not called")
	}
	if _, ok := a.Driver.Latest(); !ok {
		t.Fatalf("driver should have refreshed once on start")
	}
}

func TestRun_ListenError(t *testing.T) {
	cleaned := make(chan struct{})
	a := testApp(cleaned)

	errCh := make(chan error, 1)
	go func() { errCh <- run(context.Background(), a, "-1") }()

	select {
	case err := <-errCh:
		if err == nil {
			t.Fatalf("expected listen error")
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("run did not return after listen failure")
	}
	<-cleaned
}

func TestGracefulShutdown(t *testing.T) {
	srv := newServer(http.NotFoundHandler(), "0")
	done := make(chan error, 1)
	go func() { done <- serve(srv) }()
	time.Sleep(50 * time.Millisecond)

	if err := gracefulShutdown(srv); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("serve should treat shutdown as clean exit, got %v", err)
	}
}
