package app

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeService struct {
	name     string
	startErr error
	block    bool
	stops    *[]string
}

func (f *fakeService) Name() string { return f.name }

func (f *fakeService) Start(ctx context.Context) error {
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return f.startErr
}

func (f *fakeService) Stop(ctx context.Context) error {
	*f.stops = append(*f.stops, f.name)
	return nil
}

func TestRunnerStopsInReverseOrderOnCancel(t *testing.T) {
	var stops []string
	runner := NewRunner(
		&fakeService{name: "first", block: true, stops: &stops},
		&fakeService{name: "second", block: true, stops: &stops},
	)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	if err := runner.Run(ctx, time.Second, nil); err != nil {
		t.Fatalf("cancel should shut down cleanly, got %v", err)
	}
	if len(stops) != 2 || stops[0] != "second" || stops[1] != "first" {
		t.Fatalf("expected reverse-order stop [second first], got %v", stops)
	}
}

func TestRunnerPropagatesStartError(t *testing.T) {
	var stops []string
	boom := errors.New("listen failed")
	runner := NewRunner(&fakeService{name: "broken", startErr: boom, stops: &stops})

	err := runner.Run(context.Background(), time.Second, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("expected start error to propagate, got %v", err)
	}
	if len(stops) != 1 {
		t.Fatalf("service should still be stopped once, got %v", stops)
	}
}

func TestRunnerRejectsEmptyServiceList(t *testing.T) {
	if err := NewRunner().Run(context.Background(), time.Second, nil); err == nil {
		t.Fatal("expected error for empty service list")
	}
}
