package leagueoffice

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/obhl/rinkside/internal/domain/game"
	"github.com/obhl/rinkside/internal/platform/logging"
	"github.com/obhl/rinkside/internal/platform/resilience"
)

func finalizedGame() game.Game {
	completed := time.Date(2026, time.February, 7, 21, 45, 0, 0, time.UTC)
	return game.Game{
		ID:             "game-w4-001",
		HomeTeamID:     "ice-hawks",
		AwayTeamID:     "river-rats",
		Status:         game.StatusCompleted,
		HomeScore:      5,
		AwayScore:      3,
		HomeTeamPoints: 2,
		AwayTeamPoints: 0,
		CompletedAt:    &completed,
	}
}

func TestPublisherPublishResult_SendsPayload(t *testing.T) {
	t.Parallel()

	var got resultPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/v1/results" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer office-key" {
			t.Fatalf("unexpected authorization header: %s", auth)
		}
		if err := jsoniter.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	publisher := NewPublisher(PublisherConfig{
		BaseURL: srv.URL,
		APIKey:  "office-key",
	}, logging.NewNop())

	if err := publisher.PublishResult(context.Background(), finalizedGame()); err != nil {
		t.Fatalf("publish result failed: %v", err)
	}

	if got.GameID != "game-w4-001" {
		t.Fatalf("unexpected game id: %s", got.GameID)
	}
	if got.HomeScore != 5 || got.AwayScore != 3 {
		t.Fatalf("unexpected score: %d-%d", got.HomeScore, got.AwayScore)
	}
	if got.HomeTeamPoints != 2 || got.AwayTeamPoints != 0 {
		t.Fatalf("unexpected points: %d/%d", got.HomeTeamPoints, got.AwayTeamPoints)
	}
	if got.CompletedAt == "" {
		t.Fatalf("expected completed_at to be set")
	}
}

func TestPublisherPublishResult_ServerErrorIsTransient(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	publisher := NewPublisher(PublisherConfig{BaseURL: srv.URL}, logging.NewNop())

	err := publisher.PublishResult(context.Background(), finalizedGame())
	if !errors.Is(err, errLeagueOfficeTransient) {
		t.Fatalf("expected transient error, got %v", err)
	}
}

func TestPublisherPublishResult_BadRequestIsNotTransient(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	publisher := NewPublisher(PublisherConfig{BaseURL: srv.URL}, logging.NewNop())

	err := publisher.PublishResult(context.Background(), finalizedGame())
	if err == nil {
		t.Fatalf("expected error on 400 response")
	}
	if errors.Is(err, errLeagueOfficeTransient) {
		t.Fatalf("a 400 response must not trip the circuit: %v", err)
	}
}

func TestPublisherPublishResult_CircuitOpensAfterThreshold(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	publisher := NewPublisher(PublisherConfig{
		BaseURL: srv.URL,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	}, logging.NewNop())

	for i := 0; i < 2; i++ {
		if err := publisher.PublishResult(context.Background(), finalizedGame()); err == nil {
			t.Fatalf("expected publish failure")
		}
	}

	if err := publisher.PublishResult(context.Background(), finalizedGame()); !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected the open circuit to skip the server, got %d calls", calls.Load())
	}
}
