// Package leagueoffice pushes finalized game results to the league
// office's results API. Publishing happens after the game row is saved
// locally; a failed push is reported to the caller but never rolls the
// local finalize back, so the office endpoint can be retried later.
package leagueoffice

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/obhl/rinkside/internal/domain/game"
	"github.com/obhl/rinkside/internal/platform/logging"
	"github.com/obhl/rinkside/internal/platform/resilience"
)

var errLeagueOfficeTransient = crerr.New("league office transient failure")

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

type PublisherConfig struct {
	BaseURL        string
	ResultsPath    string
	APIKey         string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Publisher struct {
	client         *fasthttp.Client
	publishURL     string
	apiKey         string
	timeout        time.Duration
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewPublisher(cfg PublisherConfig, logger *logging.Logger) *Publisher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}

	path := cfg.ResultsPath
	if strings.TrimSpace(path) == "" {
		path = "/v1/results"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Publisher{
		client: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		publishURL:     strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/") + path,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		timeout:        timeout,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type resultPayload struct {
	GameID         string `json:"game_id"`
	HomeTeamID     string `json:"home_team_id"`
	AwayTeamID     string `json:"away_team_id"`
	HomeScore      int    `json:"home_score"`
	AwayScore      int    `json:"away_score"`
	EndedInOT      bool   `json:"ended_in_ot"`
	HomeTeamPoints int    `json:"home_team_points"`
	AwayTeamPoints int    `json:"away_team_points"`
	CompletedAt    string `json:"completed_at,omitempty"`
}

func (p *Publisher) PublishResult(ctx context.Context, g game.Game) error {
	if p.circuitEnabled {
		if err := p.breaker.Allow(); err != nil {
			p.logger.WarnContext(ctx, "league office circuit breaker rejected publish", "state", p.breaker.State())
			return fmt.Errorf("league office is temporarily unavailable: %w", err)
		}
	}

	payload := resultPayload{
		GameID:         g.ID,
		HomeTeamID:     g.HomeTeamID,
		AwayTeamID:     g.AwayTeamID,
		HomeScore:      g.HomeScore,
		AwayScore:      g.AwayScore,
		EndedInOT:      g.EndedInOT,
		HomeTeamPoints: g.HomeTeamPoints,
		AwayTeamPoints: g.AwayTeamPoints,
	}
	if g.CompletedAt != nil {
		payload.CompletedAt = g.CompletedAt.UTC().Format(time.RFC3339)
	}

	body, err := jsonAPI.Marshal(payload)
	if err != nil {
		return crerr.Wrap(err, "marshal result payload")
	}

	bodyText := truncateForLog(string(body), 4096)
	curlPreview := buildCurlPreview(p.publishURL, bodyText, p.apiKey != "")

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("leagueoffice.publish_url", p.publishURL),
			attribute.String("leagueoffice.game_id", g.ID),
			attribute.String("leagueoffice.request_body", bodyText),
			attribute.String("leagueoffice.request_curl_preview", curlPreview),
		)
	}
	p.logger.InfoContext(ctx, "league office publish request",
		"game_id", g.ID,
		"publish_url", p.publishURL,
		"curl_preview", curlPreview,
	)

	err = p.post(ctx, body)
	p.recordCircuitResult(err)
	if err != nil {
		return err
	}

	p.logger.InfoContext(ctx, "league office result published",
		"game_id", g.ID,
		"home_score", g.HomeScore,
		"away_score", g.AwayScore,
	)
	return nil
}

func (p *Publisher) post(ctx context.Context, body []byte) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(p.publishURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}
	req.SetBody(body)

	timeout := p.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	if err := p.client.DoTimeout(req, resp, timeout); err != nil {
		return fmt.Errorf("%w: publish result url=%s: %v", errLeagueOfficeTransient, p.publishURL, err)
	}

	status := resp.StatusCode()
	if status/100 == 2 {
		return nil
	}

	raw := resp.Body()
	if len(raw) > 4096 {
		raw = raw[:4096]
	}
	if isRetryableStatus(status) {
		return fmt.Errorf(
			"%w: publish result status=%d url=%s body=%s",
			errLeagueOfficeTransient,
			status,
			p.publishURL,
			strings.TrimSpace(string(raw)),
		)
	}

	return fmt.Errorf(
		"publish result status=%d url=%s body=%s",
		status,
		p.publishURL,
		strings.TrimSpace(string(raw)),
	)
}

func buildCurlPreview(publishURL, body string, withAPIKey bool) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	appendPart := func(part string) {
		if buf.Len() > 0 {
			_ = buf.WriteByte(' ')
		}
		_, _ = buf.WriteString(part)
	}

	appendPart("curl")
	appendPart("-X")
	appendPart("POST")
	appendPart(shellQuote(publishURL))
	appendPart("-H")
	appendPart(shellQuote("Content-Type: application/json"))
	if withAPIKey {
		appendPart("-H")
		appendPart(shellQuote("Authorization: Bearer ***"))
	}
	appendPart("-d")
	appendPart(shellQuote(body))

	return buf.String()
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "'\"'\"'") + "'"
}

func truncateForLog(value string, max int) string {
	if max <= 0 || len(value) <= max {
		return value
	}
	return value[:max] + "...(truncated)"
}

func (p *Publisher) recordCircuitResult(err error) {
	if !p.circuitEnabled || p.breaker == nil {
		return
	}
	if err == nil {
		p.breaker.RecordSuccess()
		return
	}
	if stderrors.Is(err, errLeagueOfficeTransient) {
		p.breaker.RecordFailure()
		return
	}
	p.breaker.RecordSuccess()
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == fasthttp.StatusRequestTimeout ||
		statusCode == fasthttp.StatusTooManyRequests ||
		statusCode >= fasthttp.StatusInternalServerError
}
