// AngelaMos | 2026
// client.go

package matches

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/carterperez-dev/pitchside/internal/config"
	"github.com/carterperez-dev/pitchside/internal/core"
)

// UpstreamClient is the fixtures API boundary. Implemented by Client;
// faked in tests.
type UpstreamClient interface {
	FixtureByID(ctx context.Context, id int64) (json.RawMessage, error)
	FixturesByDate(ctx context.Context, from, to time.Time) ([]json.RawMessage, error)
	FixturesByRound(ctx context.Context, round string) ([]json.RawMessage, error)
	Rounds(ctx context.Context) ([]string, error)
	Lineups(ctx context.Context, fixtureID int64) (json.RawMessage, error)
	Statistics(ctx context.Context, fixtureID int64) (json.RawMessage, error)
}

type Client struct {
	http     *resty.Client
	leagueID int
	season   int
}

func NewClient(cfg config.UpstreamConfig) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("x-apisports-key", cfg.APIKey).
		SetHeader("Accept", "application/json").
		SetTimeout(cfg.Timeout)

	return &Client{
		http:     httpClient,
		leagueID: cfg.LeagueID,
		season:   cfg.Season,
	}
}

// get performs one upstream call and returns the validated response array.
// All endpoint methods funnel through here so status handling, timeout
// classification and schema validation happen exactly once.
func (c *Client) get(
	ctx context.Context,
	path string,
	params map[string]string,
) ([]json.RawMessage, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(path)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("get %s: %w", path, core.ErrUpstreamTimeout)
		}
		return nil, fmt.Errorf("get %s: %v: %w", path, err, core.ErrUpstreamUnavailable)
	}

	switch {
	case resp.StatusCode() == http.StatusTooManyRequests:
		return nil, fmt.Errorf("get %s: %w", path, core.ErrUpstreamRateLimited)
	case resp.StatusCode() >= http.StatusMultipleChoices:
		return nil, fmt.Errorf(
			"get %s: status %d: %w",
			path,
			resp.StatusCode(),
			core.ErrUpstreamUnavailable,
		)
	}

	body := resp.Body()
	if err := validateEnvelope(body); err != nil {
		return nil, err
	}

	var envelope struct {
		Response []json.RawMessage `json:"response"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode %s: %v: %w", path, err, core.ErrUpstreamSchema)
	}

	return envelope.Response, nil
}

func (c *Client) FixtureByID(ctx context.Context, id int64) (json.RawMessage, error) {
	items, err := c.get(ctx, "/fixtures", map[string]string{
		"id": strconv.FormatInt(id, 10),
	})
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("fixture %d: %w", id, core.ErrNotFound)
	}

	return items[0], nil
}

func (c *Client) FixturesByDate(
	ctx context.Context,
	from, to time.Time,
) ([]json.RawMessage, error) {
	return c.get(ctx, "/fixtures", map[string]string{
		"league": strconv.Itoa(c.leagueID),
		"season": strconv.Itoa(c.season),
		"from":   from.Format("2006-01-02"),
		"to":     to.Format("2006-01-02"),
	})
}

func (c *Client) FixturesByRound(
	ctx context.Context,
	round string,
) ([]json.RawMessage, error) {
	return c.get(ctx, "/fixtures", map[string]string{
		"league": strconv.Itoa(c.leagueID),
		"season": strconv.Itoa(c.season),
		"round":  round,
	})
}

func (c *Client) Rounds(ctx context.Context) ([]string, error) {
	items, err := c.get(ctx, "/fixtures/rounds", map[string]string{
		"league": strconv.Itoa(c.leagueID),
		"season": strconv.Itoa(c.season),
	})
	if err != nil {
		return nil, err
	}

	rounds := make([]string, 0, len(items))
	for _, item := range items {
		var round string
		if err := json.Unmarshal(item, &round); err != nil {
			return nil, fmt.Errorf("decode round: %v: %w", err, core.ErrUpstreamSchema)
		}
		rounds = append(rounds, round)
	}

	return rounds, nil
}

func (c *Client) Lineups(ctx context.Context, fixtureID int64) (json.RawMessage, error) {
	return c.getRaw(ctx, "/fixtures/lineups", fixtureID)
}

func (c *Client) Statistics(ctx context.Context, fixtureID int64) (json.RawMessage, error) {
	return c.getRaw(ctx, "/fixtures/statistics", fixtureID)
}

// getRaw returns the whole response array re-encoded, for endpoints whose
// payloads are passed through to clients untouched.
func (c *Client) getRaw(
	ctx context.Context,
	path string,
	fixtureID int64,
) (json.RawMessage, error) {
	items, err := c.get(ctx, path, map[string]string{
		"fixture": strconv.FormatInt(fixtureID, 10),
	})
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", path, err)
	}

	return raw, nil
}

var _ UpstreamClient = (*Client)(nil)
