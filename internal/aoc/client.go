package aoc

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"

	"github.com/odysseus0/slh/internal/daypart"
)

const maxBodyBytes = 16 << 20

type Config struct {
	BaseURL      string
	Session      string
	UserAgent    string
	Timeout      time.Duration
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	Logger       zerolog.Logger
}

// Client talks to the puzzle site on behalf of one session.
type Client struct {
	baseURL   string
	session   string
	userAgent string
	get       *retryablehttp.Client
	post      *retryablehttp.Client
	renderer  *Renderer
	log       zerolog.Logger
}

func NewClient(cfg Config) *Client {
	if cfg.RetryWaitMin <= 0 {
		cfg.RetryWaitMin = time.Second
	}
	if cfg.RetryWaitMax < cfg.RetryWaitMin {
		cfg.RetryWaitMax = 5 * cfg.RetryWaitMin
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}

	newHTTP := func(retryMax int) *retryablehttp.Client {
		c := retryablehttp.NewClient()
		c.HTTPClient = &http.Client{Timeout: cfg.Timeout}
		c.Logger = leveledLogger{log: cfg.Logger}
		c.RetryMax = retryMax
		c.RetryWaitMin = cfg.RetryWaitMin
		c.RetryWaitMax = cfg.RetryWaitMax
		c.CheckRetry = retryPolicy
		c.ErrorHandler = retryablehttp.PassthroughErrorHandler
		return c
	}

	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		session:   strings.TrimSpace(cfg.Session),
		userAgent: cfg.UserAgent,
		get:       newHTTP(cfg.RetryMax),
		post:      newHTTP(0),
		renderer:  NewRenderer(cfg.BaseURL),
		log:       cfg.Logger,
	}
}

// retryPolicy extends the default policy with 404 on input downloads, which
// is what the site answers until a puzzle unlocks.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err == nil && resp != nil && resp.StatusCode == http.StatusNotFound &&
		resp.Request != nil && strings.HasSuffix(resp.Request.URL.Path, "/input") {
		return true, nil
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

func (c *Client) FetchInput(ctx context.Context, year, day int) (string, error) {
	body, err := c.fetch(ctx, fmt.Sprintf("/%d/day/%d/input", year, day))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(body), nil
}

func (c *Client) FetchPrompt(ctx context.Context, year, day int) (string, error) {
	body, err := c.fetch(ctx, fmt.Sprintf("/%d/day/%d", year, day))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(body), nil
}

func (c *Client) FetchCalendar(ctx context.Context, year int) (string, error) {
	body, err := c.fetch(ctx, fmt.Sprintf("/%d", year))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(body), nil
}

// SubmitAnswer posts answer for dp. Submissions are never retried.
func (c *Client) SubmitAnswer(ctx context.Context, year int, dp daypart.DayPart, answer string) (Result, error) {
	form := url.Values{}
	form.Set("level", strconv.Itoa(dp.Part))
	form.Set("answer", strings.TrimSpace(answer))

	target := c.baseURL + fmt.Sprintf("/%d/day/%d/answer", year, dp.Day)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(form.Encode()))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.decorate(req)

	c.log.Debug().Str("url", target).Str("daypart", dp.String()).Msg("submitting answer")
	body, err := c.do(c.post, req, target)
	if err != nil {
		return Result{}, err
	}
	return parseVerdict(body, c.renderer), nil
}

func (c *Client) fetch(ctx context.Context, path string) (string, error) {
	target := c.baseURL + path
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", err
	}
	c.decorate(req)
	c.log.Debug().Str("url", target).Msg("fetching")
	return c.do(c.get, req, target)
}

func (c *Client) decorate(req *retryablehttp.Request) {
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.session != "" {
		req.AddCookie(&http.Cookie{Name: "session", Value: c.session})
	}
}

func (c *Client) do(hc *retryablehttp.Client, req *retryablehttp.Request, target string) (string, error) {
	resp, err := hc.Do(req)
	if err != nil {
		if resp != nil {
			_ = resp.Body.Close()
		}
		return "", &FetchError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusBadRequest,
		resp.StatusCode == http.StatusUnauthorized,
		resp.StatusCode == http.StatusForbidden:
		return "", &FetchError{URL: target, StatusCode: resp.StatusCode, NeedsAuth: true}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return "", &FetchError{URL: target, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", &FetchError{URL: target, StatusCode: resp.StatusCode, Err: err}
	}
	return string(data), nil
}
