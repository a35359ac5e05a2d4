// Package client talks to the club HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"github.com/lonng/onyou/protocol"
	"github.com/pborman/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout = 30 * time.Second

	headerRequestId = "X-Request-Id"
)

var logger = log.WithField("component", "client")

// Client is an unauthenticated API client, only Login can be called on it.
// Sessions derived from it share its rate limiter.
type Client struct {
	base   *url.URL
	rl     *rate.Limiter // limits HTTP requests
	client *http.Client
}

type Option func(*Client)

// WithHTTPClient sets the underlying http client, its transport is kept
// by sessions
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithRateLimit allows one request per interval, 0 disables limiting
func WithRateLimit(interval time.Duration) Option {
	return func(c *Client) {
		if interval <= 0 {
			c.rl = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.rl = rate.NewLimiter(rate.Every(interval), 1)
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, errors.Wrapf(err, "client: parse base url %q", baseURL)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, errors.Errorf("client: base url %q must be absolute", baseURL)
	}

	c := &Client{
		base:   base,
		rl:     rate.NewLimiter(rate.Inf, 1),
		client: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client.Timeout == 0 {
		c.client.Timeout = defaultTimeout
	}
	return c, nil
}

func (c *Client) url(path string, query url.Values) string {
	u := *c.base
	u.Path = c.base.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body interface{}) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrapf(err, "client: encode %s %s", method, path)
		}
		r = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.url(path, query), r)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req = req.WithContext(ctx)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// Do sends req through the rate limiter. A response with status >= 400 is
// returned together with a *ClientError or *ServerError, its body already
// drained and closed.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	if err := c.rl.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "client: rate limit")
	}

	if req.Header.Get(headerRequestId) == "" {
		req.Header.Set(headerRequestId, uuid.New())
	}

	logger.Debugf("%s %s id=%s", req.Method, req.URL, req.Header.Get(headerRequestId))
	var dump string
	if debugging() {
		dump = reqDump(req)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "client: %s %s", req.Method, req.URL)
	}

	if resp.StatusCode < 400 {
		return resp, nil
	}

	if debugging() {
		logger.Debug(dump)
		logger.Debug(respDump(resp))
	}

	respErr := &ResponseError{
		Method: req.Method,
		URL:    req.URL.String(),
		Status: resp.StatusCode,
	}
	var env protocol.Response
	if body, err := io.ReadAll(resp.Body); err == nil && json.Unmarshal(body, &env) == nil {
		respErr.Message = env.Message
	}
	resp.Body.Close()
	return resp, classify(respErr)
}

// call sends req and decodes the JSON body into v. An envelope whose
// status is >= 400 is a remote failure even on HTTP success.
func (c *Client) call(req *http.Request, v interface{}) error {
	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "client: read %s %s", req.Method, req.URL)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	var env protocol.Response
	if err := json.Unmarshal(body, &env); err != nil {
		return errors.Wrapf(err, "client: decode %s %s", req.Method, req.URL)
	}
	if env.Failed() {
		return classify(&ResponseError{
			Method:  req.Method,
			URL:     req.URL.String(),
			Status:  env.Status,
			Message: env.Message,
		})
	}

	if v == nil {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return errors.Wrapf(err, "client: decode %s %s", req.Method, req.URL)
	}
	return nil
}

func debugging() bool {
	return log.GetLevel() >= log.DebugLevel
}

func reqDump(req *http.Request) string {
	dump, err := httputil.DumpRequestOut(req, true)
	if err != nil {
		return fmt.Sprintf("ERROR dumping request: %s", err)
	}
	return string(dump)
}

func respDump(resp *http.Response) string {
	dump, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return fmt.Sprintf("ERROR dumping response: %s", err)
	}
	return string(dump)
}
