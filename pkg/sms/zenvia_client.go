package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// DefaultEndpoint is the Zenvia send-sms REST endpoint.
	DefaultEndpoint = "https://api-rest.zenvia360.com.br/services/send-sms"

	// DefaultTimeout bounds a whole request when Config.HTTPClient is nil.
	DefaultTimeout = 30 * time.Second
)

// Config holds the per-instance defaults of a ZenviaClient.
type Config struct {
	User     string
	Password string
	Log      LogFunc

	Endpoint   string
	HTTPClient *http.Client
	// Tracer receives debug traces of each request. Defaults to a no-op logger.
	Tracer *zap.Logger
	// NewID generates message ids. Defaults to random UUIDs.
	NewID func() string
}

// ZenviaClient sends messages to Zenvia. Its configuration is read-only
// after construction, so a single instance is safe for concurrent use.
type ZenviaClient struct {
	user       string
	password   string
	log        LogFunc
	endpoint   string
	httpClient *http.Client
	tracer     *zap.Logger
	newID      func() string
}

var _ Client = (*ZenviaClient)(nil)

// NewZenviaClient creates a client from cfg, filling unset fields with defaults.
func NewZenviaClient(cfg Config) *ZenviaClient {
	c := &ZenviaClient{
		user:       cfg.User,
		password:   cfg.Password,
		log:        cfg.Log,
		endpoint:   cfg.Endpoint,
		httpClient: cfg.HTTPClient,
		tracer:     cfg.Tracer,
		newID:      cfg.NewID,
	}
	if c.log == nil {
		c.log = noopLog
	}
	if c.endpoint == "" {
		c.endpoint = DefaultEndpoint
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if c.tracer == nil {
		c.tracer = zap.NewNop()
	}
	if c.newID == nil {
		c.newID = uuid.NewString
	}
	return c
}

// SendOption overrides instance defaults for a single call.
type SendOption func(*sendOptions)

type sendOptions struct {
	user     string
	password string
	log      LogFunc
}

// WithCredentials sets the basic auth pair for one call. Blank values fall
// back to the client's own credentials.
func WithCredentials(user, password string) SendOption {
	return func(o *sendOptions) {
		o.user = user
		o.password = password
	}
}

// WithLogger replaces the client's LogFunc for one call.
func WithLogger(fn LogFunc) SendOption {
	return func(o *sendOptions) {
		o.log = fn
	}
}

func (c *ZenviaClient) resolve(opts []SendOption) sendOptions {
	var o sendOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.user == "" {
		o.user = c.user
	}
	if o.password == "" {
		o.password = c.password
	}
	if o.log == nil {
		o.log = c.log
	}
	return o
}

// Send implements Client.Send. msg is received by value and never modified.
func (c *ZenviaClient) Send(ctx context.Context, msg Message, opts ...SendOption) (*SendResult, error) {
	o := c.resolve(opts)

	if msg.ID == "" {
		msg.ID = c.newID()
	}
	if err := validateMessage(msg); err != nil {
		return nil, err
	}

	envelope := SendRequest{SendSmsRequest: msg}

	body, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal send-sms payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(o.user, o.password)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	c.tracer.Debug("Sending SMS request", zap.String("id", msg.ID))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.fail(o.log, LogEvent{Error: true, Cause: err, Request: envelope})
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.fail(o.log, LogEvent{
			Error:           true,
			Cause:           err,
			ResponseStatus:  resp.StatusCode,
			ResponseHeaders: resp.Header.Clone(),
			Request:         envelope,
		})
		return nil, err
	}
	parsed := decodeBody(raw)

	if resp.StatusCode != http.StatusOK {
		perr := &ProviderError{}
		c.fail(o.log, LogEvent{
			Error:           true,
			Cause:           perr,
			ResponseStatus:  resp.StatusCode,
			ResponseHeaders: resp.Header.Clone(),
			Response:        parsed,
			Request:         envelope,
		})
		return nil, perr
	}

	result := &SendResult{
		ID:          msg.ID,
		Response:    parsed,
		RawResponse: raw,
		Message:     msg,
		Error:       false,
		Request:     envelope,
	}

	c.tracer.Debug("Success with SMS request", zap.String("id", msg.ID))
	c.emit(o.log, LogEvent{
		Error:           false,
		ResponseStatus:  resp.StatusCode,
		ResponseHeaders: resp.Header.Clone(),
		Response:        parsed,
		Request:         envelope,
	})
	return result, nil
}

// SendAsync runs Send on its own goroutine and hands the outcome to cb
// exactly once. Validation failures are delivered the same way.
func (c *ZenviaClient) SendAsync(ctx context.Context, msg Message, cb Callback, opts ...SendOption) {
	go func() {
		res, err := c.Send(ctx, msg, opts...)
		if cb != nil {
			cb(res, err)
		}
	}()
}

func (c *ZenviaClient) fail(log LogFunc, ev LogEvent) {
	c.tracer.Debug("Error with SMS request",
		zap.String("id", ev.Request.SendSmsRequest.ID),
		zap.Error(ev.Cause),
	)
	c.emit(log, ev)
}

// emit calls the LogFunc, containing any panic so it cannot alter the
// outcome of the send.
func (c *ZenviaClient) emit(log LogFunc, ev LogEvent) {
	defer func() {
		if r := recover(); r != nil {
			c.tracer.Error("sms log callback panicked",
				zap.String("id", ev.Request.SendSmsRequest.ID),
				zap.Any("panic", r),
			)
		}
	}()
	log(ev)
}

func decodeBody(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if json.Valid(raw) && json.Unmarshal(raw, &v) == nil {
		return v
	}
	return string(raw)
}
