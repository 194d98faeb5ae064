package sms

import (
	"context"
	"os"
	"sync"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvUser     = "ZENVIA_API_USER"
	EnvPassword = "ZENVIA_API_PASSWORD"
)

// ConfigFromEnv returns a Config holding a snapshot of the credential
// environment variables.
func ConfigFromEnv() Config {
	return Config{
		User:     os.Getenv(EnvUser),
		Password: os.Getenv(EnvPassword),
	}
}

var (
	defaultOnce   sync.Once
	defaultClient *ZenviaClient
)

// Default returns the process-wide client. It is built on first use from
// ConfigFromEnv and never changes afterwards; construct a new client with
// NewZenviaClient for other credentials.
func Default() *ZenviaClient {
	defaultOnce.Do(func() {
		defaultClient = NewZenviaClient(ConfigFromEnv())
	})
	return defaultClient
}

// Send sends msg with the default client.
func Send(ctx context.Context, msg Message, opts ...SendOption) (*SendResult, error) {
	return Default().Send(ctx, msg, opts...)
}

// SendAsync sends msg with the default client and reports through cb.
func SendAsync(ctx context.Context, msg Message, cb Callback, opts ...SendOption) {
	Default().SendAsync(ctx, msg, cb, opts...)
}
