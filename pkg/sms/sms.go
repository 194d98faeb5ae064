// Package sms is a client for the Zenvia send-sms REST endpoint.
//
// A send validates the message locally, attaches a client generated id when
// the caller did not provide one and issues a single authenticated POST.
// Every attempt that reaches the network is reported to an optional LogFunc.
package sms

import "context"

// Client is the contract for sending one SMS through the provider.
type Client interface {
	// Send validates and submits msg. It returns the normalized success
	// record, a *ValidationError, the transport error or a *ProviderError.
	Send(ctx context.Context, msg Message, opts ...SendOption) (*SendResult, error)
}

// Callback receives the outcome of SendAsync. Exactly one of result and err
// is non-nil.
type Callback func(result *SendResult, err error)
