package sms

import "net/http"

// LogEvent describes one attempt that reached the network.
type LogEvent struct {
	Error   bool
	Request SendRequest
	// Response is the decoded body, nil when no response arrived.
	Response any
	// ResponseStatus is 0 when no response arrived.
	ResponseStatus  int
	ResponseHeaders http.Header
	Cause           error
}

// LogFunc receives a LogEvent for every transport failure, provider failure
// and success. Its return is ignored and a panic inside it is contained.
type LogFunc func(LogEvent)

func noopLog(LogEvent) {}
