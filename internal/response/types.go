package response

import "github.com/oggyb/zenvia-sms/pkg/sms"

type WelcomePayload struct {
	Message string `json:"message"`
}

type HealthPayload struct {
	Status string `json:"status"`
}

type WelcomeResponse struct {
	Success   bool           `json:"success"`
	Data      WelcomePayload `json:"data"`
	Timestamp string         `json:"timestamp"`
}

type HealthResponse struct {
	Success   bool          `json:"success"`
	Data      HealthPayload `json:"data"`
	Timestamp string        `json:"timestamp"`
}

// SendSMSPayload is the public view of a successful send.
type SendSMSPayload struct {
	ID       string          `json:"id"`
	Response any             `json:"response"`
	Request  sms.SendRequest `json:"request"`
}

type SendSMSResponse struct {
	Success   bool           `json:"success"`
	Data      SendSMSPayload `json:"data"`
	Timestamp string         `json:"timestamp"`
}

type ErrorResponse struct {
	Success   bool      `json:"success"`
	Error     ErrorBody `json:"error"`
	Timestamp string    `json:"timestamp"`
}

// FromSendResult converts a client result into the API payload.
func FromSendResult(r *sms.SendResult) SendSMSPayload {
	return SendSMSPayload{
		ID:       r.ID,
		Response: r.Response,
		Request:  r.Request,
	}
}
