package request

import "github.com/oggyb/zenvia-sms/pkg/sms"

// SendSMSRequest is the JSON body accepted by POST /sms.
type SendSMSRequest struct {
	ID          string `json:"id,omitempty"`
	To          string `json:"to" example:"5511999999999"`
	From        string `json:"from" example:"agenda0"`
	Msg         string `json:"msg" example:"Hello World"`
	AggregateID string `json:"aggregateId,omitempty"`

	// User and Password override the relay's Zenvia credentials for this call.
	User     string `json:"user,omitempty" validate:"required_with=Password"`
	Password string `json:"password,omitempty" validate:"required_with=User"`
}

// Message maps the request onto the client payload.
func (r SendSMSRequest) Message() sms.Message {
	return sms.Message{
		ID:          r.ID,
		To:          r.To,
		From:        r.From,
		Msg:         r.Msg,
		AggregateID: r.AggregateID,
	}
}
