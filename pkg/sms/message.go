package sms

import (
	"encoding/json"
	"errors"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/go-playground/validator/v10"
)

// MaxMsgLength is the maximum length of Message.Msg, counted in UTF-16
// code units: a character outside the BMP, such as most emoji, counts twice.
const MaxMsgLength = 140

// Message is the caller supplied SMS payload.
type Message struct {
	// ID is the client id for the message. Generated when empty.
	ID string `json:"id" validate:"required"`
	// To is the recipient including country and area codes.
	To string `json:"to" validate:"required"`
	// From is the label shown at the beginning of the message.
	From string `json:"from" validate:"required"`
	// Msg is the body of the message.
	Msg         string `json:"msg" validate:"required,utf16max=140"`
	AggregateID string `json:"aggregateId,omitempty"`
}

// SendRequest is the envelope posted to the provider.
type SendRequest struct {
	SendSmsRequest Message `json:"sendSmsRequest"`
}

// SendResult is returned for every message accepted with HTTP 200.
type SendResult struct {
	ID string `json:"id"`
	// Response is the decoded JSON body, or the body text when it is not JSON.
	Response    any         `json:"response"`
	RawResponse []byte      `json:"-"`
	Message     Message     `json:"message"`
	Error       bool        `json:"error"`
	Request     SendRequest `json:"request"`
}

// ProviderResponse is the body Zenvia documents for a processed request.
type ProviderResponse struct {
	SendSmsResponse struct {
		StatusCode        string `json:"statusCode"`
		StatusDescription string `json:"statusDescription"`
		DetailCode        string `json:"detailCode"`
		DetailDescription string `json:"detailDescription"`
	} `json:"sendSmsResponse"`
}

// DecodeResponse unmarshals the raw provider body into v.
func (r *SendResult) DecodeResponse(v any) error {
	if len(r.RawResponse) == 0 {
		return errors.New("sms: empty provider response")
	}
	return json.Unmarshal(r.RawResponse, v)
}

// ProviderStatus returns the typed provider status block, if the body has one.
func (r *SendResult) ProviderStatus() (*ProviderResponse, bool) {
	var pr ProviderResponse
	if err := r.DecodeResponse(&pr); err != nil {
		return nil, false
	}
	if pr.SendSmsResponse.StatusCode == "" {
		return nil, false
	}
	return &pr, true
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report json names so error messages match the wire fields.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("utf16max", utf16Max)
	return v
}

// utf16Max reports whether the field fits in param UTF-16 code units.
func utf16Max(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return utf16Len(fl.Field().String()) <= limit
}

func utf16Len(s string) int {
	return len(utf16.Encode([]rune(s)))
}

// validateMessage checks the required fields in declaration order and
// reports the first failure only.
func validateMessage(m Message) error {
	err := validate.Struct(m)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	if fe.Tag() == "utf16max" {
		return &ValidationError{Field: fe.Field(), Message: "message.msg needs to be shorter or equal to 140 characters"}
	}

	name := fe.Field()
	if name == "to" {
		name = "recipient"
	}
	return &ValidationError{Field: fe.Field(), Message: "Missing message." + name}
}
