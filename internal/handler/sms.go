package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/oggyb/zenvia-sms/internal/request"
	"github.com/oggyb/zenvia-sms/internal/response"
	"github.com/oggyb/zenvia-sms/pkg/sms"
)

// SMSHandler relays HTTP send requests to the Zenvia client.
type SMSHandler struct {
	client   sms.Client
	validate *validator.Validate
	log      *zap.Logger
}

// NewSMSHandler constructs a new SMSHandler with its dependencies.
func NewSMSHandler(client sms.Client, log *zap.Logger) *SMSHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &SMSHandler{
		client:   client,
		validate: validator.New(),
		log:      log,
	}
}

// Send godoc
// @Summary     Send an SMS
// @Description Validates the message and submits it to Zenvia in a single attempt.
// @Tags        sms
// @Accept      json
// @Produce     json
// @Param       request body request.SendSMSRequest true "Message to send"
// @Success     200 {object} response.SendSMSResponse
// @Failure     400 {object} response.ErrorResponse
// @Failure     502 {object} response.ErrorResponse
// @Router      /sms [post]
func (h *SMSHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req request.SendSMSRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "user and password must be provided together")
		return
	}

	var opts []sms.SendOption
	if req.User != "" {
		opts = append(opts, sms.WithCredentials(req.User, req.Password))
	}

	res, err := h.client.Send(r.Context(), req.Message(), opts...)
	if err != nil {
		var ve *sms.ValidationError
		switch {
		case errors.As(err, &ve):
			response.RespondFieldError(w, http.StatusBadRequest, ve.Field, ve.Error())
		case errors.Is(err, sms.ErrProviderFailure):
			response.RespondError(w, http.StatusBadGateway, err.Error())
		default:
			h.log.Error("zenvia unreachable", zap.Error(err))
			response.RespondError(w, http.StatusBadGateway, "provider unreachable")
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, response.FromSendResult(res))
}
