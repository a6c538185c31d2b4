package inbound

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/mailadapter/internal/email/entity"
	"github.com/shandysiswandi/mailadapter/internal/email/usecase"
	"github.com/shandysiswandi/mailadapter/internal/pkg/goerror"
	"github.com/shandysiswandi/mailadapter/internal/pkg/instrument"
	"github.com/shandysiswandi/mailadapter/internal/pkg/messaging"
	"github.com/shandysiswandi/mailadapter/internal/pkg/uid"
	"github.com/shandysiswandi/mailadapter/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, msg *messaging.Message) context.Context {
	if cID := msg.Header(instrument.CorrelationHeader); cID != "" {
		return instrument.SetCorrelationID(ctx, cID)
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

// SendEmail consumes a canonical request from the email_send topic. Messages
// that can never succeed (bad JSON, validation failures) are logged and acked;
// configuration and sink failures are returned so the broker redelivers.
func (h *MQHandler) SendEmail(ctx context.Context, msg *messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg)

	ctx, span := h.ins.Tracer("email.inbound.mq").Start(ctx, "SendEmail")
	defer span.End()

	slog.InfoContext(ctx, "consume: email send", "msg_id", msg.ID, "msg_body", string(msg.Body))

	var payload event.EmailSendMessage
	if err := json.Unmarshal(msg.Body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of email send", "msg_body", string(msg.Body), "error", err)
		return nil
	}

	err := h.uc.SendEmail(ctx, usecase.SendEmailInput{
		Request: entity.EmailRequest{
			RecipientAddress:     payload.RecipientAddress,
			RecipientDisplayName: payload.RecipientDisplayName,
			SenderAddress:        payload.SenderAddress,
			Subject:              payload.Subject,
			Body:                 payload.Body,
		},
		Source: "mq",
	})
	if err == nil {
		return nil
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	var gerr *goerror.Error
	if errors.As(err, &gerr) && (gerr.Code() == goerror.CodeInvalidInput || gerr.Code() == goerror.CodeInvalidOutput) {
		slog.WarnContext(ctx, "dropping invalid email send message", "msg_body", string(msg.Body), "error", err)
		return nil
	}

	slog.ErrorContext(ctx, "failed to consume email send", "msg_body", string(msg.Body), "error", err)
	return err
}
