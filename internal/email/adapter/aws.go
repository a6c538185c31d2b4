package adapter

import "github.com/shandysiswandi/mailadapter/internal/email/entity"

// ToAWS maps the canonical request onto the AWS payload.
func ToAWS(req entity.EmailRequest) entity.Payload {
	return entity.AWSPayload{
		Recipient:     req.RecipientAddress,
		RecipientName: req.RecipientDisplayName,
		Sender:        req.SenderAddress,
		Subject:       req.Subject,
		Content:       req.Body,
	}
}
