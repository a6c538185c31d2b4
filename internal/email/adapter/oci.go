package adapter

import "github.com/shandysiswandi/mailadapter/internal/email/entity"

// ToOCI maps the canonical request onto the OCI payload.
func ToOCI(req entity.EmailRequest) entity.Payload {
	return entity.OCIPayload{
		RecipientEmail: req.RecipientAddress,
		RecipientName:  req.RecipientDisplayName,
		SenderEmail:    req.SenderAddress,
		Subject:        req.Subject,
		Body:           req.Body,
	}
}
