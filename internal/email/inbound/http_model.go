package inbound

import (
	"net/http"

	"github.com/shandysiswandi/mailadapter/internal/email/entity"
	"github.com/shandysiswandi/mailadapter/internal/email/usecase"
)

type SendEmailRequest struct {
	RecipientAddress     string `json:"recipientAddress"`
	RecipientDisplayName string `json:"recipientDisplayName"`
	SenderAddress        string `json:"senderAddress"`
	Subject              string `json:"subject"`
	Body                 string `json:"body"`
}

func (r SendEmailRequest) toEntity() entity.EmailRequest {
	return entity.EmailRequest{
		RecipientAddress:     r.RecipientAddress,
		RecipientDisplayName: r.RecipientDisplayName,
		SenderAddress:        r.SenderAddress,
		Subject:              r.Subject,
		Body:                 r.Body,
	}
}

type HealthResponse struct {
	Status    string   `json:"status"`
	Provider  string   `json:"provider"`
	Providers []string `json:"providers"`
}

func (h HealthResponse) StatusCode() int {
	if h.Status != usecase.HealthStatusUp {
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}

func (h HealthResponse) Message() string {
	return "service is " + h.Status
}
