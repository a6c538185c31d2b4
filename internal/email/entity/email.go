package entity

// EmailRequest is the provider-neutral email-send request accepted by every
// inbound boundary.
type EmailRequest struct {
	RecipientAddress     string `json:"recipientAddress" validate:"required,notblank,email"`
	RecipientDisplayName string `json:"recipientDisplayName" validate:"required,notblank"`
	SenderAddress        string `json:"senderAddress" validate:"required,notblank,email"`
	Subject              string `json:"subject" validate:"required,notblank"`
	Body                 string `json:"body" validate:"required,notblank"`
}
