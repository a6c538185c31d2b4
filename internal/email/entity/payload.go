package entity

// Payload is a provider-specific adapted email. The set of variants is closed:
// AWSPayload and OCIPayload.
type Payload interface {
	Provider() Provider
	payload()
}

// AWSPayload is the email shape expected by the AWS integration.
type AWSPayload struct {
	Recipient     string `json:"recipient" validate:"required,notblank,email"`
	RecipientName string `json:"recipientName" validate:"required,notblank"`
	Sender        string `json:"sender" validate:"required,notblank,email"`
	Subject       string `json:"subject" validate:"required,notblank"`
	Content       string `json:"content" validate:"required,notblank"`
}

func (AWSPayload) Provider() Provider { return ProviderAWS }
func (AWSPayload) payload()           {}

// OCIPayload is the email shape expected by the OCI integration.
type OCIPayload struct {
	RecipientEmail string `json:"recipientEmail" validate:"required,notblank,email"`
	RecipientName  string `json:"recipientName" validate:"required,notblank"`
	SenderEmail    string `json:"senderEmail" validate:"required,notblank,email"`
	Subject        string `json:"subject" validate:"required,notblank"`
	Body           string `json:"body" validate:"required,notblank"`
}

func (OCIPayload) Provider() Provider { return ProviderOCI }
func (OCIPayload) payload()           {}
