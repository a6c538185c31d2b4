package event

import (
	"encoding/json"
	"time"
)

// EmailSendDestination is the topic carrying canonical email-send requests.
const EmailSendDestination string = "email_send"

// EmailSendConsumerMailer is the consumer group/channel/subscription reading EmailSendDestination.
const EmailSendConsumerMailer string = "email_send_mailer"

// EmailSendMessage is the body published to EmailSendDestination.
type EmailSendMessage struct {
	RecipientAddress     string `json:"recipientAddress"`
	RecipientDisplayName string `json:"recipientDisplayName"`
	SenderAddress        string `json:"senderAddress"`
	Subject              string `json:"subject"`
	Body                 string `json:"body"`
}

// EmailAdaptedDestination is the default topic for adapted payloads.
const EmailAdaptedDestination string = "email_adapted"

// EmailAdaptedMessage wraps one adapted payload for downstream delivery workers.
type EmailAdaptedMessage struct {
	ID            int64           `json:"id"`
	Provider      string          `json:"provider"`
	CorrelationID string          `json:"correlationId,omitempty"`
	EmittedAt     time.Time       `json:"emittedAt"`
	Payload       json.RawMessage `json:"payload"`
}
