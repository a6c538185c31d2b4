// Package sink emits adapted payloads for downstream delivery.
package sink

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shandysiswandi/mailadapter/internal/email/entity"
)

const (
	DriverLog       = "log"
	DriverMessaging = "messaging"
)

// ErrSerialize is returned when a payload cannot be encoded.
var ErrSerialize = errors.New("sink: failed to serialize payload")

func marshal(v any, indent bool) ([]byte, error) {
	var (
		b   []byte
		err error
	)
	if indent {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerialize, err)
	}
	return b, nil
}

func payloadAttr(payload entity.Payload) string {
	if payload == nil {
		return ""
	}
	return payload.Provider().String()
}
