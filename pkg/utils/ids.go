package utils

import (
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

const simulatedTxnPrefix = "SIM-"

// NewSimulatedTransactionID returns a sortable id for payments that never touched a gateway.
func NewSimulatedTransactionID() string {
	return simulatedTxnPrefix + ulid.Make().String()
}

// ParseUUID maps a malformed id to ErrInvalidID.
func ParseUUID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrInvalidID
	}
	return id, nil
}
