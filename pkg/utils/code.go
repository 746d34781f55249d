package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateProductCode generates a unique product code for products created
// without an explicit SKU
func GenerateProductCode() string {
	return "PROD-" + strings.ToUpper(uuid.New().String()[:8])
}

// NewRequestID generates a request identifier for tracing
func NewRequestID() string {
	return uuid.New().String()
}
