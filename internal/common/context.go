package common

import (
	"context"
	"time"
)

// Context keys for storing values in context
type contextKey string

const (
	ContextKeyRequestID  contextKey = "request_id"
	ContextKeyCustomerID contextKey = "customer_id"
)

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// RequestIDFromContext extracts the request ID from context
func RequestIDFromContext(ctx context.Context) string {
	if requestID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return requestID
	}
	return ""
}

// WithCustomerID adds a customer ID to the context
func WithCustomerID(ctx context.Context, customerID string) context.Context {
	return context.WithValue(ctx, ContextKeyCustomerID, customerID)
}

// CustomerIDFromContext extracts the customer ID from context
func CustomerIDFromContext(ctx context.Context) string {
	if customerID, ok := ctx.Value(ContextKeyCustomerID).(string); ok {
		return customerID
	}
	return ""
}

// WithTimeout creates a context with the specified timeout
func WithTimeout(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}
