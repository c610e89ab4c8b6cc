package utils

import (
	"context"
)

type contextKey string

const (
	SubjectKey   contextKey = "subject"
	RequestIDKey contextKey = "request_id"
)

// GetSubjectFromContext returns the username recovered from the bearer token.
func GetSubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(SubjectKey).(string)
	if !ok || subject == "" {
		return "", false
	}
	return subject, true
}

func SetSubjectContext(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, SubjectKey, subject)
}

// GetRequestIDFromContext returns the id assigned by the request id middleware.
func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

func SetRequestIDContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}
