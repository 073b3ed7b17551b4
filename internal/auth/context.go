package auth

import "context"

type payloadContextKey struct{}

// ContextWithPayload attaches the verified token payload to the context.
func ContextWithPayload(ctx context.Context, payload *TokenPayload) context.Context {
	if payload == nil {
		return ctx
	}
	return context.WithValue(ctx, payloadContextKey{}, payload)
}

// PayloadFromContext extracts the verified token payload from the context.
func PayloadFromContext(ctx context.Context) (*TokenPayload, bool) {
	if ctx == nil {
		return nil, false
	}
	v, ok := ctx.Value(payloadContextKey{}).(*TokenPayload)
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}
