package ctxutil

import "context"

type requestDataKey struct{}

// RequestData carries the resolved caller of a request.
type RequestData struct {
	ProfileID   uint
	ProfileType string
	TokenString string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if ctx == nil {
		return nil
	}
	val := ctx.Value(requestDataKey{})
	if rd, ok := val.(*RequestData); ok {
		return rd
	}
	return nil
}

// CallerProfileID returns the caller profile id, or 0 when no caller was resolved.
func CallerProfileID(ctx context.Context) uint {
	rd := GetRequestData(ctx)
	if rd == nil {
		return 0
	}
	return rd.ProfileID
}

// Default returns context.Background() when ctx is nil.
func Default(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
