package transport

import "context"

// Client is the HTTP verb surface the pod client needs. URLs are absolute;
// headers apply to the single request. Implementations must be safe for
// concurrent use.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
	Post(ctx context.Context, url string, body []byte, headers map[string]string) (Response, error)
	Put(ctx context.Context, url string, body []byte, headers map[string]string) (Response, error)
	Close()
}

// Response is an immutable snapshot of an HTTP response. Body returns a copy
// owned by the caller.
type Response interface {
	StatusCode() int
	Body() []byte
}
