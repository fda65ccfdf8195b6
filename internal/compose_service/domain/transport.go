package domain

import "context"

// DefaultContactSortKey is the sort attribute used for contact searches.
const DefaultContactSortKey = "name"

// ResponseData is the "data" part of a transport response.
type ResponseData[T any] struct {
	Payload T `json:"payload"`
}

// Response mirrors the transport's {data: {payload: ...}} envelope.
type Response[T any] struct {
	Data ResponseData[T] `json:"data"`
}

// NewResponse wraps payload in a Response envelope.
func NewResponse[T any](payload T) *Response[T] {
	return &Response[T]{Data: ResponseData[T]{Payload: payload}}
}

// ContactTransport is the backend collaborator performing the actual requests.
// A page of 0 leaves the page choice to the transport.
type ContactTransport interface {
	Filter(ctx context.Context, page int, sortKey string, expr FilterExpression) (*Response[[]Record], error)
	Create(ctx context.Context, attrs NewContactAttributes) (*Response[CreatedContact], error)
	GetContactableInboxes(ctx context.Context, contactID int64) (*Response[[]ContactInbox], error)
	CreateConversation(ctx context.Context, payload MessagePayload) (*Response[Record], error)
}
