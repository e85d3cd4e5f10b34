package push

import (
	"context"

	"firebase.google.com/go/v4/errorutils"
	"firebase.google.com/go/v4/messaging"
)

// MulticastLimit is FCM's hard cap on recipients per multicast call.
const MulticastLimit = 500

// Client is the subset of the FCM messaging client the dispatcher needs.
// *messaging.Client satisfies it directly.
type Client interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
	SendEachForMulticast(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error)
}

// ErrorCode classifies a provider send error into a stable code string.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case messaging.IsUnregistered(err):
		return "unregistered"
	case messaging.IsSenderIDMismatch(err):
		return "sender-id-mismatch"
	case messaging.IsQuotaExceeded(err):
		return "quota-exceeded"
	case messaging.IsThirdPartyAuthError(err):
		return "third-party-auth-error"
	case errorutils.IsUnavailable(err):
		return "unavailable"
	case errorutils.IsInternal(err):
		return "internal"
	case errorutils.IsInvalidArgument(err):
		return "invalid-argument"
	default:
		return "unknown"
	}
}
