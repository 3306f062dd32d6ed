package remoteRepo

import (
	"context"
	"errors"
	"net"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrorKind classifies a failure for the command result surface.
type ErrorKind string

const (
	KindOffline    ErrorKind = "offline"
	KindNetwork    ErrorKind = "network"
	KindAuth       ErrorKind = "auth"
	KindServer     ErrorKind = "server"
	KindValidation ErrorKind = "validation"
	KindUnknown    ErrorKind = "unknown"
)

// ErrNotFound is returned when no row matches the requested id.
var ErrNotFound = errors.New("record not found")

// ErrValidation marks malformed input rejected before any remote write.
var ErrValidation = errors.New("validation failed")

// Classify maps an error from the remote store into the error taxonomy.
func Classify(err error) ErrorKind {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrValidation) {
		return KindValidation
	}
	if errors.Is(err, context.DeadlineExceeded) || mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return KindNetwork
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindNetwork
	}
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		// 13 Unauthorized, 18 AuthenticationFailed
		switch cmdErr.Code {
		case 13, 18:
			return KindAuth
		}
		return KindServer
	}
	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		return KindServer
	}
	return KindUnknown
}
