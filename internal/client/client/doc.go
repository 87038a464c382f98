// Package client contains the client side of the gophauth API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface):
//     Register, Login, Profile and AdminDashboard.
//  2. A concrete gRPC implementation (see GRPCClient) that manages a
//     connection, remembers the token returned by Register/Login, injects it
//     as "access_token" metadata via an interceptor, and maps gRPC status
//     codes to sentinel errors.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match with
// errors.Is: ErrUnavailable, ErrUnauthorized, ErrForbidden, ErrAlreadyExists,
// ErrInvalidInput. The server's status message is kept in the wrapped error.
//
// The token is guarded by a mutex, so a GRPCClient may be shared between
// goroutines. All operations accept context.Context and honor cancellation.
package client
