// Package errs defines the error shapes the API speaks.
//
// Two families live here:
//   - HTTPError, the JSON envelope every failed request is answered with.
//     Its "message" field is the human readable ApiError message.
//   - Error, a tagged domain error (NotFound, InvalidState, Conflict,
//     Unexpected) returned by the service layer. Handlers switch on its Kind
//     to pick a status code instead of guessing from error types.
package errs
