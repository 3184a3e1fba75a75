// Package lib holds modules that do not fit strictly into one layer:
// background jobs (Asynq over Redis) and the email client (Resend).
package lib
