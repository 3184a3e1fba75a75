// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives validated
// input from handlers, enforces the business rules and calls repositories
// inside a database transaction.
package service
