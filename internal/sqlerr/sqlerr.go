// Package sqlerr turns PostgreSQL driver errors into something the rest
// of the application can switch on.
//
// SQLSTATE codes are mapped to the Code enum so services can classify
// constraint violations. HandleError is the last resort of the global
// error handler for errors no layer translated.
package sqlerr
