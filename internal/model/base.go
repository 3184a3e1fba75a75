// Package model holds the entities persisted by the service and the
// request/response shapes of the API, one subpackage per aggregate.
package model

import "time"

// Timestamps are assigned by the database.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
