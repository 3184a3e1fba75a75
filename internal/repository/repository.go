// Package repository handles all interactions with the database.
//
// Queries are built with squirrel using PostgreSQL placeholders and run on
// the transaction carried by the context when there is one.
package repository

import sq "github.com/Masterminds/squirrel"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
