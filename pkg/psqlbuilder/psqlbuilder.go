package psqlbuilder

import "github.com/Masterminds/squirrel"

// builder is the shared squirrel builder configured for PostgreSQL
// ($1, $2, ... placeholders).
var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Select starts a SELECT statement with dollar placeholders
func Select(columns ...string) squirrel.SelectBuilder {
	return builder.Select(columns...)
}

// Insert starts an INSERT statement with dollar placeholders
func Insert(into string) squirrel.InsertBuilder {
	return builder.Insert(into)
}

// Update starts an UPDATE statement with dollar placeholders
func Update(table string) squirrel.UpdateBuilder {
	return builder.Update(table)
}

// Delete starts a DELETE statement with dollar placeholders
func Delete(from string) squirrel.DeleteBuilder {
	return builder.Delete(from)
}
