// Package store holds the parameterized SQL for users, artists and songs.
// Every function takes a database.Querier so callers decide whether it runs
// on a pooled connection or inside a transaction.
package store

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoFields is returned when an update would have no SET clause.
var ErrNoFields = errors.New("no fields to update")

// Patch is an ordered column assignment list for partial updates.
type Patch struct {
	columns []string
	values  []any
}

// Set adds or replaces the value assigned to column. A nil value writes NULL.
func (p *Patch) Set(column string, value any) {
	for i, existing := range p.columns {
		if existing == column {
			p.values[i] = value
			return
		}
	}
	p.columns = append(p.columns, column)
	p.values = append(p.values, value)
}

func (p Patch) Empty() bool {
	return len(p.columns) == 0
}

// buildUpdate renders "UPDATE table SET a = $1, b = $2[, extra] WHERE ... RETURNING ...".
// where is a format string receiving the next placeholder numbers.
func buildUpdate(table string, p Patch, extraSet string, where string, whereArgs []any, returning string) (string, []any, error) {
	if p.Empty() {
		return "", nil, ErrNoFields
	}

	assignments := make([]string, 0, len(p.columns)+1)
	for i, column := range p.columns {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, i+1))
	}
	if extraSet != "" {
		assignments = append(assignments, extraSet)
	}

	placeholders := make([]any, len(whereArgs))
	for i := range whereArgs {
		placeholders[i] = fmt.Sprintf("$%d", len(p.columns)+i+1)
	}

	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE %s RETURNING %s",
		table,
		strings.Join(assignments, ", "),
		fmt.Sprintf(where, placeholders...),
		returning,
	)

	args := make([]any, 0, len(p.values)+len(whereArgs))
	args = append(args, p.values...)
	args = append(args, whereArgs...)
	return query, args, nil
}
