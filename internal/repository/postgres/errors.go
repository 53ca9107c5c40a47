package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/andressep95/blog-service/internal/domain"
	"github.com/lib/pq"
)

const uniqueViolation = pq.ErrorCode("23505")

// wrapError attaches the matching domain sentinel to a driver error
func wrapError(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		switch {
		case strings.Contains(pqErr.Constraint, "login"):
			return fmt.Errorf("%s: %w", op, domain.ErrDuplicateLogin)
		case strings.Contains(pqErr.Constraint, "email"):
			return fmt.Errorf("%s: %w", op, domain.ErrDuplicateEmail)
		}
	}

	return fmt.Errorf("failed to %s: %w: %w", op, domain.ErrDataBase, err)
}

// checkAffected turns a zero row count into ErrNotFound
func checkAffected(op string, result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil
}

// orderBy renders an ORDER BY clause, falling back to created_at for unknown sort fields
func orderBy(q domain.QueryParams, columns map[string]string) string {
	column, ok := columns[q.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if q.SortDirection == domain.SortAsc {
		direction = "ASC"
	}
	return fmt.Sprintf(" ORDER BY %s %s, id %s", column, direction, direction)
}

// whereBuilder collects positional conditions for dynamic queries
type whereBuilder struct {
	conds []string
	args  []interface{}
}

func (w *whereBuilder) add(format string, arg interface{}) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, fmt.Sprintf(format, len(w.args)))
}

func (w *whereBuilder) clause(sep string) string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, sep)
}

// page appends LIMIT/OFFSET placeholders and returns the final query and args
func (w *whereBuilder) page(query string, q domain.QueryParams) (string, []interface{}) {
	args := append(append([]interface{}{}, w.args...), q.PageSize, q.Skip())
	return fmt.Sprintf("%s LIMIT $%d OFFSET $%d", query, len(args)-1, len(args)), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern matches term literally anywhere in the value of a LIKE ... ESCAPE '\' condition
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
