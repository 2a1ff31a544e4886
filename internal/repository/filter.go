package repository

import (
	"fmt"
	"strings"
)

// Operator is a comparison usable in a Condition
type Operator string

const (
	OpEquals          Operator = "equals"
	OpLessThanOrEqual Operator = "lessThanOrEqual"
)

// Condition is a single-field predicate on the cars table
type Condition struct {
	Field    string
	Operator Operator
	Value    interface{}
}

// Equals matches rows where field = value
func Equals(field string, value interface{}) Condition {
	return Condition{Field: field, Operator: OpEquals, Value: value}
}

// AtMost matches rows where field <= value
func AtMost(field string, value interface{}) Condition {
	return Condition{Field: field, Operator: OpLessThanOrEqual, Value: value}
}

// placeholderFunc renders the n-th (1-based) bind parameter of a dialect
type placeholderFunc func(n int) string

func dollarPlaceholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

func questionPlaceholder(int) string {
	return "?"
}

const (
	carColumns   = "id, brand, model, year, color, price"
	selectCars   = "SELECT " + carColumns + " FROM cars"
	orderCarsSQL = " ORDER BY id"
)

var filterableColumns = map[string]bool{
	"id":    true,
	"brand": true,
	"model": true,
	"year":  true,
	"color": true,
	"price": true,
}

// buildCarQuery renders a SELECT over cars with the conditions ANDed together.
// Values are always passed as bind arguments, never inlined.
func buildCarQuery(placeholder placeholderFunc, conditions ...Condition) (string, []interface{}, error) {
	clauses := make([]string, 0, len(conditions))
	args := make([]interface{}, 0, len(conditions))

	for i, condition := range conditions {
		clause, err := condition.toSQL(placeholder(i + 1))
		if err != nil {
			return "", nil, fmt.Errorf("failed to generate WHERE clause for condition %d: %w", i, err)
		}
		clauses = append(clauses, clause)
		args = append(args, condition.Value)
	}

	query := selectCars
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	return query + orderCarsSQL, args, nil
}

func (c Condition) toSQL(placeholder string) (string, error) {
	if !filterableColumns[c.Field] {
		return "", fmt.Errorf("unsupported field: %s", c.Field)
	}

	switch c.Operator {
	case OpEquals:
		return fmt.Sprintf("%s = %s", c.Field, placeholder), nil
	case OpLessThanOrEqual:
		return fmt.Sprintf("%s <= %s", c.Field, placeholder), nil
	default:
		return "", fmt.Errorf("unsupported operator: %s", c.Operator)
	}
}
