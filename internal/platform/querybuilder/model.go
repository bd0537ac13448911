package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

func InsertModel(table string, model any, suffix string) (string, []any, error) {
	cols, vals, err := columnsAndValuesFromModel(model)
	if err != nil {
		return "", nil, err
	}
	return InsertInto(table).
		Columns(cols...).
		Values(vals...).
		Suffix(suffix).
		ToSQL()
}

// UpsertModels builds a multi-row INSERT ... ON CONFLICT DO UPDATE for a
// slice of db-tagged struct models. Every column that is not part of the
// conflict target (and not id/created_at) is overwritten from EXCLUDED.
// guard, when non-empty, is appended as the DO UPDATE WHERE clause.
func UpsertModels(table string, models any, conflictColumns []string, guard string) (string, []any, error) {
	value := reflect.ValueOf(models)
	if value.Kind() != reflect.Slice {
		return "", nil, fmt.Errorf("models must be a slice")
	}
	if value.Len() == 0 {
		return "", nil, fmt.Errorf("models cannot be empty")
	}
	if len(conflictColumns) == 0 {
		return "", nil, fmt.Errorf("conflict columns are required")
	}

	builder := InsertInto(table)
	var cols []string
	for i := 0; i < value.Len(); i++ {
		rowCols, vals, err := columnsAndValuesFromModel(value.Index(i).Interface())
		if err != nil {
			return "", nil, err
		}
		if i == 0 {
			cols = rowCols
			builder.Columns(cols...)
		}
		builder.Values(vals...)
	}

	skip := make(map[string]bool, len(conflictColumns)+2)
	skip["id"] = true
	skip["created_at"] = true
	for _, col := range conflictColumns {
		skip[col] = true
	}

	updates := make([]string, 0, len(cols))
	for _, col := range cols {
		if skip[col] {
			continue
		}
		updates = append(updates, col+" = EXCLUDED."+col)
	}
	if len(updates) == 0 {
		return "", nil, fmt.Errorf("no updatable columns outside conflict target")
	}

	var suffix strings.Builder
	suffix.WriteString("ON CONFLICT (")
	suffix.WriteString(strings.Join(conflictColumns, ", "))
	suffix.WriteString(") DO UPDATE SET ")
	suffix.WriteString(strings.Join(updates, ", "))
	if strings.TrimSpace(guard) != "" {
		suffix.WriteString(" WHERE ")
		suffix.WriteString(strings.TrimSpace(guard))
	}

	return builder.Suffix(suffix.String()).ToSQL()
}

func columnsAndValuesFromModel(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct")
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.PkgPath != "" {
			continue
		}
		tag := strings.TrimSpace(field.Tag.Get("db"))
		if tag == "" || tag == "-" {
			continue
		}
		col := strings.TrimSpace(strings.Split(tag, ",")[0])
		if col == "" || col == "-" {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model has no db columns")
	}
	return cols, vals, nil
}
