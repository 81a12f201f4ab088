package querybuilder

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// InsertModel builds an INSERT from the db-tagged fields of model.
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

// UpdateModel sets every db-tagged column of model except keyColumns and
// matches the row on keyColumns.
func UpdateModel(table string, model any, keyColumns ...string) (string, []any, error) {
	if len(keyColumns) == 0 {
		return "", nil, fmt.Errorf("update key columns are required")
	}
	cols, vals, err := columnsAndValuesFromModel(model)
	if err != nil {
		return "", nil, err
	}

	builder := Update(table)
	keys := make(map[string]any, len(keyColumns))
	for i, col := range cols {
		if slices.Contains(keyColumns, col) {
			keys[col] = vals[i]
			continue
		}
		builder.Set(col, vals[i])
	}
	for _, key := range keyColumns {
		value, ok := keys[key]
		if !ok {
			return "", nil, fmt.Errorf("model has no key column %q", key)
		}
		builder.Where(Eq(key, value))
	}
	return builder.ToSQL()
}

// Columns lists the db-tagged columns of model in field order, for SELECT
// lists that must stay in step with the struct.
func Columns(model any) []string {
	cols, _, err := columnsAndValuesFromModel(model)
	if err != nil {
		return nil
	}
	return cols
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

	cols := make([]string, 0, value.NumField())
	vals := make([]any, 0, value.NumField())
	appendModelFields(value, &cols, &vals)

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model has no db columns")
	}
	return cols, vals, nil
}

// appendModelFields walks db-tagged fields, flattening untagged embedded
// structs so write models can extend read models.
func appendModelFields(value reflect.Value, cols *[]string, vals *[]any) {
	typ := value.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		tag := strings.TrimSpace(field.Tag.Get("db"))
		if field.Anonymous && tag == "" && field.Type.Kind() == reflect.Struct {
			appendModelFields(value.Field(i), cols, vals)
			continue
		}
		if field.PkgPath != "" {
			continue
		}
		if tag == "" || tag == "-" {
			continue
		}
		col := strings.TrimSpace(strings.Split(tag, ",")[0])
		if col == "" || col == "-" {
			continue
		}
		*cols = append(*cols, col)
		*vals = append(*vals, value.Field(i).Interface())
	}
}
