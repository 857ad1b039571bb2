package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// modelColumn is one db-tagged struct field. A field tagged `db:"col,noupdate"` is written
// on insert and left untouched by UpsertModel.
type modelColumn struct {
	index    int
	name     string
	noUpdate bool
}

var columnPlans sync.Map // reflect.Type -> []modelColumn

func InsertModel(table string, model any, suffix string) (string, []any, error) {
	cols, vals, _, err := modelValues(model)
	if err != nil {
		return "", nil, err
	}
	return InsertInto(table).
		Columns(cols...).
		Values(vals...).
		Suffix(suffix).
		ToSQL()
}

// UpsertModel inserts the model and, on a conflict over the given columns, overwrites every
// other column with the incoming value.
func UpsertModel(table string, model any, conflict ...string) (string, []any, error) {
	if len(conflict) == 0 {
		return "", nil, fmt.Errorf("upsert requires at least one conflict column")
	}

	cols, vals, plan, err := modelValues(model)
	if err != nil {
		return "", nil, err
	}

	keys := make(map[string]struct{}, len(conflict))
	for _, c := range conflict {
		keys[c] = struct{}{}
	}

	sets := make([]string, 0, len(plan))
	for _, col := range plan {
		if _, isKey := keys[col.name]; isKey || col.noUpdate {
			continue
		}
		sets = append(sets, col.name+" = EXCLUDED."+col.name)
	}

	suffix := "ON CONFLICT (" + strings.Join(conflict, ", ") + ") DO NOTHING"
	if len(sets) > 0 {
		suffix = "ON CONFLICT (" + strings.Join(conflict, ", ") + ") DO UPDATE SET " + strings.Join(sets, ", ")
	}

	return InsertInto(table).
		Columns(cols...).
		Values(vals...).
		Suffix(suffix).
		ToSQL()
}

func modelValues(model any) ([]string, []any, []modelColumn, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, nil, fmt.Errorf("model must be struct")
	}

	plan := columnPlan(value.Type())
	if len(plan) == 0 {
		return nil, nil, nil, fmt.Errorf("model has no db columns")
	}

	cols := make([]string, len(plan))
	vals := make([]any, len(plan))
	for i, col := range plan {
		cols[i] = col.name
		vals[i] = value.Field(col.index).Interface()
	}
	return cols, vals, plan, nil
}

func columnPlan(typ reflect.Type) []modelColumn {
	if cached, ok := columnPlans.Load(typ); ok {
		return cached.([]modelColumn)
	}

	plan := make([]modelColumn, 0, typ.NumField())
	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(field.Tag.Get("db"), ",")
		name = strings.TrimSpace(name)
		if name == "" || name == "-" {
			continue
		}
		plan = append(plan, modelColumn{
			index:    i,
			name:     name,
			noUpdate: strings.Contains(opts, "noupdate"),
		})
	}

	actual, _ := columnPlans.LoadOrStore(typ, plan)
	return actual.([]modelColumn)
}
