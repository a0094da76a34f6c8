package storage

import (
	"context"
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/renato0307/maint/internal/domain"
	"github.com/renato0307/maint/internal/ports"
)

// localTable describes one table the local backend serves
type localTable struct {
	columns   map[string]bool
	modelType reflect.Type
}

func (t *localTable) newModel() any {
	return reflect.New(t.modelType).Interface()
}

func (t *localTable) newSlice() any {
	return reflect.New(reflect.SliceOf(t.modelType)).Interface()
}

// buildLocalTables indexes the served tables and their columns from the GORM schema
func buildLocalTables(db *gorm.DB) (map[string]*localTable, error) {
	served := []any{
		&UserModel{},
		&AccommodationModel{},
		&TaskModel{},
		&AreaCatalogModel{},
		&ElementCatalogModel{},
	}

	tables := make(map[string]*localTable, len(served))
	for _, model := range served {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("failed to parse model %T: %w", model, err)
		}

		columns := make(map[string]bool, len(stmt.Schema.DBNames))
		for _, name := range stmt.Schema.DBNames {
			columns[name] = true
		}
		tables[stmt.Schema.Table] = &localTable{
			columns:   columns,
			modelType: reflect.TypeOf(model).Elem(),
		}
	}
	return tables, nil
}

func (b *LocalBackend) table(name string) (*localTable, error) {
	table, ok := b.tables[name]
	if !ok {
		return nil, fmt.Errorf("unknown table %q", name)
	}
	return table, nil
}

// scoped applies filters and order, rejecting unknown columns
func scoped(tx *gorm.DB, table *localTable, name string, query ports.Query) (*gorm.DB, error) {
	for _, filter := range query.Filters {
		if !table.columns[filter.Column] {
			return nil, fmt.Errorf("column %q does not exist on %s", filter.Column, name)
		}
		tx = tx.Where(clause.Eq{Column: clause.Column{Name: filter.Column}, Value: filter.Value})
	}
	if query.Order != nil {
		if !table.columns[query.Order.Column] {
			return nil, fmt.Errorf("column %q does not exist on %s", query.Order.Column, name)
		}
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: query.Order.Column}, Desc: !query.Order.Ascending})
	}
	return tx, nil
}

func (b *LocalBackend) Select(ctx context.Context, name string, query ports.Query) ([]ports.Row, error) {
	table, err := b.table(name)
	if err != nil {
		return nil, err
	}

	tx, err := scoped(b.db.WithContext(ctx), table, name, query)
	if err != nil {
		return nil, err
	}

	models := table.newSlice()
	if err := withRetry(func() error { return tx.Find(models).Error }, defaultRetries); err != nil {
		return nil, fmt.Errorf("failed to select from %s: %w", name, err)
	}

	slice := reflect.ValueOf(models).Elem()
	rows := make([]ports.Row, 0, slice.Len())
	for i := 0; i < slice.Len(); i++ {
		row, err := modelToRow(slice.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	if err := b.embed(ctx, rows, query.Embeds); err != nil {
		return nil, err
	}
	return rows, nil
}

func (b *LocalBackend) SelectOne(ctx context.Context, name string, query ports.Query) (ports.Row, error) {
	rows, err := b.Select(ctx, name, query)
	if err != nil {
		return nil, err
	}
	switch len(rows) {
	case 0:
		return nil, domain.ErrNotFound
	case 1:
		return rows[0], nil
	default:
		return nil, fmt.Errorf("expected one row from %s, got %d", name, len(rows))
	}
}

// embed attaches the projected related row under each embed alias, or nil
// when the foreign key does not resolve
func (b *LocalBackend) embed(ctx context.Context, rows []ports.Row, embeds []ports.Embed) error {
	for _, embed := range embeds {
		keys := make([]any, 0, len(rows))
		for _, row := range rows {
			if key, ok := row[embed.ForeignKey]; ok && key != nil {
				keys = append(keys, key)
			}
		}

		related := map[any]ports.Row{}
		if len(keys) > 0 {
			table, err := b.table(embed.Table)
			if err != nil {
				return err
			}
			models := table.newSlice()
			err = withRetry(func() error {
				return b.db.WithContext(ctx).Where(clause.IN{Column: clause.Column{Name: "id"}, Values: keys}).Find(models).Error
			}, defaultRetries)
			if err != nil {
				return fmt.Errorf("failed to load %s for embedding: %w", embed.Table, err)
			}

			slice := reflect.ValueOf(models).Elem()
			for i := 0; i < slice.Len(); i++ {
				full, err := modelToRow(slice.Index(i).Interface())
				if err != nil {
					return err
				}
				related[full["id"]] = project(full, embed.Columns)
			}
		}

		for _, row := range rows {
			if projected, ok := related[row[embed.ForeignKey]]; ok {
				row[embed.Alias] = projected
			} else {
				row[embed.Alias] = nil
			}
		}
	}
	return nil
}

func project(row ports.Row, columns []string) ports.Row {
	if len(columns) == 0 {
		return row
	}
	out := make(ports.Row, len(columns))
	for _, column := range columns {
		out[column] = row[column]
	}
	return out
}

// Insert creates a row, assigning its id and timestamps, and returns it as stored
func (b *LocalBackend) Insert(ctx context.Context, name string, row ports.Row, query ports.Query) (ports.Row, error) {
	table, err := b.table(name)
	if err != nil {
		return nil, err
	}
	for column := range row {
		if !table.columns[column] {
			return nil, fmt.Errorf("column %q does not exist on %s", column, name)
		}
	}

	values := make(ports.Row, len(row)+1)
	for k, v := range row {
		values[k] = v
	}
	if id, _ := values["id"].(string); id == "" {
		values["id"] = uuid.NewString()
	}

	model := table.newModel()
	if err := rowToModel(values, model); err != nil {
		return nil, err
	}
	if err := withRetry(func() error { return b.db.WithContext(ctx).Create(model).Error }, defaultRetries); err != nil {
		return nil, fmt.Errorf("failed to insert into %s: %w", name, err)
	}

	return b.SelectOne(ctx, name, ports.Query{
		Embeds:  query.Embeds,
		Filters: []ports.Filter{ports.Eq("id", values["id"])},
	})
}

// Update patches the rows matching filters and returns the single updated row
func (b *LocalBackend) Update(ctx context.Context, name string, filters []ports.Filter, patch ports.Row, query ports.Query) (ports.Row, error) {
	table, err := b.table(name)
	if err != nil {
		return nil, err
	}
	for column := range patch {
		if !table.columns[column] || column == "id" {
			return nil, fmt.Errorf("column %q cannot be updated on %s", column, name)
		}
	}

	tx, err := scoped(b.db.WithContext(ctx).Model(table.newModel()), table, name, ports.Query{Filters: filters})
	if err != nil {
		return nil, err
	}

	var affected int64
	err = withRetry(func() error {
		result := tx.Updates(map[string]any(patch))
		affected = result.RowsAffected
		return result.Error
	}, defaultRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", name, err)
	}
	if affected == 0 {
		return nil, domain.ErrNotFound
	}

	return b.SelectOne(ctx, name, ports.Query{Embeds: query.Embeds, Filters: filters})
}

// Delete removes the rows matching filters. Filters are required.
func (b *LocalBackend) Delete(ctx context.Context, name string, filters []ports.Filter) error {
	table, err := b.table(name)
	if err != nil {
		return err
	}
	if len(filters) == 0 {
		return fmt.Errorf("refusing to delete every row of %s", name)
	}

	tx, err := scoped(b.db.WithContext(ctx), table, name, ports.Query{Filters: filters})
	if err != nil {
		return err
	}
	if err := withRetry(func() error { return tx.Delete(table.newModel()).Error }, defaultRetries); err != nil {
		return fmt.Errorf("failed to delete from %s: %w", name, err)
	}
	return nil
}
