package ports

import "context"

// Row is a single record exchanged with the remote store, keyed by column name
type Row map[string]any

// Filter is an equality condition on a column
type Filter struct {
	Column string
	Value  any
}

// Eq builds an equality filter
func Eq(column string, value any) Filter {
	return Filter{Column: column, Value: value}
}

// Order sorts a selection by one column
type Order struct {
	Ascending bool
	Column    string
}

// Embed projects columns of a related row, joined on ForeignKey = Table.id,
// into the result under Alias
type Embed struct {
	Alias      string
	Columns    []string
	ForeignKey string
	Table      string
}

// Query describes a selection
type Query struct {
	Embeds  []Embed
	Filters []Filter
	Order   *Order
}

// DataReader reads rows from named collections
type DataReader interface {
	Select(ctx context.Context, table string, query Query) ([]Row, error)
	// SelectOne returns domain.ErrNotFound when no row matches
	SelectOne(ctx context.Context, table string, query Query) (Row, error)
}

// DataWriter mutates rows in named collections. Insert and Update return the
// stored row, including any embeds requested in query.
type DataWriter interface {
	Insert(ctx context.Context, table string, row Row, query Query) (Row, error)
	Update(ctx context.Context, table string, filters []Filter, patch Row, query Query) (Row, error)
	Delete(ctx context.Context, table string, filters []Filter) error
}

// DataService is the composite data interface
type DataService interface {
	DataReader
	DataWriter
}

// RemoteDataService is everything a backend client provides
type RemoteDataService interface {
	AuthProvider
	DataService
	Close() error
}
