package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/renato0307/maint/internal/domain"
	"github.com/renato0307/maint/internal/logging"
	"github.com/renato0307/maint/internal/ports"
)

const (
	restPrefix   = "/rest/v1/"
	singleObject = "application/vnd.pgrst.object+json"
)

// selectClause renders the PostgREST select parameter: every column plus one
// alias:table(columns) group per embed
func selectClause(embeds []ports.Embed) string {
	var b strings.Builder
	b.WriteString("*")
	for _, embed := range embeds {
		columns := "*"
		if len(embed.Columns) > 0 {
			columns = strings.Join(embed.Columns, ",")
		}
		fmt.Fprintf(&b, ",%s:%s(%s)", embed.Alias, embed.Table, columns)
	}
	return b.String()
}

// filterValue renders a filter as a PostgREST operator expression
func filterValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "is.null"
	case string:
		return "eq." + v
	case time.Time:
		return "eq." + v.UTC().Format(time.RFC3339Nano)
	case fmt.Stringer:
		return "eq." + v.String()
	default:
		return fmt.Sprintf("eq.%v", v)
	}
}

func queryValues(query ports.Query) url.Values {
	values := url.Values{}
	values.Set("select", selectClause(query.Embeds))
	addFilters(values, query.Filters)
	if query.Order != nil {
		direction := "desc"
		if query.Order.Ascending {
			direction = "asc"
		}
		values.Set("order", query.Order.Column+"."+direction)
	}
	return values
}

func addFilters(values url.Values, filters []ports.Filter) {
	for _, filter := range filters {
		values.Add(filter.Column, filterValue(filter.Value))
	}
}

// decodeJSON decodes a response body keeping numbers exact
func decodeJSON(body []byte, out any) error {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// checkSingle maps the outcome of a singular request, turning "no rows" into
// domain.ErrNotFound
func checkSingle(resp *resty.Response) error {
	if !resp.IsError() {
		return nil
	}
	apiErr := parseAPIError(resp)
	if apiErr.Code == noRowsCode && strings.Contains(apiErr.Details, "0 rows") {
		return domain.ErrNotFound
	}
	return apiErr
}

func (c *Client) Select(ctx context.Context, table string, query ports.Query) ([]ports.Row, error) {
	req, err := c.request(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := req.SetQueryParamsFromValues(queryValues(query)).Get(restPrefix + table)
	if err != nil {
		return nil, fmt.Errorf("failed to select from %s: %w", table, err)
	}
	if resp.IsError() {
		return nil, parseAPIError(resp)
	}

	var rows []ports.Row
	if err := decodeJSON(resp.Body(), &rows); err != nil {
		return nil, err
	}
	logging.Logger.Debug("Selected rows", "table", table, "count", len(rows))
	return rows, nil
}

func (c *Client) SelectOne(ctx context.Context, table string, query ports.Query) (ports.Row, error) {
	req, err := c.request(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := req.
		SetHeader("Accept", singleObject).
		SetQueryParamsFromValues(queryValues(query)).
		Get(restPrefix + table)
	if err != nil {
		return nil, fmt.Errorf("failed to select from %s: %w", table, err)
	}
	if err := checkSingle(resp); err != nil {
		return nil, err
	}

	var row ports.Row
	if err := decodeJSON(resp.Body(), &row); err != nil {
		return nil, err
	}
	return row, nil
}

// Insert creates a row and returns the stored representation
func (c *Client) Insert(ctx context.Context, table string, row ports.Row, query ports.Query) (ports.Row, error) {
	req, err := c.request(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := req.
		SetHeader("Accept", singleObject).
		SetHeader("Prefer", "return=representation").
		SetQueryParam("select", selectClause(query.Embeds)).
		SetBody(row).
		Post(restPrefix + table)
	if err != nil {
		return nil, fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	if resp.IsError() {
		return nil, parseAPIError(resp)
	}

	var created ports.Row
	if err := decodeJSON(resp.Body(), &created); err != nil {
		return nil, err
	}
	return created, nil
}

// Update patches the rows matching filters and returns the single updated row
func (c *Client) Update(ctx context.Context, table string, filters []ports.Filter, patch ports.Row, query ports.Query) (ports.Row, error) {
	req, err := c.request(ctx)
	if err != nil {
		return nil, err
	}

	values := url.Values{}
	values.Set("select", selectClause(query.Embeds))
	addFilters(values, filters)

	resp, err := req.
		SetHeader("Accept", singleObject).
		SetHeader("Prefer", "return=representation").
		SetQueryParamsFromValues(values).
		SetBody(patch).
		Patch(restPrefix + table)
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", table, err)
	}
	if err := checkSingle(resp); err != nil {
		return nil, err
	}

	var updated ports.Row
	if err := decodeJSON(resp.Body(), &updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the rows matching filters. Filters are required.
func (c *Client) Delete(ctx context.Context, table string, filters []ports.Filter) error {
	if len(filters) == 0 {
		return errors.New("refusing to delete without filters")
	}

	req, err := c.request(ctx)
	if err != nil {
		return err
	}

	values := url.Values{}
	addFilters(values, filters)

	resp, err := req.SetQueryParamsFromValues(values).Delete(restPrefix + table)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	if resp.IsError() {
		return parseAPIError(resp)
	}
	return nil
}
