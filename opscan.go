package wiredb

import "context"

// SortByIdentifier returns up to limit values ordered by identifier treated
// as a number, ascending. Rows whose identifier is not numeric sort as zero
// (the backing engine's numeric-cast rule).
func (t *Table[V]) SortByIdentifier(limit int) *Future[[]V] {
	return dispatch(t.db, func(ctx context.Context) ([]V, error) {
		rows, err := t.query(ctx, Statement{
			Kind:  StmtSelectSorted,
			Table: t.name,
			Limit: limit,
		})
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var out []V
		for rows.Next() {
			if value, ok := t.decodeRowOrSkip(rows.Text(ColKey), rows.Bytes(ColData)); ok {
				out = append(out, value)
			}
		}
		return out, rows.Err()
	})
}

// Keys returns all primary keys. No ordering is guaranteed.
func (t *Table[V]) Keys() *Future[[]string] {
	return dispatch(t.db, func(ctx context.Context) ([]string, error) {
		rows, err := t.query(ctx, Statement{Kind: StmtSelectKeys, Table: t.name})
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var out []string
		for rows.Next() {
			out = append(out, rows.Text(ColKey))
		}
		return out, rows.Err()
	})
}

// Entries returns all rows decoded into (key, identifier, value) triples.
// Rows whose payload is absent or fails to decode are skipped; the result is
// always a best-effort subset.
func (t *Table[V]) Entries() *Future[[]Entry[V]] {
	return dispatch(t.db, func(ctx context.Context) ([]Entry[V], error) {
		return t.entries(ctx)
	})
}

func (t *Table[V]) entries(ctx context.Context) ([]Entry[V], error) {
	rows, err := t.query(ctx, Statement{Kind: StmtSelectAll, Table: t.name})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry[V]
	for rows.Next() {
		key := rows.Text(ColKey)
		value, ok := t.decodeRowOrSkip(key, rows.Bytes(ColData))
		if !ok {
			continue
		}
		out = append(out, Entry[V]{
			Key:        key,
			Identifier: rows.Text(ColIdentifier),
			Value:      value,
			table:      t,
		})
	}
	return out, rows.Err()
}

// EntriesMatching returns the entries whose identifier satisfies the filter.
func (t *Table[V]) EntriesMatching(identifierFilter func(identifier string) bool) *Future[[]Entry[V]] {
	return dispatch(t.db, func(ctx context.Context) ([]Entry[V], error) {
		all, err := t.entries(ctx)
		if err != nil {
			return nil, err
		}
		var out []Entry[V]
		for _, e := range all {
			if identifierFilter(e.Identifier) {
				out = append(out, e)
			}
		}
		return out, nil
	})
}

// EntriesFiltered returns the entries satisfying the filter.
func (t *Table[V]) EntriesFiltered(entryFilter func(e Entry[V]) bool) *Future[[]Entry[V]] {
	return dispatch(t.db, func(ctx context.Context) ([]Entry[V], error) {
		all, err := t.entries(ctx)
		if err != nil {
			return nil, err
		}
		var out []Entry[V]
		for _, e := range all {
			if entryFilter(e) {
				out = append(out, e)
			}
		}
		return out, nil
	})
}

// Values returns all decoded values, the streaming surface collapsed into a
// slice future.
func (t *Table[V]) Values() *Future[[]V] {
	return dispatch(t.db, func(ctx context.Context) ([]V, error) {
		all, err := t.entries(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]V, 0, len(all))
		for _, e := range all {
			out = append(out, e.Value)
		}
		return out, nil
	})
}

// Each invokes fn with every decoded value.
func (t *Table[V]) Each(fn func(value V)) *Future[struct{}] {
	return dispatch(t.db, func(ctx context.Context) (struct{}, error) {
		all, err := t.entries(ctx)
		if err != nil {
			return struct{}{}, err
		}
		for _, e := range all {
			fn(e.Value)
		}
		return struct{}{}, nil
	})
}

// Size returns the row count, or -1 when the backend yields no count row.
func (t *Table[V]) Size() *Future[int64] {
	return dispatch(t.db, func(ctx context.Context) (int64, error) {
		rows, err := t.query(ctx, Statement{Kind: StmtCountRows, Table: t.name})
		if err != nil {
			return 0, err
		}
		defer rows.Close()

		if !rows.Next() {
			return -1, rows.Err()
		}
		return rows.Long(ColCount), rows.Err()
	})
}
