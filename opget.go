package wiredb

import "context"

// Get returns the first row matching key, or identifier when identifier is
// non-empty. The zero V means no row matched, its payload was NULL, or the
// value could not be constructed; malformed payload data fails the future.
func (t *Table[V]) Get(key, identifier string) *Future[V] {
	return dispatch(t.db, func(ctx context.Context) (V, error) {
		var zero V
		rows, err := t.query(ctx, Statement{
			Kind:          StmtSelectData,
			Table:         t.name,
			Key:           key,
			Identifier:    identifier,
			HasIdentifier: identifier != "",
		})
		if err != nil {
			return zero, err
		}
		defer rows.Close()

		if !rows.Next() {
			return zero, rows.Err()
		}
		data := rows.Bytes(ColData)
		if data == nil {
			return zero, nil
		}
		value, ok, err := t.decodeValue(data)
		if err != nil || !ok {
			return zero, err
		}
		return value, nil
	})
}
