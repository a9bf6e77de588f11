package wiredb

import "context"

// Remove deletes the row with the given key.
func (t *Table[V]) Remove(key string) *Future[struct{}] {
	return dispatch(t.db, func(ctx context.Context) (struct{}, error) {
		_, err := t.execUpdate(ctx, Statement{
			Kind:  StmtDeleteByKey,
			Table: t.name,
			Key:   key,
		})
		return struct{}{}, err
	})
}

// RemoveAll deletes every row carrying the given identifier.
func (t *Table[V]) RemoveAll(identifier string) *Future[struct{}] {
	return dispatch(t.db, func(ctx context.Context) (struct{}, error) {
		_, err := t.execUpdate(ctx, Statement{
			Kind:       StmtDeleteByIdentifier,
			Table:      t.name,
			Identifier: identifier,
		})
		return struct{}{}, err
	})
}

// Clear removes all rows.
func (t *Table[V]) Clear() *Future[struct{}] {
	return dispatch(t.db, func(ctx context.Context) (struct{}, error) {
		_, err := t.execUpdate(ctx, Statement{
			Kind:  StmtClear,
			Table: t.name,
		})
		return struct{}{}, err
	})
}
