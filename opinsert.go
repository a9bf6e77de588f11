package wiredb

import "context"

// Insert stores value under key with the given identifier. If the backend
// reports the insert as not applied (the row already exists), the data of
// every row matching the key or the identifier is updated instead.
//
// The check-then-act fallback is not atomic: two concurrent Inserts for the
// same key can both see "not applied" and both update, or both insert and
// leave duplicate rows, depending on executor timing. Last write wins only
// in the absence of such a race.
func (t *Table[V]) Insert(key, identifier string, value V) *Future[struct{}] {
	return dispatch(t.db, func(ctx context.Context) (struct{}, error) {
		data := t.encodeValue(value)
		applied, err := t.execUpdate(ctx, Statement{
			Kind:       StmtInsertRow,
			Table:      t.name,
			Key:        key,
			Identifier: identifier,
			Data:       data,
		})
		if err != nil || applied {
			return struct{}{}, err
		}
		_, err = t.execUpdate(ctx, Statement{
			Kind:       StmtUpdateData,
			Table:      t.name,
			Key:        key,
			Identifier: identifier,
			Data:       data,
		})
		return struct{}{}, err
	})
}

// UpdateIdentifier rewrites the identifier of the row with the given key.
// A missing key is a silent no-op.
func (t *Table[V]) UpdateIdentifier(key, identifier string) *Future[struct{}] {
	return dispatch(t.db, func(ctx context.Context) (struct{}, error) {
		_, err := t.execUpdate(ctx, Statement{
			Kind:       StmtUpdateIdentifier,
			Table:      t.name,
			Key:        key,
			Identifier: identifier,
		})
		return struct{}{}, err
	})
}
