package store

import sq "github.com/Masterminds/squirrel"

const kvTable = "vault_kv"

func selectValueQuery(key string) (string, []any, error) {
	return sq.Select("value").
		From(kvTable).
		Where(sq.Eq{"key": key}).
		ToSql()
}

func selectKeysQuery(prefix string) (string, []any, error) {
	return sq.Select("key").
		From(kvTable).
		Where(sq.Expr("substr(key, 1, ?) = ?", len(prefix), prefix)).
		OrderBy("key").
		ToSql()
}

func upsertValueQuery(key string, value []byte) (string, []any, error) {
	return sq.Insert(kvTable).
		Columns("key", "value", "updated_at").
		Values(key, nonNil(value), sq.Expr("CURRENT_TIMESTAMP")).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
}

func deleteValueQuery(key string) (string, []any, error) {
	return sq.Delete(kvTable).
		Where(sq.Eq{"key": key}).
		ToSql()
}
