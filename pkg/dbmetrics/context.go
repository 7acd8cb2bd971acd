package dbmetrics

import "context"

// txContextKey ключ для хранения активной транзакции в context
type txContextKey struct{}

// WithTx кладет транзакцию в context. Используется транзакционными
// менеджерами, чтобы репозитории прозрачно выполняли запросы внутри неё.
func WithTx(ctx context.Context, tx DBExecutor) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

// GetExecutor возвращает активную транзакцию из context, если она есть,
// иначе переданный executor по умолчанию.
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(txContextKey{}).(DBExecutor); ok {
		return tx
	}
	return fallback
}

// IsInTransaction проверяет, выполняется ли запрос внутри транзакции
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txContextKey{}).(DBExecutor)
	return ok
}
