package repository

import "context"

// Tx даёт доступ к репозиториям, привязанным к одной транзакции.
// Все вызовы через один Tx видят и пишут в общий снимок данных.
type Tx interface {
	OrderQueries() OrderQueryRepository
	OrderCommands() OrderCommandRepository
	ReplyQueries() ReplyQueryRepository
	ReplyCommands() ReplyCommandRepository
	UserQueries() UserQueryRepository
	UserCommands() UserCommandRepository
}

// TxManager выполняет fn в рамках одной транзакции: ошибка fn
// откатывает её, nil — фиксирует. Транзакция передаётся явно
// через Tx, а не через контекст.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
}
