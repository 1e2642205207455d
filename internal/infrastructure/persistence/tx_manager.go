package persistence

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/staffhub/staffing-backend/internal/domain/repository"
	"github.com/staffhub/staffing-backend/internal/logger"
	"github.com/staffhub/staffing-backend/internal/pkg/apperror"
)

// TxManager выполняет работу нескольких репозиториев в одной транзакции.
type TxManager struct {
	db *sqlx.DB
}

func NewTxManager(db *sqlx.DB) *TxManager {
	return &TxManager{db: db}
}

// WithinTx открывает транзакцию и передаёт её репозитории в fn.
// Ошибка или panic внутри fn откатывают транзакцию целиком.
func (m *TxManager) WithinTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	sqlTx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось начать транзакцию")
	}

	defer func() {
		if r := recover(); r != nil {
			if rbErr := sqlTx.Rollback(); rbErr != nil {
				logger.Log.WithField("error", rbErr.Error()).Error("tx manager: откат после panic не удался")
			}
			panic(r)
		}
	}()

	if err := fn(&txBundle{tx: sqlTx}); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil {
			logger.Log.WithField("error", rbErr.Error()).Error("tx manager: откат не удался")
		}
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось зафиксировать транзакцию")
	}
	return nil
}

// txBundle отдаёт репозитории, привязанные к открытой транзакции.
type txBundle struct {
	tx *sqlx.Tx
}

func (b *txBundle) OrderQueries() repository.OrderQueryRepository {
	return NewOrderRepository(b.tx)
}

func (b *txBundle) OrderCommands() repository.OrderCommandRepository {
	return NewOrderRepository(b.tx)
}

func (b *txBundle) ReplyQueries() repository.ReplyQueryRepository {
	return NewReplyRepository(b.tx)
}

func (b *txBundle) ReplyCommands() repository.ReplyCommandRepository {
	return NewReplyRepository(b.tx)
}

func (b *txBundle) UserQueries() repository.UserQueryRepository {
	return NewUserRepository(b.tx)
}

func (b *txBundle) UserCommands() repository.UserCommandRepository {
	return NewUserRepository(b.tx)
}

const uniqueViolation = "23505"

// translate переводит ошибку хранилища в ошибку сервисного уровня.
func translate(message string, err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return apperror.ErrDuplicateEntry.WithCause(err)
	}

	return apperror.Wrap(err, apperror.ErrCodeDatabaseError, message)
}
