package persistence

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/staffhub/staffing-backend/internal/domain/entity"
	"github.com/staffhub/staffing-backend/internal/domain/repository"
	"github.com/staffhub/staffing-backend/internal/domain/valueobject"
)

// ReplyRepository отвечает за хранение откликов и подсчёт свободных мест.
type ReplyRepository struct {
	db sqlx.ExtContext
}

func NewReplyRepository(db sqlx.ExtContext) *ReplyRepository {
	return &ReplyRepository{db: db}
}

const replyColumns = `contractee_id, detail_id, wager, status, dropped, paid_at, created_at`

const completeReplyColumns = `
	r.contractee_id, r.detail_id, r.wager, r.status, r.dropped, r.paid_at, r.created_at,
	od.order_id AS det_order_id, od.date AS det_date, od.start_at AS det_start_at,
	od.end_at AS det_end_at, od.position AS det_position, od.count AS det_count,
	od.wager AS det_wager, od.gender AS det_gender,
	o.contractor_id AS ord_contractor_id, o.admin_id AS ord_admin_id,
	o.about AS ord_about, o.address AS ord_address, o.status AS ord_status,
	o.created_at AS ord_created_at, o.updated_at AS ord_updated_at`

const completeReplyFrom = `
	FROM replies r
	JOIN order_details od ON od.id = r.detail_id
	JOIN orders o ON o.id = od.order_id`

func (r *ReplyRepository) GetReply(ctx context.Context, contracteeID, detailID uuid.UUID) (*entity.Reply, error) {
	var row replyRow
	query := `SELECT ` + replyColumns + ` FROM replies WHERE contractee_id = $1 AND detail_id = $2`
	if err := sqlx.GetContext(ctx, r.db, &row, query, contracteeID, detailID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, translate("не удалось получить отклик", err)
	}
	reply := row.toEntity()
	return &reply, nil
}

func (r *ReplyRepository) GetCompleteReply(ctx context.Context, contracteeID, detailID uuid.UUID) (*entity.CompleteReply, error) {
	var row completeReplyRow
	query := `SELECT` + completeReplyColumns + completeReplyFrom +
		` WHERE r.contractee_id = $1 AND r.detail_id = $2`
	if err := sqlx.GetContext(ctx, r.db, &row, query, contracteeID, detailID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, translate("не удалось получить отклик с заказом", err)
	}
	complete := row.toEntity()
	return &complete, nil
}

func (r *ReplyRepository) FilterCompleteReplies(ctx context.Context, filter repository.ReplyFilter) ([]entity.CompleteReply, error) {
	query := `SELECT` + completeReplyColumns + completeReplyFrom
	where, args := replyConditions(filter)

	for i, cond := range where {
		if i == 0 {
			query += ` WHERE ` + cond
		} else {
			query += ` AND ` + cond
		}
	}

	query += ` ORDER BY r.created_at DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	var rows []completeReplyRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, translate("не удалось выбрать отклики", err)
	}

	replies := make([]entity.CompleteReply, 0, len(rows))
	for _, row := range rows {
		replies = append(replies, row.toEntity())
	}
	return replies, nil
}

func (r *ReplyRepository) HasReply(ctx context.Context, filter repository.ReplyFilter) (bool, error) {
	query := `SELECT EXISTS (SELECT 1` + completeReplyFrom
	where, args := replyConditions(filter)

	for i, cond := range where {
		if i == 0 {
			query += ` WHERE ` + cond
		} else {
			query += ` AND ` + cond
		}
	}
	query += `)`

	var exists bool
	if err := sqlx.GetContext(ctx, r.db, &exists, query, args...); err != nil {
		return false, translate("не удалось проверить наличие отклика", err)
	}
	return exists, nil
}

// replyConditions собирает WHERE-условия фильтра с позиционными аргументами.
func replyConditions(filter repository.ReplyFilter) ([]string, []interface{}) {
	where := make([]string, 0, 5)
	args := make([]interface{}, 0, 5)

	if filter.OrderID != nil {
		args = append(args, *filter.OrderID)
		where = append(where, `od.order_id = $`+strconv.Itoa(len(args)))
	}
	if filter.DetailID != nil {
		args = append(args, *filter.DetailID)
		where = append(where, `r.detail_id = $`+strconv.Itoa(len(args)))
	}
	if filter.ContracteeID != nil {
		args = append(args, *filter.ContracteeID)
		where = append(where, `r.contractee_id = $`+strconv.Itoa(len(args)))
	}
	if filter.Date != nil {
		args = append(args, *filter.Date)
		where = append(where, `od.date = $`+strconv.Itoa(len(args))+`::date`)
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		where = append(where, `r.status = $`+strconv.Itoa(len(args)))
	}
	if !filter.IncludeDropped {
		where = append(where, `NOT r.dropped`)
	}
	return where, args
}

// DetailAvailability блокирует строку позиции и считает занятые места.
// FOR UPDATE не совместим с агрегатами, поэтому блокировка и подсчёт
// выполняются двумя запросами.
func (r *ReplyRepository) DetailAvailability(ctx context.Context, detailID uuid.UUID) (*entity.DetailAvailability, error) {
	var locked struct {
		ID    uuid.UUID `db:"id"`
		Count int       `db:"count"`
	}
	lockQuery := `SELECT id, count FROM order_details WHERE id = $1 FOR UPDATE`
	if err := sqlx.GetContext(ctx, r.db, &locked, lockQuery, detailID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, translate("не удалось заблокировать позицию заказа", err)
	}

	var taken int
	countQuery := `
		SELECT COUNT(*) FROM replies
		WHERE detail_id = $1 AND status = $2 AND NOT dropped
	`
	if err := sqlx.GetContext(ctx, r.db, &taken, countQuery, detailID, string(valueobject.ReplyStatusAccepted)); err != nil {
		return nil, translate("не удалось посчитать занятые места", err)
	}

	return &entity.DetailAvailability{DetailID: locked.ID, Quantity: locked.Count - taken}, nil
}

// OrderAvailability блокирует все позиции заказа и считает остатки по каждой.
func (r *ReplyRepository) OrderAvailability(ctx context.Context, orderID uuid.UUID) ([]entity.DetailAvailability, error) {
	var locked []struct {
		ID    uuid.UUID `db:"id"`
		Count int       `db:"count"`
	}
	lockQuery := `SELECT id, count FROM order_details WHERE order_id = $1 ORDER BY id FOR UPDATE`
	if err := sqlx.SelectContext(ctx, r.db, &locked, lockQuery, orderID); err != nil {
		return nil, translate("не удалось заблокировать позиции заказа", err)
	}

	var counts []struct {
		DetailID uuid.UUID `db:"detail_id"`
		Taken    int       `db:"taken"`
	}
	countQuery := `
		SELECT r.detail_id, COUNT(*) AS taken
		FROM replies r
		JOIN order_details od ON od.id = r.detail_id
		WHERE od.order_id = $1 AND r.status = $2 AND NOT r.dropped
		GROUP BY r.detail_id
	`
	if err := sqlx.SelectContext(ctx, r.db, &counts, countQuery, orderID, string(valueobject.ReplyStatusAccepted)); err != nil {
		return nil, translate("не удалось посчитать занятые места заказа", err)
	}

	takenByDetail := make(map[uuid.UUID]int, len(counts))
	for _, c := range counts {
		takenByDetail[c.DetailID] = c.Taken
	}

	availabilities := make([]entity.DetailAvailability, 0, len(locked))
	for _, det := range locked {
		availabilities = append(availabilities, entity.DetailAvailability{
			DetailID: det.ID,
			Quantity: det.Count - takenByDetail[det.ID],
		})
	}
	return availabilities, nil
}

func (r *ReplyRepository) CreateReply(ctx context.Context, reply *entity.Reply) (*entity.Reply, error) {
	var row replyRow
	query := `
		INSERT INTO replies (contractee_id, detail_id, wager, status, dropped, created_at)
		VALUES ($1, $2, $3, $4, false, NOW())
		RETURNING ` + replyColumns
	err := sqlx.GetContext(ctx, r.db, &row, query,
		reply.ContracteeID, reply.DetailID, reply.Wager, string(reply.Status))
	if err != nil {
		return nil, translate("не удалось создать отклик", err)
	}
	created := row.toEntity()
	return &created, nil
}

func (r *ReplyRepository) SetReplyStatus(ctx context.Context, contracteeID, detailID uuid.UUID, status valueobject.ReplyStatus) (*entity.Reply, error) {
	var row replyRow
	query := `
		UPDATE replies
		SET status = $3,
		    paid_at = CASE WHEN $3 = 'paid' THEN NOW() ELSE paid_at END
		WHERE contractee_id = $1 AND detail_id = $2
		RETURNING ` + replyColumns
	if err := sqlx.GetContext(ctx, r.db, &row, query, contracteeID, detailID, string(status)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, translate("не удалось обновить статус отклика", err)
	}
	updated := row.toEntity()
	return &updated, nil
}

func (r *ReplyRepository) DropReplies(ctx context.Context, filter repository.ReplyFilter) ([]entity.Reply, error) {
	query := `
		UPDATE replies r
		SET dropped = true
		FROM order_details od
		WHERE od.id = r.detail_id AND NOT r.dropped`
	if !filter.AnyStatus {
		query += ` AND r.status = 'created'`
	}

	where, args := replyConditions(repository.ReplyFilter{
		OrderID:        filter.OrderID,
		DetailID:       filter.DetailID,
		ContracteeID:   filter.ContracteeID,
		Date:           filter.Date,
		IncludeDropped: true,
	})
	for _, cond := range where {
		query += ` AND ` + cond
	}
	query += ` RETURNING r.contractee_id, r.detail_id, r.wager, r.status, r.dropped, r.paid_at, r.created_at`

	var rows []replyRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, translate("не удалось снять отклики", err)
	}

	dropped := make([]entity.Reply, 0, len(rows))
	for _, row := range rows {
		dropped = append(dropped, row.toEntity())
	}
	return dropped, nil
}
