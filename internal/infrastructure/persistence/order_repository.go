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

// OrderRepository отвечает за хранение заказов и их позиций.
// Работает и на соединении, и внутри транзакции.
type OrderRepository struct {
	db sqlx.ExtContext
}

func NewOrderRepository(db sqlx.ExtContext) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `id, contractor_id, admin_id, about, address, status, created_at, updated_at`

func (r *OrderRepository) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var row orderRow
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	if err := sqlx.GetContext(ctx, r.db, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, translate("не удалось получить заказ", err)
	}
	return row.toEntity(), nil
}

func (r *OrderRepository) GetOrderWithDetails(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := r.GetOrder(ctx, id)
	if order == nil || err != nil {
		return nil, err
	}

	details, err := r.ListDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Details = details
	return order, nil
}

func (r *OrderRepository) GetOrderForDetail(ctx context.Context, detailID uuid.UUID) (*entity.Order, error) {
	var row orderRow
	query := `
		SELECT o.id, o.contractor_id, o.admin_id, o.about, o.address, o.status, o.created_at, o.updated_at
		FROM orders o
		JOIN order_details od ON od.order_id = o.id
		WHERE od.id = $1
	`
	if err := sqlx.GetContext(ctx, r.db, &row, query, detailID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, translate("не удалось получить заказ позиции", err)
	}
	return row.toEntity(), nil
}

func (r *OrderRepository) GetDetail(ctx context.Context, id uuid.UUID) (*entity.OrderDetail, error) {
	var row detailRow
	query := `
		SELECT id, order_id, date, start_at, end_at, position, count, wager, gender
		FROM order_details
		WHERE id = $1
	`
	if err := sqlx.GetContext(ctx, r.db, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, translate("не удалось получить позицию заказа", err)
	}
	det := row.toEntity()
	return &det, nil
}

func (r *OrderRepository) ListDetails(ctx context.Context, orderID uuid.UUID) ([]entity.OrderDetail, error) {
	var rows []detailRow
	query := `
		SELECT id, order_id, date, start_at, end_at, position, count, wager, gender
		FROM order_details
		WHERE order_id = $1
		ORDER BY date, start_at
	`
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, orderID); err != nil {
		return nil, translate("не удалось получить позиции заказа", err)
	}

	details := make([]entity.OrderDetail, 0, len(rows))
	for _, row := range rows {
		details = append(details, row.toEntity())
	}
	return details, nil
}

func (r *OrderRepository) FilterOrders(ctx context.Context, filter repository.OrderFilter) ([]entity.Order, error) {
	query := `SELECT DISTINCT o.id, o.contractor_id, o.admin_id, o.about, o.address, o.status, o.created_at, o.updated_at FROM orders o`
	where := make([]string, 0, 4)
	args := make([]interface{}, 0, 4)

	if filter.ContracteeID != nil {
		query += ` JOIN order_details od ON od.order_id = o.id JOIN replies rp ON rp.detail_id = od.id`
		args = append(args, *filter.ContracteeID)
		where = append(where, `rp.contractee_id = $`+strconv.Itoa(len(args)))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		where = append(where, `o.status = $`+strconv.Itoa(len(args)))
	}
	if filter.ContractorID != nil {
		args = append(args, *filter.ContractorID)
		where = append(where, `o.contractor_id = $`+strconv.Itoa(len(args)))
	}
	if filter.AdminID != nil {
		args = append(args, *filter.AdminID)
		where = append(where, `o.admin_id = $`+strconv.Itoa(len(args)))
	}
	if filter.Unassigned {
		where = append(where, `o.admin_id IS NULL`)
	}

	for i, cond := range where {
		if i == 0 {
			query += ` WHERE ` + cond
		} else {
			query += ` AND ` + cond
		}
	}

	query += ` ORDER BY o.created_at DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	var rows []orderRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, translate("не удалось выбрать заказы", err)
	}

	orders := make([]entity.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, *row.toEntity())
	}
	return orders, nil
}

func (r *OrderRepository) CreateOrder(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	var row orderRow
	query := `
		INSERT INTO orders (id, contractor_id, admin_id, about, address, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING ` + orderColumns
	err := sqlx.GetContext(ctx, r.db, &row, query,
		order.ID, order.ContractorID, order.AdminID, order.About, order.Address, string(order.Status))
	if err != nil {
		return nil, translate("не удалось создать заказ", err)
	}
	return row.toEntity(), nil
}

func (r *OrderRepository) UpdateOrder(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	var row orderRow
	query := `
		UPDATE orders
		SET about = $2, address = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + orderColumns
	err := sqlx.GetContext(ctx, r.db, &row, query, order.ID, order.About, order.Address)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, translate("не удалось обновить заказ", err)
	}
	return row.toEntity(), nil
}

func (r *OrderRepository) SetOrderStatus(ctx context.Context, id uuid.UUID, status valueobject.OrderStatus) (*entity.Order, error) {
	var row orderRow
	query := `
		UPDATE orders
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + orderColumns
	if err := sqlx.GetContext(ctx, r.db, &row, query, id, string(status)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, translate("не удалось обновить статус заказа", err)
	}
	return row.toEntity(), nil
}

func (r *OrderRepository) SetOrderAdmin(ctx context.Context, id uuid.UUID, adminID uuid.UUID) (*entity.Order, error) {
	var row orderRow
	query := `
		UPDATE orders
		SET admin_id = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + orderColumns
	if err := sqlx.GetContext(ctx, r.db, &row, query, id, adminID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, translate("не удалось назначить куратора заказа", err)
	}
	return row.toEntity(), nil
}

func (r *OrderRepository) CreateDetails(ctx context.Context, details []entity.OrderDetail) ([]entity.OrderDetail, error) {
	query := `
		INSERT INTO order_details (id, order_id, date, start_at, end_at, position, count, wager, gender)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	for _, det := range details {
		var gender *string
		if det.Gender != nil {
			g := string(*det.Gender)
			gender = &g
		}
		_, err := r.db.ExecContext(ctx, query,
			det.ID, det.OrderID, det.Date, det.StartAt, det.EndAt,
			string(det.Position), det.Count, det.Wager, gender)
		if err != nil {
			return nil, translate("не удалось создать позицию заказа", err)
		}
	}
	return details, nil
}

