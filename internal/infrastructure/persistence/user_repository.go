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

// UserRepository отвечает за хранение пользователей, профилей ролей
// и refresh-сессий.
type UserRepository struct {
	db sqlx.ExtContext
}

func NewUserRepository(db sqlx.ExtContext) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, password_hash, name, phone, role, status, created_at, updated_at`

func (r *UserRepository) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var row userRow
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if err := sqlx.GetContext(ctx, r.db, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, translate("не удалось получить пользователя", err)
	}
	user := row.toEntity()
	return &user, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	var row userRow
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	if err := sqlx.GetContext(ctx, r.db, &row, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, translate("не удалось получить пользователя по email", err)
	}
	user := row.toEntity()
	return &user, nil
}

func (r *UserRepository) FilterUsers(ctx context.Context, filter repository.UserFilter) ([]entity.User, error) {
	query := `SELECT u.id, u.email, u.password_hash, u.name, u.phone, u.role, u.status, u.created_at, u.updated_at FROM users u`
	where := make([]string, 0, 3)
	args := make([]interface{}, 0, 3)

	if filter.Gender != nil {
		query += ` JOIN contractees c ON c.user_id = u.id`
		args = append(args, string(*filter.Gender))
		where = append(where, `c.gender = $`+strconv.Itoa(len(args)))
	}
	if filter.Role != nil {
		args = append(args, string(*filter.Role))
		where = append(where, `u.role = $`+strconv.Itoa(len(args)))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		where = append(where, `u.status = $`+strconv.Itoa(len(args)))
	}

	for i, cond := range where {
		if i == 0 {
			query += ` WHERE ` + cond
		} else {
			query += ` AND ` + cond
		}
	}

	query += ` ORDER BY u.created_at DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	var rows []userRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, translate("не удалось выбрать пользователей", err)
	}

	users := make([]entity.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toEntity())
	}
	return users, nil
}

func (r *UserRepository) GetContractor(ctx context.Context, userID uuid.UUID) (*entity.Contractor, error) {
	var row contractorRow
	query := `SELECT user_id, company, about FROM contractors WHERE user_id = $1`
	if err := sqlx.GetContext(ctx, r.db, &row, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, translate("не удалось получить профиль заказчика", err)
	}
	return row.toEntity(), nil
}

func (r *UserRepository) GetContractee(ctx context.Context, userID uuid.UUID) (*entity.Contractee, error) {
	var row contracteeRow
	query := `SELECT user_id, gender, birth_date, city FROM contractees WHERE user_id = $1`
	if err := sqlx.GetContext(ctx, r.db, &row, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, translate("не удалось получить профиль исполнителя", err)
	}
	return row.toEntity(), nil
}

func (r *UserRepository) GetAdmin(ctx context.Context, userID uuid.UUID) (*entity.Admin, error) {
	var row adminRow
	query := `SELECT user_id, contractor_id FROM admins WHERE user_id = $1`
	if err := sqlx.GetContext(ctx, r.db, &row, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, translate("не удалось получить профиль администратора", err)
	}
	return row.toEntity(), nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	var row userRow
	query := `
		INSERT INTO users (id, email, password_hash, name, phone, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING ` + userColumns
	err := sqlx.GetContext(ctx, r.db, &row, query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.Phone,
		string(user.Role), string(user.Status))
	if err != nil {
		return nil, translate("не удалось создать пользователя", err)
	}
	created := row.toEntity()
	return &created, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	var row userRow
	query := `
		UPDATE users
		SET password_hash = $2, name = $3, phone = $4, status = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns
	err := sqlx.GetContext(ctx, r.db, &row, query,
		user.ID, user.PasswordHash, user.Name, user.Phone, string(user.Status))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, translate("не удалось обновить пользователя", err)
	}
	updated := row.toEntity()
	return &updated, nil
}

func (r *UserRepository) SetUserStatus(ctx context.Context, id uuid.UUID, status valueobject.UserStatus) (*entity.User, error) {
	var row userRow
	query := `
		UPDATE users
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns
	if err := sqlx.GetContext(ctx, r.db, &row, query, id, string(status)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, translate("не удалось обновить статус пользователя", err)
	}
	updated := row.toEntity()
	return &updated, nil
}

func (r *UserRepository) CreateContractor(ctx context.Context, contractor *entity.Contractor) error {
	query := `INSERT INTO contractors (user_id, company, about) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, contractor.UserID, contractor.Company, contractor.About); err != nil {
		return translate("не удалось создать профиль заказчика", err)
	}
	return nil
}

func (r *UserRepository) CreateContractee(ctx context.Context, contractee *entity.Contractee) error {
	query := `INSERT INTO contractees (user_id, gender, birth_date, city) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query,
		contractee.UserID, string(contractee.Gender), contractee.BirthDate, contractee.City)
	if err != nil {
		return translate("не удалось создать профиль исполнителя", err)
	}
	return nil
}

func (r *UserRepository) CreateAdmin(ctx context.Context, admin *entity.Admin) error {
	query := `INSERT INTO admins (user_id, contractor_id) VALUES ($1, $2)`
	if _, err := r.db.ExecContext(ctx, query, admin.UserID, admin.ContractorID); err != nil {
		return translate("не удалось создать профиль администратора", err)
	}
	return nil
}

func (r *UserRepository) UpdateContractor(ctx context.Context, contractor *entity.Contractor) error {
	query := `UPDATE contractors SET company = $2, about = $3 WHERE user_id = $1`
	if _, err := r.db.ExecContext(ctx, query, contractor.UserID, contractor.Company, contractor.About); err != nil {
		return translate("не удалось обновить профиль заказчика", err)
	}
	return nil
}

func (r *UserRepository) UpdateContractee(ctx context.Context, contractee *entity.Contractee) error {
	query := `UPDATE contractees SET gender = $2, birth_date = $3, city = $4 WHERE user_id = $1`
	_, err := r.db.ExecContext(ctx, query,
		contractee.UserID, string(contractee.Gender), contractee.BirthDate, contractee.City)
	if err != nil {
		return translate("не удалось обновить профиль исполнителя", err)
	}
	return nil
}

func (r *UserRepository) CreateSession(ctx context.Context, session repository.Session) error {
	query := `INSERT INTO sessions (user_id, refresh_token, expires_at) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, session.UserID, session.RefreshToken, session.ExpiresAt); err != nil {
		return translate("не удалось сохранить сессию", err)
	}
	return nil
}

func (r *UserRepository) GetSession(ctx context.Context, refreshToken string) (*repository.Session, error) {
	var row sessionRow
	query := `SELECT user_id, refresh_token, expires_at FROM sessions WHERE refresh_token = $1`
	if err := sqlx.GetContext(ctx, r.db, &row, query, refreshToken); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, translate("не удалось получить сессию", err)
	}
	return &repository.Session{
		UserID:       row.UserID,
		RefreshToken: row.RefreshToken,
		ExpiresAt:    row.ExpiresAt,
	}, nil
}

func (r *UserRepository) DeleteSession(ctx context.Context, refreshToken string) error {
	query := `DELETE FROM sessions WHERE refresh_token = $1`
	if _, err := r.db.ExecContext(ctx, query, refreshToken); err != nil {
		return translate("не удалось удалить сессию", err)
	}
	return nil
}

func (r *UserRepository) DeleteUserSessions(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM sessions WHERE user_id = $1`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return translate("не удалось удалить сессии пользователя", err)
	}
	return nil
}
