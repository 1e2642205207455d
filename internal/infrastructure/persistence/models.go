package persistence

import (
	"time"

	"github.com/google/uuid"
	"github.com/staffhub/staffing-backend/internal/domain/entity"
	"github.com/staffhub/staffing-backend/internal/domain/valueobject"
)

type orderRow struct {
	ID           uuid.UUID  `db:"id"`
	ContractorID uuid.UUID  `db:"contractor_id"`
	AdminID      *uuid.UUID `db:"admin_id"`
	About        string     `db:"about"`
	Address      string     `db:"address"`
	Status       string     `db:"status"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

func (r orderRow) toEntity() *entity.Order {
	return &entity.Order{
		ID:           r.ID,
		ContractorID: r.ContractorID,
		AdminID:      r.AdminID,
		About:        r.About,
		Address:      r.Address,
		Status:       valueobject.OrderStatus(r.Status),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

type detailRow struct {
	ID       uuid.UUID `db:"id"`
	OrderID  uuid.UUID `db:"order_id"`
	Date     time.Time `db:"date"`
	StartAt  time.Time `db:"start_at"`
	EndAt    time.Time `db:"end_at"`
	Position string    `db:"position"`
	Count    int       `db:"count"`
	Wager    int64     `db:"wager"`
	Gender   *string   `db:"gender"`
}

func (r detailRow) toEntity() entity.OrderDetail {
	var gender *valueobject.Gender
	if r.Gender != nil {
		g := valueobject.Gender(*r.Gender)
		gender = &g
	}
	return entity.OrderDetail{
		ID:       r.ID,
		OrderID:  r.OrderID,
		Date:     r.Date,
		StartAt:  r.StartAt,
		EndAt:    r.EndAt,
		Position: valueobject.Position(r.Position),
		Count:    r.Count,
		Wager:    r.Wager,
		Gender:   gender,
	}
}

type replyRow struct {
	ContracteeID uuid.UUID  `db:"contractee_id"`
	DetailID     uuid.UUID  `db:"detail_id"`
	Wager        int64      `db:"wager"`
	Status       string     `db:"status"`
	Dropped      bool       `db:"dropped"`
	PaidAt       *time.Time `db:"paid_at"`
	CreatedAt    time.Time  `db:"created_at"`
}

func (r replyRow) toEntity() entity.Reply {
	return entity.Reply{
		ContracteeID: r.ContracteeID,
		DetailID:     r.DetailID,
		Wager:        r.Wager,
		Status:       valueobject.ReplyStatus(r.Status),
		Dropped:      r.Dropped,
		PaidAt:       r.PaidAt,
		CreatedAt:    r.CreatedAt,
	}
}

type completeReplyRow struct {
	replyRow

	DetOrderID   uuid.UUID  `db:"det_order_id"`
	DetDate      time.Time  `db:"det_date"`
	DetStartAt   time.Time  `db:"det_start_at"`
	DetEndAt     time.Time  `db:"det_end_at"`
	DetPosition  string     `db:"det_position"`
	DetCount     int        `db:"det_count"`
	DetWager     int64      `db:"det_wager"`
	DetGender    *string    `db:"det_gender"`
	ContractorID uuid.UUID  `db:"ord_contractor_id"`
	AdminID      *uuid.UUID `db:"ord_admin_id"`
	OrdAbout     string     `db:"ord_about"`
	OrdAddress   string     `db:"ord_address"`
	OrdStatus    string     `db:"ord_status"`
	OrdCreatedAt time.Time  `db:"ord_created_at"`
	OrdUpdatedAt time.Time  `db:"ord_updated_at"`
}

func (r completeReplyRow) toEntity() entity.CompleteReply {
	det := detailRow{
		ID:       r.DetailID,
		OrderID:  r.DetOrderID,
		Date:     r.DetDate,
		StartAt:  r.DetStartAt,
		EndAt:    r.DetEndAt,
		Position: r.DetPosition,
		Count:    r.DetCount,
		Wager:    r.DetWager,
		Gender:   r.DetGender,
	}
	ord := orderRow{
		ID:           r.DetOrderID,
		ContractorID: r.ContractorID,
		AdminID:      r.AdminID,
		About:        r.OrdAbout,
		Address:      r.OrdAddress,
		Status:       r.OrdStatus,
		CreatedAt:    r.OrdCreatedAt,
		UpdatedAt:    r.OrdUpdatedAt,
	}
	return entity.CompleteReply{
		Reply:  r.replyRow.toEntity(),
		Detail: det.toEntity(),
		Order:  *ord.toEntity(),
	}
}

type userRow struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Name         string    `db:"name"`
	Phone        string    `db:"phone"`
	Role         string    `db:"role"`
	Status       string    `db:"status"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r userRow) toEntity() entity.User {
	return entity.User{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Name:         r.Name,
		Phone:        r.Phone,
		Role:         valueobject.Role(r.Role),
		Status:       valueobject.UserStatus(r.Status),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

type contractorRow struct {
	UserID  uuid.UUID `db:"user_id"`
	Company string    `db:"company"`
	About   string    `db:"about"`
}

func (r contractorRow) toEntity() *entity.Contractor {
	return &entity.Contractor{UserID: r.UserID, Company: r.Company, About: r.About}
}

type contracteeRow struct {
	UserID    uuid.UUID  `db:"user_id"`
	Gender    string     `db:"gender"`
	BirthDate *time.Time `db:"birth_date"`
	City      string     `db:"city"`
}

func (r contracteeRow) toEntity() *entity.Contractee {
	return &entity.Contractee{
		UserID:    r.UserID,
		Gender:    valueobject.Gender(r.Gender),
		BirthDate: r.BirthDate,
		City:      r.City,
	}
}

type adminRow struct {
	UserID       uuid.UUID  `db:"user_id"`
	ContractorID *uuid.UUID `db:"contractor_id"`
}

func (r adminRow) toEntity() *entity.Admin {
	return &entity.Admin{UserID: r.UserID, ContractorID: r.ContractorID}
}

type sessionRow struct {
	UserID       uuid.UUID `db:"user_id"`
	RefreshToken string    `db:"refresh_token"`
	ExpiresAt    time.Time `db:"expires_at"`
}

type notificationRow struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Event     string    `db:"event"`
	Payload   []byte    `db:"payload"`
	IsRead    bool      `db:"is_read"`
	CreatedAt time.Time `db:"created_at"`
}

func (r notificationRow) toEntity() entity.Notification {
	return entity.Notification{
		ID:        r.ID,
		UserID:    r.UserID,
		Event:     r.Event,
		Payload:   r.Payload,
		IsRead:    r.IsRead,
		CreatedAt: r.CreatedAt,
	}
}
