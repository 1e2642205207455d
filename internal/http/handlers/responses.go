package handlers

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/staffhub/staffing-backend/internal/domain/entity"
)

// Ответы API собираются из доменных сущностей явно, чтобы формат
// ответа не зависел от внутренних структур.

type orderResponse struct {
	ID           uuid.UUID        `json:"id"`
	ContractorID uuid.UUID        `json:"contractor_id"`
	AdminID      *uuid.UUID       `json:"admin_id,omitempty"`
	About        string           `json:"about"`
	Address      string           `json:"address"`
	Status       string           `json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	Details      []detailResponse `json:"details,omitempty"`
}

type detailResponse struct {
	ID       uuid.UUID `json:"id"`
	OrderID  uuid.UUID `json:"order_id"`
	Date     string    `json:"date"`
	StartAt  time.Time `json:"start_at"`
	EndAt    time.Time `json:"end_at"`
	Position string    `json:"position"`
	Count    int       `json:"count"`
	Wager    int64     `json:"wager"`
	Gender   *string   `json:"gender,omitempty"`
}

type replyResponse struct {
	ContracteeID uuid.UUID  `json:"contractee_id"`
	DetailID     uuid.UUID  `json:"detail_id"`
	Wager        int64      `json:"wager"`
	Status       string     `json:"status"`
	Dropped      bool       `json:"dropped"`
	PaidAt       *time.Time `json:"paid_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type completeReplyResponse struct {
	Reply  replyResponse  `json:"reply"`
	Detail detailResponse `json:"detail"`
	Order  orderResponse  `json:"order"`
}

type availabilityResponse struct {
	DetailID uuid.UUID `json:"detail_id"`
	Quantity int       `json:"quantity"`
}

type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type notificationResponse struct {
	ID        uuid.UUID       `json:"id"`
	Event     string          `json:"event"`
	Payload   json.RawMessage `json:"payload"`
	IsRead    bool            `json:"is_read"`
	CreatedAt time.Time       `json:"created_at"`
}

func toOrderResponse(order *entity.Order) orderResponse {
	resp := orderResponse{
		ID:           order.ID,
		ContractorID: order.ContractorID,
		AdminID:      order.AdminID,
		About:        order.About,
		Address:      order.Address,
		Status:       string(order.Status),
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}
	for _, det := range order.Details {
		resp.Details = append(resp.Details, toDetailResponse(det))
	}
	return resp
}

func toDetailResponse(det entity.OrderDetail) detailResponse {
	var gender *string
	if det.Gender != nil {
		g := string(*det.Gender)
		gender = &g
	}
	return detailResponse{
		ID:       det.ID,
		OrderID:  det.OrderID,
		Date:     det.Date.Format("2006-01-02"),
		StartAt:  det.StartAt,
		EndAt:    det.EndAt,
		Position: string(det.Position),
		Count:    det.Count,
		Wager:    det.Wager,
		Gender:   gender,
	}
}

func toReplyResponse(reply entity.Reply) replyResponse {
	return replyResponse{
		ContracteeID: reply.ContracteeID,
		DetailID:     reply.DetailID,
		Wager:        reply.Wager,
		Status:       string(reply.Status),
		Dropped:      reply.Dropped,
		PaidAt:       reply.PaidAt,
		CreatedAt:    reply.CreatedAt,
	}
}

func toCompleteReplyResponse(complete entity.CompleteReply) completeReplyResponse {
	return completeReplyResponse{
		Reply:  toReplyResponse(complete.Reply),
		Detail: toDetailResponse(complete.Detail),
		Order:  toOrderResponse(&complete.Order),
	}
}

func toUserResponse(user *entity.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Phone:     user.Phone,
		Role:      string(user.Role),
		Status:    string(user.Status),
		CreatedAt: user.CreatedAt,
	}
}

func toNotificationResponse(n entity.Notification) notificationResponse {
	return notificationResponse{
		ID:        n.ID,
		Event:     n.Event,
		Payload:   json.RawMessage(n.Payload),
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
