package order_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/staffhub/staffing-backend/internal/domain/entity"
	"github.com/staffhub/staffing-backend/internal/domain/repository"
	"github.com/staffhub/staffing-backend/internal/domain/valueobject"
)

type replyKey struct {
	contracteeID uuid.UUID
	detailID     uuid.UUID
}

type fakeStore struct {
	orders      map[uuid.UUID]*entity.Order
	details     map[uuid.UUID]*entity.OrderDetail
	replies     map[replyKey]*entity.Reply
	users       map[uuid.UUID]*entity.User
	contractees map[uuid.UUID]*entity.Contractee
	admins      map[uuid.UUID]*entity.Admin
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		orders:      make(map[uuid.UUID]*entity.Order),
		details:     make(map[uuid.UUID]*entity.OrderDetail),
		replies:     make(map[replyKey]*entity.Reply),
		users:       make(map[uuid.UUID]*entity.User),
		contractees: make(map[uuid.UUID]*entity.Contractee),
		admins:      make(map[uuid.UUID]*entity.Admin),
	}
}

type fakeTxManager struct {
	store *fakeStore
}

func (m *fakeTxManager) WithinTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	return fn(m.store)
}

func (s *fakeStore) OrderQueries() repository.OrderQueryRepository    { return s }
func (s *fakeStore) OrderCommands() repository.OrderCommandRepository { return s }
func (s *fakeStore) ReplyQueries() repository.ReplyQueryRepository    { return s }
func (s *fakeStore) ReplyCommands() repository.ReplyCommandRepository { return s }
func (s *fakeStore) UserQueries() repository.UserQueryRepository      { return s }
func (s *fakeStore) UserCommands() repository.UserCommandRepository   { return s }

func (s *fakeStore) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	copy := *o
	return &copy, nil
}

func (s *fakeStore) GetOrderWithDetails(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	o, err := s.GetOrder(ctx, id)
	if o == nil || err != nil {
		return nil, err
	}
	o.Details = nil
	for _, det := range s.details {
		if det.OrderID == id {
			o.Details = append(o.Details, *det)
		}
	}
	return o, nil
}

func (s *fakeStore) GetOrderForDetail(ctx context.Context, detailID uuid.UUID) (*entity.Order, error) {
	det, ok := s.details[detailID]
	if !ok {
		return nil, nil
	}
	return s.GetOrder(ctx, det.OrderID)
}

func (s *fakeStore) GetDetail(ctx context.Context, id uuid.UUID) (*entity.OrderDetail, error) {
	det, ok := s.details[id]
	if !ok {
		return nil, nil
	}
	copy := *det
	return &copy, nil
}

func (s *fakeStore) ListDetails(ctx context.Context, orderID uuid.UUID) ([]entity.OrderDetail, error) {
	var result []entity.OrderDetail
	for _, det := range s.details {
		if det.OrderID == orderID {
			result = append(result, *det)
		}
	}
	return result, nil
}

func (s *fakeStore) FilterOrders(ctx context.Context, filter repository.OrderFilter) ([]entity.Order, error) {
	var result []entity.Order
	for _, o := range s.orders {
		if filter.Status != nil && o.Status != *filter.Status {
			continue
		}
		if filter.ContractorID != nil && o.ContractorID != *filter.ContractorID {
			continue
		}
		if filter.AdminID != nil && (o.AdminID == nil || *o.AdminID != *filter.AdminID) {
			continue
		}
		if filter.Unassigned && o.AdminID != nil {
			continue
		}
		if filter.ContracteeID != nil && !s.hasOrderReply(o.ID, *filter.ContracteeID) {
			continue
		}
		result = append(result, *o)
	}
	return result, nil
}

func (s *fakeStore) hasOrderReply(orderID, contracteeID uuid.UUID) bool {
	for key, r := range s.replies {
		det := s.details[r.DetailID]
		if det != nil && det.OrderID == orderID && key.contracteeID == contracteeID {
			return true
		}
	}
	return false
}

func (s *fakeStore) CreateOrder(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	copy := *order
	copy.Details = nil
	s.orders[order.ID] = &copy
	return order, nil
}

func (s *fakeStore) UpdateOrder(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	return s.CreateOrder(ctx, order)
}

func (s *fakeStore) SetOrderStatus(ctx context.Context, id uuid.UUID, status valueobject.OrderStatus) (*entity.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	copy := *o
	return &copy, nil
}

func (s *fakeStore) SetOrderAdmin(ctx context.Context, id, adminID uuid.UUID) (*entity.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	o.AdminID = &adminID
	o.UpdatedAt = time.Now()
	copy := *o
	return &copy, nil
}

func (s *fakeStore) CreateDetails(ctx context.Context, details []entity.OrderDetail) ([]entity.OrderDetail, error) {
	for i := range details {
		det := details[i]
		s.details[det.ID] = &det
	}
	return details, nil
}

func (s *fakeStore) matchReply(r *entity.Reply, filter repository.ReplyFilter) bool {
	if !filter.IncludeDropped && r.Dropped {
		return false
	}
	if filter.ContracteeID != nil && r.ContracteeID != *filter.ContracteeID {
		return false
	}
	if filter.DetailID != nil && r.DetailID != *filter.DetailID {
		return false
	}
	if filter.Status != nil && r.Status != *filter.Status {
		return false
	}
	det := s.details[r.DetailID]
	if filter.OrderID != nil && (det == nil || det.OrderID != *filter.OrderID) {
		return false
	}
	if filter.Date != nil && (det == nil || !det.SameDate(*filter.Date)) {
		return false
	}
	return true
}

func (s *fakeStore) GetReply(ctx context.Context, contracteeID, detailID uuid.UUID) (*entity.Reply, error) {
	r, ok := s.replies[replyKey{contracteeID, detailID}]
	if !ok {
		return nil, nil
	}
	copy := *r
	return &copy, nil
}

func (s *fakeStore) GetCompleteReply(ctx context.Context, contracteeID, detailID uuid.UUID) (*entity.CompleteReply, error) {
	r, ok := s.replies[replyKey{contracteeID, detailID}]
	if !ok {
		return nil, nil
	}
	det := s.details[detailID]
	order := s.orders[det.OrderID]
	return &entity.CompleteReply{Reply: *r, Detail: *det, Order: *order}, nil
}

func (s *fakeStore) FilterCompleteReplies(ctx context.Context, filter repository.ReplyFilter) ([]entity.CompleteReply, error) {
	var result []entity.CompleteReply
	for _, r := range s.replies {
		if !s.matchReply(r, filter) {
			continue
		}
		det := s.details[r.DetailID]
		order := s.orders[det.OrderID]
		result = append(result, entity.CompleteReply{Reply: *r, Detail: *det, Order: *order})
	}
	return result, nil
}

func (s *fakeStore) HasReply(ctx context.Context, filter repository.ReplyFilter) (bool, error) {
	for _, r := range s.replies {
		if s.matchReply(r, filter) {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) DetailAvailability(ctx context.Context, detailID uuid.UUID) (*entity.DetailAvailability, error) {
	det, ok := s.details[detailID]
	if !ok {
		return nil, nil
	}
	quantity := det.Count
	for _, r := range s.replies {
		if r.DetailID == detailID && r.IsAccepted() && !r.Dropped {
			quantity--
		}
	}
	return &entity.DetailAvailability{DetailID: detailID, Quantity: quantity}, nil
}

func (s *fakeStore) OrderAvailability(ctx context.Context, orderID uuid.UUID) ([]entity.DetailAvailability, error) {
	var result []entity.DetailAvailability
	for id, det := range s.details {
		if det.OrderID != orderID {
			continue
		}
		av, _ := s.DetailAvailability(ctx, id)
		result = append(result, *av)
	}
	return result, nil
}

func (s *fakeStore) CreateReply(ctx context.Context, reply *entity.Reply) (*entity.Reply, error) {
	copy := *reply
	s.replies[replyKey{reply.ContracteeID, reply.DetailID}] = &copy
	return reply, nil
}

func (s *fakeStore) SetReplyStatus(ctx context.Context, contracteeID, detailID uuid.UUID, status valueobject.ReplyStatus) (*entity.Reply, error) {
	r, ok := s.replies[replyKey{contracteeID, detailID}]
	if !ok {
		return nil, nil
	}
	r.Status = status
	if status == valueobject.ReplyStatusPaid {
		now := time.Now()
		r.PaidAt = &now
	}
	copy := *r
	return &copy, nil
}

func (s *fakeStore) DropReplies(ctx context.Context, filter repository.ReplyFilter) ([]entity.Reply, error) {
	var dropped []entity.Reply
	for _, r := range s.replies {
		if !s.matchReply(r, filter) {
			continue
		}
		if !filter.AnyStatus && !r.CanBeDropped() {
			continue
		}
		r.Dropped = true
		dropped = append(dropped, *r)
	}
	return dropped, nil
}

func (s *fakeStore) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	copy := *u
	return &copy, nil
}

func (s *fakeStore) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) FilterUsers(ctx context.Context, filter repository.UserFilter) ([]entity.User, error) {
	var result []entity.User
	for _, u := range s.users {
		if filter.Role != nil && u.Role != *filter.Role {
			continue
		}
		if filter.Status != nil && u.Status != *filter.Status {
			continue
		}
		if filter.Gender != nil {
			profile, ok := s.contractees[u.ID]
			if !ok || profile.Gender != *filter.Gender {
				continue
			}
		}
		result = append(result, *u)
	}
	return result, nil
}

func (s *fakeStore) GetContractor(ctx context.Context, userID uuid.UUID) (*entity.Contractor, error) {
	return nil, nil
}

func (s *fakeStore) GetContractee(ctx context.Context, userID uuid.UUID) (*entity.Contractee, error) {
	c, ok := s.contractees[userID]
	if !ok {
		return nil, nil
	}
	copy := *c
	return &copy, nil
}

func (s *fakeStore) GetAdmin(ctx context.Context, userID uuid.UUID) (*entity.Admin, error) {
	a, ok := s.admins[userID]
	if !ok {
		return nil, nil
	}
	copy := *a
	return &copy, nil
}

func (s *fakeStore) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	copy := *user
	s.users[user.ID] = &copy
	return user, nil
}

func (s *fakeStore) UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	return s.CreateUser(ctx, user)
}

func (s *fakeStore) SetUserStatus(ctx context.Context, id uuid.UUID, status valueobject.UserStatus) (*entity.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	u.Status = status
	copy := *u
	return &copy, nil
}

func (s *fakeStore) CreateContractor(ctx context.Context, contractor *entity.Contractor) error {
	return nil
}

func (s *fakeStore) CreateContractee(ctx context.Context, contractee *entity.Contractee) error {
	copy := *contractee
	s.contractees[contractee.UserID] = &copy
	return nil
}

func (s *fakeStore) CreateAdmin(ctx context.Context, admin *entity.Admin) error {
	copy := *admin
	s.admins[admin.UserID] = &copy
	return nil
}

func (s *fakeStore) UpdateContractor(ctx context.Context, contractor *entity.Contractor) error {
	return nil
}

func (s *fakeStore) UpdateContractee(ctx context.Context, contractee *entity.Contractee) error {
	return nil
}

func seedUser(s *fakeStore, role valueobject.Role, status valueobject.UserStatus) *entity.User {
	u := &entity.User{
		ID:     uuid.New(),
		Email:  uuid.NewString() + "@example.com",
		Role:   role,
		Status: status,
	}
	s.users[u.ID] = u
	return u
}

func seedContractee(s *fakeStore, gender valueobject.Gender) *entity.User {
	u := seedUser(s, valueobject.RoleContractee, valueobject.UserStatusRegistered)
	s.contractees[u.ID] = &entity.Contractee{UserID: u.ID, Gender: gender}
	return u
}

func seedOrder(s *fakeStore, contractorID uuid.UUID, status valueobject.OrderStatus, adminID *uuid.UUID) *entity.Order {
	o := &entity.Order{
		ID:           uuid.New(),
		ContractorID: contractorID,
		AdminID:      adminID,
		About:        "выставка, монтаж стендов",
		Address:      "Москва, Экспоцентр",
		Status:       status,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	s.orders[o.ID] = o
	return o
}

func seedDetail(s *fakeStore, orderID uuid.UUID, date time.Time, count int) *entity.OrderDetail {
	det := &entity.OrderDetail{
		ID:       uuid.New(),
		OrderID:  orderID,
		Date:     date,
		StartAt:  date,
		EndAt:    date.Add(8 * time.Hour),
		Position: valueobject.PositionHelper,
		Count:    count,
		Wager:    5000,
	}
	s.details[det.ID] = det
	return det
}

func seedReply(s *fakeStore, contracteeID, detailID uuid.UUID, status valueobject.ReplyStatus) *entity.Reply {
	r := &entity.Reply{
		ContracteeID: contracteeID,
		DetailID:     detailID,
		Wager:        4250,
		Status:       status,
		CreatedAt:    time.Now(),
	}
	s.replies[replyKey{contracteeID, detailID}] = r
	return r
}

type notifyEvent struct {
	name       string
	recipients []uuid.UUID
}

type fakeNotifier struct {
	events []notifyEvent
}

func (n *fakeNotifier) record(name string, recipients ...uuid.UUID) {
	n.events = append(n.events, notifyEvent{name: name, recipients: recipients})
}

func (n *fakeNotifier) OrderCreated(ctx context.Context, order *entity.Order, adminIDs []uuid.UUID) {
	n.record("order_created", adminIDs...)
}

func (n *fakeNotifier) OrderPublished(ctx context.Context, order *entity.Order, contracteeIDs []uuid.UUID) {
	n.record("order_published", contracteeIDs...)
}

func (n *fakeNotifier) AdminAssigned(ctx context.Context, order *entity.Order, contractorID uuid.UUID) {
	n.record("admin_assigned", contractorID)
}

func (n *fakeNotifier) OrderApproved(ctx context.Context, order *entity.Order, contractorID uuid.UUID) {
	n.record("order_approved", contractorID)
}

func (n *fakeNotifier) OrderDisapproved(ctx context.Context, order *entity.Order, contractorID uuid.UUID) {
	n.record("order_disapproved", contractorID)
}

func (n *fakeNotifier) OrderCancelled(ctx context.Context, order *entity.Order, userIDs []uuid.UUID) {
	n.record("order_cancelled", userIDs...)
}

func (n *fakeNotifier) OrderClosed(ctx context.Context, order *entity.Order, contractorID uuid.UUID) {
	n.record("order_closed", contractorID)
}

func (n *fakeNotifier) OrderOpened(ctx context.Context, order *entity.Order, contractorID uuid.UUID) {
	n.record("order_opened", contractorID)
}

func (n *fakeNotifier) OrderSetActive(ctx context.Context, order *entity.Order, userIDs []uuid.UUID) {
	n.record("order_set_active", userIDs...)
}

func (n *fakeNotifier) OrderFulfilled(ctx context.Context, order *entity.Order, userIDs []uuid.UUID) {
	n.record("order_fulfilled", userIDs...)
}

func (n *fakeNotifier) OrderAutoClosed(ctx context.Context, order *entity.Order, userIDs []uuid.UUID) {
	n.record("order_auto_closed", userIDs...)
}

func (n *fakeNotifier) ReplySubmitted(ctx context.Context, order *entity.Order, reply *entity.Reply, contractorID uuid.UUID) {
	n.record("reply_submitted", contractorID)
}

func (n *fakeNotifier) ReplyApproved(ctx context.Context, order *entity.Order, reply *entity.Reply, contracteeID uuid.UUID) {
	n.record("reply_approved", contracteeID)
}

func (n *fakeNotifier) ReplyDisapproved(ctx context.Context, order *entity.Order, reply *entity.Reply, contracteeID uuid.UUID) {
	n.record("reply_disapproved", contracteeID)
}

func (n *fakeNotifier) RepliesDropped(ctx context.Context, order *entity.Order, contracteeIDs []uuid.UUID) {
	if len(contracteeIDs) == 0 {
		return
	}
	n.record("replies_dropped", contracteeIDs...)
}

func (n *fakeNotifier) UserStatusChanged(ctx context.Context, user *entity.User) {
	n.record("user_status_changed", user.ID)
}
