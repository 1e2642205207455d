package reply_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/staffhub/staffing-backend/internal/domain/valueobject"
	"github.com/staffhub/staffing-backend/internal/pkg/apperror"
	"github.com/staffhub/staffing-backend/internal/usecase/reply"
)

func TestApproveReplyUseCase_Success(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	uc := reply.NewApproveReplyUseCase(&fakeTxManager{store: store}, notifier)

	contractor := seedUser(store, valueobject.RoleContractor, valueobject.UserStatusRegistered)
	admin := seedUser(store, valueobject.RoleAdmin, valueobject.UserStatusRegistered)
	contractee := seedContractee(store, valueobject.GenderMale)
	o := seedOrder(store, contractor.ID, valueobject.OrderStatusOpen, &admin.ID)
	det := seedDetail(store, o.ID, time.Now().Add(48*time.Hour), 2)
	seedReply(store, contractee.ID, det.ID, valueobject.ReplyStatusCreated)

	result, err := uc.Execute(context.Background(), reply.ApproveReplyInput{
		DetailID:     det.ID,
		ContracteeID: contractee.ID,
		ActorID:      contractor.ID,
		ActorRole:    valueobject.RoleContractor,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Status != valueobject.ReplyStatusAccepted {
		t.Errorf("expected status accepted, got %s", result.Status)
	}
	if store.orders[o.ID].Status != valueobject.OrderStatusOpen {
		t.Error("order with free places must stay open")
	}

	av, _ := store.DetailAvailability(context.Background(), det.ID)
	if av.Quantity != 1 {
		t.Errorf("expected 1 place left, got %d", av.Quantity)
	}

	if len(notifier.events) != 1 || notifier.events[0].name != "reply_approved" {
		t.Fatalf("expected reply_approved notification, got %v", notifier.events)
	}
}

func TestApproveReplyUseCase_LastPlaceWinsOnce(t *testing.T) {
	store := newFakeStore()
	uc := reply.NewApproveReplyUseCase(&fakeTxManager{store: store}, &fakeNotifier{})

	contractor := seedUser(store, valueobject.RoleContractor, valueobject.UserStatusRegistered)
	first := seedContractee(store, valueobject.GenderMale)
	second := seedContractee(store, valueobject.GenderMale)

	o := seedOrder(store, contractor.ID, valueobject.OrderStatusOpen, nil)
	other := seedDetail(store, o.ID, time.Now().Add(72*time.Hour), 1)
	det := seedDetail(store, o.ID, time.Now().Add(48*time.Hour), 1)
	seedReply(store, first.ID, det.ID, valueobject.ReplyStatusCreated)
	seedReply(store, second.ID, det.ID, valueobject.ReplyStatusCreated)
	_ = other

	input := reply.ApproveReplyInput{
		DetailID:     det.ID,
		ContracteeID: first.ID,
		ActorID:      contractor.ID,
		ActorRole:    valueobject.RoleContractor,
	}
	if _, err := uc.Execute(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	input.ContracteeID = second.ID
	_, err := uc.Execute(context.Background(), input)
	if err == nil {
		t.Fatal("expected second approval on full detail to fail")
	}

	// Занятых мест ровно по количеству, второй отклик снят каскадом.
	av, _ := store.DetailAvailability(context.Background(), det.ID)
	if av.Quantity != 0 {
		t.Errorf("expected 0 places left, got %d", av.Quantity)
	}
	if store.replies[replyKey{second.ID, det.ID}].Status != valueobject.ReplyStatusCreated {
		t.Error("rejected reply must keep its status")
	}
	if !store.replies[replyKey{second.ID, det.ID}].Dropped {
		t.Error("expected competing reply dropped after detail filled")
	}
}

func TestApproveReplyUseCase_AutoClosesWhenAllDetailsFull(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	uc := reply.NewApproveReplyUseCase(&fakeTxManager{store: store}, notifier)

	contractor := seedUser(store, valueobject.RoleContractor, valueobject.UserStatusRegistered)
	admin := seedUser(store, valueobject.RoleAdmin, valueobject.UserStatusRegistered)
	c1 := seedContractee(store, valueobject.GenderMale)
	c2 := seedContractee(store, valueobject.GenderMale)
	c3 := seedContractee(store, valueobject.GenderMale)

	o := seedOrder(store, contractor.ID, valueobject.OrderStatusOpen, &admin.ID)
	d1 := seedDetail(store, o.ID, time.Now().Add(48*time.Hour), 1)
	d2 := seedDetail(store, o.ID, time.Now().Add(72*time.Hour), 1)
	seedReply(store, c1.ID, d1.ID, valueobject.ReplyStatusCreated)
	seedReply(store, c2.ID, d2.ID, valueobject.ReplyStatusCreated)
	seedReply(store, c3.ID, d2.ID, valueobject.ReplyStatusCreated)

	if _, err := uc.Execute(context.Background(), reply.ApproveReplyInput{
		DetailID:     d1.ID,
		ContracteeID: c1.ID,
		ActorID:      contractor.ID,
		ActorRole:    valueobject.RoleContractor,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.orders[o.ID].Status != valueobject.OrderStatusOpen {
		t.Fatal("order must stay open while a detail has places")
	}

	notifier.events = nil
	if _, err := uc.Execute(context.Background(), reply.ApproveReplyInput{
		DetailID:     d2.ID,
		ContracteeID: c2.ID,
		ActorID:      contractor.ID,
		ActorRole:    valueobject.RoleContractor,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if store.orders[o.ID].Status != valueobject.OrderStatusClosed {
		t.Error("expected order auto-closed after last place taken")
	}
	if !store.replies[replyKey{c3.ID, d2.ID}].Dropped {
		t.Error("expected remaining pending reply dropped")
	}

	// Сначала снятые, затем стороны заказа, подтверждённый — последним.
	if len(notifier.events) != 3 {
		t.Fatalf("expected 3 notifications, got %v", notifier.events)
	}
	if notifier.events[0].name != "replies_dropped" ||
		notifier.events[1].name != "order_auto_closed" ||
		notifier.events[2].name != "reply_approved" {
		t.Errorf("unexpected notification order: %v", notifier.events)
	}
	if notifier.events[2].recipients[0] != c2.ID {
		t.Error("expected approved contractee notified last")
	}
}

func TestApproveReplyUseCase_DropsSameDateReplies(t *testing.T) {
	store := newFakeStore()
	uc := reply.NewApproveReplyUseCase(&fakeTxManager{store: store}, &fakeNotifier{})

	contractor := seedUser(store, valueobject.RoleContractor, valueobject.UserStatusRegistered)
	contractee := seedContractee(store, valueobject.GenderMale)
	date := time.Now().Add(48 * time.Hour)

	o := seedOrder(store, contractor.ID, valueobject.OrderStatusOpen, nil)
	det := seedDetail(store, o.ID, date, 2)
	seedReply(store, contractee.ID, det.ID, valueobject.ReplyStatusCreated)

	otherOrder := seedOrder(store, contractor.ID, valueobject.OrderStatusOpen, nil)
	otherDetail := seedDetail(store, otherOrder.ID, date, 2)
	seedReply(store, contractee.ID, otherDetail.ID, valueobject.ReplyStatusCreated)

	if _, err := uc.Execute(context.Background(), reply.ApproveReplyInput{
		DetailID:     det.ID,
		ContracteeID: contractee.ID,
		ActorID:      contractor.ID,
		ActorRole:    valueobject.RoleContractor,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !store.replies[replyKey{contractee.ID, otherDetail.ID}].Dropped {
		t.Error("expected same-date reply in another order dropped")
	}
	if store.replies[replyKey{contractee.ID, det.ID}].Dropped {
		t.Error("approved reply must not be dropped")
	}
}

func TestApproveReplyUseCase_SupervisingAdminDenied(t *testing.T) {
	store := newFakeStore()
	uc := reply.NewApproveReplyUseCase(&fakeTxManager{store: store}, &fakeNotifier{})

	admin := seedUser(store, valueobject.RoleAdmin, valueobject.UserStatusRegistered)
	contractee := seedContractee(store, valueobject.GenderMale)
	o := seedOrder(store, uuid.New(), valueobject.OrderStatusOpen, &admin.ID)
	det := seedDetail(store, o.ID, time.Now().Add(48*time.Hour), 2)
	seedReply(store, contractee.ID, det.ID, valueobject.ReplyStatusCreated)

	// Отбор исполнителей — решение заказчика; куратору оно недоступно.
	_, err := uc.Execute(context.Background(), reply.ApproveReplyInput{
		DetailID:     det.ID,
		ContracteeID: contractee.ID,
		ActorID:      admin.ID,
		ActorRole:    valueobject.RoleAdmin,
	})
	if !errors.Is(err, apperror.ErrPermissionDenied) {
		t.Fatalf("expected permission denied, got %v", err)
	}
	if store.replies[replyKey{contractee.ID, det.ID}].Status != valueobject.ReplyStatusCreated {
		t.Error("reply must stay untouched on rejected approval")
	}
}

func TestApproveReplyUseCase_ForeignContractorForbidden(t *testing.T) {
	store := newFakeStore()
	uc := reply.NewApproveReplyUseCase(&fakeTxManager{store: store}, &fakeNotifier{})

	contractee := seedContractee(store, valueobject.GenderMale)
	o := seedOrder(store, uuid.New(), valueobject.OrderStatusOpen, nil)
	det := seedDetail(store, o.ID, time.Now().Add(48*time.Hour), 2)
	seedReply(store, contractee.ID, det.ID, valueobject.ReplyStatusCreated)

	_, err := uc.Execute(context.Background(), reply.ApproveReplyInput{
		DetailID:     det.ID,
		ContracteeID: contractee.ID,
		ActorID:      uuid.New(),
		ActorRole:    valueobject.RoleContractor,
	})
	if !apperror.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if store.replies[replyKey{contractee.ID, det.ID}].Status != valueobject.ReplyStatusCreated {
		t.Error("reply must stay untouched on rejected approval")
	}
}

func TestApproveReplyUseCase_ClosedOrder(t *testing.T) {
	store := newFakeStore()
	uc := reply.NewApproveReplyUseCase(&fakeTxManager{store: store}, &fakeNotifier{})

	contractor := seedUser(store, valueobject.RoleContractor, valueobject.UserStatusRegistered)
	contractee := seedContractee(store, valueobject.GenderMale)
	o := seedOrder(store, contractor.ID, valueobject.OrderStatusClosed, nil)
	det := seedDetail(store, o.ID, time.Now().Add(48*time.Hour), 2)
	seedReply(store, contractee.ID, det.ID, valueobject.ReplyStatusCreated)

	// Закрытый заказ — нарушение на уровне заказа, не отклика.
	_, err := uc.Execute(context.Background(), reply.ApproveReplyInput{
		DetailID:     det.ID,
		ContracteeID: contractee.ID,
		ActorID:      contractor.ID,
		ActorRole:    valueobject.RoleContractor,
	})
	if !errors.Is(err, apperror.ErrOrderActionNotAllowed) {
		t.Fatalf("expected ErrOrderActionNotAllowed, got %v", err)
	}
}

func TestDisapproveReplyUseCase_SecondCallConflicts(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	uc := reply.NewDisapproveReplyUseCase(&fakeTxManager{store: store}, notifier)

	contractor := seedUser(store, valueobject.RoleContractor, valueobject.UserStatusRegistered)
	contractee := seedContractee(store, valueobject.GenderMale)
	o := seedOrder(store, contractor.ID, valueobject.OrderStatusOpen, nil)
	det := seedDetail(store, o.ID, time.Now().Add(48*time.Hour), 2)
	seedReply(store, contractee.ID, det.ID, valueobject.ReplyStatusCreated)

	input := reply.ApproveReplyInput{
		DetailID:     det.ID,
		ContracteeID: contractee.ID,
		ActorID:      contractor.ID,
		ActorRole:    valueobject.RoleContractor,
	}

	result, err := uc.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != valueobject.ReplyStatusDisapproved {
		t.Errorf("expected status disapproved, got %s", result.Status)
	}
	if len(notifier.events) != 1 || notifier.events[0].name != "reply_disapproved" {
		t.Fatalf("expected reply_disapproved notification, got %v", notifier.events)
	}

	_, err = uc.Execute(context.Background(), input)
	if !errors.Is(err, apperror.ErrReplyStatusChangeNotAllowed) {
		t.Fatalf("expected ErrReplyStatusChangeNotAllowed, got %v", err)
	}
}

func TestPayReplyUseCase_Success(t *testing.T) {
	store := newFakeStore()
	uc := reply.NewPayReplyUseCase(&fakeTxManager{store: store})

	admin := seedUser(store, valueobject.RoleAdmin, valueobject.UserStatusRegistered)
	contractee := seedContractee(store, valueobject.GenderMale)
	o := seedOrder(store, uuid.New(), valueobject.OrderStatusFulfilled, &admin.ID)
	det := seedDetail(store, o.ID, time.Now().Add(-48*time.Hour), 2)
	seedReply(store, contractee.ID, det.ID, valueobject.ReplyStatusAccepted)

	result, err := uc.Execute(context.Background(), reply.ApproveReplyInput{
		DetailID:     det.ID,
		ContracteeID: contractee.ID,
		ActorID:      admin.ID,
		ActorRole:    valueobject.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Status != valueobject.ReplyStatusPaid {
		t.Errorf("expected status paid, got %s", result.Status)
	}
	if result.PaidAt == nil {
		t.Error("expected payment time recorded")
	}
}

func TestPayReplyUseCase_OrderNotFulfilled(t *testing.T) {
	store := newFakeStore()
	uc := reply.NewPayReplyUseCase(&fakeTxManager{store: store})

	admin := seedUser(store, valueobject.RoleAdmin, valueobject.UserStatusRegistered)
	contractee := seedContractee(store, valueobject.GenderMale)
	o := seedOrder(store, uuid.New(), valueobject.OrderStatusActive, &admin.ID)
	det := seedDetail(store, o.ID, time.Now().Add(48*time.Hour), 2)
	seedReply(store, contractee.ID, det.ID, valueobject.ReplyStatusAccepted)

	_, err := uc.Execute(context.Background(), reply.ApproveReplyInput{
		DetailID:     det.ID,
		ContracteeID: contractee.ID,
		ActorID:      admin.ID,
		ActorRole:    valueobject.RoleAdmin,
	})
	if !apperror.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}
