package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/staffhub/staffing-backend/internal/domain/repository"
	"github.com/staffhub/staffing-backend/internal/domain/valueobject"
	"github.com/staffhub/staffing-backend/internal/usecase/order"
	"github.com/staffhub/staffing-backend/internal/validation"
)

// OrderHandler предоставляет HTTP слой для работы с заказами.
type OrderHandler struct {
	createOrder  *order.CreateOrderUseCase
	getOrder     *order.GetOrderUseCase
	filterOrders *order.FilterOrdersUseCase
	takeOrder    *order.TakeOrderUseCase
	approve      *order.ApproveOrderUseCase
	disapprove   *order.DisapproveOrderUseCase
	changeStatus *order.ChangeOrderStatusUseCase
	replies      repository.ReplyQueryRepository
}

// NewOrderHandler создаёт хэндлер.
func NewOrderHandler(
	createOrder *order.CreateOrderUseCase,
	getOrder *order.GetOrderUseCase,
	filterOrders *order.FilterOrdersUseCase,
	takeOrder *order.TakeOrderUseCase,
	approve *order.ApproveOrderUseCase,
	disapprove *order.DisapproveOrderUseCase,
	changeStatus *order.ChangeOrderStatusUseCase,
	replies repository.ReplyQueryRepository,
) *OrderHandler {
	return &OrderHandler{
		createOrder:  createOrder,
		getOrder:     getOrder,
		filterOrders: filterOrders,
		takeOrder:    takeOrder,
		approve:      approve,
		disapprove:   disapprove,
		changeStatus: changeStatus,
		replies:      replies,
	}
}

var errInvalidDetailTime = errors.New("дата позиции задаётся как YYYY-MM-DD, время — как HH:MM")

type detailRequest struct {
	Date     string  `json:"date" binding:"required"`
	StartAt  string  `json:"start_at" binding:"required"`
	EndAt    string  `json:"end_at" binding:"required"`
	Position string  `json:"position" binding:"required"`
	Count    int     `json:"count" binding:"required"`
	Wager    int64   `json:"wager" binding:"required"`
	Gender   *string `json:"gender"`
}

// CreateOrder обрабатывает POST /orders.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	actorID, actorRole, err := actor(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req struct {
		About   string          `json:"about" binding:"required"`
		Address string          `json:"address" binding:"required"`
		Details []detailRequest `json:"details" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := validation.ValidateOrderAbout(req.About); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validation.ValidateOrderAddress(req.Address); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	details := make([]order.DetailInput, 0, len(req.Details))
	for _, det := range req.Details {
		if err := validation.ValidateWager(det.Wager); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validation.ValidateDetailCount(det.Count); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		input, err := parseDetailRequest(det)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		details = append(details, input)
	}

	created, err := h.createOrder.Execute(c.Request.Context(), order.CreateOrderInput{
		ActorID:   actorID,
		ActorRole: actorRole,
		About:     req.About,
		Address:   req.Address,
		Details:   details,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(created))
}

// GetOrder обрабатывает GET /orders/:id.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	actorID, actorRole, err := actor(c)
	if err != nil {
		respondError(c, err)
		return
	}

	orderID, _ := uuid.Parse(c.Param("id"))

	found, err := h.getOrder.Execute(c.Request.Context(), orderID, actorID, actorRole)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(found))
}

// ListOrders обрабатывает GET /orders. Роль автора запроса определяет
// видимую выборку: исполнители видят открытые заказы, заказчики — свои,
// администраторы — все с фильтрами mine/unassigned.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	actorID, actorRole, err := actor(c)
	if err != nil {
		respondError(c, err)
		return
	}

	input := order.FilterOrdersInput{
		ActorID:    actorID,
		ActorRole:  actorRole,
		Mine:       c.Query("mine") == "true",
		Unassigned: c.Query("unassigned") == "true",
	}
	input.Limit, input.Offset = pagination(c)

	if statusStr := c.Query("status"); statusStr != "" {
		status, err := valueobject.NewOrderStatus(statusStr)
		if err != nil {
			respondError(c, err)
			return
		}
		input.Status = &status
	}

	orders, err := h.filterOrders.Execute(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]orderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, toOrderResponse(&orders[i]))
	}
	c.JSON(http.StatusOK, gin.H{"orders": resp})
}

// GetAvailability обрабатывает GET /orders/:id/availability.
// Доступом управляют те же правила, что и просмотром заказа.
func (h *OrderHandler) GetAvailability(c *gin.Context) {
	actorID, actorRole, err := actor(c)
	if err != nil {
		respondError(c, err)
		return
	}

	orderID, _ := uuid.Parse(c.Param("id"))

	if _, err := h.getOrder.Execute(c.Request.Context(), orderID, actorID, actorRole); err != nil {
		respondError(c, err)
		return
	}

	availabilities, err := h.replies.OrderAvailability(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]availabilityResponse, 0, len(availabilities))
	for _, av := range availabilities {
		resp = append(resp, availabilityResponse{DetailID: av.DetailID, Quantity: av.Quantity})
	}
	c.JSON(http.StatusOK, gin.H{"availability": resp})
}

// TakeOrder обрабатывает POST /orders/:id/take — администратор берёт
// заказ на кураторство.
func (h *OrderHandler) TakeOrder(c *gin.Context) {
	adminID, err := currentUserID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	orderID, _ := uuid.Parse(c.Param("id"))

	taken, err := h.takeOrder.Execute(c.Request.Context(), orderID, adminID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(taken))
}

// ApproveOrder обрабатывает POST /orders/:id/approve.
func (h *OrderHandler) ApproveOrder(c *gin.Context) {
	adminID, err := currentUserID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	orderID, _ := uuid.Parse(c.Param("id"))

	approved, err := h.approve.Execute(c.Request.Context(), orderID, adminID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(approved))
}

// DisapproveOrder обрабатывает POST /orders/:id/disapprove.
func (h *OrderHandler) DisapproveOrder(c *gin.Context) {
	adminID, err := currentUserID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	orderID, _ := uuid.Parse(c.Param("id"))

	disapproved, err := h.disapprove.Execute(c.Request.Context(), orderID, adminID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(disapproved))
}

// ChangeStatus обрабатывает PUT /orders/:id/status.
func (h *OrderHandler) ChangeStatus(c *gin.Context) {
	actorID, actorRole, err := actor(c)
	if err != nil {
		respondError(c, err)
		return
	}

	orderID, _ := uuid.Parse(c.Param("id"))

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := valueobject.NewOrderStatus(req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	changed, err := h.changeStatus.Execute(c.Request.Context(), order.ChangeOrderStatusInput{
		OrderID:   orderID,
		ActorID:   actorID,
		ActorRole: actorRole,
		Status:    status,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(changed))
}

// parseDetailRequest переводит строковые дату и времена позиции
// в доменный ввод. Дата задаётся днём, времена — часами и минутами.
func parseDetailRequest(det detailRequest) (order.DetailInput, error) {
	date, err := time.Parse("2006-01-02", det.Date)
	if err != nil {
		return order.DetailInput{}, errInvalidDetailTime
	}
	startClock, err := time.Parse("15:04", det.StartAt)
	if err != nil {
		return order.DetailInput{}, errInvalidDetailTime
	}
	endClock, err := time.Parse("15:04", det.EndAt)
	if err != nil {
		return order.DetailInput{}, errInvalidDetailTime
	}

	// Времена привязываются к дате позиции, чтобы в хранилище уходили
	// полноценные моменты. Ночная смена определяется по самим часам.
	return order.DetailInput{
		Date:     date,
		StartAt:  onDate(date, startClock),
		EndAt:    onDate(date, endClock),
		Position: det.Position,
		Count:    det.Count,
		Wager:    det.Wager,
		Gender:   det.Gender,
	}, nil
}

func onDate(date, clock time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC)
}
