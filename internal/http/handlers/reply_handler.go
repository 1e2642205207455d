package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/staffhub/staffing-backend/internal/domain/valueobject"
	"github.com/staffhub/staffing-backend/internal/usecase/reply"
)

// ReplyHandler предоставляет HTTP слой для работы с откликами.
type ReplyHandler struct {
	submit        *reply.SubmitReplyUseCase
	approve       *reply.ApproveReplyUseCase
	disapprove    *reply.DisapproveReplyUseCase
	pay           *reply.PayReplyUseCase
	getReply      *reply.GetReplyUseCase
	filterReplies *reply.FilterRepliesUseCase
}

// NewReplyHandler создаёт хэндлер.
func NewReplyHandler(
	submit *reply.SubmitReplyUseCase,
	approve *reply.ApproveReplyUseCase,
	disapprove *reply.DisapproveReplyUseCase,
	pay *reply.PayReplyUseCase,
	getReply *reply.GetReplyUseCase,
	filterReplies *reply.FilterRepliesUseCase,
) *ReplyHandler {
	return &ReplyHandler{
		submit:        submit,
		approve:       approve,
		disapprove:    disapprove,
		pay:           pay,
		getReply:      getReply,
		filterReplies: filterReplies,
	}
}

// SubmitReply обрабатывает POST /details/:detailId/replies.
func (h *ReplyHandler) SubmitReply(c *gin.Context) {
	contracteeID, err := currentUserID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	detailID, _ := uuid.Parse(c.Param("detailId"))

	created, err := h.submit.Execute(c.Request.Context(), detailID, contracteeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toReplyResponse(*created))
}

// GetReply обрабатывает GET /details/:detailId/replies/:contracteeId.
func (h *ReplyHandler) GetReply(c *gin.Context) {
	actorID, actorRole, err := actor(c)
	if err != nil {
		respondError(c, err)
		return
	}

	detailID, _ := uuid.Parse(c.Param("detailId"))
	contracteeID, _ := uuid.Parse(c.Param("contracteeId"))

	complete, err := h.getReply.Execute(c.Request.Context(), detailID, contracteeID, actorID, actorRole)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCompleteReplyResponse(*complete))
}

// ListReplies обрабатывает GET /replies. Исполнитель видит только свои
// отклики, заказчик — отклики на свой заказ (order_id обязателен),
// администратор — любые.
func (h *ReplyHandler) ListReplies(c *gin.Context) {
	actorID, actorRole, err := actor(c)
	if err != nil {
		respondError(c, err)
		return
	}

	input := reply.FilterRepliesInput{
		ActorID:   actorID,
		ActorRole: actorRole,
	}
	input.Limit, input.Offset = pagination(c)

	if orderIDStr := c.Query("order_id"); orderIDStr != "" {
		orderID, err := uuid.Parse(orderIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "order_id должен быть валидным UUID"})
			return
		}
		input.OrderID = &orderID
	}
	if detailIDStr := c.Query("detail_id"); detailIDStr != "" {
		detailID, err := uuid.Parse(detailIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "detail_id должен быть валидным UUID"})
			return
		}
		input.DetailID = &detailID
	}
	if dateStr := c.Query("date"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date должен быть в формате YYYY-MM-DD"})
			return
		}
		input.Date = &date
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status, err := valueobject.NewReplyStatus(statusStr)
		if err != nil {
			respondError(c, err)
			return
		}
		input.Status = &status
	}

	replies, err := h.filterReplies.Execute(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]completeReplyResponse, 0, len(replies))
	for _, complete := range replies {
		resp = append(resp, toCompleteReplyResponse(complete))
	}
	c.JSON(http.StatusOK, gin.H{"replies": resp})
}

// ChangeStatus обрабатывает PUT /details/:detailId/replies/:contracteeId/status.
// Подтверждение и отклонение доступны владельцу заказа и куратору,
// выплата — только куратору выполненного заказа.
func (h *ReplyHandler) ChangeStatus(c *gin.Context) {
	actorID, actorRole, err := actor(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := valueobject.NewReplyStatus(req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	input := reply.ApproveReplyInput{
		DetailID:     mustParam(c, "detailId"),
		ContracteeID: mustParam(c, "contracteeId"),
		ActorID:      actorID,
		ActorRole:    actorRole,
	}

	switch status {
	case valueobject.ReplyStatusAccepted:
		updated, err := h.approve.Execute(c.Request.Context(), input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toReplyResponse(*updated))
	case valueobject.ReplyStatusDisapproved:
		updated, err := h.disapprove.Execute(c.Request.Context(), input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toReplyResponse(*updated))
	case valueobject.ReplyStatusPaid:
		updated, err := h.pay.Execute(c.Request.Context(), input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toReplyResponse(*updated))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "недопустимый целевой статус отклика"})
	}
}

// mustParam читает UUID параметр, уже проверенный UUIDValidator.
func mustParam(c *gin.Context, name string) uuid.UUID {
	id, _ := uuid.Parse(c.Param(name))
	return id
}
