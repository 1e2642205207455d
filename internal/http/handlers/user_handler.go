package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/staffhub/staffing-backend/internal/domain/repository"
	"github.com/staffhub/staffing-backend/internal/domain/valueobject"
	"github.com/staffhub/staffing-backend/internal/usecase/user"
	"github.com/staffhub/staffing-backend/internal/validation"
)

// UserHandler предоставляет HTTP слой для пользователей и профилей.
type UserHandler struct {
	getUser      *user.GetUserUseCase
	filterUsers  *user.FilterUsersUseCase
	changeStatus *user.ChangeUserStatusUseCase
	users        repository.UserQueryRepository
	userCommands repository.UserCommandRepository
}

// NewUserHandler создаёт хэндлер.
func NewUserHandler(
	getUser *user.GetUserUseCase,
	filterUsers *user.FilterUsersUseCase,
	changeStatus *user.ChangeUserStatusUseCase,
	users repository.UserQueryRepository,
	userCommands repository.UserCommandRepository,
) *UserHandler {
	return &UserHandler{
		getUser:      getUser,
		filterUsers:  filterUsers,
		changeStatus: changeStatus,
		users:        users,
		userCommands: userCommands,
	}
}

// GetMe обрабатывает GET /profile — пользователь с профилем роли.
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	found, err := h.getUser.Execute(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{"user": toUserResponse(found)}

	switch found.Role {
	case valueobject.RoleContractor:
		profile, err := h.users.GetContractor(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		if profile != nil {
			resp["profile"] = gin.H{"company": profile.Company, "about": profile.About}
		}
	case valueobject.RoleContractee:
		profile, err := h.users.GetContractee(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		if profile != nil {
			resp["profile"] = gin.H{
				"gender":     string(profile.Gender),
				"birth_date": profile.BirthDate,
				"city":       profile.City,
			}
		}
	case valueobject.RoleAdmin:
		profile, err := h.users.GetAdmin(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		if profile != nil {
			resp["profile"] = gin.H{"contractor_id": profile.ContractorID}
		}
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateMe обрабатывает PUT /profile — правка профиля своей роли.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, role, err := actor(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req struct {
		Company string `json:"company"`
		About   string `json:"about"`
		City    string `json:"city"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch role {
	case valueobject.RoleContractor:
		profile, err := h.users.GetContractor(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		if profile == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "профиль заказчика не найден"})
			return
		}
		if req.Company != "" {
			if err := validation.ValidateCompany(req.Company); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			profile.Company = req.Company
		}
		if req.About != "" {
			profile.About = req.About
		}
		if err := h.userCommands.UpdateContractor(c.Request.Context(), profile); err != nil {
			respondError(c, err)
			return
		}
	case valueobject.RoleContractee:
		profile, err := h.users.GetContractee(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		if profile == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "профиль исполнителя не найден"})
			return
		}
		if req.City != "" {
			if err := validation.ValidateCity(req.City); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			profile.City = req.City
		}
		if err := h.userCommands.UpdateContractee(c.Request.Context(), profile); err != nil {
			respondError(c, err)
			return
		}
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "действие недоступно для данной роли"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "профиль обновлён"})
}

// GetUser обрабатывает GET /users/:id.
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, _ := uuid.Parse(c.Param("id"))

	found, err := h.getUser.Execute(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(found))
}

// ListUsers обрабатывает GET /users — только для администраторов.
func (h *UserHandler) ListUsers(c *gin.Context) {
	_, role, err := actor(c)
	if err != nil {
		respondError(c, err)
		return
	}

	filter := repository.UserFilter{}
	filter.Limit, filter.Offset = pagination(c)

	if roleStr := c.Query("role"); roleStr != "" {
		wanted, err := valueobject.NewRole(roleStr)
		if err != nil {
			respondError(c, err)
			return
		}
		filter.Role = &wanted
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status, err := valueobject.NewUserStatus(statusStr)
		if err != nil {
			respondError(c, err)
			return
		}
		filter.Status = &status
	}

	users, err := h.filterUsers.Execute(c.Request.Context(), role, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]userResponse, 0, len(users))
	for i := range users {
		resp = append(resp, toUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, gin.H{"users": resp})
}

// ChangeStatus обрабатывает PUT /users/:id/status — решения
// администратора по учётным записям.
func (h *UserHandler) ChangeStatus(c *gin.Context) {
	_, role, err := actor(c)
	if err != nil {
		respondError(c, err)
		return
	}

	userID, _ := uuid.Parse(c.Param("id"))

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := valueobject.NewUserStatus(req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	changed, err := h.changeStatus.Execute(c.Request.Context(), userID, role, status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(changed))
}
