package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"apicrete/internal/services"
)

type RegisterHandler struct {
	registration services.RegistrationService
}

func NewRegisterHandler(registration services.RegistrationService) *RegisterHandler {
	return &RegisterHandler{registration: registration}
}

type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
}

// @Summary      Регистрация пользователя
// @Description  Создаёт неактивный аккаунт и отправляет OTP-код на email
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        register  body      handlers.RegisterRequest  true  "Данные регистрации"
// @Success      201       {object}  map[string]string
// @Failure      400       {object}  map[string]interface{}
// @Failure      502       {object}  map[string]string
// @Router       /register [post]
func (h *RegisterHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err)})
		return
	}

	meta := services.RequestMeta{
		XForwardedFor: c.GetHeader("X-Forwarded-For"),
		RemoteAddr:    c.Request.RemoteAddr,
	}

	user, err := h.registration.Register(services.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	}, meta)
	if err != nil {
		if err == services.ErrEmailTaken {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"email": "A user with this email already exists."}})
			return
		}
		log.Printf("[handlers][register] failed for email=%q: %v", req.Email, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Registration failed, please try again later."})
		return
	}

	log.Printf("[handlers][register] created user_id=%d", user.ID)
	c.JSON(http.StatusCreated, gin.H{"message": "Registered successfully. OTP sent to email."})
}
