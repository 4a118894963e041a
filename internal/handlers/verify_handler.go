package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"apicrete/internal/services"
)

type VerifyHandler struct {
	verification services.VerificationService
}

func NewVerifyHandler(verification services.VerificationService) *VerifyHandler {
	return &VerifyHandler{verification: verification}
}

type VerifyOTPRequest struct {
	Email   string `json:"email" binding:"required,email"`
	OTPCode string `json:"otp_code" binding:"required,len=6"`
}

// @Summary      Подтверждение email по OTP
// @Description  Проверяет код и активирует аккаунт; при истёкшем коде отправляет новый
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        verify  body      handlers.VerifyOTPRequest  true  "Email и код"
// @Success      200     {object}  map[string]string
// @Failure      400     {object}  map[string]string
// @Router       /verify-otp [post]
func (h *VerifyHandler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err)})
		return
	}

	_, err := h.verification.VerifyOTP(req.Email, req.OTPCode)
	if err != nil {
		switch err {
		case services.ErrInvalidEmailOrCode:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email or OTP."})
		case services.ErrCodeExpired:
			c.JSON(http.StatusBadRequest, gin.H{"error": "OTP expired. New OTP sent to email."})
		case services.ErrCodeIncorrect:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Incorrect OTP."})
		default:
			log.Printf("[handlers][verify-otp] failed for email=%q: %v", req.Email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed, please try again later."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email verified and account activated."})
}
