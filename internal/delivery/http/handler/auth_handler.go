package handler

import (
	"errors"

	"nanny-match/internal/delivery/http/dto"
	"nanny-match/internal/delivery/http/middleware"
	"nanny-match/internal/pkg/response"
	"nanny-match/internal/usecase"
	ucauth "nanny-match/internal/usecase/auth"
	"nanny-match/internal/usecase/otp"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc  usecase.AuthUsecase
	otp usecase.OTPUsecase
}

type registerRequest struct {
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type sendOTPRequest struct {
	Phone   string `json:"phone"`
	Purpose string `json:"purpose"`
}

type verifyOTPRequest struct {
	Phone   string `json:"phone"`
	Code    string `json:"code"`
	Purpose string `json:"purpose"`
}

func NewAuthHandler(uc usecase.AuthUsecase, otpUC usecase.OTPUsecase) *AuthHandler {
	return &AuthHandler{uc: uc, otp: otpUC}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/refresh", h.Refresh)
	if h.otp != nil {
		r.Post("/send-otp", h.SendOTP)
		r.Post("/verify-otp", h.VerifyOTP)
	}
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req registerRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	usr, access, refresh, err := h.uc.Register(c.Context(), ucauth.RegisterInput{
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
		Role:      req.Role,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	data := dto.AuthResponse{User: dto.NewUserProfileResponse(usr), TokenPairResponse: dto.NewTokenPair(access, refresh)}
	return response.Success(c, fiber.StatusCreated, "Registered", data)
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	usr, access, refresh, err := h.uc.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Phone: req.Phone, Password: req.Password})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	data := dto.AuthResponse{User: dto.NewUserProfileResponse(usr), TokenPairResponse: dto.NewTokenPair(access, refresh)}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

// Refresh takes the refresh token from the Authorization header, or from
// the JSON body when the header is absent.
func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	tok, ok := middleware.BearerToken(c.Get("Authorization"))
	if !ok {
		var req refreshRequest
		if len(c.Body()) > 0 {
			if err := c.Bind().Body(&req); err != nil {
				return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
			}
		}
		tok = req.RefreshToken
	}

	access, refresh, err := h.uc.Refresh(c.Context(), tok)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrRefreshTokenExpired):
			return middleware.NewAppError(fiber.StatusUnauthorized, "Refresh token expired", nil, err)
		case errors.Is(err, usecase.ErrInvalidRefreshToken):
			return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid refresh token", nil, err)
		case errors.Is(err, usecase.ErrUnauthorized):
			return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
		}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewTokenPair(access, refresh))
}

func (h *AuthHandler) SendOTP(c fiber.Ctx) error {
	var req sendOTPRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := h.otp.Send(c.Context(), req.Phone, req.Purpose); err != nil {
		return mapOTPError(err)
	}
	return response.Success(c, fiber.StatusOK, "Code sent", fiber.Map{"sent": true})
}

func (h *AuthHandler) VerifyOTP(c fiber.Ctx) error {
	var req verifyOTPRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := h.otp.Verify(c.Context(), req.Phone, req.Code, req.Purpose); err != nil {
		return mapOTPError(err)
	}
	return response.Success(c, fiber.StatusOK, "Code verified", fiber.Map{"verified": true})
}

func mapOTPError(err error) error {
	switch {
	case errors.Is(err, otp.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid phone number", nil, err)
	case errors.Is(err, otp.ErrTooManyRequests):
		return middleware.NewAppError(fiber.StatusTooManyRequests, "Code was sent recently, try again later", nil, err)
	case errors.Is(err, otp.ErrInvalidCode):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid or expired code", nil, err)
	case errors.Is(err, otp.ErrUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func mapAuthUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ucauth.ErrUserAlreadyExists):
		return middleware.NewAppError(fiber.StatusConflict, "User already registered", nil, err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid credentials", nil, err)
	case errors.Is(err, ucauth.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
