package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"FINDME_BACK-END/internal/config"
	"FINDME_BACK-END/internal/dto"
	"FINDME_BACK-END/internal/middleware"
	"FINDME_BACK-END/internal/utils"
	"FINDME_BACK-END/internal/verification"
)

// AuthHandler handles registration and login
type AuthHandler struct {
	db     *pgxpool.Pool
	ledger *verification.Ledger
	config *config.Config
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(db *pgxpool.Pool, ledger *verification.Ledger, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, ledger: ledger, config: cfg}
}

// RequestVerification sends a registration verification code
// @Summary Request registration verification code
// @Description Send a 6-digit verification code to the email before registration
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.RequestVerificationRequest true "Email address"
// @Success 200 {object} dto.RequestVerificationResponse "Verification code sent"
// @Failure 400 {object} dto.ErrorResponse "Invalid or already registered email"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/register/verify [post]
func (h *AuthHandler) RequestVerification(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.RequestVerificationRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid email", "A valid email address is required")
		return
	}

	// A registered email cannot request a code again
	var existingID uuid.UUID
	err := h.db.QueryRow(r.Context(),
		"SELECT id FROM users WHERE email = $1", req.Email).Scan(&existingID)
	if err == nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Email already registered", "An account with this email already exists")
		return
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	if err := h.ledger.Request(r.Context(), req.Email); err != nil {
		// The code stays stored; a retry for the same email overwrites it
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to send verification code", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.RequestVerificationResponse{
		Message:   "Verification code has been sent to your email",
		Email:     req.Email,
		ExpiresIn: "10 minutes",
	})
}

// Register handles user registration
// @Summary Register a new user
// @Description Create a new account with email, password, and a valid verification code
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration data"
// @Success 201 {object} dto.RegisterResponse "User created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid data or bad/expired code"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.RegisterRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" || req.VerificationCode == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing required fields", "Email, password, and verificationCode are required")
		return
	}
	if len(req.Password) < 6 {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Password too short", "Password must be at least 6 characters long")
		return
	}

	if !h.ledger.VerifyAndConsume(r.Context(), req.Email, req.VerificationCode) {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid verification code", "The verification code is invalid or has expired")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to hash password", err.Error())
		return
	}

	userID := uuid.New()
	_, err = h.db.Exec(r.Context(),
		`INSERT INTO users (id, email, password_hash, created_at)
		 VALUES ($1, $2, $3, $4)`,
		userID, req.Email, string(hashedPassword), time.Now())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			utils.WriteErrorResponse(w, http.StatusConflict, "Email already registered", "An account with this email already exists")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to create user", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.RegisterResponse{
		ID:      userID.String(),
		Message: "User registered successfully",
	})
}

// Login handles user login
// @Summary Login user
// @Description Authenticate with email and password, returns a bearer token
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.LoginRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	if req.Email == "" || req.Password == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing required fields", "Email and password are required")
		return
	}

	// Unknown email and wrong password must produce the same response body
	var userID uuid.UUID
	var passwordHash string
	err := h.db.QueryRow(r.Context(),
		"SELECT id, password_hash FROM users WHERE email = $1",
		req.Email).Scan(&userID, &passwordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid credentials", "Email or password is incorrect")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid credentials", "Email or password is incorrect")
		return
	}

	token, err := middleware.GenerateToken(userID, req.Email, &h.config.JWT)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to generate token", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.LoginResponse{Token: token})
}
