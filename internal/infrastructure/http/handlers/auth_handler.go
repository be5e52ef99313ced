package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/abraaosantosdeveloper/taskmanager/internal/application/auth"
	"github.com/abraaosantosdeveloper/taskmanager/internal/domain"
	domerrors "github.com/abraaosantosdeveloper/taskmanager/internal/domain/errors"
	"github.com/abraaosantosdeveloper/taskmanager/internal/infrastructure/http/middleware"
)

type AuthHandler struct {
	register      *auth.RegisterUser
	login         *auth.Login
	updateProfile *auth.UpdateProfile
	validate      *validator.Validate
	log           zerolog.Logger
}

func NewAuthHandler(register *auth.RegisterUser, login *auth.Login, updateProfile *auth.UpdateProfile, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		register:      register,
		login:         login,
		updateProfile: updateProfile,
		validate:      validator.New(),
		log:           log,
	}
}

// userJSON is the public user shape; the password hash never appears here.
type userJSON struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at,omitempty"`
}

func publicUser(u *domain.User, withCreatedAt bool) userJSON {
	out := userJSON{ID: u.ID, Email: u.Email, Name: u.Name}
	if withCreatedAt {
		out.CreatedAt = u.CreatedAt.Format(time.RFC3339)
	}
	return out
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,min=6,max=128"`
		Name     string `json:"name" validate:"required,max=100"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	body.Email = SanitizeEmail(body.Email)
	body.Password = SanitizePassword(body.Password)
	body.Name = strings.TrimSpace(body.Name)
	if errs := h.fieldErrors(&body); len(errs) > 0 {
		writeValidationError(w, errs)
		return
	}
	result, err := h.register.Execute(r.Context(), auth.RegisterUserInput{
		Email:    body.Email,
		Password: body.Password,
		Name:     body.Name,
	})
	if err != nil {
		middleware.RecordAuthAttempt("register", false)
		switch {
		case errors.Is(err, domerrors.ErrEmailTaken):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, domerrors.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.log.Error().Err(err).Msg("register failed")
			writeError(w, http.StatusInternalServerError, "Registration failed")
		}
		return
	}
	middleware.RecordAuthAttempt("register", true)
	writeSuccess(w, http.StatusCreated, "User registered successfully", map[string]interface{}{
		"token": result.Token,
		"user":  publicUser(result.User, false),
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	body.Email = SanitizeEmail(body.Email)
	body.Password = SanitizePassword(body.Password)
	if errs := h.fieldErrors(&body); len(errs) > 0 {
		writeValidationError(w, errs)
		return
	}
	result, err := h.login.Execute(r.Context(), auth.LoginInput{
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		middleware.RecordAuthAttempt("login", false)
		if errors.Is(err, domerrors.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		h.log.Error().Err(err).Msg("login failed")
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}
	middleware.RecordAuthAttempt("login", true)
	writeSuccess(w, http.StatusOK, "Login successful", map[string]interface{}{
		"token": result.Token,
		"user":  publicUser(result.User, false),
	})
}

// Me returns the authenticated user. Requires the request gate.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized access")
		return
	}
	writeSuccess(w, http.StatusOK, "Success", publicUser(user, true))
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized access")
		return
	}
	var body struct {
		Name            string `json:"name" validate:"required,max=100"`
		Email           string `json:"email" validate:"required,email,max=254"`
		CurrentPassword string `json:"current_password" validate:"omitempty,max=128"`
		NewPassword     string `json:"new_password" validate:"omitempty,min=6,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	body.Email = SanitizeEmail(body.Email)
	body.Name = strings.TrimSpace(body.Name)
	if errs := h.fieldErrors(&body); len(errs) > 0 {
		writeValidationError(w, errs)
		return
	}
	updated, err := h.updateProfile.Execute(r.Context(), auth.UpdateProfileInput{
		UserID:          user.ID,
		Name:            body.Name,
		Email:           body.Email,
		CurrentPassword: strings.TrimSpace(body.CurrentPassword),
		NewPassword:     strings.TrimSpace(body.NewPassword),
	})
	if err != nil {
		switch {
		case errors.Is(err, domerrors.ErrUserNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domerrors.ErrEmailTaken):
			writeError(w, http.StatusConflict, "Email already in use")
		case errors.Is(err, domerrors.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "Invalid profile data")
		default:
			h.log.Error().Err(err).Msg("update profile failed")
			writeError(w, http.StatusInternalServerError, "Profile update failed")
		}
		return
	}
	writeSuccess(w, http.StatusOK, "Profile updated successfully", publicUser(updated, true))
}

// fieldErrors runs struct validation and flattens failures into a
// field-keyed map for the 422 envelope.
func (h *AuthHandler) fieldErrors(v interface{}) map[string]string {
	err := h.validate.Struct(v)
	if err == nil {
		return nil
	}
	out := make(map[string]string)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["body"] = err.Error()
		return out
	}
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			out[field] = fmt.Sprintf("%s is required", fieldLabel(field))
		case "email":
			out[field] = "Invalid email address"
		case "min":
			out[field] = fmt.Sprintf("%s must be at least %s characters", fieldLabel(field), fe.Param())
		case "max":
			out[field] = fmt.Sprintf("%s must be at most %s characters", fieldLabel(field), fe.Param())
		default:
			out[field] = fmt.Sprintf("%s is invalid", fieldLabel(field))
		}
	}
	return out
}
