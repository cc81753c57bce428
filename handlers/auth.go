package handlers

import (
	"authbox/models"
	"authbox/utils"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// SessionTTL is how long an issued token stays valid.
const SessionTTL = 24 * time.Hour

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// LoginHandler verifies credentials and issues an opaque session token.
//
// POST /login {username, password} -> 200 {token} | 401 {message}
func LoginHandler(w http.ResponseWriter, r *http.Request, db *pgxpool.Pool, redisClient *redis.Client) {
	if r.Method != http.MethodPost {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "missing credentials")
		return
	}

	user, err := utils.GetUserByUsername(req.Username, db)
	if err != nil {
		if errors.Is(err, utils.ErrUserNotFound) {
			// Same message as a bad password so usernames can't be probed.
			writeMessage(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		log.Println("login lookup failed: ", err)
		writeMessage(w, http.StatusInternalServerError, "internal error. try again.")
		return
	}

	if !utils.CheckPasswordHash(req.Password, string(user.PasswordHash)) {
		log.Println("password verification failed for user: ", req.Username)
		writeMessage(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token := utils.GenerateToken(32)

	session := models.Session{
		Token:        token,
		UserID:       user.ID.String(),
		CreatedAt:    time.Now().Format(time.RFC3339),
		ExpiresAt:    time.Now().Add(SessionTTL).Format(time.RFC3339),
		LastActivity: time.Now().Format(time.RFC3339),
		UserAgent:    utils.GetUserAgent(r),
		IPAddress:    utils.GetIP(r),
	}

	if err := utils.StoreSession(redisClient, session, SessionTTL); err != nil {
		log.Println("failed to store session: ", err)
		writeMessage(w, http.StatusInternalServerError, "internal error. try again.")
		return
	}

	log.Println("login successful for user: ", req.Username)
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// RegisterHandler creates a new account. It does not log the user in; no
// token is issued here.
//
// POST /register {username, password, email?} -> 201 {message} | 400/409 {message}
func RegisterHandler(w http.ResponseWriter, r *http.Request, db *pgxpool.Pool) {
	if r.Method != http.MethodPost {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := utils.ValidateUsername(req.Username); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Email != "" {
		if err := utils.ValidateEmail(req.Email); err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid email address")
			return
		}
	}

	inUse, err := utils.UsernameInUse(req.Username, db)
	if err != nil {
		log.Println("error checking username: ", err)
		writeMessage(w, http.StatusInternalServerError, "internal error. try again.")
		return
	}
	if inUse {
		writeMessage(w, http.StatusConflict, "username is already taken")
		return
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Println("error hashing password: ", err)
		writeMessage(w, http.StatusInternalServerError, "internal error. try again.")
		return
	}

	userID, err := utils.AddUser(req.Username, req.Email, passwordHash, db)
	if err != nil {
		log.Println("add user error: ", err, " user: ", req.Username)
		writeMessage(w, http.StatusInternalServerError, "error creating account. please contact admin.")
		return
	}
	log.Println("registered user: ", req.Username, " id: ", userID)

	if req.Email != "" {
		go func() {
			if err := utils.SendWelcomeEmail(req.Email, req.Username); err != nil {
				log.Println("error sending welcome email to: ", req.Email, " |error: ", err)
			}
		}()
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "account created"})
}

// LogoutHandler revokes the bearer token's session. Clients that only clear
// their local token still end up logged out once the session TTL expires; this
// endpoint lets them revoke it immediately.
//
// POST /logout -> 200 {message} | 401 {message}
func LogoutHandler(w http.ResponseWriter, r *http.Request, redisClient *redis.Client) {
	if r.Method != http.MethodPost {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	token := utils.BearerToken(r)
	if token == "" {
		writeMessage(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	if err := utils.DeleteSession(redisClient, token); err != nil {
		log.Println("error deleting session: ", err)
		writeMessage(w, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// MeHandler returns the profile of the user owning the bearer token.
//
// GET /user/me -> 200 {user} | 401 {message}
func MeHandler(w http.ResponseWriter, r *http.Request, db *pgxpool.Pool, redisClient *redis.Client) {
	if r.Method != http.MethodGet {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	token := utils.BearerToken(r)
	if token == "" {
		writeMessage(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	valid, err := utils.ValidateSession(redisClient, token)
	if err != nil {
		log.Println("error validating session: ", err)
		writeMessage(w, http.StatusInternalServerError, "internal error. try again.")
		return
	}
	if !valid {
		writeMessage(w, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	userID, err := utils.GetUserIDFromToken(redisClient, token)
	if err != nil {
		log.Println("error getting user ID from token: ", err)
		writeMessage(w, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	user, err := utils.GetUserByID(userID, db)
	if err != nil {
		if errors.Is(err, utils.ErrUserNotFound) {
			// Session points at a deleted account; treat as unauthorized.
			writeMessage(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		log.Println("error loading user: ", err)
		writeMessage(w, http.StatusInternalServerError, "internal error. try again.")
		return
	}

	if err := utils.UpdateLastActivity(redisClient, token); err != nil {
		log.Println("error updating last activity: ", err)
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}
