package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/dmitrijs2005/userboard/internal/common"
	"github.com/dmitrijs2005/userboard/internal/server/models"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps service errors onto the HTTP taxonomy. Anything outside
// the known sentinels is a datastore/connectivity failure: it is logged and
// collapsed to a generic 500 with no internal detail.
func (s *Server) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "username and password are required"})
	case errors.Is(err, common.ErrorLastAdmin):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "cannot delete the last admin user"})
	case errors.Is(err, common.ErrorUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
	case errors.Is(err, common.ErrorForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "forbidden"})
	case errors.Is(err, common.ErrorNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "user not found"})
	case errors.Is(err, common.ErrorAlreadyExists):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "username already exists"})
	default:
		s.logger.Error(ctx, "request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// readCredentials accepts a JSON body or a classic urlencoded form.
func readCredentials(r *http.Request) (credentials, error) {
	var creds credentials

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			return creds, common.ErrorValidation
		}
		return creds, nil
	}

	if err := r.ParseForm(); err != nil {
		return creds, common.ErrorValidation
	}
	creds.Username = r.PostFormValue("username")
	creds.Password = r.PostFormValue("password")
	return creds, nil
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.sessions.TTL().Seconds()),
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// startSession issues a session for the user and hands the token to the
// client as a cookie.
func (s *Server) startSession(w http.ResponseWriter, r *http.Request, user *models.User) error {
	token, err := s.sessions.Create(r.Context(), user)
	if err != nil {
		return err
	}
	s.setSessionCookie(w, token)
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	session, _, err := s.resolveSession(r)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	if session != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {

	creds, err := readCredentials(r)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.logger.Info(r.Context(), "login attempt", "username", creds.Username, "remote_addr", r.RemoteAddr)

	user, err := s.users.Authenticate(r.Context(), creds.Username, creds.Password)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	if err := s.startSession(w, r, user); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Message: "login successful", Redirect: "/dashboard"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {

	creds, err := readCredentials(r)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.logger.Info(r.Context(), "registration attempt", "username", creds.Username, "remote_addr", r.RemoteAddr)

	user, err := s.users.Register(r.Context(), creds.Username, creds.Password)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.logger.Info(r.Context(), "registered", "username", user.Username, "is_admin", user.IsAdmin)

	if err := s.startSession(w, r, user); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{Message: "registration successful", Redirect: "/dashboard"})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {

	session := sessionFrom(r)

	if err := s.sessions.Destroy(r.Context(), session.Token); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {

	users, err := s.users.List(r.Context())
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	list := make([]userResponse, 0, len(users))
	for _, u := range users {
		list = append(list, userResponse{
			ID:        u.ID,
			Username:  u.Username,
			IsAdmin:   u.IsAdmin,
			CreatedAt: u.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {

	targetID := ps.ByName("id")
	session := sessionFrom(r)

	if err := s.users.Delete(r.Context(), targetID, session.UserID); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.logger.Info(r.Context(), "user deleted", "target_id", targetID, "requested_by", session.UserID)

	writeJSON(w, http.StatusOK, messageResponse{Message: "user deleted"})
}
