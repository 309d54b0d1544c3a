package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/dmitrijs2005/userboard/internal/common"
	"github.com/dmitrijs2005/userboard/internal/server/models"
)

type ctxKey string

const (
	ctxSession ctxKey = "session"
	ctxUser    ctxKey = "user"
)

func sessionFrom(r *http.Request) *models.Session {
	if v := r.Context().Value(ctxSession); v != nil {
		if s, ok := v.(*models.Session); ok {
			return s
		}
	}
	return nil
}

func userFrom(r *http.Request) *models.User {
	if v := r.Context().Value(ctxUser); v != nil {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}

// resolveSession reads the session cookie and resolves it against the
// session store, then re-reads the user row. A session whose user row is
// gone is destroyed on the spot and treated as absent. The returned user is
// the current row, not the login-time snapshot.
func (s *Server) resolveSession(r *http.Request) (*models.Session, *models.User, error) {

	cookie, err := r.Cookie(s.cookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil, nil
	}

	session, err := s.sessions.Resolve(r.Context(), cookie.Value)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	user, err := s.users.GetByID(r.Context(), session.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// Dangling session: the user was deleted while the session
			// lived on.
			_ = s.sessions.Destroy(r.Context(), session.Token)
			return nil, nil, nil
		}
		return nil, nil, err
	}

	return session, user, nil
}

// requireSession admits only authenticated callers. Browser routes are
// redirected to the login entry point; API routes get a 403 instead.
func (s *Server) requireSession(next httprouter.Handle, api bool) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {

		session, user, err := s.resolveSession(r)
		if err != nil {
			s.writeError(r.Context(), w, err)
			return
		}

		if session == nil {
			if api {
				writeJSON(w, http.StatusForbidden, errorResponse{Error: "authentication required"})
			} else {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
			}
			return
		}

		ctx := context.WithValue(r.Context(), ctxSession, session)
		ctx = context.WithValue(ctx, ctxUser, user)
		next(w, r.WithContext(ctx), ps)
	}
}

// requireAdmin admits only administrators. The check runs against the user
// row read during session resolution, not the session's login-time admin
// snapshot, so a revoked admin is rejected even with a stale session.
func (s *Server) requireAdmin(next httprouter.Handle) httprouter.Handle {
	return s.requireSession(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {

		user := userFrom(r)
		if user == nil || !user.IsAdmin {
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "admin privileges required"})
			return
		}

		next(w, r, ps)
	}, true)
}
