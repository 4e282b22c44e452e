package handlers

import (
	"activity-map-service/internal/api/dto"
	"activity-map-service/internal/auth"
	"activity-map-service/internal/ports"
	"activity-map-service/internal/services"
	"log"
	"net/http"
	"time"
)

const stateCookie = "oauth_state"

// AuthHandler runs the OAuth authorization-code flow and manages the session cookie.
type AuthHandler struct {
	Provider   ports.AuthProvider
	Store      ports.TokenStore
	Activities *services.ActivityService
	Sessions   *auth.Sessions
	// Mark cookies Secure; set when served over HTTPS.
	SecureCookies bool
}

// Login redirects the browser to the provider's consent page.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	state, err := h.Sessions.IssueState()
	if err != nil {
		log.Printf("issue oauth state failed: err=%v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	http.SetCookie(w, h.cookie(stateCookie, state, 10*time.Minute))
	http.Redirect(w, r, h.Provider.AuthURL(state), http.StatusFound)
}

// Callback exchanges the authorization code, stores the credentials and opens a session.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if reason := q.Get("error"); reason != "" {
		log.Printf("authorization denied: reason=%s", reason)
		writeError(w, r, http.StatusUnauthorized, "authorization denied")
		return
	}

	code := q.Get("code")
	if code == "" {
		writeError(w, r, http.StatusBadRequest, "missing authorization code")
		return
	}

	state := q.Get("state")
	c, err := r.Cookie(stateCookie)
	if err != nil || c.Value != state || h.Sessions.VerifyState(state) != nil {
		writeError(w, r, http.StatusBadRequest, "invalid oauth state")
		return
	}
	http.SetCookie(w, h.cookie(stateCookie, "", -1))

	creds, err := h.Provider.ExchangeCode(r.Context(), code)
	if err != nil {
		log.Printf("exchange code failed: err=%v", err)
		writeError(w, r, http.StatusBadGateway, "strava authorization failed")
		return
	}

	if err := h.Store.Put(r.Context(), creds); err != nil {
		log.Printf("store credentials failed: athlete_id=%d err=%v", creds.AthleteID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	// A new login starts from fresh data.
	if err := h.Activities.Forget(r.Context(), creds.AthleteID); err != nil {
		log.Printf("invalidate activity cache failed: athlete_id=%d err=%v", creds.AthleteID, err)
	}

	token, err := h.Sessions.Issue(creds.AthleteID)
	if err != nil {
		log.Printf("issue session failed: athlete_id=%d err=%v", creds.AthleteID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	http.SetCookie(w, h.cookie(sessionCookie, token, h.Sessions.TTL()))
	writeJSON(w, r, http.StatusOK, dto.SessionResponse{
		AthleteID: creds.AthleteID,
		ExpiresIn: int64(h.Sessions.TTL().Seconds()),
		Token:     token,
	})
}

// Logout forgets the athlete's credentials and cached activities and clears the cookie.
// Without a valid session it only clears the cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if claims, err := h.Sessions.Verify(sessionToken(r)); err == nil {
		if err := h.Store.Delete(r.Context(), claims.AthleteID); err != nil {
			log.Printf("delete credentials failed: athlete_id=%d err=%v", claims.AthleteID, err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		if err := h.Activities.Forget(r.Context(), claims.AthleteID); err != nil {
			log.Printf("invalidate activity cache failed: athlete_id=%d err=%v", claims.AthleteID, err)
		}
	}

	http.SetCookie(w, h.cookie(sessionCookie, "", -1))
	w.WriteHeader(http.StatusNoContent)
}

// A negative ttl deletes the cookie.
func (h *AuthHandler) cookie(name, value string, ttl time.Duration) *http.Cookie {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl < 0 {
		c.MaxAge = -1
	} else {
		c.MaxAge = int(ttl.Seconds())
	}
	return c
}
