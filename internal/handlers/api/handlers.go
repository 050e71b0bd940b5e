package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/vlatan/media-hub/internal/auth"
	"github.com/vlatan/media-hub/internal/models"
	"github.com/vlatan/media-hub/internal/playlist"
	"github.com/vlatan/media-hub/internal/store"
)

type listResponse struct {
	Submissions models.Submissions `json:"submissions"`
}

type createResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type tokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

// List the submissions, newest first
func (s *Service) ListHandler(w http.ResponseWriter, r *http.Request) {

	ctx, cancel := context.WithTimeout(r.Context(), s.config.StoreTimeout)
	defer cancel()

	// Admins see the list as it is in the store
	if models.GetViewerFromContext(r).IsAdmin() {
		ctx = store.WithoutCache(ctx)
	}

	submissions, err := s.store.List(ctx)
	if err != nil {
		log.Printf("failed to list the submissions on URI '%s'; %v", r.RequestURI, err)
		s.ui.JSONError(w, r, statusOf(err), playlist.LoadErrorMessage(err))
		return
	}

	if submissions == nil {
		submissions = models.Submissions{}
	}

	s.ui.WriteJSON(w, r, http.StatusOK, listResponse{Submissions: submissions})
}

// Create a submission out of the JSON body
func (s *Service) CreateHandler(w http.ResponseWriter, r *http.Request) {

	var in playlist.SubmitInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.ui.JSONError(w, r, http.StatusBadRequest, "Malformed JSON body.")
		return
	}

	id, err := s.submitter.Submit(r.Context(), in.Trimmed())
	if err != nil {
		message := playlist.Message(err)
		if !playlist.IsValidation(err) {
			log.Printf("failed to save the submission on URI '%s'; %v", r.RequestURI, err)
			message = playlist.SaveErrorMessage(err)
		}
		s.ui.JSONError(w, r, statusOf(err), message)
		return
	}

	s.ui.WriteJSON(w, r, http.StatusCreated, createResponse{
		ID:      id,
		Message: playlist.SavedMessage,
	})
}

// Delete the submission, confirmed with "?confirm=yes"
func (s *Service) DeleteHandler(w http.ResponseWriter, r *http.Request) {

	req := playlist.ActionRequest{
		Action:    playlist.Delete,
		ID:        r.PathValue("id"),
		Viewer:    models.GetViewerFromContext(r),
		Confirmed: r.URL.Query().Get("confirm") == "yes",
	}

	effect, err := s.dispatcher.Dispatch(r.Context(), req)
	if err != nil {
		message := playlist.Message(err)
		if statusOf(err) >= http.StatusInternalServerError {
			log.Printf("failed to delete the submission '%s'; %v", req.ID, err)
			message = playlist.DeleteErrorMessage(err)
		}
		s.ui.JSONError(w, r, statusOf(err), message)
		return
	}

	if effect.Kind == playlist.Confirm {
		s.ui.JSONError(w, r, http.StatusPreconditionRequired, "Confirm the delete with ?confirm=yes.")
		return
	}

	s.ui.WriteJSON(w, r, http.StatusOK, messageResponse{Message: playlist.DeletedMessage})
}

// Exchange the credentials for a bearer token
func (s *Service) TokenHandler(w http.ResponseWriter, r *http.Request) {

	var in tokenRequest
	if err := decodeJSON(w, r, &in); err != nil {
		s.ui.JSONError(w, r, http.StatusBadRequest, "Malformed JSON body.")
		return
	}

	token, expires, err := s.tokens.Token(r.Context(), in.Email, in.Password)
	if err != nil {
		log.Printf("failed to issue a token on URI '%s'; %v", r.RequestURI, err)
		s.ui.JSONError(w, r, authStatusOf(err), auth.Message(err))
		return
	}

	s.ui.WriteJSON(w, r, http.StatusOK, tokenResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expires,
	})
}

// decodeJSON decodes the limited body, unknown fields are an error
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// statusOf maps the domain errors to the HTTP status codes
func statusOf(err error) int {
	switch {
	case errors.Is(err, playlist.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, playlist.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, playlist.ErrUnknownAction):
		return http.StatusBadRequest
	case playlist.IsValidation(err):
		return http.StatusUnprocessableEntity
	}

	switch store.KindOf(err) {
	case store.PermissionDenied:
		return http.StatusForbidden
	case store.Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func authStatusOf(err error) int {

	var authErr *auth.AuthError
	if !errors.As(err, &authErr) {
		return http.StatusInternalServerError
	}

	switch authErr.Code {
	case auth.CodeMissingCredentials:
		return http.StatusBadRequest
	case auth.CodeWrongPassword, auth.CodeUserNotFound:
		return http.StatusUnauthorized
	case auth.CodeAccessDenied:
		return http.StatusForbidden
	default:
		return statusOf(authErr.Err)
	}
}
