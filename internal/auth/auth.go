package auth

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/sessions"
	"github.com/vlatan/media-hub/internal/config"
	"github.com/vlatan/media-hub/internal/models"
	"github.com/vlatan/media-hub/internal/repositories/users"
	"github.com/vlatan/media-hub/internal/store"
	"github.com/vlatan/media-hub/internal/tokens"
	"golang.org/x/crypto/bcrypt"
)

// Users looks up the accounts able to sign in
type Users interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type ChangeKind int

const (
	SignedIn ChangeKind = iota + 1
	SignedOut
)

func (k ChangeKind) String() string {
	switch k {
	case SignedIn:
		return "signed in"
	case SignedOut:
		return "signed out"
	default:
		return "unknown"
	}
}

// Change is delivered to the subscribers on every sign in and sign out
type Change struct {
	Kind   ChangeKind
	Viewer *models.Viewer
}

type Service struct {
	users  Users
	store  sessions.Store
	tokens *tokens.Issuer
	config *config.Config
	admins models.AdminList

	mu        sync.Mutex
	listeners []func(Change)
}

func New(
	users Users,
	store sessions.Store,
	tokens *tokens.Issuer,
	config *config.Config,
) *Service {
	return &Service{
		users:  users,
		store:  store,
		tokens: tokens,
		config: config,
		admins: models.AdminList(config.AdminEmails),
	}
}

// CurrentViewer derives the viewer from the bearer token if any,
// otherwise from the user session.
func (s *Service) CurrentViewer(r *http.Request) *models.Viewer {

	if raw, ok := bearerToken(r); ok {
		claims, err := s.tokens.Verify(raw)
		if err != nil {
			log.Printf("rejected bearer token on URI '%s'; %v", r.RequestURI, err)
			return models.NewViewer("", "", s.admins)
		}
		return models.NewViewer(claims.Subject, claims.Email, s.admins)
	}

	// No session cookie, no need to touch the store
	if _, err := r.Cookie(s.config.UserSessionName); err != nil {
		return models.NewViewer("", "", s.admins)
	}

	session, err := s.store.Get(r, s.config.UserSessionName)
	if err != nil {
		log.Printf("failed to get the user session on URI '%s'; %v", r.RequestURI, err)
		return models.NewViewer("", "", s.admins)
	}

	userID, _ := session.Values["UserID"].(string)
	email, _ := session.Values["Email"].(string)
	return models.NewViewer(userID, email, s.admins)
}

// Authenticate checks the credentials without touching the session
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.Viewer, error) {

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, &AuthError{Code: CodeMissingCredentials, Err: ErrMissingCredentials}
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, users.ErrUserNotFound) {
		return nil, &AuthError{Code: CodeUserNotFound, Err: ErrNoAccount}
	}

	if err != nil {
		return nil, &AuthError{Code: CodeOther, Err: store.Classify("get user", err)}
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return nil, &AuthError{Code: CodeWrongPassword, Err: ErrWrongPassword}
	}

	if err != nil {
		return nil, &AuthError{Code: CodeOther, Err: err}
	}

	return models.NewViewer(user.ID, user.Email, s.admins), nil
}

// SignIn authenticates the user and stores the identity in the session.
// Members are turned away unless member login is allowed.
func (s *Service) SignIn(w http.ResponseWriter, r *http.Request, email, password string) (*models.Viewer, error) {

	viewer, err := s.Authenticate(r.Context(), email, password)
	if err != nil {
		return nil, err
	}

	if err = s.allowed(viewer); err != nil {
		if sErr := s.SignOut(w, r); sErr != nil {
			log.Printf("failed to clear the session of a member; %v", sErr)
		}
		return nil, err
	}

	// Get a session. We're ignoring the error resulted from decoding an
	// existing session: Get() always returns a session, even if empty map[]
	session, _ := s.store.Get(r, s.config.UserSessionName)

	session.Values["UserID"] = viewer.UserID
	session.Values["Email"] = viewer.Email

	if err = session.Save(r, w); err != nil {
		return nil, &AuthError{Code: CodeOther, Err: err}
	}

	s.notify(Change{Kind: SignedIn, Viewer: viewer})
	return viewer, nil
}

// SignOut deletes the user session
func (s *Service) SignOut(w http.ResponseWriter, r *http.Request) error {

	viewer := s.CurrentViewer(r)

	session, _ := s.store.Get(r, s.config.UserSessionName)
	session.Options.MaxAge = -1
	session.Values = make(map[any]any)
	if err := session.Save(r, w); err != nil {
		return err
	}

	if viewer.IsAuthenticated() {
		s.notify(Change{Kind: SignedOut, Viewer: viewer})
	}

	return nil
}

// Token authenticates the user and issues an API bearer token.
// The same admin policy as for the session sign in applies.
func (s *Service) Token(ctx context.Context, email, password string) (string, time.Time, error) {

	viewer, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", time.Time{}, err
	}

	if err = s.allowed(viewer); err != nil {
		return "", time.Time{}, err
	}

	return s.IssueToken(viewer)
}

// IssueToken creates an API bearer token for the viewer
func (s *Service) IssueToken(viewer *models.Viewer) (string, time.Time, error) {
	return s.tokens.Issue(viewer.UserID, viewer.Email)
}

// allowed turns away members unless member login is allowed
func (s *Service) allowed(viewer *models.Viewer) error {
	if viewer.IsAdmin() || s.config.AllowMemberLogin {
		return nil
	}
	return &AuthError{Code: CodeAccessDenied, Err: ErrAccessDenied}
}

// OnChange registers a subscriber to the sign in and sign out events
func (s *Service) OnChange(fn func(Change)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// notify runs the subscribers one at a time, never overlapping
func (s *Service) notify(change Change) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, fn := range s.listeners {
		fn(change)
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
