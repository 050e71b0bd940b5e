package auth

import (
	"log"
	"net/http"

	"github.com/vlatan/media-hub/internal/auth"
	"github.com/vlatan/media-hub/internal/models"
	"github.com/vlatan/media-hub/internal/utils"
)

var successLogin = models.FlashMessage{
	Message:  "Login successful!",
	Category: "info",
}

var successLogout = models.FlashMessage{
	Message:  "Logged out.",
	Category: "info",
}

var failedLogout = models.FlashMessage{
	Message:  "Something went wrong. Logout failed!",
	Category: "error",
}

// Handle the login form
func (s *Service) LoginFormHandler(w http.ResponseWriter, r *http.Request) {

	data := models.GetDataFromContext(r)
	if data.CurrentViewer.IsAuthenticated() {
		http.Redirect(w, r, getRedirectPath(r), http.StatusSeeOther)
		return
	}

	data.Title = "Login"
	data.Form = &models.FormData{}
	s.ui.RenderHTML(w, r, "login.html", data)
}

// Handle the submitted credentials.
// A failed sign in renders the form back with the message.
func (s *Service) LoginHandler(w http.ResponseWriter, r *http.Request) {

	if err := r.ParseForm(); err != nil {
		log.Printf("failed to parse the login form on URI '%s'; %v", r.RequestURI, err)
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	email := r.PostForm.Get("email")
	viewer, err := s.auth.SignIn(w, r, email, r.PostForm.Get("password"))
	if err != nil {
		log.Printf("failed sign in on URI '%s'; %v", r.RequestURI, err)

		data := models.GetDataFromContext(r)
		data.Title = "Login"
		data.Form = &models.FormData{
			Email: email,
			Error: s.ui.PlainText(auth.Message(err)),
		}

		s.ui.RenderHTML(w, r, "login.html", data)
		return
	}

	log.Printf("user '%s' signed in as %s", viewer.Email, viewer.Role)
	s.ui.StoreFlashMessage(w, r, &successLogin)
	http.Redirect(w, r, getRedirectPath(r), http.StatusSeeOther)
}

// Logout the viewer, delete the session
func (s *Service) LogoutHandler(w http.ResponseWriter, r *http.Request) {

	if err := s.auth.SignOut(w, r); err != nil {
		log.Printf("failed to sign out on URI '%s'; %v", r.RequestURI, err)
		s.ui.StoreFlashMessage(w, r, &failedLogout)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	s.ui.StoreFlashMessage(w, r, &successLogout)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Extracts the local value from the query param "redirect",
// the playlist if there's none.
func getRedirectPath(r *http.Request) string {
	redirectParam := r.URL.Query().Get("redirect")
	if redirectParam == "" {
		return "/playlist/"
	}

	path := utils.SafeRedirectPath(redirectParam)
	if path == "/login/" || path == "/logout/" {
		return "/"
	}

	return path
}
