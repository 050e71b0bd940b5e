package pages

import (
	"errors"
	"log"
	"net/http"

	"github.com/vlatan/media-hub/internal/models"
	"github.com/vlatan/media-hub/internal/playlist"
)

const (
	infoCategory  = "info"
	errorCategory = "error"
)

// Handle the home page
func (s *Service) HomeHandler(w http.ResponseWriter, r *http.Request) {
	data := models.GetDataFromContext(r)
	data.Content = s.ui.Content("home")
	s.ui.RenderHTML(w, r, "home.html", data)
}

// Handle the playlist page.
// Every request runs its own render cycle.
func (s *Service) PlaylistHandler(w http.ResponseWriter, r *http.Request) {

	data := models.GetDataFromContext(r)
	data.Title = "Playlist"

	view := s.loader.Load(r.Context(), playlist.NewCycle(), data.CurrentViewer)
	data.Playlist = view

	s.ui.RenderHTML(w, r, "playlist.html", data)
}

// Handle the empty submit form
func (s *Service) SubmitFormHandler(w http.ResponseWriter, r *http.Request) {
	data := models.GetDataFromContext(r)
	data.Title = "Submit"
	data.Content = s.ui.Content("submit")
	data.Form = &models.FormData{}
	s.ui.RenderHTML(w, r, "submit.html", data)
}

// Handle the submitted form.
// Invalid input is rendered back with the message, nothing is stored.
func (s *Service) SubmitHandler(w http.ResponseWriter, r *http.Request) {

	if err := r.ParseForm(); err != nil {
		log.Printf("failed to parse the submit form on URI '%s'; %v", r.RequestURI, err)
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	in := playlist.SubmitInput{
		Title:     r.PostForm.Get("title"),
		Performer: r.PostForm.Get("performer"),
		VideoURL:  r.PostForm.Get("video_url"),
		ImageURL:  r.PostForm.Get("image_url"),
		Notes:     r.PostForm.Get("notes"),
	}.Trimmed()

	_, err := s.submitter.Submit(r.Context(), in)
	if err == nil {
		s.ui.StoreFlashMessage(w, r, &models.FlashMessage{
			Message:  playlist.SavedMessage,
			Category: infoCategory,
		})
		http.Redirect(w, r, "/playlist/", http.StatusSeeOther)
		return
	}

	message := playlist.Message(err)
	if !playlist.IsValidation(err) {
		log.Printf("failed to save the submission on URI '%s'; %v", r.RequestURI, err)
		message = playlist.SaveErrorMessage(err)
	}

	data := models.GetDataFromContext(r)
	data.Title = "Submit"
	data.Content = s.ui.Content("submit")
	data.Form = &models.FormData{
		Title:     in.Title,
		Performer: in.Performer,
		VideoURL:  in.VideoURL,
		ImageURL:  in.ImageURL,
		Notes:     in.Notes,
		Error:     message,
	}

	s.ui.RenderHTML(w, r, "submit.html", data)
}

// Handle the row actions.
// A delete is carried out only when confirmed with a POST.
func (s *Service) ActionHandler(w http.ResponseWriter, r *http.Request) {

	data := models.GetDataFromContext(r)

	req := playlist.ActionRequest{
		Action:    playlist.Action(r.PathValue("action")),
		ID:        r.PathValue("id"),
		Viewer:    data.CurrentViewer,
		Confirmed: r.Method == http.MethodPost && r.PostFormValue("confirm") == "yes",
	}

	effect, err := s.dispatcher.Dispatch(r.Context(), req)

	switch {
	case errors.Is(err, playlist.ErrUnknownAction):
		http.NotFound(w, r)
		return
	case errors.Is(err, playlist.ErrUnauthorized), errors.Is(err, playlist.ErrNotFound):
		s.flashAndBack(w, r, playlist.Message(err))
		return
	case err != nil:
		log.Printf("failed to %s the submission '%s'; %v", req.Action, req.ID, err)
		message := playlist.Message(err)
		if req.Action == playlist.Delete {
			message = playlist.DeleteErrorMessage(err)
		}
		s.flashAndBack(w, r, message)
		return
	}

	switch effect.Kind {
	case playlist.OpenURL:
		http.Redirect(w, r, effect.URL, http.StatusSeeOther)
	case playlist.Confirm:
		data.Title = "Delete"
		data.Confirm = effect.Submission
		s.ui.RenderHTML(w, r, "confirm.html", data)
	case playlist.Refresh:
		s.ui.StoreFlashMessage(w, r, &models.FlashMessage{
			Message:  playlist.DeletedMessage,
			Category: infoCategory,
		})
		http.Redirect(w, r, "/playlist/", http.StatusSeeOther)
	default:
		http.Redirect(w, r, "/playlist/", http.StatusSeeOther)
	}
}

// flashAndBack shows the message on the playlist page
func (s *Service) flashAndBack(w http.ResponseWriter, r *http.Request, message string) {
	s.ui.StoreFlashMessage(w, r, &models.FlashMessage{
		Message:  message,
		Category: errorCategory,
	})
	http.Redirect(w, r, "/playlist/", http.StatusSeeOther)
}
