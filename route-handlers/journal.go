package routehandlers

import (
	"fmt"
	"net/http"

	"github.com/ARUNBALACHOCKALINGAM/feel-o-cinema-other/auth"
	"github.com/ARUNBALACHOCKALINGAM/feel-o-cinema-other/datastore"
	"github.com/ARUNBALACHOCKALINGAM/feel-o-cinema-other/models"
	"github.com/ARUNBALACHOCKALINGAM/feel-o-cinema-other/validate"
	"github.com/ARUNBALACHOCKALINGAM/feel-o-cinema-other/webutil"
)

// Holds dependencies for journal route handlers.
type JournalHandler struct {
	Entries datastore.JournalStore
}

// Creates a new JournalHandler.
func NewJournalHandler(entries datastore.JournalStore) *JournalHandler {
	return &JournalHandler{Entries: entries}
}

func (h *JournalHandler) HandleAdd(w http.ResponseWriter, r *http.Request) error {
	email, ok := auth.EmailFromContext(r.Context())
	if !ok {
		return webutil.ErrUnauthorized("")
	}

	var requestData struct {
		MovieTitle string `json:"movie_title" validate:"required"`
		Entry      string `json:"entry" validate:"required"`
		Date       string `json:"date" validate:"required"`
	}
	if err := webutil.DecodeJSONBody(r, &requestData); err != nil {
		return err
	}
	if errs := validate.Map(requestData); errs != nil {
		return webutil.ErrBadRequest(validate.Message(errs))
	}

	// Entry text is free text and round-trips verbatim.
	entry := &models.JournalEntry{
		OwnerEmail: email,
		MovieTitle: requestData.MovieTitle,
		Entry:      requestData.Entry,
		Date:       requestData.Date,
	}
	if err := h.Entries.Insert(r.Context(), entry); err != nil {
		return fmt.Errorf("failed to add journal entry: %w", err)
	}

	webutil.RespondWithJSON(w, http.StatusOK, entry)
	return nil
}

func (h *JournalHandler) HandleList(w http.ResponseWriter, r *http.Request) error {
	email, ok := auth.EmailFromContext(r.Context())
	if !ok {
		return webutil.ErrUnauthorized("")
	}

	entries, err := h.Entries.FindByOwner(r.Context(), email)
	if err != nil {
		return fmt.Errorf("failed to retrieve journal entries: %w", err)
	}
	if entries == nil {
		entries = []models.JournalEntry{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, entries)
	return nil
}
