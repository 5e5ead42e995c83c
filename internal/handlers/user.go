package handlers

import (
	"errors"
	"net/http"

	"github.com/diewo77/faktury/httpx"
	"github.com/diewo77/faktury/internal/models"
	"github.com/diewo77/faktury/internal/services"
	"github.com/diewo77/faktury/view"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Edit shows the owner profile form; the create variant when no profile exists yet.
func (h *UserHandler) Edit(w http.ResponseWriter, r *http.Request) error {
	u, err := h.users.Primary(r.Context())
	if err != nil && !errors.Is(err, services.ErrNotFound) {
		return err
	}
	return view.Render(w, r, "set-user.html", map[string]any{
		"Title": title(r, "title.set_user"),
		"User":  u,
	})
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) error {
	var u models.User
	u.Apply(partyForm(r))
	if err := h.users.Create(r.Context(), &u); err != nil {
		return err
	}
	httpx.SeeOther(w, r, "/set-user")
	return nil
}

// Update writes the profile identified by the form's id field.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) error {
	id, err := parseID(r.PostFormValue("id"))
	if err != nil {
		return err
	}
	if err := h.users.Update(r.Context(), id, partyForm(r)); err != nil {
		return err
	}
	httpx.SeeOther(w, r, "/set-user")
	return nil
}
