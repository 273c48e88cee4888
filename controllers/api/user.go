package api

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/Ptt-Alertor/bank-api/models/user"
)

var userStore = user.NewStore(nil)

// CreateUser appends a new user profile
func CreateUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in user.Input
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := requireFields(in.Missing()); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	u := in.User()
	if !isValidEmail(u.Email) {
		writeError(w, http.StatusBadRequest, errInvalidEmail)
		return
	}

	writeJSON(w, http.StatusOK, userStore.Save(u))
}

// ListUsers returns every user in insertion order
func ListUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, userStore.All())
}

// GetUserByEmail returns the first user with the given email
func GetUserByEmail(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	u, err := userStore.Find(ps.ByName("email"))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
