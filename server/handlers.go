package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/safespeak/safespeak/server/auth"
	"github.com/safespeak/safespeak/server/auth/key"
	"github.com/safespeak/safespeak/server/contacts"
	"github.com/safespeak/safespeak/server/models"
)

type ResponsePayload struct {
	Errors  []string    `json:"errors,omitempty"`
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

func healthCheck(rw http.ResponseWriter, r *http.Request) {
	json.NewEncoder(rw).Encode(ResponsePayload{Success: true, Data: map[string]string{"status": "ok"}})
}

func signUp(rw http.ResponseWriter, r *http.Request) {
	user := models.User{}

	err := json.NewDecoder(r.Body).Decode(&user)
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusBadRequest)
		return
	}

	errs := validate.Struct(user)
	if errs != nil {
		writeResponse(rw, ResponsePayload{Errors: strings.Split(errs.Error(), "\n")}, http.StatusBadRequest)
		return
	}

	err = models.CreateUser(&user)
	if errors.Is(err, models.ErrEmailTaken) {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusConflict)
		return
	}
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	user.Password = ""
	json.NewEncoder(rw).Encode(ResponsePayload{Success: true, Data: user})
}

func logIn(rw http.ResponseWriter, r *http.Request) {
	data := make(map[string]string)
	json.NewDecoder(r.Body).Decode(&data)

	passwordHash, err := models.FindUserPassword(data["email"])
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	if !auth.CheckPasswordHash(data["password"], passwordHash) {
		writeResponse(rw, ResponsePayload{Errors: []string{"email/password is invalid"}}, http.StatusUnauthorized)
		return
	}

	user, err := models.FindUserBy("email", data["email"])
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	isAdmin, err := user.IsAdmin()
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	token, err := auth.EncodeJWT(auth.SafespeakTokenClaims{
		DisplayName:    user.DisplayName,
		IsAdmin:        isAdmin,
		StandardClaims: jwtStandardClaims(fmt.Sprint(user.ID)),
	}, authKeyPair)
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	json.NewEncoder(rw).Encode(ResponsePayload{Success: true, Data: map[string]string{"token": token}})
}

func jwks(rw http.ResponseWriter, r *http.Request) {
	keyPairJWK, err := authKeyPair.JWK()
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	json.NewEncoder(rw).Encode(key.ExportJWKAsJWKS(keyPairJWK))
}

func findUser(rw http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	user, err := models.FindUserBy("id", vars["uid"])
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusNotFound)
		return
	}
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	json.NewEncoder(rw).Encode(ResponsePayload{Success: true, Data: user})
}

func updateUser(rw http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	data := make(map[string]interface{})

	err := json.NewDecoder(r.Body).Decode(&data)
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusBadRequest)
		return
	}

	removeUnknownFields(data, map[string]bool{
		"display_name": true,
		"phone_number": true,
		"fcm_token":    true,
		"password":     true,
	})
	if len(data) <= 0 {
		writeResponse(rw, ResponsePayload{Errors: []string{"valid fields required"}}, http.StatusBadRequest)
		return
	}

	if data["password"] != nil && strings.TrimSpace(fmt.Sprintf("%v", data["password"])) == "" {
		writeResponse(rw, ResponsePayload{Errors: []string{"password cannot be empty"}}, http.StatusBadRequest)
		return
	}

	err = models.UpdateUser(vars["uid"], data)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusNotFound)
		return
	}
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	json.NewEncoder(rw).Encode(ResponsePayload{Success: true})
}

func deleteUser(rw http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	err := models.DeleteUser(vars["uid"])
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	json.NewEncoder(rw).Encode(ResponsePayload{Success: true})
}

func createContact(rw http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	params := contacts.AddParams{}

	err := json.NewDecoder(r.Body).Decode(&params)
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusBadRequest)
		return
	}

	ownerID, err := strconv.ParseUint(vars["uid"], 10, 64)
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusBadRequest)
		return
	}

	contact, err := contactManager.Add(uint(ownerID), params)
	if errors.Is(err, contacts.ErrMissingContactField) || errors.Is(err, contacts.ErrMissingContactName) {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusBadRequest)
		return
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusNotFound)
		return
	}
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	json.NewEncoder(rw).Encode(ResponsePayload{Success: true, Data: contact})
}

func getContacts(rw http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	list, err := contactManager.List(vars["uid"])
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	json.NewEncoder(rw).Encode(ResponsePayload{Success: true, Data: list})
}

func updateContact(rw http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	data := make(map[string]interface{})

	err := json.NewDecoder(r.Body).Decode(&data)
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusBadRequest)
		return
	}

	removeUnknownFields(data, map[string]bool{
		"name":         true,
		"relationship": true,
		"phone_number": true,
		"email":        true,
		"fcm_token":    true,
	})
	if len(data) <= 0 {
		writeResponse(rw, ResponsePayload{Errors: []string{"valid fields required"}}, http.StatusBadRequest)
		return
	}

	contact, err := contactManager.Update(vars["id"], data)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusNotFound)
		return
	}
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	json.NewEncoder(rw).Encode(ResponsePayload{Success: true, Data: contact})
}

func deleteContact(rw http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	contact, err := contactManager.Delete(vars["id"])
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusNotFound)
		return
	}
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	json.NewEncoder(rw).Encode(ResponsePayload{Success: true, Data: contact})
}

func sendSOS(rw http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	data := struct {
		Location string `json:"location"`
		SentAt   string `json:"sent_at"`
	}{}

	err := json.NewDecoder(r.Body).Decode(&data)
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusBadRequest)
		return
	}

	// The caller's own timestamp is kept as-is, the server clock is
	// only a fallback
	sentAt := time.Now()
	if data.SentAt != "" {
		sentAt, err = time.Parse(time.RFC3339, data.SentAt)
		if err != nil {
			writeResponse(rw, ResponsePayload{Errors: []string{"sent_at must be RFC3339"}}, http.StatusBadRequest)
			return
		}
	}

	ownerID, err := strconv.ParseUint(vars["uid"], 10, 64)
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusBadRequest)
		return
	}

	event, err := sosEngine.Dispatch(uint(ownerID), data.Location, sentAt)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusNotFound)
		return
	}
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	json.NewEncoder(rw).Encode(ResponsePayload{Success: true, Data: event})
}

func listSOSEvents(rw http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	events, paging, err := models.FetchSOSEvents(vars["uid"], page)
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	json.NewEncoder(rw).Encode(ResponsePayload{
		Success: true,
		Data:    map[string]interface{}{"events": events, "paging": paging},
	})
}

func submitReport(rw http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	report := models.Report{}

	err := json.NewDecoder(r.Body).Decode(&report)
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusBadRequest)
		return
	}

	ownerID, err := strconv.ParseUint(vars["uid"], 10, 64)
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusBadRequest)
		return
	}
	report.UserID = uint(ownerID)

	errs := validate.Struct(report)
	if errs != nil {
		writeResponse(rw, ResponsePayload{Errors: strings.Split(errs.Error(), "\n")}, http.StatusBadRequest)
		return
	}

	err = models.CreateReport(&report)
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	json.NewEncoder(rw).Encode(ResponsePayload{Success: true, Data: report})
}

func getUsersWithReports(rw http.ResponseWriter, r *http.Request) {
	users, err := models.ReportingUsers()
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	json.NewEncoder(rw).Encode(ResponsePayload{Success: true, Data: users})
}

func checkToxicity(rw http.ResponseWriter, r *http.Request) {
	data := make(map[string]string)
	json.NewDecoder(r.Body).Decode(&data)

	if strings.TrimSpace(data["message"]) == "" {
		writeResponse(rw, ResponsePayload{Errors: []string{"message is required"}}, http.StatusBadRequest)
		return
	}

	result, err := toxicityClient.Check(data["message"])
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusBadGateway)
		return
	}

	json.NewEncoder(rw).Encode(ResponsePayload{Success: true, Data: result})
}
