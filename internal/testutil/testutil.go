// Package testutil runs a fake club API for client tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gorilla/mux"
)

type Env struct {
	Server *httptest.Server
	Router *mux.Router
	// BaseURL of the fake API
	BaseURL string
}

func (env *Env) Setup() {
	env.Router = mux.NewRouter()
	env.Server = httptest.NewServer(env.Router)
	env.BaseURL = env.Server.URL
}

func (env *Env) Teardown() {
	env.Server.Close()
	env.Server = nil
	env.Router = nil
	env.BaseURL = ""
}

// JSON writes v with the given HTTP status
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Decode reads the JSON request body into v
func Decode(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func Pretty(a interface{}) string {
	b, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		panic(err)
	}
	return string(b)
}
