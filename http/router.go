package http

import (
	"github.com/gorilla/mux"
)

type Router = mux.Router

var GetURLVars = mux.Vars

func NewRouter(c *Config) *Router {
	r := mux.NewRouter()
	if c.Prefix != "" {
		r = r.PathPrefix(c.Prefix).Subrouter()
	}
	return r
}
