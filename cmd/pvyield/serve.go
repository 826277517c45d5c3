package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pv_yield/internal/metrics"
	"pv_yield/internal/simulator"
	"pv_yield/internal/solar"
	"pv_yield/internal/store"
	"pv_yield/internal/ws"
)

func runServe(addr string) error {
	m := metrics.New(prometheus.DefaultRegisterer)
	hub := ws.NewHub()
	engine := simulator.New(solar.NewClearSky(), store.New(m), ws.NewBridge(hub, m))
	handler := ws.NewHandler(hub, engine, m)

	router := newRouter(handler, promhttp.Handler(), engine.Grids())
	logged := handlers.LoggingHandler(os.Stdout, router)

	log.Printf("Starting server on %s", addr)
	return http.ListenAndServe(addr, logged)
}

func newRouter(wsHandler, metricsHandler http.Handler, grids *store.GridStore) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", healthHandler).Methods("GET")
	r.Handle("/metrics", metricsHandler).Methods("GET")
	r.HandleFunc("/grids", listGridsHandler(grids)).Methods("GET")
	r.HandleFunc("/grids", clearGridsHandler(grids)).Methods("DELETE")
	r.Handle("/ws", wsHandler)
	return r
}

// listGridsHandler reports the locations with a cached orientation grid.
func listGridsHandler(grids *store.GridStore) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		keys := grids.Keys()
		out := make([]string, len(keys))
		for i, k := range keys {
			out[i] = k.String()
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{"grids": out}); err != nil {
			log.Printf("Error encoding grid list: %v", err)
		}
	}
}

// clearGridsHandler drops every cached grid; the next optimization rebuilds.
func clearGridsHandler(grids *store.GridStore) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		n := grids.Len()
		grids.Clear()
		log.Printf("Cleared %d cached grids", n)
		w.WriteHeader(http.StatusNoContent)
	}
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}
