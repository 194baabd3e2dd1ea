// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/felixge/httpsnoop"
	"github.com/gorilla/mux"
)

// Todo is the wire shape of the upstream service, numeric ids included.
type Todo struct {
	UserID    int    `json:"userId"`
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Server holds the collection. The zero value is not usable; call New.
type Server struct {
	mu       sync.Mutex
	todos    []Todo
	nextID   int
	failNext int
	requests int
}

// New returns a Server seeded with the given todos. Ids of seeded todos are
// kept; new ids continue after the largest one.
func New(seed ...Todo) *Server {
	s := &Server{nextID: 1}
	for _, t := range seed {
		s.todos = append(s.todos, t)
		if t.ID >= s.nextID {
			s.nextID = t.ID + 1
		}
	}
	return s
}

// Sample returns n todos in the style of the public service.
func Sample(n int) []Todo {
	titles := []string{"buy milk", "walk dog", "pay rent", "call mom", "fix bike", "read book"}
	out := make([]Todo, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, Todo{
			UserID:    1 + (i-1)/20,
			ID:        i,
			Title:     titles[(i-1)%len(titles)],
			Completed: i%3 == 0,
		})
	}
	return out
}

// FailNext makes the next n mutating requests (POST, PUT, PATCH, DELETE)
// answer 500 without touching the collection.
func (s *Server) FailNext(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = n
}

// Requests returns how many requests the server has handled.
func (s *Server) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

// Todos returns a copy of the collection.
func (s *Server) Todos() []Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Todo, len(s.todos))
	copy(out, s.todos)
	return out
}

// Handler returns the routed, logged HTTP handler.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(logged)
	r.Use(s.counted)
	r.Use(s.faulty)

	r.Methods(http.MethodGet).Path("/todos").HandlerFunc(s.list)
	r.Methods(http.MethodPost).Path("/todos").HandlerFunc(s.create)
	r.Methods(http.MethodGet).Path("/todos/{id}").HandlerFunc(s.get)
	r.Methods(http.MethodPut, http.MethodPatch).Path("/todos/{id}").HandlerFunc(s.update)
	r.Methods(http.MethodDelete).Path("/todos/{id}").HandlerFunc(s.remove)
	return r
}

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Infof("mock API listening on http://%s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down mock API: %w", err)
		}
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func logged(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)
		log.WithFields(log.Fields{
			"method":   r.Method,
			"url":      r.URL.String(),
			"status":   m.Code,
			"duration": m.Duration,
			"written":  humanize.Bytes(uint64(m.Written)),
		}).Info("handled")
	})
}

func (s *Server) counted(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests++
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) faulty(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			s.mu.Lock()
			fail := s.failNext > 0
			if fail {
				s.failNext--
			}
			s.mu.Unlock()
			if fail {
				http.Error(w, `{"error":"injected failure"}`, http.StatusInternalServerError)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) list(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Todos())
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.lookup(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, s.todos[i])
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID    int    `json:"userId"`
		Title     string `json:"title"`
		Completed bool   `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	s.mu.Lock()
	t := Todo{
		UserID:    body.UserID,
		ID:        s.nextID,
		Title:     body.Title,
		Completed: body.Completed,
	}
	s.nextID++
	s.todos = append(s.todos, t)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	var patch struct {
		Title     *string `json:"title"`
		Completed *bool   `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.lookup(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, struct{}{})
		return
	}
	if patch.Title != nil {
		s.todos[i].Title = *patch.Title
	}
	if patch.Completed != nil {
		s.todos[i].Completed = *patch.Completed
	}
	writeJSON(w, http.StatusOK, s.todos[i])
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.lookup(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, struct{}{})
		return
	}
	s.todos = append(s.todos[:i], s.todos[i+1:]...)
	writeJSON(w, http.StatusOK, struct{}{})
}

// lookup returns the index of the todo named by the {id} route variable.
// Callers hold s.mu.
func (s *Server) lookup(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return 0, false
	}
	for i, t := range s.todos {
		if t.ID == id {
			return i, true
		}
	}
	return 0, false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("failed to encode response")
	}
}
