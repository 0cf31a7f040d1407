package handlers

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"sync"

	"social/internal/store"
	"social/web"
)

// Handler serves the HTTP surface. It owns the lock guarding the
// store: page reads hold the shared lock, every mutation holds the
// exclusive lock for its full duration, so each request observes the
// store either fully before or fully after any concurrent write.
type Handler struct {
	mu    sync.RWMutex
	store *store.Store
	tpls  *template.Template
	log   *slog.Logger
}

func New(st *store.Store, logger *slog.Logger) *Handler {
	tpls := template.Must(template.ParseFS(web.Templates, "templates/*.html"))
	return &Handler{store: st, tpls: tpls, log: logger}
}

// Routes registers all routes on a fresh mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /feed", h.Feed)
	mux.HandleFunc("GET /post/{username}/{id}", h.PostByID)

	mux.HandleFunc("GET /register/{username}", h.Register)
	mux.HandleFunc("GET /new-post/{username}/{content}", h.NewPost)
	mux.HandleFunc("GET /add-comment", h.AddComment)

	mux.HandleFunc("GET /like", h.React((*store.Post).Like))
	mux.HandleFunc("GET /dislike", h.React((*store.Post).Dislike))
	mux.HandleFunc("GET /unlike", h.React((*store.Post).Unlike))

	mux.HandleFunc("GET /{$}", h.Root)
	return mux
}

// -------- View models

type commentView struct {
	Author  string
	Content string
}

type postView struct {
	ID        store.PostID
	Author    string
	Content   string
	Likers    []string
	Dislikers []string
	Comments  []commentView
}

// newPostView snapshots a post for rendering. Must be called with at
// least the read lock held. Likers, dislikers and commenters are
// sorted so pages render stably.
func newPostView(id store.PostID, author string, p *store.Post) postView {
	v := postView{ID: id, Author: author, Content: p.Content()}
	for u := range p.Likers() {
		v.Likers = append(v.Likers, u)
	}
	for u := range p.Dislikers() {
		v.Dislikers = append(v.Dislikers, u)
	}
	sort.Strings(v.Likers)
	sort.Strings(v.Dislikers)

	for u, c := range p.Comments() {
		v.Comments = append(v.Comments, commentView{Author: u, Content: c})
	}
	sort.SliceStable(v.Comments, func(i, j int) bool {
		return v.Comments[i].Author < v.Comments[j].Author
	})
	return v
}

// -------- Pages

func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/feed", http.StatusPermanentRedirect)
}

func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	var views []postView
	for username, id := range h.store.Posts() {
		if p, ok := h.store.GetPost(id); ok {
			views = append(views, newPostView(id, username, p))
		}
	}
	h.mu.RUnlock()

	sort.Slice(views, func(i, j int) bool { return views[i].ID < views[j].ID })

	h.render(w, "feed", map[string]any{"Posts": views})
}

func (h *Handler) PostByID(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	id, ok := parsePostID(r.PathValue("id"))
	if !ok {
		http.Error(w, "post not found", http.StatusNotFound)
		return
	}

	h.mu.RLock()
	p, found := h.store.GetPost(id)
	var view postView
	if found {
		view = newPostView(id, username, p)
	}
	h.mu.RUnlock()

	if !found {
		http.Error(w, "post not found", http.StatusNotFound)
		return
	}
	h.render(w, "post", view)
}

// -------- Mutations

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	h.mu.Lock()
	err := h.store.RegisterUser(username)
	h.mu.Unlock()

	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, "/feed", http.StatusPermanentRedirect)
}

func (h *Handler) NewPost(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	content := r.PathValue("content")

	h.mu.Lock()
	id, err := h.store.CreatePost(username, content)
	h.mu.Unlock()

	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, postPath(username, id), http.StatusPermanentRedirect)
}

func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id, ok := parsePostID(q.Get("post_id"))
	if !ok {
		http.Error(w, "post not found", http.StatusNotFound)
		return
	}

	h.mu.Lock()
	err := h.store.CreateComment(id, q.Get("username"), q.Get("comment"))
	h.mu.Unlock()

	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Redirect(w, r, postPath(q.Get("post_username"), id), http.StatusPermanentRedirect)
}

// React builds the handler for the like, dislike and unlike routes,
// which differ only in the Post method they apply.
func (h *Handler) React(apply func(p *store.Post, username string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		id, ok := parsePostID(q.Get("post_id"))
		if !ok {
			http.Error(w, "post not found", http.StatusNotFound)
			return
		}

		h.mu.Lock()
		p, found := h.store.GetPost(id)
		if found {
			apply(p, q.Get("username"))
		}
		h.mu.Unlock()

		if !found {
			http.Error(w, fmt.Sprintf("post %d: %s", id, store.ErrPostNotFound), http.StatusNotFound)
			return
		}
		http.Redirect(w, r, postPath(q.Get("post_username"), id), http.StatusPermanentRedirect)
	}
}

// -------- Helpers

func (h *Handler) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tpls.ExecuteTemplate(w, name, data); err != nil {
		h.log.Error("template error", "template", name, "error", err)
	}
}

func parsePostID(s string) (store.PostID, bool) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return store.PostID(id), true
}

func postPath(username string, id store.PostID) string {
	return "/post/" + username + "/" + strconv.FormatUint(uint64(id), 10)
}
