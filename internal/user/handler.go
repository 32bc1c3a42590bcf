package user

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"socialnet/api"
	"socialnet/internal/common"
)

// PostLister is the slice of the post service the user routes need for
// GET /users/{id}/posts.
type PostLister interface {
	ListByAuthor(ctx context.Context, authorID uint64, page, limit int, viewerID uint64) (*api.PostPage, error)
}

// Handler wires the auth and user routes to the service layer.
type Handler struct {
	svc         UserService
	posts       PostLister
	development bool
}

func NewHandler(svc UserService, posts PostLister, development bool) *Handler {
	return &Handler{svc: svc, posts: posts, development: development}
}

// Register mounts the /auth and /users route trees.
func (h *Handler) Register(router *mux.Router) {
	router.HandleFunc("/auth/register", h.register).Methods("POST")
	router.HandleFunc("/auth/login", h.login).Methods("POST")
	router.HandleFunc("/auth/logout", h.logout).Methods("POST")
	router.Handle("/auth/me", common.RequireAuth(http.HandlerFunc(h.me))).Methods("GET")
	router.Handle("/auth/me", common.RequireAuth(http.HandlerFunc(h.updateMe))).Methods("PUT")

	router.Handle("/users", common.OptionalAuth(http.HandlerFunc(h.list))).Methods("GET")
	router.Handle("/users/{id}", common.OptionalAuth(http.HandlerFunc(h.get))).Methods("GET")
	router.Handle("/users/{id}/posts", common.OptionalAuth(http.HandlerFunc(h.listPosts))).Methods("GET")
	router.Handle("/users/{id}/follow", common.RequireAuth(http.HandlerFunc(h.toggleFollow))).Methods("POST")
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := common.DecodeBody(r, &req); err != nil {
		common.WriteError(w, err, h.development)
		return
	}

	u, token, err := h.svc.Register(r.Context(), req)
	if err != nil {
		common.WriteError(w, err, h.development)
		return
	}

	common.WriteData(w, http.StatusCreated, "User registered successfully", api.AuthData{User: u, Token: token})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := common.DecodeBody(r, &req); err != nil {
		common.WriteError(w, err, h.development)
		return
	}

	u, token, err := h.svc.Login(r.Context(), req)
	if err != nil {
		common.WriteError(w, err, h.development)
		return
	}

	common.WriteData(w, http.StatusOK, "Login successful", api.AuthData{User: u, Token: token})
}

// logout is a stateless no-op; the client discards its cached token.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	common.WriteData(w, http.StatusOK, "Logged out successfully", nil)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	userID, _ := common.UserIDFrom(r.Context())

	u, err := h.svc.Me(r.Context(), userID)
	if err != nil {
		common.WriteError(w, err, h.development)
		return
	}

	common.WriteData(w, http.StatusOK, "", api.UserData{User: u})
}

func (h *Handler) updateMe(w http.ResponseWriter, r *http.Request) {
	userID, _ := common.UserIDFrom(r.Context())

	var req api.UpdateProfileRequest
	if err := common.DecodeBody(r, &req); err != nil {
		common.WriteError(w, err, h.development)
		return
	}

	u, err := h.svc.UpdateMe(r.Context(), userID, req)
	if err != nil {
		common.WriteError(w, err, h.development)
		return
	}

	common.WriteData(w, http.StatusOK, "Profile updated successfully", api.UserData{User: u})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page, limit, err := common.ParsePagination(r)
	if err != nil {
		common.WriteError(w, err, h.development)
		return
	}

	pageData, err := h.svc.List(r.Context(), page, limit)
	if err != nil {
		common.WriteError(w, err, h.development)
		return
	}

	common.WriteData(w, http.StatusOK, "", pageData)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := userIDVar(r)
	if err != nil {
		common.WriteError(w, err, h.development)
		return
	}
	viewerID, _ := common.UserIDFrom(r.Context())

	u, err := h.svc.Get(r.Context(), id, viewerID)
	if err != nil {
		common.WriteError(w, err, h.development)
		return
	}

	common.WriteData(w, http.StatusOK, "", api.UserData{User: u})
}

func (h *Handler) listPosts(w http.ResponseWriter, r *http.Request) {
	id, err := userIDVar(r)
	if err != nil {
		common.WriteError(w, err, h.development)
		return
	}

	page, limit, err := common.ParsePagination(r)
	if err != nil {
		common.WriteError(w, err, h.development)
		return
	}

	viewerID, _ := common.UserIDFrom(r.Context())

	pageData, err := h.posts.ListByAuthor(r.Context(), id, page, limit, viewerID)
	if err != nil {
		common.WriteError(w, err, h.development)
		return
	}

	common.WriteData(w, http.StatusOK, "", pageData)
}

func (h *Handler) toggleFollow(w http.ResponseWriter, r *http.Request) {
	id, err := userIDVar(r)
	if err != nil {
		common.WriteError(w, err, h.development)
		return
	}
	actorID, _ := common.UserIDFrom(r.Context())

	result, err := h.svc.ToggleFollow(r.Context(), id, actorID)
	if err != nil {
		common.WriteError(w, err, h.development)
		return
	}

	message := "User unfollowed"
	if result.IsFollowing {
		message = "User followed"
	}
	common.WriteData(w, http.StatusOK, message, result)
}

func userIDVar(r *http.Request) (uint64, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		return 0, common.NewValidationError(common.FieldError{Field: "id", Message: "Invalid user ID"})
	}
	return id, nil
}
