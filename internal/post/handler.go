package post

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"socialnet/api"
	"socialnet/internal/common"
)

const multipartMemoryLimit = 32 << 20

// Handler wires the /posts route tree to the service layer.
type Handler struct {
	svc         PostService
	images      ImageStore
	development bool
}

func NewHandler(svc PostService, images ImageStore, development bool) *Handler {
	return &Handler{svc: svc, images: images, development: development}
}

func (h *Handler) Register(router *mux.Router) {
	router.Handle("/posts", common.OptionalAuth(http.HandlerFunc(h.list))).Methods("GET")
	router.Handle("/posts", common.RequireAuth(http.HandlerFunc(h.create))).Methods("POST")
	// the comments delete route must come before /posts/{id} so mux does not
	// swallow "comments" as an id
	router.Handle("/posts/comments/{commentId}", common.RequireAuth(http.HandlerFunc(h.deleteComment))).Methods("DELETE")
	router.Handle("/posts/{id}", common.OptionalAuth(http.HandlerFunc(h.get))).Methods("GET")
	router.Handle("/posts/{id}", common.RequireAuth(http.HandlerFunc(h.update))).Methods("PUT")
	router.Handle("/posts/{id}", common.RequireAuth(http.HandlerFunc(h.delete))).Methods("DELETE")
	router.Handle("/posts/{id}/like", common.RequireAuth(http.HandlerFunc(h.toggleLike))).Methods("POST")
	router.Handle("/posts/{id}/comments", common.OptionalAuth(http.HandlerFunc(h.listComments))).Methods("GET")
	router.Handle("/posts/{id}/comments", common.RequireAuth(http.HandlerFunc(h.createComment))).Methods("POST")
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page, limit, err := common.ParsePagination(r)
	if err != nil {
		common.WriteError(w, err, h.development)
		return
	}
	viewerID, _ := common.UserIDFrom(r.Context())

	pageData, err := h.svc.List(r.Context(), page, limit, viewerID)
	if err != nil {
		common.WriteError(w, err, h.development)
		return
	}

	common.WriteData(w, http.StatusOK, "", pageData)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := postIDVar(r)
	if err != nil {
		common.WriteError(w, err, h.development)
		return
	}
	viewerID, _ := common.UserIDFrom(r.Context())

	p, err := h.svc.Get(r.Context(), id, viewerID)
	if err != nil {
		common.WriteError(w, err, h.development)
		return
	}

	common.WriteData(w, http.StatusOK, "", api.PostData{Post: p})
}

// create accepts a multipart form with a required content field and an
// optional image file. The image is stored before the row is created; the
// service removes it again if anything downstream fails.
func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, _ := common.UserIDFrom(r.Context())

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		common.WriteError(w, common.NewValidationMessage("Invalid multipart form"), h.development)
		return
	}

	var imageFilename string
	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()
		imageFilename, err = h.images.Save(file, header)
		if err != nil {
			common.WriteError(w, err, h.development)
			return
		}
	case errors.Is(err, http.ErrMissingFile):
		// image is optional
	default:
		common.WriteError(w, common.NewValidationMessage("Invalid image field"), h.development)
		return
	}

	p, err := h.svc.Create(r.Context(), userID, r.FormValue("content"), imageFilename)
	if err != nil {
		common.WriteError(w, err, h.development)
		return
	}

	common.WriteData(w, http.StatusCreated, "Post created successfully", api.PostData{Post: p})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := postIDVar(r)
	if err != nil {
		common.WriteError(w, err, h.development)
		return
	}
	userID, _ := common.UserIDFrom(r.Context())

	var req api.UpdatePostRequest
	if err := common.DecodeBody(r, &req); err != nil {
		common.WriteError(w, err, h.development)
		return
	}

	p, err := h.svc.Update(r.Context(), id, userID, req.Content)
	if err != nil {
		common.WriteError(w, err, h.development)
		return
	}

	common.WriteData(w, http.StatusOK, "Post updated successfully", api.PostData{Post: p})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := postIDVar(r)
	if err != nil {
		common.WriteError(w, err, h.development)
		return
	}
	userID, _ := common.UserIDFrom(r.Context())

	if err := h.svc.Delete(r.Context(), id, userID); err != nil {
		common.WriteError(w, err, h.development)
		return
	}

	common.WriteData(w, http.StatusOK, "Post deleted successfully", nil)
}

func (h *Handler) toggleLike(w http.ResponseWriter, r *http.Request) {
	id, err := postIDVar(r)
	if err != nil {
		common.WriteError(w, err, h.development)
		return
	}
	userID, _ := common.UserIDFrom(r.Context())

	result, err := h.svc.ToggleLike(r.Context(), id, userID)
	if err != nil {
		common.WriteError(w, err, h.development)
		return
	}

	message := "Post unliked"
	if result.IsLiked {
		message = "Post liked"
	}
	common.WriteData(w, http.StatusOK, message, result)
}

func (h *Handler) listComments(w http.ResponseWriter, r *http.Request) {
	id, err := postIDVar(r)
	if err != nil {
		common.WriteError(w, err, h.development)
		return
	}

	page, limit, err := common.ParsePagination(r)
	if err != nil {
		common.WriteError(w, err, h.development)
		return
	}

	pageData, err := h.svc.Comments(r.Context(), id, page, limit)
	if err != nil {
		common.WriteError(w, err, h.development)
		return
	}

	common.WriteData(w, http.StatusOK, "", pageData)
}

func (h *Handler) createComment(w http.ResponseWriter, r *http.Request) {
	id, err := postIDVar(r)
	if err != nil {
		common.WriteError(w, err, h.development)
		return
	}
	userID, _ := common.UserIDFrom(r.Context())

	var req api.CreateCommentRequest
	if err := common.DecodeBody(r, &req); err != nil {
		common.WriteError(w, err, h.development)
		return
	}

	c, err := h.svc.AddComment(r.Context(), id, userID, req.Content)
	if err != nil {
		common.WriteError(w, err, h.development)
		return
	}

	common.WriteData(w, http.StatusCreated, "Comment created successfully", api.CommentData{Comment: c})
}

func (h *Handler) deleteComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := strconv.ParseUint(mux.Vars(r)["commentId"], 10, 64)
	if err != nil || commentID == 0 {
		common.WriteError(w, common.NewValidationError(common.FieldError{Field: "commentId", Message: "Invalid comment ID"}), h.development)
		return
	}
	userID, _ := common.UserIDFrom(r.Context())

	if err := h.svc.DeleteComment(r.Context(), commentID, userID); err != nil {
		common.WriteError(w, err, h.development)
		return
	}

	common.WriteData(w, http.StatusOK, "Comment deleted successfully", nil)
}

func postIDVar(r *http.Request) (uint64, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		return 0, common.NewValidationError(common.FieldError{Field: "id", Message: "Invalid post ID"})
	}
	return id, nil
}
