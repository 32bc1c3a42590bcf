package upload

import (
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
)

// Server streams stored images back over HTTP.
type Server struct {
	storage *Storage
}

func NewServer(storage *Storage) *Server {
	return &Server{storage: storage}
}

// Register mounts GET {baseURL}/{file} on the router.
func (s *Server) Register(router *mux.Router) {
	router.HandleFunc(s.storage.baseURL+"/{file}", s.serveFile).Methods("GET")
}

func (s *Server) serveFile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	name := filepath.Base(vars["file"]) // strips any traversal attempt

	f, err := os.Open(filepath.Join(s.storage.dir, name))
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", contentTypeFor(name))
	w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))

	if _, err := io.Copy(w, f); err != nil {
		log.Printf("error streaming file: %v", err)
	}
}

func contentTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
