package server

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/lazypower/daybook/internal/journal"
	"github.com/lazypower/daybook/internal/service"
)

// maxUploadMemory bounds the in-memory portion of a multipart parse;
// larger file parts spill to temp files.
const maxUploadMemory = 32 << 20

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.entries.List(r.Context()))
}

func (s *Server) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	e, err := s.entries.Get(r.Context(), chi.URLParam(r, "entryID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	form, err := decodeEntryForm(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	defer form.close()

	var title, content string
	if form.Title != nil {
		title = *form.Title
	}
	if form.Content != nil {
		content = *form.Content
	}

	e, err := s.entries.Create(r.Context(), service.CreateParams{
		Title:   title,
		Content: content,
		Images:  form.Images,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	form, err := decodeEntryForm(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	defer form.close()

	e, err := s.entries.Update(r.Context(), chi.URLParam(r, "entryID"), service.UpdateParams{
		Title:   form.Title,
		Content: form.Content,
		Images:  form.Images,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := s.entries.Delete(r.Context(), chi.URLParam(r, "entryID")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMemories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.entries.Memories(r.Context()))
}

// entryForm is the decoded body of a create or update request. Nil
// pointers mean the field was absent, which an update leaves untouched.
type entryForm struct {
	Title   *string
	Content *string
	Images  []service.Upload

	files []multipart.File
}

func (f *entryForm) close() {
	for _, file := range f.files {
		file.Close()
	}
}

// decodeEntryForm accepts either a multipart form (the browser's
// FormData shape, with image files) or a plain JSON body. The legacy
// single-file "image" field is folded into the multi-file "images" set
// here at the boundary; nothing past this point knows it exists.
func decodeEntryForm(r *http.Request) (*entryForm, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var body struct {
			Title   *string `json:"title"`
			Content *string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return nil, err
		}
		return &entryForm{Title: body.Title, Content: body.Content}, nil
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return nil, err
	}

	f := &entryForm{}
	if vs, ok := r.MultipartForm.Value["title"]; ok && len(vs) > 0 {
		f.Title = &vs[0]
	}
	if vs, ok := r.MultipartForm.Value["content"]; ok && len(vs) > 0 {
		f.Content = &vs[0]
	}

	headers := append([]*multipart.FileHeader{}, r.MultipartForm.File["images"]...)
	headers = append(headers, r.MultipartForm.File["image"]...)
	for _, h := range headers {
		file, err := h.Open()
		if err != nil {
			f.close()
			return nil, err
		}
		f.files = append(f.files, file)
		f.Images = append(f.Images, service.Upload{Filename: h.Filename, Data: file})
	}
	return f, nil
}

// writeError maps domain errors onto HTTP statuses. Unknown errors are
// logged and reported as a bare 500 so internals never leak to clients.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, journal.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "entry not found"})
	case errors.Is(err, journal.ErrEmptyContent):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "content is required"})
	default:
		s.log.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
