package api

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/editorcraftapp/editorcraft-server/internal/http/response"
	"github.com/editorcraftapp/editorcraft-server/internal/service"
)

// Upload endpoints use chi directly; huma's typed bodies don't fit
// multipart streams.
func (s *Server) registerUploadRoutes() {
	s.router.Post("/api/upload/image", s.handleUploadImage)
	s.router.Post("/api/upload/images", s.handleUploadImages)
	s.router.Delete("/api/upload/image/*", s.handleDeleteImage)
}

// UploadImageResponse is the body for a single stored image.
type UploadImageResponse struct {
	Success  bool   `json:"success"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
	BlurHash string `json:"blurHash,omitempty"`
}

// UploadImagesResponse is the body for a batch upload.
type UploadImagesResponse struct {
	Success bool                    `json:"success"`
	Files   []*service.UploadResult `json:"files"`
}

func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.bearerUser(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(s.maxFileSize); err != nil {
		response.BadRequest(w, "Failed to parse form data", s.logger)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.BadRequest(w, "No image file provided", s.logger)
		return
	}
	defer file.Close()

	upload, ok := s.readUploadFile(w, file, header)
	if !ok {
		return
	}

	result, err := s.services.Upload.UploadImage(r.Context(), userID, upload)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, UploadImageResponse{
		Success:  true,
		URL:      result.URL,
		Filename: result.Filename,
		BlurHash: result.BlurHash,
	}, s.logger)
}

func (s *Server) handleUploadImages(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.bearerUser(w, r)
	if !ok {
		return
	}

	// Batch limit applies per file; headroom for the form itself.
	if err := r.ParseMultipartForm(s.maxFileSize * int64(s.maxBatchSize)); err != nil {
		response.BadRequest(w, "Failed to parse form data", s.logger)
		return
	}

	headers := r.MultipartForm.File["images"]
	if len(headers) == 0 {
		response.BadRequest(w, "No image files provided", s.logger)
		return
	}

	uploads := make([]service.UploadFile, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			response.BadRequest(w, "Failed to read uploaded file", s.logger)
			return
		}

		upload, ok := s.readUploadFile(w, file, header)
		file.Close()
		if !ok {
			return
		}
		uploads = append(uploads, upload)
	}

	results, err := s.services.Upload.UploadImages(r.Context(), userID, uploads)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, UploadImagesResponse{
		Success: true,
		Files:   results,
	}, s.logger)
}

func (s *Server) handleDeleteImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.bearerUser(w, r)
	if !ok {
		return
	}

	key := chi.URLParam(r, "*")
	if key == "" {
		response.BadRequest(w, "Object key is required", s.logger)
		return
	}

	if err := s.services.Upload.DeleteImage(r.Context(), userID, key); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]any{
		"success": true,
		"message": "Image deleted successfully",
	}, s.logger)
}

// bearerUser authenticates a chi-direct request, writing a 401 on failure.
func (s *Server) bearerUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, err := s.authenticateRequest(r.Header.Get("Authorization"))
	if err != nil {
		response.Unauthorized(w, "Invalid or expired token", s.logger)
		return "", false
	}
	return userID, true
}

// readUploadFile drains one multipart file into memory, enforcing the size
// ceiling before the service sees it.
func (s *Server) readUploadFile(w http.ResponseWriter, file multipart.File, header *multipart.FileHeader) (service.UploadFile, bool) {
	if header.Size > s.maxFileSize {
		response.BadRequest(w, "File too large", s.logger)
		return service.UploadFile{}, false
	}

	data, err := io.ReadAll(file)
	if err != nil {
		response.InternalError(w, "Failed to read uploaded file", s.logger)
		return service.UploadFile{}, false
	}

	return service.UploadFile{
		Filename: header.Filename,
		Data:     data,
	}, true
}
