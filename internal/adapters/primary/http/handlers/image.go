package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"

	"image-ingest-service/internal/adapters/primary/http/dto"
	"image-ingest-service/internal/adapters/primary/http/middleware"
	"image-ingest-service/internal/core/domain"
	"image-ingest-service/internal/core/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) ListImages(c *gin.Context) {
	images, err := h.imageSvc.List(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("list images failed")
		mapDomainError(c, err, msgServerError)
		return
	}

	c.JSON(http.StatusOK, dto.ToImageResponses(images))
}

func (h *Handler) GetImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, dto.MessageResponse{Message: msgImageNotFound})
		return
	}

	img, err := h.imageSvc.Get(c.Request.Context(), id)
	if err != nil {
		if !errors.Is(err, domain.ErrImageNotFound) {
			log.WithError(err).WithField("image_id", id).Error("get image failed")
		}
		mapDomainError(c, err, msgServerError)
		return
	}

	c.JSON(http.StatusOK, dto.ToImageResponse(img))
}

func (h *Handler) UploadImages(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes())

	var files []services.UploadFile
	form, err := c.MultipartForm()
	switch {
	case err == nil:
		defer form.RemoveAll()
		files = h.collectFiles(form)
	case errors.Is(err, http.ErrNotMultipart), errors.Is(err, http.ErrMissingBoundary):
		// no multipart body means no files; Ingest answers with ErrNoFiles
	default:
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusBadRequest, dto.MessageResponse{
				Message: fmt.Sprintf("Request body is too large. Maximum is %d files of %d bytes each.", h.limits.MaxFiles, h.limits.MaxFileSize),
			})
			return
		}
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Upload error: " + err.Error()})
		return
	}

	images, err := h.ingestSvc.Ingest(c.Request.Context(), files)
	if err != nil {
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			log.WithError(err).WithFields(log.Fields{
				"request_id": c.GetString(middleware.ContextRequestID),
				"files":      len(files),
			}).Error("upload failed")
		}
		mapDomainError(c, err, msgUploadError)
		return
	}

	c.JSON(http.StatusCreated, dto.UploadResponse{
		Message: msgImagesProcessed,
		Images:  dto.ToImageResponses(images),
	})
}

func (h *Handler) DeleteImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, dto.MessageResponse{Message: msgImageNotFound})
		return
	}

	if err := h.imageSvc.Delete(c.Request.Context(), id); err != nil {
		if !errors.Is(err, domain.ErrImageNotFound) {
			log.WithError(err).WithField("image_id", id).Error("delete image failed")
		}
		mapDomainError(c, err, msgServerError)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: msgImageDeleted})
}

// collectFiles flattens the form, upload field first in submission order,
// then any other fields so the validator can reject them.
func (h *Handler) collectFiles(form *multipart.Form) []services.UploadFile {
	fields := make([]string, 0, len(form.File))
	for field := range form.File {
		if field != h.limits.Field {
			fields = append(fields, field)
		}
	}
	sort.Strings(fields)
	fields = append([]string{h.limits.Field}, fields...)

	var files []services.UploadFile
	for _, field := range fields {
		for _, fh := range form.File[field] {
			files = append(files, services.UploadFile{
				Field:       field,
				Name:        fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Size:        fh.Size,
				Open:        opener(fh),
			})
		}
	}
	return files
}

func opener(fh *multipart.FileHeader) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		return fh.Open()
	}
}
