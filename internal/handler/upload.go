package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/course-platform/internal/storage"
)

// UploadHandler issues presigned upload URLs for course media.
type UploadHandler struct {
	Links *storage.LinkManager
}

func NewUploadHandler(links *storage.LinkManager) *UploadHandler {
	return &UploadHandler{Links: links}
}

type presignRequest struct {
	FileName string `json:"fileName"`
	// Kind selects the key namespace: "video" (default) or "thumbnail".
	Kind string `json:"kind"`
}

// PresignUpload handles POST /api/v1/uploads/presign-url. The response
// carries both the short-lived upload URL and the object key the caller
// must persist as the stable reference.
func (h *UploadHandler) PresignUpload(c echo.Context) error {
	var req presignRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(req.FileName)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "fileName is required"})
	}

	prefix := "lessons"
	if req.Kind == "thumbnail" {
		prefix = "thumbnails"
	}
	link, err := h.Links.IssueUploadLink(c.Request().Context(), prefix, name)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create upload link"})
	}
	return c.JSON(http.StatusOK, link)
}
