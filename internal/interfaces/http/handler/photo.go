package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wanderlens/backend/internal/application/ingestion"
	"github.com/wanderlens/backend/internal/application/moderation"
	"github.com/wanderlens/backend/internal/application/photos"
	"github.com/wanderlens/backend/internal/domain/photo"
	"github.com/wanderlens/backend/internal/domain/shared/valueobject"
)

// maxUploadBytes bounds a single uploaded image
const maxUploadBytes = 25 << 20

// maxBulkFiles bounds the number of files in one bulk upload request
const maxBulkFiles = 20

// PhotoHandler handles photo upload, listing, and deletion endpoints
type PhotoHandler struct {
	BaseHandler
	ingest     *ingestion.Service
	queries    *photos.QueryService
	moderation *moderation.Service
}

// NewPhotoHandler creates a new PhotoHandler
func NewPhotoHandler(ingest *ingestion.Service, queries *photos.QueryService, moderationSvc *moderation.Service) *PhotoHandler {
	return &PhotoHandler{
		ingest:     ingest,
		queries:    queries,
		moderation: moderationSvc,
	}
}

// RegisterRoutes registers photo routes
func (h *PhotoHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/photos")
	{
		group.POST("/upload", h.Upload)
		group.POST("/bulk-upload", h.BulkUpload)
		group.GET("/nearby", h.Nearby)
		group.GET("/mine", h.ListMine)
		group.GET("/:id", h.GetByID)
		group.DELETE("/:id", h.Delete)
	}
}

// UploadResponse describes one ingested photo
type UploadResponse struct {
	Photo     *photo.Photo `json:"photo"`
	Duplicate bool         `json:"duplicate"`
}

// BulkItemResult records the outcome of one file within a bulk upload
type BulkItemResult struct {
	FileName string `json:"file_name"`
	PhotoID  string `json:"photo_id,omitempty"`
	Error    string `json:"error,omitempty"`
}

// BulkUploadResponse aggregates a bulk upload request
type BulkUploadResponse struct {
	Total    int              `json:"total"`
	Uploaded int              `json:"uploaded"`
	Failed   int              `json:"failed"`
	Results  []BulkItemResult `json:"results"`
}

// Upload ingests a single photo from a multipart form. Optional latitude
// and longitude fields override any EXIF-embedded GPS coordinates.
func (h *PhotoHandler) Upload(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		h.BadRequest(c, "A photo file is required")
		return
	}

	data, err := readUpload(fileHeader)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	manual, err := parseManualLocation(c.PostForm("latitude"), c.PostForm("longitude"))
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.ingest.Ingest(c.Request.Context(), ingestion.IngestRequest{
		OwnerID:        ownerID,
		Data:           data,
		FileName:       fileHeader.Filename,
		MimeType:       fileHeader.Header.Get("Content-Type"),
		Source:         photo.SourceDirectUpload,
		ManualLocation: manual,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, UploadResponse{Photo: result.Photo, Duplicate: result.Duplicate})
}

// BulkUpload ingests several photos in one request. Individual file
// failures are reported per item and do not abort the batch.
func (h *PhotoHandler) BulkUpload(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		h.BadRequest(c, "Multipart form data is required")
		return
	}
	files := form.File["photos"]
	if len(files) == 0 {
		h.BadRequest(c, "At least one photo file is required")
		return
	}
	if len(files) > maxBulkFiles {
		h.BadRequest(c, fmt.Sprintf("At most %d files per request", maxBulkFiles))
		return
	}

	resp := BulkUploadResponse{Total: len(files)}
	for _, fileHeader := range files {
		item := BulkItemResult{FileName: fileHeader.Filename}

		data, err := readUpload(fileHeader)
		if err != nil {
			item.Error = err.Error()
			resp.Failed++
			resp.Results = append(resp.Results, item)
			continue
		}

		result, err := h.ingest.Ingest(c.Request.Context(), ingestion.IngestRequest{
			OwnerID:  ownerID,
			Data:     data,
			FileName: fileHeader.Filename,
			MimeType: fileHeader.Header.Get("Content-Type"),
			Source:   photo.SourceBulkUpload,
		})
		if err != nil {
			item.Error = err.Error()
			resp.Failed++
		} else {
			item.PhotoID = result.Photo.ID.String()
			resp.Uploaded++
		}
		resp.Results = append(resp.Results, item)
	}

	h.Created(c, resp)
}

// Nearby lists approved photos within a radius of a coordinate
func (h *PhotoHandler) Nearby(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		h.BadRequest(c, "Query parameter 'lat' must be a number")
		return
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		h.BadRequest(c, "Query parameter 'lng' must be a number")
		return
	}

	radius := 5000.0
	if raw := c.Query("radius"); raw != "" {
		radius, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			h.BadRequest(c, "Query parameter 'radius' must be a number")
			return
		}
	}
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			h.BadRequest(c, "Query parameter 'limit' must be an integer")
			return
		}
	}

	views, err := h.queries.Nearby(c.Request.Context(), lat, lng, radius, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, views)
}

// ListMine lists the authenticated user's photos
func (h *PhotoHandler) ListMine(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var status *photo.ApprovalStatus
	if raw := c.Query("status"); raw != "" {
		s := photo.ApprovalStatus(raw)
		if !s.IsValid() {
			h.BadRequest(c, "Query parameter 'status' must be pending, approved, or rejected")
			return
		}
		status = &s
	}

	page, pageSize := parsePagination(c)
	views, total, err := h.queries.ListMine(c.Request.Context(), ownerID, status, page, pageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, views, total, page, pageSize)
}

// GetByID returns a photo with its variant URLs
func (h *PhotoHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid photo ID format")
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, view)
}

// Delete removes a photo. Owners may delete their own photos; admins may
// delete any.
func (h *PhotoHandler) Delete(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid photo ID format")
		return
	}

	if err := h.moderation.Delete(c.Request.Context(), id, actorID, isAdmin(c)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// readUpload opens and reads one multipart file, enforcing the size bound
func readUpload(fileHeader *multipart.FileHeader) ([]byte, error) {
	if fileHeader.Size > maxUploadBytes {
		return nil, fmt.Errorf("file %q exceeds the %d MB limit", fileHeader.Filename, maxUploadBytes>>20)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if int64(len(data)) > maxUploadBytes {
		return nil, fmt.Errorf("file %q exceeds the %d MB limit", fileHeader.Filename, maxUploadBytes>>20)
	}
	return data, nil
}

// parseManualLocation parses optional form coordinates. Both must be
// present or both absent.
func parseManualLocation(latRaw, lngRaw string) (*valueobject.GeoPoint, error) {
	latRaw, lngRaw = strings.TrimSpace(latRaw), strings.TrimSpace(lngRaw)
	if latRaw == "" && lngRaw == "" {
		return nil, nil
	}
	if latRaw == "" || lngRaw == "" {
		return nil, fmt.Errorf("latitude and longitude must be provided together")
	}

	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil {
		return nil, fmt.Errorf("latitude must be a number")
	}
	lng, err := strconv.ParseFloat(lngRaw, 64)
	if err != nil {
		return nil, fmt.Errorf("longitude must be a number")
	}

	point, err := valueobject.NewGeoPoint(lat, lng)
	if err != nil {
		return nil, err
	}
	return &point, nil
}

// parsePagination reads page/page_size query parameters with defaults
func parsePagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
