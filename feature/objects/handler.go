package objects

import (
	"bytes"
	"errors"
	"net/url"

	"bucket-manager/core/logger"
	"bucket-manager/core/middleware/scope"
	"bucket-manager/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ImportRequest is the body of POST /imports.
type ImportRequest struct {
	URI  string `json:"uri"`
	Path string `json:"path"`
}

// Handler handles HTTP requests for buckets and objects.
type Handler struct {
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

// RegisterRoutes registers the bucket and object routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	buckets := app.Group("/buckets")
	buckets.Get("/", h.HandleListBuckets)
	buckets.Get("/:name", h.HandleBucketExists)

	objects := app.Group("/objects")
	objects.Get("/", h.HandleList)
	objects.Get("/*", h.HandleExists)
	objects.Post("/*", h.HandleUploadForm)
	objects.Put("/*", h.HandleUploadRaw)
	objects.Delete("/*", h.HandleDelete)

	app.Post("/imports", h.HandleImport)
}

// HandleListBuckets lists all buckets.
// @Summary List Buckets
// @Description Lists every bucket visible to the configured credentials.
// @Tags buckets
// @Produce json
// @Success 200 {array} storage.Bucket
// @Failure 500 {object} map[string]string "Storage Error"
// @Router /buckets [get]
func (h *Handler) HandleListBuckets(c *fiber.Ctx) error {
	buckets, err := h.repository(c).ListBuckets(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(buckets)
}

// HandleBucketExists checks whether a bucket exists.
// @Summary Check Bucket
// @Tags buckets
// @Produce json
// @Param name path string true "Bucket name"
// @Success 200 {object} map[string]interface{} "Bucket Report"
// @Failure 500 {object} map[string]string "Storage Error"
// @Router /buckets/{name} [get]
func (h *Handler) HandleBucketExists(c *fiber.Ctx) error {
	name := c.Params("name")
	exists, err := h.repository(c).BucketExists(c.UserContext(), name)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"bucket": name, "exists": exists})
}

// HandleList lists objects under a prefix.
// @Summary List Objects
// @Description Lists objects of the default bucket whose key starts with the prefix, in backend order.
// @Tags objects
// @Produce json
// @Param prefix query string false "Key prefix"
// @Success 200 {array} storage.Item
// @Failure 500 {object} map[string]string "Storage Error"
// @Router /objects [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	items, err := h.repository(c).List(c.UserContext(), c.Query("prefix"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(items)
}

// HandleExists checks whether an object exists.
// @Summary Check Object
// @Tags objects
// @Produce json
// @Param path path string true "Object path"
// @Success 200 {object} map[string]interface{} "Object Report"
// @Failure 404 {object} map[string]interface{} "Object Report"
// @Failure 500 {object} map[string]string "Storage Error"
// @Router /objects/{path} [get]
func (h *Handler) HandleExists(c *fiber.Ctx) error {
	path, err := objectPath(c)
	if err != nil {
		return err
	}

	repo := h.repository(c)
	exists, err := repo.Exists(c.UserContext(), path)
	if err != nil {
		return h.fail(c, err)
	}

	status := fiber.StatusOK
	if !exists {
		status = fiber.StatusNotFound
	}
	return c.Status(status).JSON(fiber.Map{
		"path":   path,
		"exists": exists,
		"url":    repo.FullPath(path),
	})
}

// HandleUploadForm uploads a multipart form file.
// @Summary Upload Form File
// @Description Uploads the "file" form field. The file name is used when the path is empty.
// @Tags objects
// @Accept multipart/form-data
// @Produce json
// @Param path path string true "Object path"
// @Param file formData file true "File to upload"
// @Success 201 {object} map[string]string "Uploaded"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Storage Error"
// @Router /objects/{path} [post]
func (h *Handler) HandleUploadForm(c *fiber.Ctx) error {
	path, err := objectPath(c)
	if err != nil {
		return err
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing form file \"file\""})
	}
	if path == "" {
		path = file.Filename
	}

	repo := h.repository(c)
	if err := repo.UploadFile(c.UserContext(), file, path); err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"path": path, "url": repo.FullPath(path)})
}

// HandleUploadRaw uploads the raw request body.
// @Summary Upload Raw Body
// @Description Stores the request body as-is with the request's Content-Type.
// @Tags objects
// @Accept octet-stream
// @Produce json
// @Param path path string true "Object path"
// @Success 201 {object} map[string]string "Uploaded"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Storage Error"
// @Router /objects/{path} [put]
func (h *Handler) HandleUploadRaw(c *fiber.Ctx) error {
	path, err := objectPath(c)
	if err != nil {
		return err
	}
	if path == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "object path is required"})
	}

	contentType := c.Get(fiber.HeaderContentType)
	if contentType == "" {
		contentType = fiber.MIMEOctetStream
	}

	body := c.Body()
	repo := h.repository(c)
	if err := repo.Upload(c.UserContext(), bytes.NewReader(body), path, int64(len(body)), contentType); err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"path": path, "url": repo.FullPath(path)})
}

// HandleImport streams a remote resource into the bucket.
// @Summary Import From URI
// @Description Fetches the URI and streams it into the object path. The remote response must carry Content-Length and Content-Type.
// @Tags objects
// @Accept json
// @Produce json
// @Param request body ImportRequest true "Import request"
// @Success 201 {object} map[string]string "Imported"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 422 {object} map[string]string "Remote metadata missing"
// @Failure 500 {object} map[string]string "Storage Error"
// @Router /imports [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	var req ImportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.URI == "" || req.Path == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "uri and path are required"})
	}

	repo := h.repository(c)
	if err := repo.UploadFromURI(c.UserContext(), req.URI, req.Path); err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"path": req.Path, "url": repo.FullPath(req.Path)})
}

// HandleDelete removes an object.
// @Summary Delete Object
// @Tags objects
// @Param path path string true "Object path"
// @Success 204
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Storage Error"
// @Router /objects/{path} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	path, err := objectPath(c)
	if err != nil {
		return err
	}
	if path == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "object path is required"})
	}

	if err := h.repository(c).Delete(c.UserContext(), path); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) repository(c *fiber.Ctx) *storage.Repository {
	return scope.Repository(c)
}

// fail maps repository errors onto HTTP statuses.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, storage.ErrMissingMetadata):
		status = fiber.StatusUnprocessableEntity
	}

	if status == fiber.StatusInternalServerError {
		logger.WithRayID(h.logger, c).Error("Storage request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func objectPath(c *fiber.Ctx) (string, error) {
	path, err := url.PathUnescape(c.Params("*"))
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "malformed object path")
	}
	return path, nil
}
