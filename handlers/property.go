package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/deepak-dots/property-management-system/models"
	"github.com/deepak-dots/property-management-system/query"
	"github.com/deepak-dots/property-management-system/store"
	"github.com/deepak-dots/property-management-system/uploads"
	"github.com/deepak-dots/property-management-system/utils"
)

const (
	maxImagesPerRequest = 10
	relatedLimit        = 3

	listCachePrefix = "properties"
	listCacheTTL    = time.Minute
)

type PropertyController struct {
	store         store.PropertyStore
	assets        *uploads.Store
	cache         *utils.Cache
	cascadeDelete bool
}

func NewPropertyController(s store.PropertyStore, assets *uploads.Store, cache *utils.Cache, cascadeDelete bool) *PropertyController {
	return &PropertyController{
		store:         s,
		assets:        assets,
		cache:         cache,
		cascadeDelete: cascadeDelete,
	}
}

func (pc *PropertyController) ListProperties(c echo.Context) error {
	ctx := c.Request().Context()

	filter, err := query.ParseFilter(c.QueryParam)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid price filter"})
	}
	page := query.ParsePage(c.QueryParam("page"), c.QueryParam("limit"))

	cacheKey := utils.QueryCacheKey(listCachePrefix, queryParamMap(c.QueryParams()))
	var cached models.PropertyListResponse
	if hit, err := pc.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return c.JSON(http.StatusOK, cached)
	}

	properties, total, err := pc.store.List(ctx, filter, page)
	if err != nil {
		slog.Error("failed to list properties", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to fetch properties"})
	}

	resp := models.PropertyListResponse{
		Properties: properties,
		Total:      total,
		Page:       page.Number,
		TotalPages: query.TotalPages(total, page.Limit),
	}

	if err := pc.cache.Set(ctx, cacheKey, resp, listCacheTTL); err != nil {
		slog.Warn("failed to cache property list", "error", err)
	}

	return c.JSON(http.StatusOK, resp)
}

func (pc *PropertyController) GetProperty(c echo.Context) error {
	property, err := pc.store.Get(c.Request().Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Property not found"})
	}
	if err != nil {
		slog.Error("failed to fetch property", "id", c.Param("id"), "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to fetch property"})
	}
	return c.JSON(http.StatusOK, property)
}

func (pc *PropertyController) CreateProperty(c echo.Context) error {
	ctx := c.Request().Context()

	values, err := c.FormParams()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid form data"})
	}

	if strings.TrimSpace(c.FormValue("title")) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Title is required"})
	}

	property := models.Property{
		ActiveStatus: models.ActiveStatusDraft,
		Images:       []string{},
	}
	if err := applyScalarFields(&property, values); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
	}

	files, err := imageFiles(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
	}

	names, err := pc.saveAll(files)
	if err != nil {
		slog.Error("failed to store uploaded images", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to store uploaded images"})
	}
	property.Images = names

	now := time.Now()
	property.CreatedAt = now
	property.UpdatedAt = now

	if err := pc.store.Create(ctx, &property); err != nil {
		slog.Error("failed to create property", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to create property"})
	}

	pc.invalidateListCache(c)

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":  "Property created!",
		"property": property,
	})
}

func (pc *PropertyController) UpdateProperty(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	property, err := pc.store.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Property not found"})
	}
	if err != nil {
		slog.Error("failed to fetch property", "id", id, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to fetch property"})
	}

	values, err := c.FormParams()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid form data"})
	}

	existing, err := jsonListField(values, "existingImages")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid existingImages value"})
	}
	removed, err := jsonListField(values, "removedImages")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid removedImages value"})
	}

	if err := applyScalarFields(property, values); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
	}

	files, err := imageFiles(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
	}

	uploaded, err := pc.saveAll(files)
	if err != nil {
		slog.Error("failed to store uploaded images", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to store uploaded images"})
	}

	result := uploads.Reconcile(uploads.Input{
		Stored:   property.Images,
		Existing: existing,
		Removed:  removed,
		Uploaded: uploaded,
	})
	property.Images = result.Images
	property.UpdatedAt = time.Now()

	if err := pc.store.Update(ctx, property); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"message": "Property not found"})
		}
		slog.Error("failed to update property", "id", id, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Update failed"})
	}

	// Record persisted; only now touch the disk so a failed save never
	// leaves the stored list pointing at deleted files.
	for _, name := range result.Deleted {
		if err := pc.assets.Remove(name); err != nil {
			slog.Warn("failed to delete image file", "file", name, "error", err)
		}
	}

	pc.invalidateListCache(c)

	return c.JSON(http.StatusOK, property)
}

func (pc *PropertyController) DuplicateProperty(c echo.Context) error {
	ctx := c.Request().Context()

	original, err := pc.store.Get(ctx, c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Property not found"})
	}
	if err != nil {
		slog.Error("failed to fetch property", "id", c.Param("id"), "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to duplicate property"})
	}

	duplicate := clone(original)
	duplicate.ID = primitive.NewObjectID()
	duplicate.Title = original.Title + " (Copy)"
	now := time.Now()
	duplicate.CreatedAt = now
	duplicate.UpdatedAt = now

	if err := pc.store.Create(ctx, duplicate); err != nil {
		slog.Error("failed to duplicate property", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to duplicate property"})
	}

	pc.invalidateListCache(c)

	return c.JSON(http.StatusCreated, duplicate)
}

func (pc *PropertyController) DeleteProperty(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	var images []string
	if pc.cascadeDelete {
		property, err := pc.store.Get(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"message": "Property not found"})
		}
		if err != nil {
			slog.Error("failed to fetch property", "id", id, "error", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Delete failed"})
		}
		images = property.Images
	}

	if err := pc.store.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"message": "Property not found"})
		}
		slog.Error("failed to delete property", "id", id, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Delete failed"})
	}

	for _, name := range images {
		if err := pc.assets.Remove(name); err != nil {
			slog.Warn("failed to delete image file", "file", name, "error", err)
		}
	}

	pc.invalidateListCache(c)

	return c.JSON(http.StatusOK, map[string]string{"message": "Property deleted successfully"})
}

func (pc *PropertyController) GetRelatedProperties(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	if _, err := pc.store.Get(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"message": "Property not found"})
		}
		slog.Error("failed to fetch property", "id", id, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Error fetching related properties"})
	}

	related, err := pc.store.Related(ctx, id, relatedLimit)
	if err != nil {
		slog.Error("failed to fetch related properties", "id", id, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Error fetching related properties"})
	}

	return c.JSON(http.StatusOK, related)
}

func (pc *PropertyController) saveAll(files []*multipart.FileHeader) ([]string, error) {
	names := []string{}
	for _, file := range files {
		name, err := pc.assets.Save(file)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

func (pc *PropertyController) invalidateListCache(c echo.Context) {
	if err := pc.cache.InvalidatePrefix(c.Request().Context(), listCachePrefix); err != nil {
		slog.Warn("failed to invalidate property list cache", "error", err)
	}
}

func imageFiles(c echo.Context) ([]*multipart.FileHeader, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// Not a multipart request; no files attached.
		return nil, nil
	}
	files := form.File["images"]
	if len(files) > maxImagesPerRequest {
		return nil, fmt.Errorf("at most %d images per request", maxImagesPerRequest)
	}
	return files, nil
}

// applyScalarFields copies supplied form fields onto the record.
// Absent and empty fields are left unchanged (partial update, not
// replacement); numeric and enum fields are validated on the way in.
func applyScalarFields(p *models.Property, values url.Values) error {
	if v := formValue(values, "title"); v != "" {
		p.Title = v
	}
	if v := formValue(values, "description"); v != "" {
		p.Description = v
	}
	if v := formValue(values, "city"); v != "" {
		p.City = v
	}
	if v := formValue(values, "address"); v != "" {
		p.Address = v
	}
	if v := formValue(values, "superBuiltupArea"); v != "" {
		p.SuperBuiltupArea = v
	}
	if v := formValue(values, "developer"); v != "" {
		p.Developer = v
	}
	if v := formValue(values, "project"); v != "" {
		p.Project = v
	}
	if v := formValue(values, "reraId"); v != "" {
		p.ReraID = v
	}

	if v := formValue(values, "bhkType"); v != "" {
		if !models.IsValidBHKType(v) {
			return fmt.Errorf("invalid bhkType %q", v)
		}
		p.BHKType = v
	}
	if v := formValue(values, "furnishing"); v != "" {
		if !models.IsValidFurnishing(v) {
			return fmt.Errorf("invalid furnishing %q", v)
		}
		p.Furnishing = v
	}
	if v := formValue(values, "transactionType"); v != "" {
		if !models.IsValidTransactionType(v) {
			return fmt.Errorf("invalid transactionType %q", v)
		}
		p.TransactionType = v
	}
	if v := formValue(values, "status"); v != "" {
		if !models.IsValidStatus(v) {
			return fmt.Errorf("invalid status %q", v)
		}
		p.Status = v
	}
	if v := formValue(values, "activeStatus"); v != "" {
		if !models.IsValidActiveStatus(v) {
			return fmt.Errorf("invalid activeStatus %q", v)
		}
		p.ActiveStatus = v
	}

	if v := formValue(values, "price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil || price < 0 {
			return fmt.Errorf("invalid price %q", v)
		}
		p.Price = &price
	}
	if v := formValue(values, "bedrooms"); v != "" {
		bedrooms, err := strconv.Atoi(v)
		if err != nil || bedrooms < 0 {
			return fmt.Errorf("invalid bedrooms %q", v)
		}
		p.Bedrooms = &bedrooms
	}
	if v := formValue(values, "bathrooms"); v != "" {
		bathrooms, err := strconv.Atoi(v)
		if err != nil || bathrooms < 0 {
			return fmt.Errorf("invalid bathrooms %q", v)
		}
		p.Bathrooms = &bathrooms
	}

	return nil
}

func formValue(values url.Values, key string) string {
	if vs, ok := values[key]; ok && len(vs) > 0 {
		return strings.TrimSpace(vs[0])
	}
	return ""
}

// jsonListField decodes a JSON-encoded string array form field. nil
// means the field was not sent at all.
func jsonListField(values url.Values, key string) ([]string, error) {
	vs, ok := values[key]
	if !ok || len(vs) == 0 || vs[0] == "" {
		return nil, nil
	}

	var list []string
	if err := json.Unmarshal([]byte(vs[0]), &list); err != nil {
		return nil, err
	}
	return list, nil
}

// clone deep-copies a property so the duplicate shares no pointers or
// slices with the source.
func clone(p *models.Property) *models.Property {
	copied := *p
	copied.Images = append([]string{}, p.Images...)
	if p.Price != nil {
		v := *p.Price
		copied.Price = &v
	}
	if p.Bedrooms != nil {
		v := *p.Bedrooms
		copied.Bedrooms = &v
	}
	if p.Bathrooms != nil {
		v := *p.Bathrooms
		copied.Bathrooms = &v
	}
	return &copied
}

func queryParamMap(values url.Values) map[string]string {
	params := make(map[string]string, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			params[k] = vs[0]
		}
	}
	return params
}
