package catalog

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/schedly/schedly-api/internal/pkg/imaging"
	"github.com/schedly/schedly-api/internal/pkg/storage"
)

// Catalog handles service catalog business logic
type Catalog struct {
	repo      Repository
	store     storage.Storage
	processor *imaging.Processor
}

// NewCatalog creates catalog service
func NewCatalog(repo Repository, store storage.Storage, processor *imaging.Processor) *Catalog {
	return &Catalog{repo: repo, store: store, processor: processor}
}

// Create adds a catalog service
func (c *Catalog) Create(ctx context.Context, req *CreateServiceRequest) (*Service, error) {
	now := time.Now()
	s := &Service{
		ID:          uuid.New(),
		Name:        req.Name,
		Price:       req.Price,
		Description: nullString(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := c.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// GetByID returns one catalog service
func (c *Catalog) GetByID(ctx context.Context, id uuid.UUID) (*Service, error) {
	return c.repo.GetByID(ctx, id)
}

// List returns the full catalog
func (c *Catalog) List(ctx context.Context) ([]*Service, error) {
	return c.repo.List(ctx)
}

// Update edits name/price/description of a catalog service
func (c *Catalog) Update(ctx context.Context, id uuid.UUID, req *UpdateServiceRequest) (*Service, error) {
	s, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.Name = req.Name
	s.Price = req.Price
	s.Description = nullString(req.Description)
	s.UpdatedAt = time.Now()

	if err := c.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Delete removes a catalog service and its stored images
func (c *Catalog) Delete(ctx context.Context, id uuid.UUID) error {
	s, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := c.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Stored images are cleaned up best-effort; a stale object is harmless.
	c.removeObject(ctx, storageKey(s.ImageURL))
	c.removeObject(ctx, storageKey(s.ThumbURL))

	return nil
}

// SetImage processes and stores a service image plus its thumbnail, then
// records the public URLs on the service.
func (c *Catalog) SetImage(ctx context.Context, id uuid.UUID, filename string, size int64, reader io.Reader) (*Service, error) {
	if !imaging.ValidType(filename) {
		return nil, ErrInvalidImage
	}
	if size > imaging.MaxFileSize {
		return nil, ErrImageTooLarge
	}

	s, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	processed, err := c.processor.Process(reader)
	if err != nil {
		return nil, ErrInvalidImage
	}

	originalKey, thumbKey := imaging.KeyPair("services", s.ID.String(), filename)
	if err := c.store.Put(ctx, originalKey, bytes.NewReader(processed.Original), processed.ContentType); err != nil {
		return nil, err
	}
	if err := c.store.Put(ctx, thumbKey, bytes.NewReader(processed.Thumbnail), processed.ContentType); err != nil {
		return nil, err
	}

	// A re-upload with a different extension lands under new keys; drop the
	// previous objects so they do not accumulate.
	if old := storageKey(s.ImageURL); old != "" && old != originalKey {
		c.removeObject(ctx, old)
	}
	if old := storageKey(s.ThumbURL); old != "" && old != thumbKey {
		c.removeObject(ctx, old)
	}

	s.ImageURL = nullString(c.store.GetURL(originalKey))
	s.ThumbURL = nullString(c.store.GetURL(thumbKey))
	s.UpdatedAt = time.Now()

	if err := c.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// removeObject deletes a stored object if it is still present. Failures are
// logged, never returned: cleanup must not fail the catalog operation.
func (c *Catalog) removeObject(ctx context.Context, key string) {
	if key == "" {
		return
	}
	ok, err := c.store.Exists(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to check stored object")
		return
	}
	if !ok {
		return
	}
	if err := c.store.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to delete stored object")
	}
}

// storageKey recovers the object key from a stored public URL. Image keys
// are always services/<id><ext>, the last two path segments of the URL.
func storageKey(u sql.NullString) string {
	if !u.Valid {
		return ""
	}
	parsed, err := url.Parse(u.String)
	if err != nil {
		return ""
	}
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) < 2 {
		return ""
	}
	return segments[len(segments)-2] + "/" + segments[len(segments)-1]
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
