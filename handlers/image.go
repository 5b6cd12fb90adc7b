package handlers

import (
	"image"
	"image/jpeg"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/bszet/subplan/cover"
	"github.com/bszet/subplan/pdfdoc"
)

const jpegQuality = 90

// ImageHandler renders plans to page images and serves them. Rendered
// files live on disk under short-lived IDs; whatever is neither fetched
// nor expired gets removed by the cache's eviction hook.
type ImageHandler struct {
	cache *gocache.Cache
	dir   string
	dpi   float64
	log   *slog.Logger
}

// NewImageHandler creates the handler. Rendered images are written to
// dir, which is created if missing and cleared of renderings left over
// from a previous run; images are kept for ttl.
func NewImageHandler(dir string, ttl time.Duration, dpi float64, log *slog.Logger) *ImageHandler {
	if log == nil {
		log = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Error("creating image directory failed", "dir", dir, "error", err)
	}
	if stale, err := filepath.Glob(filepath.Join(dir, "*.jpg")); err == nil {
		for _, path := range stale {
			if err := os.Remove(path); err != nil {
				log.Warn("removing stale image failed", "path", path, "error", err)
			}
		}
	}
	registry := gocache.New(ttl, ttl)
	registry.OnEvicted(func(id string, path interface{}) {
		if err := os.Remove(path.(string)); err != nil && !os.IsNotExist(err) {
			log.Warn("removing rendered image failed", "id", id, "error", err)
		}
	})
	return &ImageHandler{cache: registry, dir: dir, dpi: dpi, log: log}
}

// RenderPDF renders every page of the uploaded plan to a JPEG, with a
// generated cover sheet as the first image, and responds with the IDs
// under which the images can be fetched.
func (h *ImageHandler) RenderPDF(c *gin.Context) {
	doc, err := readPlan(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read upload"})
		return
	}

	sheet, err := cover.Sheet("Vertretungsplan", time.Now())
	if err != nil {
		h.log.Error("building cover sheet failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "rendering failed"})
		return
	}

	pages, err := pdfdoc.Rasterize(doc, h.dpi)
	if err != nil {
		h.log.Error("rendering plan failed", "error", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	coverPage, err := pdfdoc.RasterizePage(sheet, 1, h.dpi)
	if err != nil {
		h.log.Error("rendering cover failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "rendering failed"})
		return
	}

	ids := make([]string, 0, len(pages)+1)
	for _, img := range append([]image.Image{coverPage}, pages...) {
		id, err := h.saveImage(img)
		if err != nil {
			h.log.Error("saving rendered image failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "rendering failed"})
			return
		}
		ids = append(ids, id)
	}
	c.JSON(http.StatusOK, gin.H{"images": ids})
}

// saveImage writes one page image to disk and registers it.
func (h *ImageHandler) saveImage(img image.Image) (string, error) {
	id := uuid.NewString()
	path := filepath.Join(h.dir, id+".jpg")

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	h.cache.SetDefault(id, path)
	return id, nil
}

// GetImage serves one rendered image and removes it; every ID is
// fetchable exactly once.
func (h *ImageHandler) GetImage(c *gin.Context) {
	id := c.Param("id")
	path, ok := h.cache.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown or expired image"})
		return
	}
	c.File(path.(string))
	h.cache.Delete(id)
}
