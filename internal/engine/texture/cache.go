package texture

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/meshforge/internal/engine/gpu"
	"github.com/Faultbox/meshforge/internal/engine/material"
	"github.com/Faultbox/meshforge/internal/logger"
)

// Cache loads 2D textures into one asset's name -> handle table. A name is
// read from disk at most once per table.
type Cache struct {
	dev      gpu.Device
	textures map[string]gpu.Texture
	log      *zap.Logger
}

// NewCache creates a cache that fills textures. A nil map is allocated.
func NewCache(dev gpu.Device, textures map[string]gpu.Texture) *Cache {
	if textures == nil {
		textures = make(map[string]gpu.Texture)
	}
	return &Cache{
		dev:      dev,
		textures: textures,
		log:      logger.Named("texture"),
	}
}

// Textures returns the table the cache fills.
func (c *Cache) Textures() map[string]gpu.Texture {
	return c.textures
}

// Load2D returns the texture for name, loading it on first use.
// name is tried as given, then relative to the directory of basePath.
// An empty name loads nothing and returns 0.
//
// A texture that cannot be found or decoded terminates the process.
func (c *Cache) Load2D(basePath, name string) gpu.Texture {
	tex, _ := c.Load2DImage(basePath, name)
	return tex
}

// Load2DImage is Load2D that also returns the decoded image when the
// texture was read by this call. A cached name returns a nil image.
func (c *Cache) Load2DImage(basePath, name string) (gpu.Texture, *gpu.Image) {
	if name == "" {
		return 0, nil
	}
	if tex, ok := c.textures[name]; ok {
		return tex, nil
	}

	path, ok := ResolvePath(basePath, name)
	if !ok {
		c.log.Fatal("texture not found",
			zap.String("name", name),
			zap.String("base", basePath))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		c.log.Fatal("failed to read texture", zap.String("path", path), zap.Error(err))
	}

	img, err := Decode(data, path)
	if err != nil {
		c.log.Fatal("failed to decode texture", zap.String("path", path), zap.Error(err))
	}

	tex, err := c.dev.CreateTexture2D(img)
	if err != nil {
		c.log.Fatal("failed to upload texture", zap.String("path", path), zap.Error(err))
	}

	c.log.Debug("texture loaded",
		zap.String("name", name),
		zap.String("path", path),
		zap.Int("width", img.Width),
		zap.Int("height", img.Height),
		zap.Stringer("format", img.Format()))

	c.textures[name] = tex
	return tex, img
}

// LoadMaterials preloads every texture slot of every material.
func (c *Cache) LoadMaterials(basePath string, materials []material.Material) {
	for i := range materials {
		materials[i].Textures.Each(func(_ material.Slot, name string) {
			c.Load2D(basePath, name)
		})
	}
}

// ResolvePath finds the file for a texture name. The literal name wins over
// the copy next to basePath. Backslash separators are accepted.
func ResolvePath(basePath, name string) (string, bool) {
	name = strings.ReplaceAll(name, "\\", "/")

	if isFile(name) {
		return name, true
	}

	candidate := filepath.Join(filepath.Dir(basePath), filepath.FromSlash(name))
	if isFile(candidate) {
		return candidate, true
	}
	return "", false
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
