package renderer

import (
	"log/slog"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// TextureCache loads each texture file once. Paths that cannot be loaded
// are remembered so the placeholder is used without retrying every frame.
type TextureCache struct {
	root     string
	textures map[string]rl.Texture2D
	missing  map[string]bool
}

// NewTextureCache creates a cache resolving relative paths against root.
func NewTextureCache(root string) *TextureCache {
	return &TextureCache{
		root:     root,
		textures: make(map[string]rl.Texture2D),
		missing:  make(map[string]bool),
	}
}

// Get returns the texture at path. ok is false for an empty path or a file
// that failed to load.
func (c *TextureCache) Get(path string) (tex rl.Texture2D, ok bool) {
	if path == "" || c.missing[path] {
		return rl.Texture2D{}, false
	}
	if tex, ok := c.textures[path]; ok {
		return tex, true
	}

	full := c.resolve(path)
	if !rl.FileExists(full) {
		slog.Warn("texture not found, drawing placeholder", "path", full)
		c.missing[path] = true
		return rl.Texture2D{}, false
	}
	tex = rl.LoadTexture(full)
	if tex.ID == 0 {
		slog.Warn("texture failed to load, drawing placeholder", "path", full)
		c.missing[path] = true
		return rl.Texture2D{}, false
	}
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	c.textures[path] = tex
	return tex, true
}

// Preload loads every path up front so the first frames do not stall.
func (c *TextureCache) Preload(paths ...string) {
	for _, p := range paths {
		c.Get(p)
	}
}

// Len returns the number of loaded textures.
func (c *TextureCache) Len() int { return len(c.textures) }

func (c *TextureCache) resolve(path string) string {
	if c.root == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.root, path)
}

// Unload frees every loaded texture.
func (c *TextureCache) Unload() {
	for path, tex := range c.textures {
		rl.UnloadTexture(tex)
		delete(c.textures, path)
	}
	clear(c.missing)
}
