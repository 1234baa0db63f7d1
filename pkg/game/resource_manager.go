package game

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"github.com/decker502/textbox/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFontPath 内置 Go Regular 字体的缓存键
const DefaultFontPath = "builtin:goregular"

// ResourceManager is responsible for centralized management of textbox resources.
// It loads and caches font faces, and holds the shared audio context.
//
// Fonts are looked up in the embedded filesystem first and then on disk,
// so a custom font can be dropped next to the binary during development.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. The internal caches use standard Go maps.
// For the single-threaded game loop, no synchronization is needed.
type ResourceManager struct {
	audioContext    *audio.Context                   // Global audio context, may be nil in tests
	fontSourceCache map[string]*text.GoTextFaceSource // Cache for parsed font sources: path -> source
	fontFaceCache   map[string]*text.GoTextFace       // Cache for Ebitengine v2 text faces: "path:size" -> face
}

// NewResourceManager creates and initializes a new ResourceManager instance.
//
// Parameters:
//   - audioContext: The global audio context; nil disables audio.
func NewResourceManager(audioContext *audio.Context) *ResourceManager {
	return &ResourceManager{
		audioContext:    audioContext,
		fontSourceCache: make(map[string]*text.GoTextFaceSource),
		fontFaceCache:   make(map[string]*text.GoTextFace),
	}
}

// AudioContext returns the shared audio context (may be nil).
func (rm *ResourceManager) AudioContext() *audio.Context {
	return rm.audioContext
}

// LoadFont loads a font file and returns a face of the given size.
// Faces are cached by path and size; the parsed source is shared between sizes.
//
// Returns an error if the file cannot be read from the embedded FS or disk,
// or if it is not a valid font.
func (rm *ResourceManager) LoadFont(path string, size float64) (*text.GoTextFace, error) {
	cacheKey := fmt.Sprintf("%s:%.1f", path, size)
	if cachedFace, exists := rm.fontFaceCache[cacheKey]; exists {
		return cachedFace, nil
	}

	source, err := rm.loadFontSource(path)
	if err != nil {
		return nil, err
	}

	goTextFace := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[cacheKey] = goTextFace
	return goTextFace, nil
}

// LoadDefaultFont returns the built-in Go Regular face of the given size.
func (rm *ResourceManager) LoadDefaultFont(size float64) (*text.GoTextFace, error) {
	return rm.LoadFont(DefaultFontPath, size)
}

// LoadFontOrDefault loads the font at path, falling back to the built-in font
// when path is empty or the font cannot be loaded.
func (rm *ResourceManager) LoadFontOrDefault(path string, size float64) (*text.GoTextFace, error) {
	if path != "" {
		face, err := rm.LoadFont(path, size)
		if err == nil {
			return face, nil
		}
		log.Printf("[ResourceManager] Warning: failed to load font %s: %v (using built-in font)", path, err)
	}
	return rm.LoadDefaultFont(size)
}

func (rm *ResourceManager) loadFontSource(path string) (*text.GoTextFaceSource, error) {
	if source, exists := rm.fontSourceCache[path]; exists {
		return source, nil
	}

	fontData, err := readFontData(path)
	if err != nil {
		return nil, err
	}

	source, err := text.NewGoTextFaceSource(bytes.NewReader(fontData))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source for %s: %w", path, err)
	}

	rm.fontSourceCache[path] = source
	return source, nil
}

// readFontData 读取字体数据：内置字体 → 嵌入资源 → 磁盘
func readFontData(path string) ([]byte, error) {
	if path == DefaultFontPath {
		return goregular.TTF, nil
	}
	if embedded.IsInitialized() && embedded.Exists(path) {
		return embedded.ReadFile(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file %s: %w", path, err)
	}
	return data, nil
}
