package services

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// ErrNoFont means no usable monospace font exists on the host. The text
// report path is unaffected; only image rendering is unavailable.
var ErrNoFont = errors.New("no suitable monospace font found")

// RenderConfig holds all rendering knobs. Passed explicitly so nothing
// about fonts or colors lives in package globals.
type RenderConfig struct {
	FontSize    float64
	LineSpacing int
	Padding     int
	Background  color.RGBA
	Text        color.RGBA
	CacheDir    string
	FontPath    string // explicit font file, skips discovery when set
}

// DefaultRenderConfig returns the stock dark-background style
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		FontSize:    14,
		LineSpacing: 4,
		Padding:     20,
		Background:  color.RGBA{R: 25, G: 25, B: 25, A: 255},
		Text:        color.RGBA{R: 230, G: 230, B: 230, A: 255},
	}
}

// monoFontCandidates lists well-known monospace font files per platform,
// tried in order.
func monoFontCandidates() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{"consola.ttf", "cour.ttf", "lucon.ttf"}
	case "darwin":
		return []string{"Menlo.ttc", "Monaco.ttf", "Courier New.ttf"}
	case "linux":
		return []string{
			"DejaVuSansMono.ttf",
			"LiberationMono-Regular.ttf",
			"NotoMono-Regular.ttf",
			"UbuntuMono-R.ttf",
			"DroidSansMono.ttf",
		}
	default:
		return []string{"Courier New.ttf", "DejaVuSansMono.ttf"}
	}
}

// fontSearchDirs lists the standard font directories per platform
func fontSearchDirs() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{`C:\Windows\Fonts`}
	case "darwin":
		return []string{"/System/Library/Fonts", "/Library/Fonts"}
	default:
		dirs := []string{"/usr/share/fonts", "/usr/local/share/fonts"}
		if home, err := os.UserHomeDir(); err == nil {
			dirs = append(dirs, filepath.Join(home, ".fonts"))
		}
		return dirs
	}
}

// findMonoFontFile walks the platform font directories looking for the
// first candidate monospace font file.
func findMonoFontFile() (string, error) {
	candidates := monoFontCandidates()

	for _, dir := range fontSearchDirs() {
		var found string
		filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			base := d.Name()
			for _, candidate := range candidates {
				if strings.EqualFold(base, candidate) {
					found = path
					return filepath.SkipAll
				}
			}
			return nil
		})
		if found != "" {
			return found, nil
		}
	}
	return "", ErrNoFont
}

// loadMonoFace resolves and parses a monospace font face at the
// configured size.
func loadMonoFace(cfg RenderConfig) (font.Face, error) {
	path := cfg.FontPath
	if path == "" {
		var err error
		path, err = findMonoFontFile()
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading font %s: %w", path, err)
	}

	var parsed *opentype.Font
	if strings.EqualFold(filepath.Ext(path), ".ttc") {
		collection, err := opentype.ParseCollection(data)
		if err != nil {
			return nil, fmt.Errorf("parsing font collection %s: %w", path, err)
		}
		parsed, err = collection.Font(0)
		if err != nil {
			return nil, fmt.Errorf("loading font from collection %s: %w", path, err)
		}
	} else {
		parsed, err = opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parsing font %s: %w", path, err)
		}
	}

	return opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    cfg.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// RenderStatusImage rasterizes the report lines onto a PNG and saves it
// into the cache directory under a unique name, returning the absolute
// path of the artifact.
func RenderStatusImage(lines []string, cfg RenderConfig) (string, error) {
	if len(lines) == 0 {
		return "", errors.New("no report lines to render")
	}

	cacheDir, err := PrepareCacheDir(cfg.CacheDir)
	if err != nil {
		return "", err
	}

	face, err := loadMonoFace(cfg)
	if err != nil {
		return "", err
	}
	defer face.Close()

	metrics := face.Metrics()
	lineHeight := metrics.Ascent.Ceil() + metrics.Descent.Ceil()

	measurer := &font.Drawer{Face: face}
	maxWidth := 0
	for _, line := range lines {
		if w := measurer.MeasureString(line).Ceil(); w > maxWidth {
			maxWidth = w
		}
	}

	totalHeight := len(lines)*lineHeight + (len(lines)-1)*cfg.LineSpacing
	imgWidth := maxWidth + 2*cfg.Padding
	imgHeight := totalHeight + 2*cfg.Padding

	img := image.NewRGBA(image.Rect(0, 0, imgWidth, imgHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(cfg.Background), image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(cfg.Text),
		Face: face,
	}

	y := cfg.Padding + metrics.Ascent.Ceil()
	for _, line := range lines {
		drawer.Dot = fixed.P(cfg.Padding, y)
		drawer.DrawString(line)
		y += lineHeight + cfg.LineSpacing
	}

	filename := fmt.Sprintf("status_%s.png", uuid.NewString())
	path := filepath.Join(cacheDir, filename)

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating image file: %w", err)
	}
	defer out.Close()

	if err := png.Encode(out, img); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("encoding image: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return path, nil
	}
	return abs, nil
}
