package render

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// DejaVu Sans covers the rupee sign, bullets and ellipsis used on every page.
// The bundled family has no light cut, so Light defaults to Regular.
var (
	//go:embed fonts/DejaVuSans.ttf
	dejaVuRegular []byte
	//go:embed fonts/DejaVuSans-Bold.ttf
	dejaVuBold []byte
)

// requiredRunes must map to a real glyph in every weight
var requiredRunes = []rune{'₹', '•', '…'}

// Weight selects a font variant
type Weight int

const (
	Regular Weight = iota
	Bold
	Light
)

var weightNames = map[Weight]string{
	Regular: "Regular",
	Bold:    "Bold",
	Light:   "Light",
}

// Fonts holds parsed font files. It is safe to share; faces made from it are not.
type Fonts struct {
	fonts map[Weight]*opentype.Font
}

// LoadFonts parses Regular/Bold/Light .ttf or .otf files from dir. Missing files
// fall back to the embedded DejaVu Sans family (Light falls back to Regular). An
// empty dir uses the embedded fonts only. A font without a glyph for one of the
// required runes is rejected.
func LoadFonts(dir string) (*Fonts, error) {
	regular, err := opentype.Parse(dejaVuRegular)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded regular font: %w", err)
	}
	bold, err := opentype.Parse(dejaVuBold)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded bold font: %w", err)
	}
	f := &Fonts{fonts: map[Weight]*opentype.Font{
		Regular: regular,
		Bold:    bold,
	}}

	if dir != "" {
		for weight, name := range weightNames {
			parsed, err := loadFontFile(dir, name)
			if err != nil {
				return nil, err
			}
			if parsed != nil {
				f.fonts[weight] = parsed
			}
		}
	}
	if f.fonts[Light] == nil {
		f.fonts[Light] = f.fonts[Regular]
	}
	for weight, otf := range f.fonts {
		if err := checkCoverage(otf); err != nil {
			return nil, fmt.Errorf("font %s: %w", weightNames[weight], err)
		}
	}
	return f, nil
}

func checkCoverage(otf *opentype.Font) error {
	var buf sfnt.Buffer
	for _, r := range requiredRunes {
		idx, err := otf.GlyphIndex(&buf, r)
		if err != nil {
			return fmt.Errorf("failed to look up glyph %q: %w", r, err)
		}
		if idx == 0 {
			return fmt.Errorf("no glyph for %q (U+%04X)", r, r)
		}
	}
	return nil
}

func loadFontFile(dir, name string) (*opentype.Font, error) {
	for _, ext := range []string{".ttf", ".otf"} {
		path := filepath.Join(dir, name+ext)
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read font %s: %w", path, err)
		}
		parsed, err := opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
		}
		return parsed, nil
	}
	return nil, nil
}

type faceKey struct {
	weight Weight
	size   float64
}

// faceCache creates faces lazily for one render. Not safe for concurrent use.
type faceCache struct {
	fonts *Fonts
	faces map[faceKey]font.Face
}

func (f *Fonts) newFaceCache() *faceCache {
	return &faceCache{fonts: f, faces: make(map[faceKey]font.Face)}
}

// face returns a face of size px. DPI 72 makes the point size equal the pixel size.
func (c *faceCache) face(weight Weight, size float64) font.Face {
	key := faceKey{weight, size}
	if face, ok := c.faces[key]; ok {
		return face
	}
	var face font.Face = basicfont.Face7x13
	if otf := c.fonts.fonts[weight]; otf != nil {
		f, err := opentype.NewFace(otf, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingNone,
		})
		if err == nil {
			face = f
		}
	}
	c.faces[key] = face
	return face
}

func (c *faceCache) close() {
	for _, face := range c.faces {
		if face != basicfont.Face7x13 {
			face.Close()
		}
	}
}
