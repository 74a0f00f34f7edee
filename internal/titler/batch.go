package titler

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ivlev/listvideo/internal/items"
	"github.com/ivlev/listvideo/internal/source"
)

// RenderAll writes the titled image of every item/prompt pair in list and
// returns the written paths. Failures are logged and skipped.
func (t *Titler) RenderAll(list []items.Item, naming items.Naming, loader source.Loader) ([]string, int) {
	var written []string
	failed := 0
	for i, item := range list {
		index := i + 1
		for j := range item.ImagePrompts {
			prompt := j + 1
			out, err := t.renderOne(loader, naming.SourceImagePath(index, prompt), naming.ImagePath(index, prompt), item.Title)
			if err != nil {
				log.Printf("[!] Item %02d prompt %02d: %v", index, prompt, err)
				failed++
				continue
			}
			written = append(written, out)
			fmt.Printf("[>] Готово: %s\n", out)
		}
	}
	return written, failed
}

func (t *Titler) renderOne(loader source.Loader, src, out, title string) (string, error) {
	img, err := loader.Load(src)
	if err != nil {
		return "", err
	}
	if err := SaveImage(out, t.Render(img, title)); err != nil {
		return "", err
	}
	return out, nil
}

// SaveImage encodes img as JPEG or PNG depending on the extension of path.
func SaveImage(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 92})
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
