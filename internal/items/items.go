// Package items reads the generated item list and maps item positions to the
// asset file names the upstream generators write.
package items

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Item is one entry of the generated list. Its identity is its 1-based
// position in the list.
type Item struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	ImagePrompts []string `json:"image_prompts"`
}

// LoadList reads a list JSON document from disk.
func LoadList(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read list %s: %w", path, err)
	}
	list, err := ParseList(data)
	if err != nil {
		return nil, fmt.Errorf("parse list %s: %w", path, err)
	}
	return list, nil
}

// ParseList decodes a list, tolerating the markdown code fences language
// models wrap around JSON.
func ParseList(data []byte) ([]Item, error) {
	var list []Item
	if err := json.Unmarshal([]byte(CleanJSON(string(data))), &list); err != nil {
		return nil, err
	}
	return list, nil
}

func CleanJSON(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// Naming builds asset paths for 1-based item and prompt numbers.
type Naming struct {
	AudioDir       string
	ImageDir       string
	SourceImageDir string
	AudioExt       string
	ImageExt       string
}

func (n Naming) AudioPath(item int) string {
	return filepath.Join(n.AudioDir, fmt.Sprintf("item_%02d.%s", item, n.AudioExt))
}

// ImagePath is the titled (captioned) image the video uses.
func (n Naming) ImagePath(item, prompt int) string {
	return filepath.Join(n.ImageDir, fmt.Sprintf("item_%02d_prompt_%02d_short.%s", item, prompt, n.ImageExt))
}

// SourceImagePath is the raw generated image before titling.
func (n Naming) SourceImagePath(item, prompt int) string {
	return filepath.Join(n.SourceImageDir, fmt.Sprintf("item_%02d_prompt_%02d.png", item, prompt))
}

// ImagePaths lists the titled images of one item in segment order.
func (n Naming) ImagePaths(item, count int) []string {
	paths := make([]string, count)
	for j := range paths {
		paths[j] = n.ImagePath(item, j+1)
	}
	return paths
}
