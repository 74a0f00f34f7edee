package system

import (
	"image"
	"sync"
)

// FramePool recycles *image.RGBA frame buffers by size, so streaming a long
// timeline does not allocate a new 8 MB frame per tick.
type FramePool struct {
	pools sync.Map // image.Rectangle -> *sync.Pool по размеру кадра
}

var frames FramePool

// GetImage returns a frame with exactly rect as bounds. Its contents are
// undefined; callers redraw it fully.
func GetImage(rect image.Rectangle) *image.RGBA {
	return frames.Get(rect)
}

// PutImage hands a frame back for reuse.
func PutImage(img *image.RGBA) {
	frames.Put(img)
}

func (p *FramePool) Get(rect image.Rectangle) *image.RGBA {
	v, ok := p.pools.Load(rect)
	if !ok {
		v, _ = p.pools.LoadOrStore(rect, &sync.Pool{
			New: func() any { return image.NewRGBA(rect) },
		})
	}
	return v.(*sync.Pool).Get().(*image.RGBA)
}

func (p *FramePool) Put(img *image.RGBA) {
	if img == nil {
		return
	}
	if v, ok := p.pools.Load(img.Rect); ok {
		v.(*sync.Pool).Put(img)
	}
}
