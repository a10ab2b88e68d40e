package gif

import "fmt"

// interlacePasses lists the start row and row step of the four GIF
// interlace passes.
var interlacePasses = [4]struct{ start, step int }{
	{0, 8},
	{4, 8},
	{2, 4},
	{1, 2},
}

// deinterlace reorders rows stored in interlace pass order into top-down order.
func deinterlace(pix []byte, width, height int) []byte {
	if width == 0 || height == 0 {
		return pix
	}
	out := make([]byte, len(pix))
	src := 0
	for _, pass := range interlacePasses {
		for y := pass.start; y < height; y += pass.step {
			copy(out[y*width:(y+1)*width], pix[src*width:(src+1)*width])
			src++
		}
	}
	return out
}

// checkIndices rejects frames referencing entries past the end of the active
// table, so a bad frame never reaches the canvas.
func checkIndices(indices []byte, palette ColorTable, gc GraphicControl) error {
	if len(palette) >= 256 {
		return nil
	}
	limit := byte(len(palette))
	for i, idx := range indices {
		if idx < limit {
			continue
		}
		if gc.HasTransparency && idx == gc.TransparentIndex {
			continue
		}
		return fmt.Errorf("%w: pixel %d uses index %d of a %d-entry table", ErrMalformed, i, idx, len(palette))
	}
	return nil
}

// clip intersects a frame rectangle with the canvas.
func (r *Reader) clip(desc ImageDescriptor) (x0, y0, x1, y1 int) {
	x0, y0, x1, y1 = desc.Bounds()
	x1 = min(x1, int(r.screen.Width))
	y1 = min(y1, int(r.screen.Height))
	return x0, y0, x1, y1
}

// composite writes the frame's resolved colors into the canvas. Transparent
// pixels keep the existing canvas value; pixels outside the canvas are dropped.
func (r *Reader) composite(desc ImageDescriptor, palette ColorTable, gc GraphicControl, indices []byte) {
	cw := int(r.screen.Width)
	fw := int(desc.Width)
	x0, y0, x1, y1 := r.clip(desc)
	for y := y0; y < y1; y++ {
		row := indices[(y-y0)*fw : (y-y0)*fw+fw]
		dst := r.canvas[3*(y*cw):]
		for x := x0; x < x1; x++ {
			idx := row[x-x0]
			if gc.HasTransparency && idx == gc.TransparentIndex {
				continue
			}
			c := palette[idx]
			off := 3 * x
			dst[off] = c.R
			dst[off+1] = c.G
			dst[off+2] = c.B
		}
	}
}

// dispose applies the previous frame's disposal method before the next frame
// is drawn. It only runs under DisposalApply.
func (r *Reader) dispose() {
	prev := r.prevFrame
	if prev == nil {
		return
	}
	switch prev.gc.Disposal {
	case DisposalRestoreToBackground:
		bg := r.backgroundColor()
		cw := int(r.screen.Width)
		x0, y0, x1, y1 := r.clip(prev.desc)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				off := 3 * (y*cw + x)
				r.canvas[off] = bg.R
				r.canvas[off+1] = bg.G
				r.canvas[off+2] = bg.B
			}
		}
	case DisposalRestoreToPrevious:
		if len(r.prevSnapshot) == len(r.canvas) {
			copy(r.canvas, r.prevSnapshot)
		}
	}
}

func (r *Reader) backgroundColor() RGB {
	global := r.screen.Global
	if int(r.screen.BackgroundIndex) < len(global) {
		return global[r.screen.BackgroundIndex]
	}
	return RGB{}
}
