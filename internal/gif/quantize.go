package gif

// nearestIndex returns the palette entry closest to c by squared Euclidean
// distance in RGB space. Ties keep the lowest index.
func nearestIndex(palette ColorTable, c RGB) byte {
	best := -1
	bestDist := 0
	for i, p := range palette {
		dr := int(p.R) - int(c.R)
		dg := int(p.G) - int(c.G)
		db := int(p.B) - int(c.B)
		d := dr*dr + dg*dg + db*db
		if best < 0 || d < bestDist {
			best, bestDist = i, d
			if d == 0 {
				break
			}
		}
	}
	if best < 0 {
		return 0
	}
	return byte(best)
}

// maxCachedColors bounds the quantizer memo. Once reached the memo is
// dropped and refilled, so a long run of truecolor frames cannot grow it
// toward the full 2^24 color space.
const maxCachedColors = 1 << 16

// quantizer maps truecolor pixels to palette indices, remembering the answer
// for colors it has already seen.
type quantizer struct {
	palette ColorTable
	cache   map[RGB]byte
	limit   int
}

func newQuantizer(palette ColorTable) *quantizer {
	return &quantizer{palette: palette, cache: make(map[RGB]byte), limit: maxCachedColors}
}

// quantize converts packed RGB triples into one index per pixel.
func (q *quantizer) quantize(rgb []byte) []byte {
	out := make([]byte, len(rgb)/3)
	for i := range out {
		c := RGB{R: rgb[3*i], G: rgb[3*i+1], B: rgb[3*i+2]}
		idx, ok := q.cache[c]
		if !ok {
			idx = nearestIndex(q.palette, c)
			if len(q.cache) >= q.limit {
				clear(q.cache)
			}
			q.cache[c] = idx
		}
		out[i] = idx
	}
	return out
}
