package ledlayers

// Strip is the hardware pixel sink a Buffer composites into. Implementations
// hold assigned values in memory until Write transmits them to the physical
// device in one operation.
type Strip interface {
	// Len returns the fixed number of pixels on the strip
	Len() int

	// Set assigns the in-memory value at a pixel position
	Set(i int, c Color)

	// Write transmits all assigned values to the physical hardware
	Write() error
}

// MemStrip is a Strip with no hardware behind it. The simulator paints from
// one and tests assert against one.
type MemStrip struct {
	pixels []Color
	writes int
}

// NewMemStrip creates an in-memory strip with the given pixel count
func NewMemStrip(pixels int) (strip *MemStrip) {
	return &MemStrip{pixels: make([]Color, pixels)}
}

// Len returns the fixed number of pixels on the strip
func (strip *MemStrip) Len() int { return len(strip.pixels) }

// Set assigns the in-memory value at a pixel position
func (strip *MemStrip) Set(i int, c Color) { strip.pixels[i] = c }

// Write counts the flush, there being no hardware to transmit to
func (strip *MemStrip) Write() error {
	strip.writes++
	return nil
}

// Pixel returns the last value assigned at a position
func (strip *MemStrip) Pixel(i int) Color { return strip.pixels[i] }

// Writes returns how many times the strip has been flushed
func (strip *MemStrip) Writes() int { return strip.writes }

// Snapshot copies out the current pixel values
func (strip *MemStrip) Snapshot() (pixels []Color) {
	pixels = make([]Color, len(strip.pixels))
	copy(pixels, strip.pixels)
	return pixels
}
