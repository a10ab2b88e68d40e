package main

import (
	"fmt"
	"os"

	"github.com/jdeng/gogif/internal/gif"
)

// dataBlocks splits payload into sub-blocks and appends the terminator.
func dataBlocks(payload []byte) []byte {
	var out []byte
	for len(payload) > 0 {
		n := min(len(payload), 255)
		out = append(out, byte(n))
		out = append(out, payload[:n]...)
		payload = payload[n:]
	}
	return append(out, 0x00)
}

// createTestGIF writes a two-frame 4x4 GIF that touches the less common
// parts of the format: a comment, an unknown application extension, a
// transparent frame with a local color table and interlaced rows.
func createTestGIF(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	codec := gif.StdLZW{}

	// Header and logical screen descriptor
	header := []byte{
		'G', 'I', 'F', '8', '9', 'a',
		0x04, 0x00, // Width (4)
		0x04, 0x00, // Height (4)
		0x81, // Global color table, 4 entries
		0x00, // Background index
		0x00, // Aspect ratio
		// Global color table: black, white, red, blue
		0x00, 0x00, 0x00,
		0xFF, 0xFF, 0xFF,
		0xFF, 0x00, 0x00,
		0x00, 0x00, 0xFF,
	}

	// Netscape loop extension, loop forever
	loop := []byte{
		0x21, 0xFF, 0x0B,
		'N', 'E', 'T', 'S', 'C', 'A', 'P', 'E', '2', '.', '0',
		0x03, 0x01, 0x00, 0x00,
		0x00,
	}

	comment := append([]byte{0x21, 0xFE}, dataBlocks([]byte("create-test-gif fixture"))...)

	// Application extension nobody recognizes
	unknown := []byte{
		0x21, 0xFF, 0x0B,
		'X', 'M', 'P', ' ', 'D', 'a', 't', 'a', 'X', 'M', 'P',
		0x02, 0xAB, 0xCD,
		0x00,
	}

	// Frame 1: full screen, rows of red, white, blue, black
	first := []byte{
		2, 2, 2, 2,
		1, 1, 1, 1,
		3, 3, 3, 3,
		0, 0, 0, 0,
	}
	firstLZW, err := codec.Compress(2, first)
	if err != nil {
		return err
	}
	frame1 := []byte{
		0x21, 0xF9, 0x04,
		0x04,       // Disposal: do not dispose
		0x0A, 0x00, // Delay (10)
		0x00, // Transparent index
		0x00,
		0x2C,
		0x00, 0x00, 0x00, 0x00, // Left, top
		0x04, 0x00, 0x04, 0x00, // Width, height
		0x00, // No local table, not interlaced
		0x02, // LZW code size
	}
	frame1 = append(frame1, dataBlocks(firstLZW)...)

	// Frame 2: interlaced with a local table, index 0 transparent. Rows are
	// stored in pass order 0, 2, 1, 3.
	second := []byte{
		1, 0, 0, 1, // row 0
		0, 1, 1, 0, // row 2
		0, 0, 0, 0, // row 1
		1, 1, 1, 1, // row 3
	}
	secondLZW, err := codec.Compress(2, second)
	if err != nil {
		return err
	}
	frame2 := []byte{
		0x21, 0xF9, 0x04,
		0x09,       // Disposal: restore to background, transparency on
		0x14, 0x00, // Delay (20)
		0x00, // Transparent index
		0x00,
		0x2C,
		0x00, 0x00, 0x00, 0x00, // Left, top
		0x04, 0x00, 0x04, 0x00, // Width, height
		0xC0, // Local table (2 entries), interlaced
		// Local color table: unused, green
		0x00, 0x00, 0x00,
		0x00, 0xFF, 0x00,
		0x02, // LZW code size
	}
	frame2 = append(frame2, dataBlocks(secondLZW)...)

	trailer := []byte{0x3B}

	for _, part := range [][]byte{header, loop, comment, unknown, frame1, frame2, trailer} {
		if _, err := file.Write(part); err != nil {
			return err
		}
	}

	return nil
}

func main() {
	if len(os.Args) != 2 {
		fmt.Println("Usage: create-test-gif <output-file>")
		os.Exit(1)
	}

	filename := os.Args[1]
	err := createTestGIF(filename)
	if err != nil {
		fmt.Printf("Error creating test GIF file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Created test GIF file: %s\n", filename)
}
