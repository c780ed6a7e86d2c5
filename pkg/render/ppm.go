package render

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
)

// maxPPMLine is the longest line a plain PPM writer should produce.
const maxPPMLine = 70

// WritePPM writes the canvas as a plain (P3) PPM image. Each image row
// starts on a new line, no line exceeds 70 characters, and the output ends
// with a newline.
func (c *Canvas) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P3\n%d %d\n255\n", c.Width, c.Height)

	var line []byte
	for y := 0; y < c.Height; y++ {
		line = line[:0]
		for _, col := range c.row(y) {
			r, g, b := col.RGBA8()
			for _, v := range [3]uint8{r, g, b} {
				var num [3]byte
				tok := strconv.AppendUint(num[:0], uint64(v), 10)

				if len(line) > 0 && len(line)+1+len(tok) > maxPPMLine {
					line = append(line, '\n')
					bw.Write(line)
					line = line[:0]
				}
				if len(line) > 0 {
					line = append(line, ' ')
				}
				line = append(line, tok...)
			}
		}
		line = append(line, '\n')
		bw.Write(line)
	}

	return bw.Flush()
}

// WritePPMBinary writes the canvas as a raw (P6) PPM image.
func (c *Canvas) WritePPMBinary(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P6\n%d %d\n255\n", c.Width, c.Height)

	for _, col := range c.Pixels {
		r, g, b := col.RGBA8()
		bw.Write([]byte{r, g, b})
	}

	return bw.Flush()
}

// SavePPM writes the canvas to a PPM file, raw when binary is set.
func (c *Canvas) SavePPM(path string, binary bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	write := c.WritePPM
	if binary {
		write = c.WritePPMBinary
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
