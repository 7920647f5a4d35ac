package main

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// writePFM dumps a width*height*3 linear-RGB buffer (row-major, top-left
// origin, the shape pkg/renderer.Render returns) to path in the Portable
// Float Map format: a short ASCII header followed by raw little-endian
// float32 triples, bottom row first per the PFM convention — the inverse of
// our buffer's top-left origin, so rows are written back to front.
func writePFM(path string, buf []float32, width, height int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := fmt.Fprintf(w, "PF\n%d %d\n-1.0\n", width, height); err != nil {
		return err
	}

	rowBytes := make([]byte, width*3*4)
	for y := height - 1; y >= 0; y-- {
		row := buf[y*width*3 : (y+1)*width*3]
		for i, v := range row {
			binary.LittleEndian.PutUint32(rowBytes[i*4:], math.Float32bits(v))
		}
		if _, err := w.Write(rowBytes); err != nil {
			return err
		}
	}
	return w.Flush()
}
