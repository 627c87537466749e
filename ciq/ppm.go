package ciq

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ReadPPM decodes a binary PPM (P6) image into scan-order RGB pixels.
//
// The header is the "P6" magic followed by whitespace-separated width,
// height, and maxval fields. Comments are not supported and maxval must
// be 255 (8-bit channels); anything else is a FormatError.
func ReadPPM(r io.Reader) (width, height int, pixels []Color, err error) {
	br := bufio.NewReader(r)
	magic, err := ppmToken(br)
	if err != nil {
		return 0, 0, nil, &FormatError{Reason: "missing PPM header", cause: err}
	}
	if magic != "P6" {
		return 0, 0, nil, &FormatError{Reason: fmt.Sprintf("magic %q, want \"P6\"", magic)}
	}
	width, err = ppmInt(br)
	if err == nil {
		height, err = ppmInt(br)
	}
	var maxval int
	if err == nil {
		maxval, err = ppmInt(br)
	}
	if err != nil {
		return 0, 0, nil, &FormatError{Reason: "malformed PPM header", cause: err}
	}
	if width <= 0 || height <= 0 {
		return 0, 0, nil, &FormatError{Reason: fmt.Sprintf("bad dimensions %dx%d", width, height)}
	}
	if maxval != 255 {
		return 0, 0, nil, &FormatError{Reason: fmt.Sprintf("maxval %d, want 255", maxval)}
	}

	buf := make([]byte, width*height*3)
	if _, err := io.ReadFull(br, buf); err != nil {
		return 0, 0, nil, &FormatError{Reason: "truncated pixel data", cause: err}
	}
	pixels = make([]Color, width*height)
	for i := range pixels {
		pixels[i] = Color{R: buf[3*i], G: buf[3*i+1], B: buf[3*i+2]}
	}
	return width, height, pixels, nil
}

// ppmToken skips leading whitespace, then reads the next header field
// up to and including the single whitespace byte that terminates it.
// Consuming the terminator matters for the maxval field, which is
// separated from the raw pixel payload by exactly one whitespace byte.
func ppmToken(br *bufio.Reader) (string, error) {
	var tok []byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			if err == io.EOF && len(tok) > 0 {
				return string(tok), nil
			}
			return "", err
		}
		switch b {
		case ' ', '\t', '\n', '\r':
			if len(tok) > 0 {
				return string(tok), nil
			}
		default:
			tok = append(tok, b)
		}
	}
}

func ppmInt(br *bufio.Reader) (int, error) {
	tok, err := ppmToken(br)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(tok)
}

// WritePPM encodes pixels as a binary PPM (P6) image.
func WritePPM(w io.Writer, width, height int, pixels []Color) error {
	if len(pixels) != width*height {
		return fmt.Errorf("have %d pixels for a %dx%d image", len(pixels), width, height)
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P6\n%d %d\n255\n", width, height)
	for _, p := range pixels {
		bw.WriteByte(p.R)
		bw.WriteByte(p.G)
		bw.WriteByte(p.B)
	}
	return bw.Flush()
}

// WritePalette writes the palette as raw entries, 3 bytes per color in
// palette order, with no header.
func WritePalette(w io.Writer, palette []Color) error {
	buf := make([]byte, 0, len(palette)*3)
	for _, p := range palette {
		buf = append(buf, p.R, p.G, p.B)
	}
	_, err := w.Write(buf)
	return err
}

// WritePaletteFile writes the palette artifact to path.
func WritePaletteFile(path string, palette []Color) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WritePalette(f, palette)
}
