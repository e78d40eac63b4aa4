package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types handled by DecodeTGA.
const (
	TGATypeUncompressed = 2
	TGATypeRLE          = 10
)

const tgaHeaderSize = 18

var errTGATruncated = errors.New("TGA data truncated")

// DecodeTGA decodes an uncompressed or RLE true-color TGA image (24 or 32 bpp).
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("TGA data too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := int(data[2])
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&0x20 != 0

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("unsupported TGA type %d", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("unsupported TGA bit depth %d", bpp)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}

	d := tgaDecoder{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		src:         data[offset:],
		stride:      bpp / 8,
		topToBottom: topToBottom,
	}

	var err error
	if imageType == TGATypeUncompressed {
		err = d.raw(width * height)
	} else {
		err = d.rle(width * height)
	}
	if err != nil {
		return nil, err
	}
	return d.img, nil
}

// tgaDecoder walks BGR(A) pixel data and writes it into img in scan order.
type tgaDecoder struct {
	img         *image.RGBA
	src         []byte
	pos         int
	pixel       int
	stride      int
	topToBottom bool
}

func (d *tgaDecoder) next() (color.RGBA, error) {
	if d.pos+d.stride > len(d.src) {
		return color.RGBA{}, errTGATruncated
	}
	p := d.src[d.pos : d.pos+d.stride]
	d.pos += d.stride
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if d.stride == 4 {
		c.A = p[3]
	}
	return c, nil
}

func (d *tgaDecoder) put(c color.RGBA) {
	w, h := d.img.Rect.Dx(), d.img.Rect.Dy()
	x, y := d.pixel%w, d.pixel/w
	if !d.topToBottom {
		y = h - 1 - y
	}
	d.img.SetRGBA(x, y, c)
	d.pixel++
}

func (d *tgaDecoder) raw(total int) error {
	for d.pixel < total {
		c, err := d.next()
		if err != nil {
			return err
		}
		d.put(c)
	}
	return nil
}

// rle decodes run-length packets. A short final packet leaves the remaining
// pixels transparent rather than failing.
func (d *tgaDecoder) rle(total int) error {
	for d.pixel < total && d.pos < len(d.src) {
		header := d.src[d.pos]
		d.pos++
		count := int(header&0x7F) + 1

		if header&0x80 != 0 {
			c, err := d.next()
			if err != nil {
				return nil
			}
			for i := 0; i < count && d.pixel < total; i++ {
				d.put(c)
			}
			continue
		}

		for i := 0; i < count && d.pixel < total; i++ {
			c, err := d.next()
			if err != nil {
				return nil
			}
			d.put(c)
		}
	}
	return nil
}
