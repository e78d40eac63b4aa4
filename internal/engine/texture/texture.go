// Package texture decodes images into CPU-side textures ready for GPU upload.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/Faultbox/scenegl/internal/engine/uniform"
)

// SamplerUniform is the sampler name meshes bind their texture to.
const SamplerUniform = "TextureMap"

// Texture is decoded pixel data plus the uniforms that tell a shader where to sample it.
// Pix rows are stored bottom-up, which is what glTexImage2D expects.
type Texture struct {
	Name  string
	Image *image.RGBA
	// Unit is the texture unit (GL_TEXTURE0 + Unit) the texture is bound to.
	Unit     uint32
	Uniforms []uniform.Uniform
}

// New wraps an image as a texture on unit 0.
func New(name string, img image.Image) *Texture {
	t := &Texture{
		Name:  name,
		Image: FlipVertical(ImageToRGBA(img)),
	}
	t.SetUnit(0)
	return t
}

// SetUnit changes the texture unit and the sampler uniform that points at it.
func (t *Texture) SetUnit(unit uint32) {
	t.Unit = unit
	t.Uniforms = []uniform.Uniform{uniform.Int(SamplerUniform, int32(unit))}
}

// Size returns the texture dimensions.
func (t *Texture) Size() (int, int) {
	return t.Image.Bounds().Dx(), t.Image.Bounds().Dy()
}

// Load reads and decodes an image file.
func Load(path string) (*Texture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(filepath.Base(path), data)
}

// Decode decodes image bytes. TGA has no magic number, so it is picked by
// the .tga extension on name; everything else goes through image.Decode.
func Decode(name string, data []byte) (*Texture, error) {
	var img image.Image
	var err error
	if strings.EqualFold(filepath.Ext(name), ".tga") {
		img, err = DecodeTGA(data)
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return New(name, img), nil
}

// ImageToRGBA converts any image.Image to *image.RGBA with bounds at the origin.
func ImageToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}

	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			rgba.Set(x-b.Min.X, y-b.Min.Y, color.RGBAModel.Convert(img.At(x, y)))
		}
	}
	return rgba
}

// FlipVertical returns a copy of img with its rows in reverse order.
func FlipVertical(img *image.RGBA) *image.RGBA {
	h := img.Rect.Dy()
	out := image.NewRGBA(img.Rect)
	for y := 0; y < h; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+img.Rect.Dx()*4]
		copy(out.Pix[(h-1-y)*out.Stride:], src)
	}
	return out
}
