package gpu

import (
	"errors"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/scenegl/internal/engine/texture"
)

// Texture is an uploaded 2D texture bound to a fixed texture unit.
type Texture struct {
	ID   uint32
	Unit uint32
}

// UploadTexture creates a mipmapped, repeating 2D texture from tex.
func UploadTexture(tex *texture.Texture) (*Texture, error) {
	img := tex.Image
	if img == nil || len(img.Pix) == 0 {
		return nil, errors.New("texture has no pixels")
	}
	w, h := tex.Size()

	t := &Texture{Unit: tex.Unit}
	gl.GenTextures(1, &t.ID)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t, nil
}

// Bind activates the texture's unit and binds it.
func (t *Texture) Bind() {
	gl.ActiveTexture(gl.TEXTURE0 + t.Unit)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
}

// Unbind clears the binding on the texture's unit.
func (t *Texture) Unbind() {
	gl.ActiveTexture(gl.TEXTURE0 + t.Unit)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Delete releases the texture. Safe to call more than once.
func (t *Texture) Delete() {
	if t.ID != 0 {
		gl.DeleteTextures(1, &t.ID)
		t.ID = 0
	}
}

// ReadPixels reads the current framebuffer as bottom-up RGBA rows.
func ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	if len(pixels) == 0 {
		return nil
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels
}
