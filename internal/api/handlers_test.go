package api

import (
	"encoding/json"
	"image"
	"image/color"
	stdpng "image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rm-hull/frame-interpolator/internal/frames"
	models "github.com/rm-hull/frame-interpolator/internal/models/frames"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func newRouter(t *testing.T, images ...image.Image) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := frames.FromImages(images)
	require.NoError(t, err)

	r := gin.New()
	Register(r, store)
	return r
}

func get(r http.Handler, url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func TestInfo(t *testing.T) {
	r := newRouter(t, solid(3, 2, color.NRGBA{A: 255}), solid(3, 2, color.NRGBA{A: 255}))

	w := get(r, "/v1/frames")
	require.Equal(t, http.StatusOK, w.Code)

	var info models.Info
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, models.Info{Count: 2, Width: 3, Height: 2}, info)
}

func TestFrame(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	r := newRouter(t, solid(2, 2, color.NRGBA{A: 255}), solid(2, 2, red))

	t.Run("returns png", func(t *testing.T) {
		w := get(r, "/v1/frames/1")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

		img, err := stdpng.Decode(w.Body)
		require.NoError(t, err)
		assert.Equal(t, red, color.NRGBAModel.Convert(img.At(1, 1)))
	})

	t.Run("out of range", func(t *testing.T) {
		w := get(r, "/v1/frames/2")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, decodeError(t, w), "out of range")
	})

	t.Run("not a number", func(t *testing.T) {
		w := get(r, "/v1/frames/first")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBlend(t *testing.T) {
	black := solid(2, 2, color.NRGBA{A: 255})
	white := solid(2, 2, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	wide := solid(3, 2, color.NRGBA{A: 255})
	r := newRouter(t, black, white, wide)

	t.Run("midpoint", func(t *testing.T) {
		w := get(r, "/v1/blend?from=0&to=1&t=0.5")
		require.Equal(t, http.StatusOK, w.Code)

		img, err := stdpng.Decode(w.Body)
		require.NoError(t, err)
		assert.Equal(t, color.NRGBA{R: 127, G: 127, B: 127, A: 255}, color.NRGBAModel.Convert(img.At(0, 0)))
	})

	t.Run("bad requests", func(t *testing.T) {
		for _, url := range []string{
			"/v1/blend?to=1&t=0.5",
			"/v1/blend?from=x&to=1&t=0.5",
			"/v1/blend?from=0&to=1",
			"/v1/blend?from=0&to=1&t=half",
		} {
			w := get(r, url)
			assert.Equal(t, http.StatusBadRequest, w.Code, url)
		}
	})

	t.Run("unknown frame", func(t *testing.T) {
		w := get(r, "/v1/blend?from=0&to=7&t=0.5")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		w := get(r, "/v1/blend?from=0&to=2&t=0.5")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
