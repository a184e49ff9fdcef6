package api

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rm-hull/frame-interpolator/internal/frames"
	"github.com/rm-hull/frame-interpolator/internal/interpolate"
	models "github.com/rm-hull/frame-interpolator/internal/models/frames"
	"github.com/rm-hull/frame-interpolator/internal/png"
	log "github.com/sirupsen/logrus"
)

type FrameSource interface {
	FrameAt(index int) (image.Image, error)
	Len() int
	Size() image.Point
	Source() string
}

type handlers struct {
	source FrameSource
	opts   []interpolate.Option
}

// Register mounts the frame endpoints under /v1.
func Register(r gin.IRouter, source FrameSource, opts ...interpolate.Option) {
	h := &handlers{source: source, opts: opts}

	v1 := r.Group("/v1")
	v1.GET("/frames", h.info)
	v1.GET("/frames/:index", h.frame)
	v1.GET("/blend", h.blend)
}

func (h *handlers) info(c *gin.Context) {
	size := h.source.Size()
	c.JSON(http.StatusOK, models.Info{
		Source: h.source.Source(),
		Count:  h.source.Len(),
		Width:  size.X,
		Height: size.Y,
	})
}

func (h *handlers) frame(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		abort(c, http.StatusBadRequest, fmt.Errorf("invalid frame index %q", c.Param("index")))
		return
	}

	img, err := h.source.FrameAt(index)
	if err != nil {
		abort(c, statusFor(err), err)
		return
	}

	writePNG(c, img)
}

func (h *handlers) blend(c *gin.Context) {
	from, err := intQuery(c, "from")
	if err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	to, err := intQuery(c, "to")
	if err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	t, err := strconv.ParseFloat(c.Query("t"), 64)
	if err != nil {
		abort(c, http.StatusBadRequest, fmt.Errorf("invalid fraction %q", c.Query("t")))
		return
	}

	origin, err := h.source.FrameAt(from)
	if err != nil {
		abort(c, statusFor(err), err)
		return
	}
	target, err := h.source.FrameAt(to)
	if err != nil {
		abort(c, statusFor(err), err)
		return
	}

	img, err := interpolate.Blend(origin, target, t, h.opts...)
	if err != nil {
		abort(c, statusFor(err), err)
		return
	}

	writePNG(c, img)
}

func intQuery(c *gin.Context, name string) (int, error) {
	value, ok := c.GetQuery(name)
	if !ok {
		return 0, fmt.Errorf("missing query parameter %q", name)
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid query parameter %s=%q", name, value)
	}
	return n, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, frames.ErrIndexOutOfRange):
		return http.StatusNotFound
	case errors.Is(err, interpolate.ErrDimensionMismatch):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func abort(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		log.WithError(err).Error("request failed")
	}
	c.AbortWithStatusJSON(status, models.ErrorResponse{Error: err.Error()})
}

func writePNG(c *gin.Context, img image.Image) {
	var buf bytes.Buffer
	if err := png.NewFrame(img).Write(&buf); err != nil {
		abort(c, http.StatusInternalServerError, err)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
