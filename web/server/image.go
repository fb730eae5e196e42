package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/df07/go-path-tracer/pkg/output"
	"github.com/df07/go-path-tracer/pkg/renderer"
)

// handleImage renders a scene on the tiled renderer and returns only the
// final pass, encoded. The render stops when the client goes away.
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	req, sceneObj, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	formatName := r.URL.Query().Get("format")
	if formatName == "" {
		formatName = string(output.FormatPNG)
	}
	format, err := output.ParseFormat(formatName)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	config := renderer.DefaultProgressiveConfig()
	config.TileSize = DefaultTileSize
	config.MaxSamplesPerPixel = req.MaxSamples
	config.MaxPasses = req.MaxPasses
	config.MaxDepth = req.MaxDepth
	config.Seed = req.Seed

	startTime := time.Now()
	var final renderer.PassResult
	raytracer := renderer.NewProgressiveRaytracer(sceneObj, req.Width, req.Height, config, discardLogger{})
	err = raytracer.RenderProgressive(r.Context(), func(result renderer.PassResult) error {
		final = result
		return nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			log.Printf("Image render for %s abandoned: %v", req.Scene, err)
			writeError(w, http.StatusServiceUnavailable, "render cancelled")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	data, err := output.EncodeBytes(final.Frame, format)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(time.Since(startTime).Milliseconds(), 10))
	w.Header().Set("X-Render-Samples", strconv.Itoa(final.Stats.TotalSamples))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("Error writing image response: %v", err)
	}
}

// discardLogger drops per-pass progress for one-shot renders
type discardLogger struct{}

func (discardLogger) Printf(format string, args ...interface{}) {}
