package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/output"
	"github.com/df07/go-path-tracer/pkg/renderer"
	"github.com/df07/go-path-tracer/pkg/scene"
)

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "pass", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// PassUpdate is the payload of a "pass" event
type PassUpdate struct {
	PassNumber     int    `json:"passNumber"`
	TotalPasses    int    `json:"totalPasses"`
	ElapsedMs      int64  `json:"elapsedMs"`
	ImageData      string `json:"imageData"` // Base64 encoded PNG
	Stats          Stats  `json:"stats"`
	IsLast         bool   `json:"isLast"`
	PrimitiveCount int    `json:"primitiveCount"`
}

// handleRender streams a progressive render as Server-Sent Events
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	ctx := r.Context()

	// All writes to w go through one goroutine
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(ctx, w, sseEventChan)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	req, sceneObj, err := s.parseRenderRequest(r)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	consoleChan, webLogger := s.setupConsoleLogging()
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
	}()

	config := renderer.ProgressiveConfig{
		TileSize:           DefaultTileSize,
		InitialSamples:     1,
		MaxSamplesPerPixel: req.MaxSamples,
		MaxPasses:          req.MaxPasses,
		MaxDepth:           req.MaxDepth,
		NumWorkers:         0, // Auto-detect
		Seed:               req.Seed,
	}
	raytracer := renderer.NewProgressiveRaytracer(sceneObj, req.Width, req.Height, config, webLogger)

	startTime := time.Now()
	err = raytracer.RenderProgressive(ctx, func(result renderer.PassResult) error {
		return s.handlePassComplete(ctx, sseEventChan, result, sceneObj, startTime)
	})

	// The renderer is done logging; flush what is left of the console
	close(consoleChan)
	<-consoleDone

	if err != nil {
		if ctx.Err() == nil {
			s.handleError(ctx, sseEventChan, fmt.Sprintf("Rendering failed: %v", err))
		}
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "complete", Data: "Rendering completed"}:
	case <-ctx.Done():
	}
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, consoleChan)
	return consoleChan, webLogger
}

// writeSSEEvents writes events until the channel closes or the client leaves
func (s *Server) writeSSEEvents(ctx context.Context, w http.ResponseWriter, sseEventChan <-chan SSEEvent) {
	flusher, _ := w.(http.Flusher)

	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}

			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
				// Client disconnected during write
				return
			}
			if flusher != nil {
				flusher.Flush()
			}

		case <-ctx.Done():
			return
		}
	}
}

// streamConsoleMessages forwards logger output as "console" events
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleMessage, sseEventChan chan<- SSEEvent) {
	for consoleMsg := range consoleChan {
		data, err := json.Marshal(consoleMsg)
		if err != nil {
			log.Printf("Error marshaling console message: %v", err)
			continue
		}

		select {
		case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
		case <-ctx.Done():
		default:
			// Channel full, skip message to avoid blocking
		}
	}
}

// handlePassComplete encodes a pass and queues it as a "pass" event
func (s *Server) handlePassComplete(ctx context.Context, sseEventChan chan<- SSEEvent, result renderer.PassResult, sceneObj *scene.Scene, startTime time.Time) error {
	imageData, err := frameToBase64PNG(result.Frame)
	if err != nil {
		return fmt.Errorf("failed to encode pass %d: %w", result.PassNumber, err)
	}

	update := PassUpdate{
		PassNumber:     result.PassNumber,
		TotalPasses:    result.TotalPasses,
		ElapsedMs:      time.Since(startTime).Milliseconds(),
		ImageData:      imageData,
		Stats:          statsFromRender(result.Stats),
		IsLast:         result.IsLast,
		PrimitiveCount: sceneObj.GetPrimitiveCount(),
	}

	data, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("failed to marshal pass update: %w", err)
	}

	select {
	case sseEventChan <- SSEEvent{Type: "pass", Data: string(data)}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// frameToBase64PNG tone maps a frame and encodes it as base64 PNG
func frameToBase64PNG(frame *renderer.Frame) (string, error) {
	data, err := output.EncodePNG(output.ToRGBA(frame))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan<- SSEEvent, message string) {
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
		// Client disconnected, don't block
	}
}
