package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/sun-wendy/6.4400-graphics/pkg/core"
	"github.com/sun-wendy/6.4400-graphics/pkg/renderer"
)

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "progress", "image", "frame", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// ProgressUpdate reports a finished tile
type ProgressUpdate struct {
	TileNumber int   `json:"tileNumber"` // Tiles finished so far (1-based)
	TotalTiles int   `json:"totalTiles"`
	ElapsedMs  int64 `json:"elapsedMs"`
}

// ImageUpdate carries the finished render
type ImageUpdate struct {
	ImageData      string `json:"imageData"` // Base64 encoded PNG
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	TotalPixels    int    `json:"totalPixels"`
	PrimaryHits    int    `json:"primaryHits"`
	Workers        int    `json:"workers"`
	PrimitiveCount int    `json:"primitiveCount"`
	ElapsedMs      int64  `json:"elapsedMs"`
	SavedAs        string `json:"savedAs,omitempty"`
}

// eventStream serializes SSE writes through a single goroutine
type eventStream struct {
	events chan SSEEvent
	done   chan struct{}
}

// startEventStream sets SSE headers and starts the writer goroutine
func startEventStream(w http.ResponseWriter) *eventStream {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	stream := &eventStream{
		events: make(chan SSEEvent, 100),
		done:   make(chan struct{}),
	}
	go stream.write(w)
	return stream
}

// write drains events until the stream is closed. After a failed write the
// client is gone and remaining events are discarded.
func (es *eventStream) write(w http.ResponseWriter) {
	defer close(es.done)
	failed := false
	for event := range es.events {
		if failed {
			continue
		}
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
			failed = true
			continue
		}
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}
	}
}

// send queues an event unless ctx is done
func (es *eventStream) send(ctx context.Context, eventType string, payload interface{}) {
	data, ok := payload.(string)
	if !ok {
		encoded, err := json.Marshal(payload)
		if err != nil {
			log.Printf("Error marshaling %s event: %v", eventType, err)
			return
		}
		data = string(encoded)
	}
	select {
	case es.events <- SSEEvent{Type: eventType, Data: data}:
	case <-ctx.Done():
	}
}

// close waits for every queued event to be written
func (es *eventStream) close() {
	close(es.events)
	<-es.done
}

// consoleForwarder streams WebLogger output into an event stream
type consoleForwarder struct {
	messages chan ConsoleMessage
	stop     chan struct{}
	wg       sync.WaitGroup
}

// startConsole creates a logger whose messages become "console" events
func startConsole(ctx context.Context, stream *eventStream, source string) (*consoleForwarder, core.Logger) {
	cf := &consoleForwarder{
		messages: make(chan ConsoleMessage, 50),
		stop:     make(chan struct{}),
	}
	cf.wg.Add(1)
	go func() {
		defer cf.wg.Done()
		for {
			select {
			case msg := <-cf.messages:
				stream.send(ctx, "console", msg)
			case <-cf.stop:
				// Flush what was logged before stopping
				for {
					select {
					case msg := <-cf.messages:
						stream.send(ctx, "console", msg)
					default:
						return
					}
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return cf, NewWebLogger(source, cf.messages)
}

// close stops forwarding after the pending messages are sent
func (cf *consoleForwarder) close() {
	close(cf.stop)
	cf.wg.Wait()
}

// handleRender traces a scene and streams tile progress, console output and the
// final PNG via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	stream := startEventStream(w)
	defer stream.close()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		stream.send(ctx, "error", fmt.Sprintf("Invalid request: %v", err))
		return
	}

	console, logger := startConsole(ctx, stream, fmt.Sprintf("render-%d", time.Now().UnixNano()))
	update, err := s.render(ctx, req, logger, stream)
	console.close()

	if err != nil {
		stream.send(ctx, "error", fmt.Sprintf("Rendering failed: %v", err))
		return
	}
	stream.send(ctx, "image", update)
	stream.send(ctx, "complete", "Rendering completed")
}

// render runs one render, sending a progress event per finished tile
func (s *Server) render(ctx context.Context, req *RenderRequest, logger core.Logger, stream *eventStream) (ImageUpdate, error) {
	sceneObj, err := s.createScene(req)
	if err != nil {
		return ImageUpdate{}, err
	}
	tracer, err := renderer.NewTracer(sceneObj, renderer.Config{TileSize: DefaultTileSize}, logger)
	if err != nil {
		return ImageUpdate{}, err
	}

	startTime := time.Now()
	img, stats, err := tracer.RenderWithProgress(ctx, func(tile renderer.TileCompletionResult) {
		stream.send(ctx, "progress", ProgressUpdate{
			TileNumber: tile.TileNumber,
			TotalTiles: tile.TotalTiles,
			ElapsedMs:  time.Since(startTime).Milliseconds(),
		})
	})
	if err != nil {
		return ImageUpdate{}, err
	}

	output := img.ToNRGBA(sceneObj.Settings.Gamma)
	imageData, err := imageToBase64PNG(output)
	if err != nil {
		return ImageUpdate{}, fmt.Errorf("failed to encode image: %w", err)
	}

	update := ImageUpdate{
		ImageData:      imageData,
		Width:          img.Width,
		Height:         img.Height,
		TotalPixels:    stats.TotalPixels,
		PrimaryHits:    stats.PrimaryHits,
		Workers:        stats.Workers,
		PrimitiveCount: sceneObj.GetPrimitiveCount(),
		ElapsedMs:      time.Since(startTime).Milliseconds(),
	}

	if req.Save && s.sink != nil {
		name := filepath.Join(sanitize(sceneObj.Name), fmt.Sprintf("render_%s.png", time.Now().Format("20060102_150405")))
		if err := s.sink.Write(ctx, name, output); err != nil {
			return ImageUpdate{}, err
		}
		logger.Printf("Render saved as %s\n", name)
		update.SavedAs = name
	}
	return update, nil
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, req); err != nil {
		return nil, err
	}

	var err error
	if req.Save, err = parseBoolParam(r.URL.Query(), "save", false); err != nil {
		return nil, err
	}
	if req.Save && s.sink == nil {
		return nil, fmt.Errorf("saving is not configured on this server")
	}
	return req, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func sanitize(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}
