package server

import (
	"fmt"
	"net/http"

	"github.com/sun-wendy/6.4400-graphics/pkg/core"
	"github.com/sun-wendy/6.4400-graphics/pkg/material"
	"github.com/sun-wendy/6.4400-graphics/pkg/renderer"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit        bool                   `json:"hit"`
	NodeName   string                 `json:"nodeName,omitempty"`
	Shape      string                 `json:"shape,omitempty"`
	Point      [3]float64             `json:"point"`
	Normal     [3]float64             `json:"normal"`
	Distance   float64                `json:"distance"`
	Properties map[string]interface{} `json:"properties,omitempty"`
}

// extractMaterialInfo lists the Phong coefficients of a material
func extractMaterialInfo(mat material.Material) map[string]interface{} {
	return map[string]interface{}{
		"ambient":   vecArray(mat.Ambient),
		"diffuse":   vecArray(mat.Diffuse),
		"specular":  vecArray(mat.Specular),
		"shininess": mat.Shininess,
		"color":     hexColor(mat.Diffuse),
		"mirror":    mat.Specular != core.Vec3{},
	}
}

// handleInspect reports what the primary ray through pixel (x, y) hits
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	query := r.URL.Query()
	x, err := parseIntParam(query, "x", -1, 0, maxSize-1)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	y, err := parseIntParam(query, "y", -1, 0, maxSize-1)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if x < 0 || y < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "x and y are required"})
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	tracer, err := renderer.NewTracer(sceneObj, renderer.DefaultConfig(), nil)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	result, err := tracer.Inspect(x, y)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, inspectResponse(result))
}

func inspectResponse(result renderer.InspectResult) InspectResponse {
	if !result.Hit {
		return InspectResponse{Hit: false}
	}
	return InspectResponse{
		Hit:        true,
		NodeName:   result.NodeName,
		Shape:      result.Shape,
		Point:      vecArray(result.Point),
		Normal:     vecArray(result.Normal),
		Distance:   result.Time,
		Properties: extractMaterialInfo(result.Material),
	}
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}
