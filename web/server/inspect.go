package server

import (
	"fmt"
	"math"
	"net/http"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/geometry"
	"github.com/df07/go-path-tracer/pkg/material"
	"github.com/df07/go-path-tracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	ShapeIndex   int                    `json:"shapeIndex"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// extractMaterialInfo extracts detailed material information with type assertions
func (s *Server) extractMaterialInfo(mat core.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = vecArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = vecArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties

	default:
		return "unknown", properties
	}
}

// extractGeometryInfo extracts detailed geometry information
func (s *Server) extractGeometryInfo(shape core.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.HittableList:
		properties["shapeCount"] = geom.Len()
		return "list", properties

	default:
		return "unknown", properties
	}
}

// InspectResult describes the first object hit by an inspection ray
type InspectResult struct {
	Hit        bool
	HitRecord  *core.HitRecord
	Shape      core.Shape // The top-level shape that was hit
	ShapeIndex int        // Its position in the scan order
}

// inspectPixel casts an unjittered ray through the centre of pixel (x, y),
// with row 0 at the top, and reports the nearest top-level shape it hits
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY int) InspectResult {
	u := (float64(pixelX) + 0.5) / float64(width)
	v := (float64(height-1-pixelY) + 0.5) / float64(height)
	ray := sceneObj.Camera.GetRay(u, v)

	result := InspectResult{ShapeIndex: -1}
	closestSoFar := math.Inf(1)
	for i, shape := range sceneObj.World.Shapes {
		if hit, isHit := shape.Hit(ray, closestSoFar); isHit {
			closestSoFar = hit.T
			result = InspectResult{Hit: true, HitRecord: hit, Shape: shape, ShapeIndex: i}
		}
	}

	return result
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, sceneObj, err := s.parseCommonSceneParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	query := r.URL.Query()
	if query.Get("x") == "" || query.Get("y") == "" {
		writeError(w, http.StatusBadRequest, "x and y are required")
		return
	}
	pixelX, err := parseIntParam(query, "x", 0, 0, req.Width-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	pixelY, err := parseIntParam(query, "y", 0, 0, req.Height-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := inspectPixel(sceneObj, req.Width, req.Height, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false, ShapeIndex: -1})
		return
	}

	materialType, materialProps := s.extractMaterialInfo(result.HitRecord.Material)
	geometryType, geometryProps := s.extractGeometryInfo(result.Shape)

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		ShapeIndex:   result.ShapeIndex,
		Point:        vecArray(result.HitRecord.Point),
		Normal:       vecArray(result.HitRecord.Normal),
		Distance:     result.HitRecord.T,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
