package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-interactive-pathtracer/pkg/core"
	"github.com/df07/go-interactive-pathtracer/pkg/integrator"
	"github.com/df07/go-interactive-pathtracer/pkg/material"
	"github.com/df07/go-interactive-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float32             `json:"point"`
	Normal       [3]float32             `json:"normal"`
	Distance     float32                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties"`
}

func vecArray(v mgl32.Vec3) [3]float32 {
	return [3]float32{v[0], v[1], v[2]}
}

func hexColor(c mgl32.Vec3) string {
	r := mgl32.Clamp(c[0], 0, 1)
	g := mgl32.Clamp(c[1], 0, 1)
	b := mgl32.Clamp(c[2], 0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(r*255), int(g*255), int(b*255))
}

// extractMaterialInfo describes a material table entry
func extractMaterialInfo(m *material.Material) (string, map[string]interface{}) {
	properties := map[string]interface{}{
		"albedo": vecArray(m.Albedo),
		"color":  hexColor(m.Albedo),
	}

	if m.Kind == material.Dielectric {
		properties["refractiveIndex"] = m.IOR
	}

	if m.IsEmissive() {
		properties["emission"] = vecArray(m.Emissive)
	}
	return m.Kind.String(), properties
}

// extractGeometryInfo describes the primitive a ray hit
func extractGeometryInfo(s *scene.Scene, hit scene.Hit) (string, map[string]interface{}) {
	properties := map[string]interface{}{"index": hit.Index}

	switch hit.Primitive {
	case scene.PlanePrimitive:
		plane := s.Planes[hit.Index]
		properties["normal"] = vecArray(plane.Normal)
		properties["offset"] = plane.Offset
	case scene.SpherePrimitive:
		sphere := s.Spheres[hit.Index]
		properties["center"] = vecArray(sphere.Center)
		properties["radius"] = sphere.Radius
	}
	return hit.Primitive.String(), properties
}

// inspectPixel casts an unjittered ray through the pixel centre and reports
// the first surface it meets
func inspectPixel(s *scene.Scene, width, height, pixelX, pixelY int) InspectResponse {
	cam := s.Camera
	dir := integrator.PrimaryRay(cam, pixelX, pixelY, width, height, mgl32.Vec2{})

	t := core.MaxDistance
	hit, ok := s.Trace(cam.Position, dir, &t)
	if !ok {
		return InspectResponse{Hit: false}
	}

	materialType, materialProps := extractMaterialInfo(s.Material(hit.Material))
	geometryType, geometryProps := extractGeometryInfo(s, hit)

	return InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vecArray(cam.Position.Add(dir.Mul(t))),
		Normal:       vecArray(hit.Normal),
		Distance:     t,
		FrontFace:    hit.Normal.Dot(dir) < 0,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	inspectReq := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, inspectReq); err != nil {
		writeJSONError(w, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSONError(w, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSONError(w, "Invalid y coordinate")
		return
	}

	if pixelX < 0 || pixelX >= inspectReq.Width || pixelY < 0 || pixelY >= inspectReq.Height {
		writeJSONError(w, "Pixel coordinates out of bounds")
		return
	}

	sceneObj, err := scene.Build(inspectReq.Scene, s.environment)
	if err != nil {
		writeJSONError(w, err.Error())
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(inspectPixel(sceneObj, inspectReq.Width, inspectReq.Height, pixelX, pixelY))
}

func writeJSONError(w http.ResponseWriter, message string) {
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
