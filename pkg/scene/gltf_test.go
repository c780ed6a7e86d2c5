package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/ext/lightspunctual"
	"github.com/taigrr/spheretrace/pkg/math3d"
)

func sphereAt(t *testing.T, sc *Scene, h Handle) (math3d.Mat4, float64) {
	t.Helper()
	shape, ok := sc.Shape(h)
	if !ok {
		t.Fatalf("Shape(%d) not found", h)
	}
	s, ok := shape.Sphere()
	if !ok {
		t.Fatalf("Shape(%d) is not a sphere", h)
	}
	return s.Transform(), s.Material().Specular
}

func TestFromDocumentHierarchy(t *testing.T) {
	doc := &gltf.Document{
		Scene:  gltf.Index(0),
		Scenes: []*gltf.Scene{{Nodes: []int{0}}},
		Nodes: []*gltf.Node{
			{Name: "root", Translation: [3]float64{0, 1, 0}, Children: []int{1}},
			{Name: "ball", Mesh: gltf.Index(0), Scale: [3]float64{2, 2, 2}},
		},
		Meshes: []*gltf.Mesh{{Primitives: []*gltf.Primitive{{}}}},
	}

	imp, err := FromDocument(doc)
	if err != nil {
		t.Fatalf("FromDocument: %v", err)
	}
	if imp.Scene.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", imp.Scene.Len())
	}

	got, _ := sphereAt(t, imp.Scene, 0)
	want := math3d.Translation(0, 1, 0).Mul(math3d.Scaling(2, 2, 2))
	if !got.Equal(want) {
		t.Errorf("sphere transform = %v, want %v", got, want)
	}
	if imp.LightFound {
		t.Error("LightFound should be false without a light extension")
	}
	if l := imp.Scene.Light(); !l.Position.Equal(DefaultLight().Position) {
		t.Errorf("Light() = %+v, want the default light", l)
	}
}

func TestFromDocumentMatrixNode(t *testing.T) {
	doc := &gltf.Document{
		Nodes: []*gltf.Node{{
			Mesh: gltf.Index(0),
			// Column-major translation by (3, 4, 5).
			Matrix: [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 3, 4, 5, 1},
		}},
		Meshes: []*gltf.Mesh{{}},
	}

	imp, err := FromDocument(doc)
	if err != nil {
		t.Fatalf("FromDocument: %v", err)
	}
	got, _ := sphereAt(t, imp.Scene, 0)
	if want := math3d.Translation(3, 4, 5); !got.Equal(want) {
		t.Errorf("sphere transform = %v, want %v", got, want)
	}
}

func TestFromDocumentMaterial(t *testing.T) {
	rough := 1.0
	doc := &gltf.Document{
		Nodes: []*gltf.Node{{Mesh: gltf.Index(0)}, {Mesh: gltf.Index(1)}},
		Meshes: []*gltf.Mesh{
			{Primitives: []*gltf.Primitive{{Material: gltf.Index(0)}}},
			{Primitives: []*gltf.Primitive{{Material: gltf.Index(1)}}},
		},
		Materials: []*gltf.Material{
			{PBRMetallicRoughness: &gltf.PBRMetallicRoughness{BaseColorFactor: &[4]float64{1, 0.2, 1, 1}}},
			{PBRMetallicRoughness: &gltf.PBRMetallicRoughness{RoughnessFactor: &rough}},
		},
	}

	imp, err := FromDocument(doc)
	if err != nil {
		t.Fatalf("FromDocument: %v", err)
	}

	shape, _ := imp.Scene.Shape(0)
	if c := shape.Material().Color; !c.Equal(math3d.RGB(1, 0.2, 1)) {
		t.Errorf("base color = %v, want (1, 0.2, 1)", c)
	}
	if spec := shape.Material().Specular; spec != 0.9 {
		t.Errorf("specular without roughness = %v, want default 0.9", spec)
	}

	if _, spec := sphereAt(t, imp.Scene, 1); spec != 0 {
		t.Errorf("specular for a fully rough material = %v, want 0", spec)
	}
}

func TestFromDocumentSkipsSingular(t *testing.T) {
	doc := &gltf.Document{
		Nodes: []*gltf.Node{
			{Name: "flat", Mesh: gltf.Index(0), Scale: [3]float64{1, 0, 1}},
			{Mesh: gltf.Index(0)},
		},
		Meshes: []*gltf.Mesh{{}},
	}

	imp, err := FromDocument(doc)
	if err != nil {
		t.Fatalf("FromDocument: %v", err)
	}
	if imp.Scene.Len() != 1 {
		t.Errorf("Len() = %d, want 1", imp.Scene.Len())
	}
	if len(imp.Skipped) != 1 || imp.Skipped[0] != "flat" {
		t.Errorf("Skipped = %v, want [flat]", imp.Skipped)
	}
}

func TestFromDocumentErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  *gltf.Document
	}{
		{"bad scene index", &gltf.Document{Scene: gltf.Index(3)}},
		{"bad mesh index", &gltf.Document{Nodes: []*gltf.Node{{Mesh: gltf.Index(2)}}}},
		{"bad child index", &gltf.Document{
			Scenes: []*gltf.Scene{{Nodes: []int{0}}},
			Nodes:  []*gltf.Node{{Children: []int{7}}},
		}},
		{"cycle", &gltf.Document{
			Scenes: []*gltf.Scene{{Nodes: []int{0}}},
			Nodes:  []*gltf.Node{{Children: []int{1}}, {Children: []int{0}}},
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := FromDocument(tc.doc); err == nil {
				t.Error("FromDocument() should fail")
			}
		})
	}
}

func TestFromDocumentPointLight(t *testing.T) {
	doc := &gltf.Document{
		Extensions: gltf.Extensions{
			lightspunctual.ExtensionName: lightspunctual.Lights{
				{Type: "directional"},
				{Type: "point", Color: &[3]float64{1, 0.5, 0.25}},
			},
		},
		Nodes: []*gltf.Node{
			{
				Translation: [3]float64{9, 9, 9},
				Extensions:  gltf.Extensions{lightspunctual.ExtensionName: lightspunctual.LightIndex(0)},
			},
			{
				Translation: [3]float64{0, 5, -2},
				Extensions:  gltf.Extensions{lightspunctual.ExtensionName: lightspunctual.LightIndex(1)},
			},
		},
	}

	imp, err := FromDocument(doc)
	if err != nil {
		t.Fatalf("FromDocument: %v", err)
	}
	if !imp.LightFound {
		t.Fatal("LightFound = false, want true")
	}

	l := imp.Scene.Light()
	if !l.Position.Equal(math3d.Point(0, 5, -2)) {
		t.Errorf("light position = %v, want point(0, 5, -2)", l.Position)
	}
	if !l.Intensity.Equal(math3d.RGB(1, 0.5, 0.25)) {
		t.Errorf("light intensity = %v, want (1, 0.5, 0.25)", l.Intensity)
	}
}

const sceneJSON = `{
  "asset": {"version": "2.0"},
  "scene": 0,
  "scenes": [{"nodes": [0, 1]}],
  "nodes": [
    {"name": "ball", "mesh": 0, "translation": [1, 2, 3]},
    {"name": "lamp", "translation": [-4, 4, -4], "extensions": {"KHR_lights_punctual": {"light": 0}}}
  ],
  "meshes": [{"primitives": [{"attributes": {}, "material": 0}]}],
  "materials": [{"pbrMetallicRoughness": {"baseColorFactor": [0.2, 0.4, 0.6, 1]}}],
  "extensionsUsed": ["KHR_lights_punctual"],
  "extensions": {"KHR_lights_punctual": {"lights": [{"type": "point"}]}}
}`

func TestLoadGLTF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.gltf")
	if err := os.WriteFile(path, []byte(sceneJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	imp, err := LoadGLTF(path)
	if err != nil {
		t.Fatalf("LoadGLTF: %v", err)
	}
	if imp.Scene.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", imp.Scene.Len())
	}

	got, _ := sphereAt(t, imp.Scene, 0)
	if want := math3d.Translation(1, 2, 3); !got.Equal(want) {
		t.Errorf("sphere transform = %v, want %v", got, want)
	}
	shape, _ := imp.Scene.Shape(0)
	if c := shape.Material().Color; !c.Equal(math3d.RGB(0.2, 0.4, 0.6)) {
		t.Errorf("color = %v, want (0.2, 0.4, 0.6)", c)
	}

	if !imp.LightFound {
		t.Fatal("LightFound = false, want true")
	}
	l := imp.Scene.Light()
	if !l.Position.Equal(math3d.Point(-4, 4, -4)) || !l.Intensity.Equal(math3d.White()) {
		t.Errorf("Light() = %+v, want white at point(-4, 4, -4)", l)
	}
}

func TestLoadGLTFMissing(t *testing.T) {
	if _, err := LoadGLTF(filepath.Join(t.TempDir(), "missing.glb")); err == nil {
		t.Error("LoadGLTF() should fail for a missing file")
	}
}
