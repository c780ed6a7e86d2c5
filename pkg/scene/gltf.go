package scene

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/ext/lightspunctual"
	"github.com/taigrr/spheretrace/pkg/geometry"
	"github.com/taigrr/spheretrace/pkg/math3d"
	"github.com/taigrr/spheretrace/pkg/shading"
)

// Import is the result of converting a glTF document into a Scene.
type Import struct {
	Scene *Scene

	// Skipped names the nodes whose world transform could not be inverted.
	Skipped []string

	// LightFound reports whether the document supplied the point light.
	LightFound bool
}

// LoadGLTF loads a .gltf or .glb file as a scene. Every node that references
// a mesh becomes a unit sphere placed by the node's world transform; mesh
// geometry itself is not read.
func LoadGLTF(path string) (*Import, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	imp, err := FromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return imp, nil
}

// FromDocument converts a decoded glTF document into a scene. See LoadGLTF.
//
// The default scene's root nodes are walked, or every parentless node when
// the document declares no scene. The first node carrying a
// KHR_lights_punctual point light positions the scene light; without one
// the DefaultLight is used.
func FromDocument(doc *gltf.Document) (*Import, error) {
	imp := &Import{Scene: New(DefaultLight())}
	lights := documentLights(doc)

	roots, err := rootNodes(doc)
	if err != nil {
		return nil, err
	}

	visited := make(map[int]bool, len(doc.Nodes))
	var walk func(idx int, parent math3d.Mat4) error
	walk = func(idx int, parent math3d.Mat4) error {
		if idx < 0 || idx >= len(doc.Nodes) {
			return fmt.Errorf("node index %d out of range", idx)
		}
		if visited[idx] {
			return fmt.Errorf("node %d: cycle in node hierarchy", idx)
		}
		visited[idx] = true

		node := doc.Nodes[idx]
		world := parent.Mul(localTransform(node))

		if node.Mesh != nil {
			if err := imp.addMeshNode(doc, idx, node, world); err != nil {
				return err
			}
		}

		if !imp.LightFound {
			if l, ok := nodeLight(node, lights); ok {
				imp.Scene.SetLight(shading.NewPointLight(world.MulTuple(math3d.Origin()), lightColor(l)))
				imp.LightFound = true
			}
		}

		for _, child := range node.Children {
			if err := walk(child, world); err != nil {
				return err
			}
		}
		return nil
	}

	for _, idx := range roots {
		if err := walk(idx, math3d.Identity()); err != nil {
			return nil, err
		}
	}

	return imp, nil
}

func (imp *Import) addMeshNode(doc *gltf.Document, idx int, node *gltf.Node, world math3d.Mat4) error {
	if *node.Mesh < 0 || *node.Mesh >= len(doc.Meshes) {
		return fmt.Errorf("node %d: mesh index %d out of range", idx, *node.Mesh)
	}

	s := geometry.NewSphere()
	if err := s.SetTransform(world); err != nil {
		imp.Skipped = append(imp.Skipped, nodeName(idx, node))
		return nil
	}
	s.SetMaterial(meshMaterial(doc, doc.Meshes[*node.Mesh]))

	if _, err := imp.Scene.AddSphere(s); err != nil {
		return fmt.Errorf("node %d: %w", idx, err)
	}
	return nil
}

func rootNodes(doc *gltf.Document) ([]int, error) {
	if doc.Scene != nil {
		if *doc.Scene < 0 || *doc.Scene >= len(doc.Scenes) {
			return nil, fmt.Errorf("scene index %d out of range", *doc.Scene)
		}
		return doc.Scenes[*doc.Scene].Nodes, nil
	}
	if len(doc.Scenes) > 0 {
		return doc.Scenes[0].Nodes, nil
	}

	isChild := make(map[int]bool)
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			isChild[c] = true
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !isChild[i] {
			roots = append(roots, i)
		}
	}
	return roots, nil
}

// localTransform returns the node's matrix if one is set, otherwise its
// translation, rotation, and scale composed as T * R * S. Zero-valued
// rotation and scale mean unset.
func localTransform(n *gltf.Node) math3d.Mat4 {
	if n.Matrix != ([16]float64{}) && n.Matrix != gltf.DefaultMatrix {
		return math3d.FromColumnMajor(n.Matrix)
	}

	t := n.Translation
	r := n.Rotation
	if r == ([4]float64{}) {
		r = [4]float64{0, 0, 0, 1}
	}
	s := n.Scale
	if s == ([3]float64{}) {
		s = [3]float64{1, 1, 1}
	}

	return math3d.Compose(
		math3d.Translation(t[0], t[1], t[2]),
		math3d.FromQuaternion(r[0], r[1], r[2], r[3]),
		math3d.Scaling(s[0], s[1], s[2]),
	)
}

// meshMaterial maps the first primitive's PBR material onto Phong terms.
// Base color becomes the surface color. Roughness, when present, trades
// the highlight away: fully rough surfaces have no specular term.
func meshMaterial(doc *gltf.Document, mesh *gltf.Mesh) shading.Material {
	m := shading.DefaultMaterial()
	if len(mesh.Primitives) == 0 || mesh.Primitives[0].Material == nil {
		return m
	}
	idx := *mesh.Primitives[0].Material
	if idx < 0 || idx >= len(doc.Materials) {
		return m
	}

	pbr := doc.Materials[idx].PBRMetallicRoughness
	if pbr == nil {
		return m
	}
	if c := pbr.BaseColorFactor; c != nil {
		m.Color = math3d.RGB(c[0], c[1], c[2])
	}
	if r := pbr.RoughnessFactor; r != nil {
		smooth := 1 - max(0, min(1, *r))
		m.Specular = 0.9 * smooth
		m.Shininess = max(1, 200*smooth*smooth)
	}
	return m
}

func documentLights(doc *gltf.Document) lightspunctual.Lights {
	switch v := doc.Extensions[lightspunctual.ExtensionName].(type) {
	case lightspunctual.Lights:
		return v
	case *lightspunctual.Lights:
		if v != nil {
			return *v
		}
	}
	return nil
}

func nodeLight(n *gltf.Node, lights lightspunctual.Lights) (*lightspunctual.Light, bool) {
	var idx int
	switch v := n.Extensions[lightspunctual.ExtensionName].(type) {
	case lightspunctual.LightIndex:
		idx = int(v)
	case *lightspunctual.LightIndex:
		if v == nil {
			return nil, false
		}
		idx = int(*v)
	default:
		return nil, false
	}

	if idx < 0 || idx >= len(lights) || lights[idx] == nil {
		return nil, false
	}
	l := lights[idx]
	if l.Type != "point" {
		return nil, false
	}
	return l, true
}

// lightColor returns the light's color. Photometric intensity is not
// mapped; Phong intensities are unitless.
func lightColor(l *lightspunctual.Light) math3d.Color {
	if l.Color == nil {
		return math3d.White()
	}
	return math3d.RGB(l.Color[0], l.Color[1], l.Color[2])
}

func nodeName(idx int, n *gltf.Node) string {
	if n.Name != "" {
		return n.Name
	}
	return fmt.Sprintf("node %d", idx)
}
