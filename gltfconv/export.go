package gltfconv

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/meshforge/meshdata/mesh"
)

// Export decodes every mesh into canonical arrays and writes them as
// accessors of a fresh glTF document, one mesh and node per entry.
// Custom attributes have no glTF semantic and are skipped.
func Export(meshes []*mesh.MeshData) (*gltf.Document, error) {
	doc := gltf.NewDocument()

	for i, m := range meshes {
		primitive := &gltf.Primitive{
			Attributes: make(map[string]uint32),
			Mode:       exportMode(m.Primitive()),
		}

		if m.AttributeCountOf(mesh.AttributePosition) > 0 {
			decoded, err := m.Positions3DAsArray(0)
			if err != nil {
				return nil, errors.Wrapf(err, "mesh %d positions", i)
			}
			positions := make([][3]float32, len(decoded))
			for j, p := range decoded {
				positions[j] = [3]float32(p)
			}
			primitive.Attributes["POSITION"] = modeler.WritePosition(doc, positions)
		}

		if m.AttributeCountOf(mesh.AttributeNormal) > 0 {
			decoded, err := m.NormalsAsArray(0)
			if err != nil {
				return nil, errors.Wrapf(err, "mesh %d normals", i)
			}
			normals := make([][3]float32, len(decoded))
			for j, n := range decoded {
				normals[j] = [3]float32(n)
			}
			primitive.Attributes["NORMAL"] = modeler.WriteNormal(doc, normals)
		}

		for layer := 0; layer < m.AttributeCountOf(mesh.AttributeTextureCoordinates); layer++ {
			decoded, err := m.TextureCoordinates2DAsArray(layer)
			if err != nil {
				return nil, errors.Wrapf(err, "mesh %d texture coordinates %d", i, layer)
			}
			uvs := make([][2]float32, len(decoded))
			for j, uv := range decoded {
				uvs[j] = [2]float32(uv)
			}
			primitive.Attributes[fmt.Sprintf("TEXCOORD_%d", layer)] = modeler.WriteTextureCoord(doc, uvs)
		}

		for layer := 0; layer < m.AttributeCountOf(mesh.AttributeColor); layer++ {
			decoded, err := m.ColorsAsArray(layer)
			if err != nil {
				return nil, errors.Wrapf(err, "mesh %d colors %d", i, layer)
			}
			colors := make([][4]float32, len(decoded))
			for j, c := range decoded {
				colors[j] = [4]float32(c)
			}
			primitive.Attributes[fmt.Sprintf("COLOR_%d", layer)] = modeler.WriteColor(doc, colors)
		}

		if m.IsIndexed() {
			indices, err := m.IndicesAsArray()
			if err != nil {
				return nil, errors.Wrapf(err, "mesh %d indices", i)
			}
			if len(indices) > 0 {
				primitive.Indices = gltf.Index(modeler.WriteIndices(doc, indices))
			}
		}

		name := fmt.Sprintf("mesh%d", i)
		if origin, ok := m.ImporterState().(*PrimitiveOrigin); ok && origin.Mesh != "" {
			name = origin.Mesh
		}

		doc.Meshes = append(doc.Meshes, &gltf.Mesh{
			Name:       name,
			Primitives: []*gltf.Primitive{primitive},
		})
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name: name,
			Mesh: gltf.Index(uint32(len(doc.Meshes) - 1)),
		})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)-1))
	}

	return doc, nil
}

func exportMode(p mesh.Primitive) gltf.PrimitiveMode {
	switch p {
	case mesh.PrimitivePoints:
		return gltf.PrimitivePoints
	case mesh.PrimitiveLines:
		return gltf.PrimitiveLines
	case mesh.PrimitiveLineLoop:
		return gltf.PrimitiveLineLoop
	case mesh.PrimitiveLineStrip:
		return gltf.PrimitiveLineStrip
	case mesh.PrimitiveTriangleStrip:
		return gltf.PrimitiveTriangleStrip
	case mesh.PrimitiveTriangleFan:
		return gltf.PrimitiveTriangleFan
	}
	return gltf.PrimitiveTriangles
}
