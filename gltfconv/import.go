// Package gltfconv converts between glTF 2.0 documents and the mesh
// data model: accessors become attribute descriptors over a packed
// vertex buffer on import, canonical decoded arrays become accessors
// on export.
package gltfconv

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"

	"github.com/meshforge/meshdata/mesh"
)

// PrimitiveOrigin is attached to every imported MeshData as its
// importer state.
type PrimitiveOrigin struct {
	Mesh      string
	MeshIndex int
	Primitive int
}

// Importer maps glTF mesh primitives onto MeshData. It keeps a stable
// assignment of custom attribute names across everything it imports,
// so e.g. JOINTS_0 resolves to the same custom id in every mesh.
type Importer struct {
	custom map[string]mesh.AttributeName
}

func NewImporter() *Importer {
	return &Importer{custom: make(map[string]mesh.AttributeName)}
}

// Import converts every primitive of every mesh in doc. Buffer data
// must already be resident (gltf.Open loads it).
func (imp *Importer) Import(doc *gltf.Document) ([]*mesh.MeshData, error) {
	var out []*mesh.MeshData
	for iMesh, gltfMesh := range doc.Meshes {
		for iPrimitive, primitive := range gltfMesh.Primitives {
			m, err := imp.importPrimitive(doc, primitive, &PrimitiveOrigin{
				Mesh:      gltfMesh.Name,
				MeshIndex: iMesh,
				Primitive: iPrimitive,
			})
			if err != nil {
				return nil, errors.Wrapf(err, "mesh %d primitive %d", iMesh, iPrimitive)
			}
			out = append(out, m)
		}
	}
	return out, nil
}

// Import is a convenience one-shot form of Importer.Import.
func Import(doc *gltf.Document) ([]*mesh.MeshData, error) {
	return NewImporter().Import(doc)
}

func (imp *Importer) importPrimitive(doc *gltf.Document, primitive *gltf.Primitive, origin *PrimitiveOrigin) (*mesh.MeshData, error) {
	// Deterministic attribute order regardless of map iteration.
	semantics := make([]string, 0, len(primitive.Attributes))
	for semantic := range primitive.Attributes {
		semantics = append(semantics, semantic)
	}
	sort.Strings(semantics)

	var vertexBytes []byte
	attributes := make([]mesh.AttributeData, 0, len(semantics))
	for _, semantic := range semantics {
		accessorID := primitive.Attributes[semantic]
		if int(accessorID) >= len(doc.Accessors) {
			return nil, errors.Errorf("attribute %s references accessor %d of %d",
				semantic, accessorID, len(doc.Accessors))
		}
		accessor := doc.Accessors[accessorID]

		format, err := attributeFormat(accessor)
		if err != nil {
			return nil, errors.Wrapf(err, "attribute %s", semantic)
		}
		raw, err := accessorBytes(doc, accessor, format.Size())
		if err != nil {
			return nil, errors.Wrapf(err, "attribute %s", semantic)
		}

		attribute, err := mesh.OffsetOnlyAttributeData(imp.attributeName(semantic),
			format, len(vertexBytes), int(accessor.Count), format.Size())
		if err != nil {
			return nil, errors.Wrapf(err, "attribute %s", semantic)
		}
		attributes = append(attributes, attribute)
		vertexBytes = append(vertexBytes, raw...)
	}

	indexBuffer := mesh.Buffer{}
	indices := mesh.IndexData{}
	if primitive.Indices != nil {
		if int(*primitive.Indices) >= len(doc.Accessors) {
			return nil, errors.Errorf("index accessor %d of %d", *primitive.Indices, len(doc.Accessors))
		}
		accessor := doc.Accessors[*primitive.Indices]
		typ, err := indexType(accessor.ComponentType)
		if err != nil {
			return nil, err
		}
		raw, err := accessorBytes(doc, accessor, typ.Size())
		if err != nil {
			return nil, errors.Wrap(err, "indices")
		}
		if indices, err = mesh.NewIndexData(typ, 0, len(raw)); err != nil {
			return nil, err
		}
		indexBuffer = mesh.NewBuffer(raw)
	}

	return mesh.NewMeshData(primitiveMode(primitive.Mode), indexBuffer, indices,
		mesh.NewBuffer(vertexBytes), attributes, origin)
}

// attributeName maps a glTF attribute semantic onto the data model's
// names. Unknown semantics get a stable custom name per importer.
func (imp *Importer) attributeName(semantic string) mesh.AttributeName {
	switch {
	case semantic == "POSITION":
		return mesh.AttributePosition
	case semantic == "NORMAL":
		return mesh.AttributeNormal
	case strings.HasPrefix(semantic, "TEXCOORD_"):
		return mesh.AttributeTextureCoordinates
	case strings.HasPrefix(semantic, "COLOR_"):
		return mesh.AttributeColor
	}
	if name, ok := imp.custom[semantic]; ok {
		return name
	}
	name := mesh.CustomAttribute(uint16(len(imp.custom)))
	imp.custom[semantic] = name
	return name
}

// CustomSemantics returns the semantic string assigned to each custom
// attribute name so far.
func (imp *Importer) CustomSemantics() map[mesh.AttributeName]string {
	out := make(map[mesh.AttributeName]string, len(imp.custom))
	for semantic, name := range imp.custom {
		out[name] = semantic
	}
	return out
}

func attributeFormat(accessor *gltf.Accessor) (mesh.Format, error) {
	var components int
	switch accessor.Type {
	case gltf.AccessorVec2:
		components = 2
	case gltf.AccessorVec3:
		components = 3
	case gltf.AccessorVec4:
		components = 4
	default:
		return 0, errors.Errorf("unsupported accessor type %v for a vertex attribute", accessor.Type)
	}

	var t mesh.ComponentType
	switch accessor.ComponentType {
	case gltf.ComponentFloat:
		t = mesh.ComponentFloat
	case gltf.ComponentUbyte:
		t = mesh.ComponentUnsignedByte
		if accessor.Normalized {
			t = mesh.ComponentUnsignedByteNormalized
		}
	case gltf.ComponentByte:
		t = mesh.ComponentByte
		if accessor.Normalized {
			t = mesh.ComponentByteNormalized
		}
	case gltf.ComponentUshort:
		t = mesh.ComponentUnsignedShort
		if accessor.Normalized {
			t = mesh.ComponentUnsignedShortNormalized
		}
	case gltf.ComponentShort:
		t = mesh.ComponentShort
		if accessor.Normalized {
			t = mesh.ComponentShortNormalized
		}
	default:
		return 0, errors.Errorf("unsupported component type %v for a vertex attribute", accessor.ComponentType)
	}

	return mesh.FormatOf(components, t), nil
}

func indexType(c gltf.ComponentType) (mesh.IndexType, error) {
	switch c {
	case gltf.ComponentUbyte:
		return mesh.IndexUnsignedByte, nil
	case gltf.ComponentUshort:
		return mesh.IndexUnsignedShort, nil
	case gltf.ComponentUint:
		return mesh.IndexUnsignedInt, nil
	}
	return mesh.IndexTypeNone, errors.Errorf("unsupported index component type %v", c)
}

// accessorBytes copies the accessor's elements out of its buffer view
// into a tightly packed slice, collapsing any interleaving stride.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elementSize int) ([]byte, error) {
	if accessor.Sparse != nil {
		return nil, errors.New("sparse accessors are not supported")
	}
	if accessor.BufferView == nil {
		return nil, errors.New("accessor without a buffer view")
	}
	if int(*accessor.BufferView) >= len(doc.BufferViews) {
		return nil, errors.Errorf("buffer view %d of %d", *accessor.BufferView, len(doc.BufferViews))
	}
	view := doc.BufferViews[*accessor.BufferView]
	if int(view.Buffer) >= len(doc.Buffers) {
		return nil, errors.Errorf("buffer %d of %d", view.Buffer, len(doc.Buffers))
	}
	data := doc.Buffers[view.Buffer].Data

	stride := int(view.ByteStride)
	if stride == 0 {
		stride = elementSize
	}
	count := int(accessor.Count)
	base := int(view.ByteOffset) + int(accessor.ByteOffset)
	if count > 0 {
		if end := base + (count-1)*stride + elementSize; end > len(data) {
			return nil, errors.Errorf("accessor spans %d bytes but buffer has only %d", end, len(data))
		}
	}

	out := make([]byte, count*elementSize)
	for i := 0; i < count; i++ {
		copy(out[i*elementSize:(i+1)*elementSize], data[base+i*stride:])
	}
	return out, nil
}

func primitiveMode(mode gltf.PrimitiveMode) mesh.Primitive {
	switch mode {
	case gltf.PrimitivePoints:
		return mesh.PrimitivePoints
	case gltf.PrimitiveLines:
		return mesh.PrimitiveLines
	case gltf.PrimitiveLineLoop:
		return mesh.PrimitiveLineLoop
	case gltf.PrimitiveLineStrip:
		return mesh.PrimitiveLineStrip
	case gltf.PrimitiveTriangleStrip:
		return mesh.PrimitiveTriangleStrip
	case gltf.PrimitiveTriangleFan:
		return mesh.PrimitiveTriangleFan
	}
	return mesh.PrimitiveTriangles
}
