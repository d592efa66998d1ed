package mesh

import "github.com/pkg/errors"

// Primitive is the draw topology of a mesh. It is carried through
// untouched; nothing in this package interprets it.
type Primitive uint8

const (
	PrimitivePoints Primitive = iota + 1
	PrimitiveLines
	PrimitiveLineLoop
	PrimitiveLineStrip
	PrimitiveTriangles
	PrimitiveTriangleStrip
	PrimitiveTriangleFan
)

func (p Primitive) String() string {
	switch p {
	case PrimitivePoints:
		return "points"
	case PrimitiveLines:
		return "lines"
	case PrimitiveLineLoop:
		return "lineloop"
	case PrimitiveLineStrip:
		return "linestrip"
	case PrimitiveTriangles:
		return "triangles"
	case PrimitiveTriangleStrip:
		return "trianglestrip"
	case PrimitiveTriangleFan:
		return "trianglefan"
	}
	return "unknown"
}

// MeshData holds one index buffer and one vertex buffer, either owned
// or borrowed, plus an ordered attribute table describing strided
// typed views into the vertex buffer. It is built once by an importer
// and queried or decoded by consumers; the only structural mutation
// allowed afterwards is releasing a buffer out.
type MeshData struct {
	primitive     Primitive
	indexType     IndexType
	indexOffset   int
	indexSize     int
	indexData     Buffer
	vertexData    Buffer
	attributes    []AttributeData
	vertexCount   int
	importerState interface{}
}

// NewMeshData is the canonical constructor: it binds the index view
// and the attribute descriptors to concrete buffers and verifies every
// structural invariant. All other constructors funnel into it.
//
// The vertex count of the mesh is taken from the first attribute, or
// is 0 for an attributeless indexed mesh.
func NewMeshData(primitive Primitive, indexData Buffer, indices IndexData,
	vertexData Buffer, attributes []AttributeData, importerState interface{}) (*MeshData, error) {

	m := &MeshData{
		primitive:     primitive,
		indexType:     indices.typ,
		indexOffset:   indices.offset,
		indexSize:     indices.size,
		indexData:     indexData,
		vertexData:    vertexData,
		attributes:    attributes,
		importerState: importerState,
	}

	if len(attributes) == 0 {
		if indices.typ == IndexTypeNone {
			return nil, errors.Wrap(ErrInvalidArgument,
				"indices are expected to be valid if there are no attributes")
		}
	} else {
		m.vertexCount = attributes[0].vertexCount
	}

	if indices.size == 0 {
		if indexData.Len() != 0 {
			return nil, errors.Wrap(ErrInvalidArgument,
				"indexData passed for a non-indexed mesh")
		}
	} else if indices.offset+indices.size > indexData.Len() {
		return nil, errors.Wrapf(ErrInvalidArgument,
			"indices [%d:%d] are not contained in the passed %d-byte indexData",
			indices.offset, indices.offset+indices.size, indexData.Len())
	}

	for i := range attributes {
		a := &attributes[i]
		if a.format == 0 {
			return nil, errors.Wrapf(ErrInvalidArgument,
				"attribute %d doesn't specify anything", i)
		}
		if a.vertexCount != m.vertexCount {
			return nil, errors.Wrapf(ErrInvalidArgument,
				"attribute %d has %d vertices but %d expected",
				i, a.vertexCount, m.vertexCount)
		}
		if m.vertexCount == 0 {
			continue
		}
		span := a.offset + (m.vertexCount-1)*a.stride + a.format.Size()
		if span > vertexData.Len() {
			return nil, errors.Wrapf(ErrInvalidArgument,
				"attribute %d spans %d bytes but passed vertexData has only %d",
				i, span, vertexData.Len())
		}
		if !a.sameBacking(vertexData.data) {
			return nil, errors.Wrapf(ErrInvalidArgument,
				"attribute %d is not backed by the passed vertexData", i)
		}
	}

	return m, nil
}

// NewVertexMeshData constructs a non-indexed mesh.
func NewVertexMeshData(primitive Primitive, vertexData Buffer,
	attributes []AttributeData, importerState interface{}) (*MeshData, error) {
	return NewMeshData(primitive, Buffer{}, IndexData{}, vertexData, attributes, importerState)
}

// NewIndexMeshData constructs an attributeless indexed mesh, useful
// when the vertex data lives elsewhere.
func NewIndexMeshData(primitive Primitive, indexData Buffer, indices IndexData,
	importerState interface{}) (*MeshData, error) {
	return NewMeshData(primitive, indexData, indices, Buffer{}, nil, importerState)
}

func (m *MeshData) Primitive() Primitive {
	return m.primitive
}

// VertexCount is the element count of every attribute view, 0 for an
// attributeless mesh or after the vertex data was released.
func (m *MeshData) VertexCount() int {
	return m.vertexCount
}

// ImporterState is the opaque back-reference to whatever produced the
// mesh, carried through uninterpreted.
func (m *MeshData) ImporterState() interface{} {
	return m.importerState
}

func (m *MeshData) IndexDataFlags() BufferFlags {
	return m.indexData.flags
}

func (m *MeshData) VertexDataFlags() BufferFlags {
	return m.vertexData.flags
}

// IndexDataBytes is the whole index buffer, which may be wider than
// the index view when the allocation is shared with other data.
func (m *MeshData) IndexDataBytes() []byte {
	return m.indexData.data
}

func (m *MeshData) MutableIndexDataBytes() ([]byte, error) {
	if !m.indexData.flags.Has(BufferMutable) {
		return nil, errors.Wrap(ErrInvalidState, "index data not mutable")
	}
	return m.indexData.data, nil
}

func (m *MeshData) VertexDataBytes() []byte {
	return m.vertexData.data
}

func (m *MeshData) MutableVertexDataBytes() ([]byte, error) {
	if !m.vertexData.flags.Has(BufferMutable) {
		return nil, errors.Wrap(ErrInvalidState, "vertex data not mutable")
	}
	return m.vertexData.data, nil
}

// IsIndexed reports whether an index type was bound at construction.
// It stays true even after ReleaseIndexData, which only empties the
// view.
func (m *MeshData) IsIndexed() bool {
	return m.indexType != IndexTypeNone
}

func (m *MeshData) IndexCount() (int, error) {
	if !m.IsIndexed() {
		return 0, errors.Wrap(ErrInvalidState, "the mesh is not indexed")
	}
	return m.indexSize / m.indexType.Size(), nil
}

func (m *MeshData) IndexType() (IndexType, error) {
	if !m.IsIndexed() {
		return IndexTypeNone, errors.Wrap(ErrInvalidState, "the mesh is not indexed")
	}
	return m.indexType, nil
}

// IndexOffset is the byte offset of the index view from the start of
// the index buffer.
func (m *MeshData) IndexOffset() (int, error) {
	if !m.IsIndexed() {
		return 0, errors.Wrap(ErrInvalidState, "the mesh is not indexed")
	}
	return m.indexOffset, nil
}

// indexBytes is the bound index sub-view, nil when the view is empty.
func (m *MeshData) indexBytes() []byte {
	if m.indexSize == 0 {
		return nil
	}
	return m.indexData.data[m.indexOffset : m.indexOffset+m.indexSize]
}

// Indices is a read-only [indexCount][indexTypeSize] view of the raw
// index bytes. Callers wanting a concrete integer width use
// IndicesInto instead.
func (m *MeshData) Indices() (RowView, error) {
	if !m.IsIndexed() {
		return RowView{}, errors.Wrap(ErrInvalidState, "the mesh is not indexed")
	}
	size := m.indexType.Size()
	return RowView{
		data:    m.indexBytes(),
		count:   m.indexSize / size,
		rowSize: size,
		stride:  size,
	}, nil
}

// MutableIndices is the writable counterpart of Indices.
func (m *MeshData) MutableIndices() (RowView, error) {
	if !m.indexData.flags.Has(BufferMutable) {
		return RowView{}, errors.Wrap(ErrInvalidState, "index data not mutable")
	}
	return m.Indices()
}

// AttributeCount is the number of attributes in table order.
func (m *MeshData) AttributeCount() int {
	return len(m.attributes)
}

// AttributeCountOf is the number of attributes with the given
// semantic name, e.g. the number of UV sets.
func (m *MeshData) AttributeCountOf(name AttributeName) int {
	count := 0
	for i := range m.attributes {
		if m.attributes[i].name == name {
			count++
		}
	}
	return count
}

// attributeFor resolves the id-th occurrence of name, in table order,
// to a positional index. Returns -1 when there aren't that many.
func (m *MeshData) attributeFor(name AttributeName, id int) int {
	for i := range m.attributes {
		if m.attributes[i].name != name {
			continue
		}
		if id == 0 {
			return i
		}
		id--
	}
	return -1
}

// AttributeID resolves (name, occurrence) addressing to a positional
// attribute index.
func (m *MeshData) AttributeID(name AttributeName, id int) (int, error) {
	attrID := m.attributeFor(name, id)
	if attrID < 0 {
		return 0, errors.Wrapf(ErrIndexOutOfRange,
			"index %d out of range for %d %v attributes",
			id, m.AttributeCountOf(name), name)
	}
	return attrID, nil
}

func (m *MeshData) checkAttributeID(id int) error {
	if id < 0 || id >= len(m.attributes) {
		return errors.Wrapf(ErrIndexOutOfRange,
			"index %d out of range for %d attributes", id, len(m.attributes))
	}
	return nil
}

// AttributeData returns the id-th attribute descriptor with any
// offset-only location resolved against the current vertex buffer, so
// the result never exposes a stale view.
func (m *MeshData) AttributeData(id int) (AttributeData, error) {
	if err := m.checkAttributeID(id); err != nil {
		return AttributeData{}, err
	}
	out := m.attributes[id]
	out.bound = m.vertexData.data
	out.offsetOnly = false
	return out, nil
}

func (m *MeshData) AttributeName(id int) (AttributeName, error) {
	if err := m.checkAttributeID(id); err != nil {
		return 0, err
	}
	return m.attributes[id].name, nil
}

func (m *MeshData) AttributeFormat(id int) (Format, error) {
	if err := m.checkAttributeID(id); err != nil {
		return 0, err
	}
	return m.attributes[id].format, nil
}

func (m *MeshData) AttributeOffset(id int) (int, error) {
	if err := m.checkAttributeID(id); err != nil {
		return 0, err
	}
	return m.attributes[id].offset, nil
}

func (m *MeshData) AttributeStride(id int) (int, error) {
	if err := m.checkAttributeID(id); err != nil {
		return 0, err
	}
	return m.attributes[id].stride, nil
}

func (m *MeshData) AttributeFormatOf(name AttributeName, id int) (Format, error) {
	attrID, err := m.AttributeID(name, id)
	if err != nil {
		return 0, err
	}
	return m.attributes[attrID].format, nil
}

func (m *MeshData) AttributeOffsetOf(name AttributeName, id int) (int, error) {
	attrID, err := m.AttributeID(name, id)
	if err != nil {
		return 0, err
	}
	return m.attributes[attrID].offset, nil
}

func (m *MeshData) AttributeStrideOf(name AttributeName, id int) (int, error) {
	attrID, err := m.AttributeID(name, id)
	if err != nil {
		return 0, err
	}
	return m.attributes[attrID].stride, nil
}

// attributeView resolves an attribute against the current vertex
// buffer. The mesh vertex count is used instead of the descriptor's
// own so views go empty after ReleaseVertexData instead of dangling.
func (m *MeshData) attributeView(a *AttributeData) RowView {
	if m.vertexCount == 0 {
		return RowView{rowSize: a.format.Size(), stride: a.stride}
	}
	return RowView{
		data:    m.vertexData.data[a.offset:],
		count:   m.vertexCount,
		rowSize: a.format.Size(),
		stride:  a.stride,
	}
}

// Attribute is a read-only [vertexCount][formatSize] view of the
// id-th attribute's raw bytes.
func (m *MeshData) Attribute(id int) (RowView, error) {
	if err := m.checkAttributeID(id); err != nil {
		return RowView{}, err
	}
	return m.attributeView(&m.attributes[id]), nil
}

// AttributeOf is Attribute with (name, occurrence) addressing.
func (m *MeshData) AttributeOf(name AttributeName, id int) (RowView, error) {
	attrID, err := m.AttributeID(name, id)
	if err != nil {
		return RowView{}, err
	}
	return m.attributeView(&m.attributes[attrID]), nil
}

// MutableAttribute is the writable counterpart of Attribute.
func (m *MeshData) MutableAttribute(id int) (RowView, error) {
	if !m.vertexData.flags.Has(BufferMutable) {
		return RowView{}, errors.Wrap(ErrInvalidState, "vertex data not mutable")
	}
	return m.Attribute(id)
}

// MutableAttributeOf is the writable counterpart of AttributeOf.
func (m *MeshData) MutableAttributeOf(name AttributeName, id int) (RowView, error) {
	if !m.vertexData.flags.Has(BufferMutable) {
		return RowView{}, errors.Wrap(ErrInvalidState, "vertex data not mutable")
	}
	return m.AttributeOf(name, id)
}

// ReleaseIndexData transfers the index buffer out. The mesh keeps its
// index type but the view becomes empty, so IndexCount reports 0.
func (m *MeshData) ReleaseIndexData() []byte {
	m.indexSize = 0
	return m.indexData.release()
}

// ReleaseAttributeData transfers the attribute table out, leaving the
// mesh with no attributes. The vertex count is kept.
func (m *MeshData) ReleaseAttributeData() []AttributeData {
	out := m.attributes
	m.attributes = nil
	return out
}

// ReleaseVertexData transfers the vertex buffer out and resets the
// vertex count to 0, so attribute views over the released memory come
// back empty instead of dangling.
func (m *MeshData) ReleaseVertexData() []byte {
	m.vertexCount = 0
	return m.vertexData.release()
}
