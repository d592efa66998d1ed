package web

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/meshforge/meshdata/mesh"
	"github.com/meshforge/meshdata/webutils"
)

type attributeInfo struct {
	Name   string `json:"name"`
	Format string `json:"format"`
	Offset int    `json:"offset"`
	Stride int    `json:"stride"`
}

type meshInfo struct {
	Primitive       string          `json:"primitive"`
	VertexCount     int             `json:"vertexCount"`
	VertexDataSize  int             `json:"vertexDataSize"`
	VertexDataFlags string          `json:"vertexDataFlags"`
	IndexType       string          `json:"indexType,omitempty"`
	IndexCount      int             `json:"indexCount,omitempty"`
	IndexOffset     int             `json:"indexOffset,omitempty"`
	IndexDataFlags  string          `json:"indexDataFlags"`
	Attributes      []attributeInfo `json:"attributes"`
}

func HandlerMeshList(w http.ResponseWriter, r *http.Request) {
	webutils.WriteJson(w, serverLibrary.List())
}

func libraryMesh(w http.ResponseWriter, r *http.Request) *mesh.MeshData {
	name := mux.Vars(r)["name"]
	m := serverLibrary.Get(name)
	if m == nil {
		webutils.WriteError(w, fmt.Errorf("unknown mesh %q", name))
	}
	return m
}

func HandlerMeshInfo(w http.ResponseWriter, r *http.Request) {
	m := libraryMesh(w, r)
	if m == nil {
		return
	}

	info := meshInfo{
		Primitive:       m.Primitive().String(),
		VertexCount:     m.VertexCount(),
		VertexDataSize:  len(m.VertexDataBytes()),
		VertexDataFlags: m.VertexDataFlags().String(),
		IndexDataFlags:  m.IndexDataFlags().String(),
	}
	if m.IsIndexed() {
		typ, _ := m.IndexType()
		count, _ := m.IndexCount()
		offset, _ := m.IndexOffset()
		info.IndexType = typ.String()
		info.IndexCount = count
		info.IndexOffset = offset
	}
	for id := 0; id < m.AttributeCount(); id++ {
		name, _ := m.AttributeName(id)
		format, _ := m.AttributeFormat(id)
		offset, _ := m.AttributeOffset(id)
		stride, _ := m.AttributeStride(id)
		info.Attributes = append(info.Attributes, attributeInfo{
			Name:   name.String(),
			Format: format.String(),
			Offset: offset,
			Stride: stride,
		})
	}
	webutils.WriteJson(w, info)
}

func HandlerMeshView(w http.ResponseWriter, r *http.Request) {
	m := libraryMesh(w, r)
	if m == nil {
		return
	}

	var data interface{}
	var err error
	switch view := mux.Vars(r)["view"]; view {
	case "indices":
		data, err = m.IndicesAsArray()
	case "positions":
		data, err = m.Positions3DAsArray(0)
	case "positions2d":
		data, err = m.Positions2DAsArray(0)
	case "normals":
		data, err = m.NormalsAsArray(0)
	case "uv":
		data, err = m.TextureCoordinates2DAsArray(0)
	case "colors":
		data, err = m.ColorsAsArray(0)
	default:
		err = fmt.Errorf("unknown view %q", view)
	}
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteJson(w, data)
}

func HandlerMeshDump(w http.ResponseWriter, r *http.Request) {
	m := libraryMesh(w, r)
	if m == nil {
		return
	}

	name := mux.Vars(r)["name"]
	switch buffer := mux.Vars(r)["buffer"]; buffer {
	case "vertex":
		webutils.WriteFile(w, bytes.NewReader(m.VertexDataBytes()), name+".vertex.bin")
	case "index":
		webutils.WriteFile(w, bytes.NewReader(m.IndexDataBytes()), name+".index.bin")
	default:
		webutils.WriteError(w, fmt.Errorf("unknown buffer %q", buffer))
	}
}
