// Package export writes frame geometry as glTF so that a replayed session
// can be inspected in any model viewer.
package export

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/chazu/gizmesh/pkg/drawlist"
)

// MeshName names the node and mesh holding the frame geometry.
const MeshName = "gizmo"

// Document builds a glTF document from a frame view. An empty view gives a
// document with an empty scene.
func Document(v drawlist.View) *gltf.Document {
	doc := gltf.NewDocument()
	if v.VertexCount == 0 || v.IndexCount == 0 {
		return doc
	}

	records := v.VertexRecords()
	positions := make([][3]float32, len(records))
	normals := make([][3]float32, len(records))
	colors := make([][4]float32, len(records))
	for i, r := range records {
		positions[i] = r.Position
		normals[i] = r.Normal
		colors[i] = r.Color
	}

	var indicesAccessor uint32
	if v.IndexStride == drawlist.IndexStride16 {
		indices := make([]uint16, v.IndexCount)
		for i := range indices {
			indices[i] = uint16(v.Index(i))
		}
		indicesAccessor = modeler.WriteIndices(doc, indices)
	} else {
		indices := make([]uint32, v.IndexCount)
		for i := range indices {
			indices[i] = v.Index(i)
		}
		indicesAccessor = modeler.WriteIndices(doc, indices)
	}

	attributes := map[string]uint32{
		"POSITION": modeler.WritePosition(doc, positions),
		"NORMAL":   modeler.WriteNormal(doc, normals),
		"COLOR_0":  modeler.WriteColor(doc, colors),
	}

	doc.Materials = append(doc.Materials, &gltf.Material{
		Name:        MeshName,
		DoubleSided: true,
	})
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: MeshName,
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(indicesAccessor),
			Attributes: attributes,
			Material:   gltf.Index(0),
		}},
	})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)))
	doc.Nodes = append(doc.Nodes, &gltf.Node{
		Name: MeshName,
		Mesh: gltf.Index(uint32(len(doc.Meshes) - 1)),
	})
	return doc
}

// WriteGLB encodes the view as binary glTF.
func WriteGLB(w io.Writer, v drawlist.View) error {
	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = true
	if err := encoder.Encode(Document(v)); err != nil {
		return errors.Wrap(err, "encode glb")
	}
	return nil
}

// SaveGLB writes the view to a .glb file.
func SaveGLB(path string, v drawlist.View) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if err := WriteGLB(f, v); err != nil {
		f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}

// Geometry is triangle data read back from a glTF file.
type Geometry struct {
	Positions [][3]float32
	Indices   []uint32
}

// Read decodes a glTF or GLB stream and collects the positions and indices
// of every indexed primitive in the default scene, rebasing indices so the
// result is one triangle list.
func Read(r io.Reader) (Geometry, error) {
	var g Geometry
	doc := &gltf.Document{}
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return g, errors.Wrap(err, "decode gltf")
	}
	if len(doc.Scenes) == 0 {
		return g, nil
	}
	for _, iNode := range doc.Scenes[0].Nodes {
		node := doc.Nodes[iNode]
		if node.Mesh == nil {
			continue
		}
		mesh := doc.Meshes[*node.Mesh]
		for _, p := range mesh.Primitives {
			if p.Indices == nil {
				continue
			}
			pos, ok := p.Attributes["POSITION"]
			if !ok {
				return g, errors.Errorf("mesh %q: primitive without positions", mesh.Name)
			}
			positions, err := modeler.ReadPosition(doc, doc.Accessors[pos], nil)
			if err != nil {
				return g, errors.Wrapf(err, "mesh %q: read positions", mesh.Name)
			}
			indices, err := modeler.ReadIndices(doc, doc.Accessors[*p.Indices], nil)
			if err != nil {
				return g, errors.Wrapf(err, "mesh %q: read indices", mesh.Name)
			}
			base := uint32(len(g.Positions))
			g.Positions = append(g.Positions, positions...)
			for _, idx := range indices {
				g.Indices = append(g.Indices, idx+base)
			}
		}
	}
	return g, nil
}
