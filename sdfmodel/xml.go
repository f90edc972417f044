package sdfmodel

import (
	"github.com/beevik/etree"
	"github.com/pkg/errors"
)

func configXML(meta Meta) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	model := doc.CreateElement("model")
	model.CreateElement("name").SetText(meta.Name)
	model.CreateElement("version").SetText(meta.Version)
	sdf := model.CreateElement("sdf")
	sdf.CreateAttr("version", SDFVersion)
	sdf.SetText("model.sdf")
	author := model.CreateElement("author")
	author.CreateElement("name").SetText(meta.Author)
	author.CreateElement("email").SetText(meta.Email)
	model.CreateElement("description").SetText(meta.Description)
	return doc
}

func sdfXML(meta Meta) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	sdf := doc.CreateElement("sdf")
	sdf.CreateAttr("version", SDFVersion)
	model := sdf.CreateElement("model")
	model.CreateAttr("name", meta.Name)
	model.CreateElement("static").SetText("true")
	link := model.CreateElement("link")
	link.CreateAttr("name", "link")

	collision := link.CreateElement("collision")
	collision.CreateAttr("name", "collision")
	addMeshGeometry(collision, meta)
	visual := link.CreateElement("visual")
	visual.CreateAttr("name", "visual")
	addMeshGeometry(visual, meta)
	return doc
}

// The collision and visual elements reference the same mesh artifact.
func addMeshGeometry(parent *etree.Element, meta Meta) {
	parent.CreateElement("geometry").CreateElement("mesh").CreateElement("uri").SetText(meta.MeshURI())
}

func writeDoc(path string, doc *etree.Document) error {
	doc.Indent(2)
	return errors.Wrapf(doc.WriteToFile(path), "write %s", path)
}
