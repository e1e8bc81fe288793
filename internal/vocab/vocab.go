// Package vocab holds the IRIs of the notes vocabulary and the few external
// terms the graph uses.
package vocab

import "github.com/knakk/rdf"

// Namespace IRIs.
const (
	Notes   = "https://www.jmoney.dev/notes#"
	DCTerms = "http://purl.org/dc/terms/"
	RDF     = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	XSD     = "http://www.w3.org/2001/XMLSchema#"
)

// Classes.
var (
	Binder  = mustIRI(Notes + "Binder")
	Divider = mustIRI(Notes + "Divider")
	Topic   = mustIRI(Notes + "Topic")
	Note    = mustIRI(Notes + "Note")
	Daily   = mustIRI(Notes + "Daily")
)

// Properties.
var (
	Type     = mustIRI(RDF + "type")
	Name     = mustIRI(Notes + "name")
	Title    = mustIRI(Notes + "title")
	Filename = mustIRI(Notes + "filename")
	Path     = mustIRI(Notes + "path")
	Contains = mustIRI(Notes + "contains")
	Previous = mustIRI(Notes + "previous")
	Next     = mustIRI(Notes + "next")
	IsPartOf = mustIRI(DCTerms + "isPartOf")
)

// XSDString is the datatype of every literal the converter emits.
var XSDString = mustIRI(XSD + "string")

// String returns v as an xsd:string literal.
func String(v string) rdf.Literal {
	return rdf.NewTypedLiteral(v, XSDString)
}

func mustIRI(s string) rdf.IRI {
	iri, err := rdf.NewIRI(s)
	if err != nil {
		panic(err)
	}
	return iri
}
