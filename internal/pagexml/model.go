// Package pagexml reads and writes PAGE XML documents as a typed element
// tree and converts between that tree and the layout document model. The
// core never touches files; everything here is the I/O collaborator around
// it.
package pagexml

import (
	"encoding/xml"
	"strconv"
)

// NamespacePrefix identifies PAGE content namespaces across schema
// versions.
const NamespacePrefix = "http://schema.primaresearch.org/PAGE/gts/pagecontent/"

// File is one parsed PAGE XML document.
type File struct {
	Namespace string
	Metadata  *Metadata
	Page      Page
}

// Metadata carries the PAGE metadata block.
type Metadata struct {
	XMLName    xml.Name `xml:"Metadata"`
	Creator    string   `xml:"Creator,omitempty"`
	Created    string   `xml:"Created,omitempty"`
	LastChange string   `xml:"LastChange,omitempty"`
}

// Page is the page element with its regions in document order.
type Page struct {
	ImageFilename string
	ImageWidth    int
	ImageHeight   int
	ReadingOrder  *ReadingOrder
	Regions       []Region
}

// Region is one region element in document order: exactly one of Text and
// Table is set.
type Region struct {
	Text  *TextRegion
	Table *TableRegion
}

// ReadingOrder holds the explicit ordered group of region references.
type ReadingOrder struct {
	XMLName      xml.Name      `xml:"ReadingOrder"`
	OrderedGroup *OrderedGroup `xml:"OrderedGroup"`
}

// OrderedGroup lists region references with explicit indices.
type OrderedGroup struct {
	ID      string             `xml:"id,attr,omitempty"`
	Caption string             `xml:"caption,attr,omitempty"`
	Refs    []RegionRefIndexed `xml:"RegionRefIndexed"`
}

// RegionRefIndexed points at a region by id with its reading-order index.
type RegionRefIndexed struct {
	Index     int    `xml:"index,attr"`
	RegionRef string `xml:"regionRef,attr"`
}

// Coords is the closed boundary of a region or line.
type Coords struct {
	Points string `xml:"points,attr"`
}

// Baseline is the open baseline polyline of a text line.
type Baseline struct {
	Points string `xml:"points,attr"`
}

// TextEquiv is one ranked transcription. A missing index attribute means
// rank 0.
type TextEquiv struct {
	Index   string `xml:"index,attr,omitempty"`
	Unicode string `xml:"Unicode"`
}

// Rank returns the numeric rank of the transcription.
func (t TextEquiv) Rank() int {
	if t.Index == "" {
		return 0
	}
	n, err := strconv.Atoi(t.Index)
	if err != nil {
		return 0
	}
	return n
}

// TextRegion is a region owning text lines.
type TextRegion struct {
	XMLName    xml.Name    `xml:"TextRegion"`
	ID         string      `xml:"id,attr"`
	Custom     string      `xml:"custom,attr,omitempty"`
	Coords     *Coords     `xml:"Coords"`
	TextLines  []TextLine  `xml:"TextLine"`
	TextEquivs []TextEquiv `xml:"TextEquiv"`
}

// TextLine is one line with boundary, optional baseline, words and
// transcriptions.
type TextLine struct {
	XMLName    xml.Name    `xml:"TextLine"`
	ID         string      `xml:"id,attr"`
	Custom     string      `xml:"custom,attr,omitempty"`
	Coords     *Coords     `xml:"Coords"`
	Baseline   *Baseline   `xml:"Baseline"`
	Words      []Word      `xml:"Word"`
	TextEquivs []TextEquiv `xml:"TextEquiv"`
}

// Word is a word element within a line.
type Word struct {
	XMLName    xml.Name    `xml:"Word"`
	ID         string      `xml:"id,attr"`
	Coords     *Coords     `xml:"Coords"`
	TextEquivs []TextEquiv `xml:"TextEquiv"`
}

// TableRegion is a region of table cells.
type TableRegion struct {
	XMLName xml.Name    `xml:"TableRegion"`
	ID      string      `xml:"id,attr"`
	Custom  string      `xml:"custom,attr,omitempty"`
	Coords  *Coords     `xml:"Coords"`
	Cells   []TableCell `xml:"TableCell"`
}

// TableCell is a table cell behaving like a text region with a grid
// position.
type TableCell struct {
	XMLName    xml.Name    `xml:"TableCell"`
	ID         string      `xml:"id,attr"`
	Custom     string      `xml:"custom,attr,omitempty"`
	Row        int         `xml:"row,attr"`
	Col        int         `xml:"col,attr"`
	Coords     *Coords     `xml:"Coords"`
	TextLines  []TextLine  `xml:"TextLine"`
	TextEquivs []TextEquiv `xml:"TextEquiv"`
}
