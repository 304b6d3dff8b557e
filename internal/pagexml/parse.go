package pagexml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrNotPageXML marks an input whose root element is not in a PAGE
// content namespace.
var ErrNotPageXML = errors.New("not a PAGE XML document")

// Load reads and parses a PAGE XML file.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	doc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a PAGE XML document from the reader, preserving the
// document order of mixed text and table regions.
func Parse(r io.Reader) (*File, error) {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, ErrNotPageXML
			}
			return nil, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Local != "PcGts" || !strings.HasPrefix(se.Name.Space, NamespacePrefix) {
			return nil, ErrNotPageXML
		}
		file := &File{Namespace: se.Name.Space}
		if err := parsePcGts(dec, &se, file); err != nil {
			return nil, err
		}
		return file, nil
	}
}

func parsePcGts(dec *xml.Decoder, start *xml.StartElement, file *File) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "Metadata":
				var md Metadata
				if err := dec.DecodeElement(&md, &t); err != nil {
					return err
				}
				file.Metadata = &md
			case "Page":
				if err := parsePage(dec, &t, &file.Page); err != nil {
					return err
				}
			default:
				if err := dec.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name == start.Name {
				return nil
			}
		}
	}
}

func parsePage(dec *xml.Decoder, start *xml.StartElement, page *Page) error {
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "imageFilename":
			page.ImageFilename = attr.Value
		case "imageWidth":
			page.ImageWidth, _ = strconv.Atoi(attr.Value)
		case "imageHeight":
			page.ImageHeight, _ = strconv.Atoi(attr.Value)
		}
	}
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "ReadingOrder":
				var ro ReadingOrder
				if err := dec.DecodeElement(&ro, &t); err != nil {
					return err
				}
				page.ReadingOrder = &ro
			case "TextRegion":
				var tr TextRegion
				if err := dec.DecodeElement(&tr, &t); err != nil {
					return err
				}
				page.Regions = append(page.Regions, Region{Text: &tr})
			case "TableRegion":
				var tb TableRegion
				if err := dec.DecodeElement(&tb, &t); err != nil {
					return err
				}
				page.Regions = append(page.Regions, Region{Table: &tb})
			default:
				if err := dec.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name == start.Name {
				return nil
			}
		}
	}
}

// Sniff reports whether the reader holds a PAGE XML document, checking
// only the root element's namespace.
func Sniff(r io.Reader) bool {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err != nil {
			return false
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se.Name.Local == "PcGts" && strings.HasPrefix(se.Name.Space, NamespacePrefix)
		}
	}
}
