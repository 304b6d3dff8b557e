package pagexml

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

const header = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// Save writes the document to the given path, creating parent directories
// as needed.
func Save(f *File, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()
	if err := Write(f, out); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Write serializes the document as UTF-8 PAGE XML with the stored default
// namespace on the root element.
func Write(f *File, w io.Writer) error {
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	root := xml.StartElement{
		Name: xml.Name{Local: "PcGts"},
		Attr: []xml.Attr{{Name: xml.Name{Local: "xmlns"}, Value: f.Namespace}},
	}
	if err := enc.EncodeToken(root); err != nil {
		return err
	}
	if f.Metadata != nil {
		if err := enc.Encode(f.Metadata); err != nil {
			return err
		}
	}
	if err := encodePage(enc, &f.Page); err != nil {
		return err
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return err
	}
	return enc.Flush()
}

func encodePage(enc *xml.Encoder, page *Page) error {
	start := xml.StartElement{
		Name: xml.Name{Local: "Page"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "imageFilename"}, Value: page.ImageFilename},
			{Name: xml.Name{Local: "imageWidth"}, Value: strconv.Itoa(page.ImageWidth)},
			{Name: xml.Name{Local: "imageHeight"}, Value: strconv.Itoa(page.ImageHeight)},
		},
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if page.ReadingOrder != nil {
		if err := enc.Encode(page.ReadingOrder); err != nil {
			return err
		}
	}
	for _, region := range page.Regions {
		switch {
		case region.Text != nil:
			if err := enc.Encode(region.Text); err != nil {
				return err
			}
		case region.Table != nil:
			if err := enc.Encode(region.Table); err != nil {
				return err
			}
		}
	}
	return enc.EncodeToken(start.End())
}
