package catalog

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// FilePart is one pending image upload carried in a multipart submission.
type FilePart struct {
	Filename    string
	ContentType string
	Data        []byte
}

// MultipartPayload is the transmittable form of a product draft. Scalar
// fields keep their append order, tags repeat one part per entry, variants
// and seo travel as single JSON-encoded fields, and files become binary
// image parts.
type MultipartPayload struct {
	Fields       [][2]string
	Tags         []string
	VariantsJSON string
	SEOJSON      string
	Files        []FilePart
}

// AppendField adds a scalar field unless its value is empty.
func (p *MultipartPayload) AppendField(name, value string) {
	if value == "" {
		return
	}
	p.Fields = append(p.Fields, [2]string{name, value})
}

// Encode writes the payload as multipart/form-data and returns the body
// with its content type.
func (p *MultipartPayload) Encode() (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for _, field := range p.Fields {
		if err := writer.WriteField(field[0], field[1]); err != nil {
			return nil, "", fmt.Errorf("writing field %s: %w", field[0], err)
		}
	}
	for _, tag := range p.Tags {
		if err := writer.WriteField("tags", tag); err != nil {
			return nil, "", fmt.Errorf("writing tag: %w", err)
		}
	}
	if p.VariantsJSON != "" {
		if err := writer.WriteField("variants", p.VariantsJSON); err != nil {
			return nil, "", fmt.Errorf("writing variants: %w", err)
		}
	}
	if p.SEOJSON != "" {
		if err := writer.WriteField("seo", p.SEOJSON); err != nil {
			return nil, "", fmt.Errorf("writing seo: %w", err)
		}
	}
	for _, file := range p.Files {
		part, err := writer.CreatePart(filePartHeader(file))
		if err != nil {
			return nil, "", fmt.Errorf("creating image part: %w", err)
		}
		if _, err := part.Write(file.Data); err != nil {
			return nil, "", fmt.Errorf("writing image bytes: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart writer: %w", err)
	}
	return body, writer.FormDataContentType(), nil
}

func filePartHeader(file FilePart) textproto.MIMEHeader {
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(
		`form-data; name="images"; filename="%s"`, escapeQuotes(file.Filename)))
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)
	return header
}

func escapeQuotes(s string) string {
	return strings.NewReplacer("\\", "\\\\", `"`, `\"`).Replace(s)
}
