package seo

import (
	"bytes"
	"encoding/json"
)

// Tag is a single <meta> name/property and its content.
type Tag struct {
	Name    string
	Content string
}

// Tags keeps meta tags in emission order. It marshals to a JSON object.
type Tags []Tag

// Get returns the content of the named tag, or "".
func (t Tags) Get(name string) string {
	for _, tag := range t {
		if tag.Name == name {
			return tag.Content
		}
	}
	return ""
}

func (t Tags) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, tag := range t {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(tag.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(tag.Content)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
