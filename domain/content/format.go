package content

import (
	"encoding/json"
	"fmt"

	pkgerrors "github.com/zaheyak/Content-Studio-sub000/pkg/errors"
)

// Kind tags one of the six sibling content formats of a lesson.
type Kind string

const (
	KindVideo        Kind = "video"
	KindText         Kind = "text"
	KindPresentation Kind = "presentation"
	KindMindMap      Kind = "mindmap"
	KindCode         Kind = "code"
	KindImages       Kind = "images"
)

// Kinds lists every format in display order
var Kinds = []Kind{KindVideo, KindText, KindPresentation, KindMindMap, KindCode, KindImages}

// ParseKind validates a tag
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", pkgerrors.ErrUnknownContentFormat.New().WithDetail("type", s)
}

// Method records how a format's content was produced
type Method string

const (
	MethodManual    Method = "manual"
	MethodGenerated Method = "generated"
	MethodFallback  Method = "fallback"
	MethodUpload    Method = "upload"
)

// Format is the closed set of lesson content formats. The unexported method
// keeps implementations inside this package.
type Format interface {
	Kind() Kind
	CreationMethod() Method
	Completed() bool
	isFormat()
}

// Video content
type Video struct {
	Method Method
	Data   VideoData
}

// VideoData holds the video reference
type VideoData struct {
	URL             string `json:"url"`
	Transcript      string `json:"transcript,omitempty"`
	DurationSeconds int    `json:"durationSeconds,omitempty"`
}

// Text content
type Text struct {
	Method Method
	Data   TextData
}

// TextData holds the lesson text
type TextData struct {
	Body string `json:"body"`
}

// Presentation content
type Presentation struct {
	Method Method
	Data   PresentationData
}

// PresentationData holds the slides
type PresentationData struct {
	Slides []Slide `json:"slides"`
}

// Slide is one presentation slide
type Slide struct {
	Title string `json:"title"`
	Body  string `json:"body,omitempty"`
}

// MindMap content
type MindMap struct {
	Method Method
	Data   MindMapData
}

// Code content
type Code struct {
	Method Method
	Data   CodeData
}

// CodeData holds a code sample
type CodeData struct {
	Language string `json:"language"`
	Source   string `json:"source"`
}

// Images content
type Images struct {
	Method Method
	Data   ImagesData
}

// ImagesData holds image references
type ImagesData struct {
	Images []Image `json:"images"`
}

// Image is one image reference
type Image struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

func (Video) Kind() Kind        { return KindVideo }
func (Text) Kind() Kind         { return KindText }
func (Presentation) Kind() Kind { return KindPresentation }
func (MindMap) Kind() Kind      { return KindMindMap }
func (Code) Kind() Kind         { return KindCode }
func (Images) Kind() Kind       { return KindImages }

func (f Video) CreationMethod() Method        { return f.Method }
func (f Text) CreationMethod() Method         { return f.Method }
func (f Presentation) CreationMethod() Method { return f.Method }
func (f MindMap) CreationMethod() Method      { return f.Method }
func (f Code) CreationMethod() Method         { return f.Method }
func (f Images) CreationMethod() Method       { return f.Method }

func (f Video) Completed() bool        { return f.Data.URL != "" }
func (f Text) Completed() bool         { return f.Data.Body != "" }
func (f Presentation) Completed() bool { return len(f.Data.Slides) > 0 }
func (f MindMap) Completed() bool      { return f.Data.NodeCount > 0 }
func (f Code) Completed() bool         { return f.Data.Source != "" }
func (f Images) Completed() bool       { return len(f.Data.Images) > 0 }

func (Video) isFormat()        {}
func (Text) isFormat()         {}
func (Presentation) isFormat() {}
func (MindMap) isFormat()      {}
func (Code) isFormat()         {}
func (Images) isFormat()       {}

// Envelope is the wire form shared by every format:
// {type, method, data, completed}.
type Envelope struct {
	Type      Kind            `json:"type"`
	Method    Method          `json:"method"`
	Data      json.RawMessage `json:"data"`
	Completed bool            `json:"completed"`
}

func data(f Format) interface{} {
	switch v := f.(type) {
	case Video:
		return v.Data
	case Text:
		return v.Data
	case Presentation:
		return v.Data
	case MindMap:
		return v.Data
	case Code:
		return v.Data
	case Images:
		return v.Data
	default:
		return nil
	}
}

// ToEnvelope encodes a format into its wire envelope
func ToEnvelope(f Format) (Envelope, error) {
	raw, err := json.Marshal(data(f))
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s content: %w", f.Kind(), err)
	}
	return Envelope{
		Type:      f.Kind(),
		Method:    f.CreationMethod(),
		Data:      raw,
		Completed: f.Completed(),
	}, nil
}

// Encode marshals a format as its envelope
func Encode(f Format) ([]byte, error) {
	env, err := ToEnvelope(f)
	if err != nil {
		return nil, err
	}
	return json.Marshal(env)
}

// FromEnvelope dispatches on the type tag. Unknown tags are rejected.
func FromEnvelope(env Envelope) (Format, error) {
	if _, err := ParseKind(string(env.Type)); err != nil {
		return nil, err
	}

	decode := func(v interface{}) error {
		if len(env.Data) == 0 || string(env.Data) == "null" {
			return nil
		}
		if err := json.Unmarshal(env.Data, v); err != nil {
			return pkgerrors.ErrInvalidPayload.New().WithCause(err).WithDetail("type", string(env.Type))
		}
		return nil
	}

	var f Format
	var err error
	switch env.Type {
	case KindVideo:
		v := Video{Method: env.Method}
		err = decode(&v.Data)
		f = v
	case KindText:
		v := Text{Method: env.Method}
		err = decode(&v.Data)
		f = v
	case KindPresentation:
		v := Presentation{Method: env.Method}
		err = decode(&v.Data)
		f = v
	case KindMindMap:
		v := MindMap{Method: env.Method, Data: EmptyMindMapData()}
		err = decode(&v.Data)
		f = v
	case KindCode:
		v := Code{Method: env.Method}
		err = decode(&v.Data)
		f = v
	case KindImages:
		v := Images{Method: env.Method}
		err = decode(&v.Data)
		f = v
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Decode unmarshals an envelope and dispatches on its type tag
func Decode(raw []byte) (Format, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, pkgerrors.ErrInvalidPayload.New().WithCause(err)
	}
	return FromEnvelope(env)
}
