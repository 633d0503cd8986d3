// Package evidence scores raw OCR/vision output against static dictionaries
// and fuses the scored candidates into one best value per listing attribute.
package evidence

// Attribute names a listing field the extractor can produce evidence for.
type Attribute string

const (
	AttrCategory  Attribute = "category"
	AttrBrand     Attribute = "brand"
	AttrSize      Attribute = "size"
	AttrColor     Attribute = "color"
	AttrCondition Attribute = "condition"
)

// Source identifies one origin of raw signal. OCR text reads printed tags
// directly and is weighted highest during fusion.
type Source string

const (
	SourceOCRText         Source = "ocr_text"
	SourceWebEntity       Source = "web_entity"
	SourceVisionLabel     Source = "vision_label"
	SourceLocalizedObject Source = "localized_object"
)

// sourceWeights are the fusion priority weights per evidence source.
var sourceWeights = map[Source]float64{
	SourceOCRText:         1.0,
	SourceWebEntity:       0.8,
	SourceVisionLabel:     0.6,
	SourceLocalizedObject: 0.5,
}

// Weight returns the fusion priority weight for s. Unknown sources weigh 0.5.
func (s Source) Weight() float64 {
	if w, ok := sourceWeights[s]; ok {
		return w
	}
	return 0.5
}

// Candidate is one scored dictionary match. Multiple candidates may exist per
// attribute; duplicates are kept here and merged during fusion.
type Candidate struct {
	Attribute Attribute
	Value     string
	Score     float64
	Source    Source
}

// Fused is the single winning value for an attribute after fusion. A nil-like
// empty Value means insufficient evidence; downstream consumers must treat it
// as unknown and omit the field, never render a placeholder word.
type Fused struct {
	Attribute  Attribute
	Value      string
	Confidence float64
	Source     Source
}

// Set holds one Fused per attribute. Missing attributes read as absent.
type Set map[Attribute]Fused

// Value returns the fused value for attr, or "" when there is no evidence.
func (s Set) Value(attr Attribute) string {
	return s[attr].Value
}

// Confidence returns the fused confidence for attr, 0 when absent.
func (s Set) Confidence(attr Attribute) float64 {
	return s[attr].Confidence
}

// Input is the raw OCR/vision evidence for one request, merged across images.
type Input struct {
	OCRText       string
	Labels        []Label
	WebEntities   []string
	Objects       []string
	OCRConfidence float64
}

// Label is a vision label with its relevance score.
type Label struct {
	Description string
	Score       float64
}
