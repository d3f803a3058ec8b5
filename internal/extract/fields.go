// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"encoding/json"
	"sort"
)

// Reason explains how a field value was obtained.
type Reason int

const (
	// ReasonOK means the preferred value was present.
	ReasonOK Reason = iota
	// ReasonMissing means the field was absent and a placeholder was used.
	ReasonMissing
	// ReasonMalformed means the field was present but had an unexpected shape.
	ReasonMalformed
	// ReasonFallback means a secondary source was used (e.g. a non-English label).
	ReasonFallback
	// ReasonUnknownType means a claim value had an unrecognized datavalue type
	// and was passed through raw.
	ReasonUnknownType
)

func (r Reason) String() string {
	switch r {
	case ReasonOK:
		return "ok"
	case ReasonMissing:
		return "missing"
	case ReasonMalformed:
		return "malformed"
	case ReasonFallback:
		return "fallback"
	case ReasonUnknownType:
		return "unknown type"
	default:
		return "unknown"
	}
}

// English is the preferred language for names and descriptions.
const English = "en"

// Lifespan properties feeding the birth and death node columns.
const (
	PropertyBirth = "P569"
	PropertyDeath = "P570"
)

// ExtractID returns the entity's id. A missing, null, empty or non-string
// id is ReasonMissing.
func ExtractID(e Entity) (string, Reason) {
	if len(e.ID) == 0 {
		return "", ReasonMissing
	}
	var id string
	if err := json.Unmarshal(e.ID, &id); err != nil || id == "" {
		return "", ReasonMissing
	}
	return id, ReasonOK
}

// ExtractName returns the English label. Without one it returns the label of
// the lexicographically first language (ReasonFallback), and with no labels
// at all it returns id (ReasonMissing). Labels are never modified.
func ExtractName(e Entity, id string) (string, Reason) {
	if name, ok := e.Labels[English]; ok {
		return name, ReasonOK
	}
	if len(e.Labels) == 0 {
		return id, ReasonMissing
	}
	langs := make([]string, 0, len(e.Labels))
	for lang := range e.Labels {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return e.Labels[langs[0]], ReasonFallback
}

// ExtractDescription returns the English description, or "" with ReasonMissing.
func ExtractDescription(e Entity) (string, Reason) {
	if desc, ok := e.Descriptions[English]; ok {
		return desc, ReasonOK
	}
	return "", ReasonMissing
}

// ExtractTime returns mainsnak.datavalue.value.time of the first claim for
// property. An absent property or a claim whose snaktype is not "value" is
// ReasonMissing; any other failure to reach the time string is
// ReasonMalformed. Both yield "".
func ExtractTime(claims ClaimMap, property string) (string, Reason) {
	raw, ok := claims[property]
	if !ok {
		return "", ReasonMissing
	}
	snak, ok := firstSnak(raw)
	if !ok {
		return "", ReasonMalformed
	}
	switch snak.SnakType {
	case SnakValue:
	case "":
		return "", ReasonMalformed
	default:
		return "", ReasonMissing
	}
	if snak.DataValue == nil {
		return "", ReasonMalformed
	}
	var v struct {
		Time *string `json:"time"`
	}
	if err := json.Unmarshal(snak.DataValue.Value, &v); err != nil || v.Time == nil {
		return "", ReasonMalformed
	}
	return *v.Time, ReasonOK
}
