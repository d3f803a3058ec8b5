// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Document is a Special:EntityData response: entity objects keyed by id.
// Entities stay raw so one bad entity cannot fail the whole document.
type Document struct {
	Entities map[string]json.RawMessage `json:"entities"`
}

// ParseDocument decodes data into a Document.
func ParseDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("parsing document: %w", err)
	}
	return doc, nil
}

// Keys returns the entity keys in sorted order.
func (d Document) Keys() []string {
	keys := make([]string, 0, len(d.Entities))
	for k := range d.Entities {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Entity is the part of a Wikidata entity the extractor reads. Every field
// decodes leniently: a field with an unexpected shape decodes as empty.
type Entity struct {
	ID           json.RawMessage
	Labels       LangMap
	Descriptions LangMap
	Claims       ClaimMap
}

// ParseEntity decodes one entity object. Only a value that is not a JSON
// object at all is an error.
func ParseEntity(raw json.RawMessage) (Entity, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Entity{}, fmt.Errorf("parsing entity: %w", err)
	}
	return Entity{
		ID:           fields["id"],
		Labels:       parseLangMap(fields["labels"]),
		Descriptions: parseLangMap(fields["descriptions"]),
		Claims:       parseClaimMap(fields["claims"]),
	}, nil
}

// LangMap maps a language code to a label or description text.
type LangMap map[string]string

// parseLangMap accepts {"en":{"value":"..."}}. Wikidata writes an empty map
// as [], which decodes as empty, as do entries without a string value.
func parseLangMap(raw json.RawMessage) LangMap {
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return LangMap{}
	}

	m := make(LangMap, len(entries))
	for lang, e := range entries {
		var term struct {
			Value *string `json:"value"`
		}
		if err := json.Unmarshal(e, &term); err != nil || term.Value == nil {
			continue
		}
		m[lang] = *term.Value
	}
	return m
}

// ClaimMap maps a property id to its raw claim sequence.
type ClaimMap map[string]json.RawMessage

func parseClaimMap(raw json.RawMessage) ClaimMap {
	var m ClaimMap
	if err := json.Unmarshal(raw, &m); err != nil || m == nil {
		return ClaimMap{}
	}
	return m
}

// Properties returns the property ids in numeric order (P27 before P106).
// Ids without a numeric suffix sort after numbered ones, by name.
func (c ClaimMap) Properties() []string {
	props := make([]string, 0, len(c))
	for p := range c {
		props = append(props, p)
	}
	sort.Slice(props, func(i, j int) bool {
		ni, oki := propertyNumber(props[i])
		nj, okj := propertyNumber(props[j])
		switch {
		case oki && okj && ni != nj:
			return ni < nj
		case oki != okj:
			return oki
		default:
			return props[i] < props[j]
		}
	})
	return props
}

func propertyNumber(p string) (int, bool) {
	if !strings.HasPrefix(p, "P") {
		return 0, false
	}
	n, err := strconv.Atoi(p[1:])
	return n, err == nil
}
