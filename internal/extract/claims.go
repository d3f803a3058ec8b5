// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Snak types.
const (
	SnakValue     = "value"
	SnakSomeValue = "somevalue"
	SnakNoValue   = "novalue"
)

// Datavalue types with a dedicated extraction rule.
const (
	TypeEntityID        = "wikibase-entityid"
	TypeTime            = "time"
	TypeQuantity        = "quantity"
	TypeMonolingualText = "monolingualtext"
	TypeGlobeCoordinate = "globecoordinate"
)

// Kind says which table a claim value belongs to.
type Kind int

const (
	// KindNone is a claim that emits nothing (somevalue or novalue).
	KindNone Kind = iota
	// KindEdge is an entity reference, written to the edge table.
	KindEdge
	// KindDescription is a literal, written to the description table.
	KindDescription
)

// ClaimValue is the result of reading the first claim of a property.
type ClaimValue struct {
	Kind   Kind
	Value  string
	Type   string
	Reason Reason

	// Detail describes a ReasonMalformed result.
	Detail string
}

type snak struct {
	SnakType  string     `json:"snaktype"`
	DataValue *dataValue `json:"datavalue"`
}

type dataValue struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// firstSnak decodes the mainsnak of the first claim in a claim sequence.
func firstSnak(raw json.RawMessage) (snak, bool) {
	var claims []json.RawMessage
	if err := json.Unmarshal(raw, &claims); err != nil || len(claims) == 0 {
		return snak{}, false
	}
	var c struct {
		MainSnak *snak `json:"mainsnak"`
	}
	if err := json.Unmarshal(claims[0], &c); err != nil || c.MainSnak == nil {
		return snak{}, false
	}
	return *c.MainSnak, true
}

// ExtractClaim reads the first claim of a property's claim sequence.
// Only a "value" snak carries a value: somevalue, novalue and any other
// snaktype yield KindNone, and a mainsnak without a snaktype is malformed. Entity references yield
// KindEdge; every other type yields KindDescription. A claim whose shape
// does not allow a value to be read yields KindDescription with an empty
// value and ReasonMalformed.
func ExtractClaim(raw json.RawMessage) ClaimValue {
	var claims []json.RawMessage
	if err := json.Unmarshal(raw, &claims); err != nil {
		return malformed("", "claims are not a list")
	}
	if len(claims) == 0 {
		return malformed("", "empty claim list")
	}

	var c struct {
		MainSnak *snak `json:"mainsnak"`
	}
	if err := json.Unmarshal(claims[0], &c); err != nil {
		return malformed("", "claim is not an object")
	}
	if c.MainSnak == nil {
		return malformed("", "claim has no mainsnak")
	}

	switch c.MainSnak.SnakType {
	case SnakValue:
	case "":
		return malformed("", "mainsnak has no snaktype")
	default:
		return ClaimValue{Kind: KindNone, Reason: ReasonOK}
	}

	dv := c.MainSnak.DataValue
	if dv == nil {
		return malformed("", "mainsnak has no datavalue")
	}
	if len(dv.Value) == 0 {
		return malformed(dv.Type, "datavalue has no value")
	}

	switch dv.Type {
	case TypeEntityID:
		id, ok := entityIDValue(dv.Value)
		if !ok {
			return malformed(dv.Type, "entity reference without id")
		}
		return ClaimValue{Kind: KindEdge, Value: id, Type: dv.Type, Reason: ReasonOK}
	case TypeTime:
		return stringField(dv, "time")
	case TypeQuantity:
		return stringField(dv, "amount")
	case TypeMonolingualText:
		return stringField(dv, "text")
	case TypeGlobeCoordinate:
		var v struct {
			Latitude *json.Number `json:"latitude"`
		}
		if err := json.Unmarshal(dv.Value, &v); err != nil || v.Latitude == nil {
			return malformed(dv.Type, "missing latitude")
		}
		return ClaimValue{Kind: KindDescription, Value: v.Latitude.String(), Type: dv.Type, Reason: ReasonOK}
	default:
		return ClaimValue{Kind: KindDescription, Value: rawValue(dv.Value), Type: dv.Type, Reason: ReasonUnknownType}
	}
}

func malformed(typ, detail string) ClaimValue {
	return ClaimValue{Kind: KindDescription, Type: typ, Reason: ReasonMalformed, Detail: detail}
}

// stringField reads a required string member of a datavalue's value object.
func stringField(dv *dataValue, name string) ClaimValue {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(dv.Value, &fields); err != nil {
		return malformed(dv.Type, "value is not an object")
	}
	raw, ok := fields[name]
	if !ok {
		return malformed(dv.Type, fmt.Sprintf("missing %s", name))
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return malformed(dv.Type, fmt.Sprintf("%s is not a string", name))
	}
	return ClaimValue{Kind: KindDescription, Value: s, Type: dv.Type, Reason: ReasonOK}
}

// entityIDValue returns value.id, or builds it from numeric-id and
// entity-type as older serializations carry only those.
func entityIDValue(raw json.RawMessage) (string, bool) {
	var v struct {
		ID         string `json:"id"`
		EntityType string `json:"entity-type"`
		NumericID  *int64 `json:"numeric-id"`
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", false
	}
	if v.ID != "" {
		return v.ID, true
	}
	if v.NumericID == nil {
		return "", false
	}
	switch v.EntityType {
	case "item":
		return "Q" + strconv.FormatInt(*v.NumericID, 10), true
	case "property":
		return "P" + strconv.FormatInt(*v.NumericID, 10), true
	}
	return "", false
}

// rawValue renders a value of an unrecognized type: strings unquoted,
// anything else as compact JSON.
func rawValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
