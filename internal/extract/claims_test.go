// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func claimList(dvType, value string) json.RawMessage {
	return json.RawMessage(`[{"mainsnak":{"snaktype":"value","datavalue":{"type":"` + dvType + `","value":` + value + `}}}]`)
}

func TestExtractClaim_Types(t *testing.T) {
	tests := []struct {
		name      string
		raw       json.RawMessage
		wantKind  Kind
		wantValue string
		want      Reason
	}{
		{"entity reference", claimList(TypeEntityID, `{"entity-type":"item","numeric-id":2,"id":"Q2"}`), KindEdge, "Q2", ReasonOK},
		{"entity reference numeric only", claimList(TypeEntityID, `{"entity-type":"item","numeric-id":42}`), KindEdge, "Q42", ReasonOK},
		{"property reference numeric only", claimList(TypeEntityID, `{"entity-type":"property","numeric-id":31}`), KindEdge, "P31", ReasonOK},
		{"time", claimList(TypeTime, `{"time":"+1879-03-14T00:00:00Z","precision":11}`), KindDescription, "+1879-03-14T00:00:00Z", ReasonOK},
		{"quantity", claimList(TypeQuantity, `{"amount":"+1.75","unit":"http://www.wikidata.org/entity/Q11573"}`), KindDescription, "+1.75", ReasonOK},
		{"monolingual text", claimList(TypeMonolingualText, `{"text":"Mens et Manus","language":"la"}`), KindDescription, "Mens et Manus", ReasonOK},
		{"globe coordinate", claimList(TypeGlobeCoordinate, `{"latitude":52.516666666667,"longitude":13.383333333333}`), KindDescription, "52.516666666667", ReasonOK},
		{"string passes through", claimList("string", `"0000 0001 2144 1970"`), KindDescription, "0000 0001 2144 1970", ReasonUnknownType},
		{"object passes through compacted", claimList("future-type", `{ "a" : 1 }`), KindDescription, `{"a":1}`, ReasonUnknownType},
		{"somevalue", json.RawMessage(`[{"mainsnak":{"snaktype":"somevalue"}}]`), KindNone, "", ReasonOK},
		{"novalue", json.RawMessage(`[{"mainsnak":{"snaktype":"novalue","property":"P40"}}]`), KindNone, "", ReasonOK},
		{"unrecognized snaktype with datavalue", json.RawMessage(`[{"mainsnak":{"snaktype":"bogus","datavalue":{"type":"wikibase-entityid","value":{"id":"Q2"}}}}]`), KindNone, "", ReasonOK},
		{"only the first claim counts", json.RawMessage(`[
			{"mainsnak":{"snaktype":"value","datavalue":{"type":"wikibase-entityid","value":{"id":"Q5"}}}},
			{"mainsnak":{"snaktype":"value","datavalue":{"type":"wikibase-entityid","value":{"id":"Q6"}}}}
		]`), KindEdge, "Q5", ReasonOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractClaim(tt.raw)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantValue, got.Value)
			assert.Equal(t, tt.want, got.Reason)
		})
	}
}

func TestExtractClaim_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty list", `[]`},
		{"not a list", `{"mainsnak":{}}`},
		{"claim not an object", `["Q2"]`},
		{"no mainsnak", `[{"rank":"normal"}]`},
		{"no snaktype", `[{"mainsnak":{"datavalue":{"type":"wikibase-entityid","value":{"id":"Q2"}}}}]`},
		{"empty snaktype", `[{"mainsnak":{"snaktype":"","datavalue":{"type":"time","value":{"time":"+1000"}}}}]`},
		{"no datavalue", `[{"mainsnak":{"snaktype":"value"}}]`},
		{"datavalue without value", `[{"mainsnak":{"snaktype":"value","datavalue":{"type":"time"}}}]`},
		{"entity without id", string(claimList(TypeEntityID, `{"entity-type":"lexeme"}`))},
		{"time without time", string(claimList(TypeTime, `{"precision":9}`))},
		{"time not a string", string(claimList(TypeTime, `{"time":1879}`))},
		{"quantity without amount", string(claimList(TypeQuantity, `{"unit":"1"}`))},
		{"text not an object", string(claimList(TypeMonolingualText, `"plain"`))},
		{"coordinate without latitude", string(claimList(TypeGlobeCoordinate, `{"longitude":1}`))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractClaim(json.RawMessage(tt.raw))
			assert.Equal(t, ReasonMalformed, got.Reason)
			assert.Equal(t, KindDescription, got.Kind, "malformed claims land on the description side")
			assert.Empty(t, got.Value)
			assert.NotEmpty(t, got.Detail)
		})
	}
}

func TestReasonString(t *testing.T) {
	assert.Equal(t, "ok", ReasonOK.String())
	assert.Equal(t, "missing", ReasonMissing.String())
	assert.Equal(t, "malformed", ReasonMalformed.String())
	assert.Equal(t, "fallback", ReasonFallback.String())
	assert.Equal(t, "unknown type", ReasonUnknownType.String())
}
