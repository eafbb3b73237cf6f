package attio

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustValues(t *testing.T, s string) Values {
	t.Helper()
	var v Values
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestExtractNoValue(t *testing.T) {
	v := mustValues(t, `{
		"empty": [],
		"nulled": null,
		"scalar": "oops",
		"nullentry": [null],
		"novalue": [{"attribute_type": "text"}],
		"nooption": [{"option": null}],
		"badoption": [{"option": "flat"}]
	}`)

	tests := []struct {
		key    string
		mode   Mode
		reason Reason
	}{
		{"absent", Plain, ReasonMissing},
		{"empty", Plain, ReasonEmpty},
		{"nulled", Plain, ReasonEmpty},
		{"scalar", Plain, ReasonMalformed},
		{"nullentry", Plain, ReasonNull},
		{"novalue", Plain, ReasonNull},
		{"novalue", Domain, ReasonNull},
		{"nooption", Option, ReasonNull},
		{"nooption", Status, ReasonNull},
		{"badoption", Option, ReasonMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.key+"/"+string(tt.mode), func(t *testing.T) {
			got, reason := v.Extract(tt.key, tt.mode)
			assert.Nil(t, got)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestExtractModes(t *testing.T) {
	v := mustValues(t, `{
		"name": [{"value": "Acme"}, {"value": "Ignored"}],
		"stage": [{"option": {"id": "o1", "title": "Seed"}}],
		"fast_track_status_6": [{"status": {"title": "In progress"}}],
		"domains": [{"domain": "acme.com", "root_domain": "acme.com"}]
	}`)

	got, reason := v.Extract("name", Plain)
	assert.Equal(t, ReasonOK, reason)
	assert.Equal(t, "Acme", got)

	got, _ = v.Extract("stage", Option)
	assert.Equal(t, "Seed", got)

	got, _ = v.Extract("fast_track_status_6", Status)
	assert.Equal(t, "In progress", got)

	got, _ = v.Extract("domains", Domain)
	assert.Equal(t, "acme.com", got)
}

func TestExtractIgnoresLaterEntries(t *testing.T) {
	v := mustValues(t, `{
		"name": [{"value": "Acme"}, "junk"],
		"stage": [{"option": {"title": "Seed"}}, 3, null],
		"first_bad": ["junk", {"value": "Acme"}]
	}`)

	got, reason := v.Extract("name", Plain)
	assert.Equal(t, ReasonOK, reason)
	assert.Equal(t, "Acme", got)

	got, reason = v.Extract("stage", Option)
	assert.Equal(t, ReasonOK, reason)
	assert.Equal(t, "Seed", got)

	got, reason = v.Extract("first_bad", Plain)
	assert.Nil(t, got)
	assert.Equal(t, ReasonMalformed, reason)
}

func TestOptionTitlesSkipsUndecodableEntries(t *testing.T) {
	v := mustValues(t, `{
		"business_model_4": [{"option": {"title": "SaaS"}}, 3, "junk", {"option": {"title": "B2B"}}],
		"business_type": [3, "junk"]
	}`)

	titles, reason := v.OptionTitles("business_model_4")
	assert.Equal(t, ReasonOK, reason)
	assert.Equal(t, []string{"SaaS", "B2B"}, titles)

	titles, reason = v.OptionTitles("business_type")
	assert.Nil(t, titles)
	assert.Equal(t, ReasonEmpty, reason)
}

func TestIntRejectsFractionsAndOverflow(t *testing.T) {
	v := mustValues(t, `{
		"fraction": [{"value": 12.7}],
		"fraction_text": [{"value": "3.5"}],
		"huge": [{"value": 1e20}],
		"huge_int": [{"value": 100000000000000000000}],
		"tiny": [{"value": -1e19}],
		"max": [{"value": 9223372036854775807}],
		"whole_exp": [{"value": 2.5e3}]
	}`)

	for _, key := range []string{"fraction", "fraction_text", "huge", "huge_int", "tiny"} {
		n, reason := v.Int(key)
		assert.Nil(t, n, key)
		assert.Equal(t, ReasonWrongType, reason, key)
	}

	n, reason := v.Int("max")
	require.Equal(t, ReasonOK, reason)
	assert.Equal(t, int64(9223372036854775807), *n)

	n, reason = v.Int("whole_exp")
	require.Equal(t, ReasonOK, reason)
	assert.Equal(t, int64(2500), *n)
}

func TestOptionTitles(t *testing.T) {
	v := mustValues(t, `{
		"business_model_4": [
			{"option": {"title": "B2B"}},
			{"option": null},
			{"value": "stray"},
			{"option": {"title": "SaaS"}}
		],
		"business_type": [{"option": null}],
		"constitution_location_8": []
	}`)

	titles, reason := v.OptionTitles("business_model_4")
	assert.Equal(t, ReasonOK, reason)
	assert.Equal(t, []string{"B2B", "SaaS"}, titles)

	titles, reason = v.OptionTitles("business_type")
	assert.Nil(t, titles)
	assert.Equal(t, ReasonEmpty, reason)

	titles, reason = v.OptionTitles("constitution_location_8")
	assert.Nil(t, titles)
	assert.Equal(t, ReasonEmpty, reason)

	titles, reason = v.OptionTitles("missing")
	assert.Nil(t, titles)
	assert.Equal(t, ReasonMissing, reason)
}

func TestTypedAccessors(t *testing.T) {
	v := mustValues(t, `{
		"round_size": [{"value": 1500000}],
		"current_valuation": [{"value": "20000000"}],
		"fractional": [{"value": 12.0}],
		"potential_program": [{"value": true}],
		"deadline": [{"value": "2024-03-01"}],
		"last_modified": [{"value": "2024-03-01T10:30:00.000000000Z"}],
		"notes": [{"value": 42}],
		"bad_date": [{"value": "soon"}]
	}`)

	n, reason := v.Int("round_size")
	require.Equal(t, ReasonOK, reason)
	assert.Equal(t, int64(1500000), *n)

	n, _ = v.Int("current_valuation")
	assert.Equal(t, int64(20000000), *n)

	n, _ = v.Int("fractional")
	assert.Equal(t, int64(12), *n)

	b, reason := v.Bool("potential_program")
	require.Equal(t, ReasonOK, reason)
	assert.True(t, *b)

	ts, reason := v.Time("deadline")
	require.Equal(t, ReasonOK, reason)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *ts)

	ts, _ = v.Time("last_modified")
	assert.Equal(t, time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC), *ts)

	ts, reason = v.Time("bad_date")
	assert.Nil(t, ts)
	assert.Equal(t, ReasonWrongType, reason)

	s, reason := v.String("notes", Plain)
	require.Equal(t, ReasonOK, reason)
	assert.Equal(t, "42", *s)

	b, reason = v.Bool("round_size")
	assert.Nil(t, b)
	assert.Equal(t, ReasonWrongType, reason)
}

func TestJSONEmptiness(t *testing.T) {
	v := mustValues(t, `{
		"obj": [{"value": {"team": 4, "market": "big"}}],
		"emptyobj": [{"value": {}}],
		"emptyarr": [{"value": []}],
		"blank": [{"value": "   "}]
	}`)

	raw, reason := v.JSON("obj")
	require.Equal(t, ReasonOK, reason)
	assert.JSONEq(t, `{"team": 4, "market": "big"}`, string(raw))

	for _, key := range []string{"emptyobj", "emptyarr", "blank"} {
		raw, reason := v.JSON(key)
		assert.Nil(t, raw, key)
		assert.Equal(t, ReasonEmpty, reason, key)
	}
}

func TestReasonString(t *testing.T) {
	assert.Equal(t, "ok", ReasonOK.String())
	assert.Equal(t, "wrong_type", ReasonWrongType.String())
	assert.Equal(t, "unknown", Reason(99).String())
}
