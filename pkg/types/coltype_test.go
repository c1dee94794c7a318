package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValueInteger(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		want    int64
		wantErr bool
	}{
		{name: "simple", raw: "42", want: 42},
		{name: "negative", raw: "-17", want: -17},
		{name: "zero", raw: "0", want: 0},
		{name: "native int", raw: 7, want: 7},
		{name: "native int64", raw: int64(-9), want: -9},
		{name: "whole float", raw: float64(12), want: 12},
		{name: "max int64", raw: "9223372036854775807", want: math.MaxInt64},
		{name: "min int64", raw: "-9223372036854775808", want: math.MinInt64},
		{name: "empty string", raw: "", wantErr: true},
		{name: "letters", raw: "12a", wantErr: true},
		{name: "leading plus", raw: "+5", wantErr: true},
		{name: "decimal point", raw: "3.5", wantErr: true},
		{name: "overflow", raw: "9223372036854775808", wantErr: true},
		{name: "fractional float", raw: 1.5, wantErr: true},
		{name: "bool", raw: true, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseValue(TypeInteger, tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, TypeInteger, v.Type())
			assert.Equal(t, tt.want, v.Int())
		})
	}
}

func TestParseValueReal(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		want    float64
		wantErr bool
	}{
		{name: "simple", raw: "3.25", want: 3.25},
		{name: "negative", raw: "-0.5", want: -0.5},
		{name: "integer text", raw: "10", want: 10},
		{name: "exponent", raw: "1e3", want: 1000},
		{name: "native float", raw: 2.75, want: 2.75},
		{name: "native int", raw: 4, want: 4},
		{name: "empty string", raw: "", wantErr: true},
		{name: "letters", raw: "abc", wantErr: true},
		{name: "nan token", raw: "NaN", wantErr: true},
		{name: "inf token", raw: "Inf", wantErr: true},
		{name: "overflow to inf", raw: "1e999", wantErr: true},
		{name: "native nan", raw: math.NaN(), wantErr: true},
		{name: "native inf", raw: math.Inf(1), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseValue(TypeReal, tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, TypeReal, v.Type())
			assert.Equal(t, tt.want, v.Real())
		})
	}
}

func TestParseValueChar(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		wantErr bool
	}{
		{name: "ascii", raw: "x"},
		{name: "unicode", raw: "й"},
		{name: "empty", raw: "", wantErr: true},
		{name: "two characters", raw: "ab", wantErr: true},
		{name: "not a string", raw: 7, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseValue(TypeChar, tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.raw, v.Text())
		})
	}
}

func TestParseValueStringAndHTML(t *testing.T) {
	v, err := ParseValue(TypeString, "")
	require.NoError(t, err, "empty string is a valid String")
	assert.Equal(t, "", v.Text())

	v, err = ParseValue(TypeHTMLFile, "<html><body>hi</body></html>")
	require.NoError(t, err)
	assert.Equal(t, "<html><body>hi</body></html>", v.Text())

	_, err = ParseValue(TypeHTMLFile, "")
	assert.Error(t, err, "empty HtmlFile is rejected")
}

func TestParseValueInterval(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		want    Interval
		wantErr bool
	}{
		{name: "struct form", raw: Interval{Low: "a", High: "b"}, want: Interval{Low: "a", High: "b"}},
		{name: "map form", raw: map[string]any{"low": "a", "high": "b"}, want: Interval{Low: "a", High: "b"}},
		{name: "string map form", raw: map[string]string{"low": "x", "high": "x"}, want: Interval{Low: "x", High: "x"}},
		{name: "canonical text", raw: `{"low":"m","high":"z"}`, want: Interval{Low: "m", High: "z"}},
		{name: "equal bounds", raw: Interval{Low: "k", High: "k"}, want: Interval{Low: "k", High: "k"}},
		{name: "low exceeds high", raw: Interval{Low: "c", High: "a"}, wantErr: true},
		{name: "missing low", raw: map[string]any{"high": "b"}, wantErr: true},
		{name: "missing high", raw: map[string]any{"low": "a"}, wantErr: true},
		{name: "non-string side", raw: map[string]any{"low": 1, "high": "b"}, wantErr: true},
		{name: "not an interval", raw: 3, wantErr: true},
		{name: "bad canonical text", raw: "a..b", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseValue(TypeStringInterval, tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Interval())
		})
	}
}

func TestParseValuePassesThroughValues(t *testing.T) {
	v := IntegerValue(5)

	got, err := ParseValue(TypeInteger, v)
	require.NoError(t, err)
	assert.Equal(t, v, got)

	_, err = ParseValue(TypeString, v)
	assert.Error(t, err, "tag mismatch is rejected")
}

func TestCanonicalTextRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		typ  ColumnType
		raw  any
	}{
		{name: "integer", typ: TypeInteger, raw: "42"},
		{name: "negative integer", typ: TypeInteger, raw: "-17"},
		{name: "real", typ: TypeReal, raw: "3.25"},
		{name: "real precision", typ: TypeReal, raw: "0.1"},
		{name: "real exponent", typ: TypeReal, raw: "1e-7"},
		{name: "char", typ: TypeChar, raw: "q"},
		{name: "string", typ: TypeString, raw: "hello world"},
		{name: "empty string", typ: TypeString, raw: ""},
		{name: "html", typ: TypeHTMLFile, raw: "<p>doc</p>"},
		{name: "interval", typ: TypeStringInterval, raw: Interval{Low: "a", High: "b"}},
		{name: "interval with quotes", typ: TypeStringInterval, raw: Interval{Low: `a"x`, High: `b"y`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseValue(tt.typ, tt.raw)
			require.NoError(t, err)

			back, err := FromCanonicalText(tt.typ, v.CanonicalText())
			require.NoError(t, err)
			assert.Equal(t, v, back, "canonical text must round-trip to an equal value")
		})
	}
}

func TestCompareOrdering(t *testing.T) {
	mustParse := func(typ ColumnType, raw any) Value {
		v, err := ParseValue(typ, raw)
		require.NoError(t, err)
		return v
	}

	tests := []struct {
		name string
		a, b Value
		want int
	}{
		{name: "integer less", a: mustParse(TypeInteger, "2"), b: mustParse(TypeInteger, "10"), want: -1},
		{name: "integer equal", a: mustParse(TypeInteger, "3"), b: mustParse(TypeInteger, "3"), want: 0},
		{name: "real greater", a: mustParse(TypeReal, "2.5"), b: mustParse(TypeReal, "-1"), want: 1},
		{name: "char order", a: mustParse(TypeChar, "a"), b: mustParse(TypeChar, "b"), want: -1},
		{name: "string order", a: mustParse(TypeString, "abc"), b: mustParse(TypeString, "abd"), want: -1},
		{name: "html orders as text", a: mustParse(TypeHTMLFile, "<a>"), b: mustParse(TypeHTMLFile, "<b>"), want: -1},
		{
			name: "interval by low",
			a:    mustParse(TypeStringInterval, Interval{Low: "a", High: "z"}),
			b:    mustParse(TypeStringInterval, Interval{Low: "b", High: "c"}),
			want: -1,
		},
		{
			name: "interval tie-broken by high",
			a:    mustParse(TypeStringInterval, Interval{Low: "a", High: "b"}),
			b:    mustParse(TypeStringInterval, Interval{Low: "a", High: "c"}),
			want: -1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.a.Compare(tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			back, err := tt.b.Compare(tt.a)
			require.NoError(t, err)
			assert.Equal(t, -tt.want, back, "comparison must be antisymmetric")
		})
	}
}

func TestCompareTypeMismatch(t *testing.T) {
	_, err := IntegerValue(1).Compare(StringValue("1"))
	assert.Error(t, err)
}

func TestIsValidType(t *testing.T) {
	for _, typ := range ColumnTypes() {
		assert.True(t, IsValidType(typ), typ)
	}
	assert.False(t, IsValidType("Boolean"))
	assert.False(t, IsValidType(""))
}
