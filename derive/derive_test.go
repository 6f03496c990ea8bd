package derive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/idldoc/annotate"
	"go.jacobcolvin.com/idldoc/derive"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		comment string
		want    derive.Metadata
	}{
		"all tokens": {
			comment: "maxInclusive=500 minInclusive=0 units=meters",
			want:    derive.Metadata{Max: "500", Min: "0", Units: "meters"},
		},
		"any order": {
			comment: "units=meters minInclusive=0 maxInclusive=500",
			want:    derive.Metadata{Max: "500", Min: "0", Units: "meters"},
		},
		"multi word units stop at next key": {
			comment: "minInclusive=0 units=square meters otherElement=angel",
			want:    derive.Metadata{Min: "0", Units: "square meters"},
		},
		"exponent and negative numbers": {
			comment: "maxInclusive=1e25 minInclusive=-20000000",
			want:    derive.Metadata{Max: "1e25", Min: "-20000000"},
		},
		"decimal numbers": {
			comment: "minInclusive=-0.5 maxInclusive=.75",
			want:    derive.Metadata{Max: ".75", Min: "-0.5"},
		},
		"units with slash": {
			comment: "speed over ground, units=m/s",
			want:    derive.Metadata{Units: "m/s"},
		},
		"key must start a word": {
			comment: "xmaxInclusive=5 aunits=m",
			want:    derive.Metadata{},
		},
		"non numeric bound ignored": {
			comment: "maxInclusive=large",
			want:    derive.Metadata{},
		},
		"empty units": {
			comment: "units=",
			want:    derive.Metadata{},
		},
		"prose only": {
			comment: "the identifier of the vehicle",
			want:    derive.Metadata{},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, derive.Parse(tc.comment))
		})
	}
}

func TestDerive(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		comment string
		want    string
		opts    []derive.Option
	}{
		"range and unit": {
			comment: "maxInclusive=500 minInclusive=0 units=meters",
			want:    `@range(min=0, max=500) @unit("meters")`,
		},
		"max only": {
			comment: "maxInclusive=500 units=meters",
			want:    `@max(500) @unit("meters")`,
		},
		"min only": {
			comment: "minInclusive=0 units=meters",
			want:    `@min(0) @unit("meters")`,
		},
		"unit only": {
			comment: "units=square meters otherElement=angel",
			want:    `@unit("square meters")`,
		},
		"range without unit": {
			comment: "maxInclusive=1e25 minInclusive=-20000000",
			want:    "@range(min=-20000000, max=1e25)",
		},
		"not applicable unit": {
			comment: "minInclusive=0 units=N/A",
			want:    "@min(0)",
		},
		"none unit": {
			comment: "units=None",
			want:    "",
		},
		"quoted unit escaped": {
			comment: `units=in "inches"`,
			want:    `@unit("in \"inches\"")`,
		},
		"no tokens": {
			comment: "plain documentation",
			want:    "",
		},
		"custom sentinels": {
			comment: "units=N/A",
			opts:    []derive.Option{derive.WithUnitSentinels("unknown")},
			want:    `@unit("N/A")`,
		},
		"custom sentinel matched": {
			comment: "maxInclusive=1 units=unknown",
			opts:    []derive.Option{derive.WithUnitSentinels("unknown")},
			want:    "@max(1)",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			d := derive.New(tc.opts...)
			assert.Equal(t, tc.want, d.Derive(tc.comment))
		})
	}
}

func TestApply(t *testing.T) {
	t.Parallel()

	directive := func(indent, text string) annotate.Line {
		d := annotate.Directive{Indent: indent, Marker: "@doc", Text: text}

		return annotate.Line{Text: d.String(), Directive: &d, Comment: text}
	}

	lines := []annotate.Line{
		{Text: "struct S {"},
		directive("    ", "maxInclusive=500 minInclusive=0 units=meters"),
		{Text: "    double d;"},
		directive("    ", "the identifier"),
		{Text: "    long id;"},
		{Text: "    // units=meters"},
		{Text: "};"},
	}

	got := derive.New().Apply(lines)

	assert.Equal(t, []string{
		"struct S {",
		`    @doc("maxInclusive=500 minInclusive=0 units=meters")`,
		`    @range(min=0, max=500) @unit("meters")`,
		"    double d;",
		`    @doc("the identifier")`,
		"    long id;",
		"    // units=meters",
		"};",
	}, got)
}
