package synchronizer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldsync/internal/dom"
	"fieldsync/internal/textpattern"
)

const testPage = `<!DOCTYPE html>
<html><body>
<form id="f">
  <label for="amount">Amount</label>
  <input id="amount" value="12">
  <span id="total">0</span>
  <textarea id="notes"></textarea>
</form>
</body></html>`

func parseTestPage(t *testing.T) *dom.Document {
	t.Helper()

	doc, err := dom.ParseString(testPage)
	require.NoError(t, err)

	return doc
}

// capture records every value written through SetValue.
type capture struct {
	values []string
}

func (c *capture) SetValue(v string) error {
	c.values = append(c.values, v)
	return nil
}

func (c *capture) last() string {
	if len(c.values) == 0 {
		return ""
	}

	return c.values[len(c.values)-1]
}

func TestProcess_PrefixSuffixIntoSetter(t *testing.T) {
	var got []string

	s := New(
		WithField(map[string]any{"value": 42}),
		WithApplyTo(Target{
			Updatable: Handle(SetterFunc(func(v string) error {
				got = append(got, v)
				return nil
			})),
			Prefix: "$",
			Suffix: " USD",
		}),
	)

	require.NoError(t, s.Process())
	assert.Equal(t, []string{"$42 USD"}, got)
}

func TestProcess_PrefixSuffixConcatenation(t *testing.T) {
	tests := []struct {
		name  string
		field any
		want  string
	}{
		{name: "int", field: map[string]any{"value": 7}, want: "<7>"},
		{name: "string", field: map[string]any{"value": "x"}, want: "<x>"},
		{name: "nil value", field: map[string]any{"value": nil}, want: "<>"},
		{name: "no value", field: struct{}{}, want: "<>"},
		{name: "float", field: map[string]any{"value": 1.5}, want: "<1.5>"},
		{name: "bool", field: map[string]any{"value": true}, want: "<true>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &capture{}
			s := New(
				WithField(tt.field),
				WithApplyTo(Target{Updatable: Handle(c), Prefix: "<", Suffix: ">"}),
			)

			require.NoError(t, s.Process())
			assert.Equal(t, tt.want, c.last())
		})
	}
}

func TestProcess_TemplateWithVariables(t *testing.T) {
	c := &capture{}
	s := New(
		WithApplyTo(Target{Updatable: Handle(c), Text: "Total: {{x}}"}),
		WithVariables(Variables{"x": map[string]any{"value": 7}}),
	)

	require.NoError(t, s.Process())
	assert.Equal(t, "Total: 7", c.last())
}

func TestProcess_CallableValueBeforeOperator(t *testing.T) {
	c := &capture{}
	s := New(
		WithApplyTo(Target{Updatable: Handle(c), Text: "{{x}}"}),
		WithVariables(Variables{"x": map[string]any{
			"value":    func() any { return 5 },
			"operator": "+",
		}}),
	)

	require.NoError(t, s.Process())
	assert.Equal(t, "5", c.last())
}

func TestProcess_TemplateThisAndLocalOverride(t *testing.T) {
	c := &capture{}
	s := New(
		WithField(map[string]any{"value": 3}),
		WithVariables(Variables{"unit": "kg", "label": "Weight"}),
		WithApplyTo(Target{
			Updatable: Handle(c),
			Text:      "{{ label }}: {{this}} {{unit}}",
			Variables: Variables{"unit": "lb"},
		}),
	)

	require.NoError(t, s.Process())
	assert.Equal(t, "Weight: 3 lb", c.last())
	assert.Equal(t, "kg", s.Variables()["unit"], "global variables are not modified")
}

func TestProcess_TemplateLiteralVariables(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "string", value: "a<b>", want: "a<b>"},
		{name: "int", value: 12, want: "12"},
		{name: "float", value: 0.25, want: "0.25"},
		{name: "bool", value: false, want: "false"},
		{name: "nil", value: nil, want: ""},
		{name: "func", value: func() any { return "called" }, want: "called"},
		{name: "variable", value: ValueOf(5), want: "5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &capture{}
			s := New(
				WithVariables(Variables{"v": tt.value}),
				WithApplyTo(Target{Updatable: Handle(c), Text: "[{{v}}]"}),
			)

			require.NoError(t, s.Process())
			assert.Equal(t, "["+tt.want+"]", c.last())
		})
	}
}

func TestProcess_Idempotent(t *testing.T) {
	doc := parseTestPage(t)
	s := New(
		WithDocument(doc),
		WithField(map[string]any{"value": "a & b"}),
		WithApplyTo(Target{Updatable: ByID("total"), Text: "<{{this}}>"}),
	)

	require.NoError(t, s.Process())
	first := doc.ElementByID("total").InnerHTML()

	require.NoError(t, s.Process())
	assert.Equal(t, first, doc.ElementByID("total").InnerHTML())
	assert.Equal(t, "&lt;a &amp; b&gt;", first)
}

func TestProcess_ElementHTMLModes(t *testing.T) {
	tests := []struct {
		name   string
		target Target
		want   string
	}{
		{
			name:   "template html",
			target: Target{Updatable: ByID("total"), Text: "<b>{{this}}</b>", HTML: true},
			want:   "<b>bold</b>",
		},
		{
			name:   "template escaped",
			target: Target{Updatable: ByID("total"), Text: "<b>{{this}}</b>"},
			want:   "&lt;b&gt;bold&lt;/b&gt;",
		},
		{
			name:   "concat html escapes value",
			target: Target{Updatable: ByID("total"), Prefix: "<i>", Suffix: "</i>", HTML: true},
			want:   "<i>bold</i>",
		},
		{
			name:   "concat escaped",
			target: Target{Updatable: ByID("total"), Prefix: "<i>", Suffix: "</i>"},
			want:   "&lt;i&gt;bold&lt;/i&gt;",
		},
		{
			name:   "markdown",
			target: Target{Updatable: ByID("total"), Text: "**{{this}}**", Markdown: true},
			want:   "<p><strong>bold</strong></p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseTestPage(t)
			s := New(
				WithDocument(doc),
				WithField(map[string]any{"value": "bold"}),
				WithApplyTo(tt.target),
			)

			require.NoError(t, s.Process())
			assert.Equal(t, tt.want, doc.ElementByID("total").InnerHTML())
		})
	}
}

func TestProcess_ConcatHTMLValue(t *testing.T) {
	doc := parseTestPage(t)
	field := map[string]any{"value": "<u>x</u>"}

	s := New(
		WithDocument(doc),
		WithField(field),
		WithApplyTo(Target{Updatable: ByID("total"), Prefix: "<i>", Suffix: "</i>", HTML: true}),
	)

	require.NoError(t, s.Process())
	assert.Equal(t, "<i>&lt;u&gt;x&lt;/u&gt;</i>", doc.ElementByID("total").InnerHTML())

	s.SetTargets([]Target{{Updatable: ByID("total"), Prefix: "<i>", Suffix: "</i>", HTML: true, HTMLValue: true}})

	require.NoError(t, s.Process())
	assert.Equal(t, "<i><u>x</u></i>", doc.ElementByID("total").InnerHTML())
}

func TestProcess_ValueSlot(t *testing.T) {
	doc := parseTestPage(t)
	s := New(
		WithDocument(doc),
		WithField(doc.ElementByID("amount")),
		WithApplyTo(
			Target{Updatable: ByID("notes"), Text: "<{{this}}>", HTML: true},
			Target{Updatable: Ref("[[next-sibling]]"), Prefix: "=", Suffix: "!"},
		),
	)

	require.NoError(t, s.Process())

	v, ok := doc.ElementByID("notes").FormValue()
	require.True(t, ok)
	assert.Equal(t, "<12>", v)
	assert.Equal(t, "=12!", doc.ElementByID("total").TextContent())
}

func TestProcess_IDResolvedPerCall(t *testing.T) {
	doc := parseTestPage(t)
	s := New(
		WithDocument(doc),
		WithField(map[string]any{"value": 1}),
		WithApplyTo(Target{Updatable: ByID("late"), Prefix: "#"}),
	)

	err := s.Process()
	require.ErrorIs(t, err, ErrNotFound)

	late := doc.CreateElement("span")
	late.SetAttr("id", "late")
	doc.Body().AppendChild(late)

	require.NoError(t, s.Process())
	assert.Equal(t, "#1", late.TextContent())

	late.RemoveAttr("id")
	require.ErrorIs(t, s.Process(), ErrNotFound)
}

func TestProcess_ActionTargets(t *testing.T) {
	var calls []string

	c := &capture{}
	s := New(
		WithField(map[string]any{"value": "v"}),
		WithApplyTo(
			Target{Action: func() error {
				calls = append(calls, "first")
				return nil
			}},
			Target{Updatable: Handle(c), Prefix: "p"},
			Target{Action: func() error {
				calls = append(calls, "last")
				return nil
			}},
		),
	)

	require.NoError(t, s.Process())
	assert.Equal(t, []string{"first", "last"}, calls)
	assert.Equal(t, "pv", c.last())
}

func TestProcess_NoTemplateNoWrite(t *testing.T) {
	c := &capture{}
	s := New(
		WithField(map[string]any{"value": 1}),
		WithApplyTo(Target{Updatable: Handle(c)}, Target{}),
	)

	require.NoError(t, s.Process())
	assert.Empty(t, c.values)
}

func TestProcess_AbortsOnFirstError(t *testing.T) {
	c := &capture{}
	boom := errors.New("boom")

	s := New(
		WithField(map[string]any{"value": 1}),
		WithApplyTo(
			Target{Updatable: Handle(c), Prefix: "a"},
			Target{Action: func() error { return boom }},
			Target{Updatable: Handle(c), Prefix: "b"},
		),
	)

	err := s.Process()
	require.ErrorIs(t, err, boom)

	var te *TargetError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 1, te.Index)
	assert.Equal(t, []string{"a1"}, c.values)
}

func TestProcess_Errors(t *testing.T) {
	tests := []struct {
		name    string
		field   any
		target  Target
		vars    Variables
		wantErr error
	}{
		{
			name:    "computed suffix",
			target:  Target{Updatable: Handle(&capture{}), Suffix: "x", Expression: "a+b"},
			wantErr: ErrNotYetSupported,
		},
		{
			name:    "unknown variable",
			target:  Target{Updatable: Handle(&capture{}), Text: "{{missing}}"},
			wantErr: ErrNotFound,
		},
		{
			name:    "expression variable",
			target:  Target{Updatable: Handle(&capture{}), Text: "{{sum}}"},
			vars:    Variables{"sum": map[string]any{"expression": "a+b"}},
			wantErr: ErrNotYetSupported,
		},
		{
			name:    "operator variable",
			target:  Target{Updatable: Handle(&capture{}), Text: "{{op}}"},
			vars:    Variables{"op": map[string]any{"operator": "+", "value": 1}},
			wantErr: ErrNotYetSupported,
		},
		{
			name:    "list updatable",
			target:  Target{Updatable: List(ByID("a")), Text: "x"},
			wantErr: ErrNotYetSupported,
		},
		{
			name:    "string selector",
			target:  Target{Updatable: Updatable{Selector: "#total"}, Text: "x"},
			wantErr: ErrNotYetSupported,
		},
		{
			name:    "field updatable",
			target:  Target{Updatable: Updatable{Field: "other"}, Text: "x"},
			wantErr: ErrNotYetSupported,
		},
		{
			name:    "relative token on plain field",
			field:   map[string]any{"value": 1},
			target:  Target{Updatable: Ref("[[next]]"), Text: "x"},
			wantErr: ErrUnsupportedOperation,
		},
		{
			name:    "handle without setter",
			target:  Target{Updatable: Handle(42), Text: "x"},
			wantErr: ErrUnsupportedOperation,
		},
		{
			name:    "zero updatable",
			target:  Target{Text: "x"},
			wantErr: ErrInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(WithField(tt.field), WithVariables(tt.vars), WithApplyTo(tt.target))

			err := s.Process()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestProcess_UnknownVariableSuggestion(t *testing.T) {
	s := New(
		WithVariables(Variables{"currency": "USD"}),
		WithApplyTo(Target{Updatable: Handle(&capture{}), Text: "{{curency}}"}),
	)

	err := s.Process()
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), `did you mean "currency"`)
}

func TestProcess_ReferenceVariables(t *testing.T) {
	c := &capture{}
	s := New(
		WithField(map[string]any{"value": 9}),
		WithApplyTo(Target{Updatable: Handle(c), Text: "{{a}}/{{b}}/{{self}}"}),
	)

	require.NoError(t, s.SetVariables([]any{
		"a", map[string]any{"ref": "b"},
		"b", 4,
		"self", map[string]any{"reference": "this"},
	}, false))

	require.NoError(t, s.Process())
	assert.Equal(t, "4/4/9", c.last())

	require.NoError(t, s.SetVariables(Variables{
		"x": ReferenceTo("y"),
		"y": ReferenceTo("x"),
	}, false))
	s.SetTargets([]Target{{Updatable: Handle(c), Text: "{{x}}"}})

	require.ErrorIs(t, s.Process(), ErrInvalidArgument)
}

func TestProcess_CustomDelimiters(t *testing.T) {
	c := &capture{}
	s := New(
		WithDelimiters(textpattern.Delimiters{Open: "((", Close: "))"}),
		WithVariables(Variables{"x": 1}),
		WithApplyTo(Target{Updatable: Handle(c), Text: "((x)) {{x}}"}),
	)

	require.NoError(t, s.Process())
	assert.Equal(t, "1 {{x}}", c.last())

	s.SetDelimiters(textpattern.Delimiters{Open: "(("})
	require.ErrorIs(t, s.Process(), ErrNotYetSupported)
}

func TestProcessField_OverridesField(t *testing.T) {
	c := &capture{}
	s := New(
		WithField(map[string]any{"value": "configured"}),
		WithApplyTo(Target{Updatable: Handle(c), Prefix: ":"}),
	)

	require.NoError(t, s.ProcessField(map[string]any{"value": "given"}))
	assert.Equal(t, ":given", c.last())

	require.NoError(t, s.ProcessField(nil))
	assert.Equal(t, ":configured", c.last())
}

func TestSetApplyTo(t *testing.T) {
	a := Target{Updatable: ByID("a"), Text: "x"}
	b := Target{Updatable: ByID("b"), Text: "y"}

	s := New()

	err := s.SetApplyTo([]Target{a, b})
	require.ErrorIs(t, err, ErrInvalidArgument)

	err = s.SetApplyTo([]any{a, b})
	require.ErrorIs(t, err, ErrInvalidArgument)

	require.NoError(t, s.SetApplyTo(a))

	got := s.ApplyTo()
	require.Len(t, got, 1)
	assert.Equal(t, "x", got[0].Text)
	assert.Equal(t, ByID("a"), got[0].Updatable)

	require.NoError(t, s.SetApplyTo("[[label]]"))
	assert.Equal(t, Ref("[[label]]"), s.ApplyTo()[0].Updatable)

	require.NoError(t, s.SetApplyTo(func() {}))
	assert.NotNil(t, s.ApplyTo()[0].Action)

	require.ErrorIs(t, s.SetApplyTo(nil), ErrInvalidArgument)
	require.ErrorIs(t, s.SetApplyTo((*Target)(nil)), ErrInvalidArgument)
}

func TestApplyTo_ReturnsCopy(t *testing.T) {
	s := New(WithApplyTo(Target{Text: "a"}))

	got := s.ApplyTo()
	got[0].Text = "changed"

	assert.Equal(t, "a", s.ApplyTo()[0].Text)
}

func TestSetVariables(t *testing.T) {
	tests := []struct {
		name      string
		input     any
		normalize bool
		want      Variables
		wantErr   error
	}{
		{
			name:  "map stored as is",
			input: map[string]any{"a": 1},
			want:  Variables{"a": 1},
		},
		{
			name:      "map normalized",
			input:     Variables{"a": 1},
			normalize: true,
			want:      Variables{"a": &Variable{Name: "a", Kind: VariableValue, Value: 1}},
		},
		{
			name:  "pairs",
			input: []any{"a", "x", "b", map[string]any{"expression": "1+1"}},
			want: Variables{
				"a": &Variable{Name: "a", Kind: VariableValue, Value: "x"},
				"b": &Variable{Name: "b", Kind: VariableExpression, Expression: "1+1"},
			},
		},
		{
			name:  "named descriptors",
			input: []any{map[string]any{"name": "a", "value": 2}, &Variable{Name: "b", Kind: VariableReference, Reference: "a"}},
			want: Variables{
				"a": &Variable{Name: "a", Kind: VariableValue, Value: 2},
				"b": &Variable{Name: "b", Kind: VariableReference, Reference: "a"},
			},
		},
		{
			name:    "descriptor without name",
			input:   []any{map[string]any{"value": 2}},
			wantErr: ErrInvalidArgument,
		},
		{
			name:    "unsupported shape",
			input:   42,
			wantErr: ErrInvalidArgument,
		},
		{
			name:  "nil",
			input: nil,
			want:  Variables{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()

			err := s.SetVariables(tt.input, tt.normalize)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Variables())
		})
	}
}

type valueAndGetter struct{}

func (valueAndGetter) Value() any    { return "value" }
func (valueAndGetter) GetValue() any { return "get" }

func TestSetFieldValue(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    any
		wantErr error
	}{
		{name: "func of field", input: func(f any) any { return f }, want: "field"},
		{name: "typed func", input: FieldValueFunc(func(any) any { return 1 }), want: 1},
		{name: "func without args", input: func() any { return 2 }, want: 2},
		{name: "bound value method", input: valueAndGetter{}, want: "value"},
		{name: "bound getter", input: getterOnly{v: "g"}, want: "g"},
		{name: "string", input: "nope", wantErr: ErrInvalidArgument},
		{name: "nil", input: nil, wantErr: ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()

			err := s.SetFieldValue(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, s.FieldValue()("field"))
		})
	}
}

func TestSetFieldValue_UsedByProcess(t *testing.T) {
	c := &capture{}
	s := New(WithField("raw"), WithApplyTo(Target{Updatable: Handle(c), Prefix: ">"}))

	require.NoError(t, s.SetFieldValue(func(f any) any { return f.(string) + "!" }))
	require.NoError(t, s.Process())
	assert.Equal(t, ">raw!", c.last())
}

func TestSetters_DoNotAffectRunningPass(t *testing.T) {
	c := &capture{}

	var s *Synchronizer

	s = New(
		WithField(map[string]any{"value": 1}),
		WithApplyTo(
			Target{Action: func() error {
				s.SetTargets(nil)
				s.SetField(map[string]any{"value": 2})

				return nil
			}},
			Target{Updatable: Handle(c), Prefix: "#"},
		),
	)

	require.NoError(t, s.Process())
	assert.Equal(t, "#1", c.last())
	assert.Empty(t, s.ApplyTo())
	assert.Equal(t, map[string]any{"value": 2}, s.Field())
}
