package export

import (
	"bytes"
	"io"
	"testing"

	"github.com/funvibe/funqy/internal/evaluator"
	"github.com/funvibe/funqy/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eval(t *testing.T, src string) evaluator.Value {
	t.Helper()
	prog, err := parser.ParseSource(`data Bool = F | T
let had = fn { F => sup(F, T), T => sup(F, phf(T)) }
`+src, "export.fqy")
	require.NoError(t, err)
	e := evaluator.New()
	e.Out = io.Discard
	val, _, err := e.EvalProgram(prog, evaluator.NewEnvironment())
	require.NoError(t, err)
	return val
}

func TestCapture(t *testing.T) {
	s := Capture(eval(t, "had(T)"))
	assert.Equal(t, "SUPERPOSITION", s.Kind)
	assert.Equal(t, "{F: 0.7071, T: -0.7071}", s.Repr)
	require.Len(t, s.Branches, 2)
	assert.Equal(t, "T", s.Branches[1].Value)
	assert.InDelta(t, 0.5, s.Branches[1].Probability, 1e-9)
	assert.InDelta(t, -0.7071, s.Branches[1].Real, 1e-4)

	plain := Capture(eval(t, "(F, T)"))
	assert.Equal(t, "TUPLE", plain.Kind)
	require.Len(t, plain.Branches, 1)
	assert.Equal(t, 1.0, plain.Branches[0].Probability)
}

func TestCaptureNormalizes(t *testing.T) {
	s := Capture(evaluator.Scale(evaluator.Unit, evaluator.Polar(2, 0)))
	assert.Equal(t, "()", s.Repr)
	require.Len(t, s.Branches, 1)
	assert.InDelta(t, 1.0, s.Branches[0].Probability, 1e-9)
	assert.InDelta(t, 1.0, s.Branches[0].Magnitude, 1e-9)

	weighted := Capture(eval(t, "sup(F, T, @[0, 2] T)"))
	total := 0.0
	for _, b := range weighted.Branches {
		total += b.Probability
	}
	assert.InDelta(t, 1.0, total, 1e-9)

	empty := Capture(evaluator.NullState)
	assert.Equal(t, "{}", empty.Repr)
	assert.Empty(t, empty.Branches)
}

func TestEncodeRoundTrip(t *testing.T) {
	snaps := []Snapshot{Capture(eval(t, "had(F)")), Capture(eval(t, "T"))}
	for _, format := range []Format{FormatYAML, FormatMsgpack} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, snaps, format))
			decoded, err := Decode(&buf, format)
			require.NoError(t, err)
			assert.Equal(t, snaps, decoded)
		})
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, snaps, FormatText))
	assert.Equal(t, "{F: 0.7071, T: 0.7071}\nT\n", buf.String())

	assert.Error(t, Encode(&buf, snaps, Format("xml")))
}

func TestMarshalSnapshot(t *testing.T) {
	s := Capture(eval(t, "had(F)"))
	data, err := MarshalSnapshot(s)
	require.NoError(t, err)
	back, err := UnmarshalSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, s, back)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("out.yaml"))
	assert.Equal(t, FormatYAML, FormatFromPath("out.YML"))
	assert.Equal(t, FormatMsgpack, FormatFromPath("out.msgpack"))
	assert.Equal(t, FormatText, FormatFromPath("out.txt"))
}

func TestTree(t *testing.T) {
	out := Tree(eval(t, "(had(F), F)"))
	assert.Contains(t, out, "{(F, F): 0.7071, (T, F): 0.7071}")
	assert.Contains(t, out, "(F, F)  amp=0.7071  p=0.5000")
	assert.Contains(t, out, "(T, F)  amp=0.7071  p=0.5000")

	plain := Tree(eval(t, "(F, (T, F))"))
	assert.Contains(t, plain, "(T, F)")
}
