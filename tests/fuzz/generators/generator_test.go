package generators

import (
	"testing"

	"github.com/funvibe/funqy/internal/parser"
	"github.com/stretchr/testify/require"
)

func TestGeneratedProgramsParse(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		src := New(seed).GenerateProgram()
		_, err := parser.ParseSource(src, "gen.fqy")
		require.NoError(t, err, "seed %d:\n%s", seed, src)
	}
}

func TestByteSourceIsDeterministic(t *testing.T) {
	data := []byte{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5, 8, 9, 7, 9}
	require.Equal(t, NewFromData(data).GenerateProgram(), NewFromData(data).GenerateProgram())

	empty := NewFromData(nil).GenerateProgram()
	_, err := parser.ParseSource(empty, "gen.fqy")
	require.NoError(t, err)
}
