package ambience

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPCMReader_OneShotEndsAtEOF(t *testing.T) {
	r := &pcmReader{data: []byte{1, 2, 3, 4}}

	buf := make([]byte, 8)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	_, err = r.Read(buf)
	assert.Equal(t, io.EOF, err)
}

func TestPCMReader_LoopWrapsSeamlessly(t *testing.T) {
	r := &pcmReader{data: []byte{1, 2, 3, 4}, loop: true}

	buf := make([]byte, 4)
	for i := 0; i < 5; i++ {
		n, err := r.Read(buf)
		require.NoError(t, err)
		assert.Equal(t, 4, n)
		assert.Equal(t, []byte{1, 2, 3, 4}, buf)
	}
}

func TestPCMReader_RewindRestartsFromZero(t *testing.T) {
	r := &pcmReader{data: []byte{1, 2, 3, 4}}

	buf := make([]byte, 4)
	_, err := r.Read(buf)
	require.NoError(t, err)

	r.rewind()
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []byte{1, 2, 3, 4}, buf)
}

func TestPCMReader_EmptyDataIsEOF(t *testing.T) {
	r := &pcmReader{loop: true}
	_, err := r.Read(make([]byte, 8))
	assert.Equal(t, io.EOF, err)
}

func TestGenSources_ProduceStereoF32Frames(t *testing.T) {
	for name, pcm := range map[string][]byte{
		"wind":  GenWindLoop(1),
		"chime": GenChime(),
		"swell": GenSwellPad(1),
	} {
		require.NotEmpty(t, pcm, name)
		// 8 bytes per stereo float32 frame.
		assert.Zero(t, len(pcm)%8, name)
	}
}
