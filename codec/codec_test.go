package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name    string    `json:"name"`
	Points  []float64 `json:"points"`
	Members []uint32  `json:"members"`
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		c, ok := ByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, c.Name())
	}
	_, ok := ByName("msgpack")
	assert.False(t, ok)
}

func TestCodecs_Compatible(t *testing.T) {
	in := payload{Name: "left", Points: []float64{0, 0.1, 1e-300, -2.5}, Members: []uint32{0, 3, 7}}
	for _, enc := range []Codec{JSON{}, GoJSON{}} {
		for _, dec := range []Codec{JSON{}, GoJSON{}} {
			t.Run(enc.Name()+"->"+dec.Name(), func(t *testing.T) {
				var out payload
				require.NoError(t, dec.Unmarshal(MustMarshal(enc, in), &out))
				assert.Equal(t, in, out)
			})
		}
	}
}

func BenchmarkCodec_Marshal(b *testing.B) {
	in := payload{Name: "bench", Points: make([]float64, 20000), Members: make([]uint32, 10000)}
	for i := range in.Points {
		in.Points[i] = float64(i) * 0.125
	}
	for _, c := range []Codec{JSON{}, GoJSON{}} {
		b.Run(c.Name(), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := c.Marshal(in); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
