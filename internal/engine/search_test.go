package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchConnectors(t *testing.T) {
	all := mixedStore(t).Connectors()

	assert.Len(t, SearchConnectors(all, ""), len(all))
	assert.Len(t, SearchConnectors(all, "   "), len(all))
	assert.Equal(t, []string{"C-CU-16", "C-CU-1.5"}, partNumbers(SearchConnectors(all, "c-cu")))
	assert.Equal(t, []string{"L-CUAL-16-8", "L-AL-25-10"}, partNumbers(SearchConnectors(all, "AL")),
		"matches part number or material")
	assert.Equal(t, []string{"F-CU-1.5"}, partNumbers(SearchConnectors(all, "tinned")))
	assert.Empty(t, SearchConnectors(all, "zzz"))
}

func TestSearchTools(t *testing.T) {
	all := mixedStore(t).Tools()

	assert.Len(t, SearchTools(all, ""), len(all))
	assert.Equal(t, []string{"T-K22", "T-K13"}, skus(SearchTools(all, "hand")))
	assert.Equal(t, []string{"T-EK"}, skus(SearchTools(all, "t-ek")))
	assert.Empty(t, SearchTools(all, "K4"), "series text is not searched")
}
