package handlers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimalAndInteger(t *testing.T) {
	var v struct {
		Price Decimal  `json:"price"`
		Rooms Integer  `json:"rooms"`
		Size  *Decimal `json:"size"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"price":"350000.5","rooms":" 2 ","size":null}`), &v))
	assert.Equal(t, Decimal(350000.5), v.Price)
	assert.Equal(t, Integer(2), v.Rooms)
	assert.Nil(t, v.Size)

	require.NoError(t, json.Unmarshal([]byte(`{"price":12,"rooms":3}`), &v))
	assert.Equal(t, Decimal(12), v.Price)
	assert.Equal(t, Integer(3), v.Rooms)

	assert.Error(t, json.Unmarshal([]byte(`{"rooms":"2.5"}`), &v))
	assert.Error(t, json.Unmarshal([]byte(`{"price":""}`), &v))
	assert.Error(t, json.Unmarshal([]byte(`{"price":true}`), &v))
}
