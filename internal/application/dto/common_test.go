package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soportek/almacen-api/internal/application/dto"
)

func TestPageRequest_Normalize(t *testing.T) {
	cases := []struct {
		name          string
		in            dto.PageRequest
		expectedPage  int
		expectedLimit int
	}{
		{"valores por defecto", dto.PageRequest{}, 1, 20},
		{"página negativa", dto.PageRequest{Page: -3, Limit: 10}, 1, 10},
		{"límite cero", dto.PageRequest{Page: 2}, 2, 20},
		{"límite sobre el tope", dto.PageRequest{Page: 1, Limit: 500}, 1, 100},
		{"valores válidos intactos", dto.PageRequest{Page: 4, Limit: 50}, 4, 50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.Normalize()
			assert.Equal(t, tc.expectedPage, tc.in.Page)
			assert.Equal(t, tc.expectedLimit, tc.in.Limit)
		})
	}
}

func TestPageRequest_Offset(t *testing.T) {
	assert.Equal(t, 0, dto.PageRequest{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 20, dto.PageRequest{Page: 2, Limit: 20}.Offset())
	assert.Equal(t, 90, dto.PageRequest{Page: 10, Limit: 10}.Offset())
}

func TestNewPageMeta_RedondeaHaciaArriba(t *testing.T) {
	meta := dto.NewPageMeta(21, 1, 10)
	assert.Equal(t, 21, meta.Total)
	assert.Equal(t, 3, meta.TotalPages)

	assert.Equal(t, 0, dto.NewPageMeta(0, 1, 10).TotalPages)
	assert.Equal(t, 1, dto.NewPageMeta(10, 1, 10).TotalPages)
}
