package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sujit-maker/move-sub001/internal/application/dto"
)

func TestPageRequest_Normalize(t *testing.T) {
	tests := []struct {
		name       string
		in         dto.PageRequest
		wantLimit  int
		wantOffset int
	}{
		{"vacío usa default", dto.PageRequest{}, dto.DefaultPageLimit, 0},
		{"negativos", dto.PageRequest{Limit: -5, Offset: -1}, dto.DefaultPageLimit, 0},
		{"sobre el máximo", dto.PageRequest{Limit: 5000, Offset: 40}, dto.MaxPageLimit, 40},
		{"dentro del rango", dto.PageRequest{Limit: 35, Offset: 10}, 35, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			p.Normalize()
			assert.Equal(t, tt.wantLimit, p.Limit)
			assert.Equal(t, tt.wantOffset, p.Offset)
		})
	}
}
