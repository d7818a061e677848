package movement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sujit-maker/move-sub001/internal/domain/entity"
	"github.com/sujit-maker/move-sub001/internal/domain/movement"
)

func TestAllowedNext_TablaCompleta(t *testing.T) {
	cases := []struct {
		current entity.Status
		want    []entity.Status
	}{
		{entity.StatusAllotted, []entity.Status{entity.StatusEmptyPickedUp}},
		{entity.StatusEmptyPickedUp, []entity.Status{entity.StatusLadenGateIn, entity.StatusDamaged, entity.StatusCancelled}},
		{entity.StatusLadenGateIn, []entity.Status{entity.StatusSOB}},
		{entity.StatusSOB, []entity.Status{entity.StatusGateOut}},
		{entity.StatusGateOut, []entity.Status{entity.StatusEmptyReturned, entity.StatusDamaged}},
		{entity.StatusEmptyReturned, []entity.Status{entity.StatusAvailable, entity.StatusUnavailable}},
		{entity.StatusAvailable, []entity.Status{entity.StatusUnavailable}},
		{entity.StatusUnavailable, []entity.Status{entity.StatusAvailable}},
		{entity.StatusDamaged, []entity.Status{entity.StatusReturnedToDepot}},
		{entity.StatusCancelled, []entity.Status{entity.StatusReturnedToDepot}},
		{entity.StatusReturnedToDepot, []entity.Status{entity.StatusUnavailable, entity.StatusAvailable}},
	}
	for _, tc := range cases {
		t.Run(string(tc.current), func(t *testing.T) {
			assert.ElementsMatch(t, tc.want, movement.AllowedNext(tc.current))
		})
	}
	assert.Len(t, cases, len(movement.Statuses()), "todos los estados conocidos deben estar cubiertos")
}

func TestAllowedNext_EstadoDesconocido_Vacio(t *testing.T) {
	assert.Empty(t, movement.AllowedNext("IN TRANSIT"))
	assert.Empty(t, movement.AllowedNext(""))
	assert.False(t, movement.IsKnown("IN TRANSIT"))
}

func TestAllowedNext_DevuelveCopia(t *testing.T) {
	next := movement.AllowedNext(entity.StatusAllotted)
	next[0] = entity.StatusCancelled
	assert.Equal(t, []entity.Status{entity.StatusEmptyPickedUp}, movement.AllowedNext(entity.StatusAllotted),
		"modificar el resultado no debe alterar la tabla")
}

func TestCanTransition(t *testing.T) {
	assert.True(t, movement.CanTransition(entity.StatusSOB, entity.StatusGateOut))
	assert.True(t, movement.CanTransition(entity.StatusGateOut, entity.StatusDamaged))
	assert.False(t, movement.CanTransition(entity.StatusAllotted, entity.StatusSOB))
	assert.False(t, movement.CanTransition(entity.StatusAvailable, entity.StatusAvailable))
	assert.False(t, movement.CanTransition("DESCONOCIDO", entity.StatusAvailable))
}
