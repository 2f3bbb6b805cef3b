package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atokurn/financex-sub001/internal/domain"
	"github.com/atokurn/financex-sub001/internal/domain/entity"
)

func TestItemRefFromIDs(t *testing.T) {
	ref, err := entity.ItemRefFromIDs("m1", "")
	require.NoError(t, err)
	assert.Equal(t, entity.MaterialRef("m1"), ref)

	ref, err = entity.ItemRefFromIDs("", "p1")
	require.NoError(t, err)
	assert.Equal(t, entity.ProductRef("p1"), ref)

	_, err = entity.ItemRefFromIDs("", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin referencia")

	_, err = entity.ItemRefFromIDs("m1", "p1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "material y producto a la vez")
}

func TestItemRef_IsValid(t *testing.T) {
	assert.True(t, entity.MaterialRef("m1").IsValid())
	assert.True(t, entity.ProductRef("p1").IsValid())
	assert.False(t, entity.ItemRef{}.IsValid(), "el valor cero no es válido")
	assert.False(t, entity.ItemRef{Kind: entity.ItemKindMaterial}.IsValid(), "sin ID")
	assert.False(t, entity.ItemRef{Kind: "warehouse", ID: "w1"}.IsValid(), "clase desconocida")
}
