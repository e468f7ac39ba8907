package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type patchDTO struct {
	Name    *string  `json:"name"`
	Price   *float64 `json:"price"`
	Skipped *string  `json:"-"`
	NoTag   *string
}

func TestUpdatesFromPtrDTO(t *testing.T) {
	name := "Mirror"
	skipped := "nope"
	dto := patchDTO{Name: &name, Skipped: &skipped}

	updates := UpdatesFromPtrDTO(&dto, nil)

	assert.Equal(t, map[string]any{"name": "Mirror"}, updates)
}

func TestUpdatesFromPtrDTORenames(t *testing.T) {
	price := 12.5
	dto := patchDTO{Price: &price}

	updates := UpdatesFromPtrDTO(&dto, map[string]string{"price": "unit_price"})

	assert.Equal(t, map[string]any{"unit_price": 12.5}, updates)
}

func TestUpdatesFromPtrDTONonPointerInput(t *testing.T) {
	assert.Empty(t, UpdatesFromPtrDTO(patchDTO{}, nil))
	assert.Empty(t, UpdatesFromPtrDTO(nil, nil))
}

func TestNormalizePtrDTO(t *testing.T) {
	name := "  Mirror  "
	price := 12.555
	dto := patchDTO{Name: &name, Price: &price}

	NormalizePtrDTO(&dto)

	assert.Equal(t, "Mirror", *dto.Name)
	assert.Equal(t, 12.56, *dto.Price)
	assert.Nil(t, dto.Skipped)
}

type createDTO struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func TestNormalizeDTO(t *testing.T) {
	dto := createDTO{Name: " Glass shelf ", Price: 9.999}

	NormalizeDTO(&dto)

	assert.Equal(t, "Glass shelf", dto.Name)
	assert.Equal(t, 10.0, dto.Price)
}

func TestParseIntDefault(t *testing.T) {
	assert.Equal(t, 42, ParseIntDefault(" 42 ", 7))
	assert.Equal(t, 7, ParseIntDefault("nope", 7))
	assert.Equal(t, 7, ParseIntDefault("-3", 7))
}
