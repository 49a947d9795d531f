package handlers

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"github.com/Divy97/rajawadu/internal/models"
)

func TestSplitName(t *testing.T) {
	first, last := splitName("Asha Patel")
	require.Equal(t, "Asha", first)
	require.Equal(t, "Patel", last)

	first, last = splitName("Asha")
	require.Equal(t, "Asha", first)
	require.Empty(t, last)

	first, last = splitName("Asha Ben Patel")
	require.Equal(t, "Asha", first)
	require.Equal(t, "Ben Patel", last)

	first, last = splitName("")
	require.Empty(t, first)
	require.Empty(t, last)
}

func TestProductInfo(t *testing.T) {
	items := []*models.OrderItem{
		{Quantity: 2, Product: &models.Product{Name: "Paan Mukhwas"}},
		{Quantity: 1, Product: &models.Product{Name: "Saunf"}},
	}
	require.Equal(t, "Paan Mukhwas (2), Saunf (1)", productInfo(items))
}

func TestProductInfo_MissingProductFallsBack(t *testing.T) {
	items := []*models.OrderItem{{Quantity: 3}}
	require.Equal(t, "Product (3)", productInfo(items))
}

func TestProductInfo_CappedAt100Chars(t *testing.T) {
	items := []*models.OrderItem{
		{Quantity: 1, Product: &models.Product{Name: strings.Repeat("x", 200)}},
	}
	info := productInfo(items)
	require.Len(t, info, 100)
	require.True(t, strings.HasSuffix(info, "..."))
}

func TestProductInfo_MultiByteNamesStayValidUTF8(t *testing.T) {
	items := []*models.OrderItem{
		{Quantity: 1, Product: &models.Product{Name: strings.Repeat("मुखवास", 40)}},
	}
	info := productInfo(items)
	require.True(t, utf8.ValidString(info))
	require.Equal(t, 100, utf8.RuneCountInString(info))
	require.True(t, strings.HasSuffix(info, "..."))
}
