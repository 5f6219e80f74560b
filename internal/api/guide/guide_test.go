package guide

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

func TestGuide_Tips(t *testing.T) {
	g := New()

	t.Run("korean locale", func(t *testing.T) {
		tips := g.Tips("ko_KR", "Seoul")
		assert.Contains(t, tips.Packing, "편한 신발")
		assert.Equal(t, "1330", tips.EmergencyContacts["tourist_hotline"])
	})

	t.Run("unknown locale falls back to english", func(t *testing.T) {
		tips := g.Tips("xx_YY", "Nowhere")
		assert.NotEmpty(t, tips.Etiquette)
		assert.NotEmpty(t, tips.Packing)
		assert.NotEmpty(t, tips.Safety)
		assert.Equal(t, map[string]string{"emergency": "112"}, tips.EmergencyContacts)
	})

	t.Run("returned lists are copies", func(t *testing.T) {
		a := g.Tips("en_US", "Paris, France")
		a.Packing[0] = "changed"
		a.EmergencyContacts["police"] = "0"
		b := g.Tips("en_US", "Paris, France")
		assert.Equal(t, "Comfortable shoes", b.Packing[0])
		assert.Equal(t, "17", b.EmergencyContacts["police"])
	})
}

func TestLanguage(t *testing.T) {
	assert.Equal(t, "ko", Language("ko_KR"))
	assert.Equal(t, "en", Language("en-GB"))
	assert.Equal(t, "en", Language(""))
}

func TestMerge(t *testing.T) {
	base := types.Tips{Packing: []string{"Umbrella"}, EmergencyContacts: map[string]string{"emergency": "112"}}
	extra := types.Tips{
		Packing:           []string{"umbrella", "Adapter", " "},
		Safety:            []string{"Keep copies of your passport"},
		EmergencyContacts: map[string]string{"emergency": "999", "embassy": "+33 1"},
	}
	got := Merge(base, extra)
	assert.Equal(t, []string{"Umbrella", "Adapter"}, got.Packing)
	assert.Equal(t, []string{"Keep copies of your passport"}, got.Safety)
	assert.Equal(t, "112", got.EmergencyContacts["emergency"])
	assert.Equal(t, "+33 1", got.EmergencyContacts["embassy"])

	var many []string
	for i := 0; i < 20; i++ {
		many = append(many, string(rune('a'+i)))
	}
	assert.Len(t, Merge(types.Tips{}, types.Tips{Etiquette: many}).Etiquette, MaxTipsPerList)
}
