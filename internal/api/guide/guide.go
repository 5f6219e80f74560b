// Package guide provides static local tips and emergency contacts.
package guide

import (
	"strings"

	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

// MaxTipsPerList bounds every tips list.
const MaxTipsPerList = 10

type tipSet struct {
	etiquette []string
	packing   []string
	safety    []string
	customs   []string
}

var tipsByLanguage = map[string]tipSet{
	"en": {
		etiquette: []string{
			"Respect local restaurant reservation customs.",
			"Check dress codes before visiting religious sites.",
		},
		packing: []string{"Comfortable shoes", "Power bank", "Local SIM or eSIM"},
		safety: []string{
			"Watch out for pickpockets.",
			"Avoid quiet side streets late at night.",
		},
		customs: []string{"Greet staff when entering small shops."},
	},
	"ko": {
		etiquette: []string{
			"현지 식당의 예약 문화를 존중하세요.",
			"종교 시설 방문 시 복장 규정을 확인하세요.",
		},
		packing: []string{"편한 신발", "보조 배터리", "현지용 유심/ESIM"},
		safety: []string{
			"소매치기 주의",
			"늦은 밤 외진 골목 피하기",
		},
		customs: []string{"작은 상점에 들어갈 때 인사하세요."},
	},
}

const defaultEmergency = "112"

var emergencyContacts = map[string]map[string]string{
	"paris":    {"emergency": "112", "police": "17", "ambulance": "15", "fire": "18"},
	"london":   {"emergency": "999", "non_emergency_police": "101", "medical_advice": "111"},
	"rome":     {"emergency": "112", "police": "113", "ambulance": "118", "fire": "115"},
	"tokyo":    {"police": "110", "ambulance": "119", "fire": "119"},
	"seoul":    {"police": "112", "ambulance": "119", "fire": "119", "tourist_hotline": "1330"},
	"new york": {"emergency": "911", "non_emergency": "311"},
}

type Guide struct{}

func New() *Guide { return &Guide{} }

// Tips returns tips in the locale's language, English when unknown.
func (g *Guide) Tips(locale, destination string) types.Tips {
	set, ok := tipsByLanguage[language(locale)]
	if !ok {
		set = tipsByLanguage["en"]
	}
	return types.Tips{
		Etiquette:         clone(set.etiquette),
		Packing:           clone(set.packing),
		Safety:            clone(set.safety),
		LocalCustoms:      clone(set.customs),
		EmergencyContacts: Contacts(destination),
	}
}

// Contacts returns the emergency numbers for a destination, matching known
// cities as substrings so "Paris, France" resolves to Paris.
func Contacts(destination string) map[string]string {
	d := strings.ToLower(strings.TrimSpace(destination))
	for _, city := range []string{"paris", "london", "rome", "tokyo", "seoul", "new york"} {
		if strings.Contains(d, city) {
			out := make(map[string]string, len(emergencyContacts[city]))
			for k, v := range emergencyContacts[city] {
				out[k] = v
			}
			return out
		}
	}
	return map[string]string{"emergency": defaultEmergency}
}

// language reduces "ko_KR" or "en-US" to "ko" or "en".
func language(locale string) string {
	l := strings.ToLower(strings.TrimSpace(locale))
	if i := strings.IndexAny(l, "_-"); i >= 0 {
		l = l[:i]
	}
	return l
}

// Language is the two-letter language of a locale, "en" when empty.
func Language(locale string) string {
	if l := language(locale); l != "" {
		return l
	}
	return "en"
}

// Merge appends extra entries to base without duplicates, keeping at most
// MaxTipsPerList per list. base is not modified.
func Merge(base, extra types.Tips) types.Tips {
	out := types.Tips{
		Etiquette:    mergeList(base.Etiquette, extra.Etiquette),
		Packing:      mergeList(base.Packing, extra.Packing),
		Safety:       mergeList(base.Safety, extra.Safety),
		LocalCustoms: mergeList(base.LocalCustoms, extra.LocalCustoms),
	}
	if len(base.EmergencyContacts)+len(extra.EmergencyContacts) > 0 {
		out.EmergencyContacts = make(map[string]string)
		for k, v := range base.EmergencyContacts {
			out.EmergencyContacts[k] = v
		}
		for k, v := range extra.EmergencyContacts {
			if _, ok := out.EmergencyContacts[k]; !ok {
				out.EmergencyContacts[k] = v
			}
		}
	}
	return out
}

func mergeList(a, b []string) []string {
	out := make([]string, 0, min(len(a)+len(b), MaxTipsPerList))
	seen := make(map[string]bool)
	for _, s := range append(clone(a), b...) {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
		if len(out) == MaxTipsPerList {
			break
		}
	}
	return out
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}
