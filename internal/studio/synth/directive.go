package synth

import (
	"fmt"
	"strings"

	"rawistudio/internal/domain/voice"
)

// Per-dialect pronunciation instructions sent along with every request.
// Providers with prompt-style steering consume these verbatim.
var dialectLocks = map[string]string{
	"egyptian":  "STRICT EGYPTIAN PHONETIC LOCK: natural Egyptian phonetics, soft 'g' for (ج), casual rhythm.",
	"saudi":     "STRICT SAUDI PHONETIC LOCK: authentic Saudi prosody, Najdi/Hejazi inflections.",
	"khaleeji":  "STRICT KHALEEJI PHONETIC LOCK: Gulf White phonetics, traditional elongation.",
	"levantine": "STRICT LEVANTINE PHONETIC LOCK: Syrian/Levantine melodic prosody.",
	"sudanese":  "STRICT SUDANESE PHONETIC LOCK: Sudanese qaf and jeem, calm warm pacing.",
	"yemeni":    "STRICT YEMENI PHONETIC LOCK: neutral urban Yemeni tone, no Gulf elongation.",
	"lebanese":  "STRICT LEBANESE PHONETIC LOCK: soft urban Beirut intonation, conversational pacing.",
	"fusha":     "STRICT MSA LOCK: formal academic Arabic with correct case endings.",
}

var purposeStyles = map[string]string{
	"إعلان":  "DELIVERY STYLE: Advertisement - energetic, engaging, confident pacing.",
	"قصصي":   "DELIVERY STYLE: Narrative - warm, flowing, expressive pacing.",
	"توعوي":  "DELIVERY STYLE: Awareness - calm, sincere, reassuring delivery.",
	"إخباري": "DELIVERY STYLE: Informational - neutral, professional, concise.",
	"تعليمي": "DELIVERY STYLE: Educational - clear, steady, explanatory tone.",
}

// BuildDirective assembles the studio directive for one request. The text
// itself is not embedded; providers receive it separately.
func BuildDirective(profile voice.Profile, controls Controls, dialectID, note string) string {
	lock, ok := dialectLocks[dialectID]
	if !ok {
		lock = dialectLocks["fusha"]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "IDENTITY: %s (%s)\n", profile.Name, profile.Description)
	fmt.Fprintf(&b, "FINGERPRINT: %s\n", voice.Fingerprint(profile.Name))
	fmt.Fprintf(&b, "DIALECT: %s\n%s\n", dialectID, lock)
	if style, ok := purposeStyles[controls.Purpose]; ok {
		b.WriteString(style)
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "CONTROLS: Speed %s, Pitch %s, Emotion %s.\n", controls.Speed, controls.Pitch, controls.Emotion)
	if note != "" {
		b.WriteString(note)
	}
	return b.String()
}

// speakingRate maps the studio speed scale onto the provider's numeric rate.
func speakingRate(speed string) float64 {
	switch speed {
	case "بطيئة":
		return 0.85
	case "سريعة":
		return 1.2
	default:
		return 1.0
	}
}

// pitchShift maps the studio pitch scale onto semitone offsets.
func pitchShift(pitch string) float64 {
	switch pitch {
	case "منخفضة":
		return -2.0
	case "مرتفعة":
		return 2.0
	default:
		return 0
	}
}
