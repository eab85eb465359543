package voice

import "testing"

func TestCatalogIsValid(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("catalog validation failed: %v", err)
	}
}

func TestEveryDialectHasProfiles(t *testing.T) {
	for _, d := range Dialects {
		pool := ForDialect(d.ID)
		if len(pool) == 0 {
			t.Fatalf("dialect %s has an empty pool", d.ID)
		}
		for _, p := range pool {
			if p.Dialect != d.ID {
				t.Fatalf("dialect %s pool contains foreign profile %s", d.ID, p.ID)
			}
		}
	}
}

func TestForDialectFallsBackToFullCatalog(t *testing.T) {
	pool := ForDialect("moroccan")
	if len(pool) != len(Catalog) {
		t.Fatalf("expected full catalog fallback, got %d profiles", len(pool))
	}
}

func TestLookups(t *testing.T) {
	p, ok := ByID("fus_rawi")
	if !ok || p.Name != "جواد" {
		t.Fatalf("ByID lookup failed: %+v ok=%v", p, ok)
	}
	p, ok = ByName("وردة")
	if !ok || p.ID != "fus_warda" {
		t.Fatalf("ByName lookup failed: %+v ok=%v", p, ok)
	}
	if _, ok := ByID("missing"); ok {
		t.Fatal("expected miss for unknown id")
	}
	if _, ok := ByName("مجهول"); ok {
		t.Fatal("expected miss for unknown name")
	}
}

func TestBaseVoiceMapping(t *testing.T) {
	cases := []struct {
		profile Profile
		want    string
	}{
		{Profile{Gender: Male, VoiceType: "عميق"}, "ar-XA-Wavenet-C"},
		{Profile{Gender: Male, VoiceType: "شاب"}, "ar-XA-Wavenet-B"},
		{Profile{Gender: Female, VoiceType: "دافئة"}, "ar-XA-Wavenet-D"},
		{Profile{Gender: Female, VoiceType: "ناضجة"}, "ar-XA-Wavenet-D"},
		{Profile{Gender: Female, VoiceType: "شابة"}, "ar-XA-Wavenet-A"},
	}
	for _, tc := range cases {
		if got := BaseVoiceFor(tc.profile); got != tc.want {
			t.Fatalf("%s/%s: expected %s, got %s", tc.profile.Gender, tc.profile.VoiceType, tc.want, got)
		}
	}
}

func TestFingerprintStableAndBounded(t *testing.T) {
	first := Fingerprint("جواد")
	second := Fingerprint("جواد")
	if first != second {
		t.Fatalf("fingerprint drifted: %s then %s", first, second)
	}
	if len(first) == 0 || len(first) > 8 {
		t.Fatalf("fingerprint length out of bounds: %q", first)
	}
	for _, r := range first {
		if r < '0' || r > '9' {
			t.Fatalf("fingerprint contains non-digit: %q", first)
		}
	}
	if Fingerprint("جواد") == Fingerprint("وردة") {
		t.Fatal("distinct names collided")
	}
}

func TestDialectTitle(t *testing.T) {
	if DialectTitle("egyptian") == "" {
		t.Fatal("expected a title for egyptian")
	}
	if DialectTitle("unknown") != Dialects[0].Title {
		t.Fatal("expected fallback to the default dialect title")
	}
}
