package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestSetDefaults(t *testing.T) {
	viper.Reset()
	SetDefaults()

	if got := viper.GetString("synth.provider"); got != "auto" {
		t.Fatalf("expected auto provider, got %q", got)
	}
	if got := viper.GetInt("synth.sample_rate"); got != 24000 {
		t.Fatalf("expected sample rate 24000, got %d", got)
	}
	if got := viper.GetString("synth.language"); got != "ar-XA" {
		t.Fatalf("expected ar-XA, got %q", got)
	}
	if got := viper.GetString("studio.dialect"); got != "fusha" {
		t.Fatalf("expected fusha default dialect, got %q", got)
	}
	if got := viper.GetString("controls.speed"); got != "متوسطة" {
		t.Fatalf("expected neutral speed, got %q", got)
	}
}

func TestConfigFileOverridesDefaults(t *testing.T) {
	viper.Reset()
	SetDefaults()
	viper.Set("synth.provider", "mock")

	if got := viper.GetString("synth.provider"); got != "mock" {
		t.Fatalf("expected override to win, got %q", got)
	}
	if got := viper.GetInt("synth.sample_rate"); got != 24000 {
		t.Fatalf("untouched default lost: %d", got)
	}
}
