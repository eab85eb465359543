package config

import "github.com/spf13/viper"

// SetDefaults seeds every knob the studio reads through viper. Values in
// $HOME/.rawistudio/rawistudio.yaml or ./rawistudio.yaml win over these.
func SetDefaults() {
	viper.SetDefault("synth.provider", "auto") // auto-select best provider
	viper.SetDefault("synth.sample_rate", 24000)
	viper.SetDefault("synth.language", "ar-XA")
	viper.SetDefault("synth.cache_path", "")

	viper.SetDefault("studio.dialect", "fusha")
	viper.SetDefault("studio.out_dir", "out")

	viper.SetDefault("controls.speed", "متوسطة")
	viper.SetDefault("controls.pitch", "متوسطة")
	viper.SetDefault("controls.emotion", "متوسط")
}
