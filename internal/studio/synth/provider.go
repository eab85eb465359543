package synth

import (
	"context"
	"fmt"
	"os"

	"rawistudio/internal/domain/voice"
)

type ProviderType string

const (
	ProviderMock   ProviderType = "mock"
	ProviderGoogle ProviderType = "google"
	ProviderAuto   ProviderType = "auto" // pick the best available
)

func (p ProviderType) String() string { return string(p) }

// NewSynthesizer creates the configured provider. Auto selects Google when
// cloud credentials are present and falls back to the mock otherwise.
func NewSynthesizer(ctx context.Context, provider string) (Synthesizer, error) {
	if provider == ProviderAuto.String() {
		if hasGoogleCredentials() {
			provider = ProviderGoogle.String()
		} else {
			provider = ProviderMock.String()
		}
	}

	switch provider {
	case ProviderMock.String():
		return NewMockSynthesizer(), nil
	case ProviderGoogle.String():
		return NewGoogleSynthesizer(ctx)
	default:
		return nil, fmt.Errorf("unsupported synthesis provider: %s", provider)
	}
}

func hasGoogleCredentials() bool {
	_, ok := os.LookupEnv("GOOGLE_APPLICATION_CREDENTIALS")
	return ok
}

// baseVoiceName resolves the concrete provider voice behind a request.
func baseVoiceName(req Request) string {
	return voice.BaseVoiceFor(req.Profile)
}
