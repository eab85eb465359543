package synth

import (
	"bytes"
	"context"
	"fmt"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	texttospeechpb "google.golang.org/genproto/googleapis/cloud/texttospeech/v1"
)

// GoogleSynthesizer renders speech through the Google Cloud TTS API at a
// fixed linear PCM rate so artifacts drop straight into the assembler.
type GoogleSynthesizer struct {
	client     *texttospeech.Client
	language   string
	sampleRate int32
}

func NewGoogleSynthesizer(ctx context.Context) (*GoogleSynthesizer, error) {
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create TTS client: %w", err)
	}
	return &GoogleSynthesizer{
		client:     client,
		language:   viper.GetString("synth.language"),
		sampleRate: viper.GetInt32("synth.sample_rate"),
	}, nil
}

func (g *GoogleSynthesizer) Synthesize(ctx context.Context, req Request) (Artifact, error) {
	if req.Profile.ID == "" {
		return Artifact{}, ErrNoVoice
	}

	apiReq := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: req.Text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: g.language,
			Name:         baseVoiceName(req),
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding:   texttospeechpb.AudioEncoding_LINEAR16,
			SampleRateHertz: g.sampleRate,
			SpeakingRate:    speakingRate(req.Controls.Speed),
			Pitch:           pitchShift(req.Controls.Pitch),
		},
	}

	resp, err := g.client.SynthesizeSpeech(ctx, apiReq)
	if err != nil {
		return Artifact{}, fmt.Errorf("synthesize speech: %w", err)
	}
	if len(resp.AudioContent) == 0 {
		return Artifact{}, ErrNoAudio
	}

	pcm := stripWavHeader(resp.AudioContent)
	logrus.WithFields(logrus.Fields{
		"voice":   req.Profile.Name,
		"dialect": req.DialectID,
		"samples": len(pcm) / 2,
	}).Debug("synthesized segment")

	return Artifact{PCM: pcm, SampleRate: int(g.sampleRate), Channels: 1}, nil
}

// Close releases the underlying API connection.
func (g *GoogleSynthesizer) Close() error { return g.client.Close() }

// stripWavHeader drops the RIFF container LINEAR16 responses arrive in,
// leaving bare samples.
func stripWavHeader(audio []byte) []byte {
	if len(audio) > 44 && bytes.HasPrefix(audio, []byte("RIFF")) {
		return audio[44:]
	}
	return audio
}
