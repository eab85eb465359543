// Package assemble turns ordered synthesis artifacts into one canonical
// mono 16-bit PCM WAV byte stream. The byte layout is a contract: identical
// inputs must produce bit-identical output.
package assemble

import (
	"encoding/binary"
	"errors"
	"sort"

	"rawistudio/internal/studio/synth"
)

var ErrNoArtifacts = errors.New("no audio artifacts to merge")

const headerSize = 44

// Merge decodes every artifact, concatenates the samples in segment order
// and encodes the result as a single WAV file. All artifacts are treated as
// mono at the first artifact's sample rate; mixed rates are not resampled.
func Merge(artifacts []synth.Artifact) ([]byte, error) {
	if len(artifacts) == 0 {
		return nil, ErrNoArtifacts
	}

	ordered := make([]synth.Artifact, len(artifacts))
	copy(ordered, artifacts)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SegmentIndex < ordered[j].SegmentIndex
	})

	total := 0
	for _, a := range ordered {
		total += a.Samples()
	}

	master := make([]float64, 0, total)
	for _, a := range ordered {
		master = append(master, decode(a.PCM)...)
	}

	return Encode(master, ordered[0].SampleRate), nil
}

// decode converts little-endian signed 16-bit samples to floats in [-1, 1].
func decode(pcm []byte) []float64 {
	n := len(pcm) / 2
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		v := int16(binary.LittleEndian.Uint16(pcm[i*2:]))
		out[i] = float64(v) / 32768.0
	}
	return out
}

// Encode writes float samples as a canonical 44-byte-header mono PCM WAV.
// Scaling is asymmetric: negative samples scale by 32768, non-negative by
// 32767, each clipped to [-1, 1] first.
func Encode(samples []float64, sampleRate int) []byte {
	dataSize := len(samples) * 2
	buf := make([]byte, headerSize+dataSize)

	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(headerSize+dataSize-8))
	copy(buf[8:12], "WAVE")

	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(buf[20:22], 1)  // format tag: PCM
	binary.LittleEndian.PutUint16(buf[22:24], 1)  // mono
	binary.LittleEndian.PutUint32(buf[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(sampleRate*2)) // byte rate
	binary.LittleEndian.PutUint16(buf[32:34], 2)                    // block align
	binary.LittleEndian.PutUint16(buf[34:36], 16)                   // bits per sample

	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(dataSize))

	for i, s := range samples {
		if s < -1 {
			s = -1
		} else if s > 1 {
			s = 1
		}
		var v int16
		if s < 0 {
			v = int16(s * 32768)
		} else {
			v = int16(s * 32767)
		}
		binary.LittleEndian.PutUint16(buf[headerSize+i*2:], uint16(v))
	}

	return buf
}
