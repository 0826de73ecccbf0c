package voice

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Recognizer converts a recorded PCM16 segment into text.
type Recognizer interface {
	Transcribe(ctx context.Context, pcm []int16, sampleRate int) (string, error)
}

// HTTPRecognizer sends segments to an OpenAI-compatible transcription
// endpoint as multipart WAV uploads.
type HTTPRecognizer struct {
	url      string
	apiKey   string
	model    string
	language string
	client   *http.Client
}

// NewHTTPRecognizer builds a recognizer for the given endpoint.
func NewHTTPRecognizer(url, apiKey, model, language string) *HTTPRecognizer {
	return &HTTPRecognizer{
		url:      url,
		apiKey:   apiKey,
		model:    model,
		language: language,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

func (r *HTTPRecognizer) Transcribe(ctx context.Context, pcm []int16, sampleRate int) (string, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	part, err := w.CreateFormFile("file", "segment.wav")
	if err != nil {
		return "", fmt.Errorf("building upload: %w", err)
	}
	if err := writeWAV(part, pcm, sampleRate); err != nil {
		return "", fmt.Errorf("encoding wav: %w", err)
	}
	if err := w.WriteField("model", r.model); err != nil {
		return "", fmt.Errorf("building upload: %w", err)
	}
	if r.language != "" {
		if err := w.WriteField("language", r.language); err != nil {
			return "", fmt.Errorf("building upload: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("building upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, &body)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("transcription endpoint returned %d: %s", resp.StatusCode, msg)
	}

	var parsed transcriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding transcription: %w", err)
	}
	return parsed.Text, nil
}

// writeWAV emits a minimal RIFF/WAVE container with one PCM16 mono
// data chunk.
func writeWAV(w io.Writer, pcm []int16, sampleRate int) error {
	dataLen := len(pcm) * 2
	byteRate := sampleRate * 2

	var header bytes.Buffer
	header.WriteString("RIFF")
	binary.Write(&header, binary.LittleEndian, uint32(36+dataLen))
	header.WriteString("WAVE")
	header.WriteString("fmt ")
	binary.Write(&header, binary.LittleEndian, uint32(16))
	binary.Write(&header, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&header, binary.LittleEndian, uint16(1)) // mono
	binary.Write(&header, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&header, binary.LittleEndian, uint32(byteRate))
	binary.Write(&header, binary.LittleEndian, uint16(2))  // block align
	binary.Write(&header, binary.LittleEndian, uint16(16)) // bits per sample
	header.WriteString("data")
	binary.Write(&header, binary.LittleEndian, uint32(dataLen))

	if _, err := w.Write(header.Bytes()); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, pcm)
}
