package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"voicedetect/common/models"
)

func newDetectCommand(opts *options) *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "detect <file>",
		Short: "Send an audio file to the detection API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			audio, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read audio: %w", err)
			}
			client := &http.Client{Timeout: timeout}
			resp, raw, err := callDetect(cmd.Context(), client, opts, audio)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.jsonOut {
				_, err := out.Write(append(raw, '\n'))
				return err
			}
			printResponse(out, args[0], resp)
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "HTTP request timeout")
	return cmd
}

// apiError is returned for non-200 responses.
type apiError struct {
	Status int
	Body   models.ErrorResponse
}

func (e *apiError) Error() string {
	if e.Body.Error != "" {
		return fmt.Sprintf("detection api: %d: %s", e.Status, e.Body.Error)
	}
	return fmt.Sprintf("detection api: unexpected status %d", e.Status)
}

// callDetect posts audio to the API and returns the decoded response along
// with the raw body.
func callDetect(ctx context.Context, client *http.Client, opts *options, audio []byte) (*models.DetectionResponse, []byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	body, err := json.Marshal(models.DetectionRequest{
		AudioBase64: base64.StdEncoding.EncodeToString(audio),
		Language:    opts.language,
	})
	if err != nil {
		return nil, nil, err
	}

	url := strings.TrimSuffix(opts.url, "/") + "/api/v1/detect"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", opts.apiKey)

	res, err := client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot reach detection api at %s: %w", opts.url, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read response: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		apiErr := &apiError{Status: res.StatusCode}
		_ = json.Unmarshal(raw, &apiErr.Body)
		return nil, raw, apiErr
	}

	var out models.DetectionResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, raw, fmt.Errorf("decode response: %w", err)
	}
	return &out, raw, nil
}
