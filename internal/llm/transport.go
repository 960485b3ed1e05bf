package llm

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// TemperatureTransport forces "temperature": 0 into every JSON request body.
// go-openai tags the field omitempty, so a zero value would otherwise never
// reach the service and the server default would apply.
type TemperatureTransport struct {
	Base http.RoundTripper
}

// NewTemperatureClient returns a copy of base whose transport pins the
// temperature. A nil base behaves like http.DefaultClient.
func NewTemperatureClient(base *http.Client) *http.Client {
	client := &http.Client{}
	if base != nil {
		*client = *base
	}
	client.Transport = &TemperatureTransport{Base: client.Transport}
	return client
}

// RoundTrip rewrites the body of a clone of req and forwards it
func (t *TemperatureTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	if req.Body == nil || req.Body == http.NoBody {
		return base.RoundTrip(req)
	}

	body, err := io.ReadAll(req.Body)
	_ = req.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}

	body, err = PinTemperature(body)
	if err != nil {
		return nil, err
	}

	out := req.Clone(req.Context())
	out.Body = io.NopCloser(bytes.NewReader(body))
	out.ContentLength = int64(len(body))
	out.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(body)), nil
	}

	return base.RoundTrip(out)
}

// PinTemperature sets temperature to 0 in a JSON object. Non-JSON bodies are
// returned unchanged.
func PinTemperature(body []byte) ([]byte, error) {
	if !gjson.ValidBytes(body) || !gjson.ParseBytes(body).IsObject() {
		return body, nil
	}

	if t := gjson.GetBytes(body, "temperature"); t.Exists() && t.Type == gjson.Number && t.Num == Temperature {
		return body, nil
	}

	pinned, err := sjson.SetBytes(body, "temperature", Temperature)
	if err != nil {
		return nil, fmt.Errorf("failed to set temperature: %w", err)
	}
	return pinned, nil
}
