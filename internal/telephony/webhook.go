package telephony

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
)

const SignatureHeader = "X-Twilio-Signature"

// Envelope is the empty TwiML acknowledgement.
const Envelope = "<Response></Response>"

// WebhookParams flattens a form-encoded or JSON webhook body into a string map.
// A repeated form key keeps its first value, the same value the signature validator signs.
// A JSON body is restored on r so later readers see it unchanged.
func WebhookParams(r *http.Request) (map[string]string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if mediaType == "application/json" {
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, fmt.Errorf("read webhook body: %w", err)
		}
		r.Body = io.NopCloser(bytes.NewReader(raw))

		var body map[string]any
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, fmt.Errorf("decode webhook body: %w", err)
		}
		params := make(map[string]string, len(body))
		for k, v := range body {
			switch val := v.(type) {
			case string:
				params[k] = val
			case nil:
				params[k] = ""
			default:
				params[k] = fmt.Sprint(val)
			}
		}
		return params, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("parse webhook form: %w", err)
	}
	params := make(map[string]string, len(r.PostForm))
	for k := range r.PostForm {
		params[k] = r.PostForm.Get(k)
	}
	return params, nil
}
