package walletpay

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	canonicaljson "github.com/gibson042/canonicaljson-go"
)

const (
	contentTypeJSON  = "application/json; charset=utf-8"
	maxResponseBytes = 1 << 20
)

// encodeJSON renders request bodies as canonical JSON, so two requests for
// the same merchant and validation URL carry identical bytes and can be
// matched in the gateway's request log.
func encodeJSON(v any) (*bytes.Reader, error) {
	raw, err := canonicaljson.Marshal(v)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(raw), nil
}

// encodeTokenizeRequest encodes the envelope canonically but splices the
// wallet token in unchanged; the token is opaque and signed by the wallet.
// "token" sorts before "tokenKey", so the result keeps canonical key order.
func encodeTokenizeRequest(req TokenizeRequest) (*bytes.Reader, error) {
	token := bytes.TrimSpace(req.Token)
	if len(token) == 0 {
		token = []byte("null")
	}
	if !json.Valid(token) {
		return nil, errors.New("payment token is not valid JSON")
	}
	rest, err := canonicaljson.Marshal(struct {
		TokenKey string `json:"tokenKey"`
	}{TokenKey: req.TokenKey})
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Grow(len(token) + len(rest) + 10)
	buf.WriteString(`{"token":`)
	buf.Write(token)
	buf.WriteByte(',')
	buf.Write(rest[1:])
	return bytes.NewReader(buf.Bytes()), nil
}

// decodeJSONBody reads a single JSON document from a gateway response.
func decodeJSONBody(body io.ReadCloser) (json.RawMessage, error) {
	defer func() { _ = body.Close() }()
	dec := json.NewDecoder(io.LimitReader(body, maxResponseBytes))
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("response body required")
		}
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("unexpected data after JSON body")
	}
	return raw, nil
}

func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func readText(body io.ReadCloser, limit int64) (string, error) {
	defer func() { _ = body.Close() }()
	raw, err := io.ReadAll(io.LimitReader(body, limit))
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func drain(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 4096))
	_ = body.Close()
}

func isSuccess(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}

// statusText returns the reason phrase of a response, e.g. "Not Found".
func statusText(resp *http.Response) string {
	code := strconv.Itoa(resp.StatusCode)
	if text := strings.TrimSpace(strings.TrimPrefix(resp.Status, code)); text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}

// truthy mirrors how the gateway's error envelope treats statusCode: absent,
// null, false, zero and the empty string all mean "no error".
func truthy(v any) bool {
	switch value := v.(type) {
	case nil:
		return false
	case bool:
		return value
	case float64:
		return value != 0
	case json.Number:
		f, err := value.Float64()
		return err != nil || f != 0
	case string:
		return value != ""
	default:
		return true
	}
}

func stringify(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	default:
		return fmt.Sprint(value)
	}
}
