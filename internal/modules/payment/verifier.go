package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const DefaultTolerance = 5 * time.Minute

// Verifier authenticates raw webhook payloads against the shared
// signing secret. The signature header carries a unix timestamp and one
// or more v1 signatures: "t=<unix>,v1=<hex>[,v1=<hex>...]"; each v1 is
// HMAC-SHA256 over "<t>.<raw payload>". The signature is computed over
// the exact wire bytes, so callers must not re-serialize the body
// before verification.
type Verifier struct {
	secret    string
	tolerance time.Duration
	now       func() time.Time
}

func NewVerifier(secret string, tolerance time.Duration) *Verifier {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &Verifier{secret: secret, tolerance: tolerance, now: time.Now}
}

func (v *Verifier) Verify(payload []byte, sigHeader string) (*Event, error) {
	ts, sigs, err := parseSignatureHeader(sigHeader)
	if err != nil {
		return nil, ErrSignatureInvalid
	}

	expected := computeSignature(v.secret, ts, payload)
	matched := false
	for _, sig := range sigs {
		if hmac.Equal([]byte(sig), []byte(expected)) {
			matched = true
			break
		}
	}
	if !matched {
		return nil, ErrSignatureInvalid
	}

	// Replay protection: a genuine signature on a stale timestamp is
	// still rejected.
	eventTime := time.Unix(ts, 0)
	age := v.now().Sub(eventTime)
	if age > v.tolerance || age < -v.tolerance {
		return nil, ErrTimestampExpired
	}

	var ev Event
	if err := json.Unmarshal(payload, &ev); err != nil {
		return nil, ErrPayloadMalformed
	}
	if ev.ID == "" || ev.Type == "" {
		return nil, ErrPayloadMalformed
	}
	return &ev, nil
}

func parseSignatureHeader(header string) (int64, []string, error) {
	if header == "" {
		return 0, nil, fmt.Errorf("empty signature header")
	}

	var ts int64
	var tsSeen bool
	var sigs []string

	for _, part := range strings.Split(header, ",") {
		k, val, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "t":
			parsed, err := strconv.ParseInt(val, 10, 64)
			if err != nil {
				return 0, nil, fmt.Errorf("bad timestamp: %w", err)
			}
			ts = parsed
			tsSeen = true
		case "v1":
			sigs = append(sigs, val)
		}
	}

	if !tsSeen || len(sigs) == 0 {
		return 0, nil, fmt.Errorf("signature header missing t or v1")
	}
	return ts, sigs, nil
}

func computeSignature(secret string, ts int64, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(ts, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
