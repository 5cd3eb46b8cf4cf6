package geocoding

import (
	"crypto/hmac"
	"crypto/sha1" //nolint:gosec // Google URL signatures are defined as HMAC-SHA1.
	"encoding/base64"
	"fmt"
	"net/url"
)

// urlSigner signs request URLs for Google Maps Platform premium (client ID) customers.
type urlSigner struct {
	clientID string
	key      []byte
}

func newURLSigner(clientID, secret string) (*urlSigner, error) {
	key, err := base64.URLEncoding.DecodeString(secret)
	if err != nil {
		return nil, fmt.Errorf("%w: client secret is not URL-safe base64: %w", ErrConfiguration, err)
	}

	return &urlSigner{clientID: clientID, key: key}, nil
}

// sign adds the client parameter to query and returns the encoded query with
// the signature appended last, as Google requires.
func (s *urlSigner) sign(path string, query url.Values) string {
	query.Set("client", s.clientID)
	encoded := query.Encode()

	mac := hmac.New(sha1.New, s.key)
	mac.Write([]byte(path + "?" + encoded))
	signature := base64.URLEncoding.EncodeToString(mac.Sum(nil))

	return encoded + "&signature=" + signature
}
