package publisher

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const nonceAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// OAuth1Signer produces OAuth 1.0a HMAC-SHA1 Authorization headers for a
// single consumer/token pair.
type OAuth1Signer struct {
	ConsumerKey    string
	ConsumerSecret string
	Token          string
	TokenSecret    string

	// Nonce and Now default to a random alphanumeric string and time.Now.
	Nonce func() (string, error)
	Now   func() time.Time
}

// AuthorizationHeader signs method and rawURL. extra holds any query or form
// parameters that take part in the signature; JSON bodies never do.
func (s *OAuth1Signer) AuthorizationHeader(method, rawURL string, extra url.Values) (string, error) {
	nonce, err := s.nonce()
	if err != nil {
		return "", err
	}

	oauthParams := map[string]string{
		"oauth_consumer_key":     s.ConsumerKey,
		"oauth_nonce":            nonce,
		"oauth_signature_method": "HMAC-SHA1",
		"oauth_timestamp":        strconv.FormatInt(s.now().Unix(), 10),
		"oauth_token":            s.Token,
		"oauth_version":          "1.0",
	}

	baseURL, query, err := splitURL(rawURL)
	if err != nil {
		return "", err
	}

	var pairs [][2]string
	for k, v := range oauthParams {
		pairs = append(pairs, [2]string{k, v})
	}
	for _, values := range []url.Values{query, extra} {
		for k, vs := range values {
			for _, v := range vs {
				pairs = append(pairs, [2]string{k, v})
			}
		}
	}

	base := SignatureBaseString(method, baseURL, pairs)
	oauthParams["oauth_signature"] = Sign(base, s.ConsumerSecret, s.TokenSecret)

	return headerValue(oauthParams), nil
}

func (s *OAuth1Signer) nonce() (string, error) {
	if s.Nonce != nil {
		return s.Nonce()
	}
	return gonanoid.Generate(nonceAlphabet, 32)
}

func (s *OAuth1Signer) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// SignatureBaseString builds METHOD&enc(url)&enc(params) where params are
// percent-encoded, sorted by key then value and joined with "&".
func SignatureBaseString(method, baseURL string, params [][2]string) string {
	encoded := make([][2]string, len(params))
	for i, p := range params {
		encoded[i] = [2]string{PercentEncode(p[0]), PercentEncode(p[1])}
	}
	sort.Slice(encoded, func(i, j int) bool {
		if encoded[i][0] != encoded[j][0] {
			return encoded[i][0] < encoded[j][0]
		}
		return encoded[i][1] < encoded[j][1]
	})

	parts := make([]string, len(encoded))
	for i, p := range encoded {
		parts[i] = p[0] + "=" + p[1]
	}

	return strings.ToUpper(method) + "&" + PercentEncode(baseURL) + "&" + PercentEncode(strings.Join(parts, "&"))
}

// Sign returns base64(HMAC-SHA1(enc(consumerSecret)&enc(tokenSecret), base)).
func Sign(base, consumerSecret, tokenSecret string) string {
	key := PercentEncode(consumerSecret) + "&" + PercentEncode(tokenSecret)
	mac := hmac.New(sha1.New, []byte(key))
	mac.Write([]byte(base))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// PercentEncode implements RFC 3986 section 2.1 encoding as OAuth 1.0a
// requires: everything except ALPHA, DIGIT, '-', '.', '_' and '~' is escaped
// with uppercase hex.
func PercentEncode(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0F])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	}
	return false
}

func headerValue(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]string, len(keys))
	for i, k := range keys {
		entries[i] = PercentEncode(k) + `="` + PercentEncode(params[k]) + `"`
	}
	return "OAuth " + strings.Join(entries, ", ")
}

func splitURL(rawURL string) (string, url.Values, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", nil, err
	}
	query := u.Query()
	u.RawQuery = ""
	u.Fragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	return u.String(), query, nil
}
