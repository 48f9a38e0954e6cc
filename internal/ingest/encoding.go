// Package ingest turns raw export files into decoded tables: it detects the
// byte encoding, decodes the text and parses CSV or XLSX rows.
package ingest

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	// ErrEncodingDetection is matched when the charset of an input cannot be determined.
	ErrEncodingDetection = eris.New("encoding detection failed")
	// ErrDecode is matched when bytes cannot be decoded under the chosen charset.
	ErrDecode = eris.New("decode failed")
)

// SourceError ties an ingest failure to the file it came from.
type SourceError struct {
	Path string
	Kind error
	Err  error
}

func (e *SourceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("ingest: %s: %v", e.Path, e.Kind)
	}
	return fmt.Sprintf("ingest: %s: %v: %v", e.Path, e.Kind, e.Err)
}

// Unwrap exposes both the failure kind and its cause.
func (e *SourceError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// chardetAliases maps detector names that the WHATWG index spells differently.
var chardetAliases = map[string]string{
	"GB-18030": "gb18030",
}

// DetectEncoding guesses the charset of sample. An empty sample is UTF-8.
func DetectEncoding(sample []byte) (string, error) {
	if len(sample) == 0 {
		return "UTF-8", nil
	}
	res, err := chardet.NewTextDetector().DetectBest(sample)
	if err != nil {
		return "", &SourceError{Kind: ErrEncodingDetection, Err: err}
	}
	if res == nil || res.Charset == "" {
		return "", &SourceError{Kind: ErrEncodingDetection}
	}
	return res.Charset, nil
}

// Decode converts raw to UTF-8 text using the named charset. A leading byte
// order mark selects the matching Unicode decoding and is removed.
func Decode(raw []byte, name string) (string, error) {
	if alias, ok := chardetAliases[name]; ok {
		name = alias
	}
	enc, err := lookupEncoding(name)
	if err != nil {
		return "", &SourceError{Kind: ErrDecode, Err: err}
	}

	if enc == unicode.UTF8 || enc == unicode.UTF8BOM {
		body := raw
		if len(body) >= 3 && body[0] == 0xEF && body[1] == 0xBB && body[2] == 0xBF {
			body = body[3:]
		}
		if !utf8.Valid(body) {
			return "", &SourceError{Kind: ErrDecode, Err: eris.New("invalid utf-8 byte sequence")}
		}
		return string(body), nil
	}

	out, _, err := transform.Bytes(unicode.BOMOverride(enc.NewDecoder()), raw)
	if err != nil {
		return "", &SourceError{Kind: ErrDecode, Err: err}
	}
	return string(out), nil
}

// lookupEncoding resolves a charset label through the WHATWG index first and
// the IANA registry second, which covers names like UTF-32BE.
func lookupEncoding(name string) (encoding.Encoding, error) {
	label := strings.ToLower(strings.TrimSpace(name))
	if enc, err := htmlindex.Get(label); err == nil {
		return enc, nil
	}
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil || enc == nil {
		return nil, eris.Errorf("unsupported charset %q", name)
	}
	return enc, nil
}
