package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/reconcile-cli/internal/model"
)

// DefaultSampleBytes is how much of a file feeds encoding detection.
const DefaultSampleBytes = 100_000

// Options control how ReadFile decodes a source.
type Options struct {
	// SampleBytes bounds the detection sample; <= 0 uses DefaultSampleBytes.
	SampleBytes int
	// Encoding forces a charset and skips detection.
	Encoding string
	// Delimiter forces the CSV delimiter and skips sniffing.
	Delimiter rune
	// Sheet selects the worksheet of .xlsx inputs.
	Sheet XLSXOptions
}

// ReadFile loads path into a table. Spreadsheets (.xlsx) are read directly;
// anything else is treated as delimited text whose charset is detected from a
// leading sample and whose delimiter is sniffed from the header line. A .zip
// archive holding exactly one file is read as that file.
func ReadFile(ctx context.Context, path string, opts Options) (model.Table, error) {
	log := zap.L().With(zap.String("file", path))

	name := path
	var raw []byte
	if hasExt(path, ".zip") {
		inner, data, err := readZIPSingle(path)
		if err != nil {
			return model.Table{}, eris.Wrapf(err, "ingest: open %s", path)
		}
		name, raw = inner, data
		log = log.With(zap.String("entry", inner))
	}

	if hasExt(name, ".xlsx") {
		var t model.Table
		var err error
		if raw != nil {
			t, err = ReadXLSXBytes(raw, path, opts.Sheet)
		} else {
			t, err = ReadXLSX(path, opts.Sheet)
		}
		if err != nil {
			return model.Table{}, eris.Wrapf(err, "ingest: read %s", path)
		}
		log.Info("ingest: read spreadsheet", zap.Int("rows", len(t.Rows)))
		return t, nil
	}

	if raw == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return model.Table{}, eris.Wrapf(err, "ingest: open %s", path)
		}
		raw = data
	}

	charset := opts.Encoding
	if charset == "" {
		n := opts.SampleBytes
		if n <= 0 {
			n = DefaultSampleBytes
		}
		sample := raw[:min(n, len(raw))]
		guess, err := DetectEncoding(sample)
		if err != nil {
			return model.Table{}, withPath(err, path)
		}
		charset, err = settleCharset(raw, sample, guess)
		if err != nil {
			return model.Table{}, withPath(err, path)
		}
		if charset != guess {
			log.Info("ingest: overrode detector guess", zap.String("guess", guess))
		}
		log.Info("ingest: detected encoding", zap.String("encoding", charset))
	}

	text, err := Decode(raw, charset)
	if err != nil {
		return model.Table{}, withPath(err, path)
	}

	delim := opts.Delimiter
	if delim == 0 {
		delim = SniffDelimiter(firstLine(text))
	}

	t, err := ReadCSV(ctx, strings.NewReader(text), delim)
	if err != nil {
		return model.Table{}, eris.Wrapf(err, "ingest: parse %s", path)
	}
	t.Source = path

	log.Info("ingest: read csv",
		zap.String("delimiter", string(delim)),
		zap.Int("columns", len(t.Header)),
		zap.Int("rows", len(t.Rows)),
	)
	return t, nil
}

// settleCharset checks a single-byte guess against the whole file. The
// detector labels an all-ASCII sample as Latin, which would mangle UTF-8 text
// further down the file.
func settleCharset(raw, sample []byte, guess string) (string, error) {
	if !singleByteLatin(guess) {
		return guess, nil
	}
	if utf8.Valid(raw) {
		return "UTF-8", nil
	}
	if isASCII(sample) && len(sample) < len(raw) {
		return "", &SourceError{
			Kind: ErrEncodingDetection,
			Err:  eris.Errorf("first %d bytes are ascii but the file is not valid utf-8", len(sample)),
		}
	}
	return guess, nil
}

func singleByteLatin(name string) bool {
	n := strings.ToUpper(name)
	return strings.HasPrefix(n, "ISO-8859-") || strings.HasPrefix(n, "WINDOWS-125")
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func hasExt(path, ext string) bool {
	return strings.EqualFold(filepath.Ext(path), ext)
}

func withPath(err error, path string) error {
	if se, ok := err.(*SourceError); ok {
		se.Path = path
		return se
	}
	return err
}
