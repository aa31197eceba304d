package garena

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

// decodeBody reads the response body, reversing whatever Content-Encoding
// the upstream applied. Sending Accept-Encoding by hand switches off the
// transport's transparent gzip handling, so every advertised encoding has
// to be decoded here.
func decodeBody(resp *http.Response) ([]byte, error) {
	encoding := strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding")))

	var reader io.Reader
	switch encoding {
	case "", "identity":
		reader = resp.Body
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	case "deflate":
		fr, err := deflateReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("deflate reader: %w", err)
		}
		reader = fr
	case "br":
		reader = brotli.NewReader(resp.Body)
	case "zstd":
		zr, err := zstd.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		defer zr.Close()
		reader = zr
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", encoding)
	}

	return io.ReadAll(reader)
}

// deflateReader handles both flavors of "deflate" seen in the wild: the
// RFC-correct zlib stream and the bare DEFLATE stream some servers send.
func deflateReader(body io.Reader) (io.Reader, error) {
	br := bufio.NewReader(body)

	head, err := br.Peek(2)
	if err == nil && isZlibHeader(head) {
		return zlib.NewReader(br)
	}
	return flate.NewReader(br), nil
}

// isZlibHeader checks the two-byte zlib stream header: low CMF nibble 8
// (deflate) and a valid FCHECK checksum.
func isZlibHeader(head []byte) bool {
	if len(head) < 2 {
		return false
	}
	if head[0]&0x0f != 0x08 {
		return false
	}
	return (uint16(head[0])<<8|uint16(head[1]))%31 == 0
}
