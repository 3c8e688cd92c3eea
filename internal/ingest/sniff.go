package ingest

import (
	"bufio"
	"bytes"
	"io"
)

// sourceFormat is the detected content type of an ingest source after
// archive unwrapping.
type sourceFormat int

const (
	formatUnknown sourceFormat = iota
	formatLMF
	formatILI
)

const sniffSize = 1024

// sniff peeks at the first sniffSize bytes of r to classify its content,
// returning a reader that still yields the full stream (the peeked prefix
// included).
func sniff(r io.Reader) (sourceFormat, io.Reader, error) {
	br := bufio.NewReaderSize(r, sniffSize*2)
	prefix, err := br.Peek(sniffSize)
	if err != nil && err != io.EOF {
		return formatUnknown, br, err
	}

	if bytes.Contains(prefix, []byte("<?xml")) && bytes.Contains(prefix, []byte("LexicalResource")) {
		return formatLMF, br, nil
	}

	if looksLikeILIHeader(prefix) {
		return formatILI, br, nil
	}

	return formatUnknown, br, nil
}

func looksLikeILIHeader(prefix []byte) bool {
	nl := bytes.IndexByte(prefix, '\n')
	if nl < 0 {
		nl = len(prefix)
	}
	line := prefix[:nl]
	return bytes.ContainsRune(line, '\t') &&
		bytes.Contains(bytes.ToLower(line), []byte("ili")) &&
		bytes.Contains(bytes.ToLower(line), []byte("status"))
}
