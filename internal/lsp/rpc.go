package lsp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Messages are framed with a Content-Length header:
//
//	Content-Length: <n>\r\n\r\n<n bytes of JSON>
func EncodeMessage(msg any) string {
	content, err := json.Marshal(msg)
	if err != nil {
		panic(err)
	}
	return fmt.Sprintf("Content-Length: %d\r\n\r\n%s", len(content), content)
}

var ErrNoHeader = errors.New("message contains no Content-Length header")

// DecodeMessage strips the framing header and extracts the method name,
// returning the raw JSON content for method-specific unmarshalling.
func DecodeMessage(msg []byte) (string, []byte, error) {
	header, content, found := bytes.Cut(msg, []byte("\r\n\r\n"))
	if !found {
		return "", nil, ErrNoHeader
	}

	contentLengthBytes := bytes.TrimPrefix(header, []byte("Content-Length: "))
	contentLength, err := strconv.Atoi(string(contentLengthBytes))
	if err != nil {
		return "", nil, err
	}
	if len(content) < contentLength {
		return "", nil, fmt.Errorf("message content has %d bytes, Content-Length says %d", len(content), contentLength)
	}
	content = content[:contentLength]

	var base struct {
		Method string `json:"method"`
	}
	if err := json.Unmarshal(content, &base); err != nil {
		return "", nil, err
	}

	return base.Method, content, nil
}

// Split is a bufio.SplitFunc yielding one framed message per token.
func Split(data []byte, _ bool) (advance int, token []byte, err error) {
	header, content, found := bytes.Cut(data, []byte("\r\n\r\n"))
	if !found {
		return 0, nil, nil
	}

	contentLengthBytes := bytes.TrimPrefix(header, []byte("Content-Length: "))
	contentLength, err := strconv.Atoi(string(contentLengthBytes))
	if err != nil {
		return 0, nil, err
	}

	if len(content) < contentLength {
		return 0, nil, nil
	}

	totalLength := len(header) + 4 + contentLength
	return totalLength, data[:totalLength], nil
}
