package lsp

import (
	"bufio"
	"strings"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	encoded := EncodeMessage(Notification{RPC: RPC_VERSION, Method: "textDocument/didOpen"})

	if !strings.HasPrefix(encoded, "Content-Length: ") {
		t.Fatalf("missing header in %q", encoded)
	}

	method, contents, err := DecodeMessage([]byte(encoded))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if method != "textDocument/didOpen" {
		t.Errorf("got method %q", method)
	}
	if !strings.Contains(string(contents), `"jsonrpc":"2.0"`) {
		t.Errorf("unexpected contents %q", contents)
	}
}

func TestDecodeMessageNoHeader(t *testing.T) {
	if _, _, err := DecodeMessage([]byte(`{"method":"x"}`)); err == nil {
		t.Error("expected an error for an unframed message")
	}
}

func TestDecodeMessageTruncatedContent(t *testing.T) {
	full := EncodeMessage(Notification{RPC: RPC_VERSION, Method: "x"})
	if _, _, err := DecodeMessage([]byte(full[:len(full)-5])); err == nil {
		t.Error("expected an error when the content is shorter than Content-Length")
	}
}

func TestSplitYieldsWholeMessages(t *testing.T) {
	first := EncodeMessage(Notification{RPC: RPC_VERSION, Method: "one"})
	second := EncodeMessage(Notification{RPC: RPC_VERSION, Method: "two"})

	scanner := bufio.NewScanner(strings.NewReader(first + second))
	scanner.Split(Split)

	var methods []string
	for scanner.Scan() {
		method, _, err := DecodeMessage(scanner.Bytes())
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		methods = append(methods, method)
	}

	if len(methods) != 2 || methods[0] != "one" || methods[1] != "two" {
		t.Errorf("got methods %v", methods)
	}
}

func TestSplitWaitsForFullContent(t *testing.T) {
	full := EncodeMessage(Notification{RPC: RPC_VERSION, Method: "one"})
	partial := full[:len(full)-5]

	advance, token, err := Split([]byte(partial), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if advance != 0 || token != nil {
		t.Errorf("expected no token for a partial message, got advance %d", advance)
	}
}
