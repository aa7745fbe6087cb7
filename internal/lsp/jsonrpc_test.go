package lsp

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestJSONRPCFramingMultipleMessages(t *testing.T) {
	var buf bytes.Buffer
	msg1 := []byte(`{"jsonrpc":"2.0","method":"one"}`)
	msg2 := []byte(`{"jsonrpc":"2.0","method":"two"}`)

	if err := writeMessage(&buf, msg1); err != nil {
		t.Fatalf("write message 1: %v", err)
	}
	if err := writeMessage(&buf, msg2); err != nil {
		t.Fatalf("write message 2: %v", err)
	}

	reader := bufio.NewReader(bytes.NewReader(buf.Bytes()))
	got1, err := readMessage(reader)
	if err != nil {
		t.Fatalf("read message 1: %v", err)
	}
	got2, err := readMessage(reader)
	if err != nil {
		t.Fatalf("read message 2: %v", err)
	}

	if string(got1) != string(msg1) {
		t.Fatalf("unexpected message 1: %s", string(got1))
	}
	if string(got2) != string(msg2) {
		t.Fatalf("unexpected message 2: %s", string(got2))
	}
}

func TestJSONRPCHeaders(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"extra header", "Content-Type: x\r\ncontent-length: 2\r\n\r\n{}", "{}", false},
		{"missing length", "Content-Type: x\r\n\r\n{}", "", true},
		{"bad length", "Content-Length: abc\r\n\r\n", "", true},
		{"negative length", "Content-Length: -1\r\n\r\n", "", true},
		{"short body", "Content-Length: 10\r\n\r\n{}", "", true},
	}
	for _, tc := range cases {
		got, err := readMessage(bufio.NewReader(strings.NewReader(tc.input)))
		if (err != nil) != tc.wantErr {
			t.Fatalf("%s: err = %v, wantErr %v", tc.name, err, tc.wantErr)
		}
		if string(got) != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
	_, err := readMessage(bufio.NewReader(strings.NewReader("X: 1\r\n\r\n")))
	if !errors.Is(err, errNoContentLength) {
		t.Fatalf("expected errNoContentLength, got %v", err)
	}
}
