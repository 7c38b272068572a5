// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package textfile

import (
	"bytes"
	"fmt"
	"unicode"
	"unicode/utf8"

	xunicode "golang.org/x/text/encoding/unicode"
)

// 🔤 Encoding names the byte encoding a file was read in.
type Encoding string

const (
	UTF8    Encoding = "utf-8"
	UTF8BOM Encoding = "utf-8-bom"
	UTF16LE Encoding = "utf-16le"
	UTF16BE Encoding = "utf-16be"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// EncodingError is returned when a file is neither UTF-8 nor UTF-16 text.
type EncodingError struct {
	Path   string
	Reason string
}

func (e *EncodingError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("undecodable text: %s", e.Reason)
	}
	return fmt.Sprintf("undecodable text in %s: %s", e.Path, e.Reason)
}

// Decode detects the encoding of raw and returns its content as UTF-8.
//
// A byte order mark always wins. Without one, NUL-free valid UTF-8 is taken
// as UTF-8 and anything else is retried as UTF-16.
func Decode(raw []byte) (string, Encoding, error) {
	switch {
	case bytes.HasPrefix(raw, bomUTF8):
		body := raw[len(bomUTF8):]
		if !utf8.Valid(body) {
			return "", "", &EncodingError{Reason: "invalid UTF-8 after byte order mark"}
		}
		return string(body), UTF8BOM, nil
	case bytes.HasPrefix(raw, bomUTF16LE):
		return decodeUTF16(raw, xunicode.LittleEndian, UTF16LE)
	case bytes.HasPrefix(raw, bomUTF16BE):
		return decodeUTF16(raw, xunicode.BigEndian, UTF16BE)
	}

	if utf8.Valid(raw) && bytes.IndexByte(raw, 0) < 0 {
		return string(raw), UTF8, nil
	}

	if len(raw)%2 != 0 {
		return "", "", &EncodingError{Reason: "not valid UTF-8 and odd length for UTF-16"}
	}
	if guessBigEndian(raw) {
		return decodeUTF16(raw, xunicode.BigEndian, UTF16BE)
	}
	return decodeUTF16(raw, xunicode.LittleEndian, UTF16LE)
}

// Encode returns the bytes written back for text. Output is always UTF-8
// without a byte order mark, whatever the input encoding was, so repeated
// runs converge on a single encoding.
func Encode(text string) []byte {
	return []byte(text)
}

func decodeUTF16(raw []byte, order xunicode.Endianness, enc Encoding) (string, Encoding, error) {
	decoded, err := xunicode.UTF16(order, xunicode.UseBOM).NewDecoder().Bytes(raw)
	if err != nil {
		return "", "", &EncodingError{Reason: fmt.Sprintf("decoding %s: %v", enc, err)}
	}
	if !plausibleText(decoded) {
		return "", "", &EncodingError{Reason: fmt.Sprintf("not valid UTF-8 and not plausible %s text", enc)}
	}
	return string(decoded), enc, nil
}

// guessBigEndian looks at where the zero bytes of ASCII-range code units sit.
func guessBigEndian(raw []byte) bool {
	even, odd := 0, 0
	for i := 0; i+1 < len(raw); i += 2 {
		if raw[i] == 0 {
			even++
		}
		if raw[i+1] == 0 {
			odd++
		}
	}
	return even > odd
}

// plausibleText rejects decodings that produced replacement runes or control
// characters other than common whitespace.
func plausibleText(b []byte) bool {
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError {
			return false
		}
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' && r != '\f' {
			return false
		}
		b = b[size:]
	}
	return true
}
