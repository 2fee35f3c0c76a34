package convert

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// srcEncoding is the BOM-detected encoding of a subtitle source.
type srcEncoding int

const (
	encUnknown srcEncoding = iota
	encUTF8
	encUTF16BigEndian
	encUTF16LittleEndian
	encUTF32BigEndian
	encUTF32LittleEndian
)

var ttmlType = filetype.NewType("ttml", "application/ttml+xml")

func init() {
	// teach filetype to recognize TTML documents so probing is uniform with
	// archive detection
	filetype.AddMatcher(ttmlType, func(buf []byte) bool {
		head := buf
		if len(head) > 512 {
			head = head[:512]
		}
		return bytes.Contains(head, []byte("<tt")) &&
			(bytes.Contains(head, []byte("<?xml")) || bytes.Contains(head, []byte("http://www.w3.org/ns/ttml")))
	})
}

// isArchiveFile reports whether path looks like a zip archive worth walking.
func isArchiveFile(path string) (bool, error) {
	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		return false, nil
	}
	buf, err := readHead(path)
	if err != nil {
		return false, err
	}
	return filetype.IsType(buf, filetype.GetType("zip")), nil
}

// isSubtitleFile reports whether path looks like a TTML subtitle document
// and detects its BOM encoding.
func isSubtitleFile(path string) (bool, srcEncoding, error) {
	if !hasSubtitleExt(path) {
		return false, encUnknown, nil
	}
	buf, err := readHead(path)
	if err != nil {
		return false, encUnknown, err
	}
	return probeSubtitle(buf)
}

// isSubtitleInArchive is isSubtitleFile for a zip entry.
func isSubtitleInArchive(f *zip.File) (bool, srcEncoding, error) {
	if !hasSubtitleExt(f.FileHeader.Name) {
		return false, encUnknown, nil
	}
	r, err := f.Open()
	if err != nil {
		return false, encUnknown, err
	}
	defer r.Close()

	buf := make([]byte, 512)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false, encUnknown, err
	}
	return probeSubtitle(buf[:n])
}

func hasSubtitleExt(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ttml", ".dfxp", ".xml":
		return true
	}
	return false
}

func probeSubtitle(buf []byte) (bool, srcEncoding, error) {
	enc := detectUTF(buf)
	probe := buf
	if enc != encUnknown {
		// decode the sniffing window so the matcher sees plain text; the
		// window may end mid-rune so a decoder error still leaves usable
		// output
		decoded := new(bytes.Buffer)
		io.Copy(decoded, selectReader(bytes.NewReader(buf), enc)) //nolint:errcheck
		if decoded.Len() > 0 {
			probe = decoded.Bytes()
		}
	}
	return filetype.IsType(probe, ttmlType), enc, nil
}

func readHead(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return buf[:n], nil
}

func isUTF8BOM3(buf []byte) bool {
	return len(buf) >= 3 && buf[0] == 0xEF && buf[1] == 0xBB && buf[2] == 0xBF
}

func isUTF16BigEndianBOM2(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xFE && buf[1] == 0xFF
}

func isUTF16LittleEndianBOM2(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xFF && buf[1] == 0xFE
}

func isUTF32BigEndianBOM4(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 0x00 && buf[1] == 0x00 && buf[2] == 0xFE && buf[3] == 0xFF
}

func isUTF32LittleEndianBOM4(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 0xFF && buf[1] == 0xFE && buf[2] == 0x00 && buf[3] == 0x00
}

func detectUTF(buf []byte) srcEncoding {
	switch {
	case isUTF32BigEndianBOM4(buf):
		return encUTF32BigEndian
	case isUTF32LittleEndianBOM4(buf):
		return encUTF32LittleEndian
	case isUTF8BOM3(buf):
		return encUTF8
	case isUTF16BigEndianBOM2(buf):
		return encUTF16BigEndian
	case isUTF16LittleEndianBOM2(buf):
		return encUTF16LittleEndian
	}
	return encUnknown
}

// selectReader wraps r with a decoder matching the detected BOM encoding.
// encUnknown input passes through untouched, any actual charset declared in
// the XML prolog is handled downstream.
func selectReader(r io.Reader, enc srcEncoding) io.Reader {
	switch enc {
	case encUnknown:
		return r
	case encUTF8:
		return unicode.UTF8BOM.NewDecoder().Reader(r)
	case encUTF16BigEndian:
		return unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder().Reader(r)
	case encUTF16LittleEndian:
		return unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder().Reader(r)
	case encUTF32BigEndian:
		return utf32.UTF32(utf32.BigEndian, utf32.ExpectBOM).NewDecoder().Reader(r)
	case encUTF32LittleEndian:
		return utf32.UTF32(utf32.LittleEndian, utf32.ExpectBOM).NewDecoder().Reader(r)
	default:
		// this should never happen
		panic("unsupported source encoding")
	}
}
