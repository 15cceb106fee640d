// Reads and writes known answer test files of SPHINCS+ in the format
// of the reference implementation: one "key = value" line for each of
// sk_seed, sk_prf, pk_seed, pk_root, mlen, msg, opt and sig, followed
// by a blank line.
package kat

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// A single known answer test.
type Record struct {
	SkSeed []byte
	SkPrf  []byte
	PkSeed []byte
	PkRoot []byte
	Mlen   int
	Msg    []byte
	Opt    []byte
	Sig    []byte
}

// Order of the fields within a record.
var keys = []string{
	"sk_seed", "sk_prf", "pk_seed", "pk_root", "mlen", "msg", "opt", "sig",
}

// Maximum length of a line: the hex encoded signature of the largest
// instance is just below 100kB.
const maxLineLen = 1 << 20

// Returns the secret key sk_seed || sk_prf || pk_seed || pk_root.
func (rec *Record) SecretKey() []byte {
	ret := make([]byte, 0, len(rec.SkSeed)+len(rec.SkPrf)+
		len(rec.PkSeed)+len(rec.PkRoot))
	ret = append(ret, rec.SkSeed...)
	ret = append(ret, rec.SkPrf...)
	ret = append(ret, rec.PkSeed...)
	ret = append(ret, rec.PkRoot...)
	return ret
}

// Returns the public key pk_seed || pk_root.
func (rec *Record) PublicKey() []byte {
	ret := make([]byte, 0, len(rec.PkSeed)+len(rec.PkRoot))
	ret = append(ret, rec.PkSeed...)
	ret = append(ret, rec.PkRoot...)
	return ret
}

// Returns the first Mlen bytes of the message.
func (rec *Record) Message() []byte {
	return rec.Msg[:rec.Mlen]
}

func (rec *Record) field(key string) interface{} {
	switch key {
	case "sk_seed":
		return &rec.SkSeed
	case "sk_prf":
		return &rec.SkPrf
	case "pk_seed":
		return &rec.PkSeed
	case "pk_root":
		return &rec.PkRoot
	case "mlen":
		return &rec.Mlen
	case "msg":
		return &rec.Msg
	case "opt":
		return &rec.Opt
	case "sig":
		return &rec.Sig
	}
	return nil
}

// Checks that the record is internally consistent.
func (rec *Record) check() error {
	var errs *multierror.Error
	n := len(rec.SkSeed)
	for _, f := range []struct {
		name string
		buf  []byte
	}{
		{"sk_prf", rec.SkPrf},
		{"pk_seed", rec.PkSeed},
		{"pk_root", rec.PkRoot},
		{"opt", rec.Opt},
	} {
		if len(f.buf) != n {
			errs = multierror.Append(errs, fmt.Errorf(
				"%s has length %d instead of %d", f.name, len(f.buf), n))
		}
	}
	if rec.Mlen < 0 || rec.Mlen > len(rec.Msg) {
		errs = multierror.Append(errs, fmt.Errorf(
			"mlen %d exceeds length %d of msg", rec.Mlen, len(rec.Msg)))
	}
	return errs.ErrorOrNil()
}

// Reads all records from r.
func Parse(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineLen)

	var ret []Record
	var rec Record
	lineNo := 0
	field := 0 // index into keys of the next expected field

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			if field != 0 {
				return nil, fmt.Errorf("line %d: record ends before %s",
					lineNo, keys[field])
			}
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("line %d: expected key = value", lineNo)
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key != keys[field] {
			return nil, fmt.Errorf("line %d: expected %s instead of %s",
				lineNo, keys[field], key)
		}

		switch dst := rec.field(key).(type) {
		case *int:
			v, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("line %d: %s: %v", lineNo, key, err)
			}
			*dst = v
		case *[]byte:
			v, err := hex.DecodeString(value)
			if err != nil {
				return nil, fmt.Errorf("line %d: %s: %v", lineNo, key, err)
			}
			*dst = v
		}

		field++
		if field == len(keys) {
			if err := rec.check(); err != nil {
				return nil, fmt.Errorf("line %d: %v", lineNo, err)
			}
			ret = append(ret, rec)
			rec = Record{}
			field = 0
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if field != 0 {
		return nil, fmt.Errorf("unexpected end of file before %s", keys[field])
	}
	return ret, nil
}

// Reads all records from buf.
func ParseBytes(buf []byte) ([]Record, error) {
	return Parse(bytes.NewReader(buf))
}

// Writes the record to w followed by a blank line.
func Write(w io.Writer, rec *Record) error {
	for _, key := range keys {
		var value string
		switch src := rec.field(key).(type) {
		case *int:
			value = strconv.Itoa(*src)
		case *[]byte:
			value = hex.EncodeToString(*src)
		}
		if _, err := fmt.Fprintf(w, "%s = %s\n", key, value); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
