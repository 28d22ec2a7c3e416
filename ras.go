/*
 * ras.go, part of goRSM.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package rsm

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
)

//RAS raw-file reading. The format is line oriented: every metadata line
//has the form "*KEY  =  value", and each scan section ends in a
//"*COUNT = N" field followed by exactly N whitespace/comma-delimited
//intensities, possibly in scientific notation. The first header block
//carries *START, *STOP, *STEP and *OFFSET as consecutive fields; every
//scan section repeats *OFFSET with that scan's angular offset.

// A file implying more points than this is taken as malformed rather
// than materialized. Real maps are tens of scans times hundreds of
// points.
const maxPoints = 1 << 20

// rasField is one "*KEY = value" line, plus the non-field lines that
// follow it, up to the next field. Only *COUNT fields carry data lines.
type rasField struct {
	key   string
	value string
	data  []string
}

// RASRead reads the RSM raw-data file rasname. Files ending in ".gz" are
// decompressed on the fly. Any failure aborts the whole read; there are
// no partial results.
func RASRead(rasname string) (*RSM, error) {
	rasfile, err := os.Open(rasname)
	if err != nil {
		return nil, err
	}
	defer rasfile.Close()
	var in io.Reader = rasfile
	if strings.HasSuffix(rasname, ".gz") {
		gzr, err := gzip.NewReader(rasfile)
		if err != nil {
			return nil, ParseError{message: "unreadable gzip stream: " + err.Error(), filename: rasname}
		}
		defer gzr.Close()
		in = gzr
	}
	data, err := RASReadFrom(in)
	if err != nil {
		if perr, ok := err.(ParseError); ok {
			perr.filename = rasname
			return nil, perr
		}
		return nil, err
	}
	return data, nil
}

// RASReadFrom parses a whole RSM raw file from in. It returns the file
// header, the per-scan offsets and the intensity blocks, or a ParseError
// naming the first invariant the file violates.
func RASReadFrom(in io.Reader) (*RSM, error) {
	fields, err := scanFields(in)
	if err != nil {
		return nil, err
	}
	header, err := readHeader(fields)
	if err != nil {
		return nil, err
	}
	offsets := make([]float64, 0)
	scans := make([]ScanBlock, 0)
	declared := 0
	for _, f := range fields {
		switch f.key {
		case "OFFSET":
			off, err := leadingNumber(f.value)
			if err != nil {
				return nil, parseErrorf("*OFFSET field %q: %s", f.value, err.Error())
			}
			offsets = append(offsets, off)
		case "COUNT":
			block, n, err := readBlock(f, len(scans)+1)
			if err != nil {
				return nil, err
			}
			declared += n
			if declared > maxPoints {
				return nil, parseErrorf("file implies more than %d points, refusing to read it", maxPoints)
			}
			scans = append(scans, block)
		}
	}
	if len(scans) == 0 {
		return nil, parseErrorf(errNoScanBlocks)
	}
	if len(offsets) != len(scans) {
		return nil, parseErrorf("file declares %d scan offsets but contains %d scan blocks", len(offsets), len(scans))
	}
	//All scans sample the one grid described by the header, so their
	//point counts must agree.
	for i, s := range scans {
		if len(s.Counts) != len(scans[0].Counts) {
			return nil, parseErrorf("scan block %d has %d points while scan block 1 has %d, but all scans share one grid", i+1, len(s.Counts), len(scans[0].Counts))
		}
	}
	return &RSM{Header: *header, Offsets: offsets, Scans: scans}, nil
}

// scanFields splits the file into its ordered *KEY fields, attaching to
// each field the non-field lines that follow it.
func scanFields(in io.Reader) ([]rasField, error) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	fields := make([]rasField, 0, 32)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "*") {
			//intensity rows, or preamble junk before the first field
			if len(fields) > 0 {
				last := &fields[len(fields)-1]
				last.data = append(last.data, line)
			}
			continue
		}
		key := strings.TrimPrefix(line, "*")
		value := ""
		if eq := strings.IndexByte(key, '='); eq >= 0 {
			value = strings.TrimSpace(key[eq+1:])
			key = key[:eq]
		}
		key = strings.TrimSpace(key)
		fields = append(fields, rasField{key: key, value: value})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return fields, nil
}

// readHeader extracts the angular grid and the scan axis. The grid comes
// from the first *START field, which must be followed by *STOP, *STEP
// and *OFFSET, in that order and with nothing in between.
func readHeader(fields []rasField) (*Header, error) {
	start := -1
	for i, f := range fields {
		if f.key == "START" {
			start = i
			break
		}
	}
	if start < 0 || start+3 >= len(fields) {
		return nil, parseErrorf(errHeaderNotFound)
	}
	h := new(Header)
	for i, want := range []string{"STOP", "STEP", "OFFSET"} {
		if fields[start+1+i].key != want {
			return nil, parseErrorf(errHeaderNotFound)
		}
	}
	var err error
	for i, dst := range []*float64{&h.Start, &h.Stop, &h.Step} {
		f := fields[start+i]
		if *dst, err = leadingNumber(f.value); err != nil {
			return nil, parseErrorf("*%s field %q: %s", f.key, f.value, err.Error())
		}
	}
	//The header's *OFFSET belongs to the first scan section. It is read
	//again with the other per-scan offsets, so it is only validated here.
	if _, err = leadingNumber(fields[start+3].value); err != nil {
		return nil, parseErrorf("*OFFSET field %q: %s", fields[start+3].value, err.Error())
	}
	axis := -1
	for i, f := range fields {
		if f.key == "SCAN_AXIS" {
			axis = i
			break
		}
	}
	if axis < 0 {
		return nil, parseErrorf(errNoScanAxis)
	}
	h.RawAxis = strings.Trim(fields[axis].value, "\"")
	h.Axis = ScanAxisFromString(h.RawAxis)
	return h, nil
}

// readBlock parses one *COUNT field and its intensity rows. block is the
// 1-based index of the scan, used only for error reporting.
func readBlock(f rasField, block int) (ScanBlock, int, error) {
	n, err := leadingNumber(f.value)
	if err != nil || n != float64(int(n)) || n < 0 {
		return ScanBlock{}, 0, parseErrorf("*COUNT field %q of scan block %d is not a point count", f.value, block)
	}
	if int(n) > maxPoints {
		return ScanBlock{}, 0, parseErrorf("scan block %d declares %d points, refusing to read more than %d", block, int(n), maxPoints)
	}
	tokens := numericTokens(strings.Join(f.data, " "))
	if len(tokens) == 0 {
		return ScanBlock{}, 0, parseErrorf("*COUNT field of scan block %d has no numeric data block after it", block)
	}
	if len(tokens) != int(n) {
		return ScanBlock{}, 0, parseErrorf("declared point count %d does not match %d parsed values in scan block %d", int(n), len(tokens), block)
	}
	counts := make([]float64, len(tokens))
	for i, tok := range tokens {
		if counts[i], err = strconv.ParseFloat(tok, 64); err != nil {
			return ScanBlock{}, 0, parseErrorf("bad intensity value %q at point %d of scan block %d", tok, i+1, block)
		}
	}
	return ScanBlock{Counts: counts}, int(n), nil
}

// numericTokens flattens a data block into its numeric tokens: maximal
// runs of digit, decimal point, sign and exponent characters. Newlines,
// commas and any other separators all split tokens the same way.
func numericTokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !strings.ContainsRune("0123456789.+-eE", r)
	})
}

// leadingNumber parses the leading decimal number of a field value,
// ignoring any trailing annotation text (units, mostly).
func leadingNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && strings.ContainsRune("0123456789.+-eE", rune(s[end])) {
		end++
	}
	for end > 0 {
		v, err := strconv.ParseFloat(s[:end], 64)
		if err == nil {
			return v, nil
		}
		//"2.5e" or "1e+" style prefixes: retry without the dangling
		//exponent characters.
		end--
	}
	return 0, errors.New("no leading number")
}
