package rsm

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRASRead(t *testing.T) {
	data, err := RASRead("test/sample.ras")
	require.NoError(t, err)
	assert.Equal(t, TwoThetaOmega, data.Header.Axis)
	assert.Equal(t, "2Theta/Omega", data.Header.RawAxis)
	assert.Equal(t, 20.0, data.Header.Start)
	assert.Equal(t, 21.0, data.Header.Stop)
	assert.Equal(t, 0.1, data.Header.Step)
	assert.Equal(t, []float64{10.05, 10.10}, data.Offsets)
	require.Equal(t, 2, data.NScans())
	assert.Equal(t, 22, data.NPoints())
	require.Len(t, data.Scans[0].Counts, 11)
	//scientific-notation token in the middle of a row
	assert.Equal(t, 120.0, data.Scans[0].Counts[6])
	assert.Equal(t, 20.0, data.Scans[1].Counts[3])
}

func TestRASReadGzip(t *testing.T) {
	raw, err := os.ReadFile("test/sample.ras")
	require.NoError(t, err)
	name := filepath.Join(t.TempDir(), "sample.ras.gz")
	f, err := os.Create(name)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write(raw)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	data, err := RASRead(name)
	require.NoError(t, err)
	assert.Equal(t, 2, data.NScans())
	assert.Equal(t, []float64{10.05, 10.10}, data.Offsets)
}

func TestRASReadNamesFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "broken.ras")
	require.NoError(t, os.WriteFile(name, []byte("*START\t\t=  1.0\n"), 0o644))
	_, err := RASRead(name)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.ras")
}

// rasFile builds a minimal well-formed file that the individual tests
// then break in controlled ways.
func rasFile(scanAxis string, scans ...string) string {
	var b strings.Builder
	b.WriteString("*START\t\t=  20.0000 deg\n")
	b.WriteString("*STOP\t\t=  22.0000 deg\n")
	b.WriteString("*STEP\t\t=  0.0100 deg\n")
	b.WriteString("*OFFSET\t\t=  10.0500\n")
	if scanAxis != "" {
		b.WriteString("*SCAN_AXIS\t\t=  " + scanAxis + "\n")
	}
	for i, s := range scans {
		if i > 0 {
			b.WriteString("*OFFSET\t\t=  10.1000\n")
		}
		b.WriteString(s)
	}
	b.WriteString("*RAS_DATA_END\n")
	return b.String()
}

func block(n int, tokens int) string {
	var b strings.Builder
	b.WriteString("*COUNT = " + strconv.Itoa(n) + "\n")
	for i := 0; i < tokens; i++ {
		b.WriteString("5 ")
		if i%8 == 7 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	return b.String()
}

func TestHeaderNotFound(t *testing.T) {
	_, err := RASReadFrom(strings.NewReader("*SCAN_AXIS = 2theta\n" + block(3, 3)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "consecutive header fields")
}

func TestHeaderMisordered(t *testing.T) {
	text := "*START = 20\n*STEP = 0.01\n*STOP = 22\n*OFFSET = 10\n*SCAN_AXIS = 2theta\n" + block(3, 3)
	_, err := RASReadFrom(strings.NewReader(text))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "consecutive header fields")
}

func TestNoScanAxis(t *testing.T) {
	_, err := RASReadFrom(strings.NewReader(rasFile("", block(3, 3))))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SCAN_AXIS")
}

func TestNoScanBlocks(t *testing.T) {
	_, err := RASReadFrom(strings.NewReader(rasFile("2theta")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no *COUNT scan blocks")
}

func TestPointCountMismatch(t *testing.T) {
	//declares 50 points but carries 48, as in a truncated export
	_, err := RASReadFrom(strings.NewReader(rasFile("2theta", block(50, 48))))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "declared point count 50")
	assert.Contains(t, err.Error(), "48 parsed values")
	assert.Contains(t, err.Error(), "scan block 1")
}

func TestMismatchNamesTheBlock(t *testing.T) {
	_, err := RASReadFrom(strings.NewReader(rasFile("2theta", block(10, 10), block(10, 9))))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scan block 2")
}

func TestMalformedDataBlock(t *testing.T) {
	text := rasFile("2theta", "*COUNT = 10\n")
	_, err := RASReadFrom(strings.NewReader(text))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no numeric data block")
}

func TestOffsetCountMismatch(t *testing.T) {
	//two scan blocks but only the header's offset
	text := rasFile("2theta", block(5, 5)+block(5, 5))
	_, err := RASReadFrom(strings.NewReader(text))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 scan offsets")
	assert.Contains(t, err.Error(), "2 scan blocks")
}

func TestUnequalGrids(t *testing.T) {
	_, err := RASReadFrom(strings.NewReader(rasFile("2theta", block(5, 5), block(7, 7))))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "share one grid")
}

func TestPointGuard(t *testing.T) {
	_, err := RASReadFrom(strings.NewReader(rasFile("2theta", block(2000000, 5))))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refusing")
}

func TestScanAxisFromString(t *testing.T) {
	assert.Equal(t, TwoTheta, ScanAxisFromString("2theta"))
	assert.Equal(t, TwoThetaOmega, ScanAxisFromString("2Theta/Omega"))
	//undocumented axes fall back to the coupled convention
	assert.Equal(t, TwoThetaOmega, ScanAxisFromString("2Theta"))
	assert.Equal(t, TwoThetaOmega, ScanAxisFromString("Chi"))
}

func TestLeadingNumber(t *testing.T) {
	for in, want := range map[string]float64{
		"20.0000 deg":     20,
		"-0.5":            -0.5,
		"1.5e+02 cps/deg": 150,
		"7":               7,
	} {
		got, err := leadingNumber(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := leadingNumber("deg 20")
	assert.Error(t, err)
}
