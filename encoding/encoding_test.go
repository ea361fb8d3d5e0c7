package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	assert.Equal(t, []string{
		"base64",
		"hex",
		"ip",
		"proquint",
		"raw",
		"uint16",
		"uint32",
		"uint64",
		"zstd",
	}, Names())
}

func TestNewEncodeDecoder(t *testing.T) {
	for _, name := range Names() {
		e, err := NewEncodeDecoder(name)
		require.NoError(t, err, name)
		assert.NotNil(t, e, name)
	}

	e, err := NewEncodeDecoder("PROQUINT")
	require.NoError(t, err)
	assert.IsType(t, &EncodeDecoderProquint{}, e)

	_, err = NewEncodeDecoder("morse")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestConvertNamed(t *testing.T) {
	samples := []struct {
		from, to string
		input    string
		output   string
	}{
		{"ip", "proquint", "127.0.0.1", "lusab-babad"},
		{"proquint", "ip", "gutih-tugad", "63.84.220.193"},
		{"hex", "proquint", "12345678", "damuh-jinum"},
		{"hex", "proquint", "0x1a01337e5b61", "domad-gatuv-jotod"},
		{"proquint", "hex", "damuh-jinum", "12345678"},
		{"uint32", "proquint", "0x7f000001", "lusab-babad"},
		{"uint32", "proquint", "2130706433", "lusab-babad"},
		{"proquint", "uint32", "lusab-babad", "2130706433"},
		{"uint16", "proquint", "65535", "zuzuz"},
		{"proquint", "uint64", "babab-babab-babab-babad", "1"},
		{"raw", "proquint", "hi", "kodon"},
		{"proquint", "raw", "kodon", "hi"},
		{"proquint", "base64", "lusab-babad", "fwAAAQ"},
		{"base64", "proquint", "fwAAAQ", "lusab-babad"},
		{"ip", "proquint", "::1", "babab-babab-babab-babab-babab-babab-babab-babad"},
	}

	for _, sample := range samples {
		res, err := ConvertNamed(sample.from, sample.to, []byte(sample.input))
		require.NoError(t, err, "%s -> %s: %s", sample.from, sample.to, sample.input)
		assert.Equal(t, sample.output, string(res), "%s -> %s: %s", sample.from, sample.to, sample.input)
	}
}

func TestConvertNamedErrors(t *testing.T) {
	_, err := ConvertNamed("hex", "proquint", []byte("abc"))
	assert.Error(t, err)

	_, err = ConvertNamed("hex", "proquint", []byte("7f0000"))
	assert.ErrorIs(t, err, ErrInvalidInputLength)

	_, err = ConvertNamed("proquint", "hex", []byte("lusab-babed"))
	assert.ErrorIs(t, err, ErrInvalidCharacter)

	_, err = ConvertNamed("proquint", "ip", []byte("lusab"))
	assert.Error(t, err)

	_, err = ConvertNamed("uint16", "proquint", []byte("65536"))
	assert.Error(t, err)

	_, err = ConvertNamed("ip", "proquint", []byte("localhost"))
	assert.Error(t, err)

	_, err = ConvertNamed("nope", "proquint", []byte("x"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestZstdRoundTrip(t *testing.T) {
	e := NewEncodeDecoderZstd()
	buf := []byte("lusab-babad lusab-babad lusab-babad lusab-babad")

	encoded, err := e.Encode(buf)
	require.NoError(t, err)

	decoded, err := e.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, buf, decoded)
}

func TestZstdSizeLimit(t *testing.T) {
	e := NewEncodeDecoderZstd()
	e.MaxDecodedSize = 64 * 1024

	encoded, err := e.Encode(make([]byte, 2048))
	require.NoError(t, err)
	decoded, err := e.Decode(encoded)
	require.NoError(t, err)
	assert.Len(t, decoded, 2048)

	encoded, err = e.Encode(make([]byte, 1<<20))
	require.NoError(t, err)
	_, err = e.Decode(encoded)
	assert.ErrorIs(t, err, ErrZstdSizeExceeded)

	res, err := ConvertNamed("zstd", "hex", encoded)
	require.NoError(t, err)
	assert.Len(t, res, 2<<20)
}

func TestIPMapped(t *testing.T) {
	mapped := "babab-babab-babab-babab-babab-zuzuz-lusab-babad"

	ip, err := ConvertNamed("proquint", "ip", []byte(mapped))
	require.NoError(t, err)
	assert.Equal(t, "::ffff:127.0.0.1", string(ip))

	pq, err := ConvertNamed("ip", "proquint", ip)
	require.NoError(t, err)
	assert.Equal(t, mapped, string(pq))

	_, err = ConvertNamed("ip", "proquint", []byte("fe80::1%eth0"))
	assert.Error(t, err)
}

func TestBase64Alphabets(t *testing.T) {
	samples := []struct {
		input  string
		output string
	}{
		{"AAE", "babad"},
		{"AAE=", "babad"},
		{"-_8", "zozuz"},
		{"+/8=", "zozuz"},
		{"+/8", "zozuz"},
	}
	for _, sample := range samples {
		res, err := ConvertNamed("base64", "proquint", []byte(sample.input))
		require.NoError(t, err, sample.input)
		assert.Equal(t, sample.output, string(res), sample.input)
	}

	res, err := ConvertNamed("proquint", "base64", []byte("zozuz"))
	require.NoError(t, err)
	assert.Equal(t, "-_8", string(res))

	_, err = ConvertNamed("base64", "proquint", []byte("A*E="))
	assert.Error(t, err)
}

func TestUintHelpers(t *testing.T) {
	assert.Equal(t, "lusab-babad", EncodeUint32(0x7f000001))
	assert.Equal(t, "lusab", EncodeUint16(0x7f00))
	assert.Equal(t, "babab-babab-babab-babad", EncodeUint64(1))

	x16, err := DecodeUint16("zuzuz")
	require.NoError(t, err)
	assert.Equal(t, uint16(0xffff), x16)

	x32, err := DecodeUint32("damuh-jinum")
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), x32)

	x64, err := DecodeUint64(EncodeUint64(0xdeadbeefcafebabe))
	require.NoError(t, err)
	assert.Equal(t, uint64(0xdeadbeefcafebabe), x64)

	_, err = DecodeUint32("lusab")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
