package logconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCompact(t *testing.T) {
	cfg, err := Parse("ERROR:h1,foo.bar:=FATAL,app=INFO:,x=19; h1=custom,foo=bar,a = b = c")
	require.NoError(t, err)

	text, err := FormatCompact(cfg)
	require.NoError(t, err)
	assert.Equal(t, ".=ERR:h1,app=INFO:,foo.bar:=FATAL,x=19; h1=custom,foo=bar,a=b = c", text)
}

func TestFormatCompactRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"; myhandler=custom,foo=bar",
		" ERR: ",
		"ERR:myfile:custom, app=DBG2, app..io:=WARN:other;" +
			"myfile=file,path=/tmp/x.log; custom=custom,foo=bar,hello=world,a = b = c; other=custom2",
		"a.b.c:=0,d=4294967295:x; x=t=u,k=",
		`{"categories": {"a b": "CRITICAL"}, "handlers": {"h": {"type": "file:x", "options": {"k:1": "v=2"}}}}`,
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			cfg, err := Parse(input)
			require.NoError(t, err)

			text, err := FormatCompact(cfg)
			require.NoError(t, err)

			again, err := Parse(text)
			require.NoError(t, err, "reparsing %q", text)
			assert.True(t, cfg.Equal(again), "reparsing %q", text)
		})
	}
}

func TestFormatCompactRejectsReservedCharacters(t *testing.T) {
	inputs := []string{
		`{"categories": {"a,b": "INFO"}}`,
		`{"categories": {"a=b": "INFO"}}`,
		`{"categories": {"a:b": "INFO"}}`,
		`{"categories": {" padded": "INFO"}}`,
		`{"handlers": {"h;1": {"type": "file"}}}`,
		`{"handlers": {"h": {"type": "a,b"}}}`,
		`{"handlers": {"h": {"type": " x"}}}`,
		`{"handlers": {"h": {"type": "file", "options": {"k=": "v"}}}}`,
		`{"handlers": {"h": {"type": "file", "options": {"k": "v;w"}}}}`,
		`{"handlers": {"h": {"type": "file", "options": {"k": "v "}}}}`,
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			cfg, err := Parse(input)
			require.NoError(t, err)

			_, err = FormatCompact(cfg)
			assert.Error(t, err)
		})
	}
}
