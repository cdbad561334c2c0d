package runtime

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func TestCensoredLoader_LoadAll(t *testing.T) {
	req := require.New(t)
	fsys := fstest.MapFS{
		"censored/en.txt":    {Data: []byte("spam\r\nscam\n\n# comment\n")},
		"censored/fr.txt":    {Data: []byte("arnaque\nspam\n")},
		"censored/README.md": {Data: []byte("not a list")},
	}

	data, err := NewCensoredLoader(fsys).LoadAll("censored")
	req.NoError(err)
	req.Equal([]string{"en", "fr"}, data.Lists)
	req.Equal([]string{"spam", "scam", "arnaque"}, data.Words)
}

func TestCensoredLoader_Embedded_Lists(t *testing.T) {
	req := require.New(t)

	data, err := DefaultCensoredLoader().LoadAll("censored")
	req.NoError(err)
	req.Contains(data.Lists, "ja")
	req.Contains(data.Words, "バカ")
}
