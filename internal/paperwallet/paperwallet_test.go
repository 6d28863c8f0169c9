package paperwallet

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testInfo = Info{
	Address:   "9fRusAarL1KkrWQVsxSRVYnvWxaAT2A96cPMpdtXSe1XfT1jLtH",
	Mnemonic:  "legal winner thank year wave sausage worth useful legal winner thank yellow",
	WordCount: 12,
	Index:     0,
}

func TestRenderContainsWalletData(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, testInfo))

	html := buf.String()
	assert.Contains(t, html, testInfo.Address)
	assert.Contains(t, html, testInfo.Mnemonic)
	assert.Contains(t, html, "data:image/png;base64,")
	assert.Contains(t, html, "12-word phrase")
}

func TestShufflePhraseKeepsWords(t *testing.T) {
	shuffled := shufflePhrase(testInfo.Mnemonic)
	assert.NotEqual(t, testInfo.Mnemonic, shuffled)

	want := strings.Fields(testInfo.Mnemonic)
	got := strings.Fields(shuffled)
	sort.Strings(want)
	sort.Strings(got)
	assert.Equal(t, want, got)
}

func TestShufflePhraseIsDeterministic(t *testing.T) {
	assert.Equal(t, shufflePhrase(testInfo.Mnemonic), shufflePhrase(testInfo.Mnemonic))
	assert.Equal(t, "word", shufflePhrase("word"))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.html")
	require.NoError(t, WriteFile(path, testInfo))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), testInfo.Address)
}
