// Package paperwallet renders a printable HTML paper wallet for a found
// vanity address: the address with a scannable QR code on the front and
// an obfuscated copy of the seed phrase on the back.
package paperwallet

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"os"
	"strings"
	"time"

	qrcode "github.com/skip2/go-qrcode"
)

// Info holds everything needed to render one wallet.
type Info struct {
	Address   string
	Mnemonic  string
	WordCount int
	Index     uint32
}

type templateData struct {
	Address        string
	AddressQR      template.URL
	Mnemonic       string
	ShuffledPhrase string
	WordCount      int
	Index          uint32
	Generated      string
}

// qrSize is the rendered QR code edge length in pixels; large enough to
// scan reliably from paper.
const qrSize = 256

// Render writes the wallet HTML to w.
func Render(w io.Writer, info Info) error {
	png, err := qrcode.Encode(info.Address, qrcode.Medium, qrSize)
	if err != nil {
		return fmt.Errorf("paperwallet: encoding QR code: %w", err)
	}

	data := templateData{
		Address:        info.Address,
		AddressQR:      template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png)),
		Mnemonic:       info.Mnemonic,
		ShuffledPhrase: shufflePhrase(info.Mnemonic),
		WordCount:      info.WordCount,
		Index:          info.Index,
		Generated:      time.Now().Format("2006-01-02 15:04"),
	}
	return walletTemplate.Execute(w, data)
}

// WriteFile renders the wallet into a file at path.
func WriteFile(path string, info Info) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("paperwallet: creating %s: %w", path, err)
	}
	defer f.Close()

	if err := Render(f, info); err != nil {
		return err
	}
	return f.Close()
}

// shufflePhrase deterministically reorders the phrase words for the back
// side of the wallet, so a casual glance at the printout does not reveal
// the phrase in recovery order.
func shufflePhrase(phrase string) string {
	words := strings.Fields(phrase)
	n := len(words)
	if n < 2 {
		return phrase
	}
	for i := 0; i < n-1; i++ {
		j := ((i * 13) + 7) % n
		words[i], words[j] = words[j], words[i]
	}
	return strings.Join(words, " ")
}

var walletTemplate = template.Must(template.New("wallet").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Ergo Paper Wallet</title>
<style>
  @media print {
    @page { size: A4; margin: 0; }
    body { margin: 0; }
    .no-print { display: none; }
  }
  body { font-family: "Helvetica Neue", Arial, sans-serif; background: #f2f2f2; margin: 0; }
  .sheet { width: 210mm; min-height: 148mm; margin: 8mm auto; background: #fff;
           box-shadow: 0 1px 4px rgba(0,0,0,.3); padding: 12mm; box-sizing: border-box; }
  .side { border: 1.5px dashed #888; border-radius: 6px; padding: 10mm; margin-bottom: 8mm; }
  h1 { font-size: 16pt; margin: 0 0 6mm; color: #222; }
  .address { font-family: "Courier New", monospace; font-size: 10pt; word-break: break-all; }
  .qr { float: right; margin-left: 8mm; }
  .phrase { font-family: "Courier New", monospace; font-size: 10pt; line-height: 1.8;
            word-spacing: 4px; }
  .meta { color: #777; font-size: 8pt; margin-top: 6mm; clear: both; }
  .warn { color: #a33; font-size: 9pt; }
  .no-print { text-align: center; color: #555; font-size: 10pt; padding: 4mm; }
</style>
</head>
<body>
<div class="no-print">Print this page, then store front and back separately.</div>
<div class="sheet">
  <div class="side">
    <img class="qr" src="{{.AddressQR}}" width="128" height="128" alt="address QR">
    <h1>Ergo Wallet &mdash; Front</h1>
    <p class="address">{{.Address}}</p>
    <p class="meta">Derivation index {{.Index}} &middot; {{.WordCount}}-word phrase &middot; generated {{.Generated}}</p>
  </div>
  <div class="side">
    <h1>Ergo Wallet &mdash; Back</h1>
    <p class="warn">Words below are NOT in recovery order. Restore the original order before use.</p>
    <p class="phrase">{{.ShuffledPhrase}}</p>
    <p class="meta">Recovery order (keep secret, cut off if sharing the back):</p>
    <p class="phrase">{{.Mnemonic}}</p>
  </div>
</div>
</body>
</html>
`))
