package util

import (
	"encoding/base64"
	"sync"
)

// Anchor strings the providers tagging system locates in the document
// and overlays with interactive fields. The matching tabs are built in
// services.EnvelopeService.
const (
	AnchorFirstSignature  = "/signer1sig/"
	AnchorFirstFullName   = "/fullname/"
	AnchorFirstDate       = "/date/"
	AnchorSecondSignature = "/signer2sig/"
	AnchorSecondFullName  = "/fullname2/"
	AnchorSecondDate      = "/date2/"
)

// anchors are rendered white on white so they stay invisible in the
// signed document while remaining findable by text
const agreementHTML = `<!DOCTYPE html>
<html lang="en">

<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Agreement</title>
</head>

<body>
    <h1>Agreement</h1>

    <p>Lorem ipsum dolor sit amet, consectetur adipiscing elit.Ut enim ad minim veniam, quis
        nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat Sed do eius
        mod tempor incididunt ut labore et dolore magna aliqua.
        Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut
        labore et dolore magna aliqua. Ut enim ad minim veniam, quis nostrud exercitation ullamco
        laboris nisi ut aliquip ex ea commodo consequat. Duis aute irure dolor in reprehenderit in
        voluptate velit esse cillum dolore eu fugiat nulla pariatur. Excepteur sint occaecat cupid
        atat non proident, sunt in culpa qui officia deserunt mollit anim id est laborum.
    </p>

    <h3>First Signer</h3>
    <p>● Full Name: <span style="color:white">/fullname/</span> </p>
    <p>● Date: <span style="color:white">/date/</span></p>
    <p>● Signature: <span style="color:white; font-size:48px">/signer1sig/</span></p>

    <p style="font-size: medium;">Lorem ipsum odor amet, consectetuer adipiscing elit. Vestibulum pr
        etium potenti molestie luctus turpis etiam fermentum odio. Himenaeos senectus gravida sed et
        iam ut. Ullamcorper in convallis mauris libero taciti platea ipsum tellus proin. Condimentum
        id vel pharetra integer ligula, primis tristique ridiculus.
    </p>

    <h3>Second Signer</h3>
    <p>● Full Name: <span style="color:white">/fullname2/</span></p>
    <p>● Date: <span style="color:white">/date2/</span></p>
    <p>● Signature: <span style="color:white; font-size:48px">/signer2sig/</span></p>

</body>
</html>
`

var (
	agreementOnce   sync.Once
	agreementBase64 string
)

// AgreementDocumentBase64 returns the agreement document as base64
// encoded HTML. The template is a static constant, so the encoding is
// computed once and reused for every envelope.
func AgreementDocumentBase64() string {
	agreementOnce.Do(func() {
		agreementBase64 = base64.StdEncoding.EncodeToString([]byte(agreementHTML))
	})
	return agreementBase64
}
