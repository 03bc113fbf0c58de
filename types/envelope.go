package types

// Wire types for the e-signature provider REST API (eSignature v2.1).
// All identifiers and routing orders are strings on the wire.

// SignerParty is a single signing party supplied by the caller
type SignerParty struct {
	Name  string
	Email string
}

// EnvelopeDocument is a base64 encoded document attached to an envelope
type EnvelopeDocument struct {
	DocumentBase64 string `json:"documentBase64"`
	Name           string `json:"name"`
	FileExtension  string `json:"fileExtension"`
	DocumentID     string `json:"documentId"`
}

// SignHereTab is a signature field placed by text anchor
type SignHereTab struct {
	AnchorString  string `json:"anchorString"`
	AnchorUnits   string `json:"anchorUnits"`
	AnchorXOffset string `json:"anchorXOffset"`
	AnchorYOffset string `json:"anchorYOffset"`
}

// TextTab is a free text field placed by text anchor
type TextTab struct {
	AnchorString  string `json:"anchorString"`
	AnchorUnits   string `json:"anchorUnits"`
	AnchorXOffset string `json:"anchorXOffset"`
	AnchorYOffset string `json:"anchorYOffset"`
	TabLabel      string `json:"tabLabel"`
}

type Tabs struct {
	SignHereTabs []SignHereTab `json:"signHereTabs,omitempty"`
	TextTabs     []TextTab     `json:"textTabs,omitempty"`
}

// EnvelopeSigner is a recipient who signs the envelope. ClientUserID
// marks an embedded signer who signs in-app rather than via email.
type EnvelopeSigner struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	RecipientID  string `json:"recipientId"`
	RoutingOrder string `json:"routingOrder"`
	ClientUserID string `json:"clientUserId,omitempty"`
	Tabs         *Tabs  `json:"tabs,omitempty"`
}

type EnvelopeRecipients struct {
	Signers []EnvelopeSigner `json:"signers"`
}

type EnvelopeDefinition struct {
	EmailSubject string             `json:"emailSubject"`
	Documents    []EnvelopeDocument `json:"documents"`
	Recipients   EnvelopeRecipients `json:"recipients"`
	Status       string             `json:"status"`
}

type EnvelopeSummary struct {
	EnvelopeID     string `json:"envelopeId"`
	Status         string `json:"status,omitempty"`
	StatusDateTime string `json:"statusDateTime,omitempty"`
	URI            string `json:"uri,omitempty"`
}

type RecipientViewRequest struct {
	AuthenticationMethod string `json:"authenticationMethod"`
	ClientUserID         string `json:"clientUserId"`
	RecipientID          string `json:"recipientId"`
	ReturnURL            string `json:"returnUrl"`
	UserName             string `json:"userName"`
	Email                string `json:"email"`
}

type RecipientViewURL struct {
	URL string `json:"url"`
}

// EsignAPIError is the error body the provider returns on failed
// envelope and view requests
type EsignAPIError struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}
