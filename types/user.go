package types

// User is the identity returned by the user directory after
// registration or a successful login
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Created  int64  `json:"created,omitempty"`
}

// UserDocument is the org.couchdb.user document stored in the host
// user directory (_users database). Password is write-only: CouchDB
// hashes it server side and never returns it.
type UserDocument struct {
	ID       string   `json:"_id,omitempty"`
	Rev      string   `json:"_rev,omitempty"`
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Roles    []string `json:"roles"`
	Password string   `json:"password,omitempty"`
	UserID   string   `json:"userId,omitempty"`
	Created  int64    `json:"created,omitempty"`
}

// ServerKeys is the on-disk format of the servers session signing keys
type ServerKeys struct {
	Type       string `json:"type"`
	PrivateKey string `json:"privateKey"`
	Created    int64  `json:"created"`
}
