package moderation

import (
	"crypto/subtle"
	"encoding/base64"
	"strings"
)

// Credential is the admin username and password pair.
type Credential struct {
	User string
	Pass string
}

// ParseBasic decodes an "Authorization: Basic ..." header value.
func ParseBasic(header string) (Credential, bool) {
	scheme, encoded, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "basic") {
		return Credential{}, false
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return Credential{}, false
	}
	user, pass, ok := strings.Cut(string(raw), ":")
	if !ok {
		return Credential{}, false
	}
	return Credential{User: user, Pass: pass}, true
}

// Header encodes c as an Authorization header value.
func (c Credential) Header() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(c.User+":"+c.Pass))
}

// Authorizer decides whether a credential grants admin rights.
type Authorizer interface {
	// Configured reports whether any admin credential exists at all.
	Configured() bool
	Authorize(c Credential) bool
}

// StaticAuthorizer accepts exactly one configured credential.
type StaticAuthorizer struct {
	expected Credential
}

func NewStaticAuthorizer(user, pass string) *StaticAuthorizer {
	return &StaticAuthorizer{expected: Credential{User: user, Pass: pass}}
}

func (a *StaticAuthorizer) Configured() bool {
	return a.expected.User != "" && a.expected.Pass != ""
}

func (a *StaticAuthorizer) Authorize(c Credential) bool {
	if !a.Configured() {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(c.User), []byte(a.expected.User)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(c.Pass), []byte(a.expected.Pass)) == 1
	return userOK && passOK
}
