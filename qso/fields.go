package qso

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Fields holds the full payload of one QSO version, matching the contact
// structure emitted by N1MM-style contest loggers.
//
// Time and Call are the key fields: a version is live only when both are
// populated. Everything else is informational.
type Fields struct {
	// Contest is the contest name the QSO was logged under.
	Contest string

	// Time is when the contact itself took place (not when it was logged).
	Time time.Time

	// Band is the amateur band designator, e.g. "20m".
	Band string

	// RxFreqHz and TxFreqHz are the receive/transmit frequencies in Hz.
	RxFreqHz int64
	TxFreqHz int64

	// CountryPrefix is the DXCC prefix of the worked station.
	CountryPrefix string

	// Operator is the callsign of the operator who made the contact.
	Operator string

	// Mode is the emission mode, e.g. "SSB", "CW".
	Mode string

	// Call is the callsign of the worked station.
	Call string

	// Sent and Rcvd are the exchanged reports.
	Sent string
	Rcvd string

	// Comment is free-form text.
	Comment string

	// Continent is the two-letter continent code, e.g. "EU".
	Continent string
}

// Canonical returns a copy of f with text fields normalized for storage:
// all strings NFC-normalized, callsign-like fields trimmed and uppercased,
// and Time converted to UTC. Lookups by (Time, Call) rely on mutations
// passing through this before hitting the log.
func (f Fields) Canonical() Fields {
	f.Contest = norm.NFC.String(f.Contest)
	f.Band = canonicalToken(f.Band)
	f.CountryPrefix = strings.ToUpper(canonicalToken(f.CountryPrefix))
	f.Operator = strings.ToUpper(canonicalToken(f.Operator))
	f.Mode = strings.ToUpper(canonicalToken(f.Mode))
	f.Call = strings.ToUpper(canonicalToken(f.Call))
	f.Sent = canonicalToken(f.Sent)
	f.Rcvd = canonicalToken(f.Rcvd)
	f.Comment = norm.NFC.String(f.Comment)
	f.Continent = strings.ToUpper(canonicalToken(f.Continent))
	if !f.Time.IsZero() {
		f.Time = f.Time.UTC()
	}
	return f
}

// HasKeyFields reports whether the contact timestamp and callsign are
// both populated. This is the liveness criterion for a version.
func (f Fields) HasKeyFields() bool {
	return !f.Time.IsZero() && f.Call != ""
}

// canonicalToken trims surrounding whitespace and applies NFC
// normalization. Used for short token-like fields.
func canonicalToken(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
