package application

import (
	"crypto/rand"
	"strings"
)

// Store keys; the store itself adds the application prefix.
func meetingKey(code string) string { return "meeting_" + code }

func meetingIndexKey(userID string) string { return "meetings_" + userID }

func sessionKey(deviceID string) string { return "session_" + deviceID }

const (
	codeLength   = 6
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// NewMeetingCode returns a random six character uppercase alphanumeric code.
func NewMeetingCode() string {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		panic("application: crypto/rand unavailable: " + err.Error())
	}
	for i, b := range buf {
		// 256 % 36 leaves a negligible bias for a rendezvous code.
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf)
}

// NormalizeCode uppercases and trims a user supplied meeting code. It
// returns false when the result is not a well formed code.
func NormalizeCode(code string) (string, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != codeLength {
		return "", false
	}
	for _, r := range code {
		if !strings.ContainsRune(codeAlphabet, r) {
			return "", false
		}
	}
	return code, true
}
