package webapi

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/erraggy/swagrec/parser"
)

func newSessionID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

func (s *Server) storeSession(result *parser.ParseResult) string {
	id := newSessionID()
	s.sessions.Put(id, result, s.cfg.SessionTTL)
	return id
}

func (s *Server) lookupSession(id string) (*parser.ParseResult, bool) {
	if id == "" {
		return nil, false
	}
	return s.sessions.Get(id)
}
